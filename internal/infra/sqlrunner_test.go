package infra

import (
	"context"
	"strings"
	"testing"
)

func TestExtractMarker(t *testing.T) {
	query := `--sql 0b5e9c2a-8e14-4a1b-9d52-3f71c9e4ab01
select id from users where email = $1`

	marker, trimmed, err := extractMarker(query)
	if err != nil {
		t.Fatalf("extractMarker() error = %v", err)
	}
	if marker != "0b5e9c2a-8e14-4a1b-9d52-3f71c9e4ab01" {
		t.Errorf("marker = %q", marker)
	}
	if strings.Contains(trimmed, "--sql") {
		t.Errorf("trimmed query still contains marker line: %q", trimmed)
	}
	if !strings.HasPrefix(trimmed, "select id") {
		t.Errorf("trimmed query = %q, want statement body", trimmed)
	}
}

func TestExtractMarkerRejectsUnmarkedQuery(t *testing.T) {
	for _, query := range []string{
		"select 1",
		"-- comment\nselect 1",
		"--sql not-a-uuid\nselect 1",
		"--sql 0B5E9C2A-8E14-4A1B-9D52-3F71C9E4AB01\nselect 1",
	} {
		if _, _, err := extractMarker(query); err == nil {
			t.Errorf("extractMarker(%q) accepted a query without a valid marker", query)
		}
	}
}

func TestQueryRowWithoutMarker(t *testing.T) {
	runner := &SQLRunner{}
	r := runner.QueryRow(context.Background(), "select 1")
	if err := r.Scan(new(int)); err == nil {
		t.Fatal("QueryRow without a marker must surface the marker error on Scan")
	}
}
