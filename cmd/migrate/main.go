package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	var dirFlag string
	flag.StringVar(&dirFlag, "dir", "migrations", "directory containing .sql files, applied in name order")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	entries, err := os.ReadDir(dirFlag)
	if err != nil {
		exitWithError(fmt.Errorf("read migrations dir: %w", err))
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	if len(files) == 0 {
		exitWithError(fmt.Errorf("no .sql files in %s", dirFlag))
	}
	sort.Strings(files)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("open database: %w", err))
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		exitWithError(fmt.Errorf("ping database: %w", err))
	}

	for _, name := range files {
		contents, err := os.ReadFile(filepath.Join(dirFlag, name))
		if err != nil {
			exitWithError(fmt.Errorf("read %s: %w", name, err))
		}
		if _, err := db.ExecContext(ctx, string(contents)); err != nil {
			exitWithError(fmt.Errorf("apply %s: %w", name, err))
		}
		fmt.Printf("applied %s\n", name)
	}
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
	os.Exit(1)
}
