package handlers

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"server/internal/infra"
	"server/internal/infra/identity"
	"server/internal/middleware"
)

type sqlCall struct {
	query string
	args  []any
}

// fakeSQL implements infra.SQLExecutor for handler tests. Every call is
// recorded; behavior is driven by the optional function fields, with
// no-row/empty defaults.
type fakeSQL struct {
	calls      []sqlCall
	queryRowFn func(query string, args ...any) pgx.Row
	queryFn    func(query string, args ...any) (pgx.Rows, error)
	execFn     func(query string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, sqlCall{query: query, args: args})
	if f.execFn != nil {
		return f.execFn(query, args...)
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	f.calls = append(f.calls, sqlCall{query: query, args: args})
	if f.queryRowFn != nil {
		return f.queryRowFn(query, args...)
	}
	return noRow{}
}

func (f *fakeSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	f.calls = append(f.calls, sqlCall{query: query, args: args})
	if f.queryFn != nil {
		return f.queryFn(query, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeSQL) lastCall() sqlCall {
	if len(f.calls) == 0 {
		return sqlCall{}
	}
	return f.calls[len(f.calls)-1]
}

var _ infra.SQLExecutor = (*fakeSQL)(nil)

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

type errRow struct{ err error }

func (e errRow) Scan(...any) error { return e.err }

// valueRow assigns its values positionally on Scan.
type valueRow struct{ values []any }

func rowOf(values ...any) pgx.Row { return valueRow{values: values} }

func (r valueRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, v := range r.values {
		if err := assignValue(dest[i], v); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest, val any) error {
	if val == nil {
		return nil
	}
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Pointer || dv.IsNil() {
		return fmt.Errorf("scan destination %T is not a pointer", dest)
	}
	ev := dv.Elem()
	sv := reflect.ValueOf(val)
	switch {
	case sv.Type().AssignableTo(ev.Type()):
		ev.Set(sv)
	case sv.Type().ConvertibleTo(ev.Type()):
		ev.Set(sv.Convert(ev.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", val, dest)
	}
	return nil
}

// fakeRows replays a fixed result set through the pgx.Rows interface.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return valueRow{values: r.rows[r.idx-1]}.Scan(dest...)
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

var _ pgx.Rows = (*fakeRows)(nil)

func newTestApp(sql *fakeSQL) *App {
	return NewApp(sql, zerolog.Nop(), nil)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withClaims(r *http.Request, claims identity.Claims) *http.Request {
	return r.WithContext(middleware.ContextWithClaims(r.Context(), claims))
}

func userRowValues(id, email, role, status string) []any {
	return []any{id, "Test User", email, "https://img.example.com/u.png", "A+",
		"Dhaka", "Savar", role, status, time.Now()}
}

func requestRowValues(id, requesterEmail, status string) []any {
	return []any{id, "Requester", requesterEmail, "Recipient", "Dhaka", "Savar",
		"Dhaka Medical College", "12 Road, Dhaka", "B+", "2026-09-15", "10:30",
		"urgent surgery", status, []byte(nil), time.Now()}
}
