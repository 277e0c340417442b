package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"server/internal/infra/identity"
	"server/internal/sqlinline"
)

type fakeIntents struct {
	amount int64
	secret string
	err    error
}

func (f *fakeIntents) CreateIntent(_ context.Context, amount int64) (string, error) {
	f.amount = amount
	return f.secret, f.err
}

func TestCreatePaymentIntentConvertsToCents(t *testing.T) {
	intents := &fakeIntents{secret: "pi_secret_123"}
	app := NewApp(&fakeSQL{}, zerolog.Nop(), intents)
	rr := httptest.NewRecorder()
	app.CreatePaymentIntent(rr, httptest.NewRequest(http.MethodPost, "/create-payment-intent",
		strings.NewReader(`{"amount":50}`)))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	if intents.amount != 5000 {
		t.Fatalf("provider amount = %d, want 5000 cents", intents.amount)
	}
	if got := decodeJSON(t, rr); got["clientSecret"] != "pi_secret_123" {
		t.Fatalf("clientSecret = %v", got["clientSecret"])
	}
}

func TestCreatePaymentIntentRejectsNonPositiveAmount(t *testing.T) {
	intents := &fakeIntents{}
	app := NewApp(&fakeSQL{}, zerolog.Nop(), intents)
	for _, body := range []string{`{"amount":0}`, `{"amount":-5}`, `{}`} {
		rr := httptest.NewRecorder()
		app.CreatePaymentIntent(rr, httptest.NewRequest(http.MethodPost, "/create-payment-intent",
			strings.NewReader(body)))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rr.Code)
		}
	}
	if intents.amount != 0 {
		t.Fatal("provider must not be called for invalid amounts")
	}
}

func TestCreatePaymentIntentProviderFailure(t *testing.T) {
	app := NewApp(&fakeSQL{}, zerolog.Nop(), &fakeIntents{err: errors.New("provider down")})
	rr := httptest.NewRecorder()
	app.CreatePaymentIntent(rr, httptest.NewRequest(http.MethodPost, "/create-payment-intent",
		strings.NewReader(`{"amount":10}`)))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
}

func TestCreateFundingWithoutClaims(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rr := httptest.NewRecorder()
	app.CreateFunding(rr, httptest.NewRequest(http.MethodPost, "/fundings",
		strings.NewReader(`{"amount":25}`)))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestCreateFundingRecordsCaller(t *testing.T) {
	sql := &fakeSQL{queryRowFn: func(query string, args ...any) pgx.Row {
		if query != sqlinline.QInsertFunding {
			t.Fatalf("unexpected query %q", query)
		}
		if args[0] != "Donor One" || args[1] != "donor@example.com" || args[2] != int64(25) {
			t.Fatalf("args = %v", args)
		}
		return rowOf("fund-1")
	}}
	app := newTestApp(sql)
	req := withClaims(httptest.NewRequest(http.MethodPost, "/fundings",
		strings.NewReader(`{"amount":25}`)),
		identity.Claims{Email: "donor@example.com", Name: "Donor One"})
	rr := httptest.NewRecorder()
	app.CreateFunding(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	if got := decodeJSON(t, rr); got["id"] != "fund-1" {
		t.Fatalf("id = %v, want fund-1", got["id"])
	}
}

func TestListFundings(t *testing.T) {
	sql := &fakeSQL{queryFn: func(query string, args ...any) (pgx.Rows, error) {
		if query != sqlinline.QListFundings {
			t.Fatalf("unexpected query %q", query)
		}
		return &fakeRows{rows: [][]any{
			{"fund-1", "Donor One", "donor@example.com", int64(25), time.Now(), int64(3)},
		}}, nil
	}}
	app := newTestApp(sql)
	rr := httptest.NewRecorder()
	app.ListFundings(rr, httptest.NewRequest(http.MethodGet, "/fundings", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}
	got := decodeJSON(t, rr)
	if got["total"] != float64(3) {
		t.Fatalf("total = %v, want 3", got["total"])
	}
}
