package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/infra/identity"
	"server/internal/infra/payments"
	"server/internal/middleware"
	"server/internal/sqlinline"
)

// App is the handler container. Every dependency is injected; there are no
// package-level singletons.
type App struct {
	SQL      infra.SQLExecutor
	Logger   infra.Logger
	Payments payments.IntentCreator
}

func NewApp(sql infra.SQLExecutor, logger infra.Logger, intents payments.IntentCreator) *App {
	return &App{SQL: sql, Logger: logger, Payments: intents}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}

func (a *App) internal(w http.ResponseWriter, err error, message string) {
	a.Logger.Error().Err(err).Msg(message)
	a.error(w, http.StatusInternalServerError, "internal", message)
}

// currentClaims returns the verified identity placed by the auth middleware.
func (a *App) currentClaims(r *http.Request) (identity.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

// callerUser resolves the caller's directory record by claims email.
// A verified credential without a directory record yields ErrNotFound.
func (a *App) callerUser(r *http.Request) (*domain.User, error) {
	claims, ok := a.currentClaims(r)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, claims.Email)
	return scanUser(row)
}

// RequireRole guards a route subtree: the caller's stored role must be in
// the allowed set. It runs strictly after the auth middleware and
// short-circuits before the handler on any failure.
func (a *App) RequireRole(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.callerUser(r)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
				case errors.Is(err, domain.ErrNotFound):
					a.error(w, http.StatusForbidden, "forbidden", "no account for this identity")
				default:
					a.internal(w, err, "failed to load caller account")
				}
				return
			}
			if !domain.Authorize(user.Role, allowed...) {
				a.error(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Photo, &u.BloodGroup, &u.District,
		&u.Upazila, &u.Role, &u.Status, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// contextWithOracleTimeout bounds calls to the external oracles so a stuck
// provider cannot hold the request open past the write timeout.
func contextWithOracleTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 10*time.Second)
}

// pagination reads page/limit query params with the usual clamping.
func pagination(r *http.Request) (limit, offset int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return limit, (page - 1) * limit
}
