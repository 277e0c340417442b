package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/sqlinline"
)

type paymentIntentRequest struct {
	Amount int64 `json:"amount"`
}

// CreatePaymentIntent asks the payment oracle for a charge handle. The
// amount arrives in whole currency units and is converted to cents for the
// provider, as the checkout widget expects.
func (a *App) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	ctx, cancel := contextWithOracleTimeout(r)
	defer cancel()
	clientSecret, err := a.Payments.CreateIntent(ctx, req.Amount*100)
	if err != nil {
		a.internal(w, err, "failed to create payment intent")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

type createFundingRequest struct {
	Amount int64 `json:"amount"`
}

type fundingDTO struct {
	ID        string    `json:"id"`
	UserName  string    `json:"name"`
	UserEmail string    `json:"email"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFunding records a contribution after a successful charge. This is a
// separate step from the payment intent; there is no reconciliation between
// the two.
func (a *App) CreateFunding(w http.ResponseWriter, r *http.Request) {
	var req createFundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	claims, ok := a.currentClaims(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var id string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertFunding,
		claims.Name, claims.Email, req.Amount).Scan(&id); err != nil {
		a.internal(w, err, "failed to record funding")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"message": "Funding recorded", "id": id})
}

// ListFundings pages the contribution ledger, newest first.
func (a *App) ListFundings(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListFundings, limit, offset)
	if err != nil {
		a.internal(w, err, "failed to list fundings")
		return
	}
	defer rows.Close()
	fundings := []fundingDTO{}
	var total int64
	for rows.Next() {
		var f fundingDTO
		if err := rows.Scan(&f.ID, &f.UserName, &f.UserEmail, &f.Amount, &f.CreatedAt, &total); err != nil {
			a.internal(w, err, "failed to scan funding")
			return
		}
		fundings = append(fundings, f)
	}
	if err := rows.Err(); err != nil {
		a.internal(w, err, "failed to list fundings")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"fundings": fundings, "total": total})
}
