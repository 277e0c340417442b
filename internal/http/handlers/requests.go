package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/sqlinline"
)

type createRequestRequest struct {
	RequesterName  string `json:"requesterName"`
	RequesterEmail string `json:"requesterEmail"`
	RecipientName  string `json:"recipientName"`
	District       string `json:"district"`
	Upazila        string `json:"upazila"`
	Hospital       string `json:"hospital"`
	Address        string `json:"address"`
	BloodGroup     string `json:"bloodGroup"`
	DonationDate   string `json:"donationDate"`
	DonationTime   string `json:"donationTime"`
	Message        string `json:"message"`
}

type requestDTO struct {
	ID             string              `json:"id"`
	RequesterName  string              `json:"requesterName"`
	RequesterEmail string              `json:"requesterEmail"`
	RecipientName  string              `json:"recipientName"`
	District       string              `json:"district"`
	Upazila        string              `json:"upazila"`
	Hospital       string              `json:"hospital"`
	Address        string              `json:"address"`
	BloodGroup     string              `json:"bloodGroup"`
	DonationDate   string              `json:"donationDate"`
	DonationTime   string              `json:"donationTime"`
	Message        string              `json:"message"`
	DonationStatus string              `json:"donationStatus"`
	DonorInfo      []domain.DonorEntry `json:"donorInfo"`
	CreatedAt      time.Time           `json:"createdAt"`
}

func requestToDTO(dr *domain.DonationRequest) requestDTO {
	return requestDTO{
		ID:             dr.ID,
		RequesterName:  dr.RequesterName,
		RequesterEmail: dr.RequesterEmail,
		RecipientName:  dr.RecipientName,
		District:       dr.District,
		Upazila:        dr.Upazila,
		Hospital:       dr.Hospital,
		Address:        dr.Address,
		BloodGroup:     dr.BloodGroup,
		DonationDate:   dr.DonationDate,
		DonationTime:   dr.DonationTime,
		Message:        dr.Message,
		DonationStatus: string(dr.Status),
		DonorInfo:      dr.DonorInfo,
		CreatedAt:      dr.CreatedAt,
	}
}

// scanRequest reads one donation_requests row. donor_info arrives as jsonb
// and stays nil while the request is unclaimed.
func scanRequest(row pgx.Row, extra ...any) (*domain.DonationRequest, error) {
	var dr domain.DonationRequest
	var donorInfo []byte
	dest := []any{&dr.ID, &dr.RequesterName, &dr.RequesterEmail, &dr.RecipientName,
		&dr.District, &dr.Upazila, &dr.Hospital, &dr.Address, &dr.BloodGroup,
		&dr.DonationDate, &dr.DonationTime, &dr.Message, &dr.Status, &donorInfo, &dr.CreatedAt}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(donorInfo) > 0 {
		if err := json.Unmarshal(donorInfo, &dr.DonorInfo); err != nil {
			return nil, err
		}
	}
	return &dr, nil
}

// CreateRequest posts a new blood request. Public by design: requesters are
// not required to hold an account.
func (a *App) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.RequesterName == "" || req.RequesterEmail == "" || req.RecipientName == "" ||
		req.District == "" || req.Upazila == "" || req.Hospital == "" || req.Address == "" ||
		req.BloodGroup == "" || req.DonationDate == "" || req.DonationTime == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertRequest,
		req.RequesterName, req.RequesterEmail, req.RecipientName, req.District, req.Upazila,
		req.Hospital, req.Address, req.BloodGroup, req.DonationDate, req.DonationTime, req.Message)
	var id string
	if err := row.Scan(&id); err != nil {
		a.internal(w, err, "failed to create donation request")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"message": "Donation request created", "id": id})
}

// RecentRequests returns the requester's three newest requests.
func (a *App) RecentRequests(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email is required")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QRecentRequestsByEmail, email)
	if err != nil {
		a.internal(w, err, "failed to load donation requests")
		return
	}
	defer rows.Close()
	items, _, err := collectRequests(rows, false)
	if err != nil {
		a.internal(w, err, "failed to scan donation requests")
		return
	}
	a.json(w, http.StatusOK, items)
}

// ListRequests pages requests filtered by requester email and/or status.
func (a *App) ListRequests(w http.ResponseWriter, r *http.Request) {
	a.listRequests(w, r, r.URL.Query().Get("email"))
}

// AdminListRequests is the triage view for volunteers and admins; it pages
// every request regardless of requester.
func (a *App) AdminListRequests(w http.ResponseWriter, r *http.Request) {
	a.listRequests(w, r, "")
}

func (a *App) listRequests(w http.ResponseWriter, r *http.Request, email string) {
	status := r.URL.Query().Get("status")
	if status != "" && !domain.ValidDonationStatus(status) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid status filter")
		return
	}
	limit, offset := pagination(r)
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListRequests, email, status, limit, offset)
	if err != nil {
		a.internal(w, err, "failed to load donation requests")
		return
	}
	defer rows.Close()
	items, total, err := collectRequests(rows, true)
	if err != nil {
		a.internal(w, err, "failed to scan donation requests")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"requests": items, "total": total})
}

// SearchRequests is the public donor search. The SQL fixes
// donation_status = pending; filters narrow the result only.
func (a *App) SearchRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSearchPendingRequests,
		q.Get("blood_group"), q.Get("district"), q.Get("upazila"))
	if err != nil {
		a.internal(w, err, "failed to search donation requests")
		return
	}
	defer rows.Close()
	items, _, err := collectRequests(rows, false)
	if err != nil {
		a.internal(w, err, "failed to scan donation requests")
		return
	}
	a.json(w, http.StatusOK, items)
}

// GetRequest returns a single request by id.
func (a *App) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dr, err := scanRequest(a.SQL.QueryRow(r.Context(), sqlinline.QSelectRequestByID, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "donation request not found")
			return
		}
		a.internal(w, err, "failed to load donation request")
		return
	}
	a.json(w, http.StatusOK, requestToDTO(dr))
}

type confirmDonationRequest struct {
	DonorName  string `json:"donorName"`
	DonorEmail string `json:"donorEmail"`
}

// ConfirmDonation is the donor's commitment: one statement appends the donor
// entry and moves the request to inprogress, so two simultaneous
// confirmations both land and neither append is lost.
func (a *App) ConfirmDonation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req confirmDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	claims, ok := a.currentClaims(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if req.DonorEmail == "" {
		req.DonorEmail = claims.Email
	}
	if req.DonorName == "" {
		req.DonorName = claims.Name
	}
	if req.DonorName == "" || req.DonorEmail == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donorName and donorEmail are required")
		return
	}
	entry, err := json.Marshal([]domain.DonorEntry{{
		DonorName:   req.DonorName,
		DonorEmail:  req.DonorEmail,
		ConfirmedAt: time.Now().UTC(),
	}})
	if err != nil {
		a.internal(w, err, "failed to encode donor entry")
		return
	}
	sources := domain.TransitionSources(domain.DonationInProgress)
	row := a.SQL.QueryRow(r.Context(), sqlinline.QConfirmDonation, id, entry, sources)
	var updatedID string
	if err := row.Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.renderTransitionFailure(w, r, id)
			return
		}
		a.internal(w, err, "failed to confirm donation")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "Donation confirmed", "modifiedCount": 1})
}

type setRequestStatusRequest struct {
	Status string `json:"status"`
}

// SetRequestStatus applies a guarded lifecycle transition. The UPDATE only
// lands when the current status is a legal source for the target, so stale
// or out-of-order actions surface as conflicts instead of silent overwrites.
func (a *App) SetRequestStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req setRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !domain.ValidDonationStatus(req.Status) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid status")
		return
	}
	target := domain.DonationStatus(req.Status)
	sources := domain.TransitionSources(target)
	if len(sources) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "no transition leads to that status")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSetRequestStatus, id, req.Status, sources)
	var updatedID string
	if err := row.Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.renderTransitionFailure(w, r, id)
			return
		}
		a.internal(w, err, "failed to update donation status")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "Status updated", "modifiedCount": 1})
}

// renderTransitionFailure distinguishes an absent request from an illegal
// transition after a guarded UPDATE matched no row.
func (a *App) renderTransitionFailure(w http.ResponseWriter, r *http.Request, id string) {
	var current string
	err := a.SQL.QueryRow(r.Context(), sqlinline.QSelectRequestStatus, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "donation request not found")
			return
		}
		a.internal(w, err, "failed to load donation request")
		return
	}
	a.error(w, http.StatusConflict, "conflict", "request is "+current+"; transition not allowed")
}

type updateRequestRequest struct {
	RequesterName *string `json:"requesterName"`
	RecipientName *string `json:"recipientName"`
	District      *string `json:"district"`
	Upazila       *string `json:"upazila"`
	Hospital      *string `json:"hospital"`
	Address       *string `json:"address"`
	BloodGroup    *string `json:"bloodGroup"`
	DonationDate  *string `json:"donationDate"`
	DonationTime  *string `json:"donationTime"`
	Message       *string `json:"message"`
}

// UpdateRequest is the admin edit path. donationStatus and donorInfo are not
// editable here; the confirm and status endpoints own the state machine.
func (a *App) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateRequest, id,
		req.RequesterName, req.RecipientName, req.District, req.Upazila, req.Hospital,
		req.Address, req.BloodGroup, req.DonationDate, req.DonationTime, req.Message)
	var updatedID string
	if err := row.Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "donation request not found")
			return
		}
		a.internal(w, err, "failed to update donation request")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "Request updated", "modifiedCount": 1})
}

// DeleteRequest removes a request. Allowed for an admin or for the original
// requester; anyone else gets 403 regardless of the request's state.
func (a *App) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dr, err := scanRequest(a.SQL.QueryRow(r.Context(), sqlinline.QSelectRequestByID, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "donation request not found")
			return
		}
		a.internal(w, err, "failed to load donation request")
		return
	}
	claims, ok := a.currentClaims(r)
	if !ok {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	if claims.Email != dr.RequesterEmail {
		caller, err := a.callerUser(r)
		if err != nil || !domain.Authorize(caller.Role, domain.RoleAdmin) {
			a.error(w, http.StatusForbidden, "forbidden", "only the requester or an admin may delete")
			return
		}
	}
	var deletedID string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QDeleteRequest, id).Scan(&deletedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "donation request not found")
			return
		}
		a.internal(w, err, "failed to delete donation request")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "Request deleted", "deletedCount": 1})
}

// collectRequests drains a request row set; when withTotal is set the last
// column is the window count.
func collectRequests(rows pgx.Rows, withTotal bool) ([]requestDTO, int64, error) {
	items := []requestDTO{}
	var total int64
	for rows.Next() {
		var dr *domain.DonationRequest
		var err error
		if withTotal {
			dr, err = scanRequest(rows, &total)
		} else {
			dr, err = scanRequest(rows)
		}
		if err != nil {
			return nil, 0, err
		}
		items = append(items, requestToDTO(dr))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
