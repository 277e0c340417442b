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

type registerUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Photo      string `json:"photo"`
	BloodGroup string `json:"blood_group"`
	District   string `json:"district"`
	Upazila    string `json:"upazila"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

type userDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Photo      string    `json:"photo"`
	BloodGroup string    `json:"blood_group"`
	District   string    `json:"district"`
	Upazila    string    `json:"upazila"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func userToDTO(u *domain.User) userDTO {
	return userDTO{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Photo:      u.Photo,
		BloodGroup: u.BloodGroup,
		District:   u.District,
		Upazila:    u.Upazila,
		Role:       string(u.Role),
		Status:     string(u.Status),
		CreatedAt:  u.CreatedAt,
	}
}

// RegisterUser handles public self-registration. The unique index on email
// makes the duplicate check atomic; a conflicting insert scans no row.
func (a *App) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Name == "" || req.Email == "" || req.Photo == "" || req.BloodGroup == "" ||
		req.District == "" || req.Upazila == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields")
		return
	}
	role := req.Role
	if role == "" {
		role = string(domain.RoleDonor)
	}
	status := req.Status
	if status == "" {
		status = string(domain.UserActive)
	}
	if !domain.ValidRole(role) || !domain.ValidUserStatus(status) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid role or status")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser,
		req.Name, req.Email, req.Photo, req.BloodGroup, req.District, req.Upazila, role, status)
	var userID string
	if err := row.Scan(&userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusConflict, "conflict", "User already exists")
			return
		}
		a.internal(w, err, "failed to register user")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"message": "User registered", "userId": userID})
}

// UserProfile returns the caller's own directory record.
func (a *App) UserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := a.callerUser(r)
	if err != nil {
		a.renderUserLookupError(w, err)
		return
	}
	a.json(w, http.StatusOK, userToDTO(user))
}

// UserRole returns the caller's role and status for client-side gating.
func (a *App) UserRole(w http.ResponseWriter, r *http.Request) {
	user, err := a.callerUser(r)
	if err != nil {
		a.renderUserLookupError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"msg":    "ok",
		"role":   string(user.Role),
		"status": string(user.Status),
	})
}

func (a *App) renderUserLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "user not found")
	default:
		a.internal(w, err, "failed to load user")
	}
}

type updateUserRequest struct {
	Name       *string `json:"name"`
	Photo      *string `json:"photo"`
	BloodGroup *string `json:"blood_group"`
	District   *string `json:"district"`
	Upazila    *string `json:"upazila"`
}

// UpdateUser patches profile fields. Only the user themself or an admin may
// call it; role and status have dedicated admin endpoints and are not
// reachable from here.
func (a *App) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	target, err := scanUser(a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.internal(w, err, "failed to load user")
		return
	}
	caller, err := a.callerUser(r)
	if err != nil {
		a.renderUserLookupError(w, err)
		return
	}
	if caller.Email != target.Email && !domain.Authorize(caller.Role, domain.RoleAdmin) {
		a.error(w, http.StatusForbidden, "forbidden", "cannot edit another user")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateUserProfile,
		id, req.Name, req.Photo, req.BloodGroup, req.District, req.Upazila)
	var updatedID string
	if err := row.Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.internal(w, err, "failed to update user")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "User updated", "modifiedCount": 1})
}

// ListUsers pages the directory for the admin panel, with optional status
// and email filters.
func (a *App) ListUsers(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !domain.ValidUserStatus(status) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid status filter")
		return
	}
	email := r.URL.Query().Get("email")
	limit, offset := pagination(r)

	rows, err := a.SQL.Query(r.Context(), sqlinline.QListUsers, status, email, limit, offset)
	if err != nil {
		a.internal(w, err, "failed to list users")
		return
	}
	defer rows.Close()

	users := []userDTO{}
	var total int64
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Photo, &u.BloodGroup, &u.District,
			&u.Upazila, &u.Role, &u.Status, &u.CreatedAt, &total); err != nil {
			a.internal(w, err, "failed to scan user")
			return
		}
		users = append(users, userToDTO(&u))
	}
	if err := rows.Err(); err != nil {
		a.internal(w, err, "failed to list users")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"users": users, "total": total})
}

// SetUserStatus is the admin block/unblock action.
func (a *App) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	a.setUserField(w, r, "status")
}

// SetUserRole promotes or demotes a user; admin only.
func (a *App) SetUserRole(w http.ResponseWriter, r *http.Request) {
	a.setUserField(w, r, "role")
}

func (a *App) setUserField(w http.ResponseWriter, r *http.Request, field string) {
	id := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status"`
		Role   string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	var query, value string
	switch field {
	case "status":
		if !domain.ValidUserStatus(req.Status) {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid status")
			return
		}
		query, value = sqlinline.QUpdateUserStatus, req.Status
	case "role":
		if !domain.ValidRole(req.Role) {
			a.error(w, http.StatusBadRequest, "bad_request", "invalid role")
			return
		}
		query, value = sqlinline.QUpdateUserRole, req.Role
	}

	var updatedID string
	if err := a.SQL.QueryRow(r.Context(), query, id, value).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.internal(w, err, "failed to update user")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "User updated", "modifiedCount": 1})
}
