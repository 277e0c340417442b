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

type createBlogRequest struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Content   string `json:"content"`
}

type blogDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBlog adds a draft entry; volunteers and admins only (enforced by the
// route guard). Publication is a separate admin action.
func (a *App) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req createBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" || req.Thumbnail == "" || req.Content == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields")
		return
	}
	var id string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QInsertBlog,
		req.Title, req.Thumbnail, req.Content).Scan(&id); err != nil {
		a.internal(w, err, "failed to create blog")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"message": "Blog created", "id": id})
}

// ListBlogs returns entries, optionally filtered by publication status.
func (a *App) ListBlogs(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !domain.ValidBlogStatus(status) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid status filter")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListBlogs, status)
	if err != nil {
		a.internal(w, err, "failed to list blogs")
		return
	}
	defer rows.Close()
	blogs := []blogDTO{}
	for rows.Next() {
		var b blogDTO
		if err := rows.Scan(&b.ID, &b.Title, &b.Thumbnail, &b.Content, &b.Status, &b.CreatedAt); err != nil {
			a.internal(w, err, "failed to scan blog")
			return
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		a.internal(w, err, "failed to list blogs")
		return
	}
	a.json(w, http.StatusOK, blogs)
}

// SetBlogStatus publishes or unpublishes an entry; admin only.
func (a *App) SetBlogStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if !domain.ValidBlogStatus(req.Status) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid status")
		return
	}
	var updatedID string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QSetBlogStatus, id, req.Status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "blog not found")
			return
		}
		a.internal(w, err, "failed to update blog")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "Blog updated", "modifiedCount": 1})
}

// DeleteBlog removes an entry; admin only.
func (a *App) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var deletedID string
	if err := a.SQL.QueryRow(r.Context(), sqlinline.QDeleteBlog, id).Scan(&deletedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			a.error(w, http.StatusNotFound, "not_found", "blog not found")
			return
		}
		a.internal(w, err, "failed to delete blog")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"message": "Blog deleted", "deletedCount": 1})
}
