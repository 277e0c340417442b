package domain

import "time"

// BlogStatus enumerates publication states.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// ValidBlogStatus reports whether the value is a known publication state.
func ValidBlogStatus(s string) bool {
	switch BlogStatus(s) {
	case BlogDraft, BlogPublished:
		return true
	}
	return false
}

// Blog is a content entry authored by volunteers or admins.
type Blog struct {
	ID        string
	Title     string
	Thumbnail string
	Content   string
	Status    BlogStatus
	CreatedAt time.Time
}
