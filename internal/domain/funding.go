package domain

import "time"

// Funding records a monetary contribution. Append-only; there is no update
// or delete surface.
type Funding struct {
	ID        string
	UserName  string
	UserEmail string
	Amount    int64
	CreatedAt time.Time
}
