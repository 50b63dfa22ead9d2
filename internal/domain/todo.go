package domain

import "time"

// Todo is the domain entity for a todo item. UserID references the owning
// user and never changes after creation.
type Todo struct {
	ID     int64
	Title  string
	UserID int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
