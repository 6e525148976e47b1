package domain

import "time"

type Note struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyID"`
	GuardID    *int64    `json:"guardID"`
	AuthorID   int64     `json:"authorID"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
