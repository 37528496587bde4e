package model

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Item is a single bucket-list goal owned by one user.
type Item struct {
	ID         string       `json:"id"`
	OwnerID    string       `json:"-"`
	Title      string       `json:"title"`
	Category   string       `json:"category"`
	Priority   string       `json:"priority"`
	TargetDate *strfmt.Date `json:"targetDate,omitempty"`
	AddedAt    time.Time    `json:"addedAt"`
	Completed  bool         `json:"completed"`

	// DaysLeft is derived from TargetDate at read time and never persisted.
	DaysLeft *int `json:"daysLeft,omitempty"`
}

// User is the identity resolved from a session. Username is display-only;
// authorization decisions use UserID exclusively.
type User struct {
	UserID    string    `json:"id"`
	Username  string    `json:"username"`
	LoginTime time.Time `json:"loginTime"`
}

// Session is a server-side login record referenced by the signed cookie.
type Session struct {
	ID        string    `json:"sessionId"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}
