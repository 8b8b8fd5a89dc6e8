package activity

import (
	"context"
	"time"
)

// Entry is one recorded event in the activity feed.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RecentRequest asks for the newest entries. Limit 0 means all.
type RecentRequest struct {
	Limit int `json:"limit"`
}

// RecentResponse carries entries newest first.
type RecentResponse struct {
	Entries []Entry `json:"entries"`
}

// ActivityPort is the interface other modules use to read the feed.
type ActivityPort interface {
	Recent(ctx context.Context, limit int) ([]Entry, error)
}
