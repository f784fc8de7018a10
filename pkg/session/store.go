package session

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrNotFound is returned by Get when no session exists for the id.
var ErrNotFound = errors.New("session not found")

// Stats is an aggregate view over the store, served by the stats endpoint.
type Stats struct {
	TotalSessions  int `json:"totalSessions"`
	ActiveSessions int `json:"activeSessions"`
	ScamsDetected  int `json:"scamsDetected"`
	IntelItems     int `json:"intelItems"`
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

const storeRetries = 3

// withRetry runs op up to storeRetries times with exponential backoff
// (1s, 2s, 4s). ErrNotFound is definitive and never retried.
func withRetry(ctx context.Context, what string, op func() error) error {
	var err error
	for attempt := 0; attempt < storeRetries; attempt++ {
		if err = op(); err == nil || errors.Is(err, ErrNotFound) {
			return err
		}

		backoff := time.Duration(1<<attempt) * time.Second
		log.Printf("[WARN] %s failed (attempt %d/%d): %v", what, attempt+1, storeRetries, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}
