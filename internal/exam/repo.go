package exam

import (
	"context"
	"errors"
)

var (
	ErrResultNotFound = errors.New("session result not found")
	ErrResultExists   = errors.New("session result already stored")
)

type ListOpts struct {
	Subject   Subject // optional
	Mode      Mode    // optional
	LearnerID string  // optional
	Limit     int
	Offset    int
}

// Store keeps submitted session results. Results are append-only: a stored
// id is never overwritten.
type Store interface {
	PutResult(ctx context.Context, r SessionResult) error
	GetResult(ctx context.Context, id string) (SessionResult, error)
	// ListResults returns newest first (by FinishedAt, then StartedAt).
	ListResults(ctx context.Context, opts ListOpts) ([]SessionResult, error)
}
