package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidRecord signals a clinic record rejected on write.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrTransport signals that the record store could not be reached or failed.
	ErrTransport = errors.New("record store unavailable")
	// ErrStaleResult signals a fetch superseded by a newer request.
	ErrStaleResult = errors.New("stale result")
	// ErrIndexUnavailable signals a missing or broken search index.
	ErrIndexUnavailable = errors.New("search index unavailable")
)

// StaleResultError wraps ErrStaleResult with the generation numbers involved.
type StaleResultError struct {
	Generation uint64
	Current    uint64
}

func (e *StaleResultError) Error() string {
	return fmt.Sprintf("%s: generation %d superseded by %d", ErrStaleResult.Error(), e.Generation, e.Current)
}

func (e *StaleResultError) Unwrap() error { return ErrStaleResult }

// NewStaleResult creates a stale result error.
func NewStaleResult(generation, current uint64) error {
	return &StaleResultError{Generation: generation, Current: current}
}
