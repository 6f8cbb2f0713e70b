package clinicdex

import "github.com/kailas-cloud/clinicdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrNotFound
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrInvalidRecord    = domain.ErrInvalidRecord
	ErrTransport        = domain.ErrTransport
	ErrStaleResult      = domain.ErrStaleResult
	ErrIndexUnavailable = domain.ErrIndexUnavailable
)
