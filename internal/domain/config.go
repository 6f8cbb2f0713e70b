package domain

// KeyPrefix namespaces every key written by clinicdex.
const KeyPrefix = "clinicdex:"

// Search limits shared by the transport and the SDK.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 512
	// MinQueryLength is the shortest query that triggers text relevance filtering.
	MinQueryLength = 2
	DefaultLimit   = 50
	MaxLimit       = 500
	// DefaultFetchLimit caps the candidate set requested from the record store.
	DefaultFetchLimit = 2000
	MaxFetchLimit     = 5000
)
