package clinicdex

import (
	"context"
	"fmt"
	"time"
)

// Search fetches candidates narrowed by c and ranks them under f.
// An Outcome with FellBackToUnfiltered set is a successful result.
func (c *Client) Search(ctx context.Context, crit Criteria, f Filter) (_ Outcome, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	out, err := c.searchSvc.Search(ctx, crit, f)
	if err != nil {
		return Outcome{}, fmt.Errorf("search: %w", err)
	}
	return out, nil
}

// Nationwide ranks clinics anywhere by how well their name matches query.
func (c *Client) Nationwide(ctx context.Context, query string, limit int) (_ Outcome, err error) {
	start := time.Now()
	defer func() { c.obs.observe("nationwide", start, err) }()

	out, err := c.searchSvc.Nationwide(ctx, query, limit)
	if err != nil {
		return Outcome{}, fmt.Errorf("nationwide: %w", err)
	}
	return out, nil
}

// ExpandTerms returns the sorted canonical medical terms for a raw query.
func (c *Client) ExpandTerms(raw string) []string {
	return c.searchSvc.ExpandTerms(raw)
}

// Suggest returns lexicon terms resembling input, best first.
func (c *Client) Suggest(input string, limit int) []string {
	return c.searchSvc.Suggest(input, limit)
}

// ComputeResults ranks candidates under f without touching the store.
func (c *Client) ComputeResults(candidates []Record, f Filter) Outcome {
	return c.searchSvc.ComputeResults(candidates, f)
}

// NewSession creates an interactive session. Only the most recent Fetch
// of a session updates it; filter changes recompute from the retained
// candidates without refetching.
func (c *Client) NewSession() *Session {
	return c.searchSvc.NewSession()
}
