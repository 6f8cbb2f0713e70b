package clinicdex

import (
	"context"
	"fmt"
	"time"
)

// Get returns the clinic with the given ID.
func (c *Client) Get(ctx context.Context, id string) (_ Record, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	rec, err := c.repo.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("get %s: %w", id, err)
	}
	return rec, nil
}

// Upsert stores rec, replacing any clinic with the same ID.
// Returns true if the clinic was created.
func (c *Client) Upsert(ctx context.Context, rec *Record) (_ bool, err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert", start, err) }()

	created, err := c.repo.Upsert(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// UpsertBatch stores every valid record in one round trip. Invalid records
// are reported per item and do not block the rest.
func (c *Client) UpsertBatch(ctx context.Context, recs []Record) (_ BatchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert_batch", start, err) }()

	resp := BatchResponse{Results: make([]BatchResult, len(recs))}
	valid := make([]Record, 0, len(recs))
	validIdx := make([]int, 0, len(recs))
	for i := range recs {
		resp.Results[i].ID = recs[i].ID
		if verr := recs[i].Validate(); verr != nil {
			resp.Results[i].Err = fmt.Errorf("%w: %w", ErrInvalidRecord, verr)
			resp.Failed++
			continue
		}
		valid = append(valid, recs[i])
		validIdx = append(validIdx, i)
	}
	if len(valid) == 0 {
		return resp, nil
	}

	if err := c.repo.UpsertMany(ctx, valid); err != nil {
		return resp, fmt.Errorf("upsert batch: %w", err)
	}
	for _, i := range validIdx {
		resp.Results[i].OK = true
	}
	resp.Succeeded = len(valid)
	return resp, nil
}

// Delete removes the clinic with the given ID.
func (c *Client) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	if err = c.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// Count returns the number of indexed clinics.
func (c *Client) Count(ctx context.Context) (_ int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("count", start, err) }()

	n, err := c.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Reindex drops and recreates the clinic index. Stored records are kept;
// searches return ErrIndexUnavailable or partial results until the store
// finishes indexing them again.
func (c *Client) Reindex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("reindex", start, err) }()

	if err = c.repo.Reindex(ctx); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	return nil
}
