// Package store persists week records as one serialized blob mapping
// week key to record, behind a pluggable blob backend. Loads run every
// stored record through the normalizer, so callers only ever see the
// canonical shape.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/daeun-lee/hakwonlog/internal/record"
)

// Namespace is the fixed storage key under which the entire week-record
// mapping lives. It predates this server; keeping it lets existing data
// files load as-is.
const Namespace = "weekly-records"

// Blob is the single-value persistence port the adapter reads and
// writes through. Get reports false when nothing has been stored yet.
type Blob interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Put(ctx context.Context, data []byte) error
}

// Store reads and writes week records through a Blob backend.
type Store struct {
	blob Blob
}

// New creates a store over a blob backend.
func New(blob Blob) *Store {
	return &Store{blob: blob}
}

// Load returns the normalized record for weekKey. A week that was never
// saved loads as the canonical empty record.
func (s *Store) Load(ctx context.Context, weekKey string) (record.WeekRecord, error) {
	all, err := s.all(ctx)
	if err != nil {
		return record.WeekRecord{}, err
	}
	raw, ok := all[weekKey]
	if !ok {
		return record.Empty(), nil
	}
	return record.Decode(raw), nil
}

// Save replaces the stored record for weekKey with the normalized form
// of rec. Saves are whole-record replacements, not patches.
func (s *Store) Save(ctx context.Context, weekKey string, rec record.WeekRecord) error {
	all, err := s.all(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(record.Normalize(rec))
	if err != nil {
		return fmt.Errorf("encoding week %s: %w", weekKey, err)
	}
	all[weekKey] = raw
	return s.flush(ctx, all)
}

// Delete removes weekKey from the store entirely. Deleting an absent
// key is a no-op.
func (s *Store) Delete(ctx context.Context, weekKey string) error {
	all, err := s.all(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[weekKey]; !ok {
		return nil
	}
	delete(all, weekKey)
	return s.flush(ctx, all)
}

// ListKeys returns every stored week key in no particular order.
// Ordering is the caller's concern.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	return keys, nil
}

// all loads the full week-key mapping. A missing or corrupt blob is an
// empty store, never an error; only backend I/O failures propagate.
func (s *Store) all(ctx context.Context) (map[string]json.RawMessage, error) {
	data, ok, err := s.blob.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading record blob: %w", err)
	}
	if !ok {
		return map[string]json.RawMessage{}, nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		slog.Warn("record blob is corrupt, treating store as empty", "error", err)
		return map[string]json.RawMessage{}, nil
	}
	if all == nil {
		all = map[string]json.RawMessage{}
	}
	return all, nil
}

func (s *Store) flush(ctx context.Context, all map[string]json.RawMessage) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encoding record blob: %w", err)
	}
	if err := s.blob.Put(ctx, data); err != nil {
		return fmt.Errorf("writing record blob: %w", err)
	}
	return nil
}
