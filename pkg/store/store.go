// Package store implements generic keyed persistence of timestamped records.
// A Store owns one named collection, persisted as a single blob through
// pkg/blob; every mutation is a whole-collection read-modify-write, so
// concurrent writers are last-write-wins on the collection as a unit.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/guardian-io/guardian/internal/clock"
	obsmetrics "github.com/guardian-io/guardian/internal/observability/metrics"
	"github.com/guardian-io/guardian/pkg/blob"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Update when the target record does not exist.
var ErrNotFound = errors.New("record_not_found")

// ErrInvalidPatch is returned by Update when a patch field cannot be decoded
// into the record shape.
var ErrInvalidPatch = errors.New("invalid_patch")

// PersistenceError reports a failed durable read or write.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Meta carries the identity and timestamps shared by all persisted records.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RecordMeta is deliberately not named Meta: on a record type embedding
// Meta the field would shadow a promoted method of the same name.
func (m *Meta) RecordMeta() *Meta { return m }

// Entity is implemented by pointer-embedding Meta in a record type.
type Entity interface {
	RecordMeta() *Meta
}

// Params are the collaborators every store shares.
type Params struct {
	Blobs blob.Store
	Clock clock.Clock
	GenID *snowflake.Node
	Log   *zap.Logger

	// Latency simulates a remote round trip before every operation.
	// Zero disables it; tests run synchronously.
	Latency time.Duration
}

// Store persists one collection of T. PT is the pointer form of T carrying
// the RecordMeta accessor.
type Store[T any, PT interface {
	Entity
	*T
}] struct {
	collection string
	blobs      blob.Store
	clock      clock.Clock
	ids        *snowflake.Node
	log        *zap.Logger
	latency    time.Duration
	metrics    *obsmetrics.StoreMetrics
}

// New builds a store bound to one collection name.
func New[T any, PT interface {
	Entity
	*T
}](collection string, p Params) *Store[T, PT] {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Store[T, PT]{
		collection: collection,
		blobs:      p.Blobs,
		clock:      p.Clock,
		ids:        p.GenID,
		log:        log.Named("store." + collection),
		latency:    p.Latency,
		metrics:    obsmetrics.Store(),
	}
}

// Collection returns the collection name the store is bound to.
func (s *Store[T, PT]) Collection() string {
	return s.collection
}

// Now reads the store's clock, so callers stamping their own fields stay
// consistent with record timestamps.
func (s *Store[T, PT]) Now() time.Time {
	return s.clock.Now()
}

// GetAll returns every record in persisted order. Load or decode failures
// degrade to an empty result and a logged warning, never an error.
func (s *Store[T, PT]) GetAll(ctx context.Context) ([]T, error) {
	defer s.observe("get_all", s.clock.Now())
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	return s.loadAll(ctx, "get_all"), nil
}

// GetByID scans the collection for a matching id. A missing id is reported
// through ok=false, not an error.
func (s *Store[T, PT]) GetByID(ctx context.Context, id string) (T, bool, error) {
	var zero T
	defer s.observe("get_by_id", s.clock.Now())
	if err := s.simulateLatency(ctx); err != nil {
		return zero, false, err
	}
	for _, item := range s.loadAll(ctx, "get_by_id") {
		item := item
		if PT(&item).RecordMeta().ID == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Create assigns a fresh id and timestamps, appends the record and persists
// the whole collection. Nothing is visible if the write fails.
func (s *Store[T, PT]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	defer s.observe("create", s.clock.Now())
	if err := s.simulateLatency(ctx); err != nil {
		return zero, err
	}

	now := s.clock.Now()
	meta := PT(&item).RecordMeta()
	meta.ID = s.ids.Generate().String()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	items := append(s.loadAll(ctx, "create"), item)
	if err := s.persist(ctx, "create", items); err != nil {
		return zero, err
	}
	return item, nil
}

// Update merges the patch onto the record with the given id. The merge is
// shallow: a provided field fully replaces the old value, omitted fields are
// preserved, and id/createdAt/updatedAt cannot be patched. Checks run on the
// merged record before anything is persisted; a failing check leaves the
// stored record untouched.
func (s *Store[T, PT]) Update(ctx context.Context, id string, patch map[string]json.RawMessage, checks ...func(T) error) (T, error) {
	var zero T
	defer s.observe("update", s.clock.Now())
	if err := s.simulateLatency(ctx); err != nil {
		return zero, err
	}

	items := s.loadAll(ctx, "update")
	index := -1
	for i := range items {
		if PT(&items[i]).RecordMeta().ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return zero, ErrNotFound
	}

	merged, err := s.merge(items[index], patch)
	if err != nil {
		return zero, err
	}
	for _, check := range checks {
		if err := check(merged); err != nil {
			return zero, err
		}
	}
	PT(&merged).RecordMeta().UpdatedAt = s.clock.Now()

	items[index] = merged
	if err := s.persist(ctx, "update", items); err != nil {
		return zero, err
	}
	return merged, nil
}

// Delete removes the record with the given id. A missing id is a no-op; the
// collection is persisted either way.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) error {
	defer s.observe("delete", s.clock.Now())
	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	items := s.loadAll(ctx, "delete")
	kept := items[:0:0]
	for i := range items {
		if PT(&items[i]).RecordMeta().ID != id {
			kept = append(kept, items[i])
		}
	}
	return s.persist(ctx, "delete", kept)
}

// Seed assigns metas to the given records and persists them as the whole
// collection. Callers invoke it when a read observed the collection empty.
func (s *Store[T, PT]) Seed(ctx context.Context, items []T) ([]T, error) {
	now := s.clock.Now()
	for i := range items {
		meta := PT(&items[i]).RecordMeta()
		if meta.ID == "" {
			meta.ID = s.ids.Generate().String()
		}
		meta.CreatedAt = now
		meta.UpdatedAt = now
	}
	if err := s.persist(ctx, "seed", items); err != nil {
		return nil, err
	}
	s.metrics.IncSeed(s.collection)
	s.log.Info("collection seeded", zap.Int("records", len(items)))
	return items, nil
}

func (s *Store[T, PT]) loadAll(ctx context.Context, op string) []T {
	data, err := s.blobs.Load(ctx, s.collection)
	if err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			s.metrics.IncFailure(s.collection, op, "load")
			s.log.Warn("load failed, degrading to empty collection", zap.Error(err))
		}
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.metrics.IncFailure(s.collection, op, "decode")
		s.log.Warn("decode failed, degrading to empty collection", zap.Error(err))
		return nil
	}
	return items
}

func (s *Store[T, PT]) persist(ctx context.Context, op string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.metrics.IncFailure(s.collection, op, "encode")
		return &PersistenceError{Op: op, Collection: s.collection, Err: err}
	}
	if err := s.blobs.Save(ctx, s.collection, data); err != nil {
		s.metrics.IncFailure(s.collection, op, "save")
		return &PersistenceError{Op: op, Collection: s.collection, Err: err}
	}
	return nil
}

func (s *Store[T, PT]) merge(current T, patch map[string]json.RawMessage) (T, error) {
	var zero T
	encoded, err := json.Marshal(current)
	if err != nil {
		return zero, &PersistenceError{Op: "update", Collection: s.collection, Err: err}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return zero, &PersistenceError{Op: "update", Collection: s.collection, Err: err}
	}

	for key, value := range patch {
		switch key {
		case "id", "createdAt", "updatedAt":
			continue
		}
		fields[key] = value
	}

	normalized, err := json.Marshal(fields)
	if err != nil {
		return zero, &PersistenceError{Op: "update", Collection: s.collection, Err: err}
	}

	var merged T
	if err := json.Unmarshal(normalized, &merged); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return merged, nil
}

func (s *Store[T, PT]) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Store[T, PT]) observe(op string, start time.Time) {
	s.metrics.IncOperation(s.collection, op)
	s.metrics.ObserveOperation(s.collection, op, s.clock.Now().Sub(start))
}
