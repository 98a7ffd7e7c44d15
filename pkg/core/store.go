package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Outcome records how a Load resolved. Callers see the same value for every
// defaulted outcome; the distinction exists for diagnostics and tests.
type Outcome int

const (
	OutcomeLoaded Outcome = iota
	OutcomeMissing
	OutcomeUnreadable
	OutcomeCorrupt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeMissing:
		return "missing"
	case OutcomeUnreadable:
		return "unreadable"
	case OutcomeCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// LoadResult carries the loaded (or defaulted) snapshot and why.
type LoadResult[T any] struct {
	Value   T
	Outcome Outcome
	// Err is the cause of a defaulted load. It is nil for OutcomeLoaded.
	Err error
}

// Defaulted reports whether Value is the default snapshot.
func (r LoadResult[T]) Defaulted() bool {
	return r.Outcome != OutcomeLoaded
}

// Store owns load and save of one snapshot type against a Repository.
//
// Load never fails: missing, unreadable and corrupt data all resolve to the
// default snapshot. Save reports failures so that the caller can decide how
// loud to be about them.
type Store[T any] struct {
	repo     Repository
	codec    Codec
	defaults func() T
	logger   *slog.Logger

	mu          sync.RWMutex
	lastOutcome *Outcome
	lastLoad    *time.Time
	lastSave    *time.Time
	saves       int
	saveErr     error
}

// NewStore creates a Store. defaults builds a fresh default snapshot and is
// called on every defaulted load.
func NewStore[T any](repo Repository, codec Codec, defaults func() T, logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store[T]{
		repo:     repo,
		codec:    codec,
		defaults: defaults,
		logger:   logger,
	}
}

// Repository returns the underlying storage adapter.
func (s *Store[T]) Repository() Repository {
	return s.repo
}

// Load reads and decodes the snapshot, falling back to the default.
func (s *Store[T]) Load(ctx context.Context) LoadResult[T] {
	res := s.load(ctx)
	s.recordLoad(res.Outcome)

	switch res.Outcome {
	case OutcomeLoaded:
		s.logger.Debug("state loaded", "codec", s.codec.Name())
	case OutcomeMissing:
		s.logger.Debug("no persisted state, starting fresh")
	default:
		s.logger.Warn("discarding persisted state, starting fresh",
			"outcome", res.Outcome.String(),
			"error", res.Err,
		)
	}
	return res
}

func (s *Store[T]) load(ctx context.Context) LoadResult[T] {
	data, err := s.repo.Read(ctx)
	if err != nil {
		outcome := OutcomeUnreadable
		if errors.Is(err, ErrNotFound) {
			outcome = OutcomeMissing
		}
		return LoadResult[T]{Value: s.defaults(), Outcome: outcome, Err: err}
	}

	var v T
	if err := s.codec.Decode(data, &v); err != nil {
		return LoadResult[T]{
			Value:   s.defaults(),
			Outcome: OutcomeCorrupt,
			Err:     fmt.Errorf("%w: %w", ErrCorrupt, err),
		}
	}
	return LoadResult[T]{Value: v, Outcome: OutcomeLoaded}
}

// Save encodes v and replaces the persisted snapshot.
func (s *Store[T]) Save(ctx context.Context, v T) error {
	err := s.save(ctx, v)
	s.recordSave(err)
	return err
}

func (s *Store[T]) save(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.codec.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.repo.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

// SaveQuietly saves v and logs a failure instead of returning it.
func (s *Store[T]) SaveQuietly(ctx context.Context, v T) {
	if err := s.Save(ctx, v); err != nil {
		s.logger.Warn("state not saved", "error", err)
	}
}

func (s *Store[T]) recordLoad(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastOutcome = &o
	s.lastLoad = &now
}

func (s *Store[T]) recordSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
	if err == nil {
		now := time.Now()
		s.lastSave = &now
		s.saves++
	}
}
