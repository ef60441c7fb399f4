// Package store persists the trip task collection as a single JSON blob in a
// namespaced preference slot.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/tripplan/internal/domain"
	"github.com/alexanderramin/tripplan/internal/logging"
	"github.com/alexanderramin/tripplan/internal/repository"
)

const (
	// DefaultNamespace is the preference namespace holding the task blob.
	DefaultNamespace = "trip_planning_prefs"
	// TasksKey is the slot within the namespace.
	TasksKey = "tasks_json"
)

// Store loads and saves the whole task collection. It holds no task state
// of its own; every call goes to the preference slot.
type Store struct {
	prefs     repository.PreferenceRepo
	namespace string
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns != "" {
			s.namespace = ns
		}
	}
}

// WithLogger sets the logger used to report unreadable blobs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(prefs repository.PreferenceRepo, opts ...Option) *Store {
	s := &Store{
		prefs:     prefs,
		namespace: DefaultNamespace,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRepo returns a copy of the store that reads and writes through prefs,
// typically a repository bound to an open transaction.
func (s *Store) WithRepo(prefs repository.PreferenceRepo) *Store {
	cp := *s
	cp.prefs = prefs
	return &cp
}

// Namespace reports the preference namespace in use.
func (s *Store) Namespace() string { return s.namespace }

// LoadAll returns every stored task in stored order. It never fails: an
// absent slot, an unreadable slot, or a blob that does not decode all yield
// an empty collection.
func (s *Store) LoadAll(ctx context.Context) []domain.Task {
	raw, err := s.prefs.Get(ctx, s.namespace, TasksKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "reading task slot failed", "namespace", s.namespace, "error", err)
		}
		return []domain.Task{}
	}
	tasks, err := Decode([]byte(raw))
	if err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable task blob", "namespace", s.namespace, "error", err)
		return []domain.Task{}
	}
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}

// SaveAll replaces the stored collection with tasks. Duplicate ids are
// written as given.
func (s *Store) SaveAll(ctx context.Context, tasks []domain.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := s.prefs.Put(ctx, s.namespace, TasksKey, string(data)); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// NextID is one more than the largest stored id, or 1 when nothing is stored.
// It fails with ErrIDsExhausted once the largest id is MaxTaskID.
func (s *Store) NextID(ctx context.Context) (int, error) {
	return AllocateID(s.LoadAll(ctx))
}
