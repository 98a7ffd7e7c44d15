package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Codec          string     `json:"codec"`
	RepositoryType string     `json:"repository_type"`
	LastOutcome    string     `json:"last_outcome,omitempty"`
	LastLoad       *time.Time `json:"last_load,omitempty"`
	LastSave       *time.Time `json:"last_save,omitempty"`
	Saves          int        `json:"saves"`
	LastSaveError  string     `json:"last_save_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store[T]) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		// Try to get component type if repository implements introspection.Component
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	st := StoreState{
		Codec:          s.codec.Name(),
		RepositoryType: repoType,
		LastLoad:       s.lastLoad,
		LastSave:       s.lastSave,
		Saves:          s.saves,
	}
	if s.lastOutcome != nil {
		st.LastOutcome = s.lastOutcome.String()
	}
	if s.saveErr != nil {
		st.LastSaveError = s.saveErr.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store[T]) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store[State])(nil)
var _ introspection.Component = (*Store[State])(nil)
