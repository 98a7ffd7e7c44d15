package canvas

import (
	"github.com/aretw0/introspection"
)

// SessionState exposes internal state for observability.
type SessionState struct {
	ActiveBoard *uint64 `json:"active_board,omitempty"`
	Boards      int     `json:"boards"`
	Notes       int     `json:"notes"`
	Projected   int     `json:"projected"`
	Dragging    int     `json:"dragging"`
	Editing     int     `json:"editing"`
	GridSize    float32 `json:"grid_size"`
	NextNoteID  uint64  `json:"next_note_id"`
	NextBoardID uint64  `json:"next_board_id"`
	LastLoad    string  `json:"last_load"`
	SearchQuery string  `json:"search_query,omitempty"`
	Matches     int     `json:"matches"`
	Store       any     `json:"store"`
	Repository  any     `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SessionState{
		Boards:      len(s.state.Boards),
		Notes:       s.state.NoteCount(),
		Projected:   s.canvas.Len(),
		Dragging:    s.canvas.Count(ModeDragging),
		Editing:     s.canvas.Count(ModeEditing),
		GridSize:    s.canvas.GridSize(),
		NextNoteID:  s.state.NextNoteID,
		NextBoardID: s.state.NextBoardID,
		LastLoad:    s.outcome.String(),
		SearchQuery: s.search.Query(),
		Matches:     len(s.search.matches),
		Store:       s.store.State(),
	}
	if b, ok := s.state.ActiveBoard(); ok {
		id := b.ID
		st.ActiveBoard = &id
	}
	if repo, ok := s.store.Repository().(introspection.Introspectable); ok {
		st.Repository = repo.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
