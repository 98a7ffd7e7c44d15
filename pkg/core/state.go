package core

import (
	"fmt"
	"sort"
)

// DefaultBoardName is the name given to the board of a fresh single-board store.
const DefaultBoardName = "Board"

// State is the durable root of the multi-board store.
//
// Note identifiers come from one store-global counter, so they are unique
// across every board and not just within the board that holds them.
type State struct {
	Boards       map[uint64]*Board `json:"boards" yaml:"boards"`
	CurrentBoard *uint64           `json:"current_board" yaml:"current_board"`
	NextNoteID   uint64            `json:"next_note_id" yaml:"next_note_id"`
	NextBoardID  uint64            `json:"next_board_id" yaml:"next_board_id"`
}

// NewState returns the default multi-board store: no boards, no active board
// and both counters at zero.
func NewState() State {
	return State{Boards: make(map[uint64]*Board)}
}

// AllocateNoteID returns the current note counter and advances it.
func (s *State) AllocateNoteID() uint64 {
	id := s.NextNoteID
	s.NextNoteID++
	return id
}

// AllocateBoardID returns the current board counter and advances it.
func (s *State) AllocateBoardID() uint64 {
	id := s.NextBoardID
	s.NextBoardID++
	return id
}

// NewBoard creates an empty board with a fresh identifier.
// The new board becomes active when no board is active yet.
func (s *State) NewBoard(name string, background Color) *Board {
	if s.Boards == nil {
		s.Boards = make(map[uint64]*Board)
	}
	b := &Board{
		ID:         s.AllocateBoardID(),
		Name:       name,
		Background: background,
		Notes:      []Note{},
	}
	s.Boards[b.ID] = b
	if _, ok := s.ActiveBoard(); !ok {
		id := b.ID
		s.CurrentBoard = &id
	}
	return b
}

// Board looks a board up by identifier.
func (s *State) Board(id uint64) (*Board, bool) {
	b, ok := s.Boards[id]
	return b, ok && b != nil
}

// ActiveBoard returns the board referenced by CurrentBoard.
// A missing or dangling reference yields false and never an error.
func (s *State) ActiveBoard() (*Board, bool) {
	if s.CurrentBoard == nil {
		return nil, false
	}
	return s.Board(*s.CurrentBoard)
}

// SetActive switches the active board.
func (s *State) SetActive(id uint64) error {
	if _, ok := s.Board(id); !ok {
		return fmt.Errorf("board %d: %w", id, ErrBoardNotFound)
	}
	s.CurrentBoard = &id
	return nil
}

// ClearActive leaves the store with no active board.
func (s *State) ClearActive() {
	s.CurrentBoard = nil
}

// SortedBoardIDs lists board identifiers in ascending order.
func (s *State) SortedBoardIDs() []uint64 {
	ids := make([]uint64, 0, len(s.Boards))
	for id := range s.Boards {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reconcile repairs counters that fell behind the stored data, as happens with
// hand-edited or partially migrated files. Both counters move past the largest
// identifier in use, and a note whose identifier was already seen (on any
// board) gets a fresh one. It reports whether anything changed.
func (s *State) Reconcile() bool {
	changed := false
	ids := s.SortedBoardIDs()
	for _, id := range ids {
		if id >= s.NextBoardID {
			s.NextBoardID = id + 1
			changed = true
		}
		if b := s.Boards[id]; b != nil {
			for _, n := range b.Notes {
				if n.ID >= s.NextNoteID {
					s.NextNoteID = n.ID + 1
					changed = true
				}
			}
		}
	}

	seen := make(map[uint64]bool)
	for _, id := range ids {
		b := s.Boards[id]
		if b == nil {
			continue
		}
		for i := range b.Notes {
			if seen[b.Notes[i].ID] {
				b.Notes[i].ID = s.AllocateNoteID()
				changed = true
			}
			seen[b.Notes[i].ID] = true
		}
	}
	return changed
}

// NoteCount returns the number of notes over all boards.
func (s *State) NoteCount() int {
	n := 0
	for _, b := range s.Boards {
		if b != nil {
			n += len(b.Notes)
		}
	}
	return n
}

// SingleBoardState is the older single-board snapshot layout.
// It is not interchangeable with State on disk.
type SingleBoardState struct {
	Board      Board  `json:"board" yaml:"board"`
	NextNoteID uint64 `json:"next_note_id" yaml:"next_note_id"`
}

// NewSingleBoardState returns the default single-board store: one light blue
// board named "Board" with id 1 and the note counter at 1.
func NewSingleBoardState() SingleBoardState {
	return SingleBoardState{
		Board: Board{
			ID:         1,
			Name:       DefaultBoardName,
			Background: LightBlue,
			Notes:      []Note{},
			SceneRect:  RectFromMinSize(Pos2{}, Vec2{}),
		},
		NextNoteID: 1,
	}
}

// AllocateNoteID returns the current note counter and advances it.
func (s *SingleBoardState) AllocateNoteID() uint64 {
	id := s.NextNoteID
	s.NextNoteID++
	return id
}

// Upgrade converts a single-board snapshot into the multi-board layout.
// The board keeps its identifier and becomes the active board.
func Upgrade(old SingleBoardState) State {
	board := old.Board
	board.Notes = append([]Note{}, old.Board.Notes...)

	st := NewState()
	st.Boards[board.ID] = &board
	id := board.ID
	st.CurrentBoard = &id
	st.NextNoteID = old.NextNoteID
	st.NextBoardID = board.ID + 1
	st.Reconcile()
	return st
}
