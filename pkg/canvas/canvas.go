// Package canvas projects the active board into an entity world.
//
// Every note of the active board is mirrored by one entity carrying a
// NoteView: a transient copy of the note plus its interaction mode. Drags and
// edits change the copy only; the owning Session writes the result back into
// the store when an interaction ends and before every save.
package canvas

import (
	"fmt"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/aretw0/plop/pkg/core"
)

// Mode is the interaction state of a projected note.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeEditing:
		return "editing"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// NoteView is the per-note component of the projection.
type NoteView struct {
	Note core.Note
	Mode Mode
}

var (
	noteView  = donburi.NewComponentType[NoteView]()
	noteQuery = donburi.NewQuery(filter.Contains(noteView))
)

// Canvas holds the projection of a single board.
type Canvas struct {
	world   donburi.World
	grid    float32
	boardID *uint64
	index   map[uint64]donburi.Entity
	order   []uint64

	onCreated []func(NoteCreated)
	onDropped []func(DragCompleted)
}

// New creates an empty canvas snapping to cells of the given size.
func New(grid float32) (*Canvas, error) {
	if !core.ValidGridSize(grid) {
		return nil, fmt.Errorf("grid %v: %w", grid, core.ErrInvalidGrid)
	}
	c := &Canvas{
		world: donburi.NewWorld(),
		grid:  grid,
		index: make(map[uint64]donburi.Entity),
	}
	c.subscribe()
	return c, nil
}

// World exposes the entity world to systems that attach their own components.
func (c *Canvas) World() donburi.World {
	return c.world
}

// GridSize returns the snapping cell size.
func (c *Canvas) GridSize() float32 {
	return c.grid
}

// BoardID returns the identifier of the projected board.
func (c *Canvas) BoardID() (uint64, bool) {
	if c.boardID == nil {
		return 0, false
	}
	return *c.boardID, true
}

// Rebuild discards every entity and projects board from scratch.
// A nil board leaves the canvas empty. Only the first note carrying a given
// identifier is projected.
func (c *Canvas) Rebuild(board *core.Board) {
	c.Clear()
	if board == nil {
		return
	}
	id := board.ID
	c.boardID = &id
	for _, n := range board.Notes {
		if _, dup := c.index[n.ID]; dup {
			continue
		}
		c.spawn(n)
	}
}

// Clear removes every projected note.
func (c *Canvas) Clear() {
	for _, e := range c.index {
		if c.world.Valid(e) {
			c.world.Remove(e)
		}
	}
	c.index = make(map[uint64]donburi.Entity)
	c.order = nil
	c.boardID = nil
}

// Len returns the number of projected notes.
func (c *Canvas) Len() int {
	return noteQuery.Count(c.world)
}

// Add projects a note that was just added to the board and queues a
// NoteCreated event.
func (c *Canvas) Add(n core.Note) error {
	if c.boardID == nil {
		return core.ErrNoActiveBoard
	}
	if _, exists := c.index[n.ID]; exists {
		return fmt.Errorf("note %d already projected", n.ID)
	}
	c.spawn(n)
	NoteCreatedEvent.Publish(c.world, NoteCreated{BoardID: *c.boardID, Note: n})
	return nil
}

func (c *Canvas) spawn(n core.Note) {
	e := c.world.Create(noteView)
	noteView.SetValue(c.world.Entry(e), NoteView{Note: n})
	c.index[n.ID] = e
	c.order = append(c.order, n.ID)
}

// View returns the projected state of one note.
func (c *Canvas) View(id uint64) (NoteView, bool) {
	v, err := c.view(id)
	if err != nil {
		return NoteView{}, false
	}
	return *v, true
}

// Views lists projected notes in board order.
func (c *Canvas) Views() []NoteView {
	out := make([]NoteView, 0, len(c.order))
	for _, id := range c.order {
		if v, ok := c.View(id); ok {
			out = append(out, v)
		}
	}
	return out
}

func (c *Canvas) view(id uint64) (*NoteView, error) {
	e, ok := c.index[id]
	if !ok || !c.world.Valid(e) {
		return nil, fmt.Errorf("note %d: %w", id, core.ErrNoteNotFound)
	}
	return noteView.Get(c.world.Entry(e)), nil
}

// SyncInto copies every transient note into the board note with the same
// identifier and returns how many were copied. Notes the board does not hold
// are skipped.
func (c *Canvas) SyncInto(board *core.Board) int {
	if board == nil {
		return 0
	}
	synced := 0
	noteQuery.Each(c.world, func(entry *donburi.Entry) {
		if board.ReplaceNote(noteView.Get(entry).Note) {
			synced++
		}
	})
	return synced
}

// Count returns how many projected notes are in mode m.
func (c *Canvas) Count(m Mode) int {
	n := 0
	noteQuery.Each(c.world, func(entry *donburi.Entry) {
		if noteView.Get(entry).Mode == m {
			n++
		}
	})
	return n
}
