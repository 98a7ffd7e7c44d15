package canvas

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/aretw0/plop/pkg/core"
)

// NoteCreated is queued when a note is placed on the projected board.
type NoteCreated struct {
	BoardID uint64
	Note    core.Note
}

// DragCompleted is queued when a drag ends and the note has been snapped.
type DragCompleted struct {
	BoardID uint64
	NoteID  uint64
	Pos     core.Pos2
}

// Feedback event types. Sound and animation players subscribe to these.
var (
	NoteCreatedEvent   = events.NewEventType[NoteCreated]()
	DragCompletedEvent = events.NewEventType[DragCompleted]()
)

func (c *Canvas) subscribe() {
	NoteCreatedEvent.Subscribe(c.world, func(_ donburi.World, e NoteCreated) {
		for _, fn := range c.onCreated {
			fn(e)
		}
	})
	DragCompletedEvent.Subscribe(c.world, func(_ donburi.World, e DragCompleted) {
		for _, fn := range c.onDropped {
			fn(e)
		}
	})
}

// OnNoteCreated registers fn for NoteCreated events.
func (c *Canvas) OnNoteCreated(fn func(NoteCreated)) {
	c.onCreated = append(c.onCreated, fn)
}

// OnDragCompleted registers fn for DragCompleted events.
func (c *Canvas) OnDragCompleted(fn func(DragCompleted)) {
	c.onDropped = append(c.onDropped, fn)
}

// Flush delivers every queued event to its listeners.
func (c *Canvas) Flush() {
	events.ProcessAllEvents(c.world)
}
