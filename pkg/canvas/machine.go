package canvas

import (
	"fmt"

	"github.com/aretw0/plop/pkg/core"
)

// A note is Idle, Dragging or Editing. Dragging and Editing never overlap:
// both can only be entered from Idle.

func (c *Canvas) transition(id uint64, from, to Mode) (*NoteView, error) {
	v, err := c.view(id)
	if err != nil {
		return nil, err
	}
	if v.Mode != from {
		return nil, fmt.Errorf("note %d: %s -> %s: %w", id, v.Mode, to, core.ErrInvalidTransition)
	}
	v.Mode = to
	return v, nil
}

func (c *Canvas) require(id uint64, mode Mode) (*NoteView, error) {
	v, err := c.view(id)
	if err != nil {
		return nil, err
	}
	if v.Mode != mode {
		return nil, fmt.Errorf("note %d is %s, not %s: %w", id, v.Mode, mode, core.ErrInvalidTransition)
	}
	return v, nil
}

// BeginDrag starts moving an idle note.
func (c *Canvas) BeginDrag(id uint64) error {
	_, err := c.transition(id, ModeIdle, ModeDragging)
	return err
}

// DragBy moves a dragged note by delta without snapping.
func (c *Canvas) DragBy(id uint64, delta core.Vec2) error {
	v, err := c.require(id, ModeDragging)
	if err != nil {
		return err
	}
	v.Note.Pos = v.Note.Pos.Add(delta)
	return nil
}

// Preview returns where a dragged note would land if released now.
func (c *Canvas) Preview(id uint64) (core.Rect, error) {
	v, err := c.require(id, ModeDragging)
	if err != nil {
		return core.Rect{}, err
	}
	return core.RectFromMinSize(core.SnapToGrid(v.Note.Pos, c.grid), v.Note.Size), nil
}

// EndDrag snaps the dragged note, returns it to Idle and queues a
// DragCompleted event. The returned note is what the store must hold.
func (c *Canvas) EndDrag(id uint64) (core.Note, error) {
	v, err := c.transition(id, ModeDragging, ModeIdle)
	if err != nil {
		return core.Note{}, err
	}
	v.Note.Pos = core.SnapToGrid(v.Note.Pos, c.grid)

	board, _ := c.BoardID()
	DragCompletedEvent.Publish(c.world, DragCompleted{BoardID: board, NoteID: id, Pos: v.Note.Pos})
	return v.Note, nil
}

// BeginEdit opens an idle note for editing.
func (c *Canvas) BeginEdit(id uint64) error {
	_, err := c.transition(id, ModeIdle, ModeEditing)
	return err
}

// SetText replaces the text of a note being edited.
func (c *Canvas) SetText(id uint64, text string) error {
	v, err := c.require(id, ModeEditing)
	if err != nil {
		return err
	}
	v.Note.Text = text
	return nil
}

// SetColor replaces the color of a note being edited.
func (c *Canvas) SetColor(id uint64, color core.Color) error {
	v, err := c.require(id, ModeEditing)
	if err != nil {
		return err
	}
	v.Note.Color = color
	return nil
}

// FinishEdit closes the editor and returns the edited note.
func (c *Canvas) FinishEdit(id uint64) (core.Note, error) {
	v, err := c.transition(id, ModeEditing, ModeIdle)
	if err != nil {
		return core.Note{}, err
	}
	return v.Note, nil
}
