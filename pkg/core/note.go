package core

// Default geometry and content for notes placed from the canvas.
const (
	DefaultNoteText = "New note"
)

// DefaultNoteSize is the extent of a freshly placed note.
var DefaultNoteSize = Vec2{X: 120, Y: 80}

// Note is a single positioned, colored, editable text card.
type Note struct {
	ID    uint64 `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Pos   Pos2   `json:"pos" yaml:"pos"`
	Size  Vec2   `json:"size" yaml:"size"`
	Color Color  `json:"color" yaml:"color"`
}

// Rect returns the area covered by the note.
func (n Note) Rect() Rect {
	return RectFromMinSize(n.Pos, n.Size)
}

// Board is a named canvas holding notes in insertion order.
type Board struct {
	ID         uint64 `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Background Color  `json:"background" yaml:"background"`
	Notes      []Note `json:"notes" yaml:"notes"`
	// SceneRect is the pan/zoom viewport, kept so the view survives restarts.
	SceneRect Rect `json:"scene_rect" yaml:"scene_rect"`
}

// FindNote returns a pointer into the board's note list.
func (b *Board) FindNote(id uint64) (*Note, bool) {
	for i := range b.Notes {
		if b.Notes[i].ID == id {
			return &b.Notes[i], true
		}
	}
	return nil, false
}

// AddNote appends a note to the board.
func (b *Board) AddNote(n Note) {
	b.Notes = append(b.Notes, n)
}

// ReplaceNote overwrites the stored note carrying the same id.
// It reports false when the board has no such note.
func (b *Board) ReplaceNote(n Note) bool {
	stored, ok := b.FindNote(n.ID)
	if !ok {
		return false
	}
	*stored = n
	return true
}
