package canvas

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/plop/pkg/core"
)

// Session is the single owner of a loaded State. It keeps the projection,
// the search and the persisted snapshot consistent with each other.
//
// Session is safe for concurrent use; every operation holds one lock.
type Session struct {
	mu     sync.Mutex
	state  core.State
	store  *core.Store[core.State]
	canvas *Canvas
	search Search
	logger *slog.Logger

	outcome core.Outcome
	closed  bool
}

// NewSession creates a session over store. The state starts at the default
// until Load is called.
func NewSession(store *core.Store[core.State], canvas *Canvas, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		state:  core.NewState(),
		store:  store,
		canvas: canvas,
		logger: logger,
	}
}

// Canvas returns the projection of the active board.
func (s *Session) Canvas() *Canvas {
	return s.canvas
}

// Store returns the persistence handle.
func (s *Session) Store() *core.Store[core.State] {
	return s.store
}

// Load replaces the in-memory state with the persisted snapshot (or the
// default), then rebuilds the projection and the search.
func (s *Session) Load(ctx context.Context) core.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.store.Load(ctx)
	s.state = res.Value
	if s.state.Boards == nil {
		s.state.Boards = make(map[uint64]*core.Board)
	}
	if s.state.Reconcile() {
		s.logger.Warn("state counters were behind the stored notes, repaired",
			"next_note_id", s.state.NextNoteID, "next_board_id", s.state.NextBoardID)
	}
	s.outcome = res.Outcome
	s.rebuild()
	return res.Outcome
}

// LastOutcome reports how the last Load resolved.
func (s *Session) LastOutcome() core.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Save syncs the projection into the active board and persists the state.
// Failures are logged and returned; the in-memory state is kept either way.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

func (s *Session) save(ctx context.Context) error {
	s.sync()
	if err := s.store.Save(ctx, s.state); err != nil {
		s.logger.Warn("state not saved", "error", err)
		return err
	}
	return nil
}

// Close saves the state one last time and releases the repository.
// Closing twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	saveErr := s.save(ctx)
	if err := s.closeRepository(); err != nil {
		return err
	}
	return saveErr
}

// Release closes the repository without saving. Use it for sessions that
// only read.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.closeRepository()
}

func (s *Session) closeRepository() error {
	if c, ok := s.store.Repository().(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close repository: %w", err)
		}
	}
	return nil
}

func (s *Session) sync() {
	if b, ok := s.state.ActiveBoard(); ok {
		s.canvas.SyncInto(b)
	}
}

func (s *Session) rebuild() {
	b, _ := s.state.ActiveBoard()
	s.canvas.Rebuild(b)
	if err := s.search.Update(b); err != nil {
		s.logger.Warn("search filter failed", "error", err)
	}
}

func (s *Session) active() (*core.Board, error) {
	b, ok := s.state.ActiveBoard()
	if !ok {
		return nil, core.ErrNoActiveBoard
	}
	return b, nil
}

// Snapshot returns a deep copy of the state with the projection synced in.
func (s *Session) Snapshot() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()
	return cloneState(s.state)
}

func cloneState(st core.State) core.State {
	out := st
	out.Boards = make(map[uint64]*core.Board, len(st.Boards))
	for id, b := range st.Boards {
		if b == nil {
			continue
		}
		c := *b
		c.Notes = append([]core.Note{}, b.Notes...)
		out.Boards[id] = &c
	}
	if st.CurrentBoard != nil {
		id := *st.CurrentBoard
		out.CurrentBoard = &id
	}
	return out
}

// Boards lists boards in identifier order.
func (s *Session) Boards() []core.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	ids := s.state.SortedBoardIDs()
	out := make([]core.Board, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.state.Board(id); ok {
			c := *b
			c.Notes = append([]core.Note{}, b.Notes...)
			out = append(out, c)
		}
	}
	return out
}

// ActiveBoard returns a copy of the active board.
func (s *Session) ActiveBoard() (core.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sync()

	b, ok := s.state.ActiveBoard()
	if !ok {
		return core.Board{}, false
	}
	c := *b
	c.Notes = append([]core.Note{}, b.Notes...)
	return c, true
}

// NewBoard creates a board. It becomes active when no board was active.
func (s *Session) NewBoard(name string, background core.Color) core.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, hadActive := s.state.ActiveBoard()
	b := s.state.NewBoard(name, background)
	if !hadActive {
		s.rebuild()
	}
	s.logger.Debug("board created", "board", b.ID, "name", name)
	return *b
}

// SwitchBoard makes another board active.
func (s *Session) SwitchBoard(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Board(id); !ok {
		return fmt.Errorf("board %d: %w", id, core.ErrBoardNotFound)
	}
	s.sync()
	if err := s.state.SetActive(id); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

// RenameBoard changes a board's name.
func (s *Session) RenameBoard(id uint64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.state.Board(id)
	if !ok {
		return fmt.Errorf("board %d: %w", id, core.ErrBoardNotFound)
	}
	b.Name = name
	return nil
}

// SetBackground changes a board's background color.
func (s *Session) SetBackground(id uint64, color core.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.state.Board(id)
	if !ok {
		return fmt.Errorf("board %d: %w", id, core.ErrBoardNotFound)
	}
	b.Background = color
	return nil
}

// PlaceNote adds a default note to the active board at the grid cell
// nearest to at, and queues a NoteCreated event.
func (s *Session) PlaceNote(at core.Pos2) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.active()
	if err != nil {
		return core.Note{}, err
	}
	n := core.Note{
		ID:    s.state.AllocateNoteID(),
		Text:  core.DefaultNoteText,
		Pos:   core.SnapToGrid(at, s.canvas.GridSize()),
		Size:  core.DefaultNoteSize,
		Color: core.Yellow,
	}
	if _, taken := b.FindNote(n.ID); taken {
		return core.Note{}, fmt.Errorf("note %d already on board %d", n.ID, b.ID)
	}
	if err := s.canvas.Add(n); err != nil {
		return core.Note{}, err
	}
	b.AddNote(n)
	s.logger.Debug("note placed", "board", b.ID, "note", n.ID, "x", n.Pos.X, "y", n.Pos.Y)
	return n, nil
}

// Notes lists the projected notes of the active board.
func (s *Session) Notes() []NoteView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Views()
}

// BeginDrag starts dragging a note.
func (s *Session) BeginDrag(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.BeginDrag(id)
}

// DragBy moves a dragged note.
func (s *Session) DragBy(id uint64, delta core.Vec2) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.DragBy(id, delta)
}

// Preview returns the snapped landing rectangle of a dragged note.
func (s *Session) Preview(id uint64) (core.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.Preview(id)
}

// EndDrag releases a dragged note and writes its snapped position into the
// active board straight away.
func (s *Session) EndDrag(id uint64) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.canvas.EndDrag(id)
	if err != nil {
		return core.Note{}, err
	}
	if err := s.writeBack(n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// MoveNote drags a note to pos in one step.
func (s *Session) MoveNote(id uint64, pos core.Pos2) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.canvas.View(id)
	if !ok {
		return core.Note{}, fmt.Errorf("note %d: %w", id, core.ErrNoteNotFound)
	}
	if err := s.canvas.BeginDrag(id); err != nil {
		return core.Note{}, err
	}
	delta := core.Vec2{X: pos.X - v.Note.Pos.X, Y: pos.Y - v.Note.Pos.Y}
	if err := s.canvas.DragBy(id, delta); err != nil {
		return core.Note{}, err
	}
	n, err := s.canvas.EndDrag(id)
	if err != nil {
		return core.Note{}, err
	}
	return n, s.writeBack(n)
}

// BeginEdit opens a note for editing.
func (s *Session) BeginEdit(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.BeginEdit(id)
}

// SetText changes the text of a note being edited.
func (s *Session) SetText(id uint64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.SetText(id, text)
}

// SetColor changes the color of a note being edited.
func (s *Session) SetColor(id uint64, color core.Color) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.SetColor(id, color)
}

// FinishEdit closes the editor and writes text and color into the board.
func (s *Session) FinishEdit(id uint64) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.canvas.FinishEdit(id)
	if err != nil {
		return core.Note{}, err
	}
	return n, s.writeBack(n)
}

// EditNote applies an edit in one step. Nil fields are left unchanged.
func (s *Session) EditNote(id uint64, text *string, color *core.Color) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.canvas.BeginEdit(id); err != nil {
		return core.Note{}, err
	}
	if text != nil {
		if err := s.canvas.SetText(id, *text); err != nil {
			return core.Note{}, err
		}
	}
	if color != nil {
		if err := s.canvas.SetColor(id, *color); err != nil {
			return core.Note{}, err
		}
	}
	n, err := s.canvas.FinishEdit(id)
	if err != nil {
		return core.Note{}, err
	}
	return n, s.writeBack(n)
}

func (s *Session) writeBack(n core.Note) error {
	b, err := s.active()
	if err != nil {
		return err
	}
	if !b.ReplaceNote(n) {
		return fmt.Errorf("note %d: %w", n.ID, core.ErrNoteNotFound)
	}
	return nil
}

// Flush delivers queued feedback events.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas.Flush()
}

// Search sets the query and filter, recomputes the matches over the active
// board and focuses the first one.
func (s *Session) Search(query, filter string) ([]uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.search.SetFilter(filter); err != nil {
		return nil, err
	}
	s.search.SetQuery(query)

	b, _ := s.state.ActiveBoard()
	s.sync()
	if err := s.search.Update(b); err != nil {
		return nil, err
	}
	if id, ok := s.search.Current(); ok {
		Focus(b, id)
	}
	return s.search.Matches(), nil
}

// NextMatch moves to the next match and focuses it.
func (s *Session) NextMatch() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(s.search.Next)
}

// PrevMatch moves to the previous match and focuses it.
func (s *Session) PrevMatch() (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(s.search.Prev)
}

func (s *Session) step(move func() (uint64, bool)) (uint64, bool) {
	id, ok := move()
	if !ok {
		return 0, false
	}
	if b, active := s.state.ActiveBoard(); active {
		s.sync()
		Focus(b, id)
	}
	return id, true
}

// SearchQuery returns the current query, filter and match cursor.
func (s *Session) SearchQuery() (query, filter string, current uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok = s.search.Current()
	return s.search.Query(), s.search.Filter(), current, ok
}
