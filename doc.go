// Package plop is the composition root of the plop sticky-notes store.
//
// It connects the domain (boards, notes, identifier counters and grid
// snapping in pkg/core) with the storage adapters (a JSON or YAML file, or a
// SQLite row) and the canvas projection that drives interactive edits.
//
// Loading never fails. A missing, unreadable or malformed state file yields
// the default store and the reason is logged. Session.Save returns write
// errors and keeps the in-memory state; SaveState only logs them.
//
// Usage:
//
//	s, err := plop.New(plop.DefaultPath(), plop.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer s.Close(ctx) // autosave
//
//	s.NewBoard("Ideas", plop.LightBlue)
//	note, _ := s.PlaceNote(plop.Pos2{X: 130, Y: 70}) // lands on (150, 50)
//
// The one-shot helpers mirror the plain load/save contract:
//
//	st := plop.LoadState(path)
//	plop.SaveState(st, path)
package plop
