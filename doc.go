// Package notepad is the composition root of the notepad widget.
//
// It wires the note Board (pkg/board) to a key-value storage adapter
// (filesystem, sqlite or in-memory), a record format (JSON or YAML), the
// system clipboard and an optional renderer.
//
// Every note lives in a single record under the key "notepad.notes". Typing
// is saved through a 500ms trailing debounce, searching only hides notes,
// and notes can be reordered by dragging one onto another.
//
// Usage:
//
//	b, err := notepad.New(ctx, "./notes", notepad.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer b.Close(ctx)
//
//	n, _ := b.Create(ctx)
//	b.Input(n.ID, "buy milk") // saved 500ms after the last keystroke
package notepad
