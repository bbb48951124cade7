package editor

import (
	"errors"
	"fmt"

	"github.com/dshills/docmark/document"
)

// DefaultMaxHistory bounds the undo stack when no other limit is set.
const DefaultMaxHistory = 100

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Editor owns a document and its edit history: a bounded undo stack and
// the matching redo stack. All mutation flows through Execute so every
// change stays invertible. Single-writer; wrap in external locking for
// cross-goroutine use.
type Editor struct {
	doc        *document.Document
	undoStack  []Command
	redoStack  []Command
	maxHistory int
}

// New returns an editor over an empty document.
func New() *Editor {
	return NewWithDocument(document.New())
}

// NewWithDocument returns an editor over an existing document.
func NewWithDocument(doc *document.Document) *Editor {
	return &Editor{doc: doc, maxHistory: DefaultMaxHistory}
}

// Document returns the live document. Treat it as read-only; mutate
// through commands.
func (e *Editor) Document() *document.Document { return e.doc }

// SetMaxHistory adjusts the undo-stack bound, evicting oldest entries if
// the stack already exceeds it. Values below 1 are ignored.
func (e *Editor) SetMaxHistory(n int) {
	if n < 1 {
		return
	}
	e.maxHistory = n
	if over := len(e.undoStack) - n; over > 0 {
		e.undoStack = append([]Command(nil), e.undoStack[over:]...)
	}
}

// Execute runs a command and records it for undo. A failed command leaves
// the document and the history untouched. Success clears the redo stack,
// since the new edit starts a fresh branch.
func (e *Editor) Execute(cmd Command) error {
	if err := cmd.Execute(e.doc); err != nil {
		return err
	}
	e.push(cmd)
	return nil
}

// push records an already-executed command as one undo unit.
func (e *Editor) push(cmd Command) {
	if len(e.undoStack) >= e.maxHistory {
		drop := len(e.undoStack) - e.maxHistory + 1
		e.undoStack = append([]Command(nil), e.undoStack[drop:]...)
	}
	e.undoStack = append(e.undoStack, cmd)
	e.redoStack = e.redoStack[:0]
}

// Undo reverts the most recent command and moves it to the redo stack.
func (e *Editor) Undo() error {
	if len(e.undoStack) == 0 {
		return ErrNothingToUndo
	}
	cmd := e.undoStack[len(e.undoStack)-1]
	if err := cmd.Undo(e.doc); err != nil {
		return fmt.Errorf("undo %s: %w", cmd.Description(), err)
	}
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, cmd)
	return nil
}

// Redo re-applies the most recently undone command.
func (e *Editor) Redo() error {
	if len(e.redoStack) == 0 {
		return ErrNothingToRedo
	}
	cmd := e.redoStack[len(e.redoStack)-1]
	if err := cmd.Execute(e.doc); err != nil {
		return fmt.Errorf("redo %s: %w", cmd.Description(), err)
	}
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, cmd)
	return nil
}

// CanUndo reports whether an undoable command exists.
func (e *Editor) CanUndo() bool { return len(e.undoStack) > 0 }

// CanRedo reports whether a redoable command exists.
func (e *Editor) CanRedo() bool { return len(e.redoStack) > 0 }

// ClearHistory drops both stacks without touching the document.
func (e *Editor) ClearHistory() {
	e.undoStack = e.undoStack[:0]
	e.redoStack = e.redoStack[:0]
}
