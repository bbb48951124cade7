package editor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/docmark/document"
)

// ErrTransactionDone is returned when a committed or discarded transaction
// is used again.
var ErrTransactionDone = errors.New("transaction already finished")

// Transaction batches edits into one atomic undo unit. Every builder call
// executes its command against the live document immediately, so later
// calls observe the effects of earlier ones; a failing call rolls back
// every step already executed and poisons the transaction. Commit pushes
// the whole batch onto the editor's history as a single entry. Discard
// undoes the batch in reverse, leaving the document exactly as it was.
//
// Use Editor.WithTransaction for rollback on every non-commit exit path.
type Transaction struct {
	id       string
	editor   *Editor
	commands []Command
	done     bool
}

// BeginTransaction starts a transaction against the editor's document.
func (e *Editor) BeginTransaction() *Transaction {
	return &Transaction{id: uuid.New().String(), editor: e}
}

// ID returns the transaction's unique identifier.
func (t *Transaction) ID() string { return t.id }

// Len returns the number of executed steps.
func (t *Transaction) Len() int { return len(t.commands) }

// Apply executes a command as the next transaction step. On failure the
// whole transaction is rolled back and finished.
func (t *Transaction) Apply(cmd Command) error {
	if t.done {
		return fmt.Errorf("transaction %s: %w", t.id, ErrTransactionDone)
	}
	if err := cmd.Execute(t.editor.doc); err != nil {
		rollbackErr := t.rollback()
		t.done = true
		if rollbackErr != nil {
			return fmt.Errorf("transaction %s: %w (rollback failed: %v)", t.id, err, rollbackErr)
		}
		return fmt.Errorf("transaction %s: %w", t.id, err)
	}
	t.commands = append(t.commands, cmd)
	return nil
}

// Commit finishes the transaction and records its steps as one undo unit.
// An empty transaction commits without touching the history.
func (t *Transaction) Commit() error {
	if t.done {
		return fmt.Errorf("transaction %s: %w", t.id, ErrTransactionDone)
	}
	t.done = true
	if len(t.commands) == 0 {
		return nil
	}
	t.editor.push(NewCompoundCommand("transaction "+t.id, t.commands...))
	return nil
}

// Discard undoes every executed step in reverse order and finishes the
// transaction. Discarding a finished transaction is a no-op so deferred
// cleanup can call it unconditionally.
func (t *Transaction) Discard() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.rollback()
}

func (t *Transaction) rollback() error {
	for i := len(t.commands) - 1; i >= 0; i-- {
		if err := t.commands[i].Undo(t.editor.doc); err != nil {
			return fmt.Errorf("rollback step %d: %w", i, err)
		}
	}
	t.commands = nil
	return nil
}

// WithTransaction runs fn inside a transaction, committing on a nil return
// and rolling back when fn returns an error or panics.
func (e *Editor) WithTransaction(fn func(*Transaction) error) error {
	t := e.BeginTransaction()
	defer t.Discard()
	if err := fn(t); err != nil {
		if derr := t.Discard(); derr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, derr)
		}
		return err
	}
	return t.Commit()
}

// InsertText inserts text as a transaction step.
func (t *Transaction) InsertText(path document.Path, offset int, text string) error {
	return t.Apply(NewInsertTextCommand(path, offset, text))
}

// DeleteText removes a text range as a transaction step.
func (t *Transaction) DeleteText(path document.Path, start, end int) error {
	return t.Apply(NewDeleteTextCommand(path, start, end))
}

// FormatText applies style flags as a transaction step.
func (t *Transaction) FormatText(path document.Path, start, end int, f document.Formatting) error {
	return t.Apply(NewFormatTextCommand(path, start, end, f))
}

// SplitNode splits a node as a transaction step.
func (t *Transaction) SplitNode(path document.Path, offset int) error {
	return t.Apply(NewSplitNodeCommand(path, offset))
}

// InsertNode inserts a node as a transaction step.
func (t *Transaction) InsertNode(index int, n document.Node) error {
	return t.Apply(NewInsertNodeCommand(index, n))
}

// DeleteNode removes a node as a transaction step.
func (t *Transaction) DeleteNode(index int) error {
	return t.Apply(NewDeleteNodeCommand(index))
}

// MoveNode moves a node as a transaction step.
func (t *Transaction) MoveNode(from, to int) error {
	return t.Apply(NewMoveNodeCommand(from, to))
}

// DuplicateNode duplicates a node as a transaction step.
func (t *Transaction) DuplicateNode(index int) error {
	return t.Apply(NewDuplicateNodeCommand(index))
}

// MergeNodes merges two nodes as a transaction step.
func (t *Transaction) MergeNodes(first, second int) error {
	return t.Apply(NewMergeNodesCommand(first, second))
}

// ConvertNodeType converts a node as a transaction step.
func (t *Transaction) ConvertNodeType(index int, target ConversionType) error {
	return t.Apply(NewConvertNodeTypeCommand(index, target))
}

// ApplyTableOperation applies a table mutation as a transaction step.
func (t *Transaction) ApplyTableOperation(index int, op TableOperation) error {
	return t.Apply(NewTableOperationCommand(index, op))
}
