package editor

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// Text commands snapshot the target node before mutating so undo restores
// the exact prior run structure, not just the prior text.

// InsertTextCommand inserts text at a byte offset in a text-bearing node.
type InsertTextCommand struct {
	Path   document.Path
	Offset int
	Text   string

	prior *document.Node
}

func NewInsertTextCommand(path document.Path, offset int, text string) *InsertTextCommand {
	return &InsertTextCommand{Path: path.Clone(), Offset: offset, Text: text}
}

func (c *InsertTextCommand) Execute(doc *document.Document) error {
	n, err := doc.NodeAt(c.Path)
	if err != nil {
		return err
	}
	snap := n.Clone()
	if err := doc.InsertText(c.Path, c.Offset, c.Text); err != nil {
		return err
	}
	c.prior = &snap
	return nil
}

func (c *InsertTextCommand) Undo(doc *document.Document) error {
	return restoreNode(doc, c.Path, c.prior)
}

func (c *InsertTextCommand) Description() string {
	return fmt.Sprintf("insert %q at %v+%d", c.Text, c.Path, c.Offset)
}

// DeleteTextCommand removes a byte range from a text-bearing node. The
// removed text is available through Deleted after execution.
type DeleteTextCommand struct {
	Path       document.Path
	Start, End int

	deleted string
	prior   *document.Node
}

func NewDeleteTextCommand(path document.Path, start, end int) *DeleteTextCommand {
	return &DeleteTextCommand{Path: path.Clone(), Start: start, End: end}
}

func (c *DeleteTextCommand) Execute(doc *document.Document) error {
	n, err := doc.NodeAt(c.Path)
	if err != nil {
		return err
	}
	snap := n.Clone()
	removed, err := doc.DeleteText(c.Path, c.Start, c.End)
	if err != nil {
		return err
	}
	c.deleted = removed
	c.prior = &snap
	return nil
}

func (c *DeleteTextCommand) Undo(doc *document.Document) error {
	return restoreNode(doc, c.Path, c.prior)
}

// Deleted returns the text removed by the last Execute.
func (c *DeleteTextCommand) Deleted() string { return c.deleted }

func (c *DeleteTextCommand) Description() string {
	return fmt.Sprintf("delete [%d, %d) at %v", c.Start, c.End, c.Path)
}

// FormatTextCommand applies style flags to a byte range of a heading or
// paragraph.
type FormatTextCommand struct {
	Path       document.Path
	Start, End int
	Format     document.Formatting

	prior *document.Node
}

func NewFormatTextCommand(path document.Path, start, end int, f document.Formatting) *FormatTextCommand {
	return &FormatTextCommand{Path: path.Clone(), Start: start, End: end, Format: f}
}

func (c *FormatTextCommand) Execute(doc *document.Document) error {
	n, err := doc.NodeAt(c.Path)
	if err != nil {
		return err
	}
	snap := n.Clone()
	if err := doc.FormatText(c.Path, c.Start, c.End, c.Format); err != nil {
		return err
	}
	c.prior = &snap
	return nil
}

func (c *FormatTextCommand) Undo(doc *document.Document) error {
	return restoreNode(doc, c.Path, c.prior)
}

func (c *FormatTextCommand) Description() string {
	return fmt.Sprintf("format [%d, %d) at %v", c.Start, c.End, c.Path)
}

// SplitNodeCommand splits a text-bearing node at a byte offset into two
// consecutive siblings; undo merges them back into the original node.
type SplitNodeCommand struct {
	Path   document.Path
	Offset int

	prior *document.Node
}

func NewSplitNodeCommand(path document.Path, offset int) *SplitNodeCommand {
	return &SplitNodeCommand{Path: path.Clone(), Offset: offset}
}

func (c *SplitNodeCommand) Execute(doc *document.Document) error {
	n, err := doc.NodeAt(c.Path)
	if err != nil {
		return err
	}
	snap := n.Clone()
	if err := doc.SplitNode(c.Path, c.Offset); err != nil {
		return err
	}
	c.prior = &snap
	return nil
}

func (c *SplitNodeCommand) Undo(doc *document.Document) error {
	if c.prior == nil {
		return fmt.Errorf("split at %v not executed: %w", c.Path, document.ErrOperationFailed)
	}
	siblings, idx, err := doc.Siblings(c.Path)
	if err != nil {
		return err
	}
	if idx+1 >= len(*siblings) {
		return fmt.Errorf("split tail missing at %v: %w", c.Path, document.ErrInvalidNode)
	}
	(*siblings)[idx] = c.prior.Clone()
	*siblings = append((*siblings)[:idx+1], (*siblings)[idx+2:]...)
	return nil
}

func (c *SplitNodeCommand) Description() string {
	return fmt.Sprintf("split node at %v+%d", c.Path, c.Offset)
}

// restoreNode overwrites the node at path with a pre-execution snapshot.
func restoreNode(doc *document.Document, path document.Path, prior *document.Node) error {
	if prior == nil {
		return fmt.Errorf("command at %v not executed: %w", path, document.ErrOperationFailed)
	}
	n, err := doc.NodeAt(path)
	if err != nil {
		return err
	}
	*n = prior.Clone()
	return nil
}

// InsertText inserts text in the node at path and records the edit.
func (e *Editor) InsertText(path document.Path, offset int, text string) error {
	return e.Execute(NewInsertTextCommand(path, offset, text))
}

// DeleteText removes [start, end) from the node at path and returns the
// removed text.
func (e *Editor) DeleteText(path document.Path, start, end int) (string, error) {
	cmd := NewDeleteTextCommand(path, start, end)
	if err := e.Execute(cmd); err != nil {
		return "", err
	}
	return cmd.Deleted(), nil
}

// FormatText applies style flags to [start, end) of the node at path.
func (e *Editor) FormatText(path document.Path, start, end int, f document.Formatting) error {
	return e.Execute(NewFormatTextCommand(path, start, end, f))
}

// SplitNode splits the node at path at a byte offset.
func (e *Editor) SplitNode(path document.Path, offset int) error {
	return e.Execute(NewSplitNodeCommand(path, offset))
}
