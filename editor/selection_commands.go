package editor

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// Selection-scoped commands resolve the selection at execute time and
// snapshot the affected top-level region so undo restores both the nodes
// and the selection.

// selectionSpan validates the current selection and returns its top-level
// node range in document order.
func selectionSpan(doc *document.Document) (start, end document.Position, from, to int, err error) {
	if doc.Selection == nil || doc.Selection.IsCollapsed() {
		return start, end, 0, 0, document.ErrNoSelection
	}
	start, end = doc.Selection.Normalized()
	if len(start.Path) == 0 || len(end.Path) == 0 {
		return start, end, 0, 0, fmt.Errorf("selection position has empty path: %w", document.ErrInvalidNode)
	}
	from, to = start.Path[0], end.Path[0]
	if from < 0 || to >= doc.Len() {
		return start, end, 0, 0, fmt.Errorf("selection spans %d..%d of %d: %w", from, to, doc.Len(), document.ErrIndexOutOfBounds)
	}
	return start, end, from, to, nil
}

// spliceTop replaces count top-level nodes starting at from with repl.
func spliceTop(doc *document.Document, from, count int, repl []document.Node) {
	out := make([]document.Node, 0, len(doc.Nodes)-count+len(repl))
	out = append(out, doc.Nodes[:from]...)
	out = append(out, repl...)
	out = append(out, doc.Nodes[from+count:]...)
	doc.Nodes = out
}

// regionSnapshot is the shared undo state for selection commands.
type regionSnapshot struct {
	from      int
	prior     []document.Node
	postCount int
	priorSel  *document.Selection
}

func (r *regionSnapshot) capture(doc *document.Document, from, to int) {
	r.from = from
	r.prior = document.CloneNodes(doc.Nodes[from : to+1])
	if doc.Selection != nil {
		sel := *doc.Selection
		r.priorSel = &sel
	}
}

func (r *regionSnapshot) restore(doc *document.Document) error {
	if r.prior == nil {
		return fmt.Errorf("selection command not executed: %w", document.ErrOperationFailed)
	}
	if r.from+r.postCount > doc.Len() {
		return fmt.Errorf("selection region %d+%d of %d: %w", r.from, r.postCount, doc.Len(), document.ErrInvalidNode)
	}
	spliceTop(doc, r.from, r.postCount, document.CloneNodes(r.prior))
	doc.Selection = r.priorSel
	return nil
}

// CutSelectionCommand removes the selected content and clears the
// selection. A selection inside one text-bearing node cuts its text range;
// a multi-node selection cuts the covered nodes whole. The removed content
// is available through Cut after execution.
type CutSelectionCommand struct {
	cut  []document.Node
	snap regionSnapshot
}

func NewCutSelectionCommand() *CutSelectionCommand { return &CutSelectionCommand{} }

func (c *CutSelectionCommand) Execute(doc *document.Document) error {
	start, end, from, to, err := selectionSpan(doc)
	if err != nil {
		return err
	}
	if start.Path.Equal(end.Path) {
		n, err := doc.NodeAt(start.Path)
		if err != nil {
			return err
		}
		if !n.IsTextBearing() {
			return fmt.Errorf("cut text of %s node: %w", n.Kind, document.ErrUnsupportedOperation)
		}
		c.snap.capture(doc, from, to)
		removed, err := doc.DeleteText(start.Path, start.Offset, end.Offset)
		if err != nil {
			c.snap.prior = nil
			return err
		}
		c.snap.postCount = to - from + 1
		c.cut = []document.Node{document.NewParagraphText(removed)}
	} else {
		c.snap.capture(doc, from, to)
		c.cut = document.CloneNodes(doc.Nodes[from : to+1])
		spliceTop(doc, from, to-from+1, nil)
		c.snap.postCount = 0
	}
	doc.Selection = nil
	return nil
}

func (c *CutSelectionCommand) Undo(doc *document.Document) error {
	return c.snap.restore(doc)
}

// Cut returns the content removed by the last Execute.
func (c *CutSelectionCommand) Cut() []document.Node { return c.cut }

func (c *CutSelectionCommand) Description() string { return "cut selection" }

// FormatSelectionCommand applies style flags across the selection: the
// covered range of boundary nodes, the whole text of every node between.
type FormatSelectionCommand struct {
	Format document.Formatting

	snap regionSnapshot
}

func NewFormatSelectionCommand(f document.Formatting) *FormatSelectionCommand {
	return &FormatSelectionCommand{Format: f}
}

func (c *FormatSelectionCommand) Execute(doc *document.Document) error {
	start, end, from, to, err := selectionSpan(doc)
	if err != nil {
		return err
	}
	c.snap.capture(doc, from, to)
	c.snap.postCount = to - from + 1
	for i := from; i <= to; i++ {
		path := document.Path{i}
		n := &doc.Nodes[i]
		if n.Kind != document.KindHeading && n.Kind != document.KindParagraph {
			continue
		}
		length, err := doc.TextLength(path)
		if err != nil {
			c.rollback(doc)
			return err
		}
		s, e := 0, length
		if i == from && start.Path.Equal(document.Path{i}) {
			s = min(start.Offset, length)
		}
		if i == to && end.Path.Equal(document.Path{i}) {
			e = min(end.Offset, length)
		}
		if s >= e {
			continue
		}
		if err := doc.FormatText(path, s, e, c.Format); err != nil {
			c.rollback(doc)
			return err
		}
	}
	return nil
}

func (c *FormatSelectionCommand) rollback(doc *document.Document) {
	spliceTop(doc, c.snap.from, c.snap.postCount, document.CloneNodes(c.snap.prior))
	c.snap.prior = nil
}

func (c *FormatSelectionCommand) Undo(doc *document.Document) error {
	return c.snap.restore(doc)
}

func (c *FormatSelectionCommand) Description() string { return "format selection" }

// IndentSelectionCommand wraps the selected top-level nodes in a single
// blockquote; UnindentSelectionCommand splices blockquote children back
// out. Both clear the selection, since the node span changes shape.
type IndentSelectionCommand struct {
	snap regionSnapshot
}

func NewIndentSelectionCommand() *IndentSelectionCommand { return &IndentSelectionCommand{} }

func (c *IndentSelectionCommand) Execute(doc *document.Document) error {
	_, _, from, to, err := selectionSpan(doc)
	if err != nil {
		return err
	}
	c.snap.capture(doc, from, to)
	quote := document.NewBlockQuote(document.CloneNodes(doc.Nodes[from : to+1])...)
	spliceTop(doc, from, to-from+1, []document.Node{quote})
	c.snap.postCount = 1
	doc.Selection = nil
	return nil
}

func (c *IndentSelectionCommand) Undo(doc *document.Document) error {
	return c.snap.restore(doc)
}

func (c *IndentSelectionCommand) Description() string { return "indent selection" }

// UnindentSelectionCommand replaces every blockquote in the selected span
// with its children.
type UnindentSelectionCommand struct {
	snap regionSnapshot
}

func NewUnindentSelectionCommand() *UnindentSelectionCommand { return &UnindentSelectionCommand{} }

func (c *UnindentSelectionCommand) Execute(doc *document.Document) error {
	_, _, from, to, err := selectionSpan(doc)
	if err != nil {
		return err
	}
	c.snap.capture(doc, from, to)
	var repl []document.Node
	for i := from; i <= to; i++ {
		n := &doc.Nodes[i]
		if n.Kind == document.KindBlockQuote {
			repl = append(repl, document.CloneNodes(n.Children)...)
		} else {
			repl = append(repl, n.Clone())
		}
	}
	spliceTop(doc, from, to-from+1, repl)
	c.snap.postCount = len(repl)
	doc.Selection = nil
	return nil
}

func (c *UnindentSelectionCommand) Undo(doc *document.Document) error {
	return c.snap.restore(doc)
}

func (c *UnindentSelectionCommand) Description() string { return "unindent selection" }

// CutSelection removes and returns the selected content as an undoable
// edit.
func (e *Editor) CutSelection() ([]document.Node, error) {
	cmd := NewCutSelectionCommand()
	if err := e.Execute(cmd); err != nil {
		return nil, err
	}
	return cmd.Cut(), nil
}

// CopySelection returns the selected content without mutating the
// document or the history.
func (e *Editor) CopySelection() ([]document.Node, error) {
	doc := e.doc
	start, end, from, to, err := selectionSpan(doc)
	if err != nil {
		return nil, err
	}
	if start.Path.Equal(end.Path) {
		n, err := doc.NodeAt(start.Path)
		if err != nil {
			return nil, err
		}
		if !n.IsTextBearing() {
			return []document.Node{n.Clone()}, nil
		}
		text, err := doc.TextRange(start.Path, start.Offset, end.Offset)
		if err != nil {
			return nil, err
		}
		return []document.Node{document.NewParagraphText(text)}, nil
	}
	return document.CloneNodes(doc.Nodes[from : to+1]), nil
}

// FormatSelection applies style flags across the selection.
func (e *Editor) FormatSelection(f document.Formatting) error {
	return e.Execute(NewFormatSelectionCommand(f))
}

// IndentSelection wraps the selected nodes in a blockquote.
func (e *Editor) IndentSelection() error {
	return e.Execute(NewIndentSelectionCommand())
}

// UnindentSelection splices selected blockquotes back into their parent
// level.
func (e *Editor) UnindentSelection() error {
	return e.Execute(NewUnindentSelectionCommand())
}
