package document

import (
	"fmt"
	"strings"
)

// Position addresses a point in the document: a path to a node plus a byte
// offset into its editable text. The offset is meaningful only when the
// addressed node is text-bearing.
type Position struct {
	Path   Path
	Offset int
}

// NewPosition returns a position from a path and offset.
func NewPosition(path Path, offset int) Position {
	return Position{Path: path.Clone(), Offset: offset}
}

// Compare orders positions in document order.
func (p Position) Compare(q Position) int {
	if c := p.Path.Compare(q.Path); c != 0 {
		return c
	}
	switch {
	case p.Offset < q.Offset:
		return -1
	case p.Offset > q.Offset:
		return 1
	}
	return 0
}

// Equal reports whether two positions address the same point.
func (p Position) Equal(q Position) bool { return p.Compare(q) == 0 }

// Selection is an anchor/focus position pair. Anchor is where the
// selection began, focus where it currently extends; focus before anchor
// is a backward selection. Ordering and collapse state are derived, never
// stored.
type Selection struct {
	Anchor Position
	Focus  Position
}

// NewSelection returns a selection over the given positions.
func NewSelection(anchor, focus Position) Selection {
	return Selection{Anchor: anchor, Focus: focus}
}

// Collapsed returns a caret selection at a single position.
func Collapsed(at Position) Selection {
	return Selection{Anchor: at, Focus: at}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s Selection) IsCollapsed() bool { return s.Anchor.Equal(s.Focus) }

// IsBackward reports whether the focus precedes the anchor.
func (s Selection) IsBackward() bool { return s.Focus.Compare(s.Anchor) < 0 }

// Normalized returns the selection bounds in document order without
// touching the stored anchor/focus.
func (s Selection) Normalized() (start, end Position) {
	if s.IsBackward() {
		return s.Focus, s.Anchor
	}
	return s.Anchor, s.Focus
}

// SelectAll selects from the start of the first node to the end of the
// last node's editable text. An empty document clears the selection.
func (d *Document) SelectAll() {
	if len(d.Nodes) == 0 {
		d.Selection = nil
		return
	}
	last := len(d.Nodes) - 1
	endOffset := 0
	if n := &d.Nodes[last]; n.IsTextBearing() {
		if l, err := d.TextLength(Path{last}); err == nil {
			endOffset = l
		}
	}
	sel := NewSelection(NewPosition(Path{0}, 0), NewPosition(Path{last}, endOffset))
	d.Selection = &sel
}

// SelectNode selects a whole top-level node.
func (d *Document) SelectNode(index int) error {
	return d.SelectNodeRange(index, index)
}

// SelectNodeRange selects the top-level nodes from index from through to,
// inclusive.
func (d *Document) SelectNodeRange(from, to int) error {
	if from > to {
		return fmt.Errorf("node range %d..%d: %w", from, to, ErrInvalidRange)
	}
	if from < 0 || to >= len(d.Nodes) {
		return fmt.Errorf("node range %d..%d of %d: %w", from, to, len(d.Nodes), ErrIndexOutOfBounds)
	}
	endOffset := 0
	if n := &d.Nodes[to]; n.IsTextBearing() {
		if l, err := d.TextLength(Path{to}); err == nil {
			endOffset = l
		}
	}
	sel := NewSelection(NewPosition(Path{from}, 0), NewPosition(Path{to}, endOffset))
	d.Selection = &sel
	return nil
}

// SelectTextRange selects [start, end) of the editable text of one
// top-level node.
func (d *Document) SelectTextRange(index, start, end int) error {
	length, err := d.TextLength(Path{index})
	if err != nil {
		return err
	}
	if err := checkRange(start, end, length); err != nil {
		return err
	}
	sel := NewSelection(NewPosition(Path{index}, start), NewPosition(Path{index}, end))
	d.Selection = &sel
	return nil
}

// SelectRange sets the selection to an arbitrary anchor/focus pair after
// validating that both paths resolve.
func (d *Document) SelectRange(anchor, focus Position) error {
	if _, err := d.NodeAt(anchor.Path); err != nil {
		return err
	}
	if _, err := d.NodeAt(focus.Path); err != nil {
		return err
	}
	sel := NewSelection(anchor, focus)
	d.Selection = &sel
	return nil
}

// CollapseToStart collapses the selection to its document-order start.
func (d *Document) CollapseToStart() {
	if d.Selection == nil {
		return
	}
	start, _ := d.Selection.Normalized()
	sel := Collapsed(start)
	d.Selection = &sel
}

// CollapseToEnd collapses the selection to its document-order end.
func (d *Document) CollapseToEnd() {
	if d.Selection == nil {
		return
	}
	_, end := d.Selection.Normalized()
	sel := Collapsed(end)
	d.Selection = &sel
}

// ClearSelection removes the selection.
func (d *Document) ClearSelection() { d.Selection = nil }

// HasSelection reports whether a non-collapsed selection exists.
func (d *Document) HasSelection() bool {
	return d.Selection != nil && !d.Selection.IsCollapsed()
}

// HasMultiNodeSelection reports whether the selection spans more than one
// top-level node.
func (d *Document) HasMultiNodeSelection() bool {
	if d.Selection == nil {
		return false
	}
	a, f := d.Selection.Anchor.Path, d.Selection.Focus.Path
	return len(a) > 0 && len(f) > 0 && a[0] != f[0]
}

// SelectedText extracts the text covered by the selection: partial text
// from the boundary nodes, full text from every node strictly between
// them, joined with newlines.
func (d *Document) SelectedText() (string, error) {
	if d.Selection == nil {
		return "", ErrNoSelection
	}
	start, end := d.Selection.Normalized()
	if len(start.Path) == 0 || len(end.Path) == 0 {
		return "", fmt.Errorf("selection position has empty path: %w", ErrInvalidNode)
	}
	if start.Path.Equal(end.Path) {
		n, err := d.NodeAt(start.Path)
		if err != nil {
			return "", err
		}
		if !n.IsTextBearing() {
			return n.PlainText(), nil
		}
		return d.TextRange(start.Path, start.Offset, end.Offset)
	}

	// Multi-node selections are resolved at the top level.
	from, to := start.Path[0], end.Path[0]
	if from < 0 || to >= len(d.Nodes) {
		return "", fmt.Errorf("selection spans %d..%d of %d: %w", from, to, len(d.Nodes), ErrIndexOutOfBounds)
	}
	var parts []string
	for i := from; i <= to; i++ {
		n := &d.Nodes[i]
		switch {
		case i == from && n.IsTextBearing():
			l, err := d.TextLength(Path{i})
			if err != nil {
				return "", err
			}
			t, err := d.TextRange(Path{i}, min(start.Offset, l), l)
			if err != nil {
				return "", err
			}
			parts = append(parts, t)
		case i == to && n.IsTextBearing():
			l, err := d.TextLength(Path{i})
			if err != nil {
				return "", err
			}
			t, err := d.TextRange(Path{i}, 0, min(end.Offset, l))
			if err != nil {
				return "", err
			}
			parts = append(parts, t)
		default:
			parts = append(parts, n.PlainText())
		}
	}
	return strings.Join(parts, "\n"), nil
}
