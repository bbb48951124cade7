package document

import (
	"fmt"
	"strings"
)

// Text offsets are byte offsets into a node's editable text. For headings
// and paragraphs the editable text is the concatenation of its text runs;
// other inline nodes are atomic and occupy no offset width. Code and math
// blocks edit their raw source directly.

func runsLength(content []InlineNode) int {
	total := 0
	for _, in := range content {
		if in.Kind == InlineText {
			total += len(in.Text)
		}
	}
	return total
}

// TextLength returns the editable text length of the node at path.
func (d *Document) TextLength(path Path) (int, error) {
	n, err := d.NodeAt(path)
	if err != nil {
		return 0, err
	}
	switch n.Kind {
	case KindHeading, KindParagraph:
		return runsLength(n.Content), nil
	case KindCodeBlock, KindMathBlock:
		return len(n.Code), nil
	}
	return 0, fmt.Errorf("text length of %s node: %w", n.Kind, ErrUnsupportedOperation)
}

// InsertText inserts s at a byte offset in the node at path. An offset
// inside an existing run inherits that run's formatting.
func (d *Document) InsertText(path Path, offset int, s string) error {
	n, err := d.NodeAt(path)
	if err != nil {
		return err
	}
	switch n.Kind {
	case KindHeading, KindParagraph:
		return insertInRuns(&n.Content, offset, s)
	case KindCodeBlock, KindMathBlock:
		if offset < 0 || offset > len(n.Code) {
			return fmt.Errorf("offset %d of %d: %w", offset, len(n.Code), ErrIndexOutOfBounds)
		}
		n.Code = n.Code[:offset] + s + n.Code[offset:]
		return nil
	}
	return fmt.Errorf("insert text into %s node: %w", n.Kind, ErrUnsupportedOperation)
}

// DeleteText removes the byte range [start, end) from the node at path and
// returns the removed text. Atomic inline nodes inside the range are left
// in place.
func (d *Document) DeleteText(path Path, start, end int) (string, error) {
	n, err := d.NodeAt(path)
	if err != nil {
		return "", err
	}
	switch n.Kind {
	case KindHeading, KindParagraph:
		return deleteInRuns(&n.Content, start, end)
	case KindCodeBlock, KindMathBlock:
		if err := checkRange(start, end, len(n.Code)); err != nil {
			return "", err
		}
		removed := n.Code[start:end]
		n.Code = n.Code[:start] + n.Code[end:]
		return removed, nil
	}
	return "", fmt.Errorf("delete text from %s node: %w", n.Kind, ErrUnsupportedOperation)
}

// TextRange returns the editable text in [start, end) without mutating.
func (d *Document) TextRange(path Path, start, end int) (string, error) {
	n, err := d.NodeAt(path)
	if err != nil {
		return "", err
	}
	switch n.Kind {
	case KindHeading, KindParagraph:
		if err := checkRange(start, end, runsLength(n.Content)); err != nil {
			return "", err
		}
		var b strings.Builder
		pos := 0
		for _, run := range n.Content {
			if run.Kind != InlineText {
				continue
			}
			rs, re := pos, pos+len(run.Text)
			pos = re
			os, oe := max(start, rs), min(end, re)
			if os < oe {
				b.WriteString(run.Text[os-rs : oe-rs])
			}
		}
		return b.String(), nil
	case KindCodeBlock, KindMathBlock:
		if err := checkRange(start, end, len(n.Code)); err != nil {
			return "", err
		}
		return n.Code[start:end], nil
	}
	return "", fmt.Errorf("text range of %s node: %w", n.Kind, ErrUnsupportedOperation)
}

// FormatText applies f to the byte range [start, end) of the node at path,
// splitting runs at the range boundaries. Only headings and paragraphs
// carry formatting.
func (d *Document) FormatText(path Path, start, end int, f Formatting) error {
	n, err := d.NodeAt(path)
	if err != nil {
		return err
	}
	switch n.Kind {
	case KindHeading, KindParagraph:
		return formatRuns(&n.Content, start, end, f)
	}
	return fmt.Errorf("format text in %s node: %w", n.Kind, ErrUnsupportedOperation)
}

// SplitNode splits the text-bearing node at path at a byte offset into two
// siblings of the same kind, the second inserted immediately after the
// first.
func (d *Document) SplitNode(path Path, offset int) error {
	n, err := d.NodeAt(path)
	if err != nil {
		return err
	}
	var tail Node
	switch n.Kind {
	case KindHeading, KindParagraph:
		left, right, err := splitRuns(n.Content, offset)
		if err != nil {
			return err
		}
		tail = Node{Kind: n.Kind, Level: n.Level, Content: right}
		n.Content = left
	case KindCodeBlock, KindMathBlock:
		if offset < 0 || offset > len(n.Code) {
			return fmt.Errorf("split at %d of %d: %w", offset, len(n.Code), ErrIndexOutOfBounds)
		}
		tail = Node{Kind: n.Kind, Language: n.Language, Code: n.Code[offset:]}
		if n.CodeProps != nil {
			p := *n.CodeProps
			tail.CodeProps = &p
		}
		n.Code = n.Code[:offset]
	default:
		return fmt.Errorf("split %s node: %w", n.Kind, ErrUnsupportedOperation)
	}
	siblings, idx, err := d.Siblings(path)
	if err != nil {
		return err
	}
	*siblings = append(*siblings, Node{})
	copy((*siblings)[idx+2:], (*siblings)[idx+1:])
	(*siblings)[idx+1] = tail
	return nil
}

func checkRange(start, end, max int) error {
	if start < 0 || end < start {
		return fmt.Errorf("range [%d, %d): %w", start, end, ErrInvalidRange)
	}
	if end > max {
		return fmt.Errorf("range end %d of %d: %w", end, max, ErrIndexOutOfBounds)
	}
	return nil
}

func insertInRuns(content *[]InlineNode, offset int, s string) error {
	if offset < 0 {
		return fmt.Errorf("offset %d: %w", offset, ErrIndexOutOfBounds)
	}
	pos := 0
	for i := range *content {
		run := &(*content)[i]
		if run.Kind != InlineText {
			continue
		}
		if offset <= pos+len(run.Text) {
			at := offset - pos
			run.Text = run.Text[:at] + s + run.Text[at:]
			return nil
		}
		pos += len(run.Text)
	}
	if offset == pos {
		*content = append(*content, NewText(s))
		return nil
	}
	return fmt.Errorf("offset %d of %d: %w", offset, pos, ErrIndexOutOfBounds)
}

func deleteInRuns(content *[]InlineNode, start, end int) (string, error) {
	if err := checkRange(start, end, runsLength(*content)); err != nil {
		return "", err
	}
	var removed strings.Builder
	out := make([]InlineNode, 0, len(*content))
	pos := 0
	for _, run := range *content {
		if run.Kind != InlineText {
			out = append(out, run)
			continue
		}
		rs, re := pos, pos+len(run.Text)
		pos = re
		os, oe := max(start, rs), min(end, re)
		if os >= oe {
			out = append(out, run)
			continue
		}
		removed.WriteString(run.Text[os-rs : oe-rs])
		kept := run.Text[:os-rs] + run.Text[oe-rs:]
		if kept != "" {
			run.Text = kept
			out = append(out, run)
		}
	}
	*content = out
	return removed.String(), nil
}

func formatRuns(content *[]InlineNode, start, end int, f Formatting) error {
	if err := checkRange(start, end, runsLength(*content)); err != nil {
		return err
	}
	out := make([]InlineNode, 0, len(*content))
	pos := 0
	for _, run := range *content {
		if run.Kind != InlineText {
			out = append(out, run)
			continue
		}
		rs, re := pos, pos+len(run.Text)
		pos = re
		os, oe := max(start, rs), min(end, re)
		if os >= oe {
			out = append(out, run)
			continue
		}
		if os > rs {
			out = append(out, NewFormattedText(run.Text[:os-rs], run.Format))
		}
		out = append(out, NewFormattedText(run.Text[os-rs:oe-rs], f))
		if oe < re {
			out = append(out, NewFormattedText(run.Text[oe-rs:], run.Format))
		}
	}
	*content = out
	return nil
}

func splitRuns(content []InlineNode, offset int) (left, right []InlineNode, err error) {
	if offset < 0 || offset > runsLength(content) {
		return nil, nil, fmt.Errorf("split at %d of %d: %w", offset, runsLength(content), ErrIndexOutOfBounds)
	}
	pos := 0
	split := false
	for _, run := range content {
		if split {
			right = append(right, run)
			continue
		}
		if run.Kind != InlineText {
			left = append(left, run)
			continue
		}
		if pos+len(run.Text) < offset {
			pos += len(run.Text)
			left = append(left, run)
			continue
		}
		at := offset - pos
		if at > 0 {
			l := run
			l.Text = run.Text[:at]
			left = append(left, l)
		}
		if at < len(run.Text) {
			r := run
			r.Text = run.Text[at:]
			right = append(right, r)
		}
		split = true
	}
	return left, right, nil
}
