package editor

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// InsertNodeCommand inserts a node at a top-level index; the index may
// equal the document length to append.
type InsertNodeCommand struct {
	Index int
	Node  document.Node
}

func NewInsertNodeCommand(index int, n document.Node) *InsertNodeCommand {
	return &InsertNodeCommand{Index: index, Node: n.Clone()}
}

func (c *InsertNodeCommand) Execute(doc *document.Document) error {
	return doc.InsertNode(c.Index, c.Node.Clone())
}

func (c *InsertNodeCommand) Undo(doc *document.Document) error {
	_, err := doc.RemoveNode(c.Index)
	return err
}

func (c *InsertNodeCommand) Description() string {
	return fmt.Sprintf("insert %s at %d", c.Node.Kind, c.Index)
}

// DeleteNodeCommand removes the node at a top-level index, retaining it
// for undo.
type DeleteNodeCommand struct {
	Index int

	removed *document.Node
}

func NewDeleteNodeCommand(index int) *DeleteNodeCommand {
	return &DeleteNodeCommand{Index: index}
}

func (c *DeleteNodeCommand) Execute(doc *document.Document) error {
	n, err := doc.RemoveNode(c.Index)
	if err != nil {
		return err
	}
	c.removed = &n
	return nil
}

func (c *DeleteNodeCommand) Undo(doc *document.Document) error {
	if c.removed == nil {
		return fmt.Errorf("delete at %d not executed: %w", c.Index, document.ErrOperationFailed)
	}
	return doc.InsertNode(c.Index, c.removed.Clone())
}

func (c *DeleteNodeCommand) Description() string {
	return fmt.Sprintf("delete node at %d", c.Index)
}

// MoveNodeCommand moves a top-level node from one index to another. To is
// interpreted against the pre-move sequence, so moving forward lands one
// slot earlier once the source is removed.
type MoveNodeCommand struct {
	From, To int

	landed int
}

func NewMoveNodeCommand(from, to int) *MoveNodeCommand {
	return &MoveNodeCommand{From: from, To: to}
}

func (c *MoveNodeCommand) Execute(doc *document.Document) error {
	if c.From < 0 || c.From >= doc.Len() {
		return fmt.Errorf("move from %d of %d: %w", c.From, doc.Len(), document.ErrIndexOutOfBounds)
	}
	if c.To < 0 || c.To > doc.Len() {
		return fmt.Errorf("move to %d of %d: %w", c.To, doc.Len(), document.ErrIndexOutOfBounds)
	}
	node, err := doc.RemoveNode(c.From)
	if err != nil {
		return err
	}
	to := c.To
	if to > c.From {
		to--
	}
	if err := doc.InsertNode(to, node); err != nil {
		return err
	}
	c.landed = to
	return nil
}

func (c *MoveNodeCommand) Undo(doc *document.Document) error {
	node, err := doc.RemoveNode(c.landed)
	if err != nil {
		return err
	}
	return doc.InsertNode(c.From, node)
}

func (c *MoveNodeCommand) Description() string {
	return fmt.Sprintf("move node %d to %d", c.From, c.To)
}

// DuplicateNodeCommand inserts a deep copy of the node at index directly
// after it.
type DuplicateNodeCommand struct {
	Index int
}

func NewDuplicateNodeCommand(index int) *DuplicateNodeCommand {
	return &DuplicateNodeCommand{Index: index}
}

func (c *DuplicateNodeCommand) Execute(doc *document.Document) error {
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("duplicate at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	return doc.InsertNode(c.Index+1, doc.Nodes[c.Index].Clone())
}

func (c *DuplicateNodeCommand) Undo(doc *document.Document) error {
	_, err := doc.RemoveNode(c.Index + 1)
	return err
}

func (c *DuplicateNodeCommand) Description() string {
	return fmt.Sprintf("duplicate node at %d", c.Index)
}

// MergeNodesCommand merges two consecutive same-kind nodes into the first.
// Paragraphs merge by appending inline content, code blocks by
// concatenating source; other kinds are not mergeable.
type MergeNodesCommand struct {
	First, Second int

	priorFirst *document.Node
	removed    *document.Node
}

func NewMergeNodesCommand(first, second int) *MergeNodesCommand {
	return &MergeNodesCommand{First: first, Second: second}
}

func (c *MergeNodesCommand) Execute(doc *document.Document) error {
	if c.Second != c.First+1 {
		return fmt.Errorf("merge %d with %d: nodes must be consecutive: %w", c.First, c.Second, document.ErrInvalidRange)
	}
	if c.First < 0 || c.Second >= doc.Len() {
		return fmt.Errorf("merge %d..%d of %d: %w", c.First, c.Second, doc.Len(), document.ErrIndexOutOfBounds)
	}
	first, second := &doc.Nodes[c.First], &doc.Nodes[c.Second]
	if first.Kind != second.Kind {
		return fmt.Errorf("merge %s with %s: %w", first.Kind, second.Kind, document.ErrUnsupportedOperation)
	}
	switch first.Kind {
	case document.KindParagraph:
		snap := first.Clone()
		first.Content = append(first.Content, second.Content...)
		c.priorFirst = &snap
	case document.KindCodeBlock, document.KindMathBlock:
		snap := first.Clone()
		first.Code += second.Code
		c.priorFirst = &snap
	default:
		return fmt.Errorf("merge %s nodes: %w", first.Kind, document.ErrUnsupportedOperation)
	}
	removed, err := doc.RemoveNode(c.Second)
	if err != nil {
		return err
	}
	c.removed = &removed
	return nil
}

func (c *MergeNodesCommand) Undo(doc *document.Document) error {
	if c.priorFirst == nil || c.removed == nil {
		return fmt.Errorf("merge %d..%d not executed: %w", c.First, c.Second, document.ErrOperationFailed)
	}
	doc.Nodes[c.First] = c.priorFirst.Clone()
	return doc.InsertNode(c.Second, c.removed.Clone())
}

func (c *MergeNodesCommand) Description() string {
	return fmt.Sprintf("merge nodes %d and %d", c.First, c.Second)
}

// ConversionType names the target of a node-type conversion.
type ConversionType struct {
	Kind     document.NodeKind
	Level    int
	ListKind document.ListKind
	Language string
}

// ToParagraph converts to a paragraph.
func ToParagraph() ConversionType { return ConversionType{Kind: document.KindParagraph} }

// ToHeading converts to a heading at the given level, clamped to 1..6.
func ToHeading(level int) ConversionType {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return ConversionType{Kind: document.KindHeading, Level: level}
}

// ToList converts to a single-item list of the given kind.
func ToList(kind document.ListKind) ConversionType {
	return ConversionType{Kind: document.KindList, ListKind: kind}
}

// ToCodeBlock converts to a code block in the given language.
func ToCodeBlock(language string) ConversionType {
	return ConversionType{Kind: document.KindCodeBlock, Language: language}
}

// ToBlockQuote converts to a blockquote wrapping a paragraph.
func ToBlockQuote() ConversionType { return ConversionType{Kind: document.KindBlockQuote} }

// ConvertNodeTypeCommand rebuilds the node at a top-level index as another
// kind, carrying its inline content over (or flattening it to plain text
// where the target requires).
type ConvertNodeTypeCommand struct {
	Index  int
	Target ConversionType

	prior *document.Node
}

func NewConvertNodeTypeCommand(index int, target ConversionType) *ConvertNodeTypeCommand {
	return &ConvertNodeTypeCommand{Index: index, Target: target}
}

func (c *ConvertNodeTypeCommand) Execute(doc *document.Document) error {
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("convert at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	src := &doc.Nodes[c.Index]
	content, ok := extractInlineContent(src)
	if !ok {
		return fmt.Errorf("convert %s node: %w", src.Kind, document.ErrUnsupportedOperation)
	}
	var out document.Node
	switch c.Target.Kind {
	case document.KindParagraph:
		out = document.NewParagraph(content...)
	case document.KindHeading:
		out = document.NewHeading(c.Target.Level, content...)
	case document.KindList:
		out = document.NewList(c.Target.ListKind,
			document.NewListItem(document.NewParagraph(content...)))
	case document.KindCodeBlock:
		out = document.NewCodeBlock(c.Target.Language, document.InlinesText(content))
	case document.KindBlockQuote:
		out = document.NewBlockQuote(document.NewParagraph(content...))
	default:
		return fmt.Errorf("convert to %s: %w", c.Target.Kind, document.ErrUnsupportedOperation)
	}
	snap := src.Clone()
	c.prior = &snap
	doc.Nodes[c.Index] = out
	return nil
}

func (c *ConvertNodeTypeCommand) Undo(doc *document.Document) error {
	if c.prior == nil {
		return fmt.Errorf("convert at %d not executed: %w", c.Index, document.ErrOperationFailed)
	}
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("convert undo at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	doc.Nodes[c.Index] = c.prior.Clone()
	return nil
}

func (c *ConvertNodeTypeCommand) Description() string {
	return fmt.Sprintf("convert node %d to %s", c.Index, c.Target.Kind)
}

// extractInlineContent pulls convertible inline content out of a source
// node, cloned so the conversion shares nothing with the original.
func extractInlineContent(n *document.Node) ([]document.InlineNode, bool) {
	switch n.Kind {
	case document.KindHeading, document.KindParagraph:
		return document.CloneInlines(n.Content), true
	case document.KindCodeBlock, document.KindMathBlock:
		if n.Code == "" {
			return nil, true
		}
		return []document.InlineNode{document.NewText(n.Code)}, true
	case document.KindBlockQuote:
		if t := n.PlainText(); t != "" {
			return []document.InlineNode{document.NewText(t)}, true
		}
		return nil, true
	case document.KindList:
		if t := n.PlainText(); t != "" {
			return []document.InlineNode{document.NewText(t)}, true
		}
		return nil, true
	}
	return nil, false
}

// InsertNode inserts a node at a top-level index.
func (e *Editor) InsertNode(index int, n document.Node) error {
	return e.Execute(NewInsertNodeCommand(index, n))
}

// AppendNode inserts a node after the existing top-level nodes.
func (e *Editor) AppendNode(n document.Node) error {
	return e.InsertNode(e.doc.Len(), n)
}

// InsertParagraph inserts a paragraph holding plain text.
func (e *Editor) InsertParagraph(index int, text string) error {
	return e.InsertNode(index, document.NewParagraphText(text))
}

// InsertHeading inserts a heading holding plain text.
func (e *Editor) InsertHeading(index, level int, text string) error {
	return e.InsertNode(index, document.NewHeadingText(level, text))
}

// InsertCodeBlock inserts a fenced code block.
func (e *Editor) InsertCodeBlock(index int, language, code string) error {
	return e.InsertNode(index, document.NewCodeBlock(language, code))
}

// DeleteNode removes the node at a top-level index.
func (e *Editor) DeleteNode(index int) error {
	return e.Execute(NewDeleteNodeCommand(index))
}

// MoveNode moves a top-level node to a new index.
func (e *Editor) MoveNode(from, to int) error {
	return e.Execute(NewMoveNodeCommand(from, to))
}

// DuplicateNode copies the node at index to index+1.
func (e *Editor) DuplicateNode(index int) error {
	return e.Execute(NewDuplicateNodeCommand(index))
}

// MergeNodes merges the node at second into the node at first.
func (e *Editor) MergeNodes(first, second int) error {
	return e.Execute(NewMergeNodesCommand(first, second))
}

// ConvertNodeType rebuilds the node at index as the target kind.
func (e *Editor) ConvertNodeType(index int, target ConversionType) error {
	return e.Execute(NewConvertNodeTypeCommand(index, target))
}
