package document

// NodeKind identifies a block node variant. The values double as the
// interchange discriminator strings.
type NodeKind string

const (
	KindHeading            NodeKind = "heading"
	KindParagraph          NodeKind = "paragraph"
	KindList               NodeKind = "list"
	KindCodeBlock          NodeKind = "code_block"
	KindBlockQuote         NodeKind = "blockquote"
	KindThematicBreak      NodeKind = "thematic_break"
	KindTable              NodeKind = "table"
	KindGroup              NodeKind = "group"
	KindFootnoteReference  NodeKind = "footnote_reference"
	KindFootnoteDefinition NodeKind = "footnote_definition"
	KindDefinitionList     NodeKind = "definition_list"
	KindMathBlock          NodeKind = "math_block"
)

// ListKind distinguishes the three list flavors.
type ListKind string

const (
	ListOrdered   ListKind = "ordered"
	ListUnordered ListKind = "unordered"
	ListTask      ListKind = "task"
)

// ListItem is one entry of a List. Checked is nil except for task-list
// items, where it carries the checkbox state.
type ListItem struct {
	Children []Node
	Checked  *bool
}

// NewListItem returns a plain list item wrapping the given blocks.
func NewListItem(children ...Node) ListItem {
	return ListItem{Children: children}
}

// NewTaskItem returns a task-list item with the given checkbox state.
func NewTaskItem(checked bool, children ...Node) ListItem {
	c := checked
	return ListItem{Children: children, Checked: &c}
}

// DefinitionItem is one term of a DefinitionList together with its
// descriptions, each description being a block sequence.
type DefinitionItem struct {
	Term         []InlineNode
	Descriptions [][]Node
}

// Node is a tagged variant over every block construct. Kind selects the
// variant; only the fields that variant uses are meaningful. Content holds
// inline children (heading, paragraph), Children holds nested blocks
// (blockquote, group, footnote definition), and Code holds the raw source
// of code and math blocks.
type Node struct {
	Kind NodeKind

	Level   int
	Content []InlineNode

	ListKind ListKind
	Items    []ListItem

	Language  string
	Code      string
	CodeProps *CodeBlockProperties

	Children []Node

	Name string

	Header     []TableCell
	Rows       [][]TableCell
	Alignments []Alignment
	TableProps *TableProperties

	Label      string
	Identifier string

	Definitions []DefinitionItem
}

// NewHeading returns a heading at the given level (1..6) with inline
// content.
func NewHeading(level int, content ...InlineNode) Node {
	return Node{Kind: KindHeading, Level: level, Content: content}
}

// NewHeadingText returns a heading holding a single plain text run.
func NewHeadingText(level int, text string) Node {
	return NewHeading(level, NewText(text))
}

// NewParagraph returns a paragraph with inline content.
func NewParagraph(content ...InlineNode) Node {
	return Node{Kind: KindParagraph, Content: content}
}

// NewParagraphText returns a paragraph holding a single plain text run.
func NewParagraphText(text string) Node {
	return NewParagraph(NewText(text))
}

// NewList returns a list of the given kind.
func NewList(kind ListKind, items ...ListItem) Node {
	return Node{Kind: KindList, ListKind: kind, Items: items}
}

// NewCodeBlock returns a fenced code block with default render properties.
func NewCodeBlock(language, code string) Node {
	p := DefaultCodeBlockProperties()
	return Node{Kind: KindCodeBlock, Language: language, Code: code, CodeProps: &p}
}

// NewBlockQuote returns a quote wrapping the given blocks.
func NewBlockQuote(children ...Node) Node {
	return Node{Kind: KindBlockQuote, Children: children}
}

// NewThematicBreak returns a horizontal rule.
func NewThematicBreak() Node { return Node{Kind: KindThematicBreak} }

// NewTable returns a table with default render properties. Alignments may
// be nil, in which case every column defaults to AlignNone.
func NewTable(header []TableCell, rows [][]TableCell, alignments []Alignment) Node {
	p := DefaultTableProperties()
	p.HasHeader = len(header) > 0
	return Node{Kind: KindTable, Header: header, Rows: rows, Alignments: alignments, TableProps: &p}
}

// NewGroup returns an opaque structural container labelled name.
func NewGroup(name string, children ...Node) Node {
	return Node{Kind: KindGroup, Name: name, Children: children}
}

// NewFootnoteReference returns a block-level footnote reference.
func NewFootnoteReference(label string) Node {
	return Node{Kind: KindFootnoteReference, Label: label}
}

// NewFootnoteDefinition returns a footnote definition wrapping the given
// blocks.
func NewFootnoteDefinition(label string, children ...Node) Node {
	return Node{Kind: KindFootnoteDefinition, Label: label, Children: children}
}

// NewDefinitionList returns a definition list.
func NewDefinitionList(items ...DefinitionItem) Node {
	return Node{Kind: KindDefinitionList, Definitions: items}
}

// NewMathBlock returns a display math block holding raw math source.
func NewMathBlock(src string) Node {
	return Node{Kind: KindMathBlock, Code: src}
}

// AsHeading returns the level and inline content when the node is a
// heading.
func (n *Node) AsHeading() (int, []InlineNode, bool) {
	if n.Kind != KindHeading {
		return 0, nil, false
	}
	return n.Level, n.Content, true
}

// AsParagraph returns the inline content when the node is a paragraph.
func (n *Node) AsParagraph() ([]InlineNode, bool) {
	if n.Kind != KindParagraph {
		return nil, false
	}
	return n.Content, true
}

// AsList returns the kind and items when the node is a list.
func (n *Node) AsList() (ListKind, []ListItem, bool) {
	if n.Kind != KindList {
		return "", nil, false
	}
	return n.ListKind, n.Items, true
}

// AsCodeBlock returns the language and code when the node is a code block.
func (n *Node) AsCodeBlock() (language, code string, ok bool) {
	if n.Kind != KindCodeBlock {
		return "", "", false
	}
	return n.Language, n.Code, true
}

// AsTable returns the header, rows and alignments when the node is a table.
func (n *Node) AsTable() (header []TableCell, rows [][]TableCell, alignments []Alignment, ok bool) {
	if n.Kind != KindTable {
		return nil, nil, nil, false
	}
	return n.Header, n.Rows, n.Alignments, true
}

// IsTextBearing reports whether the node carries editable text, either as
// inline content or as raw source.
func (n *Node) IsTextBearing() bool {
	switch n.Kind {
	case KindHeading, KindParagraph, KindCodeBlock, KindMathBlock:
		return true
	}
	return false
}

// PlainText returns the human-readable text of the node and its
// descendants, with no markup.
func (n *Node) PlainText() string {
	switch n.Kind {
	case KindHeading, KindParagraph:
		return InlinesText(n.Content)
	case KindCodeBlock, KindMathBlock:
		return n.Code
	case KindBlockQuote, KindGroup, KindFootnoteDefinition:
		return blocksText(n.Children)
	case KindList:
		var parts []string
		for _, it := range n.Items {
			parts = append(parts, blocksText(it.Children))
		}
		return joinNonEmpty(parts, "\n")
	case KindTable:
		var parts []string
		for _, c := range n.Header {
			parts = append(parts, InlinesText(c.Content))
		}
		for _, row := range n.Rows {
			for _, c := range row {
				parts = append(parts, InlinesText(c.Content))
			}
		}
		return joinNonEmpty(parts, "\n")
	case KindDefinitionList:
		var parts []string
		for _, d := range n.Definitions {
			parts = append(parts, InlinesText(d.Term))
			for _, desc := range d.Descriptions {
				parts = append(parts, blocksText(desc))
			}
		}
		return joinNonEmpty(parts, "\n")
	}
	return ""
}

func blocksText(nodes []Node) string {
	var parts []string
	for i := range nodes {
		parts = append(parts, nodes[i].PlainText())
	}
	return joinNonEmpty(parts, "\n")
}

func joinNonEmpty(parts []string, sep string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}
