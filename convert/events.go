package convert

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/docmark/document"
)

// EventKind classifies a lexical event.
type EventKind string

const (
	EventEnterBlock  EventKind = "enter_block"
	EventExitBlock   EventKind = "exit_block"
	EventEnterInline EventKind = "enter_inline"
	EventExitInline  EventKind = "exit_inline"
	EventText        EventKind = "text"
	EventLeaf        EventKind = "leaf"
)

// BlockKind names the container a block event opens or closes.
type BlockKind string

const (
	BlockParagraph      BlockKind = "paragraph"
	BlockHeading        BlockKind = "heading"
	BlockQuote          BlockKind = "blockquote"
	BlockList           BlockKind = "list"
	BlockListItem       BlockKind = "list_item"
	BlockCode           BlockKind = "code"
	BlockTable          BlockKind = "table"
	BlockTableRow       BlockKind = "table_row"
	BlockTableCell      BlockKind = "table_cell"
	BlockFootnoteDef    BlockKind = "footnote_definition"
	BlockDefinitionList BlockKind = "definition_list"
	BlockDefinitionTerm BlockKind = "definition_term"
	BlockDefinitionDesc BlockKind = "definition_description"
)

// InlineTag names a span-style inline construct.
type InlineTag string

const (
	InlineTagStrong         InlineTag = "strong"
	InlineTagEmphasis       InlineTag = "emphasis"
	InlineTagStrikethrough  InlineTag = "strikethrough"
	InlineTagLink           InlineTag = "link"
	InlineTagInlineFootnote InlineTag = "inline_footnote"
)

// LeafKind names a childless event.
type LeafKind string

const (
	LeafThematicBreak LeafKind = "thematic_break"
	LeafHardBreak     LeafKind = "hard_break"
	LeafSoftBreak     LeafKind = "soft_break"
	LeafCodeSpan      LeafKind = "code_span"
	LeafAutoLink      LeafKind = "autolink"
	LeafImage         LeafKind = "image"
	LeafFootnoteRef   LeafKind = "footnote_ref"
	LeafTaskMarker    LeafKind = "task_marker"
	LeafMath          LeafKind = "math"
	LeafEmoji         LeafKind = "emoji"
)

// Event is one element of the flat lexical stream the ingestion state
// machine consumes. Kind selects which of the remaining fields carry
// payload.
type Event struct {
	Kind EventKind

	Block  BlockKind
	Inline InlineTag
	Leaf   LeafKind

	Text       string
	Level      int
	ListKind   document.ListKind
	Language   string
	Label      string
	URL        string
	Title      string
	Alt        string
	IsEmail    bool
	Checked    bool
	Header     bool
	Alignments []document.Alignment
}

// Events is a pull iterator over a lexical event stream.
type Events struct {
	events []Event
	pos    int
}

// NewEvents wraps a pre-built event sequence, for producers other than the
// markdown tokenizer.
func NewEvents(events []Event) *Events {
	return &Events{events: events}
}

// Next returns the next event; ok is false at end of stream.
func (e *Events) Next() (Event, bool) {
	if e.pos >= len(e.events) {
		return Event{}, false
	}
	ev := e.events[e.pos]
	e.pos++
	return ev, true
}

// Pos returns the number of events consumed so far.
func (e *Events) Pos() int { return e.pos }

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	),
)

// Tokenize parses markdown source with the goldmark tokenizer and flattens
// its tree into the lexical event stream.
func Tokenize(src []byte) *Events {
	root := markdown.Parser().Parse(text.NewReader(src))
	f := &flattener{src: src, footnotes: collectFootnoteLabels(root)}
	ast.Walk(root, f.walk)
	return NewEvents(f.events)
}

type flattener struct {
	src       []byte
	events    []Event
	footnotes map[int]string
}

func collectFootnoteLabels(root ast.Node) map[int]string {
	labels := make(map[int]string)
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fn, ok := n.(*east.Footnote); ok {
			labels[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})
	return labels
}

func (f *flattener) emit(ev Event) { f.events = append(f.events, ev) }

func (f *flattener) blockEvent(entering bool, ev Event) {
	if entering {
		ev.Kind = EventEnterBlock
	} else {
		ev.Kind = EventExitBlock
	}
	f.emit(ev)
}

func (f *flattener) inlineEvent(entering bool, ev Event) {
	if entering {
		ev.Kind = EventEnterInline
	} else {
		ev.Kind = EventExitInline
	}
	f.emit(ev)
}

func (f *flattener) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch v := n.(type) {
	case *ast.Document, *east.FootnoteList:
		// transparent containers

	case *ast.Heading:
		f.blockEvent(entering, Event{Block: BlockHeading, Level: v.Level})
	case *ast.Paragraph, *ast.TextBlock:
		f.blockEvent(entering, Event{Block: BlockParagraph})
	case *ast.Blockquote:
		f.blockEvent(entering, Event{Block: BlockQuote})
	case *ast.List:
		kind := document.ListUnordered
		if v.IsOrdered() {
			kind = document.ListOrdered
		}
		f.blockEvent(entering, Event{Block: BlockList, ListKind: kind})
	case *ast.ListItem:
		f.blockEvent(entering, Event{Block: BlockListItem})

	case *ast.FencedCodeBlock:
		if entering {
			f.emit(Event{Kind: EventEnterBlock, Block: BlockCode, Language: string(v.Language(f.src))})
			f.emit(Event{Kind: EventText, Text: f.linesOf(v)})
			f.emit(Event{Kind: EventExitBlock, Block: BlockCode})
		}
		return ast.WalkSkipChildren, nil
	case *ast.CodeBlock:
		if entering {
			f.emit(Event{Kind: EventEnterBlock, Block: BlockCode})
			f.emit(Event{Kind: EventText, Text: f.linesOf(v)})
			f.emit(Event{Kind: EventExitBlock, Block: BlockCode})
		}
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		if entering {
			f.emit(Event{Kind: EventLeaf, Leaf: LeafThematicBreak})
		}
		return ast.WalkSkipChildren, nil

	case *east.Table:
		f.blockEvent(entering, Event{Block: BlockTable, Alignments: tableAlignments(v)})
	case *east.TableHeader:
		f.blockEvent(entering, Event{Block: BlockTableRow, Header: true})
	case *east.TableRow:
		f.blockEvent(entering, Event{Block: BlockTableRow})
	case *east.TableCell:
		f.blockEvent(entering, Event{Block: BlockTableCell})

	case *east.Footnote:
		f.blockEvent(entering, Event{Block: BlockFootnoteDef, Label: string(v.Ref)})
	case *east.FootnoteLink:
		if entering {
			f.emit(Event{Kind: EventLeaf, Leaf: LeafFootnoteRef, Label: f.footnoteLabel(v.Index)})
		}
		return ast.WalkSkipChildren, nil
	case *east.FootnoteBacklink:
		return ast.WalkSkipChildren, nil

	case *east.DefinitionList:
		f.blockEvent(entering, Event{Block: BlockDefinitionList})
	case *east.DefinitionTerm:
		f.blockEvent(entering, Event{Block: BlockDefinitionTerm})
	case *east.DefinitionDescription:
		f.blockEvent(entering, Event{Block: BlockDefinitionDesc})

	case *east.TaskCheckBox:
		if entering {
			f.emit(Event{Kind: EventLeaf, Leaf: LeafTaskMarker, Checked: v.IsChecked})
		}
		return ast.WalkSkipChildren, nil

	case *ast.Emphasis:
		tag := InlineTagEmphasis
		if v.Level == 2 {
			tag = InlineTagStrong
		}
		f.inlineEvent(entering, Event{Inline: tag})
	case *east.Strikethrough:
		f.inlineEvent(entering, Event{Inline: InlineTagStrikethrough})

	case *ast.Link:
		f.inlineEvent(entering, Event{Inline: InlineTagLink, URL: string(v.Destination), Title: string(v.Title)})
	case *ast.AutoLink:
		if entering {
			f.emit(Event{
				Kind:    EventLeaf,
				Leaf:    LeafAutoLink,
				URL:     string(v.URL(f.src)),
				IsEmail: v.AutoLinkType == ast.AutoLinkEmail,
			})
		}
		return ast.WalkSkipChildren, nil
	case *ast.Image:
		if entering {
			f.emit(Event{
				Kind:  EventLeaf,
				Leaf:  LeafImage,
				URL:   string(v.Destination),
				Title: string(v.Title),
				Alt:   f.textOf(v),
			})
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeSpan:
		if entering {
			f.emit(Event{Kind: EventLeaf, Leaf: LeafCodeSpan, Text: f.textOf(v)})
		}
		return ast.WalkSkipChildren, nil

	case *ast.Text:
		if entering {
			if s := string(v.Segment.Value(f.src)); s != "" {
				f.emit(Event{Kind: EventText, Text: s})
			}
			if v.HardLineBreak() {
				f.emit(Event{Kind: EventLeaf, Leaf: LeafHardBreak})
			} else if v.SoftLineBreak() {
				f.emit(Event{Kind: EventLeaf, Leaf: LeafSoftBreak})
			}
		}
	case *ast.String:
		if entering {
			if s := string(v.Value); s != "" {
				f.emit(Event{Kind: EventText, Text: s})
			}
		}

	case *ast.RawHTML, *ast.HTMLBlock:
		// raw markup passes through the model untyped; drop it
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func (f *flattener) footnoteLabel(index int) string {
	if label, ok := f.footnotes[index]; ok && label != "" {
		return label
	}
	return strconv.Itoa(index)
}

// linesOf joins a leaf block's raw source lines.
func (f *flattener) linesOf(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(f.src))
	}
	return b.String()
}

// textOf flattens a node's descendant text, used for image alt text and
// code spans.
func (f *flattener) textOf(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(f.src))
		case *ast.String:
			b.Write(v.Value)
		default:
			b.WriteString(f.textOf(c))
		}
	}
	return b.String()
}

func tableAlignments(t *east.Table) []document.Alignment {
	out := make([]document.Alignment, len(t.Alignments))
	for i, a := range t.Alignments {
		switch a {
		case east.AlignLeft:
			out[i] = document.AlignLeft
		case east.AlignCenter:
			out[i] = document.AlignCenter
		case east.AlignRight:
			out[i] = document.AlignRight
		default:
			out[i] = document.AlignNone
		}
	}
	return out
}
