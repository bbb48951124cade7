package convert

import (
	"fmt"
	"strings"

	"github.com/dshills/docmark/document"
)

// Ingest consumes a lexical event stream to exhaustion and builds the
// document tree. A malformed stream (unbalanced enter/exit, constructs in
// impossible positions) fails with an IngestError and no partial document.
func Ingest(events *Events) (*document.Document, error) {
	ing := &ingester{doc: document.New(), root: newInlineBuilder()}
	for {
		ev, ok := events.Next()
		if !ok {
			break
		}
		if err := ing.handle(ev); err != nil {
			return nil, &IngestError{Msg: err.Error(), Index: events.Pos() - 1}
		}
	}
	if len(ing.stack) > 0 {
		return nil, &IngestError{
			Msg:   fmt.Sprintf("unterminated %s context", ing.top().kind),
			Index: events.Pos(),
		}
	}
	// Stray root-level inline content becomes a synthesized paragraph.
	content, err := ing.root.Result()
	if err != nil {
		return nil, &IngestError{Msg: err.Error(), Index: events.Pos()}
	}
	if len(content) > 0 {
		ing.doc.Append(document.NewParagraph(content...))
	}
	return ing.doc, nil
}

// FromMarkdown tokenizes markdown source, strips any TOML front matter
// into the document metadata, and ingests the event stream.
func FromMarkdown(src string) (*document.Document, error) {
	body, meta, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	doc, err := Ingest(Tokenize([]byte(body)))
	if err != nil {
		return nil, err
	}
	doc.Metadata = meta
	return doc, nil
}

// context is one open block container on the ingestion stack. kind
// selects which accumulators are live.
type context struct {
	kind BlockKind

	level    int
	listKind document.ListKind
	language string
	label    string

	blocks  []document.Node
	items   []document.ListItem
	checked *bool

	alignments []document.Alignment
	header     []document.TableCell
	rows       [][]document.TableCell
	headerRow  bool
	cells      []document.TableCell

	defs []document.DefinitionItem

	code   strings.Builder
	inline *inlineBuilder
}

type ingester struct {
	doc   *document.Document
	stack []*context
	root  *inlineBuilder
}

func (g *ingester) top() *context {
	if len(g.stack) == 0 {
		return nil
	}
	return g.stack[len(g.stack)-1]
}

// targetInline returns the inline accumulator for the innermost open
// context, or the root accumulator when the stack is empty.
func (g *ingester) targetInline() *inlineBuilder {
	ctx := g.top()
	if ctx == nil {
		return g.root
	}
	if ctx.inline == nil {
		ctx.inline = newInlineBuilder()
	}
	return ctx.inline
}

func (g *ingester) handle(ev Event) error {
	switch ev.Kind {
	case EventEnterBlock:
		g.stack = append(g.stack, &context{
			kind:       ev.Block,
			level:      ev.Level,
			listKind:   ev.ListKind,
			language:   ev.Language,
			label:      ev.Label,
			headerRow:  ev.Header,
			alignments: ev.Alignments,
		})
		return nil
	case EventExitBlock:
		return g.exitBlock(ev)
	case EventText:
		if ctx := g.top(); ctx != nil && ctx.kind == BlockCode {
			ctx.code.WriteString(ev.Text)
			return nil
		}
		g.targetInline().Text(ev.Text)
		return nil
	case EventEnterInline:
		g.targetInline().Enter(ev)
		return nil
	case EventExitInline:
		return g.targetInline().Exit(ev)
	case EventLeaf:
		return g.leaf(ev)
	}
	return fmt.Errorf("unrecognized event kind %q", ev.Kind)
}

func (g *ingester) leaf(ev Event) error {
	switch ev.Leaf {
	case LeafThematicBreak:
		if err := g.flushInline(g.top()); err != nil {
			return err
		}
		return g.appendNode(document.NewThematicBreak())
	case LeafHardBreak:
		g.targetInline().Append(document.NewHardBreak())
	case LeafSoftBreak:
		g.targetInline().Append(document.NewSoftBreak())
	case LeafCodeSpan:
		g.targetInline().Append(document.NewCodeSpan(ev.Text))
	case LeafAutoLink:
		g.targetInline().Append(document.NewAutoLink(ev.URL, ev.IsEmail))
	case LeafImage:
		g.targetInline().Append(document.NewImage(ev.URL, ev.Alt, ev.Title))
	case LeafFootnoteRef:
		g.targetInline().Append(document.NewFootnoteRef(ev.Label))
	case LeafMath:
		g.targetInline().Append(document.NewInlineMath(ev.Text))
	case LeafEmoji:
		g.targetInline().Append(document.NewEmoji(ev.Text))
	case LeafTaskMarker:
		g.markTask(ev.Checked)
	default:
		return fmt.Errorf("unrecognized leaf %q", ev.Leaf)
	}
	return nil
}

// markTask records the checkbox state on the nearest open list item and
// promotes its list to a task list.
func (g *ingester) markTask(checked bool) {
	for i := len(g.stack) - 1; i >= 0; i-- {
		if g.stack[i].kind == BlockListItem {
			c := checked
			g.stack[i].checked = &c
			for j := i - 1; j >= 0; j-- {
				if g.stack[j].kind == BlockList {
					g.stack[j].listKind = document.ListTask
					break
				}
			}
			return
		}
	}
}

func (g *ingester) exitBlock(ev Event) error {
	ctx := g.top()
	if ctx == nil {
		return fmt.Errorf("exit %s with no open context", ev.Block)
	}
	if ev.Block != "" && ev.Block != ctx.kind {
		return fmt.Errorf("exit %s closes open %s", ev.Block, ctx.kind)
	}
	g.stack = g.stack[:len(g.stack)-1]

	switch ctx.kind {
	case BlockParagraph:
		content, err := inlineResult(ctx)
		if err != nil {
			return err
		}
		if len(content) == 0 {
			return nil
		}
		return g.appendNode(document.NewParagraph(content...))

	case BlockHeading:
		content, err := inlineResult(ctx)
		if err != nil {
			return err
		}
		return g.appendNode(document.NewHeading(ctx.level, content...))

	case BlockQuote:
		if err := g.flushCtxInline(ctx); err != nil {
			return err
		}
		return g.appendNode(document.NewBlockQuote(ctx.blocks...))

	case BlockCode:
		code := strings.TrimSuffix(ctx.code.String(), "\n")
		return g.appendNode(document.NewCodeBlock(ctx.language, code))

	case BlockList:
		return g.appendNode(document.NewList(ctx.listKind, ctx.items...))

	case BlockListItem:
		if err := g.flushCtxInline(ctx); err != nil {
			return err
		}
		parent := g.top()
		if parent == nil || parent.kind != BlockList {
			return fmt.Errorf("list item outside list")
		}
		parent.items = append(parent.items, document.ListItem{Children: ctx.blocks, Checked: ctx.checked})
		return nil

	case BlockTableCell:
		content, err := inlineResult(ctx)
		if err != nil {
			return err
		}
		parent := g.top()
		if parent == nil || parent.kind != BlockTableRow {
			return fmt.Errorf("table cell outside row")
		}
		cell := document.NewTableCell(content...)
		cell.IsHeader = parent.headerRow
		parent.cells = append(parent.cells, cell)
		return nil

	case BlockTableRow:
		parent := g.top()
		if parent == nil || parent.kind != BlockTable {
			return fmt.Errorf("table row outside table")
		}
		if ctx.headerRow {
			parent.header = ctx.cells
		} else {
			parent.rows = append(parent.rows, ctx.cells)
		}
		return nil

	case BlockTable:
		return g.appendNode(document.NewTable(ctx.header, ctx.rows, ctx.alignments))

	case BlockFootnoteDef:
		if err := g.flushCtxInline(ctx); err != nil {
			return err
		}
		return g.appendNode(document.NewFootnoteDefinition(ctx.label, ctx.blocks...))

	case BlockDefinitionTerm:
		content, err := inlineResult(ctx)
		if err != nil {
			return err
		}
		parent := g.top()
		if parent == nil || parent.kind != BlockDefinitionList {
			return fmt.Errorf("definition term outside definition list")
		}
		parent.defs = append(parent.defs, document.DefinitionItem{Term: content})
		return nil

	case BlockDefinitionDesc:
		if err := g.flushCtxInline(ctx); err != nil {
			return err
		}
		parent := g.top()
		if parent == nil || parent.kind != BlockDefinitionList {
			return fmt.Errorf("definition description outside definition list")
		}
		if len(parent.defs) == 0 {
			parent.defs = append(parent.defs, document.DefinitionItem{})
		}
		last := &parent.defs[len(parent.defs)-1]
		last.Descriptions = append(last.Descriptions, ctx.blocks)
		return nil

	case BlockDefinitionList:
		return g.appendNode(document.NewDefinitionList(ctx.defs...))
	}
	return fmt.Errorf("unrecognized block context %q", ctx.kind)
}

// appendNode attaches a finished node to the innermost open context, or
// to the document root when the stack is empty.
func (g *ingester) appendNode(n document.Node) error {
	ctx := g.top()
	if ctx == nil {
		g.doc.Append(n)
		return nil
	}
	switch ctx.kind {
	case BlockList:
		return fmt.Errorf("%s node directly inside list", n.Kind)
	case BlockTable, BlockTableRow:
		return fmt.Errorf("%s node inside table structure", n.Kind)
	}
	ctx.blocks = append(ctx.blocks, n)
	return nil
}

// flushInline moves stray inline content of the innermost context (or the
// root) into a synthesized paragraph.
func (g *ingester) flushInline(ctx *context) error {
	if ctx == nil {
		content, err := g.root.Result()
		if err != nil {
			return err
		}
		if len(content) > 0 {
			g.doc.Append(document.NewParagraph(content...))
			g.root = newInlineBuilder()
		}
		return nil
	}
	return g.flushCtxInline(ctx)
}

func (g *ingester) flushCtxInline(ctx *context) error {
	content, err := inlineResult(ctx)
	if err != nil {
		return err
	}
	if len(content) > 0 {
		ctx.blocks = append(ctx.blocks, document.NewParagraph(content...))
	}
	return nil
}

func inlineResult(ctx *context) ([]document.InlineNode, error) {
	if ctx.inline == nil {
		return nil, nil
	}
	content, err := ctx.inline.Result()
	ctx.inline = nil
	return content, err
}
