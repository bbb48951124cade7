package convert

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// inlineBuilder accumulates inline nodes under the current formatting
// state. Span tags (strong, emphasis, strikethrough) nest as depth
// counters folded into text-run formatting; container tags (link, inline
// footnote) nest as frames that collapse into a single inline node on
// exit.
type inlineBuilder struct {
	frames []inlineFrame

	bold   int
	italic int
	strike int
}

type inlineFrame struct {
	tag   InlineTag
	url   string
	title string
	nodes []document.InlineNode
}

func newInlineBuilder() *inlineBuilder {
	return &inlineBuilder{frames: []inlineFrame{{}}}
}

func (b *inlineBuilder) topFrame() *inlineFrame {
	return &b.frames[len(b.frames)-1]
}

func (b *inlineBuilder) formatting() document.Formatting {
	return document.Formatting{
		Bold:          b.bold > 0,
		Italic:        b.italic > 0,
		Strikethrough: b.strike > 0,
	}
}

// Text appends a text run under the current formatting, merging into the
// previous run when the formatting matches.
func (b *inlineBuilder) Text(s string) {
	if s == "" {
		return
	}
	f := b.formatting()
	frame := b.topFrame()
	if l := len(frame.nodes); l > 0 {
		last := &frame.nodes[l-1]
		if last.Kind == document.InlineText && last.Format == f {
			last.Text += s
			return
		}
	}
	frame.nodes = append(frame.nodes, document.NewFormattedText(s, f))
}

// Append adds a finished inline node as-is.
func (b *inlineBuilder) Append(n document.InlineNode) {
	frame := b.topFrame()
	frame.nodes = append(frame.nodes, n)
}

// Enter opens a span or container tag.
func (b *inlineBuilder) Enter(ev Event) {
	switch ev.Inline {
	case InlineTagStrong:
		b.bold++
	case InlineTagEmphasis:
		b.italic++
	case InlineTagStrikethrough:
		b.strike++
	case InlineTagLink:
		b.frames = append(b.frames, inlineFrame{tag: InlineTagLink, url: ev.URL, title: ev.Title})
	case InlineTagInlineFootnote:
		b.frames = append(b.frames, inlineFrame{tag: InlineTagInlineFootnote})
	}
}

// Exit closes the matching open tag; closing a tag that is not open is a
// stream error.
func (b *inlineBuilder) Exit(ev Event) error {
	switch ev.Inline {
	case InlineTagStrong:
		if b.bold == 0 {
			return fmt.Errorf("exit strong with none open")
		}
		b.bold--
	case InlineTagEmphasis:
		if b.italic == 0 {
			return fmt.Errorf("exit emphasis with none open")
		}
		b.italic--
	case InlineTagStrikethrough:
		if b.strike == 0 {
			return fmt.Errorf("exit strikethrough with none open")
		}
		b.strike--
	case InlineTagLink, InlineTagInlineFootnote:
		if len(b.frames) < 2 || b.topFrame().tag != ev.Inline {
			return fmt.Errorf("exit %s with no matching open tag", ev.Inline)
		}
		frame := *b.topFrame()
		b.frames = b.frames[:len(b.frames)-1]
		if frame.tag == InlineTagLink {
			b.Append(document.NewLink(frame.url, frame.title, frame.nodes...))
		} else {
			b.Append(document.NewInlineFootnote(frame.nodes...))
		}
	default:
		return fmt.Errorf("exit unrecognized inline tag %q", ev.Inline)
	}
	return nil
}

// Result returns the accumulated inline content; unclosed container tags
// are a stream error.
func (b *inlineBuilder) Result() ([]document.InlineNode, error) {
	if len(b.frames) != 1 {
		return nil, fmt.Errorf("unclosed %s tag", b.topFrame().tag)
	}
	return b.frames[0].nodes, nil
}
