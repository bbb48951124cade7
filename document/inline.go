package document

// InlineKind identifies an inline node variant. The values double as the
// interchange discriminator strings.
type InlineKind string

const (
	InlineText           InlineKind = "text"
	InlineLink           InlineKind = "link"
	InlineImage          InlineKind = "image"
	InlineCodeSpan       InlineKind = "code_span"
	InlineAutoLink       InlineKind = "autolink"
	InlineFootnoteRef    InlineKind = "footnote_ref"
	InlineFootnoteInline InlineKind = "inline_footnote"
	InlineMention        InlineKind = "mention"
	InlineMath           InlineKind = "math"
	InlineEmoji          InlineKind = "emoji"
	InlineHardBreak      InlineKind = "hard_break"
	InlineSoftBreak      InlineKind = "soft_break"
)

// InlineNode is a tagged variant over every inline construct. Kind selects
// the variant; only the fields that variant uses are meaningful. Text is the
// primary string payload: run content for text, code for code spans, raw
// source for math, the shortcode for emoji, the label for footnote refs and
// the name for mentions.
type InlineNode struct {
	Kind InlineKind

	Text   string
	Format Formatting

	URL     string
	Title   string
	Alt     string
	IsEmail bool

	MentionKind string

	Children []InlineNode
}

// NewText returns an unformatted text run.
func NewText(s string) InlineNode {
	return InlineNode{Kind: InlineText, Text: s}
}

// NewFormattedText returns a text run with the given style flags.
func NewFormattedText(s string, f Formatting) InlineNode {
	return InlineNode{Kind: InlineText, Text: s, Format: f}
}

// NewLink returns a link wrapping the given inline children. Title may be
// empty.
func NewLink(url, title string, children ...InlineNode) InlineNode {
	return InlineNode{Kind: InlineLink, URL: url, Title: title, Children: children}
}

// NewImage returns an image reference. Title may be empty.
func NewImage(url, alt, title string) InlineNode {
	return InlineNode{Kind: InlineImage, URL: url, Alt: alt, Title: title}
}

// NewCodeSpan returns an inline code span.
func NewCodeSpan(code string) InlineNode {
	return InlineNode{Kind: InlineCodeSpan, Text: code}
}

// NewAutoLink returns a bare URL or email link.
func NewAutoLink(url string, isEmail bool) InlineNode {
	return InlineNode{Kind: InlineAutoLink, URL: url, IsEmail: isEmail}
}

// NewFootnoteRef returns a reference to a footnote definition by label.
func NewFootnoteRef(label string) InlineNode {
	return InlineNode{Kind: InlineFootnoteRef, Text: label}
}

// NewInlineFootnote returns a footnote whose content is carried inline.
func NewInlineFootnote(children ...InlineNode) InlineNode {
	return InlineNode{Kind: InlineFootnoteInline, Children: children}
}

// NewMention returns an @-mention of the given kind ("user", "channel", ...).
func NewMention(name, mentionKind string) InlineNode {
	return InlineNode{Kind: InlineMention, Text: name, MentionKind: mentionKind}
}

// NewInlineMath returns an inline math span holding raw math source.
func NewInlineMath(src string) InlineNode {
	return InlineNode{Kind: InlineMath, Text: src}
}

// NewEmoji returns an emoji by shortcode, without the surrounding colons.
func NewEmoji(shortcode string) InlineNode {
	return InlineNode{Kind: InlineEmoji, Text: shortcode}
}

// NewHardBreak returns an explicit line break.
func NewHardBreak() InlineNode { return InlineNode{Kind: InlineHardBreak} }

// NewSoftBreak returns a soft line break.
func NewSoftBreak() InlineNode { return InlineNode{Kind: InlineSoftBreak} }

// AsText returns the run content and formatting when the node is a text run.
func (n InlineNode) AsText() (string, Formatting, bool) {
	if n.Kind != InlineText {
		return "", Formatting{}, false
	}
	return n.Text, n.Format, true
}

// AsLink returns the URL, title and children when the node is a link.
func (n InlineNode) AsLink() (url, title string, children []InlineNode, ok bool) {
	if n.Kind != InlineLink {
		return "", "", nil, false
	}
	return n.URL, n.Title, n.Children, true
}

// PlainText returns the human-readable text of the node and its descendants,
// with no markup. Breaks render as newline and space.
func (n InlineNode) PlainText() string {
	switch n.Kind {
	case InlineText, InlineCodeSpan, InlineMath:
		return n.Text
	case InlineLink, InlineFootnoteInline:
		return InlinesText(n.Children)
	case InlineImage:
		return n.Alt
	case InlineAutoLink:
		return n.URL
	case InlineMention:
		return "@" + n.Text
	case InlineEmoji:
		return ":" + n.Text + ":"
	case InlineHardBreak:
		return "\n"
	case InlineSoftBreak:
		return " "
	}
	return ""
}

// InlinesText concatenates PlainText over a sequence of inline nodes.
func InlinesText(nodes []InlineNode) string {
	var out string
	for _, n := range nodes {
		out += n.PlainText()
	}
	return out
}
