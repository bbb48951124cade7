package convert

import (
	"fmt"
	"strings"

	"github.com/dshills/docmark/document"
)

// ToMarkdown renders the document as markdown text. Metadata, when
// present and non-empty, is emitted as a TOML front matter block.
func ToMarkdown(doc *document.Document) (string, error) {
	fm, err := renderFrontMatter(doc.Metadata)
	if err != nil {
		return "", err
	}
	body := RenderBlocks(doc.Nodes)
	if fm == "" {
		return body, nil
	}
	if body == "" {
		return fm, nil
	}
	return fm + "\n\n" + body, nil
}

// RenderBlocks renders a block sequence as markdown, blocks separated by
// a blank line.
func RenderBlocks(nodes []document.Node) string {
	parts := make([]string, 0, len(nodes))
	for i := range nodes {
		parts = append(parts, renderBlock(&nodes[i]))
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(n *document.Node) string {
	switch n.Kind {
	case document.KindHeading:
		return strings.Repeat("#", n.Level) + " " + renderInlines(n.Content)
	case document.KindParagraph:
		return renderInlines(n.Content)
	case document.KindList:
		return renderList(n)
	case document.KindCodeBlock:
		return "```" + n.Language + "\n" + n.Code + "\n```"
	case document.KindBlockQuote:
		return prefixLines(RenderBlocks(n.Children), "> ", "> ")
	case document.KindThematicBreak:
		return "---"
	case document.KindTable:
		return renderTable(n)
	case document.KindGroup:
		return RenderBlocks(n.Children)
	case document.KindFootnoteReference:
		return "[^" + n.Label + "]"
	case document.KindFootnoteDefinition:
		return prefixLines(RenderBlocks(n.Children), "[^"+n.Label+"]: ", "    ")
	case document.KindDefinitionList:
		return renderDefinitionList(n)
	case document.KindMathBlock:
		return "$$\n" + n.Code + "\n$$"
	}
	return ""
}

func renderList(n *document.Node) string {
	var lines []string
	for i, item := range n.Items {
		marker := listMarker(n, i, item)
		body := RenderBlocks(item.Children)
		lines = append(lines, prefixLines(body, marker, strings.Repeat(" ", len(marker))))
	}
	return strings.Join(lines, "\n")
}

func listMarker(n *document.Node, index int, item document.ListItem) string {
	switch {
	case n.ListKind == document.ListOrdered:
		return fmt.Sprintf("%d. ", index+1)
	case item.Checked != nil && *item.Checked:
		return "- [x] "
	case item.Checked != nil:
		return "- [ ] "
	default:
		return "* "
	}
}

// prefixLines prepends first to the opening line of s and rest to every
// later line. Blank lines keep their prefix trimmed of trailing spaces.
func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		p := rest
		if i == 0 {
			p = first
		}
		lines[i] = strings.TrimRight(p+line, " ")
	}
	return strings.Join(lines, "\n")
}

func renderTable(n *document.Node) string {
	width := len(n.Header)
	for _, row := range n.Rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(cells []document.TableCell) {
		sb.WriteString("|")
		for i := 0; i < width; i++ {
			text := ""
			if i < len(cells) {
				text = renderInlines(cells[i].Content)
			}
			sb.WriteString(" " + strings.ReplaceAll(text, "|", "\\|") + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(n.Header)
	sb.WriteString("|")
	for i := 0; i < width; i++ {
		sb.WriteString(" " + separatorFor(n.Alignments, i) + " |")
	}
	sb.WriteString("\n")
	for _, row := range n.Rows {
		writeRow(row)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func separatorFor(alignments []document.Alignment, col int) string {
	a := document.AlignNone
	if col < len(alignments) {
		a = alignments[col]
	}
	switch a {
	case document.AlignLeft:
		return ":---"
	case document.AlignCenter:
		return ":---:"
	case document.AlignRight:
		return "---:"
	default:
		return "---"
	}
}

func renderDefinitionList(n *document.Node) string {
	var parts []string
	for _, d := range n.Definitions {
		var sb strings.Builder
		sb.WriteString(renderInlines(d.Term))
		for _, desc := range d.Descriptions {
			sb.WriteString("\n")
			sb.WriteString(prefixLines(RenderBlocks(desc), ": ", "  "))
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n")
}

func renderInlines(nodes []document.InlineNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(renderInline(n))
	}
	return sb.String()
}

func renderInline(n document.InlineNode) string {
	switch n.Kind {
	case document.InlineText:
		return wrapFormatting(n.Text, n.Format)
	case document.InlineLink:
		return "[" + renderInlines(n.Children) + "](" + linkTarget(n.URL, n.Title) + ")"
	case document.InlineImage:
		return "![" + n.Alt + "](" + linkTarget(n.URL, n.Title) + ")"
	case document.InlineCodeSpan:
		return "`" + n.Text + "`"
	case document.InlineAutoLink:
		return "<" + n.URL + ">"
	case document.InlineFootnoteRef:
		return "[^" + n.Text + "]"
	case document.InlineFootnoteInline:
		return "^[" + renderInlines(n.Children) + "]"
	case document.InlineMention:
		return "@" + n.Text
	case document.InlineMath:
		return "$" + n.Text + "$"
	case document.InlineEmoji:
		return ":" + n.Text + ":"
	case document.InlineHardBreak:
		return "  \n"
	case document.InlineSoftBreak:
		return "\n"
	}
	return ""
}

func linkTarget(url, title string) string {
	if title == "" {
		return url
	}
	return url + " \"" + title + "\""
}

func wrapFormatting(text string, f document.Formatting) string {
	if f.Code {
		text = "`" + text + "`"
	}
	if f.Italic {
		text = "*" + text + "*"
	}
	if f.Bold {
		text = "**" + text + "**"
	}
	if f.Strikethrough {
		text = "~~" + text + "~~"
	}
	return text
}
