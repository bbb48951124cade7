package convert

import (
	"fmt"
	"strings"

	"github.com/dshills/docmark/document"
)

// ToHTML renders the document as an HTML fragment with balanced tags.
// All text content and attribute values are escaped.
func ToHTML(doc *document.Document) string {
	var sb strings.Builder
	htmlBlocks(&sb, doc.Nodes)
	return strings.TrimSuffix(sb.String(), "\n")
}

func htmlBlocks(sb *strings.Builder, nodes []document.Node) {
	for i := range nodes {
		htmlBlock(sb, &nodes[i])
	}
}

func htmlBlock(sb *strings.Builder, n *document.Node) {
	switch n.Kind {
	case document.KindHeading:
		level := min(max(n.Level, 1), 6)
		fmt.Fprintf(sb, "<h%d>%s</h%d>\n", level, htmlInlines(n.Content), level)
	case document.KindParagraph:
		fmt.Fprintf(sb, "<p>%s</p>\n", htmlInlines(n.Content))
	case document.KindList:
		htmlList(sb, n)
	case document.KindCodeBlock:
		sb.WriteString("<pre><code")
		if n.Language != "" {
			fmt.Fprintf(sb, " class=\"language-%s\"", escapeAttr(n.Language))
		}
		fmt.Fprintf(sb, ">%s</code></pre>\n", escapeHTML(n.Code))
	case document.KindBlockQuote:
		sb.WriteString("<blockquote>\n")
		htmlBlocks(sb, n.Children)
		sb.WriteString("</blockquote>\n")
	case document.KindThematicBreak:
		sb.WriteString("<hr>\n")
	case document.KindTable:
		htmlTable(sb, n)
	case document.KindGroup:
		fmt.Fprintf(sb, "<div data-group=\"%s\">\n", escapeAttr(n.Name))
		htmlBlocks(sb, n.Children)
		sb.WriteString("</div>\n")
	case document.KindFootnoteReference:
		fmt.Fprintf(sb, "<p><sup><a href=\"#fn-%s\">%s</a></sup></p>\n",
			escapeAttr(n.Label), escapeHTML(n.Label))
	case document.KindFootnoteDefinition:
		fmt.Fprintf(sb, "<div class=\"footnote\" id=\"fn-%s\">\n", escapeAttr(n.Label))
		htmlBlocks(sb, n.Children)
		sb.WriteString("</div>\n")
	case document.KindDefinitionList:
		sb.WriteString("<dl>\n")
		for _, d := range n.Definitions {
			fmt.Fprintf(sb, "<dt>%s</dt>\n", htmlInlines(d.Term))
			for _, desc := range d.Descriptions {
				sb.WriteString("<dd>\n")
				htmlBlocks(sb, desc)
				sb.WriteString("</dd>\n")
			}
		}
		sb.WriteString("</dl>\n")
	case document.KindMathBlock:
		fmt.Fprintf(sb, "<div class=\"math\">%s</div>\n", escapeHTML(n.Code))
	}
}

func htmlList(sb *strings.Builder, n *document.Node) {
	tag := "ul"
	if n.ListKind == document.ListOrdered {
		tag = "ol"
	}
	fmt.Fprintf(sb, "<%s>\n", tag)
	for _, item := range n.Items {
		sb.WriteString("<li>")
		if item.Checked != nil {
			if *item.Checked {
				sb.WriteString("<input type=\"checkbox\" checked disabled> ")
			} else {
				sb.WriteString("<input type=\"checkbox\" disabled> ")
			}
		}
		htmlItemBody(sb, item.Children)
		sb.WriteString("</li>\n")
	}
	fmt.Fprintf(sb, "</%s>\n", tag)
}

// htmlItemBody renders a list item's blocks, unwrapping a lone paragraph
// to keep simple items on one line.
func htmlItemBody(sb *strings.Builder, blocks []document.Node) {
	if len(blocks) == 1 && blocks[0].Kind == document.KindParagraph {
		sb.WriteString(htmlInlines(blocks[0].Content))
		return
	}
	sb.WriteString("\n")
	htmlBlocks(sb, blocks)
}

func htmlTable(sb *strings.Builder, n *document.Node) {
	sb.WriteString("<table>\n")
	if p := n.TableProps; p != nil && p.Caption != "" {
		fmt.Fprintf(sb, "<caption>%s</caption>\n", escapeHTML(p.Caption))
	}
	if len(n.Header) > 0 {
		sb.WriteString("<thead>\n<tr>\n")
		for i, c := range n.Header {
			htmlCell(sb, c, "th", alignAt(n.Alignments, i))
		}
		sb.WriteString("</tr>\n</thead>\n")
	}
	sb.WriteString("<tbody>\n")
	for _, row := range n.Rows {
		sb.WriteString("<tr>\n")
		for i, c := range row {
			tag := "td"
			if c.IsHeader {
				tag = "th"
			}
			htmlCell(sb, c, tag, alignAt(n.Alignments, i))
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

func alignAt(alignments []document.Alignment, col int) document.Alignment {
	if col < len(alignments) {
		return alignments[col]
	}
	return document.AlignNone
}

func htmlCell(sb *strings.Builder, c document.TableCell, tag string, align document.Alignment) {
	sb.WriteString("<" + tag)
	if align != document.AlignNone && align != "" {
		fmt.Fprintf(sb, " align=\"%s\"", escapeAttr(string(align)))
	}
	if c.ColSpan > 1 {
		fmt.Fprintf(sb, " colspan=\"%d\"", c.ColSpan)
	}
	if c.RowSpan > 1 {
		fmt.Fprintf(sb, " rowspan=\"%d\"", c.RowSpan)
	}
	if c.BackgroundColor != "" {
		fmt.Fprintf(sb, " style=\"background-color: %s\"", escapeAttr(c.BackgroundColor))
	}
	if c.CSSClass != "" {
		fmt.Fprintf(sb, " class=\"%s\"", escapeAttr(c.CSSClass))
	}
	fmt.Fprintf(sb, ">%s</%s>\n", htmlInlines(c.Content), tag)
}

func htmlInlines(nodes []document.InlineNode) string {
	var sb strings.Builder
	for _, n := range nodes {
		htmlInline(&sb, n)
	}
	return sb.String()
}

func htmlInline(sb *strings.Builder, n document.InlineNode) {
	switch n.Kind {
	case document.InlineText:
		text := escapeHTML(n.Text)
		if n.Format.Code {
			text = "<code>" + text + "</code>"
		}
		if n.Format.Italic {
			text = "<em>" + text + "</em>"
		}
		if n.Format.Bold {
			text = "<strong>" + text + "</strong>"
		}
		if n.Format.Strikethrough {
			text = "<del>" + text + "</del>"
		}
		sb.WriteString(text)
	case document.InlineLink:
		sb.WriteString("<a href=\"" + escapeAttr(n.URL) + "\"")
		if n.Title != "" {
			sb.WriteString(" title=\"" + escapeAttr(n.Title) + "\"")
		}
		sb.WriteString(">" + htmlInlines(n.Children) + "</a>")
	case document.InlineImage:
		sb.WriteString("<img src=\"" + escapeAttr(n.URL) + "\" alt=\"" + escapeAttr(n.Alt) + "\"")
		if n.Title != "" {
			sb.WriteString(" title=\"" + escapeAttr(n.Title) + "\"")
		}
		sb.WriteString(">")
	case document.InlineCodeSpan:
		sb.WriteString("<code>" + escapeHTML(n.Text) + "</code>")
	case document.InlineAutoLink:
		href := n.URL
		if n.IsEmail {
			href = "mailto:" + href
		}
		sb.WriteString("<a href=\"" + escapeAttr(href) + "\">" + escapeHTML(n.URL) + "</a>")
	case document.InlineFootnoteRef:
		sb.WriteString("<sup><a href=\"#fn-" + escapeAttr(n.Text) + "\">" + escapeHTML(n.Text) + "</a></sup>")
	case document.InlineFootnoteInline:
		sb.WriteString("<sup class=\"footnote-inline\">" + htmlInlines(n.Children) + "</sup>")
	case document.InlineMention:
		sb.WriteString("<span class=\"mention\" data-kind=\"" + escapeAttr(n.MentionKind) + "\">@" +
			escapeHTML(n.Text) + "</span>")
	case document.InlineMath:
		sb.WriteString("<span class=\"math\">" + escapeHTML(n.Text) + "</span>")
	case document.InlineEmoji:
		sb.WriteString("<span class=\"emoji\">:" + escapeHTML(n.Text) + ":</span>")
	case document.InlineHardBreak:
		sb.WriteString("<br>\n")
	case document.InlineSoftBreak:
		sb.WriteString("\n")
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string { return htmlEscaper.Replace(s) }
func escapeAttr(s string) string { return htmlEscaper.Replace(s) }
