package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/docmark/document"
)

func TestToHTMLBasicBlocks(t *testing.T) {
	doc := document.New()
	doc.Append(document.NewHeadingText(1, "Title"))
	doc.Append(document.NewParagraphText("Hello world"))

	assert.Equal(t, "<h1>Title</h1>\n<p>Hello world</p>", ToHTML(doc))
}

func TestToHTMLEscaping(t *testing.T) {
	doc := document.New()
	doc.Append(document.NewParagraphText(`<script>alert("hi & bye")</script>`))

	out := ToHTML(doc)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;alert(&quot;hi &amp; bye&quot;)&lt;/script&gt;")
}

func TestToHTMLInlineMarkup(t *testing.T) {
	doc := document.New()
	doc.Append(document.NewParagraph(
		document.NewFormattedText("hot", document.Formatting{Bold: true, Italic: true}),
		document.NewText(" "),
		document.NewLink("https://go.dev", "Go", document.NewText("site")),
		document.NewText(" "),
		document.NewCodeSpan("a < b"),
		document.NewText(" "),
		document.NewAutoLink("mail@example.com", true),
		document.NewText(" "),
		document.NewMention("riley", "user"),
	))

	out := ToHTML(doc)
	assert.Contains(t, out, "<strong><em>hot</em></strong>")
	assert.Contains(t, out, `<a href="https://go.dev" title="Go">site</a>`)
	assert.Contains(t, out, "<code>a &lt; b</code>")
	assert.Contains(t, out, `<a href="mailto:mail@example.com">mail@example.com</a>`)
	assert.Contains(t, out, `<span class="mention" data-kind="user">@riley</span>`)
}

func TestToHTMLLists(t *testing.T) {
	doc := document.New()
	doc.Append(document.NewList(document.ListOrdered,
		document.NewListItem(document.NewParagraphText("first")),
	))
	doc.Append(document.NewList(document.ListTask,
		document.NewTaskItem(true, document.NewParagraphText("done")),
		document.NewTaskItem(false, document.NewParagraphText("todo")),
	))

	out := ToHTML(doc)
	assert.Contains(t, out, "<ol>\n<li>first</li>\n</ol>")
	assert.Contains(t, out, `<li><input type="checkbox" checked disabled> done</li>`)
	assert.Contains(t, out, `<li><input type="checkbox" disabled> todo</li>`)
}

func TestToHTMLTableAttributes(t *testing.T) {
	cell := document.NewTableCellText("wide")
	cell.ColSpan = 2
	cell.BackgroundColor = "#eee"
	doc := document.New()
	doc.Append(document.NewTable(
		[]document.TableCell{
			document.NewHeaderCell(document.NewText("a")),
			document.NewHeaderCell(document.NewText("b")),
		},
		[][]document.TableCell{{cell}},
		[]document.Alignment{document.AlignCenter, document.AlignNone},
	))

	out := ToHTML(doc)
	assert.Contains(t, out, `<th align="center">a</th>`)
	assert.Contains(t, out, "<th>b</th>")
	assert.Contains(t, out, `<td align="center" colspan="2" style="background-color: #eee">wide</td>`)
}

func TestToHTMLBalancedTags(t *testing.T) {
	doc := document.New()
	doc.Append(document.NewBlockQuote(
		document.NewParagraphText("outer"),
		document.NewBlockQuote(document.NewParagraphText("inner")),
	))
	doc.Append(document.NewGroup("callout", document.NewCodeBlock("go", "x := 1")))
	doc.Append(document.NewDefinitionList(document.DefinitionItem{
		Term:         []document.InlineNode{document.NewText("term")},
		Descriptions: [][]document.Node{{document.NewParagraphText("desc")}},
	}))

	out := ToHTML(doc)
	for _, tag := range []string{"blockquote", "div", "dl", "dt", "dd", "p", "pre", "code"} {
		open := strings.Count(out, "<"+tag+">") + strings.Count(out, "<"+tag+" ")
		closed := strings.Count(out, "</"+tag+">")
		assert.Equal(t, open, closed, "tag %s balanced", tag)
	}
}
