package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docmark/document"
)

func interchangeFixture() *document.Document {
	doc := document.New()
	doc.Append(document.NewHeadingText(2, "Title"))
	doc.Append(document.NewParagraph(
		document.NewText("plain "),
		document.NewFormattedText("styled", document.Formatting{Bold: true, Italic: true}),
		document.NewLink("https://go.dev", "Go", document.NewText("site")),
		document.NewImage("cat.png", "a cat", ""),
		document.NewCodeSpan("x := 1"),
		document.NewAutoLink("mail@example.com", true),
		document.NewFootnoteRef("src"),
		document.NewInlineFootnote(document.NewText("aside")),
		document.NewMention("riley", "user"),
		document.NewInlineMath("x^2"),
		document.NewEmoji("tada"),
		document.NewHardBreak(),
		document.NewSoftBreak(),
	))
	doc.Append(document.NewList(document.ListTask,
		document.NewTaskItem(true, document.NewParagraphText("done")),
		document.NewTaskItem(false, document.NewParagraphText("todo")),
	))
	doc.Append(document.NewCodeBlock("go", "fmt.Println(1)"))
	doc.Append(document.NewBlockQuote(document.NewParagraphText("quoted")))
	doc.Append(document.NewThematicBreak())

	cell := document.NewTableCellText("wide")
	cell.ColSpan = 2
	cell.BackgroundColor = "#eee"
	doc.Append(document.NewTable(
		[]document.TableCell{
			document.NewHeaderCell(document.NewText("a")),
			document.NewHeaderCell(document.NewText("b")),
		},
		[][]document.TableCell{{cell}},
		[]document.Alignment{document.AlignCenter, document.AlignNone},
	))

	doc.Append(document.NewGroup("callout", document.NewParagraphText("inside")))
	doc.Append(document.NewFootnoteReference("src"))
	doc.Append(document.NewFootnoteDefinition("src", document.NewParagraphText("detail")))
	doc.Append(document.NewDefinitionList(document.DefinitionItem{
		Term:         []document.InlineNode{document.NewText("Gopher")},
		Descriptions: [][]document.Node{{document.NewParagraphText("rodent")}},
	}))
	doc.Append(document.NewMathBlock("\\int_0^1 x\\,dx"))

	doc.Metadata = &document.Metadata{
		Title:  "Fixture",
		Author: "Pat",
		Date:   "2026-08-30",
		Custom: map[string]string{"tag": "draft"},
	}
	doc.Selection = &document.Selection{
		Anchor: document.NewPosition(document.Path{1}, 0),
		Focus:  document.NewPosition(document.Path{1}, 5),
	}
	return doc
}

func TestJSONRoundTrip(t *testing.T) {
	doc := interchangeFixture()

	data, err := ToJSON(doc)
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, doc.Nodes, back.Nodes)
	assert.Equal(t, doc.Metadata, back.Metadata)
	assert.Equal(t, doc.Selection, back.Selection)
}

func TestJSONDeterministic(t *testing.T) {
	doc := interchangeFixture()

	first, err := ToJSON(doc)
	require.NoError(t, err)
	second, err := ToJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	back, err := FromJSON(first)
	require.NoError(t, err)
	again, err := ToJSON(back)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestJSONDiscriminators(t *testing.T) {
	doc := document.New()
	doc.Append(document.NewCodeBlock("go", "x"))

	data, err := ToJSON(doc)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `"type":"code_block"`)
	assert.Contains(t, s, `"start_line":1`)
	assert.Contains(t, s, `"copy_button":true`)
}

func TestFromJSONErrors(t *testing.T) {
	var perr *ParseError

	_, err := FromJSON([]byte("{not json"))
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "json", perr.Format)

	_, err = FromJSON([]byte(`{"nodes":[{"type":"hologram"}]}`))
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "hologram")

	_, err = FromJSON([]byte(`{"nodes":[{"type":"paragraph","content":[{"type":"warp"}]}]}`))
	require.ErrorAs(t, err, &perr)
}

func TestFromJSONEmptyDocument(t *testing.T) {
	doc, err := FromJSON([]byte(`{"nodes":[]}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Nodes)
	assert.Nil(t, doc.Metadata)
	assert.Nil(t, doc.Selection)
}
