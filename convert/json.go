package convert

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/dshills/docmark/document"
)

// ToJSON serializes the document, selection and metadata included, as the
// JSON interchange form. Keys are emitted in sorted order so equal
// documents serialize identically.
func ToJSON(doc *document.Document) ([]byte, error) {
	env := map[string]any{"nodes": encodeNodes(doc.Nodes)}
	if doc.Metadata != nil {
		env["metadata"] = doc.Metadata
	}
	if doc.Selection != nil {
		env["selection"] = map[string]any{
			"anchor": encodePosition(doc.Selection.Anchor),
			"focus":  encodePosition(doc.Selection.Focus),
		}
	}
	return json.Marshal(env)
}

func encodePosition(p document.Position) map[string]any {
	return map[string]any{"path": []int(p.Path), "offset": p.Offset}
}

func encodeNodes(nodes []document.Node) []any {
	out := make([]any, 0, len(nodes))
	for i := range nodes {
		out = append(out, encodeNode(&nodes[i]))
	}
	return out
}

func encodeNode(n *document.Node) map[string]any {
	m := map[string]any{"type": string(n.Kind)}
	if n.Identifier != "" {
		m["id"] = n.Identifier
	}
	switch n.Kind {
	case document.KindHeading:
		m["level"] = n.Level
		putInlines(m, "content", n.Content)
	case document.KindParagraph:
		putInlines(m, "content", n.Content)
	case document.KindList:
		m["list_kind"] = string(n.ListKind)
		items := make([]any, 0, len(n.Items))
		for _, it := range n.Items {
			im := map[string]any{"children": encodeNodes(it.Children)}
			if it.Checked != nil {
				im["checked"] = *it.Checked
			}
			items = append(items, im)
		}
		m["items"] = items
	case document.KindCodeBlock:
		if n.Language != "" {
			m["language"] = n.Language
		}
		m["code"] = n.Code
		m["properties"] = codeProps(n)
	case document.KindBlockQuote:
		m["children"] = encodeNodes(n.Children)
	case document.KindThematicBreak:
	case document.KindTable:
		if len(n.Header) > 0 {
			m["header"] = encodeCells(n.Header)
		}
		rows := make([]any, 0, len(n.Rows))
		for _, row := range n.Rows {
			rows = append(rows, encodeCells(row))
		}
		m["rows"] = rows
		if len(n.Alignments) > 0 {
			m["alignments"] = n.Alignments
		}
		m["properties"] = tableProps(n)
	case document.KindGroup:
		m["name"] = n.Name
		m["children"] = encodeNodes(n.Children)
	case document.KindFootnoteReference:
		m["label"] = n.Label
	case document.KindFootnoteDefinition:
		m["label"] = n.Label
		m["children"] = encodeNodes(n.Children)
	case document.KindDefinitionList:
		defs := make([]any, 0, len(n.Definitions))
		for _, d := range n.Definitions {
			descs := make([]any, 0, len(d.Descriptions))
			for _, desc := range d.Descriptions {
				descs = append(descs, encodeNodes(desc))
			}
			defs = append(defs, map[string]any{
				"term":         encodeInlines(d.Term),
				"descriptions": descs,
			})
		}
		m["definitions"] = defs
	case document.KindMathBlock:
		m["code"] = n.Code
	}
	return m
}

func codeProps(n *document.Node) document.CodeBlockProperties {
	if n.CodeProps != nil {
		return *n.CodeProps
	}
	return document.DefaultCodeBlockProperties()
}

func tableProps(n *document.Node) document.TableProperties {
	if n.TableProps != nil {
		return *n.TableProps
	}
	return document.DefaultTableProperties()
}

func putInlines(m map[string]any, key string, nodes []document.InlineNode) {
	if len(nodes) > 0 {
		m[key] = encodeInlines(nodes)
	}
}

func encodeCells(cells []document.TableCell) []any {
	out := make([]any, 0, len(cells))
	for _, c := range cells {
		cm := map[string]any{}
		putInlines(cm, "content", c.Content)
		if c.ColSpan > 1 {
			cm["col_span"] = c.ColSpan
		}
		if c.RowSpan > 1 {
			cm["row_span"] = c.RowSpan
		}
		if c.BackgroundColor != "" {
			cm["background_color"] = c.BackgroundColor
		}
		if c.CSSClass != "" {
			cm["css_class"] = c.CSSClass
		}
		if c.Style != "" {
			cm["style"] = c.Style
		}
		if c.IsHeader {
			cm["is_header"] = true
		}
		out = append(out, cm)
	}
	return out
}

func encodeInlines(nodes []document.InlineNode) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, encodeInline(n))
	}
	return out
}

func encodeInline(n document.InlineNode) map[string]any {
	m := map[string]any{"type": string(n.Kind)}
	switch n.Kind {
	case document.InlineText:
		m["text"] = n.Text
		if !n.Format.IsPlain() {
			m["format"] = n.Format
		}
	case document.InlineLink:
		m["url"] = n.URL
		if n.Title != "" {
			m["title"] = n.Title
		}
		putInlines(m, "children", n.Children)
	case document.InlineImage:
		m["url"] = n.URL
		m["alt"] = n.Alt
		if n.Title != "" {
			m["title"] = n.Title
		}
	case document.InlineCodeSpan, document.InlineMath:
		m["text"] = n.Text
	case document.InlineAutoLink:
		m["url"] = n.URL
		if n.IsEmail {
			m["is_email"] = true
		}
	case document.InlineFootnoteRef:
		m["label"] = n.Text
	case document.InlineFootnoteInline:
		putInlines(m, "children", n.Children)
	case document.InlineMention:
		m["name"] = n.Text
		if n.MentionKind != "" {
			m["mention_kind"] = n.MentionKind
		}
	case document.InlineEmoji:
		m["shortcode"] = n.Text
	case document.InlineHardBreak, document.InlineSoftBreak:
	}
	return m
}

// FromJSON reconstructs a document from its interchange form.
func FromJSON(data []byte) (*document.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Format: "json", Msg: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	doc := document.New()

	var err error
	if doc.Nodes, err = decodeNodes(root.Get("nodes")); err != nil {
		return nil, err
	}
	if meta := root.Get("metadata"); meta.Exists() {
		m := &document.Metadata{}
		if uerr := json.Unmarshal([]byte(meta.Raw), m); uerr != nil {
			return nil, &ParseError{Format: "json", Msg: uerr.Error()}
		}
		doc.Metadata = m
	}
	if sel := root.Get("selection"); sel.Exists() {
		doc.Selection = &document.Selection{
			Anchor: decodePosition(sel.Get("anchor")),
			Focus:  decodePosition(sel.Get("focus")),
		}
	}
	return doc, nil
}

func decodePosition(r gjson.Result) document.Position {
	var path document.Path
	for _, p := range r.Get("path").Array() {
		path = append(path, int(p.Int()))
	}
	return document.Position{Path: path, Offset: int(r.Get("offset").Int())}
}

func decodeNodes(r gjson.Result) ([]document.Node, error) {
	if !r.Exists() {
		return nil, nil
	}
	var out []document.Node
	for _, item := range r.Array() {
		n, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeNode(r gjson.Result) (document.Node, error) {
	n := document.Node{
		Kind:       document.NodeKind(r.Get("type").String()),
		Identifier: r.Get("id").String(),
	}
	var err error
	switch n.Kind {
	case document.KindHeading:
		n.Level = int(r.Get("level").Int())
		n.Content, err = decodeInlines(r.Get("content"))
	case document.KindParagraph:
		n.Content, err = decodeInlines(r.Get("content"))
	case document.KindList:
		n.ListKind = document.ListKind(r.Get("list_kind").String())
		for _, item := range r.Get("items").Array() {
			var it document.ListItem
			if it.Children, err = decodeNodes(item.Get("children")); err != nil {
				return n, err
			}
			if c := item.Get("checked"); c.Exists() {
				v := c.Bool()
				it.Checked = &v
			}
			n.Items = append(n.Items, it)
		}
	case document.KindCodeBlock:
		n.Language = r.Get("language").String()
		n.Code = r.Get("code").String()
		props := document.DefaultCodeBlockProperties()
		if p := r.Get("properties"); p.Exists() {
			if uerr := json.Unmarshal([]byte(p.Raw), &props); uerr != nil {
				return n, &ParseError{Format: "json", Msg: uerr.Error()}
			}
		}
		n.CodeProps = &props
	case document.KindBlockQuote:
		n.Children, err = decodeNodes(r.Get("children"))
	case document.KindThematicBreak:
	case document.KindTable:
		if n.Header, err = decodeCells(r.Get("header")); err != nil {
			return n, err
		}
		for _, row := range r.Get("rows").Array() {
			cells, cerr := decodeCells(row)
			if cerr != nil {
				return n, cerr
			}
			n.Rows = append(n.Rows, cells)
		}
		for _, a := range r.Get("alignments").Array() {
			n.Alignments = append(n.Alignments, document.Alignment(a.String()))
		}
		props := document.DefaultTableProperties()
		if p := r.Get("properties"); p.Exists() {
			if uerr := json.Unmarshal([]byte(p.Raw), &props); uerr != nil {
				return n, &ParseError{Format: "json", Msg: uerr.Error()}
			}
		}
		n.TableProps = &props
	case document.KindGroup:
		n.Name = r.Get("name").String()
		n.Children, err = decodeNodes(r.Get("children"))
	case document.KindFootnoteReference:
		n.Label = r.Get("label").String()
	case document.KindFootnoteDefinition:
		n.Label = r.Get("label").String()
		n.Children, err = decodeNodes(r.Get("children"))
	case document.KindDefinitionList:
		for _, def := range r.Get("definitions").Array() {
			var d document.DefinitionItem
			if d.Term, err = decodeInlines(def.Get("term")); err != nil {
				return n, err
			}
			for _, desc := range def.Get("descriptions").Array() {
				blocks, derr := decodeNodes(desc)
				if derr != nil {
					return n, derr
				}
				d.Descriptions = append(d.Descriptions, blocks)
			}
			n.Definitions = append(n.Definitions, d)
		}
	case document.KindMathBlock:
		n.Code = r.Get("code").String()
	default:
		return n, &ParseError{Format: "json", Msg: "unknown node type " + r.Get("type").String()}
	}
	return n, err
}

func decodeCells(r gjson.Result) ([]document.TableCell, error) {
	if !r.Exists() {
		return nil, nil
	}
	var out []document.TableCell
	for _, item := range r.Array() {
		c := document.TableCell{
			ColSpan:         1,
			RowSpan:         1,
			BackgroundColor: item.Get("background_color").String(),
			CSSClass:        item.Get("css_class").String(),
			Style:           item.Get("style").String(),
			IsHeader:        item.Get("is_header").Bool(),
		}
		if v := item.Get("col_span"); v.Exists() {
			c.ColSpan = int(v.Int())
		}
		if v := item.Get("row_span"); v.Exists() {
			c.RowSpan = int(v.Int())
		}
		var err error
		if c.Content, err = decodeInlines(item.Get("content")); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeInlines(r gjson.Result) ([]document.InlineNode, error) {
	if !r.Exists() {
		return nil, nil
	}
	var out []document.InlineNode
	for _, item := range r.Array() {
		n, err := decodeInline(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeInline(r gjson.Result) (document.InlineNode, error) {
	n := document.InlineNode{Kind: document.InlineKind(r.Get("type").String())}
	var err error
	switch n.Kind {
	case document.InlineText:
		n.Text = r.Get("text").String()
		if f := r.Get("format"); f.Exists() {
			if uerr := json.Unmarshal([]byte(f.Raw), &n.Format); uerr != nil {
				return n, &ParseError{Format: "json", Msg: uerr.Error()}
			}
		}
	case document.InlineLink:
		n.URL = r.Get("url").String()
		n.Title = r.Get("title").String()
		n.Children, err = decodeInlines(r.Get("children"))
	case document.InlineImage:
		n.URL = r.Get("url").String()
		n.Alt = r.Get("alt").String()
		n.Title = r.Get("title").String()
	case document.InlineCodeSpan, document.InlineMath:
		n.Text = r.Get("text").String()
	case document.InlineAutoLink:
		n.URL = r.Get("url").String()
		n.IsEmail = r.Get("is_email").Bool()
	case document.InlineFootnoteRef:
		n.Text = r.Get("label").String()
	case document.InlineFootnoteInline:
		n.Children, err = decodeInlines(r.Get("children"))
	case document.InlineMention:
		n.Text = r.Get("name").String()
		n.MentionKind = r.Get("mention_kind").String()
	case document.InlineEmoji:
		n.Text = r.Get("shortcode").String()
	case document.InlineHardBreak, document.InlineSoftBreak:
	default:
		return n, &ParseError{Format: "json", Msg: "unknown inline type " + r.Get("type").String()}
	}
	return n, err
}
