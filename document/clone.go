package document

// Clone returns a deep copy of the node. The copy shares no mutable state
// with the original, so commands snapshot nodes with it before editing.
func (n Node) Clone() Node {
	out := n
	out.Content = CloneInlines(n.Content)
	out.Children = CloneNodes(n.Children)
	if n.Items != nil {
		out.Items = make([]ListItem, len(n.Items))
		for i, it := range n.Items {
			out.Items[i] = it.Clone()
		}
	}
	if n.CodeProps != nil {
		p := *n.CodeProps
		if p.HighlightLines != nil {
			p.HighlightLines = append([]int(nil), p.HighlightLines...)
		}
		out.CodeProps = &p
	}
	if n.TableProps != nil {
		p := *n.TableProps
		out.TableProps = &p
	}
	if n.Header != nil {
		out.Header = cloneCells(n.Header)
	}
	if n.Rows != nil {
		out.Rows = make([][]TableCell, len(n.Rows))
		for i, row := range n.Rows {
			out.Rows[i] = cloneCells(row)
		}
	}
	if n.Alignments != nil {
		out.Alignments = append([]Alignment(nil), n.Alignments...)
	}
	if n.Definitions != nil {
		out.Definitions = make([]DefinitionItem, len(n.Definitions))
		for i, def := range n.Definitions {
			d := DefinitionItem{Term: CloneInlines(def.Term)}
			if def.Descriptions != nil {
				d.Descriptions = make([][]Node, len(def.Descriptions))
				for j, desc := range def.Descriptions {
					d.Descriptions[j] = CloneNodes(desc)
				}
			}
			out.Definitions[i] = d
		}
	}
	return out
}

// Clone returns a deep copy of the inline node.
func (n InlineNode) Clone() InlineNode {
	out := n
	out.Children = CloneInlines(n.Children)
	return out
}

// Clone returns a deep copy of the list item.
func (it ListItem) Clone() ListItem {
	out := ListItem{Children: CloneNodes(it.Children)}
	if it.Checked != nil {
		c := *it.Checked
		out.Checked = &c
	}
	return out
}

// CloneNodes deep-copies a node slice; nil stays nil.
func CloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}
	return out
}

// CloneInlines deep-copies an inline slice; nil stays nil.
func CloneInlines(nodes []InlineNode) []InlineNode {
	if nodes == nil {
		return nil
	}
	out := make([]InlineNode, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].Clone()
	}
	return out
}

func cloneCells(cells []TableCell) []TableCell {
	out := make([]TableCell, len(cells))
	for i, c := range cells {
		c.Content = CloneInlines(c.Content)
		out[i] = c
	}
	return out
}

// Clone returns a deep copy of the document, selection and metadata
// included.
func (d *Document) Clone() *Document {
	out := &Document{Nodes: CloneNodes(d.Nodes)}
	if d.Selection != nil {
		sel := *d.Selection
		sel.Anchor.Path = sel.Anchor.Path.Clone()
		sel.Focus.Path = sel.Focus.Path.Clone()
		out.Selection = &sel
	}
	if d.Metadata != nil {
		m := *d.Metadata
		if m.Custom != nil {
			m.Custom = make(map[string]string, len(d.Metadata.Custom))
			for k, v := range d.Metadata.Custom {
				m.Custom[k] = v
			}
		}
		out.Metadata = &m
	}
	return out
}
