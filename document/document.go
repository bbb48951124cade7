package document

import "fmt"

// Metadata carries document-level front matter. Custom holds free-form
// key/value pairs beyond the well-known fields.
type Metadata struct {
	Title  string            `toml:"title,omitempty" json:"title,omitempty"`
	Author string            `toml:"author,omitempty" json:"author,omitempty"`
	Date   string            `toml:"date,omitempty" json:"date,omitempty"`
	Custom map[string]string `toml:"custom,omitempty" json:"custom,omitempty"`
}

// Document is an ordered sequence of block nodes plus an optional current
// selection and optional metadata. Mutate it through editor commands, not
// by direct field writes, so every change stays invertible.
type Document struct {
	Nodes     []Node
	Selection *Selection
	Metadata  *Metadata
}

// New returns an empty document.
func New() *Document { return &Document{} }

// Len returns the number of top-level nodes.
func (d *Document) Len() int { return len(d.Nodes) }

// Append adds a node after the existing top-level nodes.
func (d *Document) Append(n Node) {
	d.Nodes = append(d.Nodes, n)
}

// InsertNode inserts a node at a top-level index; index may equal Len for
// append.
func (d *Document) InsertNode(index int, n Node) error {
	if index < 0 || index > len(d.Nodes) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(d.Nodes), ErrIndexOutOfBounds)
	}
	d.Nodes = append(d.Nodes, Node{})
	copy(d.Nodes[index+1:], d.Nodes[index:])
	d.Nodes[index] = n
	return nil
}

// RemoveNode removes and returns the node at a top-level index.
func (d *Document) RemoveNode(index int) (Node, error) {
	if index < 0 || index >= len(d.Nodes) {
		return Node{}, fmt.Errorf("remove at %d of %d: %w", index, len(d.Nodes), ErrIndexOutOfBounds)
	}
	n := d.Nodes[index]
	d.Nodes = append(d.Nodes[:index], d.Nodes[index+1:]...)
	return n, nil
}
