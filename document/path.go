package document

import "fmt"

// Path addresses a node by child indices from the document root. Paths are
// positional, not stable identities: any sibling insertion or removal above
// the addressed node invalidates the path, so resolve immediately before
// use and never cache across mutations.
//
// List nodes consume two consecutive indices, the item index followed by an
// index into the item's block children; a path may not terminate on the
// item itself.
type Path []int

// Clone returns an independent copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and q address the same position.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Compare orders paths in document order: -1 when p precedes q, 1 when it
// follows, 0 when equal. A prefix sorts before its extensions.
func (p Path) Compare(q Path) int {
	for i := 0; i < len(p) && i < len(q); i++ {
		switch {
		case p[i] < q[i]:
			return -1
		case p[i] > q[i]:
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	}
	return 0
}

// NodeAt resolves a path to the addressed node. The returned pointer aims
// into the live tree, so it serves both reads and in-place edits; it is
// valid only until the next structural mutation. An out-of-range index
// yields a PathError naming the failing depth, the attempted index and the
// maximum valid index.
func (d *Document) NodeAt(path Path) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path: %w", ErrInvalidNode)
	}
	nodes := d.Nodes
	depth := 0
	for {
		i := path[depth]
		if i < 0 || i >= len(nodes) {
			return nil, &PathError{Depth: depth, Index: i, Max: len(nodes) - 1}
		}
		n := &nodes[i]
		depth++
		if depth == len(path) {
			return n, nil
		}
		switch n.Kind {
		case KindBlockQuote, KindGroup, KindFootnoteDefinition:
			nodes = n.Children
		case KindList:
			j := path[depth]
			if j < 0 || j >= len(n.Items) {
				return nil, &PathError{Depth: depth, Index: j, Max: len(n.Items) - 1}
			}
			depth++
			if depth == len(path) {
				return nil, fmt.Errorf("path terminates on a list item: %w", ErrInvalidNode)
			}
			nodes = n.Items[j].Children
		default:
			return nil, &PathError{Depth: depth, Index: path[depth], Max: -1}
		}
	}
}

// Siblings resolves a path to the slice that holds (or would hold) the
// addressed node, returning the slice pointer and the final index. The
// index itself is not bounds-checked, so insert call sites may pass an
// index equal to the slice length; every parent step is checked strictly.
func (d *Document) Siblings(path Path) (*[]Node, int, error) {
	if len(path) == 0 {
		return nil, 0, fmt.Errorf("empty path: %w", ErrInvalidNode)
	}
	last := path[len(path)-1]
	rest := path[:len(path)-1]
	slice := &d.Nodes
	depth := 0
	for depth < len(rest) {
		i := rest[depth]
		if i < 0 || i >= len(*slice) {
			return nil, 0, &PathError{Depth: depth, Index: i, Max: len(*slice) - 1}
		}
		n := &(*slice)[i]
		depth++
		switch n.Kind {
		case KindBlockQuote, KindGroup, KindFootnoteDefinition:
			slice = &n.Children
		case KindList:
			if depth == len(rest) {
				return nil, 0, fmt.Errorf("list items hold no direct node index: %w", ErrUnsupportedOperation)
			}
			j := rest[depth]
			if j < 0 || j >= len(n.Items) {
				return nil, 0, &PathError{Depth: depth, Index: j, Max: len(n.Items) - 1}
			}
			slice = &n.Items[j].Children
			depth++
		default:
			return nil, 0, &PathError{Depth: depth, Index: rest[depth], Max: -1}
		}
	}
	return slice, last, nil
}
