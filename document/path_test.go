package document

import (
	"errors"
	"testing"
)

func sampleDoc() *Document {
	d := New()
	d.Append(NewHeadingText(1, "Title"))
	d.Append(NewParagraphText("Hello world"))
	d.Append(NewBlockQuote(
		NewParagraphText("quoted"),
		NewCodeBlock("go", "package main"),
	))
	d.Append(NewList(ListUnordered,
		NewListItem(NewParagraphText("first")),
		NewListItem(NewParagraphText("second"), NewParagraphText("more")),
	))
	return d
}

func TestNodeAt(t *testing.T) {
	d := sampleDoc()

	tests := []struct {
		name string
		path Path
		want NodeKind
	}{
		{"top level heading", Path{0}, KindHeading},
		{"top level paragraph", Path{1}, KindParagraph},
		{"inside blockquote", Path{2, 0}, KindParagraph},
		{"code in blockquote", Path{2, 1}, KindCodeBlock},
		{"list item block", Path{3, 0, 0}, KindParagraph},
		{"second block of second item", Path{3, 1, 1}, KindParagraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := d.NodeAt(tt.path)
			if err != nil {
				t.Fatalf("NodeAt(%v) error: %v", tt.path, err)
			}
			if n.Kind != tt.want {
				t.Errorf("NodeAt(%v) kind = %s, want %s", tt.path, n.Kind, tt.want)
			}
		})
	}
}

func TestNodeAtErrors(t *testing.T) {
	d := sampleDoc()

	tests := []struct {
		name      string
		path      Path
		wantDepth int
		wantIndex int
		wantMax   int
	}{
		{"root out of range", Path{9}, 0, 9, 3},
		{"negative index", Path{-1}, 0, -1, 3},
		{"quote child out of range", Path{2, 5}, 1, 5, 1},
		{"list item out of range", Path{3, 7, 0}, 1, 7, 1},
		{"item child out of range", Path{3, 0, 4}, 2, 4, 0},
		{"descend into leaf", Path{1, 0}, 1, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.NodeAt(tt.path)
			if err == nil {
				t.Fatalf("NodeAt(%v) succeeded, want error", tt.path)
			}
			var pe *PathError
			if !errors.As(err, &pe) {
				t.Fatalf("NodeAt(%v) error = %v, want PathError", tt.path, err)
			}
			if !errors.Is(err, ErrIndexOutOfBounds) {
				t.Errorf("error does not wrap ErrIndexOutOfBounds")
			}
			if pe.Depth != tt.wantDepth || pe.Index != tt.wantIndex || pe.Max != tt.wantMax {
				t.Errorf("PathError = {depth %d, index %d, max %d}, want {%d, %d, %d}",
					pe.Depth, pe.Index, pe.Max, tt.wantDepth, tt.wantIndex, tt.wantMax)
			}
		})
	}

	t.Run("empty path", func(t *testing.T) {
		if _, err := d.NodeAt(nil); !errors.Is(err, ErrInvalidNode) {
			t.Errorf("NodeAt(nil) error = %v, want ErrInvalidNode", err)
		}
	})
	t.Run("path ends on list item", func(t *testing.T) {
		if _, err := d.NodeAt(Path{3, 0}); !errors.Is(err, ErrInvalidNode) {
			t.Errorf("NodeAt([3 0]) error = %v, want ErrInvalidNode", err)
		}
	})
}

func TestNodeAtReturnsLivePointer(t *testing.T) {
	d := sampleDoc()
	n, err := d.NodeAt(Path{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	n.Content = []InlineNode{NewText("edited")}
	again, err := d.NodeAt(Path{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if got := InlinesText(again.Content); got != "edited" {
		t.Errorf("edit through resolved pointer not visible, got %q", got)
	}
}

func TestSiblings(t *testing.T) {
	d := sampleDoc()

	t.Run("top level", func(t *testing.T) {
		slice, idx, err := d.Siblings(Path{1})
		if err != nil {
			t.Fatal(err)
		}
		if slice != &d.Nodes || idx != 1 {
			t.Errorf("Siblings([1]) = (%p, %d), want (&d.Nodes, 1)", slice, idx)
		}
	})
	t.Run("inside list item", func(t *testing.T) {
		slice, idx, err := d.Siblings(Path{3, 1, 1})
		if err != nil {
			t.Fatal(err)
		}
		if idx != 1 || len(*slice) != 2 {
			t.Errorf("Siblings([3 1 1]) = (len %d, %d), want (2, 1)", len(*slice), idx)
		}
	})
	t.Run("index beyond length allowed", func(t *testing.T) {
		_, idx, err := d.Siblings(Path{99})
		if err != nil || idx != 99 {
			t.Errorf("Siblings([99]) = (%d, %v), want unchecked final index", idx, err)
		}
	})
	t.Run("list as direct parent", func(t *testing.T) {
		if _, _, err := d.Siblings(Path{3, 0}); !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("Siblings([3 0]) error = %v, want ErrUnsupportedOperation", err)
		}
	})
}

func TestPathCompare(t *testing.T) {
	tests := []struct {
		a, b Path
		want int
	}{
		{Path{0}, Path{1}, -1},
		{Path{1}, Path{0}, 1},
		{Path{1, 2}, Path{1, 2}, 0},
		{Path{1}, Path{1, 0}, -1},
		{Path{2, 0}, Path{2}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
