package document

import (
	"errors"
	"testing"
)

func TestSelectionShape(t *testing.T) {
	t.Run("collapsed", func(t *testing.T) {
		s := Collapsed(NewPosition(Path{1}, 3))
		if !s.IsCollapsed() {
			t.Error("IsCollapsed() = false")
		}
		if s.IsBackward() {
			t.Error("IsBackward() = true for collapsed selection")
		}
	})
	t.Run("backward normalization is pure", func(t *testing.T) {
		s := NewSelection(NewPosition(Path{2}, 0), NewPosition(Path{0}, 1))
		if !s.IsBackward() {
			t.Fatal("IsBackward() = false")
		}
		start, end := s.Normalized()
		if !start.Path.Equal(Path{0}) || !end.Path.Equal(Path{2}) {
			t.Errorf("Normalized() = %v..%v", start.Path, end.Path)
		}
		if !s.Anchor.Path.Equal(Path{2}) || !s.Focus.Path.Equal(Path{0}) {
			t.Error("Normalized() mutated the stored anchor/focus")
		}
	})
	t.Run("offset orders within node", func(t *testing.T) {
		s := NewSelection(NewPosition(Path{0}, 7), NewPosition(Path{0}, 2))
		start, end := s.Normalized()
		if start.Offset != 2 || end.Offset != 7 {
			t.Errorf("Normalized() offsets = %d..%d, want 2..7", start.Offset, end.Offset)
		}
	})
}

func TestDocumentSelectionOps(t *testing.T) {
	t.Run("select all", func(t *testing.T) {
		d := sampleDoc()
		d.SelectAll()
		if d.Selection == nil {
			t.Fatal("no selection after SelectAll")
		}
		start, end := d.Selection.Normalized()
		if !start.Path.Equal(Path{0}) || !end.Path.Equal(Path{3}) {
			t.Errorf("selection = %v..%v", start.Path, end.Path)
		}
	})
	t.Run("select all on empty document", func(t *testing.T) {
		d := New()
		d.SelectAll()
		if d.Selection != nil {
			t.Error("selection set on empty document")
		}
	})
	t.Run("select node", func(t *testing.T) {
		d := sampleDoc()
		if err := d.SelectNode(1); err != nil {
			t.Fatal(err)
		}
		start, end := d.Selection.Normalized()
		if !start.Path.Equal(Path{1}) || end.Offset != len("Hello world") {
			t.Errorf("selection = %v+%d..%v+%d", start.Path, start.Offset, end.Path, end.Offset)
		}
	})
	t.Run("select node out of range", func(t *testing.T) {
		d := sampleDoc()
		if err := d.SelectNode(10); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("error = %v, want ErrIndexOutOfBounds", err)
		}
	})
	t.Run("select text range validates length", func(t *testing.T) {
		d := sampleDoc()
		if err := d.SelectTextRange(1, 0, 50); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("error = %v, want ErrIndexOutOfBounds", err)
		}
		if err := d.SelectTextRange(1, 6, 11); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("collapse", func(t *testing.T) {
		d := sampleDoc()
		if err := d.SelectNodeRange(0, 1); err != nil {
			t.Fatal(err)
		}
		d.CollapseToEnd()
		if !d.Selection.IsCollapsed() || !d.Selection.Anchor.Path.Equal(Path{1}) {
			t.Errorf("collapsed selection = %+v", d.Selection)
		}
		d.ClearSelection()
		if d.Selection != nil {
			t.Error("selection not cleared")
		}
	})
	t.Run("multi node query", func(t *testing.T) {
		d := sampleDoc()
		if err := d.SelectNodeRange(0, 2); err != nil {
			t.Fatal(err)
		}
		if !d.HasMultiNodeSelection() {
			t.Error("HasMultiNodeSelection() = false")
		}
		if err := d.SelectNode(1); err != nil {
			t.Fatal(err)
		}
		if d.HasMultiNodeSelection() {
			t.Error("HasMultiNodeSelection() = true for single node")
		}
	})
}

func TestSelectedText(t *testing.T) {
	t.Run("no selection", func(t *testing.T) {
		d := sampleDoc()
		if _, err := d.SelectedText(); !errors.Is(err, ErrNoSelection) {
			t.Errorf("error = %v, want ErrNoSelection", err)
		}
	})
	t.Run("within one node", func(t *testing.T) {
		d := sampleDoc()
		if err := d.SelectTextRange(1, 0, 5); err != nil {
			t.Fatal(err)
		}
		got, err := d.SelectedText()
		if err != nil {
			t.Fatal(err)
		}
		if got != "Hello" {
			t.Errorf("SelectedText() = %q, want \"Hello\"", got)
		}
	})
	t.Run("across nodes", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("first paragraph"))
		d.Append(NewParagraphText("middle"))
		d.Append(NewParagraphText("last paragraph"))
		sel := NewSelection(NewPosition(Path{0}, 6), NewPosition(Path{2}, 4))
		d.Selection = &sel
		got, err := d.SelectedText()
		if err != nil {
			t.Fatal(err)
		}
		want := "paragraph\nmiddle\nlast"
		if got != want {
			t.Errorf("SelectedText() = %q, want %q", got, want)
		}
	})
	t.Run("backward selection reads forward", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("one"))
		d.Append(NewParagraphText("two"))
		sel := NewSelection(NewPosition(Path{1}, 3), NewPosition(Path{0}, 0))
		d.Selection = &sel
		got, err := d.SelectedText()
		if err != nil {
			t.Fatal(err)
		}
		if got != "one\ntwo" {
			t.Errorf("SelectedText() = %q, want \"one\\ntwo\"", got)
		}
	})
}
