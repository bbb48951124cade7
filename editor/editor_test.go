package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/docmark/document"
)

func TestExecuteUndoRedo(t *testing.T) {
	e := New()
	if err := e.InsertHeading(0, 1, "Title"); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertParagraph(1, "Hello world"); err != nil {
		t.Fatal(err)
	}
	doc := e.Document()
	if doc.Len() != 2 {
		t.Fatalf("nodes = %d, want 2", doc.Len())
	}

	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 1 || doc.Nodes[0].Kind != document.KindHeading {
		t.Fatalf("after undo: %d nodes, first %s", doc.Len(), doc.Nodes[0].Kind)
	}
	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 2 || doc.Nodes[1].PlainText() != "Hello world" {
		t.Fatalf("after redo: %d nodes", doc.Len())
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	e := New()
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() = %v, want ErrNothingToUndo", err)
	}
	if err := e.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() = %v, want ErrNothingToRedo", err)
	}
}

func TestUndoRestoresExactState(t *testing.T) {
	e := New()
	if err := e.InsertParagraph(0, "Hello world"); err != nil {
		t.Fatal(err)
	}
	before := e.Document().Clone()

	ops := []struct {
		name string
		run  func() error
	}{
		{"insert text", func() error { return e.InsertText(document.Path{0}, 5, "!") }},
		{"delete text", func() error { _, err := e.DeleteText(document.Path{0}, 0, 6); return err }},
		{"format text", func() error { return e.FormatText(document.Path{0}, 0, 5, document.Formatting{Bold: true}) }},
		{"split node", func() error { return e.SplitNode(document.Path{0}, 5) }},
		{"duplicate", func() error { return e.DuplicateNode(0) }},
		{"convert", func() error { return e.ConvertNodeType(0, ToHeading(2)) }},
		{"delete node", func() error { return e.DeleteNode(0) }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			if err := op.run(); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if err := e.Undo(); err != nil {
				t.Fatalf("undo: %v", err)
			}
			if !reflect.DeepEqual(e.Document().Nodes, before.Nodes) {
				t.Errorf("undo did not restore prior tree:\n got %#v\nwant %#v",
					e.Document().Nodes, before.Nodes)
			}
		})
	}
}

func TestRedoReproducesTree(t *testing.T) {
	e := New()
	if err := e.InsertParagraph(0, "Hello world"); err != nil {
		t.Fatal(err)
	}
	if err := e.SplitNode(document.Path{0}, 5); err != nil {
		t.Fatal(err)
	}
	after := e.Document().Clone()
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := e.Redo(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(e.Document().Nodes, after.Nodes) {
		t.Error("redo did not reproduce the post-execute tree")
	}
}

func TestNewCommandClearsRedo(t *testing.T) {
	e := New()
	if err := e.InsertParagraph(0, "one"); err != nil {
		t.Fatal(err)
	}
	if err := e.InsertParagraph(1, "two"); err != nil {
		t.Fatal(err)
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if !e.CanRedo() {
		t.Fatal("expected redo available after undo")
	}
	if err := e.InsertParagraph(1, "three"); err != nil {
		t.Fatal(err)
	}
	if e.CanRedo() {
		t.Error("redo stack not cleared by new command")
	}
}

func TestHistoryBound(t *testing.T) {
	e := New()
	e.SetMaxHistory(3)
	for i := 0; i < 5; i++ {
		if err := e.InsertParagraph(i, "p"); err != nil {
			t.Fatal(err)
		}
	}
	if len(e.undoStack) != 3 {
		t.Fatalf("undo stack = %d, want 3", len(e.undoStack))
	}
	for i := 0; i < 3; i++ {
		if err := e.Undo(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	if err := e.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("fourth undo = %v, want ErrNothingToUndo", err)
	}
	// The two oldest inserts are beyond the bound and stay applied.
	if e.Document().Len() != 2 {
		t.Errorf("nodes after exhausting undo = %d, want 2", e.Document().Len())
	}
}

func TestFailedCommandLeavesStateAlone(t *testing.T) {
	e := New()
	if err := e.InsertParagraph(0, "only"); err != nil {
		t.Fatal(err)
	}
	before := e.Document().Clone()
	if err := e.DeleteNode(7); !errors.Is(err, document.ErrIndexOutOfBounds) {
		t.Fatalf("DeleteNode(7) = %v, want ErrIndexOutOfBounds", err)
	}
	if !reflect.DeepEqual(e.Document().Nodes, before.Nodes) {
		t.Error("failed command mutated the document")
	}
	if len(e.undoStack) != 1 {
		t.Errorf("failed command pushed to history, stack = %d", len(e.undoStack))
	}
}

func TestMoveNode(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"backward", 2, 0, []string{"c", "a", "b"}},
		{"forward", 0, 2, []string{"b", "a", "c"}},
		{"to end", 0, 3, []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			for i, s := range []string{"a", "b", "c"} {
				if err := e.InsertParagraph(i, s); err != nil {
					t.Fatal(err)
				}
			}
			before := e.Document().Clone()
			if err := e.MoveNode(tt.from, tt.to); err != nil {
				t.Fatal(err)
			}
			got := make([]string, 0, 3)
			for i := range e.Document().Nodes {
				got = append(got, e.Document().Nodes[i].PlainText())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
			if err := e.Undo(); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(e.Document().Nodes, before.Nodes) {
				t.Error("undo did not restore order")
			}
		})
	}
}

func TestMergeNodes(t *testing.T) {
	t.Run("paragraphs", func(t *testing.T) {
		e := New()
		if err := e.InsertParagraph(0, "Hello"); err != nil {
			t.Fatal(err)
		}
		if err := e.InsertParagraph(1, " world"); err != nil {
			t.Fatal(err)
		}
		if err := e.MergeNodes(0, 1); err != nil {
			t.Fatal(err)
		}
		doc := e.Document()
		if doc.Len() != 1 || doc.Nodes[0].PlainText() != "Hello world" {
			t.Fatalf("merged = %d nodes, %q", doc.Len(), doc.Nodes[0].PlainText())
		}
		if err := e.Undo(); err != nil {
			t.Fatal(err)
		}
		if doc.Len() != 2 || doc.Nodes[1].PlainText() != " world" {
			t.Errorf("undo = %d nodes", doc.Len())
		}
	})
	t.Run("kind mismatch", func(t *testing.T) {
		e := New()
		if err := e.InsertParagraph(0, "p"); err != nil {
			t.Fatal(err)
		}
		if err := e.InsertHeading(1, 1, "h"); err != nil {
			t.Fatal(err)
		}
		if err := e.MergeNodes(0, 1); !errors.Is(err, document.ErrUnsupportedOperation) {
			t.Errorf("merge = %v, want ErrUnsupportedOperation", err)
		}
	})
	t.Run("non-consecutive", func(t *testing.T) {
		e := New()
		if err := e.MergeNodes(0, 2); !errors.Is(err, document.ErrInvalidRange) {
			t.Errorf("merge = %v, want ErrInvalidRange", err)
		}
	})
}

func TestConvertNodeType(t *testing.T) {
	tests := []struct {
		name   string
		target ConversionType
		verify func(t *testing.T, n *document.Node)
	}{
		{"to heading", ToHeading(2), func(t *testing.T, n *document.Node) {
			if n.Kind != document.KindHeading || n.Level != 2 || n.PlainText() != "some text" {
				t.Errorf("got %s level %d %q", n.Kind, n.Level, n.PlainText())
			}
		}},
		{"to code block", ToCodeBlock("go"), func(t *testing.T, n *document.Node) {
			if n.Kind != document.KindCodeBlock || n.Language != "go" || n.Code != "some text" {
				t.Errorf("got %s %q %q", n.Kind, n.Language, n.Code)
			}
		}},
		{"to list", ToList(document.ListUnordered), func(t *testing.T, n *document.Node) {
			if n.Kind != document.KindList || len(n.Items) != 1 || n.PlainText() != "some text" {
				t.Errorf("got %s with %d items", n.Kind, len(n.Items))
			}
		}},
		{"to blockquote", ToBlockQuote(), func(t *testing.T, n *document.Node) {
			if n.Kind != document.KindBlockQuote || n.PlainText() != "some text" {
				t.Errorf("got %s %q", n.Kind, n.PlainText())
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			if err := e.InsertParagraph(0, "some text"); err != nil {
				t.Fatal(err)
			}
			if err := e.ConvertNodeType(0, tt.target); err != nil {
				t.Fatal(err)
			}
			tt.verify(t, &e.Document().Nodes[0])
			if err := e.Undo(); err != nil {
				t.Fatal(err)
			}
			if e.Document().Nodes[0].Kind != document.KindParagraph {
				t.Error("undo did not restore paragraph")
			}
		})
	}

	t.Run("heading level clamped", func(t *testing.T) {
		if ToHeading(9).Level != 6 || ToHeading(0).Level != 1 {
			t.Error("heading level not clamped to 1..6")
		}
	})
}

func TestSplitScenario(t *testing.T) {
	e := New()
	if err := e.InsertParagraph(0, "Hello world"); err != nil {
		t.Fatal(err)
	}
	if err := e.SplitNode(document.Path{0}, 5); err != nil {
		t.Fatal(err)
	}
	doc := e.Document()
	if doc.Len() != 2 {
		t.Fatalf("nodes = %d, want 2", doc.Len())
	}
	if doc.Nodes[0].PlainText() != "Hello" || doc.Nodes[1].PlainText() != " world" {
		t.Fatalf("split = %q / %q", doc.Nodes[0].PlainText(), doc.Nodes[1].PlainText())
	}
	if err := e.Undo(); err != nil {
		t.Fatal(err)
	}
	if doc.Len() != 1 || doc.Nodes[0].PlainText() != "Hello world" {
		t.Fatalf("undo = %d nodes, %q", doc.Len(), doc.Nodes[0].PlainText())
	}
}
