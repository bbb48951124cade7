package document

import (
	"errors"
	"testing"
)

func TestInsertText(t *testing.T) {
	tests := []struct {
		name   string
		node   Node
		offset int
		insert string
		want   string
	}{
		{"middle of paragraph", NewParagraphText("Hello world"), 5, ",", "Hello, world"},
		{"start", NewParagraphText("world"), 0, "Hello ", "Hello world"},
		{"end", NewParagraphText("Hello"), 5, " world", "Hello world"},
		{"empty paragraph", NewParagraph(), 0, "Hello", "Hello"},
		{"heading", NewHeadingText(2, "Tile"), 2, "t", "Title"},
		{"code block", NewCodeBlock("go", "main()"), 0, "func ", "func main()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.Append(tt.node)
			if err := d.InsertText(Path{0}, tt.offset, tt.insert); err != nil {
				t.Fatalf("InsertText: %v", err)
			}
			if got := d.Nodes[0].PlainText(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("offset past end", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("hi"))
		if err := d.InsertText(Path{0}, 10, "x"); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("error = %v, want ErrIndexOutOfBounds", err)
		}
	})
	t.Run("unsupported node", func(t *testing.T) {
		d := New()
		d.Append(NewThematicBreak())
		if err := d.InsertText(Path{0}, 0, "x"); !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("error = %v, want ErrUnsupportedOperation", err)
		}
	})
	t.Run("preserves run formatting", func(t *testing.T) {
		d := New()
		d.Append(NewParagraph(NewFormattedText("bold", Formatting{Bold: true})))
		if err := d.InsertText(Path{0}, 2, "xx"); err != nil {
			t.Fatal(err)
		}
		text, f, _ := d.Nodes[0].Content[0].AsText()
		if text != "boxxld" || !f.Bold {
			t.Errorf("got %q bold=%v, want \"boxxld\" bold=true", text, f.Bold)
		}
	})
}

func TestDeleteText(t *testing.T) {
	t.Run("single run", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("Hello world"))
		removed, err := d.DeleteText(Path{0}, 5, 11)
		if err != nil {
			t.Fatal(err)
		}
		if removed != " world" {
			t.Errorf("removed = %q, want \" world\"", removed)
		}
		if got := d.Nodes[0].PlainText(); got != "Hello" {
			t.Errorf("remaining = %q, want \"Hello\"", got)
		}
	})
	t.Run("across runs", func(t *testing.T) {
		d := New()
		d.Append(NewParagraph(
			NewText("one "),
			NewFormattedText("two", Formatting{Italic: true}),
			NewText(" three"),
		))
		removed, err := d.DeleteText(Path{0}, 2, 9)
		if err != nil {
			t.Fatal(err)
		}
		if removed != "e two t" {
			t.Errorf("removed = %q", removed)
		}
		if got := d.Nodes[0].PlainText(); got != "onhree" {
			t.Errorf("remaining = %q, want \"onhree\"", got)
		}
	})
	t.Run("drops emptied runs", func(t *testing.T) {
		d := New()
		d.Append(NewParagraph(NewText("ab"), NewText("cd")))
		if _, err := d.DeleteText(Path{0}, 0, 2); err != nil {
			t.Fatal(err)
		}
		if len(d.Nodes[0].Content) != 1 {
			t.Errorf("content runs = %d, want 1", len(d.Nodes[0].Content))
		}
	})
	t.Run("invalid range", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("hi"))
		if _, err := d.DeleteText(Path{0}, 2, 1); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("error = %v, want ErrInvalidRange", err)
		}
	})
	t.Run("end past length", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("hi"))
		if _, err := d.DeleteText(Path{0}, 0, 5); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("error = %v, want ErrIndexOutOfBounds", err)
		}
	})
}

func TestFormatText(t *testing.T) {
	d := New()
	d.Append(NewParagraphText("Hello world"))
	if err := d.FormatText(Path{0}, 0, 5, Formatting{Bold: true}); err != nil {
		t.Fatal(err)
	}
	content := d.Nodes[0].Content
	if len(content) != 2 {
		t.Fatalf("runs = %d, want 2", len(content))
	}
	if text, f, _ := content[0].AsText(); text != "Hello" || !f.Bold {
		t.Errorf("first run = %q bold=%v", text, f.Bold)
	}
	if text, f, _ := content[1].AsText(); text != " world" || !f.IsPlain() {
		t.Errorf("second run = %q plain=%v", text, f.IsPlain())
	}
}

func TestSplitNode(t *testing.T) {
	t.Run("paragraph", func(t *testing.T) {
		d := New()
		d.Append(NewParagraphText("Hello world"))
		if err := d.SplitNode(Path{0}, 5); err != nil {
			t.Fatal(err)
		}
		if len(d.Nodes) != 2 {
			t.Fatalf("nodes = %d, want 2", len(d.Nodes))
		}
		if got := d.Nodes[0].PlainText(); got != "Hello" {
			t.Errorf("first = %q, want \"Hello\"", got)
		}
		if got := d.Nodes[1].PlainText(); got != " world" {
			t.Errorf("second = %q, want \" world\"", got)
		}
		if d.Nodes[1].Kind != KindParagraph {
			t.Errorf("second kind = %s, want paragraph", d.Nodes[1].Kind)
		}
	})
	t.Run("heading keeps level", func(t *testing.T) {
		d := New()
		d.Append(NewHeadingText(3, "ab"))
		if err := d.SplitNode(Path{0}, 1); err != nil {
			t.Fatal(err)
		}
		if d.Nodes[1].Kind != KindHeading || d.Nodes[1].Level != 3 {
			t.Errorf("second = %s level %d, want heading level 3", d.Nodes[1].Kind, d.Nodes[1].Level)
		}
	})
	t.Run("code block keeps language", func(t *testing.T) {
		d := New()
		d.Append(NewCodeBlock("go", "ab\ncd"))
		if err := d.SplitNode(Path{0}, 3); err != nil {
			t.Fatal(err)
		}
		if d.Nodes[1].Language != "go" || d.Nodes[1].Code != "cd" {
			t.Errorf("second = %q %q", d.Nodes[1].Language, d.Nodes[1].Code)
		}
	})
	t.Run("nested sibling order", func(t *testing.T) {
		d := New()
		d.Append(NewBlockQuote(NewParagraphText("abcd"), NewParagraphText("tail")))
		if err := d.SplitNode(Path{0, 0}, 2); err != nil {
			t.Fatal(err)
		}
		quote := d.Nodes[0].Children
		if len(quote) != 3 {
			t.Fatalf("quote children = %d, want 3", len(quote))
		}
		if quote[1].PlainText() != "cd" || quote[2].PlainText() != "tail" {
			t.Errorf("children = %q, %q", quote[1].PlainText(), quote[2].PlainText())
		}
	})
	t.Run("unsupported", func(t *testing.T) {
		d := New()
		d.Append(NewThematicBreak())
		if err := d.SplitNode(Path{0}, 0); !errors.Is(err, ErrUnsupportedOperation) {
			t.Errorf("error = %v, want ErrUnsupportedOperation", err)
		}
	})
}
