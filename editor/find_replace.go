package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/docmark/document"
)

// FindReplaceCommand replaces every occurrence of a literal string across
// the document's text runs, including runs nested in lists, quotes, tables
// and footnotes. Code blocks and code spans are left alone. The match
// count is available through Count after execution.
type FindReplaceCommand struct {
	Find    string
	Replace string

	count int
	prior []document.Node
}

func NewFindReplaceCommand(find, replace string) *FindReplaceCommand {
	return &FindReplaceCommand{Find: find, Replace: replace}
}

func (c *FindReplaceCommand) Execute(doc *document.Document) error {
	if c.Find == "" {
		return fmt.Errorf("find string is empty: %w", document.ErrInvalidRange)
	}
	c.prior = document.CloneNodes(doc.Nodes)
	c.count = 0
	for i := range doc.Nodes {
		c.replaceInNode(&doc.Nodes[i])
	}
	return nil
}

func (c *FindReplaceCommand) replaceInNode(n *document.Node) {
	c.replaceInInlines(n.Content)
	for i := range n.Children {
		c.replaceInNode(&n.Children[i])
	}
	for i := range n.Items {
		for j := range n.Items[i].Children {
			c.replaceInNode(&n.Items[i].Children[j])
		}
	}
	for i := range n.Header {
		c.replaceInInlines(n.Header[i].Content)
	}
	for i := range n.Rows {
		for j := range n.Rows[i] {
			c.replaceInInlines(n.Rows[i][j].Content)
		}
	}
	for i := range n.Definitions {
		c.replaceInInlines(n.Definitions[i].Term)
		for j := range n.Definitions[i].Descriptions {
			for k := range n.Definitions[i].Descriptions[j] {
				c.replaceInNode(&n.Definitions[i].Descriptions[j][k])
			}
		}
	}
}

func (c *FindReplaceCommand) replaceInInlines(content []document.InlineNode) {
	for i := range content {
		in := &content[i]
		switch in.Kind {
		case document.InlineText:
			if hits := strings.Count(in.Text, c.Find); hits > 0 {
				c.count += hits
				in.Text = strings.ReplaceAll(in.Text, c.Find, c.Replace)
			}
		case document.InlineLink, document.InlineFootnoteInline:
			c.replaceInInlines(in.Children)
		}
	}
}

func (c *FindReplaceCommand) Undo(doc *document.Document) error {
	if c.prior == nil {
		return fmt.Errorf("find/replace not executed: %w", document.ErrOperationFailed)
	}
	doc.Nodes = document.CloneNodes(c.prior)
	return nil
}

// Count returns the number of replacements made by the last Execute.
func (c *FindReplaceCommand) Count() int { return c.count }

func (c *FindReplaceCommand) Description() string {
	return fmt.Sprintf("replace %q with %q", c.Find, c.Replace)
}

// FindReplace replaces every occurrence of find with replace and returns
// the number of replacements.
func (e *Editor) FindReplace(find, replace string) (int, error) {
	cmd := NewFindReplaceCommand(find, replace)
	if err := e.Execute(cmd); err != nil {
		return 0, err
	}
	return cmd.Count(), nil
}
