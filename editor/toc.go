package editor

import (
	"fmt"
	"strings"

	"github.com/dshills/docmark/document"
)

// CreateTOCCommand builds a table of contents from the document's headings
// and inserts it at the top: an H2 "Table of Contents" followed by an
// unordered list of anchor links. Headings above MaxLevel and any existing
// table-of-contents heading are skipped. Undo removes both nodes.
type CreateTOCCommand struct {
	MaxLevel int

	inserted int
}

func NewCreateTOCCommand(maxLevel int) *CreateTOCCommand {
	return &CreateTOCCommand{MaxLevel: maxLevel}
}

func (c *CreateTOCCommand) Execute(doc *document.Document) error {
	maxLevel := c.MaxLevel
	if maxLevel < 1 {
		maxLevel = 6
	}
	var items []document.ListItem
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		level, content, ok := n.AsHeading()
		if !ok || level > maxLevel {
			continue
		}
		text := document.InlinesText(content)
		if isTOCHeading(text) {
			continue
		}
		link := document.NewLink("#"+Slug(text), "", document.NewText(text))
		items = append(items, document.NewListItem(document.NewParagraph(link)))
	}
	if len(items) == 0 {
		return fmt.Errorf("document has no headings: %w", document.ErrOperationFailed)
	}
	if err := doc.InsertNode(0, document.NewHeadingText(2, "Table of Contents")); err != nil {
		return err
	}
	if err := doc.InsertNode(1, document.NewList(document.ListUnordered, items...)); err != nil {
		doc.RemoveNode(0)
		return err
	}
	c.inserted = 2
	return nil
}

func (c *CreateTOCCommand) Undo(doc *document.Document) error {
	if c.inserted == 0 {
		return fmt.Errorf("table of contents not created: %w", document.ErrOperationFailed)
	}
	for i := 0; i < c.inserted; i++ {
		if _, err := doc.RemoveNode(0); err != nil {
			return err
		}
	}
	return nil
}

func (c *CreateTOCCommand) Description() string {
	return fmt.Sprintf("create table of contents (max level %d)", c.MaxLevel)
}

func isTOCHeading(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == "table of contents" || t == "toc"
}

// Slug turns heading text into an anchor: lowercased, with every run of
// non-alphanumeric characters collapsed to a single hyphen.
func Slug(text string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CreateTOC inserts a table of contents covering headings up to maxLevel.
func (e *Editor) CreateTOC(maxLevel int) error {
	return e.Execute(NewCreateTOCCommand(maxLevel))
}
