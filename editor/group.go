package editor

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// GroupNodesCommand wraps a contiguous top-level node range in a named
// Group container.
type GroupNodesCommand struct {
	Name     string
	From, To int

	executed bool
}

func NewGroupNodesCommand(name string, from, to int) *GroupNodesCommand {
	return &GroupNodesCommand{Name: name, From: from, To: to}
}

func (c *GroupNodesCommand) Execute(doc *document.Document) error {
	if c.From > c.To {
		return fmt.Errorf("group range %d..%d: %w", c.From, c.To, document.ErrInvalidRange)
	}
	if c.From < 0 || c.To >= doc.Len() {
		return fmt.Errorf("group range %d..%d of %d: %w", c.From, c.To, doc.Len(), document.ErrIndexOutOfBounds)
	}
	group := document.NewGroup(c.Name, document.CloneNodes(doc.Nodes[c.From:c.To+1])...)
	spliceTop(doc, c.From, c.To-c.From+1, []document.Node{group})
	c.executed = true
	return nil
}

func (c *GroupNodesCommand) Undo(doc *document.Document) error {
	if !c.executed {
		return fmt.Errorf("group %q not executed: %w", c.Name, document.ErrOperationFailed)
	}
	if c.From >= doc.Len() || doc.Nodes[c.From].Kind != document.KindGroup {
		return fmt.Errorf("group missing at %d: %w", c.From, document.ErrInvalidNode)
	}
	spliceTop(doc, c.From, 1, document.CloneNodes(doc.Nodes[c.From].Children))
	return nil
}

func (c *GroupNodesCommand) Description() string {
	return fmt.Sprintf("group nodes %d..%d as %q", c.From, c.To, c.Name)
}

// UngroupNodesCommand replaces the Group at a top-level index with its
// children.
type UngroupNodesCommand struct {
	Index int

	prior *document.Node
}

func NewUngroupNodesCommand(index int) *UngroupNodesCommand {
	return &UngroupNodesCommand{Index: index}
}

func (c *UngroupNodesCommand) Execute(doc *document.Document) error {
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("ungroup at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	n := &doc.Nodes[c.Index]
	if n.Kind != document.KindGroup {
		return fmt.Errorf("ungroup %s node: %w", n.Kind, document.ErrUnsupportedOperation)
	}
	snap := n.Clone()
	spliceTop(doc, c.Index, 1, document.CloneNodes(n.Children))
	c.prior = &snap
	return nil
}

func (c *UngroupNodesCommand) Undo(doc *document.Document) error {
	if c.prior == nil {
		return fmt.Errorf("ungroup at %d not executed: %w", c.Index, document.ErrOperationFailed)
	}
	count := len(c.prior.Children)
	if c.Index+count > doc.Len() {
		return fmt.Errorf("ungrouped span %d+%d of %d: %w", c.Index, count, doc.Len(), document.ErrInvalidNode)
	}
	spliceTop(doc, c.Index, count, []document.Node{c.prior.Clone()})
	return nil
}

func (c *UngroupNodesCommand) Description() string {
	return fmt.Sprintf("ungroup node at %d", c.Index)
}

// GroupNodes wraps the top-level nodes from..to in a named group.
func (e *Editor) GroupNodes(name string, from, to int) error {
	return e.Execute(NewGroupNodesCommand(name, from, to))
}

// UngroupNodes splices the group at index back into the top level.
func (e *Editor) UngroupNodes(index int) error {
	return e.Execute(NewUngroupNodesCommand(index))
}
