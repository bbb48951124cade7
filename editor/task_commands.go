package editor

import (
	"fmt"
	"sort"

	"github.com/dshills/docmark/document"
)

// taskListCommand is the shared core of the task-list command family: it
// locates the task list at a top-level index, snapshots it, and restores
// the snapshot on undo.
type taskListCommand struct {
	Index int

	prior *document.Node
}

func (c *taskListCommand) run(doc *document.Document, fn func(list *document.Node) error) error {
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("list at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	list := &doc.Nodes[c.Index]
	if list.Kind != document.KindList || list.ListKind != document.ListTask {
		return fmt.Errorf("task operation on %s node: %w", list.Kind, document.ErrUnsupportedOperation)
	}
	snap := list.Clone()
	if err := fn(list); err != nil {
		return err
	}
	c.prior = &snap
	return nil
}

func (c *taskListCommand) Undo(doc *document.Document) error {
	if c.prior == nil {
		return fmt.Errorf("task operation at %d not executed: %w", c.Index, document.ErrOperationFailed)
	}
	if c.Index < 0 || c.Index >= doc.Len() {
		return fmt.Errorf("list at %d of %d: %w", c.Index, doc.Len(), document.ErrIndexOutOfBounds)
	}
	doc.Nodes[c.Index] = c.prior.Clone()
	return nil
}

func itemErr(index, max int) error {
	return fmt.Errorf("task item %d (max %d): %w", index, max, document.ErrIndexOutOfBounds)
}

// AddTaskItemCommand inserts a task item at an item index; the index may
// equal the item count to append.
type AddTaskItemCommand struct {
	taskListCommand
	ItemIndex int
	Text      string
	Checked   bool
}

func NewAddTaskItemCommand(listIndex, itemIndex int, text string, checked bool) *AddTaskItemCommand {
	return &AddTaskItemCommand{taskListCommand: taskListCommand{Index: listIndex}, ItemIndex: itemIndex, Text: text, Checked: checked}
}

func (c *AddTaskItemCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		if c.ItemIndex < 0 || c.ItemIndex > len(list.Items) {
			return itemErr(c.ItemIndex, len(list.Items))
		}
		item := document.NewTaskItem(c.Checked, document.NewParagraphText(c.Text))
		list.Items = append(list.Items, document.ListItem{})
		copy(list.Items[c.ItemIndex+1:], list.Items[c.ItemIndex:])
		list.Items[c.ItemIndex] = item
		return nil
	})
}

func (c *AddTaskItemCommand) Description() string {
	return fmt.Sprintf("add task %q at %d[%d]", c.Text, c.Index, c.ItemIndex)
}

// RemoveTaskItemCommand removes the task item at an item index.
type RemoveTaskItemCommand struct {
	taskListCommand
	ItemIndex int
}

func NewRemoveTaskItemCommand(listIndex, itemIndex int) *RemoveTaskItemCommand {
	return &RemoveTaskItemCommand{taskListCommand: taskListCommand{Index: listIndex}, ItemIndex: itemIndex}
}

func (c *RemoveTaskItemCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return itemErr(c.ItemIndex, len(list.Items)-1)
		}
		list.Items = append(list.Items[:c.ItemIndex], list.Items[c.ItemIndex+1:]...)
		return nil
	})
}

func (c *RemoveTaskItemCommand) Description() string {
	return fmt.Sprintf("remove task %d[%d]", c.Index, c.ItemIndex)
}

// EditTaskItemCommand replaces the text of the task item at an item index.
type EditTaskItemCommand struct {
	taskListCommand
	ItemIndex int
	Text      string
}

func NewEditTaskItemCommand(listIndex, itemIndex int, text string) *EditTaskItemCommand {
	return &EditTaskItemCommand{taskListCommand: taskListCommand{Index: listIndex}, ItemIndex: itemIndex, Text: text}
}

func (c *EditTaskItemCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return itemErr(c.ItemIndex, len(list.Items)-1)
		}
		item := &list.Items[c.ItemIndex]
		if len(item.Children) == 0 {
			item.Children = []document.Node{document.NewParagraphText(c.Text)}
			return nil
		}
		item.Children[0] = document.NewParagraphText(c.Text)
		return nil
	})
}

func (c *EditTaskItemCommand) Description() string {
	return fmt.Sprintf("edit task %d[%d]", c.Index, c.ItemIndex)
}

// MoveTaskItemCommand moves a task item to another item index within the
// same list.
type MoveTaskItemCommand struct {
	taskListCommand
	From, To int
}

func NewMoveTaskItemCommand(listIndex, from, to int) *MoveTaskItemCommand {
	return &MoveTaskItemCommand{taskListCommand: taskListCommand{Index: listIndex}, From: from, To: to}
}

func (c *MoveTaskItemCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		if c.From < 0 || c.From >= len(list.Items) {
			return itemErr(c.From, len(list.Items)-1)
		}
		if c.To < 0 || c.To >= len(list.Items) {
			return itemErr(c.To, len(list.Items)-1)
		}
		item := list.Items[c.From]
		list.Items = append(list.Items[:c.From], list.Items[c.From+1:]...)
		list.Items = append(list.Items, document.ListItem{})
		copy(list.Items[c.To+1:], list.Items[c.To:])
		list.Items[c.To] = item
		return nil
	})
}

func (c *MoveTaskItemCommand) Description() string {
	return fmt.Sprintf("move task %d[%d] to [%d]", c.Index, c.From, c.To)
}

// IndentTaskItemCommand nests the task item under its preceding sibling as
// a child task list.
type IndentTaskItemCommand struct {
	taskListCommand
	ItemIndex int
}

func NewIndentTaskItemCommand(listIndex, itemIndex int) *IndentTaskItemCommand {
	return &IndentTaskItemCommand{taskListCommand: taskListCommand{Index: listIndex}, ItemIndex: itemIndex}
}

func (c *IndentTaskItemCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return itemErr(c.ItemIndex, len(list.Items)-1)
		}
		if c.ItemIndex == 0 {
			return fmt.Errorf("indent first task item: %w", document.ErrUnsupportedOperation)
		}
		item := list.Items[c.ItemIndex]
		prev := &list.Items[c.ItemIndex-1]
		// Reuse a trailing nested task list on the previous item if one
		// exists, otherwise start one.
		if l := len(prev.Children); l > 0 &&
			prev.Children[l-1].Kind == document.KindList &&
			prev.Children[l-1].ListKind == document.ListTask {
			prev.Children[l-1].Items = append(prev.Children[l-1].Items, item)
		} else {
			prev.Children = append(prev.Children, document.NewList(document.ListTask, item))
		}
		list.Items = append(list.Items[:c.ItemIndex], list.Items[c.ItemIndex+1:]...)
		return nil
	})
}

func (c *IndentTaskItemCommand) Description() string {
	return fmt.Sprintf("indent task %d[%d]", c.Index, c.ItemIndex)
}

// ToggleTaskCommand flips the checkbox of the task item at an item index.
type ToggleTaskCommand struct {
	taskListCommand
	ItemIndex int
}

func NewToggleTaskCommand(listIndex, itemIndex int) *ToggleTaskCommand {
	return &ToggleTaskCommand{taskListCommand: taskListCommand{Index: listIndex}, ItemIndex: itemIndex}
}

func (c *ToggleTaskCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		if c.ItemIndex < 0 || c.ItemIndex >= len(list.Items) {
			return itemErr(c.ItemIndex, len(list.Items)-1)
		}
		item := &list.Items[c.ItemIndex]
		if item.Checked == nil {
			checked := true
			item.Checked = &checked
			return nil
		}
		*item.Checked = !*item.Checked
		return nil
	})
}

func (c *ToggleTaskCommand) Description() string {
	return fmt.Sprintf("toggle task %d[%d]", c.Index, c.ItemIndex)
}

// SortTaskListCommand orders items unchecked before checked, preserving
// relative order within each group.
type SortTaskListCommand struct {
	taskListCommand
}

func NewSortTaskListCommand(listIndex int) *SortTaskListCommand {
	return &SortTaskListCommand{taskListCommand: taskListCommand{Index: listIndex}}
}

func (c *SortTaskListCommand) Execute(doc *document.Document) error {
	return c.run(doc, func(list *document.Node) error {
		sort.SliceStable(list.Items, func(i, j int) bool {
			return !isChecked(list.Items[i]) && isChecked(list.Items[j])
		})
		return nil
	})
}

func isChecked(it document.ListItem) bool {
	return it.Checked != nil && *it.Checked
}

func (c *SortTaskListCommand) Description() string {
	return fmt.Sprintf("sort task list %d", c.Index)
}

// AddTaskItem inserts a task item into the task list at listIndex.
func (e *Editor) AddTaskItem(listIndex, itemIndex int, text string, checked bool) error {
	return e.Execute(NewAddTaskItemCommand(listIndex, itemIndex, text, checked))
}

// RemoveTaskItem removes a task item from the task list at listIndex.
func (e *Editor) RemoveTaskItem(listIndex, itemIndex int) error {
	return e.Execute(NewRemoveTaskItemCommand(listIndex, itemIndex))
}

// EditTaskItem replaces the text of a task item.
func (e *Editor) EditTaskItem(listIndex, itemIndex int, text string) error {
	return e.Execute(NewEditTaskItemCommand(listIndex, itemIndex, text))
}

// MoveTaskItem moves a task item within its list.
func (e *Editor) MoveTaskItem(listIndex, from, to int) error {
	return e.Execute(NewMoveTaskItemCommand(listIndex, from, to))
}

// IndentTaskItem nests a task item under its preceding sibling.
func (e *Editor) IndentTaskItem(listIndex, itemIndex int) error {
	return e.Execute(NewIndentTaskItemCommand(listIndex, itemIndex))
}

// ToggleTask flips a task item's checkbox.
func (e *Editor) ToggleTask(listIndex, itemIndex int) error {
	return e.Execute(NewToggleTaskCommand(listIndex, itemIndex))
}

// SortTaskList orders unchecked items before checked ones.
func (e *Editor) SortTaskList(listIndex int) error {
	return e.Execute(NewSortTaskListCommand(listIndex))
}
