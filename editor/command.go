package editor

import (
	"fmt"

	"github.com/dshills/docmark/document"
)

// Command is an invertible unit of document mutation. Execute applies the
// change and must capture whatever prior state Undo needs to restore a
// structurally identical tree; on error it must leave the document
// untouched. Re-executing after an undo must reproduce the same tree.
type Command interface {
	Execute(doc *document.Document) error
	Undo(doc *document.Document) error
	Description() string
}

// CompoundCommand applies a sequence of commands as one undo unit. A
// failure partway through Execute rolls the already-executed prefix back
// in reverse order before returning.
type CompoundCommand struct {
	name     string
	commands []Command
}

// NewCompoundCommand creates a compound from pre-built commands.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{name: name, commands: commands}
}

// Add appends a command to the compound.
func (c *CompoundCommand) Add(cmd Command) {
	c.commands = append(c.commands, cmd)
}

// Len returns the number of member commands.
func (c *CompoundCommand) Len() int { return len(c.commands) }

func (c *CompoundCommand) Execute(doc *document.Document) error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(doc); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := c.commands[j].Undo(doc); uerr != nil {
					return fmt.Errorf("%s: step %d failed (%w); rollback of step %d also failed: %v",
						c.name, i, err, j, uerr)
				}
			}
			return fmt.Errorf("%s: step %d: %w", c.name, i, err)
		}
	}
	return nil
}

func (c *CompoundCommand) Undo(doc *document.Document) error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(doc); err != nil {
			return fmt.Errorf("%s: undo step %d: %w", c.name, i, err)
		}
	}
	return nil
}

func (c *CompoundCommand) Description() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("compound (%d commands)", len(c.commands))
}
