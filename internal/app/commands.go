package app

import (
	"fmt"
	"strconv"
)

// AppendLine adds a line at the end of a document.
type AppendLine struct {
	doc  *Document
	text string

	index   int
	applied bool
}

// NewAppendLine creates a command appending text to doc.
func NewAppendLine(doc *Document, text string) *AppendLine {
	return &AppendLine{doc: doc, text: text}
}

// Execute appends the line, remembering where it went.
func (c *AppendLine) Execute() error {
	c.index = c.doc.Len()
	c.doc.insert(c.index, c.text)
	c.applied = true
	return nil
}

// Undo removes the line Execute inserted, even if lines were appended after
// it by commands no longer in the history.
func (c *AppendLine) Undo() error {
	if !c.applied {
		return nil
	}
	if err := c.doc.checkIndex("undo append", c.index); err != nil {
		return err
	}
	c.doc.remove(c.index)
	c.applied = false
	return nil
}

// IsImplicit returns false.
func (c *AppendLine) IsImplicit() bool { return false }

func (c *AppendLine) String() string {
	return "append " + strconv.Quote(c.text)
}

// DeleteLine removes one line from a document.
type DeleteLine struct {
	doc   *Document
	index int

	removed string
	applied bool
}

// NewDeleteLine creates a command deleting line index of doc.
func NewDeleteLine(doc *Document, index int) *DeleteLine {
	return &DeleteLine{doc: doc, index: index}
}

// Check reports whether the line exists.
func (c *DeleteLine) Check() error {
	return c.doc.checkIndex("delete", c.index)
}

// Execute deletes the line, remembering its text.
func (c *DeleteLine) Execute() error {
	if err := c.Check(); err != nil {
		return err
	}
	c.removed = c.doc.remove(c.index)
	c.applied = true
	return nil
}

// Undo re-inserts the deleted line.
func (c *DeleteLine) Undo() error {
	if !c.applied {
		return nil
	}
	c.doc.insert(c.index, c.removed)
	c.applied = false
	return nil
}

// IsImplicit returns false.
func (c *DeleteLine) IsImplicit() bool { return false }

func (c *DeleteLine) String() string {
	return fmt.Sprintf("delete %d", c.index)
}

// SetLine replaces the text of one line.
type SetLine struct {
	doc   *Document
	index int
	text  string

	previous string
	applied  bool
}

// NewSetLine creates a command replacing line index of doc with text.
func NewSetLine(doc *Document, index int, text string) *SetLine {
	return &SetLine{doc: doc, index: index, text: text}
}

// Check reports whether the line exists.
func (c *SetLine) Check() error {
	return c.doc.checkIndex("set", c.index)
}

// Execute replaces the line, remembering the old text.
func (c *SetLine) Execute() error {
	if err := c.Check(); err != nil {
		return err
	}
	c.previous = c.doc.lines[c.index]
	c.doc.lines[c.index] = c.text
	c.applied = true
	return nil
}

// Undo restores the old text.
func (c *SetLine) Undo() error {
	if !c.applied {
		return nil
	}
	c.doc.lines[c.index] = c.previous
	c.applied = false
	return nil
}

// IsImplicit returns false.
func (c *SetLine) IsImplicit() bool { return false }

func (c *SetLine) String() string {
	return fmt.Sprintf("set %d %q", c.index, c.text)
}

// MarkModified flags a document as edited. It is implicit: it follows the
// edit that caused it and is undone and redone together with that edit.
type MarkModified struct {
	doc      *Document
	previous bool
}

// NewMarkModified creates the implicit companion of an edit to doc.
func NewMarkModified(doc *Document) *MarkModified {
	return &MarkModified{doc: doc}
}

// Execute sets the modified flag.
func (c *MarkModified) Execute() error {
	c.previous = c.doc.IsModified()
	c.doc.SetModified(true)
	return nil
}

// Undo restores the flag to its value before Execute.
func (c *MarkModified) Undo() error {
	c.doc.SetModified(c.previous)
	return nil
}

// IsImplicit returns true.
func (c *MarkModified) IsImplicit() bool { return true }

func (c *MarkModified) String() string { return "mark modified" }
