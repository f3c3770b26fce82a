package app

import (
	"fmt"
	"slices"
	"strings"
)

// Document is a line-oriented text buffer edited through undoable commands.
type Document struct {
	lines    []string
	modified bool
}

// NewDocument creates a document holding the given lines.
func NewDocument(lines ...string) *Document {
	return &Document{lines: slices.Clone(lines)}
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the line at index i.
func (d *Document) Line(i int) (string, bool) {
	if i < 0 || i >= len(d.lines) {
		return "", false
	}
	return d.lines[i], true
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	return slices.Clone(d.lines)
}

// Content returns the lines joined by newlines.
func (d *Document) Content() string {
	return strings.Join(d.lines, "\n")
}

// IsModified returns true if the document has been edited.
func (d *Document) IsModified() bool {
	return d.modified
}

// SetModified sets the modified flag.
func (d *Document) SetModified(modified bool) {
	d.modified = modified
}

func (d *Document) checkIndex(op string, i int) error {
	if i < 0 || i >= len(d.lines) {
		return NewOperationError(op, fmt.Sprintf("line %d", i), ErrLineOutOfRange)
	}
	return nil
}

func (d *Document) insert(i int, text string) {
	d.lines = slices.Insert(d.lines, i, text)
}

func (d *Document) remove(i int) string {
	text := d.lines[i]
	d.lines = slices.Delete(d.lines, i, i+1)
	return text
}
