// Package editor provides an in-memory text buffer with a cursor model,
// suitable as the host side of the autopair engine in tests and embedding
// hosts that do not bring their own buffer.
package editor

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for edits addressing offsets outside the
// buffer text.
var ErrOutOfRange = errors.New("editor: offset out of range")

// ChangeFunc observes buffer mutations. The callback receives the byte
// offset of the change, the replaced text, and the replacement text; an
// insertion has empty oldText. Hosts use it to feed incremental re-parsing.
type ChangeFunc func(offset int, oldText, newText string)

// editOp records a single edit for undo/redo support.
type editOp struct {
	offset  int
	oldText string
	newText string
}

// Buffer manages the text content and insertion point of one open buffer.
type Buffer struct {
	text      string
	cursor    int
	undoStack []editOp
	redoStack []editOp
	onChange  ChangeFunc
}

// NewBuffer creates a buffer holding the given text, cursor at offset 0.
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

// OnChange sets the mutation observer. Passing nil removes it.
func (b *Buffer) OnChange(fn ChangeFunc) {
	b.onChange = fn
}

// Text returns the current text content of the buffer.
func (b *Buffer) Text() string {
	return b.text
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the insertion point as a byte offset.
func (b *Buffer) Cursor() uint {
	return uint(b.cursor)
}

// SetCursor moves the insertion point, clamped to the buffer bounds.
func (b *Buffer) SetCursor(at uint) {
	b.cursor = clamp(int(at), 0, len(b.text))
}

// Insert places text at the given byte offset. The cursor moves only when
// the insertion lands strictly before it, so inserting at the cursor
// leaves the cursor ahead of the new text.
func (b *Buffer) Insert(at uint, text string) error {
	offset := int(at)
	if offset > len(b.text) {
		return fmt.Errorf("%w: %d > %d", ErrOutOfRange, offset, len(b.text))
	}
	b.applyEdit(offset, "", text)
	if offset < b.cursor {
		b.cursor += len(text)
	}
	return nil
}

// Type inserts a single character at the cursor and advances past it,
// mirroring a self-insert keystroke.
func (b *Buffer) Type(ch rune) {
	text := string(ch)
	b.applyEdit(b.cursor, "", text)
	b.cursor += len(text)
}

// Delete removes length bytes starting at the given offset. The cursor is
// pulled back when the deleted range lies before or around it.
func (b *Buffer) Delete(at uint, length int) error {
	offset := int(at)
	if length < 0 || offset+length > len(b.text) {
		return fmt.Errorf("%w: [%d, %d) in %d", ErrOutOfRange, offset, offset+length, len(b.text))
	}
	b.applyEdit(offset, b.text[offset:offset+length], "")
	if b.cursor > offset {
		b.cursor = max(offset, b.cursor-length)
	}
	return nil
}

// applyEdit records the edit on the undo stack, clears the redo stack,
// applies it to the buffer text, and notifies the change observer. The
// edit replaces the text at [offset, offset+len(oldText)) with newText.
func (b *Buffer) applyEdit(offset int, oldText, newText string) {
	b.undoStack = append(b.undoStack, editOp{
		offset:  offset,
		oldText: oldText,
		newText: newText,
	})
	b.redoStack = nil
	b.text = b.text[:offset] + newText + b.text[offset+len(oldText):]
	if b.onChange != nil {
		b.onChange(offset, oldText, newText)
	}
}

// Undo reverses the last edit. Returns true if an edit was undone, false
// if the undo stack is empty.
func (b *Buffer) Undo() bool {
	if len(b.undoStack) == 0 {
		return false
	}
	op := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]
	b.text = b.text[:op.offset] + op.oldText + b.text[op.offset+len(op.newText):]
	b.redoStack = append(b.redoStack, op)
	b.cursor = clamp(b.cursor, 0, len(b.text))
	if b.onChange != nil {
		b.onChange(op.offset, op.newText, op.oldText)
	}
	return true
}

// Redo reapplies the last undone edit. Returns true if an edit was redone,
// false if the redo stack is empty.
func (b *Buffer) Redo() bool {
	if len(b.redoStack) == 0 {
		return false
	}
	op := b.redoStack[len(b.redoStack)-1]
	b.redoStack = b.redoStack[:len(b.redoStack)-1]
	b.text = b.text[:op.offset] + op.newText + b.text[op.offset+len(op.oldText):]
	b.undoStack = append(b.undoStack, op)
	b.cursor = clamp(b.cursor, 0, len(b.text))
	if b.onChange != nil {
		b.onChange(op.offset, op.oldText, op.newText)
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
