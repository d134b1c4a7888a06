package main

import (
	"mightemacs/internal/mem"
)

// Line is a mutable byte-addressable buffer with a used length, linked
// within a Buffer's line list (spec.md §3). The terminal sentinel is
// next == nil on the last line; equivalently the list is null-terminated
// with head.prev reaching the tail.
//
// Storage backing a Line grows into a paged byte arena (internal/mem.Bytes,
// adapted from the teacher's paged int memory) rather than a repeatedly
// reallocated slice, so that successive in-place edits near the same
// offset don't each force a full copy.
type Line struct {
	prev, next *Line

	store mem.Bytes
	used  int
}

// NewLine returns an empty line holding a copy of text.
func NewLine(text []byte) *Line {
	l := &Line{}
	if len(text) > 0 {
		_ = l.store.Stor(0, text...)
		l.used = len(text)
	}
	return l
}

// Used returns the line's content length.
func (l *Line) Used() int { return l.used }

// Bytes returns a copy of the line's content.
func (l *Line) Bytes() []byte {
	buf := make([]byte, l.used)
	_ = l.store.LoadInto(0, buf)
	return buf
}

// String returns the line's content as a string.
func (l *Line) String() string { return string(l.Bytes()) }

// ByteAt returns the byte at offset, or 0 if out of range.
func (l *Line) ByteAt(offset int) byte {
	if offset < 0 || offset >= l.used {
		return 0
	}
	b, _ := l.store.Load(uint(offset))
	return b
}

// Insert inserts text at offset, shifting any trailing bytes right.
func (l *Line) Insert(offset int, text []byte) {
	if offset < 0 || offset > l.used || len(text) == 0 {
		return
	}
	tail := make([]byte, l.used-offset)
	_ = l.store.LoadInto(uint(offset), tail)
	_ = l.store.Stor(uint(offset), text...)
	_ = l.store.Stor(uint(offset+len(text)), tail...)
	l.used += len(text)
}

// Delete removes n bytes starting at offset.
func (l *Line) Delete(offset, n int) {
	if offset < 0 || n <= 0 || offset >= l.used {
		return
	}
	if offset+n > l.used {
		n = l.used - offset
	}
	tail := make([]byte, l.used-offset-n)
	_ = l.store.LoadInto(uint(offset+n), tail)
	_ = l.store.Stor(uint(offset), tail...)
	l.used -= n
}

// Replace removes the n bytes at offset and inserts text in their place
// (a Delete followed by an Insert).
func (l *Line) Replace(offset, n int, text []byte) {
	l.Delete(offset, n)
	l.Insert(offset, text)
}

// Point is an editing position: (line, offset) with 0 <= offset <= line.used.
type Point struct {
	Line   *Line
	Offset int
}

// Valid reports whether the point's offset is within its line's bounds.
func (p Point) Valid() bool {
	return p.Line != nil && p.Offset >= 0 && p.Offset <= p.Line.used
}

// AtLineEnd reports whether the point is at the end of its line.
func (p Point) AtLineEnd() bool { return p.Line != nil && p.Offset == p.Line.used }

// AtBufferStart reports whether the point is the first position of a
// buffer's line list.
func (p Point) AtBufferStart(b *Buffer) bool {
	return p.Offset == 0 && p.Line == b.firstLine()
}

// AtBufferEnd reports whether the point is the last position of a
// buffer's line list.
func (p Point) AtBufferEnd(b *Buffer) bool {
	return p.AtLineEnd() && p.Line.next == nil
}
