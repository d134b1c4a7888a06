package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// snapshotLines renders a buffer's line list as plain strings, for
// comparing the shape of the list independent of the Line pointers
// backing it.
func snapshotLines(b *Buffer) []string {
	var out []string
	for l := b.firstLine(); ; l = l.next {
		out = append(out, string(l.Bytes()))
		if l == b.lastLine() {
			break
		}
	}
	return out
}

func TestBufferAppendLineSnapshot(t *testing.T) {
	b := NewBuffer("scratch")
	for _, line := range []string{"one", "two", "three"} {
		b.AppendLine([]byte(line))
	}

	want := []string{"one", "two", "three"}
	if diff := cmp.Diff(want, snapshotLines(b)); diff != "" {
		t.Errorf("line-list snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferClearResetsToOneEmptyLine(t *testing.T) {
	b := NewBuffer("scratch")
	b.AppendLine([]byte("one"))
	b.AppendLine([]byte("two"))

	b.Clear()

	want := []string{""}
	if diff := cmp.Diff(want, snapshotLines(b)); diff != "" {
		t.Errorf("line-list snapshot mismatch after Clear (-want +got):\n%s", diff)
	}
	if !b.IsEmpty() {
		t.Error("buffer should report IsEmpty after Clear")
	}
}
