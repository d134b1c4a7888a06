package main

import "sort"

// linearize materializes the buffer's lines (from head to tail, honoring
// any active narrowing) into one byte slice with '\n' joining successive
// lines, plus the line-start offsets the matcher needs for ^/$ and the
// Point<->offset conversions the search driver needs. This trades memory
// for keeping amatch's scanCursor a simple byte-indexed cursor instead of
// a Line-chasing one; buffers searched interactively are materialized a
// window at a time by the caller; an Execute Block scripted search may
// span the whole buffer.
func linearize(b *Buffer) (text []byte, lineStarts []int, lines []*Line) {
	l := b.firstLine()
	if l == nil {
		return nil, nil, nil
	}
	for {
		lineStarts = append(lineStarts, len(text))
		lines = append(lines, l)
		text = append(text, l.Bytes()...)
		if l == b.lastLine() {
			break
		}
		text = append(text, '\n')
		l = l.next
	}
	return text, lineStarts, lines
}

// pointToOffset converts a Point into a byte offset in the slice produced
// by linearize.
func pointToOffset(lineStarts []int, lines []*Line, p Point) int {
	for i, l := range lines {
		if l == p.Line {
			return lineStarts[i] + p.Offset
		}
	}
	return 0
}

// offsetToPoint is the inverse of pointToOffset: it locates which line's
// span contains offset (an offset landing exactly on the synthetic '\n'
// between lines i and i+1 resolves to the end of line i).
func offsetToPoint(lineStarts []int, lines []*Line, offset int) Point {
	i := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return Point{Line: lines[i], Offset: offset - lineStarts[i]}
}

// newScanCursor builds a scanCursor positioned at from, ready to scan in
// dir starting there.
func newScanCursor(text []byte, from int, dir int, multi bool) *scanCursor {
	return &scanCursor{text: text, pos: from, dir: dir, multi: multi}
}

// Scan runs m against text starting at fromIdx in direction dir (+1
// forward, -1 backward), returning the Group-0 span on success. Plain
// patterns dispatch to Boyer-Moore; RE patterns walk amatch over the
// program matching the scan direction, trying successive start positions
// until one matches or the scan runs off the end (per spec.md §4.D
// "Scanning": try an anchor at every position, left to right or right to
// left depending on direction).
func (m *Match) Scan(text []byte, fromIdx, dir int) (start, end int, ok bool) {
	if !m.Flags.has(MatchRegical) {
		idx, found := m.ScanBoyerMoore(text, fromIdx, dir)
		if !found {
			return 0, 0, false
		}
		if dir >= 0 {
			m.Groups[0] = Group{Start: idx, End: idx + len(m.Pattern), Text: m.Pattern}
			return idx, idx + len(m.Pattern), true
		}
		m.Groups[0] = Group{Start: idx, End: idx + len(m.Pattern), Text: m.Pattern}
		return idx, idx + len(m.Pattern), true
	}

	prog := m.fwdProg
	if dir < 0 {
		prog = m.revProg
	}
	pos := fromIdx
	for {
		if dir >= 0 {
			if pos > len(text) {
				return 0, 0, false
			}
		} else if pos < 0 {
			return 0, 0, false
		}

		groups := make([]Group, len(m.Groups))
		for i := range groups {
			groups[i] = Group{Start: -1, End: -1}
		}
		cur := newScanCursor(text, pos, dir, m.Flags.has(MatchMulti))
		groups[0].Start, groups[0].End = pos, pos
		if dir < 0 {
			groups[0].End = pos
		}
		endPos, matched := amatch(prog, 0, cur, groups, 0)
		if matched {
			lo, hi := pos, endPos
			if dir < 0 {
				lo, hi = endPos, pos
			}
			if lo == hi && m.lastPosSet && m.lastPos == lo && m.lastWasZeroWidth {
				// RepeatingMatchAtSamePosition guard: a zero-width match
				// at the exact spot the previous scan ended does not
				// advance, so move one byte in the scan direction and keep looking
				// instead of looping forever.
			} else {
				groups[0].Start, groups[0].End = lo, hi
				groups[0].Text = string(text[lo:hi])
				for i := 1; i < len(groups); i++ {
					if groups[i].valid() {
						groups[i].Text = string(text[groups[i].Start:groups[i].End])
					}
				}
				m.Groups = groups
				m.lastPos = hi
				m.lastPosSet = true
				m.lastWasZeroWidth = lo == hi
				return lo, hi, true
			}
		}
		if dir >= 0 {
			pos++
		} else {
			pos--
		}
	}
}
