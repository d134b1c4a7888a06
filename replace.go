package main

import "strings"

// replKind tags one piece of a compiled replacement program.
type replKind uint8

const (
	replLit   replKind = iota
	replWhole          // '&' - whole match
	replGroup          // '\1'-'\9' - captured group
)

// replNode is one compiled replacement-pattern node (spec.md §4.E).
type replNode struct {
	kind replKind
	lit  string
	num  int // group number, for replGroup
}

// compileReplace translates the surface replacement syntax (literal
// text, '&' for the whole match, '\N' for group N, '\&' and '\\' as
// escapes) into a replNode program, validating that every referenced
// group number was actually captured by the search pattern (ngroups
// includes group 0).
func compileReplace(repl string, ngroups int) ([]replNode, error) {
	var prog []replNode
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			prog = append(prog, replNode{kind: replLit, lit: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch c {
		case '&':
			flush()
			prog = append(prog, replNode{kind: replWhole})
		case '\\':
			i++
			if i >= len(repl) {
				return nil, ScriptErrorf("trailing backslash in replacement pattern")
			}
			switch e := repl[i]; {
			case e >= '1' && e <= '9':
				n := int(e - '0')
				if n >= ngroups {
					return nil, ScriptErrorf("replacement references group %d, but the pattern has only %d", n, ngroups-1)
				}
				flush()
				prog = append(prog, replNode{kind: replGroup, num: n})
			case e == '&' || e == '\\':
				lit.WriteByte(e)
			case e == 't':
				lit.WriteByte('\t')
			case e == 'n':
				lit.WriteByte('\n')
			case e == 'r':
				lit.WriteByte('\r')
			default:
				lit.WriteByte(e)
			}
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return prog, nil
}

// expandReplace renders prog against a set of captured groups, substituting '&'
// and '\N' references.
func expandReplace(prog []replNode, groups []Group) string {
	var out strings.Builder
	for _, n := range prog {
		switch n.kind {
		case replLit:
			out.WriteString(n.lit)
		case replWhole:
			if len(groups) > 0 {
				out.WriteString(groups[0].Text)
			}
		case replGroup:
			if n.num < len(groups) && groups[n.num].valid() {
				out.WriteString(groups[n.num].Text)
			}
		}
	}
	return out.String()
}

// ReplyAction is the user's answer to one query-replace prompt (spec.md
// §4.E: y/n/!/u/q/./?).
type ReplyAction uint8

const (
	ReplyYes ReplyAction = iota
	ReplyNo
	ReplyAll  // '!' - replace this and all remaining without asking
	ReplyUndo // 'u' - undo the previous replacement and back up to it
	ReplyQuit // 'q' - stop, leaving point at the last match
	ReplyDot  // '.' - replace this one, then stop (single-match form)
	ReplyHelp // '?' - show the prompt legend again
)

// ParseReplyAction maps one keystroke to a ReplyAction.
func ParseReplyAction(key rune) (ReplyAction, bool) {
	switch key {
	case 'y', ' ':
		return ReplyYes, true
	case 'n', 0x7f: // DEL
		return ReplyNo, true
	case '!':
		return ReplyAll, true
	case 'u':
		return ReplyUndo, true
	case 'q', 0x1b: // ESC
		return ReplyQuit, true
	case '.':
		return ReplyDot, true
	case '?':
		return ReplyHelp, true
	}
	return 0, false
}

// replaceStep records one applied substitution, enough to support a
// single-level undo ('u') per spec.md §4.E.
type replaceStep struct {
	line    *Line
	offset  int
	oldText []byte
	newText []byte
}

// ReplaceSession drives an interactive (or unconditional) query-replace
// over a buffer, per spec.md §4.E. Query mode stops at each match and
// waits for a ReplyAction; unconditional mode (query==false) replaces
// every match without prompting.
type ReplaceSession struct {
	Match    *Match
	Query    bool
	buf      *Buffer
	lastStep *replaceStep
	count    int
	all      bool
}

// NewReplaceSession constructs a session bound to buf using m's compiled
// search and replacement programs.
func NewReplaceSession(buf *Buffer, m *Match, query bool) *ReplaceSession {
	return &ReplaceSession{Match: m, Query: query, buf: buf}
}

// Count returns the number of replacements applied so far.
func (s *ReplaceSession) Count() int { return s.count }

// applyAt performs one substitution at [start,end) within the buffer's
// linearized text and returns the replacement text's length so the caller
// can resume scanning just past it. A single-line substitution is recorded
// for Undo; a match spanning lines clears that record, so Undo has nothing
// to revert after it.
func (s *ReplaceSession) applyAt(lines []*Line, lineStarts []int, start, end int) int {
	repl := expandReplace(s.Match.replProg, s.Match.Groups)
	startPt := offsetToPoint(lineStarts, lines, start)
	endPt := offsetToPoint(lineStarts, lines, end)

	if startPt.Line != endPt.Line {
		// Multi-line match: collapse onto the first line. Narrow cases
		// (match spanning a line break) are rare in practice since '.'
		// never matches '\n'; only an explicit '\n' in the pattern can
		// cause this.
		tail := endPt.Line.Bytes()[endPt.Offset:]
		startPt.Line.Delete(startPt.Offset, startPt.Line.Used()-startPt.Offset)
		startPt.Line.Insert(startPt.Offset, append([]byte(repl), tail...))
		startPt.Line.next = endPt.Line.next
		if endPt.Line.next != nil {
			endPt.Line.next.prev = startPt.Line
		} else {
			s.buf.head.prev = startPt.Line
		}
		s.lastStep = nil
	} else {
		old := startPt.Line.Bytes()[startPt.Offset:endPt.Offset]
		s.lastStep = &replaceStep{line: startPt.Line, offset: startPt.Offset, oldText: old, newText: []byte(repl)}
		startPt.Line.Replace(startPt.Offset, endPt.Offset-startPt.Offset, []byte(repl))
	}
	s.count++
	return len(repl)
}

// Undo reverts the last applied replacement, per the 'u' reply.
func (s *ReplaceSession) Undo() bool {
	if s.lastStep == nil {
		return false
	}
	st := s.lastStep
	st.line.Replace(st.offset, len(st.newText), st.oldText)
	s.count--
	s.lastStep = nil
	return true
}

// Run drives the session from start to the end of buf, invoking ask for
// each match when s.Query is true (ask returns the user's ReplyAction;
// callers wire this to the real prompt UI). It returns the number of
// replacements made.
func (s *ReplaceSession) Run(from Point, ask func(matched string) ReplyAction) (int, error) {
	text, lineStarts, lines := linearize(s.buf)
	pos := pointToOffset(lineStarts, lines, from)

	for {
		start, end, ok := s.Match.Scan(text, pos, 1)
		if !ok {
			return s.count, nil
		}

		action := ReplyYes
		if s.Query && !s.all {
			action = ask(s.Match.Groups[0].Text)
		}

		switch action {
		case ReplyQuit:
			return s.count, nil
		case ReplyHelp:
			continue
		case ReplyUndo:
			if st := s.lastStep; st != nil && s.Undo() {
				text, lineStarts, lines = linearize(s.buf)
				pos = pointToOffset(lineStarts, lines, Point{Line: st.line, Offset: st.offset})
			}
			continue
		case ReplyNo:
			pos = end
			if end == start {
				pos = end + 1
			}
			continue
		case ReplyAll:
			s.all = true
			fallthrough
		case ReplyYes, ReplyDot:
			n := s.applyAt(lines, lineStarts, start, end)
			text, lineStarts, lines = linearize(s.buf)
			pos = start + n
			if action == ReplyDot {
				return s.count, nil
			}
		}
	}
}
