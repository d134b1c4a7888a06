package main

import (
	"sort"
	"strings"
)

// lineTexts returns a macro buffer's lines as plain strings, in order.
func lineTexts(b *Buffer) []string {
	var out []string
	for l := b.firstLine(); ; l = l.next {
		out = append(out, l.String())
		if l == b.lastLine() {
			break
		}
	}
	return out
}

func firstWord(s string) string {
	s = strings.TrimLeft(s, " \t")
	i := 0
	for i < len(s) && isIdentCont(s[i]) {
		i++
	}
	return s[:i]
}

var loopKeywords = map[string]bool{"while": true, "until": true, "for": true, "loop": true, "break": true, "next": true}

func isLoopOpener(kind string) bool {
	switch kind {
	case "while", "until", "for", "loop":
		return true
	}
	return false
}

// openFrame is one entry on the pre-processor's open-block stack.
type openFrame struct {
	lb *LoopBlock
}

// Preprocess performs the one-pass scan of spec.md §4.J over b's current
// line list: balancing if/endif is left to the executor (component K),
// which tracks `if` nesting dynamically since it can be guard-dependent;
// this pass resolves the purely static control-flow facts — loop-block
// jump targets and macro/constrain nesting — into b.macro.Loops, and sets
// BufPreproc.
func Preprocess(b *Buffer) error {
	if b.macro == nil {
		return ScriptErrorf("buffer %q is not a macro", b.name)
	}
	lines := lineTexts(b)

	var open []*openFrame
	var completed []*LoopBlock
	macroDepth := 0
	contPrev := false

	for i, text := range lines {
		endsCont := strings.HasSuffix(text, "\\")
		if contPrev {
			contPrev = endsCont
			continue
		}
		trimmed := strings.TrimLeft(text, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			contPrev = endsCont
			continue
		}
		word := firstWord(trimmed)
		if word == "constrain" {
			rest := strings.TrimLeft(trimmed[len("constrain"):], " \t")
			if firstWord(rest) != "macro" {
				return ScriptErrorf("line %d: 'constrain' must be followed by 'macro'", i+1)
			}
			word = "macro"
		}

		switch {
		case word == "macro":
			macroDepth++
			if macroDepth > 1 {
				return ScriptErrorf("line %d: nested macro definition", i+1)
			}
		case word == "endmacro":
			macroDepth--
			if macroDepth < 0 {
				return ScriptErrorf("line %d: 'endmacro' without matching 'macro'", i+1)
			}
		case loopKeywords[word]:
			open = append(open, &openFrame{lb: &LoopBlock{Type: word, MarkLine: i}})
		case word == "endloop":
			if len(open) == 0 {
				return ScriptErrorf("line %d: 'endloop' without matching loop", i+1)
			}
			for len(open) > 0 {
				fr := open[len(open)-1]
				open = open[:len(open)-1]
				fr.lb.JumpLine = i
				completed = append(completed, fr.lb)
				if isLoopOpener(fr.lb.Type) {
					if len(open) > 0 {
						// Temporarily stash the enclosing loop's marker
						// line; resolved to its endloop line in the
						// fix-up pass below.
						fr.lb.BreakLine = open[len(open)-1].lb.MarkLine + 1
					} else {
						fr.lb.BreakLine = 0
					}
					break
				}
			}
		}
		contPrev = endsCont
	}

	if macroDepth != 0 {
		return ScriptErrorf("'macro' without matching 'endmacro'")
	}
	if len(open) != 0 {
		return ScriptErrorf("line %d: '%s' without matching 'endloop'", open[0].lb.MarkLine+1, open[0].lb.Type)
	}

	markToJump := map[int]int{}
	for _, lb := range completed {
		if isLoopOpener(lb.Type) {
			markToJump[lb.MarkLine] = lb.JumpLine
		}
	}
	for _, lb := range completed {
		if isLoopOpener(lb.Type) && lb.BreakLine > 0 {
			parentMark := lb.BreakLine - 1
			if jump, ok := markToJump[parentMark]; ok {
				lb.BreakLine = jump
			} else {
				lb.BreakLine = 0
			}
		}
	}

	sort.Slice(completed, func(i, j int) bool { return completed[i].MarkLine < completed[j].MarkLine })
	b.macro.Loops = completed
	b.set(BufPreproc)
	return nil
}

// LoopBlockAt returns the pre-processed LoopBlock whose MarkLine == line,
// if any (the executor consults this whenever it reaches a line carrying
// a loop/break/next keyword).
func LoopBlockAt(b *Buffer, line int) (*LoopBlock, bool) {
	if b.macro == nil {
		return nil, false
	}
	i := sort.Search(len(b.macro.Loops), func(i int) bool { return b.macro.Loops[i].MarkLine >= line })
	if i < len(b.macro.Loops) && b.macro.Loops[i].MarkLine == line {
		return b.macro.Loops[i], true
	}
	return nil, false
}
