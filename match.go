package main

import "strings"

// MatchFlag mirrors the flag set on a Match record (spec.md §3/§4.D).
type MatchFlag uint8

const (
	MatchExact MatchFlag = 1 << iota
	MatchIgnore
	MatchRegexp
	MatchPlain
	MatchMulti
	MatchRegical // true iff the compiled pattern actually uses RE features
)

func (f MatchFlag) has(x MatchFlag) bool { return f&x != 0 }

// Group is one captured region of a match; group 0 is the whole match.
type Group struct {
	Start, End int // byte offsets into the matched text/line, End == -1 if unset
	Text       string
}

func (g Group) valid() bool { return g.Start >= 0 && g.End >= g.Start }

// Match holds a compiled search pattern, its compiled programs, a
// compiled replacement, Boyer-Moore delta tables, flags, and captured
// groups (spec.md §3).
type Match struct {
	Pattern  string
	Flags    MatchFlag
	fwdProg  []reNode // forward metachar program
	revProg  []reNode // reverse metachar program (for backward search)
	delta1   [256]int
	delta2   []int
	bmIgnore bool

	ReplacePat string
	replProg   []replNode

	Groups []Group

	lastWasZeroWidth bool
	lastPos          int
	lastPosSet       bool
}

// ParsePatternOptions extracts the trailing options sentinel described in
// spec.md §4.D: the last ':' in the pattern followed by one or more
// lowercase flag letters {m,i,e,r,p}. Duplicate/conflicting flags
// disqualify the suffix (it becomes pattern text). Doubling the sentinel
// ("::...") demotes the first ':' to a literal colon, which is recorded
// via doubled=true so the original form is reconstructable.
func ParsePatternOptions(pat string) (text string, flags MatchFlag, doubled bool) {
	i := strings.LastIndexByte(pat, ':')
	if i < 0 {
		return pat, 0, false
	}
	if i > 0 && pat[i-1] == ':' {
		// "::" - demote the first colon to a literal; no options apply
		return pat[:i-1] + pat[i:], 0, true
	}
	suffix := pat[i+1:]
	if suffix == "" {
		return pat, 0, false
	}
	seen := map[byte]bool{}
	var f MatchFlag
	for j := 0; j < len(suffix); j++ {
		c := suffix[j]
		var bit MatchFlag
		switch c {
		case 'm':
			bit = MatchMulti
		case 'i':
			bit = MatchIgnore
		case 'e':
			bit = MatchExact
		case 'r':
			bit = MatchRegexp
		case 'p':
			bit = MatchPlain
		default:
			return pat, 0, false // not a valid options suffix at all
		}
		if seen[c] || (bit == MatchExact && f.has(MatchIgnore)) || (bit == MatchIgnore && f.has(MatchExact)) ||
			(bit == MatchPlain && f.has(MatchRegexp)) || (bit == MatchRegexp && f.has(MatchPlain)) {
			return pat, 0, false // duplicate or conflicting flags disqualify the suffix
		}
		seen[c] = true
		f |= bit
	}
	return pat[:i], f, false
}

// Compile builds the forward/reverse programs (or Boyer-Moore deltas) and
// resets captured groups, given effective flags (defaults merged with any
// parsed pattern-options suffix).
func (m *Match) Compile(pattern string, flags MatchFlag) error {
	text, sfx, _ := ParsePatternOptions(pattern)
	eff := flags | sfx
	m.Pattern = text
	m.Flags = eff
	m.Groups = nil
	m.lastPosSet = false

	if eff.has(MatchRegexp) && !eff.has(MatchPlain) {
		prog, ngroups, err := compileRE(text, eff)
		if err != nil {
			return err
		}
		m.fwdProg = prog
		m.revProg = reverseProgram(prog)
		m.Groups = make([]Group, ngroups+1)
		m.Flags |= MatchRegical
		return nil
	}

	m.fwdProg, m.revProg = nil, nil
	m.Groups = make([]Group, 1)
	m.buildBoyerMoore(text, eff.has(MatchIgnore))
	return nil
}

// CompileReplace builds the replacement program from replacement text
// against the group count of the current search pattern (spec.md §4.E).
func (m *Match) CompileReplace(repl string) error {
	prog, err := compileReplace(repl, len(m.Groups))
	if err != nil {
		return err
	}
	m.ReplacePat = repl
	m.replProg = prog
	return nil
}
