// Package keycode implements the extended key code representation used by
// the terminal driver collaborator (spec.md §6): plain bytes, named
// control runes, and modifier-tagged codes (Ctrl, Meta, prefix sequences,
// Shift, function keys), along with a round-trippable textual encoding.
package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier bits are packed into the high bits of a Code, above the 21 bits
// needed to hold any rune (including function-key ordinals, which are
// small integers rather than runes).
type Modifier uint32

const (
	Ctrl Modifier = 1 << (21 + iota)
	Meta
	Pref1
	Pref2
	Pref3
	Shift
	FKey
)

const runeMask = 1<<21 - 1

// Code is an extended key code: a base rune or function-key ordinal with
// zero or more Modifier bits set above it.
type Code uint32

// Key packs a base rune/ordinal with the given modifiers into a Code.
func Key(base rune, mods ...Modifier) Code {
	var m Modifier
	for _, mod := range mods {
		m |= mod
	}
	return Code(uint32(m) | (uint32(base) & runeMask))
}

// Base returns the unmodified rune or ordinal portion of the code.
func (c Code) Base() rune { return rune(uint32(c) & runeMask) }

// Has reports whether the code carries the given modifier bit.
func (c Code) Has(mod Modifier) bool { return uint32(c)&uint32(mod) != 0 }

var modOrder = []struct {
	mod    Modifier
	prefix string
	caret  bool
}{
	{Pref1, "", false},
	{Pref2, "", false},
	{Pref3, "", false},
	{Ctrl, "C-", true},
	{Meta, "M-", false},
	{Shift, "S-", false},
}

// Ektos ("encode key to string") renders a Code in its textual form, e.g.
// "C-x", "M-x", "ESC x", "^X", "<f3>".
func Ektos(c Code) string {
	if c.Has(FKey) {
		return fmt.Sprintf("<f%d>", c.Base())
	}

	base := c.Base()
	var sb strings.Builder

	// ESC-prefixed sequences render as "ESC " rather than "M-" when stacked
	// with a following prefix key, matching the classic meta-as-escape form.
	if c.Has(Pref1) {
		sb.WriteString("ESC ")
	}
	if c.Has(Pref2) {
		sb.WriteString("ESC ESC ")
	}
	if c.Has(Pref3) {
		sb.WriteString("ESC ESC ESC ")
	}

	if c.Has(Meta) {
		sb.WriteString("M-")
	}
	if c.Has(Ctrl) && !c.Has(Shift) && base < 0x80 {
		if caret := CaretForm(rune(toCtl(base))); caret != "" {
			sb.WriteString(caret)
			return sb.String()
		}
	}
	if c.Has(Ctrl) {
		sb.WriteString("C-")
	}
	if c.Has(Shift) {
		sb.WriteString("S-")
	}
	sb.WriteRune(base)
	return sb.String()
}

// toCtl folds a plain letter/symbol rune down into its C0 control
// equivalent (the same ^ fold CaretForm later reverses).
func toCtl(base rune) rune {
	if base >= 'a' && base <= 'z' {
		base -= 'a' - 'A'
	}
	return base ^ 0x40
}

// Stoek ("string to key") parses the textual form produced by Ektos back
// into a Code. Accepts "C-x", "M-x", "^X", "ESC x", "<f3>" forms.
func Stoek(s string) (Code, error) {
	var mods Modifier
	for {
		switch {
		case strings.HasPrefix(s, "ESC "):
			if mods&(Pref1|Pref2|Pref3) == 0 {
				mods |= Pref1
			} else if mods&Pref1 != 0 {
				mods = mods&^Pref1 | Pref2
			} else if mods&Pref2 != 0 {
				mods = mods&^Pref2 | Pref3
			} else {
				return 0, fmt.Errorf("keycode: too many ESC prefixes in %q", s)
			}
			s = s[4:]
			continue
		case strings.HasPrefix(s, "C-"):
			mods |= Ctrl
			s = s[2:]
			continue
		case strings.HasPrefix(s, "M-"):
			mods |= Meta
			s = s[2:]
			continue
		case strings.HasPrefix(s, "S-"):
			mods |= Shift
			s = s[2:]
			continue
		}
		break
	}

	if strings.HasPrefix(s, "<f") && strings.HasSuffix(s, ">") {
		n, err := strconv.Atoi(s[2 : len(s)-1])
		if err != nil {
			return 0, fmt.Errorf("keycode: invalid function key %q: %w", s, err)
		}
		return Code(uint32(mods|FKey) | uint32(n)&runeMask), nil
	}

	if r, ok := ControlWords[s]; ok {
		base, ctrl := fromCaretOrMnemonic(r)
		if ctrl {
			mods |= Ctrl
		}
		return Key(base, mods), nil
	}

	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("keycode: invalid key token %q", s)
	}
	return Key(runes[0], mods), nil
}

// fromCaretOrMnemonic maps a resolved control rune back to the printable
// base letter a Ctrl modifier should be paired with, e.g. 0x18 -> ('x', true).
func fromCaretOrMnemonic(r rune) (base rune, ctrl bool) {
	if r < 0x20 {
		base = r ^ 0x40
		if base >= 'A' && base <= 'Z' {
			base += 'a' - 'A'
		}
		return base, true
	}
	if r == 0x7f {
		return '?', true
	}
	return r, false
}

// ControlRune names a control unicode codepoint.
type ControlRune struct {
	N string
	R rune
}

// C0Ctls contains the classic ASCII control characters.
var C0Ctls = [32]ControlRune{
	{"<NUL>", 0x00}, {"<SOH>", 0x01}, {"<STX>", 0x02}, {"<ETX>", 0x03},
	{"<EOT>", 0x04}, {"<ENQ>", 0x05}, {"<ACK>", 0x06}, {"<BEL>", 0x07},
	{"<BS>", 0x08}, {"<HT>", 0x09}, {"<NL>", 0x0A}, {"<VT>", 0x0B},
	{"<NP>", 0x0C}, {"<CR>", 0x0D}, {"<SO>", 0x0E}, {"<SI>", 0x0F},
	{"<DLE>", 0x10}, {"<DC1>", 0x11}, {"<DC2>", 0x12}, {"<DC3>", 0x13},
	{"<DC4>", 0x14}, {"<NAK>", 0x15}, {"<SYN>", 0x16}, {"<ETB>", 0x17},
	{"<CAN>", 0x18}, {"<EM>", 0x19}, {"<SUB>", 0x1A}, {"<ESC>", 0x1B},
	{"<FS>", 0x1C}, {"<GS>", 0x1D}, {"<RS>", 0x1E}, {"<US>", 0x1F},
}

// PseudoCtls provides the typical mnemonics for space and delete.
var PseudoCtls = [2]ControlRune{
	{"<SP>", 0x20},
	{"<DEL>", 0x7F},
}

func buildControlWords(table map[string]rune, ctls []ControlRune) {
	for _, ctl := range ctls {
		table[strings.ToUpper(ctl.N)] = ctl.R
		table[strings.ToLower(ctl.N)] = ctl.R
		if caret := CaretForm(ctl.R); caret != "" {
			table[caret] = ctl.R
		}
	}
}

// ControlWords maps control mnemonic strings (and their caret forms, e.g.
// "^C" for <ETX>) to runes.
var ControlWords map[string]rune

func init() {
	ControlWords = make(map[string]rune, 3*(len(C0Ctls)+len(PseudoCtls)))
	buildControlWords(ControlWords, C0Ctls[:])
	buildControlWords(ControlWords, PseudoCtls[:])
}

// CaretForm computes the ^-escaped printable form of a C0 control rune,
// e.g. 0x03 -> "^C", 0x1B -> "^[".
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	}
	return ""
}

var errInvalidRune = fmt.Errorf(`rune literal must be "^X", "<NAME>", or 'X'`)

// UnquoteRune extends strconv.UnquoteChar with the mnemonics above and
// caret-forms like ^[.
func UnquoteRune(token string) (rune, error) {
	if r, defined := ControlWords[token]; defined {
		return r, nil
	}
	runes := []rune(token)
	if len(runes) < 1 || runes[0] != '\'' {
		return 0, errInvalidRune
	}
	switch len(runes) {
	case 3:
		if runes[2] != '\'' {
			return 0, errInvalidRune
		}
	case 4:
		if runes[3] != '\'' {
			return 0, errInvalidRune
		}
	default:
		return 0, errInvalidRune
	}
	value, _, _, err := strconv.UnquoteChar(token[1:], '\'')
	return value, err
}
