package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value (spec.md §3, component A).
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "?"
	}
}

// Array is the reference-shared backing store for KindArray values:
// assignment and passing of an array Value observes reference semantics
// because every copy of the Value holds the same *Array.
type Array struct {
	Elems  []Value
	marked bool // cycle-breaking mark, set/cleared around a traversal
}

// Value is the tagged union of spec.md §3: {Nil, Bool, Int, String, Array}.
type Value struct {
	Kind Kind
	B    bool
	I    int64
	S    string
	A    *Array
}

// Nil, True and False are convenience constructors for the scalar
// singleton-ish variants.
var (
	Nil   = Value{Kind: KindNil}
	True  = Value{Kind: KindBool, B: true}
	False = Value{Kind: KindBool, B: false}
)

func IntValue(i int64) Value     { return Value{Kind: KindInt, I: i} }
func StringValue(s string) Value { return Value{Kind: KindString, S: s} }
func BoolValue(b bool) Value {
	if b {
		return True
	}
	return False
}
func ArrayValue(elems ...Value) Value {
	return Value{Kind: KindArray, A: &Array{Elems: elems}}
}

// TypeName matches the scripting surface's type() function naming.
func (v Value) TypeName() string { return v.Kind.String() }

// IsEmpty reports whether v is "" for strings, an empty array, nil, or
// false (but not zero: "zero is true" per spec.md §4.A coerce_bool).
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return !v.B
	case KindString:
		return v.S == ""
	case KindArray:
		return v.A == nil || len(v.A.Elems) == 0
	default:
		return false
	}
}

// CoerceBool implements coerce_bool: false iff false, nil, or empty
// string; zero is true.
func (v Value) CoerceBool() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.B
	case KindString:
		return v.S != ""
	default:
		return true
	}
}

// CoerceInt implements coerce_int.
func (v Value) CoerceInt() (int64, error) {
	switch v.Kind {
	case KindInt:
		return v.I, nil
	case KindBool:
		if v.B {
			return 1, nil
		}
		return 0, nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.S), 10, 64)
		if err != nil {
			return 0, ScriptErrorf("not an integer: %q", v.S)
		}
		return n, nil
	case KindNil:
		return 0, nil
	default:
		return 0, ScriptErrorf("cannot coerce %v to int", v.Kind)
	}
}

// CoerceStr implements coerce_str, with the same flag set as Array
// flattening (spec.md §4.A) since a scalar is just a one-element
// flattening.
func (v Value) CoerceStr() string {
	switch v.Kind {
	case KindNil:
		return ""
	case KindBool:
		if v.B {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.I, 10)
	case KindString:
		return v.S
	case KindArray:
		return flattenArray(v.A, ", ", flattenFlags{ShowNil: true, ShowBool: true})
	default:
		return ""
	}
}

// Copy implements copy(dst, src): deep for primitives, shallow (reference
// sharing) for arrays.
func Copy(src Value) Value {
	return src // all primitive fields are value types; arrays share *Array by design
}

// flattenFlags controls array-to-string flattening (spec.md §4.A).
type flattenFlags struct {
	KeepNil    bool // include nil elements as empty segments
	KeepNull   bool // include empty-string elements as empty segments
	ShowNil    bool // render nil elements as the literal "nil"
	ShowBool   bool // render bools as "true"/"false" rather than "1"/"0"
	ForceArray bool // on cycle, emit "[...]" instead of failing
}

// EndlessRecursion is returned when flattening re-encounters an array
// already under traversal and ForceArray was not requested.
var errEndlessRecursion = ScriptErrorf("EndlessRecursion: array contains itself")

func flattenArray(a *Array, delim string, flags flattenFlags) string {
	if a == nil {
		return ""
	}
	var sb strings.Builder
	_ = flattenInto(&sb, a, delim, flags)
	return sb.String()
}

func flattenInto(sb *strings.Builder, a *Array, delim string, flags flattenFlags) error {
	if a.marked {
		if flags.ForceArray {
			sb.WriteString("[...]")
			return nil
		}
		return errEndlessRecursion
	}
	a.marked = true
	defer func() { a.marked = false }()

	first := true
	for _, el := range a.Elems {
		seg, skip, err := flattenElem(el, delim, flags)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		if !first {
			sb.WriteString(delim)
		}
		first = false
		sb.WriteString(seg)
	}
	return nil
}

func flattenElem(el Value, delim string, flags flattenFlags) (seg string, skip bool, err error) {
	switch el.Kind {
	case KindNil:
		if !flags.KeepNil && !flags.ShowNil {
			return "", true, nil
		}
		if flags.ShowNil {
			return "nil", false, nil
		}
		return "", false, nil
	case KindString:
		if el.S == "" && !flags.KeepNull {
			return "", true, nil
		}
		return el.S, false, nil
	case KindBool:
		if flags.ShowBool {
			return el.CoerceStr(), false, nil
		}
		if el.B {
			return "1", false, nil
		}
		return "0", false, nil
	case KindArray:
		var inner strings.Builder
		if ferr := flattenInto(&inner, el.A, delim, flags); ferr != nil {
			return "", false, ferr
		}
		return inner.String(), false, nil
	default:
		return el.CoerceStr(), false, nil
	}
}

// Join concatenates an array's elements with delim, per spec.md §4.A.
func Join(v Value, delim string, flags flattenFlags) (string, error) {
	if v.Kind != KindArray {
		return v.CoerceStr(), nil
	}
	var sb strings.Builder
	if err := flattenInto(&sb, v.A, delim, flags); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// GoString renders a debug form (the %#v verb).
func (v Value) GoString() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("%v", v.B)
	case KindInt:
		return fmt.Sprintf("%d", v.I)
	case KindString:
		return strconv.Quote(v.S)
	case KindArray:
		return "[" + flattenArray(v.A, ", ", flattenFlags{ShowNil: true, ShowBool: true, ForceArray: true}) + "]"
	default:
		return "?"
	}
}

// Tracker implements the tracked-datum list of spec.md §3/§4.A: short-lived
// values created during expression evaluation can be released in bulk by
// snapshotting the list length and popping back to it at a statement
// boundary. It also doubles as the array garbage list, recording every
// array wrapper ever produced so cycle-breaking (flattenInto's marked
// flag) has something to walk if a caller wants to force-clear marks after
// an aborted traversal.
type Tracker struct {
	datums []Value
	arrays []*Array
}

// Snapshot returns a mark usable with ReleaseTo.
func (t *Tracker) Snapshot() int { return len(t.datums) }

// Track records a short-lived value so it can be released later. Arrays are
// additionally recorded in the garbage list regardless of snapshot/release,
// matching spec.md §3's "separate ... array garbage list holds every array
// wrapper ever produced".
func (t *Tracker) Track(v Value) Value {
	t.datums = append(t.datums, v)
	if v.Kind == KindArray && v.A != nil {
		t.arrays = append(t.arrays, v.A)
	}
	return v
}

// ReleaseTo pops every tracked datum created since snap.
func (t *Tracker) ReleaseTo(snap int) {
	if snap < 0 || snap > len(t.datums) {
		return
	}
	t.datums = t.datums[:snap]
}

// ClearMarks walks the array garbage list, clearing any stale cycle-marks
// left behind by a traversal that errored out instead of unwinding
// normally.
func (t *Tracker) ClearMarks() {
	for _, a := range t.arrays {
		a.marked = false
	}
}
