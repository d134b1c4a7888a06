package main

// RingKind names one of the four well-known rings (spec.md §4.F).
type RingKind uint8

const (
	KillRing RingKind = iota
	DeleteRing
	SearchRing
	ReplaceRing
)

const defaultRingSize = 30

// Ring is a bounded, most-recent-first entry list. Pushing past the
// configured maximum drops the oldest entry; Cycle rotates the "current"
// pointer without disturbing order, matching spec.md §4.F's kill/delete
// ring semantics (each yank-cycle step reuses the ring, it doesn't
// consume it).
type Ring struct {
	kind    RingKind
	entries []string // index 0 is most recent
	max     int
	cur     int // index of the entry last yanked/recalled
}

// NewRing constructs an empty ring of the given kind with the default
// maximum size.
func NewRing(kind RingKind) *Ring {
	return &Ring{kind: kind, max: defaultRingSize}
}

// SetMax changes the ring's maximum entry count, trimming from the tail
// (oldest first) if the ring is already over the new limit. A max of 0
// means unbounded.
func (r *Ring) SetMax(max int) {
	r.max = max
	if max > 0 && len(r.entries) > max {
		r.entries = r.entries[:max]
	}
	if r.cur >= len(r.entries) {
		r.cur = 0
	}
}

// Max reports the ring's configured maximum.
func (r *Ring) Max() int { return r.max }

// Push adds text as the newest entry, dropping the oldest if the ring is
// at capacity, and resets the cycle cursor to it.
func (r *Ring) Push(text string) {
	if text == "" {
		return
	}
	r.entries = append([]string{text}, r.entries...)
	if r.max > 0 && len(r.entries) > r.max {
		r.entries = r.entries[:r.max]
	}
	r.cur = 0
}

// Top returns the most recently pushed entry, or "" if the ring is
// empty.
func (r *Ring) Top() string {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[0]
}

// Current returns the entry at the current cycle position.
func (r *Ring) Current() (string, bool) {
	if r.cur < 0 || r.cur >= len(r.entries) {
		return "", false
	}
	return r.entries[r.cur], true
}

// Cycle advances (n > 0) or retreats (n < 0) the current-entry cursor by
// n positions, wrapping around the ring, and returns the entry now
// current. Used by repeated-yank (successive yank-next invocations walk
// the ring without re-pushing).
func (r *Ring) Cycle(n int) (string, bool) {
	if len(r.entries) == 0 {
		return "", false
	}
	r.cur = ((r.cur+n)%len(r.entries) + len(r.entries)) % len(r.entries)
	return r.entries[r.cur], true
}

// Delete removes the entry at the current cycle position.
func (r *Ring) Delete() bool {
	if r.cur < 0 || r.cur >= len(r.entries) {
		return false
	}
	r.entries = append(r.entries[:r.cur], r.entries[r.cur+1:]...)
	if r.cur >= len(r.entries) {
		r.cur = 0
	}
	return true
}

// Len reports the number of entries currently held.
func (r *Ring) Len() int { return len(r.entries) }

// Entries returns a copy of the ring's entries, most-recent first.
func (r *Ring) Entries() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// RingSet bundles the four standard rings an Editor carries.
type RingSet struct {
	Kill    *Ring
	Delete  *Ring
	Search  *Ring
	Replace *Ring
}

// NewRingSet constructs the four standard rings at their default size.
func NewRingSet() *RingSet {
	return &RingSet{
		Kill:    NewRing(KillRing),
		Delete:  NewRing(DeleteRing),
		Search:  NewRing(SearchRing),
		Replace: NewRing(ReplaceRing),
	}
}

// SetTopPattern pushes pat onto the search or replace ring as a new top
// entry and recompiles m against it, per spec.md §4.F's "search/replace
// ring recompilation via set_top_pattern": selecting an older ring entry
// for re-use must recompile the Match the same way a fresh search does.
func SetTopPattern(r *Ring, m *Match, pat string, flags MatchFlag, isReplace bool) error {
	r.Push(pat)
	if isReplace {
		return m.CompileReplace(pat)
	}
	return m.Compile(pat, flags)
}
