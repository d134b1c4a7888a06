package main

// ModeScopeFlag tags a mode spec's applicability/visibility (spec.md §4.C).
type ModeScopeFlag uint8

const (
	ModeGlobal ModeScopeFlag = 1 << iota
	ModeUser
	ModeHidden
	ModeLocked
	ModeInLine
)

// ModeSpec is a named mode: description, scope flags, and an optional
// group it belongs to.
type ModeSpec struct {
	Name        string
	Description string
	Flags       ModeScopeFlag
	Group       string // "" if not grouped
}

// ModeSet tracks which modes (by name) are enabled for a given scope
// (global, or one buffer); the mode specs and groups shared by all scopes
// live in ModeTable.
type ModeSet struct {
	enabled map[string]bool
}

// NewModeSet returns an empty mode set.
func NewModeSet() *ModeSet { return &ModeSet{enabled: map[string]bool{}} }

// ModeTable is the process-wide registry of mode specs, shared across all
// ModeSets (global and every buffer's).
type ModeTable struct {
	specs  map[string]*ModeSpec
	groups map[string][]string // group name -> member mode names, insertion order
}

// NewModeTable returns an empty mode table.
func NewModeTable() *ModeTable {
	return &ModeTable{specs: map[string]*ModeSpec{}, groups: map[string][]string{}}
}

// Register adds (or replaces) a mode spec.
func (t *ModeTable) Register(spec ModeSpec) {
	t.specs[spec.Name] = &spec
	if spec.Group != "" {
		for _, n := range t.groups[spec.Group] {
			if n == spec.Name {
				return
			}
		}
		t.groups[spec.Group] = append(t.groups[spec.Group], spec.Name)
	}
}

func (t *ModeTable) spec(name string) (*ModeSpec, bool) {
	s, ok := t.specs[name]
	return s, ok
}

// Enable turns on name within set, first disabling any other mode sharing
// its group (group-eviction, spec.md §4.C), and reports whether any other
// mode in the group was evicted (callers use this to decide whether
// windows showing the affected buffer need a mode-line redraw).
func (t *ModeTable) Enable(set *ModeSet, name string) (evicted []string, err error) {
	spec, ok := t.spec(name)
	if !ok {
		return nil, ScriptErrorf("unknown mode %q", name)
	}
	if spec.Group != "" {
		for _, other := range t.groups[spec.Group] {
			if other != name && set.enabled[other] {
				delete(set.enabled, other)
				evicted = append(evicted, other)
			}
		}
	}
	set.enabled[name] = true
	return evicted, nil
}

// Disable turns off name within set.
func (t *ModeTable) Disable(set *ModeSet, name string) {
	delete(set.enabled, name)
}

// Enabled reports whether name is on in set.
func (set *ModeSet) Enabled(name string) bool { return set.enabled[name] }

// Names returns the currently enabled mode names (for mode-line display).
func (set *ModeSet) Names() []string {
	names := make([]string, 0, len(set.enabled))
	for n := range set.enabled {
		names = append(names, n)
	}
	return names
}

// SetGroupExclusive enforces the group rule directly on a pair of flags,
// for callers (buffer-flag writers like Overwrite/Replace) that represent
// two mutually-exclusive states as BufferFlag bits rather than named modes:
// setting `want` always clears every other flag in `others`.
func SetGroupExclusive(b *Buffer, want BufferFlag, others ...BufferFlag) {
	for _, o := range others {
		if o != want {
			b.clearFlag(o)
		}
	}
	b.set(want)
}
