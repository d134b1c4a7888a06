package main

import (
	"fmt"
	"sort"
	"strings"
)

// BufFindFlag controls Registry.Find/Create semantics.
type BufFindFlag uint8

const (
	FindCreate BufFindFlag = 1 << iota // create if not found
	FindForceUnique
)

// ExecKind tags what an identifier resolves to in the shared exec table
// (spec.md §4.B: "command | function | pseudo-command | macro | alias of
// each").
type ExecKind uint8

const (
	ExecCommand ExecKind = iota
	ExecFunction
	ExecPseudoCommand
	ExecMacro
	ExecAlias
)

// ExecEntry is one binding in the exec table.
type ExecEntry struct {
	Name  string
	Kind  ExecKind
	Macro *Buffer                                  // set when Kind == ExecMacro or an alias of one
	Fn    func(*Editor, *CallArgs) (Value, Status) // set for commands/functions/pseudo-commands
	Alias string                                   // target name, when Kind == ExecAlias
}

// Registry is the ordered, name-keyed buffer registry plus the shared exec
// table, matching spec.md §4.B's "ordered array keyed by name (binary
// search)" plus "macro buffers are additionally registered in the shared
// exec table".
type Registry struct {
	buffers []*Buffer // kept sorted by name
	exec    map[string]*ExecEntry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{exec: map[string]*ExecEntry{}}
}

func (r *Registry) search(name string) (int, bool) {
	i := sort.Search(len(r.buffers), func(i int) bool { return r.buffers[i].name >= name })
	return i, i < len(r.buffers) && r.buffers[i].name == name
}

// Find looks up a buffer by exact name.
func (r *Registry) Find(name string) (*Buffer, bool) {
	i, ok := r.search(name)
	if !ok {
		return nil, false
	}
	return r.buffers[i], true
}

// Create inserts a new buffer named name (optionally force-uniquified) and
// registers it if it is a macro buffer. hook, if non-nil, runs after
// insertion (the createBuf hook dispatch point of spec.md §4.K).
func (r *Registry) Create(name string, flags BufFindFlag, hook func(*Buffer)) (*Buffer, error) {
	if strings.HasPrefix(name, string(MacroSigil)) && !isValidIdent(strings.TrimPrefix(name, string(MacroSigil))) {
		return nil, ScriptErrorf("invalid macro name %q", name)
	}
	final := name
	if flags&FindForceUnique != 0 {
		final = r.uniquify(name)
	} else if _, exists := r.search(name); exists {
		return nil, ScriptErrorf("buffer %q already exists", name)
	}

	b := NewBuffer(final)
	i, _ := r.search(final)
	r.buffers = append(r.buffers, nil)
	copy(r.buffers[i+1:], r.buffers[i:])
	r.buffers[i] = b

	if b.has(BufMacro) {
		r.exec[strings.TrimPrefix(final, string(MacroSigil))] = &ExecEntry{Name: final, Kind: ExecMacro, Macro: b}
	}
	if hook != nil {
		hook(b)
	}
	return b, nil
}

// uniquify implements the rename-auto-uniquification rule of spec.md
// §4.B: strip trailing digits, add one, retry until unused.
func (r *Registry) uniquify(name string) string {
	base := strings.TrimRight(name, "0123456789")
	n := 1
	if base != name {
		fmt.Sscanf(name[len(base):], "%d", &n)
		n++
	}
	for {
		cand := name
		if _, exists := r.search(cand); !exists {
			return cand
		}
		cand = fmt.Sprintf("%s%d", base, n)
		if _, exists := r.search(cand); !exists {
			return cand
		}
		n++
	}
}

// Delete removes b from the registry, honoring the preconditions of
// spec.md §4.B.
func (r *Registry) Delete(b *Buffer, force bool) error {
	if b.nwind > 0 {
		return ScriptErrorf("buffer %q is displayed in a window", b.name)
	}
	if b.macro != nil && b.macro.NExec > 0 {
		return ScriptErrorf("buffer %q is executing", b.name)
	}
	for _, e := range r.exec {
		if e.Kind == ExecAlias && e.Macro == b {
			return ScriptErrorf("buffer %q is bound to a hook or alias", b.name)
		}
	}
	i, ok := r.search(b.name)
	if !ok {
		return ScriptErrorf("buffer %q not found", b.name)
	}
	r.buffers = append(r.buffers[:i], r.buffers[i+1:]...)
	delete(r.exec, strings.TrimPrefix(b.name, string(MacroSigil)))
	return nil
}

// Rename renames b, auto-uniquifying if requested is "".
func (r *Registry) Rename(b *Buffer, requested string) error {
	if b.macro != nil && b.macro.NExec > 0 {
		return ScriptErrorf("buffer %q is executing", b.name)
	}
	i, ok := r.search(b.name)
	if !ok {
		return ScriptErrorf("buffer %q not found", b.name)
	}
	name := requested
	if name == "" {
		name = r.uniquify(b.name)
	}
	r.buffers = append(r.buffers[:i], r.buffers[i+1:]...)

	if _, exists := r.search(name); exists {
		// restore and fail
		j, _ := r.search(b.name)
		r.buffers = append(r.buffers, nil)
		copy(r.buffers[j+1:], r.buffers[j:])
		r.buffers[j] = b
		return ScriptErrorf("buffer %q already exists", name)
	}

	delete(r.exec, strings.TrimPrefix(b.name, string(MacroSigil)))
	b.name = name
	j, _ := r.search(name)
	r.buffers = append(r.buffers, nil)
	copy(r.buffers[j+1:], r.buffers[j:])
	r.buffers[j] = b
	if b.has(BufMacro) {
		r.exec[strings.TrimPrefix(name, string(MacroSigil))] = &ExecEntry{Name: name, Kind: ExecMacro, Macro: b}
	}
	return nil
}

// DeriveBufferName replaces a leading space or macro sigil in a
// filename-derived buffer name with an alternate character and strips
// trailing whitespace, per spec.md §4.B.
func DeriveBufferName(filename string) string {
	base := filename
	if i := strings.LastIndexByte(filename, '/'); i >= 0 {
		base = filename[i+1:]
	}
	base = strings.TrimRight(base, " \t")
	if len(base) > 0 && (base[0] == ' ' || rune(base[0]) == MacroSigil) {
		base = "_" + base[1:]
	}
	return base
}

func isValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
