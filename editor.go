package main

import "os"

// Editor owns every process-wide subsystem and is the concrete Caller
// that eval.go's Node.Eval calls into for every function/command/macro
// invocation (spec.md §4.H/§4.B), grounded on the teacher's single
// top-level state value threaded through its own step()/run() loop.
type Editor struct {
	Reg         *Registry
	Modes       *ModeTable
	GlobalModes *ModeSet
	Env         *Env
	Hooks       *HookTable
	Exec        *Executor
	Tracker     *Tracker

	CurBuf *Buffer
	Point  Point

	ScriptPath []string // directories searched for startup/library scripts

	aliasDepth int // guards against alias cycles in Call
}

// EditorOption configures a new Editor, following the teacher's
// functional-options construction pattern.
type EditorOption func(*Editor)

// WithWorkDir sets the editor's initial working directory.
func WithWorkDir(dir string) EditorOption {
	return func(e *Editor) { e.Env.WorkDir = dir }
}

// WithWordChars sets the initial $wordChars value.
func WithWordChars(chars string) EditorOption {
	return func(e *Editor) { e.Env.WordChars = chars }
}

// NewEditor constructs an Editor with a fresh registry, mode table, and
// hook table, an empty "unnamed" buffer as current, and applies opts.
func NewEditor(opts ...EditorOption) *Editor {
	env := &Env{WordChars: defaultWordChars}
	e := &Editor{
		Reg:         NewRegistry(),
		Modes:       NewModeTable(),
		GlobalModes: NewModeSet(),
		Env:         env,
		Hooks:       NewHookTable(),
		Tracker:     &Tracker{},
	}
	e.Exec = &Executor{Ed: e}
	env.Ed = e
	registerBuiltinModes(e.Modes)
	registerBuiltinCommands(e.Reg)

	buf, err := e.Reg.Create("unnamed", 0, nil)
	if err != nil {
		panic(err) // registry is empty; Create cannot fail here
	}
	e.CurBuf = buf
	e.Env.Buf = buf
	e.Env.Rings = NewRingSet()
	e.Env.SearchMatch = &Match{}
	e.Env.ReplaceMatch = &Match{}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

const defaultWordChars = "a-zA-Z0-9_"

// registerBuiltinModes seeds the mode table with the mutually-exclusive
// groups spec.md §4.C names (e.g. Overwrite/Replace editing modes).
func registerBuiltinModes(t *ModeTable) {
	t.Register(ModeSpec{Name: "overwrite", Description: "overwrite characters as typed", Flags: ModeUser, Group: "edit"})
	t.Register(ModeSpec{Name: "replace", Description: "replace characters as typed, extending at EOL", Flags: ModeUser, Group: "edit"})
	t.Register(ModeSpec{Name: "atomic", Description: "undo groups whole commands atomically", Flags: ModeUser})
	t.Register(ModeSpec{Name: "autosave", Description: "periodically save changed buffers", Flags: ModeGlobal})
	t.Register(ModeSpec{Name: "exact", Description: "case-sensitive search/replace", Flags: ModeGlobal | ModeUser, Group: "case"})
	t.Register(ModeSpec{Name: "ignore", Description: "case-insensitive search/replace", Flags: ModeGlobal | ModeUser, Group: "case"})
	t.Register(ModeSpec{Name: "safe", Description: "save files through a temp-file-then-rename sequence", Flags: ModeGlobal})
	t.Register(ModeSpec{Name: "bak", Description: "as safe, but preserve the prior file as name.bak", Flags: ModeGlobal})
	t.Register(ModeSpec{Name: "aterm", Description: "ensure saved files end in a line delimiter", Flags: ModeGlobal})
}

// CreateBuffer wraps Registry.Create, running the createBuf hook on the
// newly inserted buffer, per spec.md §4.B's "create(..., hook?)".
func (e *Editor) CreateBuffer(name string, flags BufFindFlag) (*Buffer, error) {
	b, err := e.Reg.Create(name, flags, nil)
	if err != nil {
		return nil, err
	}
	if _, st := e.Exec.exechook("createBuf", CallArgs{Args: []Value{StringValue(b.name)}}); st.Severity >= SevFailure {
		return b, st
	}
	return b, nil
}

// SwitchBuffer makes target the current buffer, running the exitBuf hook
// against the old current buffer and the enterBuf hook against target
// unless noHooks is set, per spec.md §4.B's "switch(target, no_hooks?)".
func (e *Editor) SwitchBuffer(target *Buffer, noHooks bool) error {
	if target == e.CurBuf {
		return nil
	}
	if !noHooks {
		if _, st := e.Exec.exechook("exitBuf", CallArgs{Args: []Value{StringValue(e.CurBuf.name)}}); st.Severity >= SevFailure {
			return st
		}
	}
	e.CurBuf = target
	e.Env.Buf = target
	if !noHooks {
		if _, st := e.Exec.exechook("enterBuf", CallArgs{Args: []Value{StringValue(target.name)}}); st.Severity >= SevFailure {
			return st
		}
	}
	return nil
}

// ChDir changes the editor's working directory and runs the chDir hook.
func (e *Editor) ChDir(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return WrapError(err)
	}
	e.Env.WorkDir = dir
	if _, st := e.Exec.exechook("chDir", CallArgs{Args: []Value{StringValue(dir)}}); st.Severity >= SevFailure {
		return st
	}
	return nil
}

// ActivateBuffer lazily reads a buffer's associated file on first use,
// per spec.md §4.B's "activate". A buffer with no filename, or already
// marked Active, is a no-op.
func (e *Editor) ActivateBuffer(b *Buffer) error {
	if b.has(BufActive) || b.filename == "" {
		return nil
	}
	if _, err := ReadFile(e, b, b.filename, false); err != nil {
		return err
	}
	b.set(BufActive)
	return nil
}

// Call implements eval.go's Caller: it resolves name in the registry's
// shared exec table and dispatches by kind, following aliases up to a
// small fixed depth to catch cycles.
func (e *Editor) Call(name string, args CallArgs) (Value, Status) {
	entry, ok := e.Reg.exec[name]
	if !ok {
		return Nil, ScriptErrorf("no such command, function, or macro %q", name)
	}
	return e.callEntry(entry, args)
}

func (e *Editor) callEntry(entry *ExecEntry, args CallArgs) (Value, Status) {
	switch entry.Kind {
	case ExecMacro:
		return e.Exec.Run(entry.Macro, args)
	case ExecAlias:
		e.aliasDepth++
		defer func() { e.aliasDepth-- }()
		if e.aliasDepth > 32 {
			return Nil, ScriptErrorf("alias cycle detected resolving %q", entry.Name)
		}
		target, ok := e.Reg.exec[entry.Alias]
		if !ok {
			return Nil, ScriptErrorf("alias %q: target %q not found", entry.Name, entry.Alias)
		}
		return e.callEntry(target, args)
	default: // ExecCommand, ExecFunction, ExecPseudoCommand
		if entry.Fn == nil {
			return Nil, ScriptErrorf("command %q is not implemented", entry.Name)
		}
		return entry.Fn(e, &args)
	}
}
