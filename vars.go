package main

import (
	"strconv"
	"strings"

	"mightemacs/internal/keycode"
)

// Scope is one frame of local-variable bindings (a running macro's local
// variables), chained to its caller's scope so nested macro calls each
// get their own locals without seeing the caller's, per spec.md §4.I.
type Scope struct {
	vars   map[string]Value
	parent *Scope
}

// NewScope returns a fresh, empty scope chained to parent (nil for the
// outermost/top-level scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]Value{}, parent: parent}
}

func (s *Scope) lookup(name string) (Value, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.vars[name]; ok {
			return v, true
		}
	}
	return Nil, false
}

// sysVar is one entry in the closed system-variable table: a name, a
// read-only flag, and getter/setter callbacks bound to live Editor state.
type sysVar struct {
	name     string
	readOnly bool
	get      func(e *Env) (Value, error)
	set      func(e *Env, v Value) error
}

// Env is the live state system variables read and write: the current
// buffer, the active search/replace records, the ring set, and the
// handful of scalar knobs spec.md §4.I's "Supplemented Features" list
// names. The script executor (component K) constructs and threads one
// of these per running instance.
type Env struct {
	Ed           *Editor // backs sysvar writers that dispatch through a builtin command (e.g. $bufname -> the rename command)
	Buf          *Buffer
	SearchMatch  *Match
	ReplaceMatch *Match
	Rings        *RingSet
	AutoSave     bool
	WordChars    string
	WorkDir      string
	KeyMacro     string
	Recording    bool
	LastKeySeq   string
	NiLevel      int
	ReturnMsg    string
}

// VarTable implements VarHost (eval.go's resolution contract): it
// dispatches a name to system variables, user globals, macro positional
// arguments, or the current local scope, per findvar's rules in spec.md
// §4.I.
type VarTable struct {
	Env     *Env
	Globals map[string]Value
	Locals  *Scope
	Args    []Value // current macro's positional arguments; Args[0] is $1 ($0, the n-arg value, comes from HaveN/N)
	HaveN   bool
	N       int64
}

// NewVarTable constructs a table bound to env with an empty global map
// and a fresh top-level scope.
func NewVarTable(env *Env) *VarTable {
	return &VarTable{Env: env, Globals: map[string]Value{}, Locals: NewScope(nil)}
}

var sysVars = map[string]*sysVar{}

// RegisterSysVar adds (or replaces) a system variable definition. Called
// from package init() below for the fixed set, and available to tests
// that want to stub variables.
func RegisterSysVar(v sysVar) { sysVars[v.name] = &v }

func init() {
	RegisterSysVar(sysVar{name: "bufname", get: func(e *Env) (Value, error) {
		if e.Buf == nil {
			return StringValue(""), nil
		}
		return StringValue(e.Buf.name), nil
	}, set: func(e *Env, v Value) error {
		if e.Buf == nil || e.Ed == nil {
			return ScriptErrorf("no current buffer")
		}
		_, st := e.Ed.Call("rename", CallArgs{Args: []Value{v}})
		if st.Severity >= SevFailure {
			return st
		}
		return nil
	}})
	RegisterSysVar(sysVar{name: "bufFile", get: func(e *Env) (Value, error) {
		if e.Buf == nil {
			return StringValue(""), nil
		}
		return StringValue(e.Buf.filename), nil
	}, set: func(e *Env, v Value) error {
		if e.Buf == nil {
			return ScriptErrorf("no current buffer")
		}
		e.Buf.filename = v.CoerceStr()
		return nil
	}})
	RegisterSysVar(sysVar{name: "autoSave", get: func(e *Env) (Value, error) {
		return BoolValue(e.AutoSave), nil
	}, set: func(e *Env, v Value) error {
		e.AutoSave = v.CoerceBool()
		return nil
	}})
	RegisterSysVar(sysVar{name: "searchPat", get: func(e *Env) (Value, error) {
		if e.SearchMatch == nil {
			return StringValue(""), nil
		}
		return StringValue(e.SearchMatch.Pattern), nil
	}, set: func(e *Env, v Value) error {
		if e.SearchMatch == nil {
			return ScriptErrorf("no search record")
		}
		return e.SearchMatch.Compile(v.CoerceStr(), e.SearchMatch.Flags)
	}})
	RegisterSysVar(sysVar{name: "replacePat", get: func(e *Env) (Value, error) {
		if e.ReplaceMatch == nil {
			return StringValue(""), nil
		}
		return StringValue(e.ReplaceMatch.ReplacePat), nil
	}, set: func(e *Env, v Value) error {
		if e.ReplaceMatch == nil {
			return ScriptErrorf("no replace record")
		}
		return e.ReplaceMatch.CompileReplace(v.CoerceStr())
	}})
	RegisterSysVar(sysVar{name: "keyMacro", get: func(e *Env) (Value, error) {
		return StringValue(e.KeyMacro), nil
	}, set: func(e *Env, v Value) error {
		// Recording forbids reassignment outright; there is no separate
		// "playing" flag in this non-interactive build (no terminal driver
		// replays keystrokes here), so recording is the only guard we have.
		if e.Recording {
			return ScriptErrorf("cannot assign $keyMacro while recording")
		}
		fields := strings.Fields(v.CoerceStr())
		toks := make([]string, len(fields))
		for i, f := range fields {
			c, err := keycode.Stoek(f)
			if err != nil {
				return ScriptErrorf("invalid key token %q: %v", f, err)
			}
			toks[i] = keycode.Ektos(c)
		}
		e.KeyMacro = strings.Join(toks, " ")
		return nil
	}})
	RegisterSysVar(sysVar{name: "wordChars", get: func(e *Env) (Value, error) {
		return StringValue(e.WordChars), nil
	}, set: func(e *Env, v Value) error {
		e.WordChars = v.CoerceStr()
		return nil
	}})
	RegisterSysVar(sysVar{name: "workDir", get: func(e *Env) (Value, error) {
		return StringValue(e.WorkDir), nil
	}, set: func(e *Env, v Value) error {
		e.WorkDir = v.CoerceStr()
		return nil
	}})
	RegisterSysVar(sysVar{name: "lineText", get: func(e *Env) (Value, error) {
		return StringValue(""), nil
	}, set: func(e *Env, v Value) error {
		return nil // not connected to the current line: reads give "" and writes are discarded
	}})
	RegisterSysVar(sysVar{name: "lineChar", readOnly: true, get: func(e *Env) (Value, error) {
		return Nil, nil
	}})
	RegisterSysVar(sysVar{name: "lineOffset", readOnly: true, get: func(e *Env) (Value, error) {
		return IntValue(0), nil
	}})
	RegisterSysVar(sysVar{name: "lineNum", readOnly: true, get: func(e *Env) (Value, error) {
		return IntValue(0), nil
	}})
	RegisterSysVar(sysVar{name: "bufLineNum", readOnly: true, get: func(e *Env) (Value, error) {
		return IntValue(0), nil
	}})
	RegisterSysVar(sysVar{name: "lastKeySeq", readOnly: true, get: func(e *Env) (Value, error) {
		return StringValue(e.LastKeySeq), nil
	}})
	RegisterSysVar(sysVar{name: "niLevel", readOnly: true, get: func(e *Env) (Value, error) {
		return IntValue(int64(e.NiLevel)), nil
	}})
	RegisterSysVar(sysVar{name: "returnMsg", readOnly: true, get: func(e *Env) (Value, error) {
		return StringValue(e.ReturnMsg), nil
	}})
}

// FindVar implements VarHost, per spec.md §4.I's findvar: `$N` binds to a
// positional macro argument (0 == the n-arg value), `$name` checks the
// system table then falls back to a user global, and a bare identifier
// is always a local.
func (t *VarTable) FindVar(name string, forWrite bool) (VarRef, error) {
	if name == "$$" {
		return VarRef{}, ScriptErrorf("$$ is reserved")
	}
	if len(name) > 0 && name[0] == '$' {
		rest := name[1:]
		if n, err := strconv.Atoi(rest); err == nil {
			return t.argRef(n)
		}
		if sv, ok := sysVars[rest]; ok {
			return t.sysRef(sv)
		}
		return t.globalRef(rest), nil
	}
	return t.localRef(name, forWrite), nil
}

func (t *VarTable) argRef(n int) (VarRef, error) {
	if n == 0 {
		nArg := int64(NArgSentinel)
		if t.HaveN {
			nArg = t.N
		}
		return VarRef{Kind: VarMacroArg,
			Get: func() (Value, error) { return IntValue(nArg), nil },
			Set: func(Value) error { return ScriptErrorf("$0 is read-only") },
		}, nil
	}
	i := n - 1
	return VarRef{Kind: VarMacroArg,
		Get: func() (Value, error) {
			if i < 0 || i >= len(t.Args) {
				return Nil, nil
			}
			return t.Args[i], nil
		},
		Set: func(Value) error { return ScriptErrorf("macro argument $%d is read-only", n) },
	}, nil
}

func (t *VarTable) sysRef(sv *sysVar) (VarRef, error) {
	return VarRef{Kind: VarSystem,
		Get: func() (Value, error) { return sv.get(t.Env) },
		Set: func(v Value) error {
			if sv.readOnly || sv.set == nil {
				return ScriptErrorf("$%s is read-only", sv.name)
			}
			return sv.set(t.Env, v)
		},
	}, nil
}

func (t *VarTable) globalRef(name string) VarRef {
	return VarRef{Kind: VarGlobal,
		Get: func() (Value, error) {
			if v, ok := t.Globals[name]; ok {
				return v, nil
			}
			return Nil, nil
		},
		Set: func(v Value) error {
			t.Globals[name] = v
			return nil
		},
	}
}

func (t *VarTable) localRef(name string, forWrite bool) VarRef {
	return VarRef{Kind: VarLocal,
		Get: func() (Value, error) {
			if v, ok := t.Locals.lookup(name); ok {
				return v, nil
			}
			return Nil, ScriptErrorf("undefined variable %q", name)
		},
		Set: func(v Value) error {
			t.Locals.vars[name] = v
			return nil
		},
	}
}
