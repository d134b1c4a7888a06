package main

// HookNames lists the editor-internal callback points spec.md §4.K names:
// each is a named slot that may be bound to a constrained macro.
var HookNames = []string{
	"createBuf", "chDir", "enterBuf", "exitBuf", "help", "mode",
	"postKey", "preKey", "read", "filename", "wrap", "write",
}

func isHookName(name string) bool {
	for _, n := range HookNames {
		if n == name {
			return true
		}
	}
	return false
}

// HookTable is the editor's named-slot-to-macro binding set. A nil entry
// (or an absent one) means the hook is unbound; exechook on an unbound
// hook is a silent no-op.
type HookTable struct {
	slots map[string]*Buffer
}

// NewHookTable returns an empty table with every defined slot present
// and unbound.
func NewHookTable() *HookTable {
	t := &HookTable{slots: map[string]*Buffer{}}
	for _, n := range HookNames {
		t.slots[n] = nil
	}
	return t
}

// SetHook binds name to macro, which must be a constrained macro buffer
// (BufConstrain), so that arbitrary unconstrained scripts can't end up
// wired to an editor-internal callback by accident.
func (t *HookTable) SetHook(name string, macro *Buffer) error {
	if !isHookName(name) {
		return ScriptErrorf("unknown hook %q", name)
	}
	if macro != nil && !macro.has(BufConstrain) {
		return ScriptErrorf("buffer %q is not a constrained macro and cannot be bound to a hook", macro.name)
	}
	t.slots[name] = macro
	return nil
}

// ClearHook unbinds name.
func (t *HookTable) ClearHook(name string) { t.slots[name] = nil }

// Macro returns the macro currently bound to name, or nil if unbound.
func (t *HookTable) Macro(name string) *Buffer { return t.slots[name] }

// exechook runs the macro bound to hook with args through Executor.Run
// (no command line is built); on a Failure-or-worse result the hook is
// disabled and the message names it. A running hook cannot invoke
// itself — the bound macro's own nexec depth is the guard, matching the
// same reentrancy check buffer renaming/deletion already uses elsewhere.
func (ex *Executor) exechook(hookName string, args CallArgs) (Value, Status) {
	t := ex.Ed.Hooks
	macro := t.Macro(hookName)
	if macro == nil {
		return Nil, OK
	}
	if macro.macro != nil && macro.macro.NExec > 0 {
		return Nil, ScriptErrorf("hook %q: already running (self-recursion)", hookName)
	}
	v, st := ex.Run(macro, args)
	if st.Severity >= SevFailure {
		t.ClearHook(hookName)
		st.Message = "hook '" + hookName + "' disabled: " + st.Message
		st.Flags |= FlagMsgSet
		return Nil, st
	}
	return v, st
}
