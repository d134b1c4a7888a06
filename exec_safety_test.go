package main

import "testing"

// TestMacroSelfRecursionHitsDepthCeiling exercises the MaxMacroDepth guard:
// a macro that calls itself unconditionally must fail with a ScriptError
// status well before the Go call stack overflows, instead of crashing the
// process.
func TestMacroSelfRecursionHitsDepthCeiling(t *testing.T) {
	ed := NewEditor()
	b, err := ed.Reg.Create(string(MacroSigil)+"recur", FindForceUnique, nil)
	if err != nil {
		t.Fatalf("create macro buffer: %v", err)
	}
	b.AppendLine([]byte("recur()"))

	_, st := ed.Exec.Run(b, CallArgs{})
	if st.Severity < SevFailure {
		t.Fatalf("severity = %v, want at least SevFailure", st.Severity)
	}
	if ed.Exec.depth != 0 {
		t.Fatalf("depth = %d after unwind, want 0", ed.Exec.depth)
	}
}

// TestMacroPanicDegradesToSevPanic checks that a panic inside a macro's
// expression evaluation is recovered as a SevPanic status rather than
// crashing the test binary.
func TestMacroPanicDegradesToSevPanic(t *testing.T) {
	ed := NewEditor()
	b, err := ed.Reg.Create(string(MacroSigil)+"boom", FindForceUnique, nil)
	if err != nil {
		t.Fatalf("create macro buffer: %v", err)
	}
	b.AppendLine([]byte("panicking_builtin()"))

	ed.Reg.exec["panicking_builtin"] = &ExecEntry{
		Name: "panicking_builtin",
		Kind: ExecCommand,
		Fn: func(e *Editor, args *CallArgs) (Value, Status) {
			panic("boom")
		},
	}

	_, st := ed.Exec.Run(b, CallArgs{})
	if st.Severity != SevPanic {
		t.Fatalf("severity = %v, want SevPanic (message: %s)", st.Severity, st.Message)
	}
}
