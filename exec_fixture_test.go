package main

import "testing"

// scriptCase builds a one-shot macro script and states what running it
// should produce. Its with*/expect* methods are scanned by
// scripts/gengolden.go to generate free-function combinators in
// exec_fixture_gen_test.go — the same role the teacher's own dev tool
// plays for its vmTestCase builder, aimed at this engine's script
// executor instead of a VM.
type scriptCase struct {
	name    string
	lines   []string
	args    []Value
	wantVal Value
	wantSev Severity
}

func newScriptCase(name string) scriptCase {
	return scriptCase{name: name, wantSev: SevSuccess}
}

// withLine appends a line of script source to the case.
func (sc scriptCase) withLine(line string) scriptCase {
	sc.lines = append(append([]string{}, sc.lines...), line)
	return sc
}

// withArg appends a positional argument, bound to $1, $2, ... in order.
func (sc scriptCase) withArg(v Value) scriptCase {
	sc.args = append(append([]Value{}, sc.args...), v)
	return sc
}

// expectValue states the macro's expected return value.
func (sc scriptCase) expectValue(v Value) scriptCase {
	sc.wantVal = v
	return sc
}

// expectSeverity states the expected status severity.
func (sc scriptCase) expectSeverity(sev Severity) scriptCase {
	sc.wantSev = sev
	return sc
}

// apply folds a sequence of combinators (typically the generated
// with*/expect* free functions) over the case.
func (sc scriptCase) apply(opts ...func(scriptCase) scriptCase) scriptCase {
	for _, opt := range opts {
		sc = opt(sc)
	}
	return sc
}

// run executes the case's script against a fresh Editor and asserts its
// return value (when a Success is expected) and status severity.
func (sc scriptCase) run(t *testing.T) {
	t.Helper()
	ed := NewEditor()
	b, err := ed.Reg.Create(string(MacroSigil)+"case", FindForceUnique, nil)
	if err != nil {
		t.Fatalf("%s: create macro buffer: %v", sc.name, err)
	}
	for _, ln := range sc.lines {
		b.AppendLine([]byte(ln))
	}
	got, st := ed.Exec.Run(b, CallArgs{Args: sc.args})
	if st.Severity != sc.wantSev {
		t.Fatalf("%s: severity = %v, want %v (message: %s)", sc.name, st.Severity, sc.wantSev, st.Message)
	}
	if sc.wantSev == SevSuccess && got != sc.wantVal {
		t.Fatalf("%s: value = %#v, want %#v", sc.name, got, sc.wantVal)
	}
}
