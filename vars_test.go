package main

import "testing"

func TestKeyMacroAssignmentNormalizesThroughKeycode(t *testing.T) {
	ed := NewEditor()
	vt := NewVarTable(ed.Env)

	ref, err := vt.FindVar("$keyMacro", true)
	if err != nil {
		t.Fatalf("FindVar($keyMacro): %v", err)
	}
	if err := ref.Set(StringValue("C-x C-s")); err != nil {
		t.Fatalf("set $keyMacro: %v", err)
	}

	got, err := ref.Get()
	if err != nil {
		t.Fatalf("get $keyMacro: %v", err)
	}
	if want := StringValue("^X ^S"); got != want {
		t.Errorf("$keyMacro = %#v, want %#v (C0 controls round-trip through their caret form)", got, want)
	}
}

func TestKeyMacroAssignmentRejectsInvalidToken(t *testing.T) {
	ed := NewEditor()
	vt := NewVarTable(ed.Env)

	ref, err := vt.FindVar("$keyMacro", true)
	if err != nil {
		t.Fatalf("FindVar($keyMacro): %v", err)
	}
	if err := ref.Set(StringValue("not a key")); err == nil {
		t.Fatal("expected an error assigning a malformed key token")
	}
}

func TestKeyMacroAssignmentForbiddenWhileRecording(t *testing.T) {
	ed := NewEditor()
	ed.Env.Recording = true
	vt := NewVarTable(ed.Env)

	ref, err := vt.FindVar("$keyMacro", true)
	if err != nil {
		t.Fatalf("FindVar($keyMacro): %v", err)
	}
	if err := ref.Set(StringValue("C-x")); err == nil {
		t.Fatal("expected an error assigning $keyMacro while recording")
	}
}
