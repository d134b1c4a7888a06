package main

import "testing"

func TestBufnameWriteDispatchesThroughRenameCommand(t *testing.T) {
	ed := NewEditor()
	vt := NewVarTable(ed.Env)

	ref, err := vt.FindVar("$bufname", true)
	if err != nil {
		t.Fatalf("FindVar($bufname): %v", err)
	}
	if err := ref.Set(StringValue("scratch")); err != nil {
		t.Fatalf("set $bufname: %v", err)
	}

	if got := ed.CurBuf.name; got != "scratch" {
		t.Errorf("current buffer name = %q, want %q", got, "scratch")
	}

	got, err := ref.Get()
	if err != nil {
		t.Fatalf("get $bufname: %v", err)
	}
	if want := StringValue("scratch"); got != want {
		t.Errorf("$bufname = %#v, want %#v", got, want)
	}
}

func TestRenameCollisionIsRejected(t *testing.T) {
	ed := NewEditor()
	other, err := ed.Reg.Create("taken", 0, nil)
	if err != nil {
		t.Fatalf("create %q: %v", "taken", err)
	}
	_ = other

	_, st := ed.Call("rename", CallArgs{Args: []Value{StringValue("taken")}})
	if st.IsOK() {
		t.Fatal("renaming onto an existing buffer name should fail")
	}
	if ed.CurBuf.name == "taken" {
		t.Error("current buffer should keep its original name after a rejected rename")
	}
}
