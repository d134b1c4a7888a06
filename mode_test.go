package main

import "testing"

func TestModeGroupEviction(t *testing.T) {
	table := NewModeTable()
	table.Register(ModeSpec{Name: "exact", Flags: ModeUser, Group: "case"})
	table.Register(ModeSpec{Name: "ignore", Flags: ModeUser, Group: "case"})
	set := NewModeSet()

	if _, err := table.Enable(set, "exact"); err != nil {
		t.Fatalf("enable exact: %v", err)
	}
	if !set.Enabled("exact") {
		t.Fatal("exact should be enabled")
	}

	evicted, err := table.Enable(set, "ignore")
	if err != nil {
		t.Fatalf("enable ignore: %v", err)
	}
	if set.Enabled("exact") {
		t.Error("enabling ignore should evict exact from the shared case group")
	}
	if !set.Enabled("ignore") {
		t.Error("ignore should be enabled")
	}
	if len(evicted) != 1 || evicted[0] != "exact" {
		t.Errorf("evicted = %v, want [exact]", evicted)
	}
}

func TestModeEnableUnknownNameErrors(t *testing.T) {
	table := NewModeTable()
	set := NewModeSet()
	if _, err := table.Enable(set, "nonexistent"); err == nil {
		t.Fatal("enabling an unregistered mode should error")
	}
}

func TestModeDisableIsIdempotent(t *testing.T) {
	table := NewModeTable()
	table.Register(ModeSpec{Name: "atomic", Flags: ModeUser})
	set := NewModeSet()
	table.Enable(set, "atomic")

	table.Disable(set, "atomic")
	if set.Enabled("atomic") {
		t.Fatal("atomic should be disabled")
	}
	table.Disable(set, "atomic") // second call on an already-disabled mode must not panic
}
