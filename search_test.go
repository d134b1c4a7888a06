package main

import "testing"

func TestParsePatternOptionsSuffix(t *testing.T) {
	cases := []struct {
		name       string
		pat        string
		wantText   string
		wantFlags  MatchFlag
		wantDouble bool
	}{
		{name: "no suffix", pat: "foo", wantText: "foo"},
		{name: "ignore-case suffix", pat: "foo:i", wantText: "foo", wantFlags: MatchIgnore},
		{name: "regexp suffix", pat: "foo:r", wantText: "foo", wantFlags: MatchRegexp},
		{name: "doubled colon demotes to literal", pat: "foo::bar", wantText: "foo:bar", wantDouble: true},
		{name: "conflicting flags disqualify suffix", pat: "foo:ie", wantText: "foo:ie"},
		{name: "unknown letter disqualifies suffix", pat: "foo:z", wantText: "foo:z"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			text, flags, doubled := ParsePatternOptions(c.pat)
			if text != c.wantText || flags != c.wantFlags || doubled != c.wantDouble {
				t.Errorf("ParsePatternOptions(%q) = (%q, %v, %v), want (%q, %v, %v)",
					c.pat, text, flags, doubled, c.wantText, c.wantFlags, c.wantDouble)
			}
		})
	}
}

func buildSearchBuffer() *Buffer {
	b := NewBuffer("scratch")
	b.AppendLine([]byte("hello world"))
	b.AppendLine([]byte("goodbye world"))
	return b
}

func TestMatchScanPlainTextForward(t *testing.T) {
	b := buildSearchBuffer()
	text, lineStarts, lines := linearize(b)

	var m Match
	if err := m.Compile("world", 0); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	start, end, ok := m.Scan(text, 0, 1)
	if !ok {
		t.Fatal("expected a match")
	}
	if got := string(text[start:end]); got != "world" {
		t.Errorf("matched text = %q, want %q", got, "world")
	}
	p := offsetToPoint(lineStarts, lines, start)
	if p.Line != lines[0] {
		t.Error("first match should land on the first line")
	}
}

func TestMatchScanPlainTextFindsSecondOccurrenceFromNextStart(t *testing.T) {
	b := buildSearchBuffer()
	text, lineStarts, lines := linearize(b)

	var m Match
	if err := m.Compile("world", 0); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	start1, end1, ok := m.Scan(text, 0, 1)
	if !ok {
		t.Fatal("expected a first match")
	}
	start2, _, ok := m.Scan(text, end1, 1)
	if !ok {
		t.Fatal("expected a second match")
	}
	if start2 <= start1 {
		t.Errorf("second match offset %d should be past the first match's end %d", start2, end1)
	}
	p := offsetToPoint(lineStarts, lines, start2)
	if p.Line != lines[1] {
		t.Error("second match should land on the second line")
	}
}

func TestMatchScanRegexpCapturesGroup(t *testing.T) {
	b := buildSearchBuffer()
	text, _, _ := linearize(b)

	var m Match
	if err := m.Compile("w(or)ld", MatchRegexp); err != nil {
		t.Fatalf("Compile: %v", err)
	}

	start, end, ok := m.Scan(text, 0, 1)
	if !ok {
		t.Fatal("expected a match")
	}
	if got := string(text[start:end]); got != "world" {
		t.Errorf("matched text = %q, want %q", got, "world")
	}
	if len(m.Groups) < 2 || m.Groups[1].Text != "or" {
		t.Errorf("group 1 = %+v, want Text %q", m.Groups[1], "or")
	}
}
