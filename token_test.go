package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLexerTokenStreams(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "assignment",
			src:  "x = 1",
			want: []Token{
				{Kind: TokIdent, Str: "x"},
				{Kind: TokOp, Str: "="},
				{Kind: TokInt, Str: "1", Int: 1},
				{Kind: TokEOF},
			},
		},
		{
			name: "global and comparison",
			src:  `$bufname == "a"`,
			want: []Token{
				{Kind: TokGlobal, Str: "$bufname"},
				{Kind: TokOp, Str: "=="},
				{Kind: TokString, Parts: []StringPart{{Lit: "a"}}},
				{Kind: TokEOF},
			},
		},
		{
			name: "keyword is not an identifier",
			src:  "while",
			want: []Token{
				{Kind: TokKeyword, Str: "while"},
				{Kind: TokEOF},
			},
		},
	}

	// Pos carries byte offsets that are incidental to this comparison;
	// ignore it so the cases above don't have to hand-compute them.
	ignorePos := cmpopts.IgnoreFields(Token{}, "Pos")

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("Tokenize(%q): %v", c.src, err)
			}
			if diff := cmp.Diff(c.want, got, ignorePos); diff != "" {
				t.Errorf("token stream mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
