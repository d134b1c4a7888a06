package main

// TokenKind classifies one lexical token (spec.md §4.G).
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokNil
	TokTrue
	TokFalse
	TokInt
	TokChar
	TokString
	TokIdent   // optionally '?'-suffixed query-function name
	TokGlobal  // $name or $N
	TokKeyword // one of the reserved statement words
	TokOp      // operator/punctuation, Str carries the exact spelling
)

// keywords is the closed set of statement/reserved words; anything else
// lexed as an identifier is just an identifier.
var keywords = map[string]bool{
	"if": true, "elsif": true, "else": true, "endif": true,
	"while": true, "until": true, "for": true, "in": true,
	"loop": true, "endloop": true, "break": true, "next": true,
	"return": true, "force": true, "macro": true, "endmacro": true,
	"constrain": true, "and": true, "or": true, "not": true, "defn": true,
}

// StringPart is one piece of a parsed double-quoted string: either a
// literal run of already-escape-processed bytes, or the raw source of a
// `#{ ... }` interpolated expression to be parsed and evaluated in its
// own "garbage scope" (spec.md §4.G).
type StringPart struct {
	Lit    string
	Expr   string // non-empty (including "" for `#{}`) iff this part is an interpolation
	IsExpr bool
}

// Token is one lexed unit. Int carries the value for TokInt/TokChar,
// Str carries the raw text for TokIdent/TokGlobal/TokOp/TokKeyword, and
// Parts carries the decoded/interpolated pieces for TokString.
type Token struct {
	Kind  TokenKind
	Str   string
	Int   int64
	Parts []StringPart
	Pos   int // byte offset in the source line, for error messages
}
