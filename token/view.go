package token

import "fmt"

// maxIdentifierDescribe is the byte length beyond which Describe
// truncates an identifier with an ellipsis (spec.md §4.1).
const maxIdentifierDescribe = 32

// View is a bounded, random-access window into an underlying token
// array. A View never owns its tokens; positions are offsets relative
// to the view's own base, translated back to the underlying array only
// for diagnostics. This lets the expression and statement parsers share
// one array while each working on a delimited sub-range (e.g. a call's
// argument list) without copying.
type View struct {
	tokens []Token
	base   int // offset into tokens where this view starts
	limit  int // number of tokens this view may consume, starting at base
}

// NewView creates a view over the full token array.
func NewView(tokens []Token) *View {
	return &View{tokens: tokens, base: 0, limit: len(tokens)}
}

// Sub creates a bounded child view starting at the given offset (within
// this view) and extending at most maxTokens further, clamped to this
// view's own remaining length. Used when a parser subroutine must not
// read past a known boundary (e.g. a bracketed sub-expression).
func (v *View) Sub(offset, maxTokens int) *View {
	remaining := v.limit - offset
	if maxTokens > remaining {
		maxTokens = remaining
	}
	if maxTokens < 0 {
		maxTokens = 0
	}
	return &View{tokens: v.tokens, base: v.base + offset, limit: maxTokens}
}

// Len reports how many tokens this view may consume.
func (v *View) Len() int {
	return v.limit
}

// inRange reports whether i addresses a real token in this view.
func (v *View) inRange(i int) bool {
	return i >= 0 && i < v.limit
}

// At returns the token at offset i, or the synthetic end-of-file token
// past the view's end.
func (v *View) At(i int) Token {
	if !v.inRange(i) {
		return v.eofToken()
	}
	return v.tokens[v.base+i]
}

func (v *View) eofToken() Token {
	line, col := v.lastRealPosition()
	return Token{Kind: EOF, Line: line, Column: col}
}

// lastRealPosition returns the line/column of the last real token this
// view can see, used to clamp past-end diagnostics (spec.md §3).
func (v *View) lastRealPosition() (int32, int32) {
	if v.limit == 0 {
		if v.base > 0 && v.base-1 < len(v.tokens) {
			last := v.tokens[v.base-1]
			return last.Line, last.Column
		}
		return 1, 1
	}
	last := v.tokens[v.base+v.limit-1]
	return last.Line, last.Column
}

// Line returns the 1-based source line of token i, clamped to the last
// real token when i is past the view's end (spec.md §4.1a).
func (v *View) Line(i int) int32 {
	if v.inRange(i) {
		return v.tokens[v.base+i].Line
	}
	line, _ := v.lastRealPosition()
	return line
}

// Column returns the 1-based source column of token i, clamped like
// Line.
func (v *View) Column(i int) int32 {
	if v.inRange(i) {
		return v.tokens[v.base+i].Column
	}
	_, col := v.lastRealPosition()
	return col
}

// Name returns the token-kind name of token i, or "end of file" past
// the view's end (spec.md §4.1b).
func (v *View) Name(i int) string {
	if !v.inRange(i) {
		return EOF.String()
	}
	return v.tokens[v.base+i].Kind.String()
}

// Describe produces a deterministic, human-readable snippet for token i,
// used in every diagnostic message (spec.md §4.1c):
//   - keywords are quoted
//   - identifiers longer than 32 bytes are truncated with an ellipsis
//   - operator symbols are printed in their canonical form
//   - integer literals are printed verbatim
func (v *View) Describe(i int) string {
	if !v.inRange(i) {
		return EOF.String()
	}
	tok := v.tokens[v.base+i]
	switch tok.Kind {
	case KEYWORD:
		return fmt.Sprintf("%q", tok.Payload.Str)
	case IDENTIFIER:
		name := tok.Payload.Str
		if len(name) > maxIdentifierDescribe {
			name = name[:maxIdentifierDescribe] + "..."
		}
		return name
	case BINOP, UNOP:
		return string(tok.Payload.Op)
	case INT:
		return fmt.Sprintf("%d", tok.Payload.Int)
	default:
		return tok.Lexeme()
	}
}

// ToUnderlying translates a view-relative offset into an index in the
// underlying token array, for components that must report positions
// against the original array (e.g. a project-wide message sink that
// outlives this view).
func (v *View) ToUnderlying(i int) int {
	return v.base + i
}
