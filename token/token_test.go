package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{EOF, "end of file"},
		{IDENTIFIER, "identifier"},
		{INT, "integer literal"},
		{MAPARROW, "'=>'"},
		{Kind(999), "unknown token"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestLexeme(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"identifier", Make(IDENTIFIER, 1, 1, Payload{Str: "foo"}), "foo"},
		{"string", Make(STRING, 1, 1, Payload{Str: "hi"}), `"hi"`},
		{"int", Make(INT, 1, 1, Payload{Int: 42}), "42"},
		{"float", Make(FLOAT, 1, 1, Payload{Float: 1.5}), "1.5"},
		{"bool true", Make(BOOL, 1, 1, Payload{Bool: true}), "true"},
		{"bool false", Make(BOOL, 1, 1, Payload{Bool: false}), "false"},
		{"none", Make(NONE, 1, 1, Payload{}), "none"},
		{"comma", Make(COMMA, 1, 1, Payload{}), ","},
		{"maparrow", Make(MAPARROW, 1, 1, Payload{}), "=>"},
		{"binop", Make(BINOP, 1, 1, Payload{Op: OpAdd}), "+"},
		{"eof", Make(EOF, 1, 1, Payload{}), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.Lexeme(); got != tt.want {
				t.Errorf("Lexeme() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestViewAtPastEndReturnsEOF(t *testing.T) {
	toks := []Token{Make(IDENTIFIER, 1, 1, Payload{Str: "x"})}
	v := NewView(toks)
	got := v.At(5)
	if got.Kind != EOF {
		t.Fatalf("At(past end) kind = %v, want EOF", got.Kind)
	}
	if got.Line != 1 || got.Column != 1 {
		t.Errorf("At(past end) position = %d:%d, want clamped to last real token 1:1", got.Line, got.Column)
	}
}

func TestViewSubClampsToRemaining(t *testing.T) {
	toks := []Token{
		Make(IDENTIFIER, 1, 1, Payload{Str: "a"}),
		Make(IDENTIFIER, 1, 2, Payload{Str: "b"}),
		Make(IDENTIFIER, 1, 3, Payload{Str: "c"}),
	}
	v := NewView(toks)
	sub := v.Sub(1, 100)
	if sub.Len() != 2 {
		t.Fatalf("Sub(1, 100).Len() = %d, want 2", sub.Len())
	}
	if sub.At(0).Payload.Str != "b" {
		t.Errorf("sub.At(0) = %q, want %q", sub.At(0).Payload.Str, "b")
	}
}

func TestViewDescribeTruncatesLongIdentifiers(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "a"
	}
	toks := []Token{Make(IDENTIFIER, 1, 1, Payload{Str: long})}
	v := NewView(toks)
	got := v.Describe(0)
	want := long[:maxIdentifierDescribe] + "..."
	if got != want {
		t.Errorf("Describe(long identifier) = %q, want %q", got, want)
	}
}

func TestViewDescribeQuotesKeywords(t *testing.T) {
	toks := []Token{Make(KEYWORD, 1, 1, Payload{Str: "var"})}
	v := NewView(toks)
	if got := v.Describe(0); got != `"var"` {
		t.Errorf("Describe(keyword) = %q, want %q", got, `"var"`)
	}
}

func TestViewToUnderlying(t *testing.T) {
	toks := make([]Token, 5)
	v := NewView(toks)
	sub := v.Sub(2, 2)
	if got := sub.ToUnderlying(1); got != 3 {
		t.Errorf("ToUnderlying(1) on a view based at 2 = %d, want 3", got)
	}
}
