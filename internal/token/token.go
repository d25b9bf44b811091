// Package token defines the lexical vocabulary produced by the lexer:
// token kinds, spans, and the source-buffer line index used to translate
// byte offsets into line/column positions.
package token

// Kind identifies the lexical category of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	ENDMARKER

	NEWLINE
	INDENT
	DEDENT
	COMMENT

	IDENT
	NUMBER
	STRING  // single/double/triple quoted, any prefix combination except f-strings
	FSTRING // f-string literal; span covers the whole literal, content is opaque

	// keywords
	keywordBeg
	DEF
	CLASS
	IF
	ELIF
	ELSE
	FOR
	WHILE
	WITH
	TRY
	EXCEPT
	FINALLY
	RETURN
	RAISE
	BREAK
	CONTINUE
	PASS
	IMPORT
	FROM
	AS
	GLOBAL
	NONLOCAL
	DEL
	LAMBDA
	YIELD
	ASYNC
	AWAIT
	MATCH
	CASE
	AND
	OR
	NOT
	IN
	IS
	NONE
	TRUE
	FALSE
	keywordEnd

	// punctuation / operators
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LBRACE
	RBRACE
	COMMA
	COLON
	SEMI
	DOT
	ELLIPSIS
	ASSIGN     // =
	AUGASSIGN  // +=, -=, ...
	WALRUS     // :=
	ARROW      // ->
	AT         // @ (decorator)
	STAR       // *
	DOUBLESTAR // **
	OP         // catch-all binary/unary operator (+, -, /, %, comparisons, ~, etc.)
)

var keywords = map[string]Kind{
	"def": DEF, "class": CLASS, "if": IF, "elif": ELIF, "else": ELSE,
	"for": FOR, "while": WHILE, "with": WITH, "try": TRY, "except": EXCEPT,
	"finally": FINALLY, "return": RETURN, "raise": RAISE, "break": BREAK,
	"continue": CONTINUE, "pass": PASS, "import": IMPORT, "from": FROM,
	"as": AS, "global": GLOBAL, "nonlocal": NONLOCAL, "del": DEL,
	"lambda": LAMBDA, "yield": YIELD, "async": ASYNC, "await": AWAIT,
	"match": MATCH, "case": CASE, "and": AND, "or": OR, "not": NOT,
	"in": IN, "is": IS, "None": NONE, "True": TRUE, "False": FALSE,
}

// Lookup returns the keyword Kind for text, or IDENT if text is not a keyword.
func Lookup(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return IDENT
}

func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL", ENDMARKER: "ENDMARKER", NEWLINE: "NEWLINE",
	INDENT: "INDENT", DEDENT: "DEDENT", COMMENT: "COMMENT",
	IDENT: "IDENT", NUMBER: "NUMBER", STRING: "STRING", FSTRING: "FSTRING",
	LPAREN: "(", RPAREN: ")", LBRACK: "[", RBRACK: "]", LBRACE: "{", RBRACE: "}",
	COMMA: ",", COLON: ":", SEMI: ";", DOT: ".", ELLIPSIS: "...",
	ASSIGN: "=", AUGASSIGN: "AUGASSIGN", WALRUS: ":=", ARROW: "->", AT: "@",
	STAR: "*", DOUBLESTAR: "**", OP: "OP",
}

// Span is a half-open byte range [Start, End) into a Buffer.
type Span struct {
	Start int
	End   int
}

// StringFlags records which prefix combination produced a STRING/FSTRING token.
type StringFlags struct {
	Raw    bool
	Byte   bool
	FString bool
}

// Token is a single lexical unit: a kind plus its span. Identifier and
// literal text is never copied onto the token; callers slice the owning
// Buffer's bytes using Span.
type Token struct {
	Kind  Kind
	Span  Span
	Flags StringFlags // meaningful only for STRING/FSTRING
}

// Text returns the token's source text by slicing buf.
func (t Token) Text(buf []byte) string {
	if t.Span.Start < 0 || t.Span.End > len(buf) || t.Span.Start > t.Span.End {
		return ""
	}
	return string(buf[t.Span.Start:t.Span.End])
}
