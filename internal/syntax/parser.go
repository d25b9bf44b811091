package syntax

import (
	"fmt"

	"github.com/taradepan/reaper/internal/token"
)

// ParseError is a recoverable syntax error recorded while parsing; the
// parser resynchronizes at the next statement boundary and keeps building
// whatever tree it can, per spec §4.2 and §7.
type ParseError struct {
	Span    token.Span
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Parser is a single-pass, non-backtracking recursive-descent parser over
// one file's token stream.
type Parser struct {
	buf    *token.Buffer
	toks   []token.Token
	pos    int
	errors []*ParseError
}

// Parse tokenizes and parses src in one call, returning the module tree
// (always non-nil, possibly partial) plus any lex/parse errors encountered.
func Parse(path string, src []byte) (*Module, []*ParseError) {
	buf := token.NewBuffer(path, src)
	lexer := token.NewLexer(buf)
	toks, lexErrs := lexer.Tokenize()

	p := &Parser{buf: buf, toks: filterComments(toks)}
	for _, e := range lexErrs {
		p.errors = append(p.errors, &ParseError{Span: token.Span{Start: e.Offset, End: e.Offset}, Message: e.Message})
	}
	mod := p.parseModule()
	return mod, p.errors
}

func filterComments(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != token.COMMENT {
			out = append(out, t)
		}
	}
	return out
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.ENDMARKER}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) || i < 0 {
		return token.Token{Kind: token.ENDMARKER}
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) text(t token.Token) string { return t.Text(p.buf.Data) }

func (p *Parser) errorf(sp token.Span, format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{Span: sp, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	t := p.cur()
	p.errorf(t.Span, "expected %s, got %s", k, t.Kind)
	return t
}

// skipNewlines consumes any run of NEWLINE tokens (blank lines).
func (p *Parser) skipNewlines() {
	for p.at(token.NEWLINE) {
		p.advance()
	}
}

// recover advances to the next statement boundary: a NEWLINE at the
// current nesting level or a DEDENT, so a syntax error in one statement
// does not prevent the rest of the file from being parsed.
func (p *Parser) recover() {
	depth := 0
	for {
		switch p.cur().Kind {
		case token.ENDMARKER:
			return
		case token.INDENT:
			depth++
			p.advance()
		case token.DEDENT:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
		case token.NEWLINE:
			p.advance()
			if depth == 0 {
				return
			}
		default:
			p.advance()
		}
	}
}

func (p *Parser) parseModule() *Module {
	mod := &Module{}
	start := p.cur().Span
	p.skipNewlines()
	for !p.at(token.ENDMARKER) {
		s := p.parseStatement()
		if s != nil {
			mod.Body = append(mod.Body, s)
		}
		p.skipNewlines()
	}
	end := p.cur().Span
	mod.Sp = token.Span{Start: start.Start, End: end.End}
	return mod
}

// parseBlock parses `: NEWLINE INDENT stmt* DEDENT`, used by every
// compound statement.
func (p *Parser) parseBlock() []Stmt {
	p.expect(token.COLON)
	if p.at(token.NEWLINE) {
		p.advance()
		p.skipNewlines()
		if !p.at(token.INDENT) {
			p.errorf(p.cur().Span, "expected an indented block")
			return nil
		}
		p.advance()
		var body []Stmt
		for !p.at(token.DEDENT) && !p.at(token.ENDMARKER) {
			s := p.parseStatement()
			if s != nil {
				body = append(body, s)
			}
			p.skipNewlines()
		}
		if p.at(token.DEDENT) {
			p.advance()
		}
		return body
	}
	// Inline single-line block: `if x: return 1`
	return p.parseSimpleStatementLine()
}
