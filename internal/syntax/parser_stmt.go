package syntax

import "github.com/taradepan/reaper/internal/token"

func (p *Parser) parseStatement() Stmt {
	var decorators []*Decorator
	for p.at(token.AT) {
		decorators = append(decorators, p.parseDecorator())
		p.skipNewlines()
	}

	switch p.cur().Kind {
	case token.DEF:
		return p.parseFunctionDef(decorators, false)
	case token.CLASS:
		return p.parseClassDef(decorators)
	case token.ASYNC:
		return p.parseAsyncStatement(decorators)
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor(false)
	case token.WHILE:
		return p.parseWhile()
	case token.WITH:
		return p.parseWith(false)
	case token.TRY:
		return p.parseTry()
	case token.MATCH:
		if s := p.tryParseMatch(); s != nil {
			return s
		}
	}

	if len(decorators) > 0 {
		p.errorf(p.cur().Span, "decorator not followed by a function or class definition")
	}

	stmts := p.parseSimpleStatementLine()
	if len(stmts) == 0 {
		return nil
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	// Multiple `;`-separated simple statements on one line collapse into a
	// synthetic sequence the module/block body flattens in place.
	return &multiStmt{stmts: stmts}
}

// multiStmt is an internal carrier for `a; b; c` lines; callers that build
// Body slices unwrap it via flattenStmt so the tree never exposes it.
type multiStmt struct {
	Base
	stmts []Stmt
}

func (*multiStmt) stmtNode() {}

func flattenStmt(s Stmt) []Stmt {
	if m, ok := s.(*multiStmt); ok {
		return m.stmts
	}
	return []Stmt{s}
}

func (p *Parser) parseDecorator() *Decorator {
	start := p.cur().Span
	p.advance() // @
	e := p.parseExpr()
	p.expectStatementEnd()
	return &Decorator{Base: Base{Sp: token.Span{Start: start.Start, End: e.Span().End}}, Expr: e}
}

func (p *Parser) expectStatementEnd() {
	if p.at(token.NEWLINE) {
		p.advance()
		return
	}
	if p.at(token.ENDMARKER) || p.at(token.DEDENT) {
		return
	}
	p.errorf(p.cur().Span, "expected end of statement, got %s", p.cur().Kind)
	p.recover()
}

// parseSimpleStatementLine parses `simple_stmt (';' simple_stmt)* NEWLINE`.
func (p *Parser) parseSimpleStatementLine() []Stmt {
	var out []Stmt
	for {
		s := p.parseSimpleStatement()
		if s != nil {
			out = append(out, flattenStmtList(s)...)
		}
		if p.at(token.SEMI) {
			p.advance()
			if p.at(token.NEWLINE) || p.at(token.ENDMARKER) {
				break
			}
			continue
		}
		break
	}
	p.expectStatementEnd()
	return out
}

func flattenStmtList(s Stmt) []Stmt { return flattenStmt(s) }

func (p *Parser) parseSimpleStatement() Stmt {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.IMPORT:
		return p.parseImport()
	case token.FROM:
		return p.parseImportFrom()
	case token.RETURN:
		p.advance()
		var v Expr
		if !p.atSimpleEnd() {
			v = p.parseExprList()
		}
		return &Return{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Value: v}
	case token.RAISE:
		p.advance()
		var exc, cause Expr
		if !p.atSimpleEnd() {
			exc = p.parseExpr()
			if p.at(token.FROM) {
				p.advance()
				cause = p.parseExpr()
			}
		}
		return &Raise{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Exc: exc, Cause: cause}
	case token.BREAK:
		p.advance()
		return &Break{Base{Sp: start}}
	case token.CONTINUE:
		p.advance()
		return &Continue{Base{Sp: start}}
	case token.PASS:
		p.advance()
		return &Pass{Base{Sp: start}}
	case token.GLOBAL:
		p.advance()
		names := p.parseNameList()
		return &Global{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Names: names}
	case token.NONLOCAL:
		p.advance()
		names := p.parseNameList()
		return &Nonlocal{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Names: names}
	case token.DEL:
		p.advance()
		targets := []Expr{p.parseExpr()}
		for p.at(token.COMMA) {
			p.advance()
			if p.atSimpleEnd() {
				break
			}
			targets = append(targets, p.parseExpr())
		}
		return &Delete{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Targets: targets}
	case token.NEWLINE, token.ENDMARKER:
		return nil
	}
	return p.parseExprOrAssignStatement()
}

func (p *Parser) atSimpleEnd() bool {
	switch p.cur().Kind {
	case token.NEWLINE, token.SEMI, token.ENDMARKER, token.DEDENT:
		return true
	}
	return false
}

func (p *Parser) lastEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.toks[p.pos-1].Span.End
}

func spanFrom(start token.Token, end int) token.Span {
	return token.Span{Start: start.Span.Start, End: end}
}

func (p *Parser) parseNameList() []string {
	var names []string
	names = append(names, p.text(p.expect(token.IDENT)))
	for p.at(token.COMMA) {
		p.advance()
		names = append(names, p.text(p.expect(token.IDENT)))
	}
	return names
}

func (p *Parser) parseImport() Stmt {
	start := p.cur().Span
	p.advance() // import
	var aliases []*Alias
	aliases = append(aliases, p.parseDottedAlias())
	for p.at(token.COMMA) {
		p.advance()
		aliases = append(aliases, p.parseDottedAlias())
	}
	return &Import{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Names: aliases}
}

func (p *Parser) parseDottedAlias() *Alias {
	nameStart := p.cur().Span
	name := p.text(p.expect(token.IDENT))
	for p.at(token.DOT) {
		p.advance()
		name += "." + p.text(p.expect(token.IDENT))
	}
	a := &Alias{Base: Base{Sp: spanFrom(token.Token{Span: nameStart}, p.lastEnd())}, Name: name, NameSp: nameStart}
	if p.at(token.AS) {
		p.advance()
		asTok := p.expect(token.IDENT)
		a.AsName = p.text(asTok)
		a.AsNameSp = asTok.Span
		a.Sp.End = asTok.Span.End
	}
	return a
}

func (p *Parser) parseImportFrom() Stmt {
	start := p.cur().Span
	p.advance() // from
	level := 0
	for p.at(token.DOT) || p.at(token.ELLIPSIS) {
		if p.at(token.ELLIPSIS) {
			level += 3
		} else {
			level++
		}
		p.advance()
	}
	module := ""
	if p.at(token.IDENT) {
		module = p.text(p.advance())
		for p.at(token.DOT) {
			p.advance()
			module += "." + p.text(p.expect(token.IDENT))
		}
	}
	p.expect(token.IMPORT)

	var aliases []*Alias
	switch {
	case p.at(token.STAR):
		t := p.advance()
		aliases = append(aliases, &Alias{Base: Base{Sp: t.Span}, Name: "*"})
	case p.at(token.LPAREN):
		p.advance()
		for !p.at(token.RPAREN) && !p.at(token.ENDMARKER) {
			aliases = append(aliases, p.parseSimpleAlias())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	default:
		aliases = append(aliases, p.parseSimpleAlias())
		for p.at(token.COMMA) {
			p.advance()
			aliases = append(aliases, p.parseSimpleAlias())
		}
	}

	return &ImportFrom{
		Base:   Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())},
		Module: module,
		Level:  level,
		Names:  aliases,
	}
}

func (p *Parser) parseSimpleAlias() *Alias {
	nameTok := p.expect(token.IDENT)
	a := &Alias{Base: Base{Sp: nameTok.Span}, Name: p.text(nameTok), NameSp: nameTok.Span}
	if p.at(token.AS) {
		p.advance()
		asTok := p.expect(token.IDENT)
		a.AsName = p.text(asTok)
		a.AsNameSp = asTok.Span
		a.Sp.End = asTok.Span.End
	}
	return a
}

// parseExprOrAssignStatement parses assignment (simple/augmented/annotated)
// or a bare expression statement, distinguishing the three per spec §4.2:
// they carry different usage semantics.
func (p *Parser) parseExprOrAssignStatement() Stmt {
	start := p.cur().Span
	first := p.parseExprList()

	switch {
	case p.at(token.COLON):
		p.advance()
		ann := p.parseExpr()
		var val Expr
		if p.at(token.ASSIGN) {
			p.advance()
			val = p.parseExprList()
		}
		return &AnnAssign{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Target: first, Annotation: ann, Value: val}
	case p.at(token.AUGASSIGN):
		opTok := p.advance()
		val := p.parseExprList()
		return &AugAssign{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Target: first, Op: p.text(opTok), Value: val}
	case p.at(token.ASSIGN):
		targets := []Expr{first}
		var value Expr
		for p.at(token.ASSIGN) {
			p.advance()
			value = p.parseExprList()
			if p.at(token.ASSIGN) {
				targets = append(targets, value)
			}
		}
		return &Assign{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Targets: targets, Value: value}
	default:
		return &ExprStmt{Base: Base{Sp: first.Span()}, Value: first}
	}
}

func (p *Parser) parseFunctionDef(decorators []*Decorator, isAsync bool) Stmt {
	start := p.cur().Span
	p.advance() // def
	nameTok := p.expect(token.IDENT)
	fn := &FunctionDef{
		Base:       Base{},
		Name:       p.text(nameTok),
		NameSpan:   nameTok.Span,
		Decorators: decorators,
		IsAsync:    isAsync,
	}
	p.expect(token.LPAREN)
	fn.Params = p.parseParamList(token.RPAREN)
	p.expect(token.RPAREN)
	if p.at(token.ARROW) {
		p.advance()
		fn.Returns = p.parseExpr()
	}
	fn.Body = p.parseBlock()
	fn.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return fn
}

func (p *Parser) parseClassDef(decorators []*Decorator) Stmt {
	start := p.cur().Span
	p.advance() // class
	nameTok := p.expect(token.IDENT)
	cd := &ClassDef{Base: Base{}, Name: p.text(nameTok), NameSpan: nameTok.Span, Decorators: decorators}
	if p.at(token.LPAREN) {
		p.advance()
		for !p.at(token.RPAREN) && !p.at(token.ENDMARKER) {
			cd.Bases = append(cd.Bases, p.parseExpr())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
	}
	cd.Body = p.parseBlockMarkingClass()
	cd.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return cd
}

// parseBlockMarkingClass parses a class body and tags each direct-child
// FunctionDef as InClass so checkers (RP008's self/cls exemption) can tell
// a method from a free function without re-walking the tree.
func (p *Parser) parseBlockMarkingClass() []Stmt {
	body := p.parseBlock()
	for _, s := range body {
		if fn, ok := s.(*FunctionDef); ok {
			fn.InClass = true
		}
	}
	return body
}

func (p *Parser) parseAsyncStatement(decorators []*Decorator) Stmt {
	p.advance() // async
	switch p.cur().Kind {
	case token.DEF:
		return p.parseFunctionDef(decorators, true)
	case token.FOR:
		return p.parseFor(true)
	case token.WITH:
		return p.parseWith(true)
	}
	p.errorf(p.cur().Span, "expected def/for/with after async")
	return nil
}

func (p *Parser) parseIf() Stmt {
	start := p.cur().Span
	p.advance() // if
	cond := p.parseExprList()
	body := p.parseBlock()
	stmt := &If{Base: Base{}, Cond: cond, Body: body}
	switch p.cur().Kind {
	case token.ELIF:
		elifStart := p.cur().Span
		p.advance()
		elifCond := p.parseExprList()
		elifBody := p.parseBlock()
		nested := &If{Base: Base{Sp: elifStart}, Cond: elifCond, Body: elifBody}
		stmt.Orelse = p.continueElifChain(nested)
	case token.ELSE:
		p.advance()
		stmt.Orelse = p.parseBlock()
	}
	stmt.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return stmt
}

// continueElifChain recursively folds subsequent elif/else clauses into
// nested.Orelse and returns a one-element slice wrapping nested, so an
// elif ladder becomes a right-leaning chain of If.Orelse, matching how
// `spec.md`'s "each arm" language treats elif as in If itself.
func (p *Parser) continueElifChain(nested *If) []Stmt {
	switch p.cur().Kind {
	case token.ELIF:
		elifStart := p.cur().Span
		p.advance()
		cond := p.parseExprList()
		body := p.parseBlock()
		inner := &If{Base: Base{Sp: elifStart}, Cond: cond, Body: body}
		nested.Orelse = p.continueElifChain(inner)
	case token.ELSE:
		p.advance()
		nested.Orelse = p.parseBlock()
	}
	nested.Sp.End = p.lastEnd()
	return []Stmt{nested}
}

func (p *Parser) parseFor(isAsync bool) Stmt {
	start := p.cur().Span
	p.advance() // for
	target := p.parseTargetList()
	p.expect(token.IN)
	iter := p.parseExprList()
	body := p.parseBlock()
	stmt := &For{Base: Base{}, Target: target, Iter: iter, Body: body, IsAsync: isAsync}
	if p.at(token.ELSE) {
		p.advance()
		stmt.Orelse = p.parseBlock()
	}
	stmt.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return stmt
}

func (p *Parser) parseWhile() Stmt {
	start := p.cur().Span
	p.advance() // while
	cond := p.parseExprList()
	body := p.parseBlock()
	stmt := &While{Base: Base{}, Cond: cond, Body: body}
	if p.at(token.ELSE) {
		p.advance()
		stmt.Orelse = p.parseBlock()
	}
	stmt.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return stmt
}

func (p *Parser) parseWith(isAsync bool) Stmt {
	start := p.cur().Span
	p.advance() // with
	var items []*WithItem
	items = append(items, p.parseWithItem())
	for p.at(token.COMMA) {
		p.advance()
		items = append(items, p.parseWithItem())
	}
	body := p.parseBlock()
	return &With{Base: Base{Sp: spanFrom(token.Token{Span: start}, p.lastEnd())}, Items: items, Body: body, IsAsync: isAsync}
}

func (p *Parser) parseWithItem() *WithItem {
	start := p.cur().Span
	ctx := p.parseExpr()
	item := &WithItem{Base: Base{Sp: start}, Context: ctx}
	if p.at(token.AS) {
		p.advance()
		item.Target = p.parseTarget()
	}
	item.Sp.End = p.lastEnd()
	return item
}

func (p *Parser) parseTry() Stmt {
	start := p.cur().Span
	p.advance() // try
	body := p.parseBlock()
	stmt := &Try{Base: Base{}, Body: body}
	for p.at(token.EXCEPT) {
		stmt.Handlers = append(stmt.Handlers, p.parseExceptHandler())
	}
	if p.at(token.ELSE) {
		p.advance()
		stmt.Orelse = p.parseBlock()
	}
	if p.at(token.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlock()
	}
	stmt.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return stmt
}

func (p *Parser) parseExceptHandler() *ExceptHandler {
	start := p.cur().Span
	p.advance() // except
	h := &ExceptHandler{Base: Base{Sp: start}}
	if !p.at(token.COLON) {
		if p.at(token.STAR) {
			p.advance() // except* (exception groups)
		}
		h.Type = p.parseExpr()
		if p.at(token.AS) {
			p.advance()
			h.Name = p.text(p.expect(token.IDENT))
		}
	}
	h.Body = p.parseBlock()
	h.Sp.End = p.lastEnd()
	return h
}

// tryParseMatch attempts to parse `match subject: case ...`. Because
// `match` is a soft keyword (a valid identifier elsewhere), it only
// commits when followed by a plausible subject and a colon/NEWLINE/INDENT
// shape; otherwise it returns nil and the caller falls through to
// expression-statement parsing.
func (p *Parser) tryParseMatch() Stmt {
	start := p.cur().Span
	save := p.pos
	p.advance() // match
	if p.at(token.COLON) || p.at(token.ASSIGN) || p.at(token.DOT) {
		p.pos = save
		return nil
	}
	subject := p.parseExprList()
	if !p.at(token.COLON) {
		p.pos = save
		return nil
	}
	p.advance()
	p.expect(token.NEWLINE)
	p.skipNewlines()
	if !p.at(token.INDENT) {
		p.pos = save
		return nil
	}
	p.advance()
	m := &Match{Base: Base{}, Subject: subject}
	for p.at(token.CASE) {
		m.Cases = append(m.Cases, p.parseMatchCase())
		p.skipNewlines()
	}
	if p.at(token.DEDENT) {
		p.advance()
	}
	m.Sp = spanFrom(token.Token{Span: start}, p.lastEnd())
	return m
}

func (p *Parser) parseMatchCase() *MatchCase {
	start := p.cur().Span
	p.advance() // case
	pat := p.parsePatternOr()
	mc := &MatchCase{Base: Base{Sp: start}, Pattern: pat}
	if p.at(token.IF) {
		p.advance()
		mc.Guard = p.parseExprList()
	}
	mc.Body = p.parseBlock()
	mc.Sp.End = p.lastEnd()
	return mc
}
