package syntax

import "github.com/taradepan/reaper/internal/token"

// parseExprList parses a single expression, or a bare comma-separated list
// of them collapsed into a TupleExpr (`a, b = 1, 2`; `return a, b`).
func (p *Parser) parseExprList() Expr {
	first := p.parseStarOrExpr()
	if !p.at(token.COMMA) {
		return first
	}
	elts := []Expr{first}
	start := first.Span()
	for p.at(token.COMMA) {
		p.advance()
		if p.atExprListEnd() {
			break
		}
		elts = append(elts, p.parseStarOrExpr())
	}
	return &TupleExpr{Base: Base{Sp: token.Span{Start: start.Start, End: p.lastEnd()}}, Elts: elts}
}

func (p *Parser) atExprListEnd() bool {
	switch p.cur().Kind {
	case token.NEWLINE, token.SEMI, token.ENDMARKER, token.COLON, token.ASSIGN,
		token.DEDENT, token.RPAREN, token.RBRACK, token.RBRACE:
		return true
	}
	return false
}

func (p *Parser) parseStarOrExpr() Expr {
	if p.at(token.STAR) {
		t := p.advance()
		v := p.parseExpr()
		return &Starred{Base: Base{Sp: token.Span{Start: t.Span.Start, End: v.Span().End}}, Value: v}
	}
	return p.parseExpr()
}

// parseExpr parses one full expression: lambda, the a-if-b-else-c
// ternary, the walrus operator, and yield expressions all bind looser than
// a boolean OR test.
func (p *Parser) parseExpr() Expr {
	if p.at(token.LAMBDA) {
		return p.parseLambda()
	}
	if p.at(token.YIELD) {
		return p.parseYield()
	}
	e := p.parseOrTest()
	if p.at(token.IF) {
		p.advance()
		cond := p.parseOrTest()
		p.expect(token.ELSE)
		orelse := p.parseExpr()
		return &IfExp{Base: Base{Sp: token.Span{Start: e.Span().Start, End: orelse.Span().End}}, Test: cond, Body: e, Orelse: orelse}
	}
	if p.at(token.WALRUS) {
		if nm, ok := e.(*Name); ok {
			p.advance()
			val := p.parseExpr()
			return &Named{Base: Base{Sp: token.Span{Start: nm.Sp.Start, End: val.Span().End}}, Target: nm, Value: val}
		}
		p.errorf(p.cur().Span, "walrus target must be a plain name")
	}
	return e
}

func (p *Parser) parseYield() Expr {
	start := p.advance().Span // yield
	if p.at(token.FROM) {
		p.advance()
		v := p.parseExpr()
		return &Yield{Base: Base{Sp: token.Span{Start: start.Start, End: v.Span().End}}, Value: v, From: true}
	}
	if p.atSimpleEnd() || p.at(token.RPAREN) || p.at(token.RBRACK) || p.at(token.RBRACE) || p.at(token.COMMA) {
		return &Yield{Base: Base{Sp: start}}
	}
	v := p.parseExprList()
	return &Yield{Base: Base{Sp: token.Span{Start: start.Start, End: v.Span().End}}, Value: v}
}

func (p *Parser) parseLambda() Expr {
	start := p.advance().Span // lambda
	params := p.parseParamList(token.COLON)
	p.expect(token.COLON)
	body := p.parseExpr()
	return &Lambda{Base: Base{Sp: token.Span{Start: start.Start, End: body.Span().End}}, Params: params, Body: body}
}

func (p *Parser) parseOrTest() Expr {
	left := p.parseAndTest()
	if !p.at(token.OR) {
		return left
	}
	values := []Expr{left}
	for p.at(token.OR) {
		p.advance()
		values = append(values, p.parseAndTest())
	}
	return &BoolOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: p.lastEnd()}}, Values: values, Op: "or"}
}

func (p *Parser) parseAndTest() Expr {
	left := p.parseNotTest()
	if !p.at(token.AND) {
		return left
	}
	values := []Expr{left}
	for p.at(token.AND) {
		p.advance()
		values = append(values, p.parseNotTest())
	}
	return &BoolOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: p.lastEnd()}}, Values: values, Op: "and"}
}

func (p *Parser) parseNotTest() Expr {
	if p.at(token.NOT) {
		t := p.advance()
		operand := p.parseNotTest()
		return &UnaryOp{Base: Base{Sp: token.Span{Start: t.Span.Start, End: operand.Span().End}}, Operand: operand, Op: "not"}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() Expr {
	left := p.parseBitOr()
	var ops []string
	var rest []Expr
	for {
		op, ok := p.tryCompareOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		rest = append(rest, p.parseBitOr())
	}
	if len(ops) == 0 {
		return left
	}
	end := rest[len(rest)-1].Span().End
	return &Compare{Base: Base{Sp: token.Span{Start: left.Span().Start, End: end}}, Left: left, Ops: ops, Comparators: rest}
}

func (p *Parser) tryCompareOp() (string, bool) {
	switch p.cur().Kind {
	case token.OP:
		txt := p.text(p.cur())
		switch txt {
		case "<", ">", "<=", ">=", "==", "!=":
			p.advance()
			return txt, true
		}
	case token.IN:
		p.advance()
		return "in", true
	case token.IS:
		p.advance()
		if p.at(token.NOT) {
			p.advance()
			return "is not", true
		}
		return "is", true
	case token.NOT:
		if p.peekAt(1).Kind == token.IN {
			p.advance()
			p.advance()
			return "not in", true
		}
	}
	return "", false
}

func (p *Parser) parseBitOr() Expr {
	left := p.parseBitXor()
	for p.atOpText("|") {
		t := p.advance()
		right := p.parseBitXor()
		left = &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: p.text(t)}
	}
	return left
}

func (p *Parser) parseBitXor() Expr {
	left := p.parseBitAnd()
	for p.atOpText("^") {
		t := p.advance()
		right := p.parseBitAnd()
		left = &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: p.text(t)}
	}
	return left
}

func (p *Parser) parseBitAnd() Expr {
	left := p.parseShift()
	for p.atOpText("&") {
		t := p.advance()
		right := p.parseShift()
		left = &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: p.text(t)}
	}
	return left
}

func (p *Parser) parseShift() Expr {
	left := p.parseArith()
	for p.atOpText("<<") || p.atOpText(">>") {
		t := p.advance()
		right := p.parseArith()
		left = &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: p.text(t)}
	}
	return left
}

func (p *Parser) parseArith() Expr {
	left := p.parseTerm()
	for p.atOpText("+") || p.atOpText("-") {
		t := p.advance()
		right := p.parseTerm()
		left = &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: p.text(t)}
	}
	return left
}

func (p *Parser) parseTerm() Expr {
	left := p.parseFactor()
	for p.at(token.STAR) || p.atOpText("/") || p.atOpText("//") || p.atOpText("%") || p.at(token.AT) {
		t := p.advance()
		right := p.parseFactor()
		left = &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: p.text(t)}
	}
	return left
}

func (p *Parser) parseFactor() Expr {
	if p.atOpText("+") || p.atOpText("-") || p.atOpText("~") {
		t := p.advance()
		operand := p.parseFactor()
		return &UnaryOp{Base: Base{Sp: token.Span{Start: t.Span.Start, End: operand.Span().End}}, Operand: operand, Op: p.text(t)}
	}
	return p.parsePower()
}

func (p *Parser) parsePower() Expr {
	left := p.parseAwaitOrPrimary()
	if p.at(token.DOUBLESTAR) {
		p.advance()
		right := p.parseFactor() // right-associative
		return &BinOp{Base: Base{Sp: token.Span{Start: left.Span().Start, End: right.Span().End}}, Left: left, Right: right, Op: "**"}
	}
	return left
}

func (p *Parser) parseAwaitOrPrimary() Expr {
	if p.at(token.AWAIT) {
		t := p.advance()
		v := p.parseAwaitOrPrimary()
		return &Await{Base: Base{Sp: token.Span{Start: t.Span.Start, End: v.Span().End}}, Value: v}
	}
	return p.parsePrimary()
}

func (p *Parser) atOpText(s string) bool {
	return p.at(token.OP) && p.text(p.cur()) == s
}

// parsePrimary parses an atom followed by any chain of trailers:
// `.attr`, `(args)`, `[index]`.
func (p *Parser) parsePrimary() Expr {
	e := p.parseAtom()
	for {
		switch p.cur().Kind {
		case token.DOT:
			p.advance()
			var nameTok token.Token
			if p.at(token.MATCH) || p.at(token.CASE) {
				nameTok = p.advance()
			} else {
				nameTok = p.expect(token.IDENT)
			}
			e = &Attribute{Base: Base{Sp: token.Span{Start: e.Span().Start, End: nameTok.Span.End}}, Value: e, Attr: p.text(nameTok)}
		case token.LPAREN:
			e = p.parseCall(e)
		case token.LBRACK:
			e = p.parseSubscript(e)
		default:
			return e
		}
	}
}

func (p *Parser) parseCall(fn Expr) Expr {
	p.advance() // (
	call := &Call{Base: Base{}, Func: fn}
	for !p.at(token.RPAREN) && !p.at(token.ENDMARKER) {
		if p.at(token.STAR) {
			t := p.advance()
			v := p.parseExpr()
			call.Args = append(call.Args, &Starred{Base: Base{Sp: token.Span{Start: t.Span.Start, End: v.Span().End}}, Value: v})
		} else if p.at(token.DOUBLESTAR) {
			t := p.advance()
			v := p.parseExpr()
			call.Keywords = append(call.Keywords, &Keyword{Base: Base{Sp: token.Span{Start: t.Span.Start, End: v.Span().End}}, Value: v})
		} else if p.at(token.IDENT) && p.peekAt(1).Kind == token.ASSIGN {
			nameTok := p.advance()
			p.advance() // =
			v := p.parseExpr()
			call.Keywords = append(call.Keywords, &Keyword{Base: Base{Sp: token.Span{Start: nameTok.Span.Start, End: v.Span().End}}, Name: p.text(nameTok), Value: v})
		} else {
			arg := p.parseExpr()
			if gens := p.tryParseCompForTail(); gens != nil {
				arg = &Comprehension{Base: Base{Sp: token.Span{Start: arg.Span().Start, End: p.lastEnd()}}, Kind: CompGenerator, Element: arg, Generators: gens}
			}
			call.Args = append(call.Args, arg)
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(token.RPAREN)
	call.Sp = token.Span{Start: fn.Span().Start, End: end.Span.End}
	return call
}

func (p *Parser) parseSubscript(value Expr) Expr {
	p.advance() // [
	idx := p.parseSliceOrIndex()
	end := p.expect(token.RBRACK)
	return &Subscript{Base: Base{Sp: token.Span{Start: value.Span().Start, End: end.Span.End}}, Value: value, Index: idx}
}

// parseSliceOrIndex parses `[a:b:c]` or a plain index/tuple of indices.
// Slice bound sub-expressions are represented as BinOp-free opaque Literal
// placeholders are not introduced; absent bounds simply parse as nil and
// are dropped from the reconstructed expression, which is sufficient since
// slices never introduce bindings and only read their bound expressions.
func (p *Parser) parseSliceOrIndex() Expr {
	var parts []Expr
	var isSlice bool
	for i := 0; i < 3; i++ {
		if !p.at(token.COLON) && !p.at(token.RBRACK) && !p.at(token.COMMA) {
			parts = append(parts, p.parseExpr())
		} else {
			parts = append(parts, nil)
		}
		if p.at(token.COLON) {
			isSlice = true
			p.advance()
			continue
		}
		break
	}
	if p.at(token.COMMA) {
		elts := []Expr{}
		for _, pt := range parts {
			if pt != nil {
				elts = append(elts, pt)
			}
		}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RBRACK) {
				break
			}
			elts = append(elts, p.parseSliceOrIndex())
		}
		return &TupleExpr{Base: Base{}, Elts: elts}
	}
	if isSlice {
		elts := []Expr{}
		for _, pt := range parts {
			if pt != nil {
				elts = append(elts, pt)
			}
		}
		return &TupleExpr{Base: Base{}, Elts: elts}
	}
	if len(parts) == 0 || parts[0] == nil {
		return &TupleExpr{Base: Base{}}
	}
	return parts[0]
}

// tryParseCompForTail parses a trailing `for x in y [if z]...` clause used
// by generator/list/set/dict comprehensions, returning nil if none is
// present (in which case no tokens are consumed).
func (p *Parser) tryParseCompForTail() []*CompFor {
	if !p.at(token.FOR) && !(p.at(token.ASYNC) && p.peekAt(1).Kind == token.FOR) {
		return nil
	}
	var gens []*CompFor
	for p.at(token.FOR) || (p.at(token.ASYNC) && p.peekAt(1).Kind == token.FOR) {
		start := p.cur().Span
		isAsync := false
		if p.at(token.ASYNC) {
			isAsync = true
			p.advance()
		}
		p.advance() // for
		target := p.parseTargetList()
		p.expect(token.IN)
		iter := p.parseOrTest()
		cf := &CompFor{Base: Base{Sp: start}, Target: target, Iter: iter, IsAsync: isAsync}
		for p.at(token.IF) {
			p.advance()
			cf.Ifs = append(cf.Ifs, p.parseOrTestNoTernary())
		}
		cf.Sp.End = p.lastEnd()
		gens = append(gens, cf)
	}
	return gens
}

// parseOrTestNoTernary parses an or_test without an enclosing if/else,
// used for comprehension `if` clauses where a bare ternary would be
// ambiguous with the clause's own `if`.
func (p *Parser) parseOrTestNoTernary() Expr { return p.parseOrTest() }

func (p *Parser) parseTargetList() Expr {
	first := p.parseTarget()
	if !p.at(token.COMMA) {
		return first
	}
	elts := []Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.IN) {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return &TupleExpr{Base: Base{Sp: token.Span{Start: first.Span().Start, End: p.lastEnd()}}, Elts: elts}
}

func (p *Parser) parseTarget() Expr {
	if p.at(token.STAR) {
		t := p.advance()
		v := p.parseTarget()
		return &Starred{Base: Base{Sp: token.Span{Start: t.Span.Start, End: v.Span().End}}, Value: v}
	}
	if p.at(token.LPAREN) || p.at(token.LBRACK) {
		open := p.advance()
		closeKind := token.RPAREN
		if open.Kind == token.LBRACK {
			closeKind = token.RBRACK
		}
		var elts []Expr
		for !p.at(closeKind) && !p.at(token.ENDMARKER) {
			elts = append(elts, p.parseTarget())
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		end := p.expect(closeKind)
		sp := token.Span{Start: open.Span.Start, End: end.Span.End}
		if open.Kind == token.LBRACK {
			return &ListExpr{Base: Base{Sp: sp}, Elts: elts}
		}
		return &TupleExpr{Base: Base{Sp: sp}, Elts: elts}
	}
	return p.parsePrimary()
}

func (p *Parser) parseAtom() Expr {
	t := p.cur()
	switch t.Kind {
	case token.IDENT, token.MATCH, token.CASE:
		p.advance()
		return &Name{Base: Base{Sp: t.Span}, Id: p.text(t)}
	case token.NUMBER:
		p.advance()
		return &Literal{Base: Base{Sp: t.Span}, Kind: LitNumber, Raw: p.text(t)}
	case token.STRING:
		p.advance()
		lit := &Literal{Base: Base{Sp: t.Span}, Kind: LitString, Raw: p.text(t)}
		return p.foldAdjacentStrings(lit)
	case token.FSTRING:
		p.advance()
		return &FString{Base: Base{Sp: t.Span}, Raw: p.text(t)}
	case token.TRUE, token.FALSE:
		p.advance()
		return &Literal{Base: Base{Sp: t.Span}, Kind: LitBool, Raw: p.text(t)}
	case token.NONE:
		p.advance()
		return &Literal{Base: Base{Sp: t.Span}, Kind: LitNone, Raw: "None"}
	case token.ELLIPSIS:
		p.advance()
		return &Literal{Base: Base{Sp: t.Span}, Kind: LitNone, Raw: "..."}
	case token.LPAREN:
		return p.parseParenAtom()
	case token.LBRACK:
		return p.parseListAtom()
	case token.LBRACE:
		return p.parseBraceAtom()
	case token.YIELD:
		return p.parseYield()
	}
	p.errorf(t.Span, "unexpected token %s in expression", t.Kind)
	p.advance()
	return &Literal{Base: Base{Sp: t.Span}, Kind: LitNone, Raw: ""}
}

// foldAdjacentStrings implements implicit string-literal concatenation
// (`"a" "b"`), folding consecutive STRING tokens into one Literal so the
// collector does not see spurious extra nodes.
func (p *Parser) foldAdjacentStrings(first *Literal) Expr {
	for p.at(token.STRING) {
		t := p.advance()
		first.Raw += " " + p.text(t)
		first.Sp.End = t.Span.End
	}
	return first
}

func (p *Parser) parseParenAtom() Expr {
	open := p.advance() // (
	if p.at(token.RPAREN) {
		end := p.advance()
		return &TupleExpr{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}}
	}
	if p.at(token.YIELD) {
		y := p.parseYield()
		end := p.expect(token.RPAREN)
		y.(*Yield).Sp.End = end.Span.End
		return y
	}
	first := p.parseStarOrExpr()
	if gens := p.tryParseCompForTail(); gens != nil {
		end := p.expect(token.RPAREN)
		return &Comprehension{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Kind: CompGenerator, Element: first, Generators: gens}
	}
	if p.at(token.COMMA) {
		elts := []Expr{first}
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RPAREN) {
				break
			}
			elts = append(elts, p.parseStarOrExpr())
		}
		end := p.expect(token.RPAREN)
		return &TupleExpr{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Elts: elts}
	}
	end := p.expect(token.RPAREN)
	if lit, ok := first.(interface{ setParenSpan(token.Span) }); ok {
		_ = lit
	}
	return withSpan(first, token.Span{Start: open.Span.Start, End: end.Span.End})
}

// withSpan rewraps e's outer span to include enclosing parentheses without
// mutating shared sub-nodes; since every node embeds Base by value, a type
// switch plus field write is sufficient and avoids an extra wrapper node.
func withSpan(e Expr, sp token.Span) Expr {
	switch v := e.(type) {
	case *Name:
		v.Sp = sp
	case *Literal:
		v.Sp = sp
	case *BinOp:
		v.Sp = sp
	case *UnaryOp:
		v.Sp = sp
	case *BoolOp:
		v.Sp = sp
	case *Compare:
		v.Sp = sp
	case *Call:
		v.Sp = sp
	case *Attribute:
		v.Sp = sp
	case *Subscript:
		v.Sp = sp
	case *TupleExpr:
		v.Sp = sp
	case *ListExpr:
		v.Sp = sp
	case *DictExpr:
		v.Sp = sp
	case *SetExpr:
		v.Sp = sp
	case *Comprehension:
		v.Sp = sp
	case *IfExp:
		v.Sp = sp
	case *Lambda:
		v.Sp = sp
	case *Named:
		v.Sp = sp
	case *Starred:
		v.Sp = sp
	case *Yield:
		v.Sp = sp
	case *Await:
		v.Sp = sp
	case *FString:
		v.Sp = sp
	}
	return e
}

func (p *Parser) parseListAtom() Expr {
	open := p.advance() // [
	if p.at(token.RBRACK) {
		end := p.advance()
		return &ListExpr{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}}
	}
	first := p.parseStarOrExpr()
	if gens := p.tryParseCompForTail(); gens != nil {
		end := p.expect(token.RBRACK)
		return &Comprehension{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Kind: CompList, Element: first, Generators: gens}
	}
	elts := []Expr{first}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACK) {
			break
		}
		elts = append(elts, p.parseStarOrExpr())
	}
	end := p.expect(token.RBRACK)
	return &ListExpr{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Elts: elts}
}

func (p *Parser) parseBraceAtom() Expr {
	open := p.advance() // {
	if p.at(token.RBRACE) {
		end := p.advance()
		return &DictExpr{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}}
	}
	if p.at(token.DOUBLESTAR) {
		p.advance()
		v := p.parseOrTest()
		d := &DictExpr{Base: Base{Sp: open.Span}, Keys: []Expr{nil}, Values: []Expr{v}}
		return p.continueDictAtom(open, d)
	}
	first := p.parseStarOrExpr()
	if p.at(token.COLON) {
		p.advance()
		val := p.parseExpr()
		if gens := p.tryParseCompForTail(); gens != nil {
			end := p.expect(token.RBRACE)
			return &Comprehension{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Kind: CompDict, Key: first, Element: val, Generators: gens}
		}
		d := &DictExpr{Base: Base{Sp: open.Span}, Keys: []Expr{first}, Values: []Expr{val}}
		return p.continueDictAtom(open, d)
	}
	if gens := p.tryParseCompForTail(); gens != nil {
		end := p.expect(token.RBRACE)
		return &Comprehension{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Kind: CompSet, Element: first, Generators: gens}
	}
	s := &SetExpr{Base: Base{Sp: open.Span}, Elts: []Expr{first}}
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACE) {
			break
		}
		s.Elts = append(s.Elts, p.parseStarOrExpr())
	}
	end := p.expect(token.RBRACE)
	s.Sp.End = end.Span.End
	return s
}

func (p *Parser) continueDictAtom(open token.Token, d *DictExpr) Expr {
	for p.at(token.COMMA) {
		p.advance()
		if p.at(token.RBRACE) {
			break
		}
		if p.at(token.DOUBLESTAR) {
			p.advance()
			v := p.parseOrTest()
			d.Keys = append(d.Keys, nil)
			d.Values = append(d.Values, v)
			continue
		}
		k := p.parseExpr()
		p.expect(token.COLON)
		v := p.parseExpr()
		d.Keys = append(d.Keys, k)
		d.Values = append(d.Values, v)
	}
	end := p.expect(token.RBRACE)
	d.Sp.End = end.Span.End
	return d
}
