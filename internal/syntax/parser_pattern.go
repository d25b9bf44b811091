package syntax

import "github.com/taradepan/reaper/internal/token"

func (p *Parser) parsePatternOr() Pattern {
	first := p.parsePatternAs()
	if !p.atOpText("|") {
		return first
	}
	pats := []Pattern{first}
	for p.atOpText("|") {
		p.advance()
		pats = append(pats, p.parsePatternAs())
	}
	return &PatternOr{Base: Base{Sp: token.Span{Start: first.Span().Start, End: p.lastEnd()}}, Patterns: pats}
}

func (p *Parser) parsePatternAs() Pattern {
	pat := p.parseClosedPattern()
	if p.at(token.AS) {
		p.advance()
		nameTok := p.expect(token.IDENT)
		return &PatternAs{Base: Base{Sp: token.Span{Start: pat.Span().Start, End: nameTok.Span.End}}, Pattern: pat, Name: p.text(nameTok)}
	}
	return pat
}

func (p *Parser) parseClosedPattern() Pattern {
	t := p.cur()
	switch t.Kind {
	case token.IDENT:
		if p.text(t) == "_" {
			p.advance()
			return &PatternWildcard{Base{Sp: t.Span}}
		}
		valueExpr := p.parseDottedValueExpr()
		if p.at(token.LPAREN) {
			return p.parseClassPatternTail(valueExpr)
		}
		if nm, ok := valueExpr.(*Name); ok {
			return &PatternCapture{Base: Base{Sp: nm.Sp}, Name: nm.Id}
		}
		return &PatternValue{Base: Base{Sp: valueExpr.Span()}, Value: valueExpr}
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NONE:
		lit := p.parseAtom()
		if l, ok := lit.(*Literal); ok {
			return &PatternLiteral{Base: Base{Sp: l.Sp}, Value: l}
		}
		return &PatternValue{Base: Base{Sp: lit.Span()}, Value: lit}
	case token.LBRACK, token.LPAREN:
		return p.parseSequencePattern()
	case token.LBRACE:
		return p.parseMappingPattern()
	}
	if p.atOpText("-") {
		start := p.advance().Span
		numTok := p.expect(token.NUMBER)
		lit := &Literal{Base: Base{Sp: token.Span{Start: start.Start, End: numTok.Span.End}}, Kind: LitNumber, Raw: "-" + p.text(numTok)}
		return &PatternLiteral{Base: Base{Sp: lit.Sp}, Value: lit}
	}
	p.errorf(t.Span, "unexpected token %s in pattern", t.Kind)
	p.advance()
	return &PatternWildcard{Base{Sp: t.Span}}
}

// parseDottedValueExpr parses a bare `name` or `name.attr.attr` chain
// without consuming a following `(` as a call, so the caller can decide
// between a capture/value pattern and a class pattern.
func (p *Parser) parseDottedValueExpr() Expr {
	nameTok := p.expect(token.IDENT)
	e := Expr(&Name{Base: Base{Sp: nameTok.Span}, Id: p.text(nameTok)})
	for p.at(token.DOT) {
		p.advance()
		attrTok := p.expect(token.IDENT)
		e = &Attribute{Base: Base{Sp: token.Span{Start: e.Span().Start, End: attrTok.Span.End}}, Value: e, Attr: p.text(attrTok)}
	}
	return e
}

func (p *Parser) parseClassPatternTail(cls Expr) Pattern {
	p.advance() // (
	pc := &PatternClass{Base: Base{Sp: cls.Span()}, Class: cls}
	for !p.at(token.RPAREN) && !p.at(token.ENDMARKER) {
		if p.at(token.IDENT) && p.peekAt(1).Kind == token.ASSIGN {
			nameTok := p.advance()
			p.advance() // =
			pc.KeywordKeys = append(pc.KeywordKeys, p.text(nameTok))
			pc.Keywords = append(pc.Keywords, p.parsePatternOr())
		} else {
			pc.Positional = append(pc.Positional, p.parsePatternOr())
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(token.RPAREN)
	pc.Sp.End = end.Span.End
	return pc
}

func (p *Parser) parseSequencePattern() Pattern {
	open := p.advance()
	closeKind := token.RPAREN
	if open.Kind == token.LBRACK {
		closeKind = token.RBRACK
	}
	var elts []Pattern
	for !p.at(closeKind) && !p.at(token.ENDMARKER) {
		if p.at(token.STAR) {
			p.advance()
			if p.text(p.cur()) == "_" {
				p.advance()
			} else {
				nameTok := p.expect(token.IDENT)
				elts = append(elts, &PatternCapture{Base: Base{Sp: nameTok.Span}, Name: p.text(nameTok)})
			}
		} else {
			elts = append(elts, p.parsePatternOr())
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(closeKind)
	return &PatternSequence{Base: Base{Sp: token.Span{Start: open.Span.Start, End: end.Span.End}}, Elts: elts}
}

func (p *Parser) parseMappingPattern() Pattern {
	open := p.advance() // {
	pm := &PatternMapping{Base: Base{Sp: open.Span}}
	for !p.at(token.RBRACE) && !p.at(token.ENDMARKER) {
		if p.at(token.DOUBLESTAR) {
			p.advance()
			nameTok := p.expect(token.IDENT)
			pm.Rest = p.text(nameTok)
		} else {
			key := p.parseOrTest()
			p.expect(token.COLON)
			val := p.parsePatternOr()
			pm.Keys = append(pm.Keys, key)
			pm.Values = append(pm.Values, val)
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.expect(token.RBRACE)
	pm.Sp.End = end.Span.End
	return pm
}
