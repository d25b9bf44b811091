package syntax

import "github.com/taradepan/reaper/internal/token"

// parseParamList parses a comma-separated formal parameter list up to (but
// not consuming) end, which is RPAREN for `def`/regular calls or COLON for
// `lambda`. Annotations are only accepted when end == RPAREN since lambda
// parameters cannot be annotated.
func (p *Parser) parseParamList(end token.Kind) []*Parameter {
	var params []*Parameter
	seenStar := false
	for !p.at(end) && !p.at(token.ENDMARKER) {
		switch {
		case p.at(token.DOUBLESTAR):
			p.advance()
			nameTok := p.expect(token.IDENT)
			par := &Parameter{Base: Base{Sp: nameTok.Span}, Name: p.text(nameTok), Kind: ParamKwarg}
			p.maybeAnnotate(par, end)
			params = append(params, par)
		case p.at(token.STAR):
			p.advance()
			seenStar = true
			if p.at(token.COMMA) || p.at(end) {
				// bare `*` keyword-only marker with no vararg name
			} else {
				nameTok := p.expect(token.IDENT)
				par := &Parameter{Base: Base{Sp: nameTok.Span}, Name: p.text(nameTok), Kind: ParamVararg}
				p.maybeAnnotate(par, end)
				params = append(params, par)
			}
		case p.atOpText("/"):
			p.advance() // positional-only marker
		default:
			nameTok := p.expect(token.IDENT)
			par := &Parameter{Base: Base{Sp: nameTok.Span}, Name: p.text(nameTok)}
			if seenStar {
				par.Kind = ParamKeywordOnly
			}
			p.maybeAnnotate(par, end)
			if p.at(token.ASSIGN) {
				p.advance()
				par.Default = p.parseExpr()
			}
			params = append(params, par)
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return params
}

func (p *Parser) maybeAnnotate(par *Parameter, end token.Kind) {
	if end == token.RPAREN && p.at(token.COLON) {
		p.advance()
		par.Annotation = p.parseExpr()
	}
}
