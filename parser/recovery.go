package parser

import "corelang/token"

// resync is the shared engine behind both error-recovery heuristics
// (spec.md §4.6): scan forward tracking bracket depth, stopping at a
// depth-0 token that starts a statement. crossBrace controls what
// happens at a depth-0 '}': recoverToNextStatement (top level) may
// consume it and keep scanning on the theory that the enclosing
// construct believed itself already closed; recoverWithinBlock must
// not consume the block's own terminating '}', so it stops in place
// instead.
//
// A keyword-led statement always advances at least one token even if
// reparsed at the exact position recovery started from (every
// statement() dispatch branch consumes its leading keyword before
// doing anything else), so it is always safe to stop on one
// immediately. A bare identifier is not: reparsing the same
// unconsumed identifier could fail identically and loop forever, so
// an identifier is only accepted as a resync point once the scan has
// moved past the position it started from (spec.md §4.6's
// MUST_FORWARD).
func (p *Parser) resync(crossBrace bool) {
	start := p.pos
	depth := 0
	for !p.atEnd() {
		tok := p.peek()
		if tok.Kind == token.BRACKET {
			switch tok.Payload.Bracket {
			case token.LParen, token.LBracket, token.LBrace, token.CallOpen, token.IndexOpen:
				depth++
			case token.RParen, token.RBracket:
				if depth > 0 {
					depth--
				}
			case token.RBrace:
				if depth == 0 {
					if !crossBrace {
						return
					}
					p.advance()
					continue
				}
				depth--
			}
			p.advance()
			continue
		}
		if depth == 0 && isStatementStartToken(tok) {
			if tok.Kind == token.KEYWORD || p.pos != start {
				return
			}
		}
		p.advance()
	}
}

// recoverToNextStatement implements "find next statement start"
// (spec.md §4.6) at the top level.
func (p *Parser) recoverToNextStatement() {
	p.resync(true)
}

// recoverWithinBlock is the block-body variant: it must not run past
// the enclosing block's own closing '}' (the caller's block loop
// checks for RBrace next and exits cleanly if recovery lands there).
func (p *Parser) recoverWithinBlock() {
	p.resync(false)
}

// isStatementStartToken reports whether tok could reasonably begin a
// new statement: a whitelisted keyword, or a bare identifier (the
// start of an assignment or call statement).
func isStatementStartToken(tok token.Token) bool {
	if tok.Kind == token.KEYWORD {
		return statementStarters[tok.Payload.Str]
	}
	return tok.Kind == token.IDENTIFIER
}

// findEndOfBlock implements "find end of current block" (spec.md
// §4.6): scan forward tracking bracket depth, stopping at a depth-0
// '}' or at a depth-0 'class'/'import' keyword (neither of which is
// legal nested, so either marks a point that must lie outside the
// current block). Used by the block parser as a fallback when
// per-statement recovery makes no progress at all.
func (p *Parser) findEndOfBlock() {
	depth := 0
	for !p.atEnd() {
		tok := p.peek()
		if tok.Kind == token.BRACKET {
			switch tok.Payload.Bracket {
			case token.LParen, token.LBracket, token.LBrace, token.CallOpen, token.IndexOpen:
				depth++
			case token.RParen, token.RBracket:
				if depth > 0 {
					depth--
				}
			case token.RBrace:
				if depth == 0 {
					return
				}
				depth--
			}
			p.advance()
			continue
		}
		if depth == 0 && tok.Kind == token.KEYWORD && (tok.Payload.Str == "class" || tok.Payload.Str == "import") {
			return
		}
		p.advance()
	}
}
