package ldscript

import (
	"fmt"
	"strconv"

	"github.com/wippyai/fwsize/ldscript/internal/token"
)

type parser struct {
	script *Script
	tokens []token.Token
	pos    int
}

func newParser(tokens []token.Token) *parser {
	return &parser{tokens: tokens}
}

func (p *parser) parse() (*Script, error) {
	p.script = &Script{}
	for {
		t := p.peek()
		if t == nil {
			break
		}
		if t.Type == token.Ident {
			switch t.Value {
			case "MEMORY":
				p.next()
				if err := p.parseMemory(); err != nil {
					return nil, err
				}
				continue
			case "SECTIONS":
				p.next()
				if err := p.parseSections(); err != nil {
					return nil, err
				}
				continue
			}
		}
		p.skipCommand()
	}
	return p.script, nil
}

func (p *parser) peek() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token.Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ token.Type) (*token.Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of script")
	}
	if t.Type != typ {
		return nil, fmt.Errorf("line %d: expected %v, got %q", t.Line, typ, t.Value)
	}
	return t, nil
}

// skipCommand advances past one top-level command we do not interpret:
// ENTRY(sym), OUTPUT_FORMAT(...), a symbol assignment, or any stray
// token.
func (p *parser) skipCommand() {
	t := p.next()
	if t == nil || t.Type != token.Ident {
		return
	}
	switch n := p.peek(); {
	case n == nil:
	case n.Type == token.LParen:
		p.skipParens()
		if s := p.peek(); s != nil && s.Type == token.Semicolon {
			p.next()
		}
	case n.Type == token.Assign:
		p.skipToSemicolon()
	}
}

// skipParens consumes a balanced parenthesized group. The opening
// parenthesis must be the next token.
func (p *parser) skipParens() {
	depth := 0
	for {
		t := p.next()
		if t == nil {
			return
		}
		switch t.Type {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

// skipBraces consumes a balanced braced group. The opening brace must
// be the next token.
func (p *parser) skipBraces() {
	depth := 0
	for {
		t := p.next()
		if t == nil {
			return
		}
		switch t.Type {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

func (p *parser) skipToSemicolon() {
	for {
		t := p.next()
		if t == nil || t.Type == token.Semicolon {
			return
		}
	}
}

func (p *parser) parseMemory() error {
	if _, err := p.expect(token.LBrace); err != nil {
		return err
	}
	for {
		t := p.peek()
		if t == nil {
			return fmt.Errorf("unterminated MEMORY block")
		}
		if t.Type == token.RBrace {
			p.next()
			return nil
		}
		if t.Type == token.Semicolon || t.Type == token.Comma {
			p.next()
			continue
		}
		if err := p.parseRegion(); err != nil {
			return err
		}
	}
}

// parseRegion parses one MEMORY entry:
//
//	NAME [(attrs)] : ORIGIN = expr, LENGTH = expr
//
// ORIGIN and LENGTH accept the org/o and len/l spellings ld allows.
func (p *parser) parseRegion() error {
	name, err := p.expect(token.Ident)
	if err != nil {
		return err
	}
	region := MemoryRegion{Name: name.Value}

	if t := p.peek(); t != nil && t.Type == token.LParen {
		p.next()
		for {
			t := p.next()
			if t == nil {
				return fmt.Errorf("unterminated attribute list for region %s", region.Name)
			}
			if t.Type == token.RParen {
				break
			}
			if t.Type == token.Ident {
				region.Attrs += t.Value
			}
		}
	}

	if _, err := p.expect(token.Colon); err != nil {
		return err
	}

	region.Origin, err = p.parseRegionField("ORIGIN", "org", "o")
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Comma); err != nil {
		return err
	}
	region.Length, err = p.parseRegionField("LENGTH", "len", "l")
	if err != nil {
		return err
	}

	p.script.Regions = append(p.script.Regions, region)
	return nil
}

func (p *parser) parseRegionField(spellings ...string) (uint64, error) {
	t, err := p.expect(token.Ident)
	if err != nil {
		return 0, err
	}
	known := false
	for _, s := range spellings {
		if t.Value == s {
			known = true
			break
		}
	}
	if !known {
		return 0, fmt.Errorf("line %d: expected %s, got %q", t.Line, spellings[0], t.Value)
	}
	if _, err := p.expect(token.Assign); err != nil {
		return 0, err
	}
	return p.parseExpr()
}

func (p *parser) parseExpr() (uint64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t == nil {
			return left, nil
		}
		switch t.Type {
		case token.Plus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case token.Minus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (uint64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t == nil {
			return left, nil
		}
		switch t.Type {
		case token.Star:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			left *= right
		case token.Slash:
			p.next()
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("line %d: division by zero", t.Line)
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *parser) parseFactor() (uint64, error) {
	t := p.next()
	if t == nil {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	switch t.Type {
	case token.Number:
		return parseNumber(t)
	case token.LParen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return 0, err
		}
		return v, nil
	case token.Minus:
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case token.Ident:
		if t.Value == "ORIGIN" || t.Value == "LENGTH" {
			if _, err := p.expect(token.LParen); err != nil {
				return 0, err
			}
			name, err := p.expect(token.Ident)
			if err != nil {
				return 0, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return 0, err
			}
			r, ok := p.script.Region(name.Value)
			if !ok {
				return 0, fmt.Errorf("line %d: %s references undeclared region %q", t.Line, t.Value, name.Value)
			}
			if t.Value == "ORIGIN" {
				return r.Origin, nil
			}
			return r.Length, nil
		}
	}
	return 0, fmt.Errorf("line %d: unexpected %q in expression", t.Line, t.Value)
}

// parseNumber evaluates a number literal with an optional K/M/G scale
// suffix. The radix prefix (0x, 0) is handled by ParseUint.
func parseNumber(t *token.Token) (uint64, error) {
	s := t.Value
	var scale uint64 = 1
	if len(s) > 1 {
		switch s[len(s)-1] {
		case 'K', 'k':
			scale, s = 1<<10, s[:len(s)-1]
		case 'M', 'm':
			scale, s = 1<<20, s[:len(s)-1]
		case 'G', 'g':
			scale, s = 1<<30, s[:len(s)-1]
		}
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid number %q", t.Line, t.Value)
	}
	return v * scale, nil
}

func (p *parser) parseSections() error {
	if _, err := p.expect(token.LBrace); err != nil {
		return err
	}
	for {
		t := p.peek()
		if t == nil {
			return fmt.Errorf("unterminated SECTIONS block")
		}
		if t.Type == token.RBrace {
			p.next()
			return nil
		}
		if err := p.parseSectionStatement(); err != nil {
			return err
		}
	}
}

// parseSectionStatement handles one statement inside SECTIONS: an
// output section definition, a symbol assignment, or a command such as
// PROVIDE. Only output section definitions contribute to the script.
func (p *parser) parseSectionStatement() error {
	t := p.next()
	if t == nil {
		return fmt.Errorf("unexpected end of SECTIONS block")
	}
	if t.Type != token.Ident && t.Type != token.String {
		return nil
	}
	name := t.Value

	// The statement's kind is decided by the first structural token
	// outside parentheses: a colon introduces an output section, an
	// assignment or bare call is skipped.
	for {
		n := p.peek()
		if n == nil {
			return nil
		}
		switch n.Type {
		case token.Colon:
			p.next()
			return p.parseOutputSection(name)
		case token.Assign:
			p.skipToSemicolon()
			return nil
		case token.Semicolon:
			p.next()
			return nil
		case token.LParen:
			p.skipParens()
		case token.RBrace:
			return nil
		default:
			p.next()
		}
	}
}

// parseOutputSection consumes an output section after its colon: any
// decorations before the body, the braced body itself, then the
// placement annotations `> REGION` and `AT> REGION` plus trailing
// phdr and fill clauses.
func (p *parser) parseOutputSection(name string) error {
	out := OutputSection{Name: name}

	for {
		t := p.peek()
		if t == nil {
			return fmt.Errorf("unterminated output section %s", name)
		}
		if t.Type == token.LBrace {
			break
		}
		if t.Type == token.LParen {
			p.skipParens()
			continue
		}
		p.next()
	}
	p.skipBraces()

	for {
		t := p.peek()
		if t == nil {
			break
		}
		if t.Type == token.Greater {
			p.next()
			r, err := p.expect(token.Ident)
			if err != nil {
				return err
			}
			out.Region = r.Value
			continue
		}
		if t.Type == token.Ident && t.Value == "AT" {
			p.next()
			if _, err := p.expect(token.Greater); err != nil {
				return err
			}
			r, err := p.expect(token.Ident)
			if err != nil {
				return err
			}
			out.LoadRegion = r.Value
			continue
		}
		if t.Type == token.Colon {
			p.next()
			if n := p.peek(); n != nil && n.Type == token.Ident {
				p.next()
			}
			continue
		}
		if t.Type == token.Assign {
			p.next()
			if n := p.peek(); n != nil && (n.Type == token.Number || n.Type == token.LParen) {
				if n.Type == token.LParen {
					p.skipParens()
				} else {
					p.next()
				}
			}
			continue
		}
		if t.Type == token.Comma {
			p.next()
		}
		break
	}

	p.script.Outputs = append(p.script.Outputs, out)
	return nil
}
