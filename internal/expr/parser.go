package expr

import "fmt"

// Binding powers.
const (
	bpNone  = 0
	bpSum   = 60
	bpProd  = 70
	bpUnary = 80
)

// functions lists the callable built-ins.
var functions = map[string]bool{
	"exp":  true,
	"log":  true,
	"sqrt": true,
}

// Parse parses src into an expression tree.
func Parse(src string) (Expr, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", describe(tok))}
	}
	return e, nil
}

type parser struct {
	toks []Token
	i    int
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) next() Token {
	tok := p.toks[p.i]
	if tok.Type != EOF {
		p.i++
	}
	return tok
}

func (p *parser) need(tt TokenType) (Token, error) {
	tok := p.next()
	if tok.Type != tt {
		return tok, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected %s, found %s", tt, describe(tok))}
	}
	return tok, nil
}

// lbp returns the left binding power of an infix operator.
func lbp(t TokenType) (int, bool) {
	switch t {
	case STAR, SLASH:
		return bpProd, true
	case PLUS, MINUS:
		return bpSum, true
	}
	return 0, false
}

// parseExpr parses operators that bind tighter than rbp.
// All infix operators are left-associative.
func (p *parser) parseExpr(rbp int) (Expr, error) {
	left, err := p.nud()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		bp, ok := lbp(tok.Type)
		if !ok || bp <= rbp {
			return left, nil
		}
		p.next()
		right, err := p.parseExpr(bp)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: tok.Text[0], L: left, R: right}
	}
}

// nud parses a prefix position: literal, variable, call, group or sign.
func (p *parser) nud() (Expr, error) {
	tok := p.next()
	switch tok.Type {
	case NUMBER:
		return &Number{Value: tok.Value}, nil
	case IDENT:
		if p.peek().Type != LPAREN {
			return &Ident{Name: tok.Text}, nil
		}
		if !functions[tok.Text] {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unknown function %q", tok.Text), Err: ErrUnknownFunction}
		}
		p.next()
		arg, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN); err != nil {
			return nil, err
		}
		return &Call{Func: tok.Text, Arg: arg}, nil
	case MINUS, PLUS:
		x, err := p.parseExpr(bpUnary)
		if err != nil {
			return nil, err
		}
		return &Unary{Op: tok.Text[0], X: x}, nil
	case LPAREN:
		e, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", describe(tok))}
	}
}

func describe(tok Token) string {
	switch tok.Type {
	case NUMBER, IDENT:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	default:
		return tok.Type.String()
	}
}
