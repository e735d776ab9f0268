package expr

import (
	"sort"
	"strconv"
)

// Expr is a node of the expression tree.
type Expr interface {
	String() string
	expr()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Ident is a variable reference.
type Ident struct {
	Name string
}

// Unary is a prefix "-" or "+".
type Unary struct {
	Op byte
	X  Expr
}

// Binary is an infix "+", "-", "*" or "/".
type Binary struct {
	Op   byte
	L, R Expr
}

// Call applies one of the built-in functions.
type Call struct {
	Func string
	Arg  Expr
}

func (*Number) expr() {}
func (*Ident) expr()  {}
func (*Unary) expr()  {}
func (*Binary) expr() {}
func (*Call) expr()   {}

func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *Ident) String() string  { return n.Name }
func (n *Unary) String() string  { return "(" + string(n.Op) + n.X.String() + ")" }
func (n *Binary) String() string {
	return "(" + n.L.String() + " " + string(n.Op) + " " + n.R.String() + ")"
}
func (n *Call) String() string { return n.Func + "(" + n.Arg.String() + ")" }

// Vars returns the distinct variable names referenced by e, sorted.
func Vars(e Expr) []string {
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Ident:
			seen[n.Name] = true
		case *Unary:
			walk(n.X)
		case *Binary:
			walk(n.L)
			walk(n.R)
		case *Call:
			walk(n.Arg)
		}
	}
	walk(e)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
