// Package expr parses infix arithmetic expressions and evaluates them on an
// autodiff tape.
//
// Grammar:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("-" | "+") unary | primary
//	primary = number | ident | ident "(" expr ")" | "(" expr ")"
//
// Functions: exp, log, sqrt. Numbers accept a fraction and an exponent
// (1.5e-3). Identifiers are letters, digits and underscores, not starting
// with a digit.
//
// Constants never become graph nodes unless a Var result is required: a
// constant operand uses the scalar form of the operation, constant-only
// sub-expressions are folded, and a constant on the left of "-" or "/" is
// lifted into a leaf, as autodiff.ScalarSub and autodiff.ScalarDiv do.
package expr
