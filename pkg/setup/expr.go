// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package setup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Expr is an arithmetic expression over free parameters, such as "{prob} / 10".
// Free parameters are written either in curly braces or as bare identifiers.
// Expressions are evaluated in exact decimal arithmetic, and only converted to
// floating point at the end.
type Expr struct {
	text  string
	root  node
	names []string
}

// ParseExpr parses an expression, returning a ConfigError if it is malformed.
func ParseExpr(text string) (*Expr, error) {
	input := []rune(text)
	tokens, errIndex := tokenise(input)
	//
	if errIndex >= 0 {
		return nil, NewConfigError("", "unknown text %q in expression %q", string(input[errIndex:]), text)
	}
	//
	p := &exprParser{input, tokens, 0, nil}
	root, err := p.parseSum()
	//
	if err == nil && p.lookahead().kind != END_OF {
		err = p.syntaxError("unexpected text")
	}
	//
	if err != nil {
		return nil, err
	}
	//
	slices.Sort(p.names)
	//
	return &Expr{text, root, slices.Compact(p.names)}, nil
}

// Names returns the (sorted) free parameters used in this expression.
func (e *Expr) Names() []string {
	return e.names
}

// Eval evaluates this expression using the given bindings.  If a free
// parameter is unbound, its name is returned in an unboundError.
func (e *Expr) Eval(bindings map[string]float64) (float64, error) {
	value, err := e.root.eval(bindings)
	if err != nil {
		return 0, err
	}
	//
	f, _ := value.Float64()
	//
	return f, nil
}

func (e *Expr) String() string {
	return e.text
}

// unboundError is returned internally when evaluation encounters an unbound
// free parameter.  It is converted into an UnboundParameterError by the setup,
// which knows the parameter and scope being resolved.
type unboundError struct {
	name string
}

func (e *unboundError) Error() string {
	return fmt.Sprintf("free parameter %q is unbound", e.name)
}

var errDivisionByZero = errors.New("division by zero")

// ============================================================================
// Expression tree
// ============================================================================

type node interface {
	eval(bindings map[string]float64) (decimal.Decimal, error)
}

type constant struct {
	value decimal.Decimal
}

func (c *constant) eval(map[string]float64) (decimal.Decimal, error) {
	return c.value, nil
}

type variable struct {
	name string
}

func (v *variable) eval(bindings map[string]float64) (decimal.Decimal, error) {
	if value, ok := bindings[v.name]; ok {
		return decimal.NewFromFloat(value), nil
	}
	//
	return decimal.Zero, &unboundError{v.name}
}

type negation struct {
	arg node
}

func (n *negation) eval(bindings map[string]float64) (decimal.Decimal, error) {
	value, err := n.arg.eval(bindings)
	return value.Neg(), err
}

type binary struct {
	op  uint
	lhs node
	rhs node
}

func (b *binary) eval(bindings map[string]float64) (decimal.Decimal, error) {
	lhs, err := b.lhs.eval(bindings)
	if err != nil {
		return lhs, err
	}
	//
	rhs, err := b.rhs.eval(bindings)
	if err != nil {
		return rhs, err
	}
	//
	switch b.op {
	case ADD:
		return lhs.Add(rhs), nil
	case SUB:
		return lhs.Sub(rhs), nil
	case MUL:
		return lhs.Mul(rhs), nil
	case DIV:
		if rhs.IsZero() {
			return decimal.Zero, errDivisionByZero
		}
		//
		return lhs.Div(rhs), nil
	}
	//
	panic("unreachable")
}

// ============================================================================
// Parser
// ============================================================================

type exprParser struct {
	input  []rune
	tokens []token
	index  int
	names  []string
}

// sum := product (('+' | '-') product)*
func (p *exprParser) parseSum() (node, error) {
	lhs, err := p.parseProduct()
	//
	for err == nil && p.follows(ADD, SUB) {
		op := p.next().kind
		//
		var rhs node
		if rhs, err = p.parseProduct(); err == nil {
			lhs = &binary{op, lhs, rhs}
		}
	}
	//
	return lhs, err
}

// product := unary (('*' | '/') unary)*
func (p *exprParser) parseProduct() (node, error) {
	lhs, err := p.parseUnary()
	//
	for err == nil && p.follows(MUL, DIV) {
		op := p.next().kind
		//
		var rhs node
		if rhs, err = p.parseUnary(); err == nil {
			lhs = &binary{op, lhs, rhs}
		}
	}
	//
	return lhs, err
}

// unary := '-' unary | atom
func (p *exprParser) parseUnary() (node, error) {
	if p.follows(SUB) {
		p.next()
		//
		arg, err := p.parseUnary()
		//
		return &negation{arg}, err
	}
	//
	return p.parseAtom()
}

// atom := NUMBER | IDENTIFIER | '{' IDENTIFIER '}' | '(' sum ')'
func (p *exprParser) parseAtom() (node, error) {
	switch p.lookahead().kind {
	case NUMBER:
		text := p.text(p.next())
		//
		if text[0] == '.' {
			text = "0" + text
		}
		//
		value, err := decimal.NewFromString(text)
		if err != nil {
			return nil, NewConfigError("", "invalid number %q", text)
		}
		//
		return &constant{value}, nil
	case IDENTIFIER:
		return p.parseName(), nil
	case LCURLY:
		p.next()
		//
		if !p.follows(IDENTIFIER) {
			return nil, p.syntaxError("expected parameter name")
		}
		//
		name := p.parseName()
		//
		if !p.match(RCURLY) {
			return nil, p.syntaxError("expected '}'")
		}
		//
		return name, nil
	case LBRACE:
		p.next()
		//
		inner, err := p.parseSum()
		if err == nil && !p.match(RBRACE) {
			err = p.syntaxError("expected ')'")
		}
		//
		return inner, err
	}
	//
	return nil, p.syntaxError("expected number or parameter")
}

func (p *exprParser) parseName() node {
	name := p.text(p.next())
	p.names = append(p.names, name)
	//
	return &variable{name}
}

func (p *exprParser) lookahead() token {
	return p.tokens[p.index]
}

func (p *exprParser) next() token {
	t := p.tokens[p.index]
	// END_OF is never consumed
	if t.kind != END_OF {
		p.index++
	}
	//
	return t
}

func (p *exprParser) follows(kinds ...uint) bool {
	return slices.Contains(kinds, p.lookahead().kind)
}

func (p *exprParser) match(kind uint) bool {
	if p.follows(kind) {
		p.next()
		return true
	}
	//
	return false
}

func (p *exprParser) text(t token) string {
	return string(p.input[t.start:t.end])
}

func (p *exprParser) syntaxError(msg string) error {
	t := p.lookahead()
	//
	if t.kind == END_OF {
		return NewConfigError("", "%s at end of expression %q", msg, string(p.input))
	}
	//
	return NewConfigError("", "%s at %q in expression %q", msg, p.text(t), string(p.input))
}
