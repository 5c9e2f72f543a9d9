package parser

import (
	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/token"
)

// parseExpr is the grammar's entry point: precedence climbs from Or (lowest)
// down to primary/postfix (highest), one parse method per level, in the
// teacher's recursive-descent style rather than a token-type precedence
// table - this grammar has few enough operators that the table buys nothing.
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	tok := p.cur()
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Is(token.OR) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Or{Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	tok := p.cur()
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().Is(token.AND) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.And{Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expression, error) {
	if p.cur().Is(token.NOT) {
		tok := p.cur()
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Arg: arg, BaseNode: ast.BaseNode{Token: tok}}, nil
	}
	return p.parseComparison()
}

var compareOps = map[token.Kind]ast.CompareOp{
	token.EQ:          ast.CmpEq,
	token.NOTEQ:       ast.CmpNotEq,
	token.LESSOREQ:    ast.CmpLessOrEqual,
	token.GREATEROREQ: ast.CmpGreaterOrEqual,
}

// comparisons do not chain (spec.md gives no chained-comparator semantics):
// at most one comparator may appear in a comparisonExpr.
func (p *Parser) parseComparison() (ast.Expression, error) {
	tok := p.cur()
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	cur := p.cur()
	if op, ok := compareOps[cur.Kind]; ok {
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: op, Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}, nil
	}
	if cur.Kind == token.CHAR && cur.Ch == '<' {
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: ast.CmpLess, Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}, nil
	}
	if cur.Kind == token.CHAR && cur.Ch == '>' {
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: ast.CmpGreater, Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}, nil
	}
	return left, nil
}

func (p *Parser) parseAdd() (ast.Expression, error) {
	tok := p.cur()
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.isChar('+') || p.isChar('-') {
		op := ast.OpAdd
		if p.isChar('-') {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = &ast.Arithmetic{Op: op, Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}
	}
	return left, nil
}

func (p *Parser) parseMul() (ast.Expression, error) {
	tok := p.cur()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isChar('*') || p.isChar('/') {
		op := ast.OpMult
		if p.isChar('/') {
			op = ast.OpDiv
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Arithmetic{Op: op, Lhs: left, Rhs: right, BaseNode: ast.BaseNode{Token: tok}}
	}
	return left, nil
}

// parseUnary handles unary minus by desugaring `-x` into `0 - x`; spec.md's
// AST has no dedicated unary-negation node, only the Sub binary op.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.isChar('-') {
		tok := p.cur()
		p.advance()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		zero := &ast.NumericConst{Value: 0, BaseNode: ast.BaseNode{Token: tok}}
		return &ast.Arithmetic{Op: ast.OpSub, Lhs: zero, Rhs: arg, BaseNode: ast.BaseNode{Token: tok}}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses one atom and then any '.'-postfix chain of field
// accesses and/or method calls on it (spec.md §4.F VariableValue-dotted-path
// and MethodCall).
func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.NUMBER:
		p.advance()
		return &ast.NumericConst{Value: tok.Num, BaseNode: ast.BaseNode{Token: tok}}, nil
	case token.STRING:
		p.advance()
		return &ast.StringConst{Value: tok.Str, BaseNode: ast.BaseNode{Token: tok}}, nil
	case token.TRUE:
		p.advance()
		return &ast.BoolConst{Value: true, BaseNode: ast.BaseNode{Token: tok}}, nil
	case token.FALSE:
		p.advance()
		return &ast.BoolConst{Value: false, BaseNode: ast.BaseNode{Token: tok}}, nil
	case token.NONE:
		p.advance()
		return &ast.NoneConst{BaseNode: ast.BaseNode{Token: tok}}, nil
	case token.ID:
		return p.parseIdentifierExpr()
	case token.CHAR:
		if tok.Ch == '(' {
			p.advance()
			inner, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectChar(')'); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, p.errorf("unexpected token %s", tok)
}

// parseIdentifierExpr parses a bare identifier into either a NewInstance
// (identifier directly followed by '(', the only call form this language
// has since there are no free functions - spec.md §1, only methods), a
// dotted VariableValue path, or a MethodCall/chain of method calls.
func (p *Parser) parseIdentifierExpr() (ast.Expression, error) {
	tok := p.cur()
	name, err := p.expectID()
	if err != nil {
		return nil, err
	}

	if p.isChar('(') {
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		expr := ast.Expression(&ast.NewInstance{Class: name, Args: args, BaseNode: ast.BaseNode{Token: tok}})
		return p.parseTrailers(expr, tok)
	}

	path := []string{name}
	for p.isChar('.') {
		p.advance()
		field, err := p.expectID()
		if err != nil {
			return nil, err
		}
		if p.isChar('(') {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			obj := ast.Expression(&ast.VariableValue{Path: path, BaseNode: ast.BaseNode{Token: tok}})
			call := ast.Expression(&ast.MethodCall{Object: obj, Method: field, Args: args, BaseNode: ast.BaseNode{Token: tok}})
			return p.parseTrailers(call, tok)
		}
		path = append(path, field)
	}
	return &ast.VariableValue{Path: path, BaseNode: ast.BaseNode{Token: tok}}, nil
}

// parseTrailers continues a '.'-method-call chain after expr has already
// resolved to something other than a plain variable path (e.g. a.b().c()).
// Plain field reads off such an expression have no AST node in spec.md's
// model (VariableValue's dotted path only resolves from a closure root), so
// only further method calls are accepted here.
func (p *Parser) parseTrailers(expr ast.Expression, tok token.Token) (ast.Expression, error) {
	for p.isChar('.') {
		p.advance()
		method, err := p.expectID()
		if err != nil {
			return nil, err
		}
		if !p.isChar('(') {
			return nil, p.errorf("expected method call after '.', got %s", p.cur())
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		expr = &ast.MethodCall{Object: expr, Method: method, Args: args, BaseNode: ast.BaseNode{Token: tok}}
	}
	return expr, nil
}

// parseArgList parses a parenthesized, comma-separated argument list,
// assuming the current token is the opening '('.
func (p *Parser) parseArgList() ([]ast.Expression, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	var args []ast.Expression
	if !p.isChar(')') {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.isChar(',') {
			p.advance()
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}
