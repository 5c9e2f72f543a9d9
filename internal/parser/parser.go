// Package parser supplies the recursive-descent token-stream-to-AST
// translation spec.md §1 leaves external and SPEC_FULL.md §2.1 now supplies.
// It is plumbing, not one of the spec's three specified cores: it accepts
// the grammar implied by spec.md §4.B/§6 and fails fatally on the first
// malformed construct rather than attempting error recovery, grounded on the
// teacher's internal/parser (Parser struct holding cur/peek token, one
// parseXxx method per construct, precedence-climbing for binary operators).
package parser

import (
	"fmt"

	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/diagnostics"
	"github.com/tinypy-lang/tinypy/internal/lexer"
	"github.com/tinypy-lang/tinypy/internal/token"
)

// ParseError is returned on the first malformed construct encountered.
type ParseError struct {
	Msg  string
	Line int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: parse error: %s", e.Line, e.Col, e.Msg)
}

// ToDiagnostic reports e through the shared diagnostics.Diagnostic type
// (SPEC_FULL.md §2.2), uniformly with lexer and evaluator failures.
func (e *ParseError) ToDiagnostic() *diagnostics.Diagnostic {
	return diagnostics.New(diagnostics.Syntax, e.Line, e.Col, e.Msg)
}

// Parser walks a *lexer.Lexer's token stream via its Current/Next contract
// (spec.md §4.B) and builds an *ast.Program.
type Parser struct {
	lex *lexer.Lexer
}

// New returns a Parser positioned at lex's current token.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// Parse tokenizes nothing itself (the Lexer already did) and returns the
// full program, or the first ParseError encountered.
func Parse(source string) (*ast.Program, error) {
	return New(lexer.New(source)).ParseProgram()
}

func (p *Parser) cur() token.Token  { return p.lex.Current() }
func (p *Parser) advance() token.Token { return p.lex.Next() }

func (p *Parser) errorf(format string, args ...any) error {
	t := p.cur()
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: t.Line, Col: t.Column}
}

func (p *Parser) isChar(ch byte) bool {
	t := p.cur()
	return t.Kind == token.CHAR && t.Ch == ch
}

func (p *Parser) expectChar(ch byte) error {
	if !p.isChar(ch) {
		return p.errorf("expected %q, got %s", ch, p.cur())
	}
	p.advance()
	return nil
}

func (p *Parser) expectKind(kind token.Kind) error {
	if !p.cur().Is(kind) {
		return p.errorf("expected %s, got %s", kind, p.cur())
	}
	p.advance()
	return nil
}

func (p *Parser) expectID() (string, error) {
	t := p.cur()
	if !t.Is(token.ID) {
		return "", p.errorf("expected identifier, got %s", t)
	}
	p.advance()
	return t.Str, nil
}

// skipNewlines consumes zero or more consecutive Newline tokens, so blocks
// that open right after a Dedent-free statement still find their boundary.
func (p *Parser) skipNewlines() {
	for p.cur().Is(token.NEWLINE) {
		p.advance()
	}
}

// ParseProgram parses every top-level statement up to Eof.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	tok := p.cur()
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.cur().Is(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	return &ast.Program{Stmts: stmts, BaseNode: ast.BaseNode{Token: tok}}, nil
}

// parseBlock parses ':' Newline Indent stmt+ Dedent and returns the body as
// a single Compound statement.
func (p *Parser) parseBlock() (ast.Statement, error) {
	tok := p.cur()
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.NEWLINE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expectKind(token.INDENT); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.cur().Is(token.DEDENT) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipNewlines()
	}
	if err := p.expectKind(token.DEDENT); err != nil {
		return nil, err
	}
	return &ast.Compound{Stmts: stmts, BaseNode: ast.BaseNode{Token: tok}}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur().Kind {
	case token.CLASS:
		return p.parseClassDef()
	case token.IF:
		return p.parseIfElse()
	case token.PRINT:
		return p.parsePrint()
	case token.RETURN:
		return p.parseReturn()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseClassDef() (ast.Statement, error) {
	tok := p.cur()
	p.advance() // class
	name, err := p.expectID()
	if err != nil {
		return nil, err
	}
	parent := ""
	if p.isChar('(') {
		p.advance()
		parent, err = p.expectID()
		if err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expectKind(token.NEWLINE); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if err := p.expectKind(token.INDENT); err != nil {
		return nil, err
	}
	var methods []ast.MethodDef
	p.skipNewlines()
	for p.cur().Is(token.DEF) {
		m, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
		p.skipNewlines()
	}
	if err := p.expectKind(token.DEDENT); err != nil {
		return nil, err
	}
	return &ast.ClassDefinition{Name: name, Parent: parent, Methods: methods, BaseNode: ast.BaseNode{Token: tok}}, nil
}

func (p *Parser) parseMethodDef() (ast.MethodDef, error) {
	tok := p.cur()
	p.advance() // def
	name, err := p.expectID()
	if err != nil {
		return ast.MethodDef{}, err
	}
	if err := p.expectChar('('); err != nil {
		return ast.MethodDef{}, err
	}
	var params []string
	if !p.isChar(')') {
		param, err := p.expectID()
		if err != nil {
			return ast.MethodDef{}, err
		}
		params = append(params, param)
		for p.isChar(',') {
			p.advance()
			param, err := p.expectID()
			if err != nil {
				return ast.MethodDef{}, err
			}
			params = append(params, param)
		}
	}
	if err := p.expectChar(')'); err != nil {
		return ast.MethodDef{}, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return ast.MethodDef{}, err
	}
	return ast.MethodDef{Name: name, Params: params, Body: &ast.MethodBody{Body: body, BaseNode: ast.BaseNode{Token: tok}}}, nil
}

func (p *Parser) parseIfElse() (ast.Statement, error) {
	tok := p.cur()
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody ast.Statement
	if p.cur().Is(token.ELSE) {
		p.advance()
		elseBody, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return &ast.IfElse{Cond: cond, Then: then, Else: elseBody, BaseNode: ast.BaseNode{Token: tok}}, nil
}

// parsePrint implements the Python-2-style `print expr (',' expr)*` form;
// spec.md leaves Print's own argument-separator syntax unspecified beyond
// "evaluates each argument" (§4.F), so this module picks a comma list, the
// simplest reading consistent with "Print(args)".
func (p *Parser) parsePrint() (ast.Statement, error) {
	tok := p.cur()
	p.advance() // print
	var args []ast.Expression
	if !p.cur().Is(token.NEWLINE) && !p.cur().Is(token.EOF) {
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
	if err := p.expectKind(token.NEWLINE); err != nil {
		return nil, err
	}
	return &ast.Print{Args: args, BaseNode: ast.BaseNode{Token: tok}}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.cur()
	p.advance() // return
	var value ast.Expression
	if !p.cur().Is(token.NEWLINE) && !p.cur().Is(token.EOF) {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expectKind(token.NEWLINE); err != nil {
		return nil, err
	}
	return &ast.Return{Value: value, BaseNode: ast.BaseNode{Token: tok}}, nil
}

// parseSimpleStatement handles assignment, field assignment, and bare
// expression statements (a method call or NewInstance for its side effect).
// Parsing the left-hand side through the ordinary expression grammar and
// then checking for a trailing '=' avoids needing a separate lookahead pass:
// '=' never matches any operator at any precedence level, so an assignment
// target always comes back as *ast.VariableValue unconsumed.
func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	tok := p.cur()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.isChar('=') {
		p.advance()
		varRef, ok := expr.(*ast.VariableValue)
		if !ok {
			return nil, p.errorf("invalid assignment target")
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKind(token.NEWLINE); err != nil {
			return nil, err
		}
		if len(varRef.Path) == 1 {
			return &ast.Assignment{Name: varRef.Path[0], Rhs: rhs, BaseNode: ast.BaseNode{Token: tok}}, nil
		}
		return &ast.FieldAssignment{
			TargetPath: varRef.Path[:len(varRef.Path)-1],
			Field:      varRef.Path[len(varRef.Path)-1],
			Rhs:        rhs,
			BaseNode:   ast.BaseNode{Token: tok},
		}, nil
	}
	if err := p.expectKind(token.NEWLINE); err != nil {
		return nil, err
	}
	return &ast.ExprStatement{Expr: expr, BaseNode: ast.BaseNode{Token: tok}}, nil
}
