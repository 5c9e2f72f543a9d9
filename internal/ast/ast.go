// Package ast defines the AST node types spec.md §4.F evaluates. Nodes carry
// no behavior of their own - evaluation lives entirely in internal/evaluator's
// type-switch dispatcher, the way the teacher's internal/ast is pure data
// consumed by a separate evaluator.Eval rather than nodes with their own
// Execute methods. This package imports only internal/token (for node
// positions); keeping internal/object and internal/evaluator out of its
// imports is what lets internal/object import ast for Method.Body without a
// cycle.
package ast

import "github.com/tinypy-lang/tinypy/internal/token"

// Node is any AST node.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a node executed for effect (spec.md calls this statement-ref).
type Statement interface {
	Node
	statementNode()
}

// Expression is a node evaluated for a value.
type Expression interface {
	Node
	expressionNode()
}

type BaseNode struct {
	Token token.Token
}

func (n BaseNode) TokenLiteral() string  { return n.Token.String() }
func (n BaseNode) GetToken() token.Token { return n.Token }

// NumericConst is a literal integer (spec.md §4.F).
type NumericConst struct {
	BaseNode
	Value int32
}

func (*NumericConst) expressionNode() {}

// StringConst is a literal string.
type StringConst struct {
	BaseNode
	Value string
}

func (*StringConst) expressionNode() {}

// BoolConst is a literal True/False.
type BoolConst struct {
	BaseNode
	Value bool
}

func (*BoolConst) expressionNode() {}

// NoneConst is the literal None.
type NoneConst struct {
	BaseNode
}

func (*NoneConst) expressionNode() {}

// VariableValue is a name lookup, optionally a dotted path (spec.md §4.F).
// Path has length 1 for a bare name; longer paths resolve Path[0] in the
// closure and each further component as a field of the previous result.
type VariableValue struct {
	BaseNode
	Path []string
}

func (*VariableValue) expressionNode() {}

// Assignment binds Rhs's value to Name in the current closure.
type Assignment struct {
	BaseNode
	Name string
	Rhs  Expression
}

func (*Assignment) expressionNode() {}
func (*Assignment) statementNode()  {}

// FieldAssignment sets Field on the class instance resolved from TargetPath.
type FieldAssignment struct {
	BaseNode
	TargetPath []string
	Field      string
	Rhs        Expression
}

func (*FieldAssignment) expressionNode() {}
func (*FieldAssignment) statementNode()  {}

// Print prints each of Args separated by a space, then a newline.
type Print struct {
	BaseNode
	Args []Expression
}

func (*Print) statementNode() {}

// Stringify renders Arg as a String without producing visible output.
type Stringify struct {
	BaseNode
	Arg Expression
}

func (*Stringify) expressionNode() {}

// BinOp is the operator kind for Add/Sub/Mult/Div.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMult
	OpDiv
)

// Arithmetic is a binary arithmetic expression.
type Arithmetic struct {
	BaseNode
	Op  BinOp
	Lhs Expression
	Rhs Expression
}

func (*Arithmetic) expressionNode() {}

// Or is a short-circuiting boolean or.
type Or struct {
	BaseNode
	Lhs Expression
	Rhs Expression
}

func (*Or) expressionNode() {}

// And is a non-short-circuiting boolean and (spec.md §9 note (b), preserved).
type And struct {
	BaseNode
	Lhs Expression
	Rhs Expression
}

func (*And) expressionNode() {}

// Not negates the truthiness of Arg.
type Not struct {
	BaseNode
	Arg Expression
}

func (*Not) expressionNode() {}

// CompareOp is the comparator kind for Comparison.
type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLess
	CmpGreater
	CmpLessOrEqual
	CmpGreaterOrEqual
)

// Comparison applies a type-directed comparator (spec.md §4.G).
type Comparison struct {
	BaseNode
	Op  CompareOp
	Lhs Expression
	Rhs Expression
}

func (*Comparison) expressionNode() {}

// MethodCall evaluates Object to a class instance and calls Method on it.
type MethodCall struct {
	BaseNode
	Object Expression
	Method string
	Args   []Expression
}

func (*MethodCall) expressionNode() {}

// NewInstance allocates an instance of Class, calling __init__ if present.
// The node itself is the aliasing key for spec.md §9 note (d): the evaluator
// caches one *object.Instance per *NewInstance node pointer.
type NewInstance struct {
	BaseNode
	Class string
	Args  []Expression
}

func (*NewInstance) expressionNode() {}

// Compound runs Stmts in order and yields the invalid holder.
type Compound struct {
	BaseNode
	Stmts []Statement
}

func (*Compound) statementNode() {}

// Return unwinds the enclosing MethodBody carrying Value's evaluation.
type Return struct {
	BaseNode
	Value Expression
}

func (*Return) statementNode() {}

// MethodBody runs Body inside a non-local-exit barrier that catches Return.
type MethodBody struct {
	BaseNode
	Body Statement
}

func (*MethodBody) statementNode() {}

// IfElse runs Then if Cond is truthy, otherwise Else if present.
type IfElse struct {
	BaseNode
	Cond Expression
	Then Statement
	Else Statement // nil if absent
}

func (*IfElse) statementNode() {}

// MethodDef is one method inside a ClassDefinition.
type MethodDef struct {
	Name   string
	Params []string
	Body   *MethodBody
}

// ClassDefinition binds a new Class object into the closure under Name.
type ClassDefinition struct {
	BaseNode
	Name    string
	Parent  string // "" if no parent
	Methods []MethodDef
}

func (*ClassDefinition) statementNode() {}
func (*ClassDefinition) expressionNode() {}

// ExprStatement is an expression executed for its side effect, its value
// discarded (a method call or NewInstance standing alone on a line).
type ExprStatement struct {
	BaseNode
	Expr Expression
}

func (*ExprStatement) statementNode() {}

// Program is the root node: every top-level statement of a source file, in
// order.
type Program struct {
	BaseNode
	Stmts []Statement
}

func (*Program) statementNode() {}
