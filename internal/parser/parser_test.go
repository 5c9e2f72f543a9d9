package parser

import (
	"testing"

	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/diagnostics"
)

func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected exactly one top-level statement, got %d", len(prog.Stmts))
	}
	return prog.Stmts[0]
}

func TestParseAssignment(t *testing.T) {
	stmt := parseOne(t, "x = 1\n")
	a, ok := stmt.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", stmt)
	}
	if a.Name != "x" {
		t.Errorf("Name = %q, want %q", a.Name, "x")
	}
	n, ok := a.Rhs.(*ast.NumericConst)
	if !ok || n.Value != 1 {
		t.Errorf("Rhs = %#v, want NumericConst{1}", a.Rhs)
	}
}

func TestParseFieldAssignment(t *testing.T) {
	stmt := parseOne(t, "self.count = 1\n")
	fa, ok := stmt.(*ast.FieldAssignment)
	if !ok {
		t.Fatalf("expected *ast.FieldAssignment, got %T", stmt)
	}
	if len(fa.TargetPath) != 1 || fa.TargetPath[0] != "self" {
		t.Errorf("TargetPath = %v, want [self]", fa.TargetPath)
	}
	if fa.Field != "count" {
		t.Errorf("Field = %q, want %q", fa.Field, "count")
	}
}

func TestParseExprStatement(t *testing.T) {
	stmt := parseOne(t, "obj.greet()\n")
	es, ok := stmt.(*ast.ExprStatement)
	if !ok {
		t.Fatalf("expected *ast.ExprStatement, got %T", stmt)
	}
	if _, ok := es.Expr.(*ast.MethodCall); !ok {
		t.Errorf("expected Expr to be *ast.MethodCall, got %T", es.Expr)
	}
}

func TestParseNewInstance(t *testing.T) {
	stmt := parseOne(t, "x = Dog()\n")
	a := stmt.(*ast.Assignment)
	ni, ok := a.Rhs.(*ast.NewInstance)
	if !ok {
		t.Fatalf("expected *ast.NewInstance, got %T", a.Rhs)
	}
	if ni.Class != "Dog" {
		t.Errorf("Class = %q, want %q", ni.Class, "Dog")
	}
}

func TestParseMethodCallWithArgs(t *testing.T) {
	stmt := parseOne(t, "x = obj.add(1, 2)\n")
	a := stmt.(*ast.Assignment)
	mc, ok := a.Rhs.(*ast.MethodCall)
	if !ok {
		t.Fatalf("expected *ast.MethodCall, got %T", a.Rhs)
	}
	if mc.Method != "add" || len(mc.Args) != 2 {
		t.Fatalf("got Method=%q, %d args", mc.Method, len(mc.Args))
	}
}

func TestParseMethodCallChain(t *testing.T) {
	stmt := parseOne(t, "x = obj.a().b()\n")
	a := stmt.(*ast.Assignment)
	outer, ok := a.Rhs.(*ast.MethodCall)
	if !ok {
		t.Fatalf("expected outer *ast.MethodCall, got %T", a.Rhs)
	}
	if outer.Method != "b" {
		t.Errorf("outer Method = %q, want %q", outer.Method, "b")
	}
	inner, ok := outer.Object.(*ast.MethodCall)
	if !ok {
		t.Fatalf("expected chained *ast.MethodCall, got %T", outer.Object)
	}
	if inner.Method != "a" {
		t.Errorf("inner Method = %q, want %q", inner.Method, "a")
	}
}

func TestParseDottedVariablePath(t *testing.T) {
	stmt := parseOne(t, "x = self.count\n")
	a := stmt.(*ast.Assignment)
	v, ok := a.Rhs.(*ast.VariableValue)
	if !ok {
		t.Fatalf("expected *ast.VariableValue, got %T", a.Rhs)
	}
	want := []string{"self", "count"}
	if len(v.Path) != len(want) || v.Path[0] != want[0] || v.Path[1] != want[1] {
		t.Errorf("Path = %v, want %v", v.Path, want)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3), Mult binding tighter than Add.
	stmt := parseOne(t, "x = 1 + 2 * 3\n")
	a := stmt.(*ast.Assignment)
	top, ok := a.Rhs.(*ast.Arithmetic)
	if !ok || top.Op != ast.OpAdd {
		t.Fatalf("expected top-level OpAdd, got %#v", a.Rhs)
	}
	lhs, ok := top.Lhs.(*ast.NumericConst)
	if !ok || lhs.Value != 1 {
		t.Errorf("Lhs = %#v, want NumericConst{1}", top.Lhs)
	}
	rhs, ok := top.Rhs.(*ast.Arithmetic)
	if !ok || rhs.Op != ast.OpMult {
		t.Fatalf("Rhs = %#v, want nested OpMult", top.Rhs)
	}
}

func TestParseUnaryMinusDesugarsToZeroMinusX(t *testing.T) {
	stmt := parseOne(t, "x = -y\n")
	a := stmt.(*ast.Assignment)
	arith, ok := a.Rhs.(*ast.Arithmetic)
	if !ok || arith.Op != ast.OpSub {
		t.Fatalf("expected OpSub desugaring, got %#v", a.Rhs)
	}
	lhs, ok := arith.Lhs.(*ast.NumericConst)
	if !ok || lhs.Value != 0 {
		t.Errorf("Lhs = %#v, want NumericConst{0}", arith.Lhs)
	}
	if _, ok := arith.Rhs.(*ast.VariableValue); !ok {
		t.Errorf("Rhs = %#v, want *ast.VariableValue", arith.Rhs)
	}
}

func TestParseLessAndGreaterComparison(t *testing.T) {
	stmt := parseOne(t, "x = a < b\n")
	a := stmt.(*ast.Assignment)
	cmp, ok := a.Rhs.(*ast.Comparison)
	if !ok || cmp.Op != ast.CmpLess {
		t.Fatalf("expected CmpLess, got %#v", a.Rhs)
	}

	stmt2 := parseOne(t, "x = a > b\n")
	a2 := stmt2.(*ast.Assignment)
	cmp2, ok := a2.Rhs.(*ast.Comparison)
	if !ok || cmp2.Op != ast.CmpGreater {
		t.Fatalf("expected CmpGreater, got %#v", a2.Rhs)
	}
}

func TestParseMultiCharComparisons(t *testing.T) {
	cases := []struct {
		src string
		op  ast.CompareOp
	}{
		{"x = a == b\n", ast.CmpEq},
		{"x = a != b\n", ast.CmpNotEq},
		{"x = a <= b\n", ast.CmpLessOrEqual},
		{"x = a >= b\n", ast.CmpGreaterOrEqual},
	}
	for _, tt := range cases {
		a := parseOne(t, tt.src).(*ast.Assignment)
		cmp, ok := a.Rhs.(*ast.Comparison)
		if !ok || cmp.Op != tt.op {
			t.Errorf("%q: got %#v, want Op=%v", tt.src, a.Rhs, tt.op)
		}
	}
}

func TestParsePrintCommaList(t *testing.T) {
	stmt := parseOne(t, `print "a", "b", 1`+"\n")
	p, ok := stmt.(*ast.Print)
	if !ok {
		t.Fatalf("expected *ast.Print, got %T", stmt)
	}
	if len(p.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(p.Args))
	}
}

func TestParseReturnWithAndWithoutValue(t *testing.T) {
	stmt := parseOne(t, "return 1\n")
	r, ok := stmt.(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", stmt)
	}
	if r.Value == nil {
		t.Fatal("expected Return.Value to be set")
	}

	stmt2 := parseOne(t, "return\n")
	r2, ok := stmt2.(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", stmt2)
	}
	if r2.Value != nil {
		t.Errorf("expected nil Value for bare return, got %#v", r2.Value)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "if x:\n  y = 1\nelse:\n  y = 2\n"
	stmt := parseOne(t, src)
	ie, ok := stmt.(*ast.IfElse)
	if !ok {
		t.Fatalf("expected *ast.IfElse, got %T", stmt)
	}
	if ie.Else == nil {
		t.Fatal("expected Else branch to be present")
	}
	if _, ok := ie.Then.(*ast.Compound); !ok {
		t.Errorf("expected Then to be *ast.Compound, got %T", ie.Then)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	stmt := parseOne(t, "if x:\n  y = 1\n")
	ie := stmt.(*ast.IfElse)
	if ie.Else != nil {
		t.Errorf("expected nil Else, got %#v", ie.Else)
	}
}

func TestParseClassDefWithParentAndMethods(t *testing.T) {
	src := "class Dog(Animal):\n  def bark(self):\n    return 1\n  def __init__(self, name):\n    self.name = name\n"
	stmt := parseOne(t, src)
	cd, ok := stmt.(*ast.ClassDefinition)
	if !ok {
		t.Fatalf("expected *ast.ClassDefinition, got %T", stmt)
	}
	if cd.Name != "Dog" || cd.Parent != "Animal" {
		t.Errorf("Name=%q Parent=%q, want Dog/Animal", cd.Name, cd.Parent)
	}
	if len(cd.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(cd.Methods))
	}
	if cd.Methods[0].Name != "bark" || len(cd.Methods[0].Params) != 1 {
		t.Errorf("methods[0] = %#v", cd.Methods[0])
	}
	if cd.Methods[1].Name != "__init__" || len(cd.Methods[1].Params) != 2 {
		t.Errorf("methods[1] = %#v", cd.Methods[1])
	}
}

func TestParseClassDefWithoutParent(t *testing.T) {
	stmt := parseOne(t, "class Animal:\n  def speak(self):\n    return 1\n")
	cd := stmt.(*ast.ClassDefinition)
	if cd.Parent != "" {
		t.Errorf("expected no parent, got %q", cd.Parent)
	}
}

func TestParseErrorOnMalformedInput(t *testing.T) {
	_, err := Parse("if x\n  y = 1\n")
	if err == nil {
		t.Fatal("expected a parse error for a missing ':'")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}

func TestParseErrorHasDiagnostic(t *testing.T) {
	_, err := Parse("x = \n")
	if err == nil {
		t.Fatal("expected a parse error for a missing rhs")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	d := pe.ToDiagnostic()
	if d.Kind != diagnostics.Syntax {
		t.Errorf("expected Syntax diagnostic kind, got %v", d.Kind)
	}
}
