// This file is part of NuPy-Interpreter - https://github.com/Jay254/NuPy-Interpreter
//
// Copyright 2026 Jay254
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay254/NuPy-Interpreter/program"
	"github.com/Jay254/NuPy-Interpreter/ram"
)

func run(t *testing.T, stdin string, stmts ...*program.Stmt) (string, *ram.Store) {
	t.Helper()
	for i := 0; i < len(stmts)-1; i++ {
		stmts[i].Next = stmts[i+1]
	}
	var out strings.Builder
	e := New(&out, strings.NewReader(stdin))
	store := ram.NewStore()
	e.Execute(stmts[0], store)
	return out.String(), store
}

func assign(line int, name string, expr *program.Expr) *program.Stmt {
	return &program.Stmt{Kind: program.StmtAssignment, Line: line, Assignment: &program.Assignment{VarName: name, Expr: expr}}
}

func derefAssign(line int, name string, expr *program.Expr) *program.Stmt {
	return &program.Stmt{Kind: program.StmtAssignment, Line: line, Assignment: &program.Assignment{VarName: name, IsPtrDeref: true, Expr: expr}}
}

func printStmt(line int, args ...*program.Expr) *program.Stmt {
	return &program.Stmt{Kind: program.StmtFunctionCall, Line: line, Call: &program.FunctionCall{Name: "print", Args: args}}
}

// Scenario 1: x = 3 + 4 * 2 ; print(x) -> stdout "11\n", store {x: Int(11)}.
func TestScenarioArithmeticPrecedence(t *testing.T) {
	rhs := program.Binary(program.IntLit("3"), program.OpAdd, program.Binary(program.IntLit("4"), program.OpMul, program.IntLit("2")))
	out, store := run(t, "",
		assign(1, "x", rhs),
		printStmt(1, program.Ident("x")),
	)
	assert.Equal(t, "11\n", out)
	v, ok := store.ReadByID("x")
	require.True(t, ok)
	assert.Equal(t, ram.IntValue(11), v)
}

// Scenario 2: s = 'hi ' ; t = s + 'there' ; print(t) -> stdout "hi there\n".
func TestScenarioStringConcat(t *testing.T) {
	out, _ := run(t, "",
		assign(1, "s", program.StrLit("hi ")),
		assign(2, "t", program.Binary(program.Ident("s"), program.OpAdd, program.StrLit("there"))),
		printStmt(3, program.Ident("t")),
	)
	assert.Equal(t, "hi there\n", out)
}

// Scenario 3: x = 1 ; y = x + z -> undefined name halts execution; y never created.
func TestScenarioUndefinedNameHalts(t *testing.T) {
	out, store := run(t, "",
		assign(1, "x", program.IntLit("1")),
		assign(2, "y", program.Binary(program.Ident("x"), program.OpAdd, program.Ident("z"))),
		printStmt(3, program.Ident("y")),
	)
	assert.Equal(t, "**SEMANTIC ERROR: name 'z' is not defined (line 2)\n", out)
	_, ok := store.ReadByID("y")
	assert.False(t, ok)
}

// Scenario 4: x = 10 / 0 -> division by zero.
func TestScenarioDivisionByZero(t *testing.T) {
	out, _ := run(t, "",
		assign(1, "x", program.Binary(program.IntLit("10"), program.OpDiv, program.IntLit("0"))),
	)
	assert.Equal(t, "**EXECUTION ERROR: division by zero (line 1)\n", out)
}

// Scenario 5: i = 0 ; while i < 3: i = i + 1 ; print(i) -> stdout "3\n".
func TestScenarioWhileLoop(t *testing.T) {
	body := assign(2, "i", program.Binary(program.Ident("i"), program.OpAdd, program.IntLit("1")))
	loop := &program.Stmt{Kind: program.StmtWhileLoop, Line: 2, While: &program.WhileLoop{
		Cond: program.Binary(program.Ident("i"), program.OpLt, program.IntLit("3")),
		Body: body,
	}}
	out, store := run(t, "",
		assign(1, "i", program.IntLit("0")),
		loop,
		printStmt(3, program.Ident("i")),
	)
	assert.Equal(t, "3\n", out)
	v, _ := store.ReadByID("i")
	assert.Equal(t, int64(3), v.I)
}

// Scenario 6: x = 5 ; p = &x ; *p = 7 ; print(x) -> stdout "7\n"; p holds
// Ptr(address_of("x")).
func TestScenarioPointerDerefAssignment(t *testing.T) {
	out, store := run(t, "",
		assign(1, "x", program.IntLit("5")),
		assign(2, "p", program.AddressOf("x")),
		derefAssign(3, "p", program.IntLit("7")),
		printStmt(4, program.Ident("x")),
	)
	assert.Equal(t, "7\n", out)
	addrX, _ := store.AddressOf("x")
	p, _ := store.ReadByID("p")
	assert.Equal(t, ram.PtrValue(addrX), p)
}

func TestInvalidOperandTypes(t *testing.T) {
	out, _ := run(t, "",
		assign(1, "x", program.Binary(program.IntLit("1"), program.OpAdd, program.StrLit("oops"))),
	)
	assert.Equal(t, "**SEMANTIC ERROR: invalid operand types (line 1)\n", out)
}

func TestPtrDerefInvalidAddress(t *testing.T) {
	out, _ := run(t, "",
		assign(1, "x", program.IntLit("0")),
		assign(1, "p", program.Binary(program.AddressOf("x"), program.OpAdd, program.IntLit("9"))),
		derefAssign(2, "p", program.IntLit("1")),
	)
	assert.Equal(t, "**SEMANTIC ERROR: 'p' contains invalid address (line 2)\n", out)
}

func TestPtrDerefUndefinedName(t *testing.T) {
	out, _ := run(t, "",
		derefAssign(1, "p", program.IntLit("1")),
	)
	assert.Equal(t, "**SEMANTIC ERROR: name 'p' is not defined (line 1)\n", out)
}

func TestIfStatementUnsupported(t *testing.T) {
	stmt := &program.Stmt{Kind: program.StmtIfThenElse, Line: 1, If: &program.IfThenElse{}}
	out, _ := run(t, "", stmt)
	want := "**EXECUTION ERROR\n**EXECUTION ERROR: if statements are not supported.\n**EXECUTION ERROR\n"
	assert.Equal(t, want, out)
}

func TestDisableWhileEmitsLegacyDiagnostic(t *testing.T) {
	loop := &program.Stmt{Kind: program.StmtWhileLoop, Line: 1, While: &program.WhileLoop{
		Cond: program.TrueLit(),
		Body: printStmt(1),
	}}
	var out strings.Builder
	e := New(&out, strings.NewReader(""))
	e.DisableWhile = true
	e.Execute(loop, ram.NewStore())
	want := "**EXECUTION ERROR\n**EXECUTION ERROR: while loops are not supported.\n**EXECUTION ERROR\n"
	assert.Equal(t, want, out.String())
}

func TestPointerArithmetic(t *testing.T) {
	out, store := run(t, "",
		assign(1, "x", program.IntLit("5")),
		assign(2, "y", program.IntLit("9")),
		assign(3, "p", program.AddressOf("x")),
		assign(4, "q", program.Binary(program.Ident("p"), program.OpAdd, program.IntLit("1"))),
		derefAssign(5, "q", program.IntLit("42")),
		printStmt(6, program.Ident("y")),
	)
	assert.Equal(t, "42\n", out)
	addrX, _ := store.AddressOf("x")
	addrY, _ := store.AddressOf("y")
	assert.Equal(t, addrX+1, addrY)
}

func TestPointerPointerDereferenceRecurses(t *testing.T) {
	out, _ := run(t, "",
		assign(1, "x", program.IntLit("3")),
		assign(2, "y", program.IntLit("4")),
		assign(3, "p", program.AddressOf("x")),
		assign(4, "q", program.AddressOf("y")),
		printStmt(5, program.Binary(program.Ident("p"), program.OpAdd, program.Ident("q"))),
	)
	assert.Equal(t, "7\n", out)
}

func TestIntFloatBuiltins(t *testing.T) {
	out, store := run(t, "",
		assign(1, "s", program.StrLit("42")),
		&program.Stmt{Kind: program.StmtAssignment, Line: 2, Assignment: &program.Assignment{
			VarName: "n", Call: &program.BuiltinCall{Name: "int", Args: []*program.Expr{program.Ident("s")}},
		}},
		&program.Stmt{Kind: program.StmtAssignment, Line: 3, Assignment: &program.Assignment{
			VarName: "f", Call: &program.BuiltinCall{Name: "float", Args: []*program.Expr{program.Ident("s")}},
		}},
		printStmt(4, program.Ident("n")),
		printStmt(5, program.Ident("f")),
	)
	assert.Equal(t, "42\n42.000000\n", out)
	n, _ := store.ReadByID("n")
	assert.Equal(t, ram.IntValue(42), n)
}

func TestIntBuiltinInvalidString(t *testing.T) {
	out, _ := run(t, "",
		assign(1, "s", program.StrLit("not a number")),
		&program.Stmt{Kind: program.StmtAssignment, Line: 2, Assignment: &program.Assignment{
			VarName: "n", Call: &program.BuiltinCall{Name: "int", Args: []*program.Expr{program.Ident("s")}},
		}},
	)
	assert.Equal(t, "**SEMANTIC ERROR: invalid string for int() (line 2)\n", out)
}

func TestInputBuiltin(t *testing.T) {
	out, store := run(t, "Ada\n",
		&program.Stmt{Kind: program.StmtAssignment, Line: 1, Assignment: &program.Assignment{
			VarName: "name", Call: &program.BuiltinCall{Name: "input", Args: []*program.Expr{program.StrLit("name? ")}},
		}},
		printStmt(2, program.Ident("name")),
	)
	assert.Equal(t, "name? Ada\n", out)
	v, _ := store.ReadByID("name")
	assert.Equal(t, ram.StrValue("Ada"), v)
}

func TestRealEqualityTolerance(t *testing.T) {
	out, _ := run(t, "",
		printStmt(1, program.Binary(program.RealLit("1.0001"), program.OpEq, program.RealLit("1.0002"))),
	)
	assert.Equal(t, "True\n", out)
}

func TestPrintNoArgs(t *testing.T) {
	out, _ := run(t, "", printStmt(1))
	assert.Equal(t, "\n", out)
}
