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

// Package graphfile loads a program.Stmt chain from a declarative YAML
// document. It exists because the parser that would normally turn nuPy
// source text into a statement graph is an external collaborator (out of
// scope here, per spec.md §1); this package is the stand-in input format
// cmd/nupy's run subcommand consumes instead.
//
// A program is a YAML sequence of statements; each statement is a single-
// key map whose key names the statement kind ("assign", "print", "while",
// "if", "pass"). Expressions mirror program.Expr's shape one level down.
// See testdata/*.yaml for the six executor scenarios of spec.md §8
// rendered in this format.
package graphfile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/Jay254/NuPy-Interpreter/program"
)

// Load reads a YAML statement sequence from path and returns the head of
// the resulting program.Stmt chain.
func Load(path string) (*program.Stmt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "graphfile: open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a YAML statement sequence from r and returns the head of
// the resulting program.Stmt chain, or nil for an empty document.
func Decode(r io.Reader) (*program.Stmt, error) {
	var doc []rawStmt
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "graphfile: decode")
	}
	return buildChain(doc)
}

func buildChain(raws []rawStmt) (*program.Stmt, error) {
	stmts := make([]*program.Stmt, 0, len(raws))
	for i, r := range raws {
		s, err := r.toStmt()
		if err != nil {
			return nil, errors.Wrapf(err, "graphfile: statement %d", i)
		}
		stmts = append(stmts, s)
	}
	for i := 0; i < len(stmts)-1; i++ {
		stmts[i].Next = stmts[i+1]
	}
	if len(stmts) == 0 {
		return nil, nil
	}
	return stmts[0], nil
}

// rawStmt is the one-key-map YAML shape of a single statement.
type rawStmt struct {
	Line   int            `yaml:"line"`
	Pass   *struct{}      `yaml:"pass"`
	Assign *rawAssign     `yaml:"assign"`
	Print  *rawPrint      `yaml:"print"`
	While  *rawWhile      `yaml:"while"`
	If     *rawIfThenElse `yaml:"if"`
}

type rawAssign struct {
	Var   string   `yaml:"var"`
	Deref bool     `yaml:"deref"`
	Expr  *rawExpr `yaml:"expr"`
	Call  *rawCall `yaml:"call"`
}

type rawCall struct {
	Name string     `yaml:"name"`
	Args []*rawExpr `yaml:"args"`
}

type rawPrint struct {
	Args []*rawExpr `yaml:"args"`
}

type rawWhile struct {
	Cond *rawExpr  `yaml:"cond"`
	Body []rawStmt `yaml:"body"`
}

type rawIfThenElse struct {
	Then []rawStmt `yaml:"then"`
	Else []rawStmt `yaml:"else"`
}

// rawExpr mirrors program.Expr: exactly one field group is populated,
// selected by which key is present in the YAML.
type rawExpr struct {
	Ident  *string    `yaml:"ident"`
	Int    *string    `yaml:"int"`
	Real   *string    `yaml:"real"`
	Str    *string    `yaml:"str"`
	True   bool       `yaml:"true"`
	False  bool       `yaml:"false"`
	None   bool       `yaml:"none"`
	Addr   *string    `yaml:"addr"`
	Deref  *string    `yaml:"deref"`
	Unary  *rawUnary  `yaml:"unary"`
	Binary *rawBinary `yaml:"binary"`
}

type rawUnary struct {
	Op      string   `yaml:"op"`
	Operand *rawExpr `yaml:"operand"`
}

type rawBinary struct {
	Op  string   `yaml:"op"`
	LHS *rawExpr `yaml:"lhs"`
	RHS *rawExpr `yaml:"rhs"`
}

func (r rawStmt) toStmt() (*program.Stmt, error) {
	s := &program.Stmt{Line: r.Line}
	switch {
	case r.Pass != nil:
		s.Kind = program.StmtPass
	case r.Assign != nil:
		kind, assignment, err := r.Assign.toAssignment()
		if err != nil {
			return nil, err
		}
		s.Kind = kind
		s.Assignment = assignment
	case r.Print != nil:
		args, err := toExprList(r.Print.Args)
		if err != nil {
			return nil, err
		}
		s.Kind = program.StmtFunctionCall
		s.Call = &program.FunctionCall{Name: "print", Args: args}
	case r.While != nil:
		cond, err := r.While.Cond.toExpr()
		if err != nil {
			return nil, err
		}
		body, err := buildChain(r.While.Body)
		if err != nil {
			return nil, err
		}
		s.Kind = program.StmtWhileLoop
		s.While = &program.WhileLoop{Cond: cond, Body: body}
	case r.If != nil:
		then, err := buildChain(r.If.Then)
		if err != nil {
			return nil, err
		}
		els, err := buildChain(r.If.Else)
		if err != nil {
			return nil, err
		}
		s.Kind = program.StmtIfThenElse
		s.If = &program.IfThenElse{Then: then, Else: els}
	default:
		return nil, errors.New("statement has no recognized kind (pass/assign/print/while/if)")
	}
	return s, nil
}

func (a *rawAssign) toAssignment() (program.StmtKind, *program.Assignment, error) {
	assignment := &program.Assignment{VarName: a.Var, IsPtrDeref: a.Deref}
	switch {
	case a.Expr != nil:
		expr, err := a.Expr.toExpr()
		if err != nil {
			return 0, nil, err
		}
		assignment.Expr = expr
	case a.Call != nil:
		args, err := toExprList(a.Call.Args)
		if err != nil {
			return 0, nil, err
		}
		assignment.Call = &program.BuiltinCall{Name: a.Call.Name, Args: args}
	default:
		return 0, nil, errors.New("assign needs either expr or call")
	}
	return program.StmtAssignment, assignment, nil
}

func toExprList(raws []*rawExpr) ([]*program.Expr, error) {
	exprs := make([]*program.Expr, 0, len(raws))
	for _, r := range raws {
		e, err := r.toExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func (r *rawExpr) toExpr() (*program.Expr, error) {
	if r == nil {
		return nil, errors.New("expr is missing")
	}
	switch {
	case r.Ident != nil:
		return program.Ident(*r.Ident), nil
	case r.Int != nil:
		return program.IntLit(*r.Int), nil
	case r.Real != nil:
		return program.RealLit(*r.Real), nil
	case r.Str != nil:
		return program.StrLit(*r.Str), nil
	case r.True:
		return program.TrueLit(), nil
	case r.False:
		return program.FalseLit(), nil
	case r.None:
		return program.NoneLit(), nil
	case r.Addr != nil:
		return program.AddressOf(*r.Addr), nil
	case r.Deref != nil:
		return program.PtrDeref(*r.Deref), nil
	case r.Unary != nil:
		op, err := unaryOpFromString(r.Unary.Op)
		if err != nil {
			return nil, err
		}
		operand, err := r.Unary.Operand.toExpr()
		if err != nil {
			return nil, err
		}
		return program.Unary(op, operand), nil
	case r.Binary != nil:
		op, err := binaryOpFromString(r.Binary.Op)
		if err != nil {
			return nil, err
		}
		lhs, err := r.Binary.LHS.toExpr()
		if err != nil {
			return nil, err
		}
		rhs, err := r.Binary.RHS.toExpr()
		if err != nil {
			return nil, err
		}
		return program.Binary(lhs, op, rhs), nil
	default:
		return nil, errors.New("expr has no recognized field")
	}
}

func unaryOpFromString(s string) (program.UnaryOp, error) {
	switch s {
	case "+":
		return program.UnaryPlus, nil
	case "-":
		return program.UnaryMinus, nil
	default:
		return 0, errors.Errorf("unknown unary op %q", s)
	}
}

func binaryOpFromString(s string) (program.BinaryOp, error) {
	switch s {
	case "+":
		return program.OpAdd, nil
	case "-":
		return program.OpSub, nil
	case "*":
		return program.OpMul, nil
	case "**":
		return program.OpPow, nil
	case "%":
		return program.OpMod, nil
	case "/":
		return program.OpDiv, nil
	case "==":
		return program.OpEq, nil
	case "!=":
		return program.OpNe, nil
	case "<":
		return program.OpLt, nil
	case "<=":
		return program.OpLe, nil
	case ">":
		return program.OpGt, nil
	case ">=":
		return program.OpGe, nil
	default:
		return 0, errors.Errorf("unknown binary op %q", s)
	}
}
