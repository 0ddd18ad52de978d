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

package graphfile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jay254/NuPy-Interpreter/exec"
	"github.com/Jay254/NuPy-Interpreter/program"
	"github.com/Jay254/NuPy-Interpreter/ram"
)

func runFile(t *testing.T, path string) string {
	t.Helper()
	head, err := Load(path)
	require.NoError(t, err)
	var out strings.Builder
	e := exec.New(&out, strings.NewReader(""))
	e.Execute(head, ram.NewStore())
	return out.String()
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		file string
		want string
	}{
		{"testdata/scenario1_arithmetic.yaml", "11\n"},
		{"testdata/scenario2_string_concat.yaml", "hi there\n"},
		{"testdata/scenario3_undefined_name.yaml", "**SEMANTIC ERROR: name 'z' is not defined (line 2)\n"},
		{"testdata/scenario4_division_by_zero.yaml", "**EXECUTION ERROR: division by zero (line 1)\n"},
		{"testdata/scenario5_while_loop.yaml", "3\n"},
		{"testdata/scenario6_pointer_deref.yaml", "7\n"},
		{"testdata/scenario7_pointer_and_while.yaml", "3\n"},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			assert.Equal(t, c.want, runFile(t, c.file))
		})
	}
}

// TestDecodeBuildsExpectedGraph checks the decoded chain structurally
// against a hand-built graph using program's own constructors, rather
// than only checking execution output (as TestScenarios does).
func TestDecodeBuildsExpectedGraph(t *testing.T) {
	head, err := Load("testdata/scenario1_arithmetic.yaml")
	require.NoError(t, err)

	x := &program.Stmt{
		Kind: program.StmtAssignment,
		Line: 1,
		Assignment: &program.Assignment{
			VarName: "x",
			Expr: program.Binary(
				program.IntLit("3"),
				program.OpAdd,
				program.Binary(program.IntLit("4"), program.OpMul, program.IntLit("2")),
			),
		},
	}
	print := &program.Stmt{
		Kind: program.StmtFunctionCall,
		Line: 2,
		Call: &program.FunctionCall{Name: "print", Args: []*program.Expr{program.Ident("x")}},
	}
	x.Next = print
	want := x

	if diff := cmp.Diff(want, head); diff != "" {
		t.Errorf("decoded graph mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does_not_exist.yaml")
	assert.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	head, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, head)
}

func TestDecodeMalformedStatement(t *testing.T) {
	_, err := Decode(strings.NewReader("- line: 1\n  nonsense: true\n"))
	assert.Error(t, err)
}

func TestDecodeBadBinaryOp(t *testing.T) {
	src := `
- line: 1
  assign:
    var: x
    expr:
      binary:
        op: "??"
        lhs: { int: "1" }
        rhs: { int: "2" }
`
	_, err := Decode(strings.NewReader(src))
	assert.Error(t, err)
}
