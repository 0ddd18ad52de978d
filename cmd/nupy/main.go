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

// Command nupy drives the scanner and executor without a parser, which
// is explicitly out of scope for this repository (see SPEC_FULL.md §E):
//
//	nupy tokens <file>       scan a source file, print one token per line
//	nupy run <file.yaml>     load a statement graph and execute it
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pborman/getopt"
	"github.com/pkg/errors"

	"github.com/Jay254/NuPy-Interpreter/exec"
	"github.com/Jay254/NuPy-Interpreter/graphfile"
	"github.com/Jay254/NuPy-Interpreter/ram"
	"github.com/Jay254/NuPy-Interpreter/scanner"
	"github.com/Jay254/NuPy-Interpreter/token"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "tokens":
		err = runTokens(os.Args[2:])
	case "run":
		err = runProgram(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "nupy: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "nupy: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: nupy tokens <file>")
	fmt.Fprintln(os.Stderr, "       nupy run [--dump-ram] [--trace] <file.yaml>")
}

func runTokens(args []string) error {
	set := getopt.New()
	help := set.BoolLong("help", '?', "display this help")
	if err := set.Parse(append([]string{"tokens"}, args...)); err != nil {
		return errors.Wrap(err, "parsing flags")
	}
	if *help || set.NArgs() != 1 {
		set.PrintUsage(os.Stderr)
		return nil
	}
	path := set.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	s := scanner.New(f, os.Stderr)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for {
		tok := s.Next()
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Line, tok.Column, tok.Kind, tok.Lexeme)
		if tok.Kind == token.EOS {
			break
		}
	}
	return nil
}

func runProgram(args []string) error {
	set := getopt.New()
	dumpRAM := set.BoolLong("dump-ram", 0, "dump the store's contents after execution")
	trace := set.BoolLong("trace", 0, "print each statement's line number to stderr before it runs")
	help := set.BoolLong("help", '?', "display this help")
	if err := set.Parse(append([]string{"run"}, args...)); err != nil {
		return errors.Wrap(err, "parsing flags")
	}
	if *help || set.NArgs() != 1 {
		set.PrintUsage(os.Stderr)
		return nil
	}
	path := set.Arg(0)

	head, err := graphfile.Load(path)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	store := ram.NewStore()
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	e := exec.New(out, os.Stdin)
	if *trace {
		e.Trace = func(line int) { fmt.Fprintf(os.Stderr, "trace: line %d\n", line) }
	}
	e.Execute(head, store)
	out.Flush()

	if *dumpRAM {
		store.Dump(os.Stdout)
	}
	return nil
}
