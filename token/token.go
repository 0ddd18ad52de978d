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

// Package token defines the closed token vocabulary produced by the
// scanner and consumed by the (external) parser.
package token

import "fmt"

// Kind is the tag of a Token. The set is closed: no scanner rule ever
// produces a Kind outside this list.
type Kind int

// Punctuation and operators.
const (
	LeftParen Kind = iota
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	Colon
	Ampersand
	Asterisk
	Power
	Plus
	Minus
	Percent
	Slash
	Equal
	EqualEqual
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// Literals and identifiers.
	IntLit
	RealLit
	StrLit
	Identifier

	// KeywAnd is the first of the keyword kinds. Keyword ordinals are
	// contiguous from here in the exact order of the keywords slice below,
	// so a keyword's Kind is always KeywAnd + Kind(index in keywords).
	KeywAnd
	KeywBreak
	KeywContinue
	KeywDef
	KeywElif
	KeywElse
	KeywFalse
	KeywFor
	KeywIf
	KeywIn
	KeywIs
	KeywNone
	KeywNot
	KeywOr
	KeywPass
	KeywReturn
	KeywTrue
	KeywWhile

	Unknown
	EOS
)

// keywords holds the keyword lexemes in the exact order their Kind
// constants follow KeywAnd. The order is part of the external interface
// (spec §6): do not reorder without renumbering the Keyw* constants.
var keywords = [...]string{
	"and", "break", "continue", "def", "elif", "else", "False", "for",
	"if", "in", "is", "None", "not", "or", "pass", "return", "True", "while",
}

// LookupKeyword returns the Kind for lexeme if it names a keyword
// (case-sensitive), and Identifier otherwise.
func LookupKeyword(lexeme string) Kind {
	for i, kw := range keywords {
		if kw == lexeme {
			return KeywAnd + Kind(i)
		}
	}
	return Identifier
}

var names = map[Kind]string{
	LeftParen: "LeftParen", RightParen: "RightParen",
	LeftBracket: "LeftBracket", RightBracket: "RightBracket",
	LeftBrace: "LeftBrace", RightBrace: "RightBrace",
	Colon: "Colon", Ampersand: "Ampersand", Asterisk: "Asterisk",
	Power: "Power", Plus: "Plus", Minus: "Minus", Percent: "Percent",
	Slash: "Slash", Equal: "Equal", EqualEqual: "EqualEqual",
	NotEqual: "NotEqual", Less: "Less", LessEqual: "LessEqual",
	Greater: "Greater", GreaterEqual: "GreaterEqual",
	IntLit: "IntLit", RealLit: "RealLit", StrLit: "StrLit",
	Identifier: "Identifier", Unknown: "Unknown", EOS: "EOS",
}

// String renders a Kind for diagnostics and token dumps (cmd/nupy tokens).
// Keyword kinds render as "KEYW_" followed by their lexeme as written,
// e.g. "KEYW_while", "KEYW_True".
func (k Kind) String() string {
	if k >= KeywAnd && int(k-KeywAnd) < len(keywords) {
		return "KEYW_" + keywords[k-KeywAnd]
	}
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical unit: its kind, its source position (1-based,
// first byte of the lexeme), and its textual payload. The payload's
// meaning depends on Kind: for StrLit it is the string contents with
// quotes stripped; for IntLit/RealLit it is the literal's decimal text;
// for Identifier and keywords it is the lexeme itself; for Unknown it is
// the single offending byte; for EOS it is "$".
type Token struct {
	Kind   Kind
	Line   int
	Column int
	Lexeme string
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d\t%s\t%q", t.Line, t.Column, t.Kind, t.Lexeme)
}
