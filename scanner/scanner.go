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

// Package scanner implements the nuPy lexical scanner: a streaming
// tokenizer that classifies bytes into the token.Kind vocabulary while
// tracking line/column and recovering from malformed string literals.
package scanner

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Jay254/NuPy-Interpreter/token"
)

// Scanner tokenizes an io.Reader one byte at a time. It peeks at most two
// bytes ahead (the second only to decide whether a '.' after digits starts
// a fractional part) and never consumes a byte it does not use.
type Scanner struct {
	r    *bufio.Reader
	line int
	col  int
	done bool // true once EOS has been returned; further calls keep returning it
	eos  token.Token
	warn io.Writer
}

// New returns a Scanner positioned at (line=1, column=1). If warn is
// non-nil, the unterminated-string-literal warning (§4.1) is written to it
// verbatim, exactly as the original scanner prints it directly to its
// output stream; pass nil to scan silently.
func New(r io.Reader, warn io.Writer) *Scanner {
	return &Scanner{
		r:    bufio.NewReader(r),
		line: 1,
		col:  1,
		warn: warn,
	}
}

// Init resets the scanner to (line=1, column=1) over a new reader, mirroring
// scanner_init in the original C source.
func (s *Scanner) Init(r io.Reader) {
	s.r = bufio.NewReader(r)
	s.line = 1
	s.col = 1
	s.done = false
	s.eos = token.Token{}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

// isSpace reports whether b is whitespace OTHER than newline; newline is
// handled by its own scanner rule because it also advances the line count.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// peekAt returns the byte n bytes ahead (1 = the next unread byte) without
// consuming any input, and false if fewer than n bytes remain.
func (s *Scanner) peekAt(n int) (byte, bool) {
	b, _ := s.r.Peek(n)
	if len(b) < n {
		return 0, false
	}
	return b[n-1], true
}

func (s *Scanner) peek() (byte, bool) { return s.peekAt(1) }

// advance consumes and returns the next byte, which must already have been
// observed via peek; it panics if called with nothing left to read, which
// would indicate a scanner bug rather than a malformed program.
func (s *Scanner) advance() byte {
	b, err := s.r.ReadByte()
	if err != nil {
		panic("scanner: advance called at end of input")
	}
	return b
}

// Next consumes from the input and returns exactly one token, advancing
// position. Once EOS has been returned (physical end-of-input or a literal
// '$' byte), every subsequent call returns the same EOS token again.
func (s *Scanner) Next() token.Token {
	if s.done {
		return s.eos
	}

	for {
		line, col := s.line, s.col
		b, ok := s.peek()
		if !ok || b == '$' {
			if ok {
				s.advance()
			}
			s.eos = token.Token{Kind: token.EOS, Line: line, Column: col, Lexeme: "$"}
			s.done = true
			return s.eos
		}
		s.advance()

		switch {
		case b == '\n':
			s.line++
			s.col = 1
			continue
		case isSpace(b):
			s.col++
			continue
		case b == '#':
			s.col++
			for {
				nb, ok := s.peek()
				if !ok || nb == '\n' {
					break
				}
				s.advance()
				s.col++
			}
			continue
		case b == '_' || isAlpha(b):
			s.col++
			lexeme := s.collectIdentifier(b)
			return token.Token{Kind: token.LookupKeyword(lexeme), Line: line, Column: col, Lexeme: lexeme}
		case isDigit(b) || b == '.':
			s.col++
			lexeme, kind := s.collectNumber(b)
			return token.Token{Kind: kind, Line: line, Column: col, Lexeme: lexeme}
		case b == '\'' || b == '"':
			s.col++
			lexeme := s.collectString(b, line, col)
			return token.Token{Kind: token.StrLit, Line: line, Column: col, Lexeme: lexeme}
		case b == '*':
			s.col++
			if nb, ok := s.peek(); ok && nb == '*' {
				s.advance()
				s.col++
				return token.Token{Kind: token.Power, Line: line, Column: col, Lexeme: "**"}
			}
			return token.Token{Kind: token.Asterisk, Line: line, Column: col, Lexeme: "*"}
		case b == '=':
			s.col++
			if nb, ok := s.peek(); ok && nb == '=' {
				s.advance()
				s.col++
				return token.Token{Kind: token.EqualEqual, Line: line, Column: col, Lexeme: "=="}
			}
			return token.Token{Kind: token.Equal, Line: line, Column: col, Lexeme: "="}
		case b == '!':
			s.col++
			if nb, ok := s.peek(); ok && nb == '=' {
				s.advance()
				s.col++
				return token.Token{Kind: token.NotEqual, Line: line, Column: col, Lexeme: "!="}
			}
			return token.Token{Kind: token.Unknown, Line: line, Column: col, Lexeme: "!"}
		case b == '<':
			s.col++
			if nb, ok := s.peek(); ok && nb == '=' {
				s.advance()
				s.col++
				return token.Token{Kind: token.LessEqual, Line: line, Column: col, Lexeme: "<="}
			}
			return token.Token{Kind: token.Less, Line: line, Column: col, Lexeme: "<"}
		case b == '>':
			s.col++
			if nb, ok := s.peek(); ok && nb == '=' {
				s.advance()
				s.col++
				return token.Token{Kind: token.GreaterEqual, Line: line, Column: col, Lexeme: ">="}
			}
			return token.Token{Kind: token.Greater, Line: line, Column: col, Lexeme: ">"}
		default:
			s.col++
			if kind, ok := singleByteKinds[b]; ok {
				return token.Token{Kind: kind, Line: line, Column: col, Lexeme: string(b)}
			}
			return token.Token{Kind: token.Unknown, Line: line, Column: col, Lexeme: string(b)}
		}
	}
}

var singleByteKinds = map[byte]token.Kind{
	'(': token.LeftParen, ')': token.RightParen,
	'[': token.LeftBracket, ']': token.RightBracket,
	'{': token.LeftBrace, '}': token.RightBrace,
	':': token.Colon, '&': token.Ampersand,
	'+': token.Plus, '-': token.Minus,
	'%': token.Percent, '/': token.Slash,
}

// collectIdentifier collects [A-Za-z_][A-Za-z0-9_]*, given that first has
// already been consumed.
func (s *Scanner) collectIdentifier(first byte) string {
	buf := []byte{first}
	for {
		b, ok := s.peek()
		if !ok || !isAlnum(b) {
			break
		}
		s.advance()
		s.col++
		buf = append(buf, b)
	}
	return string(buf)
}

// collectNumber collects digits ('.' digits)? or '.' digits, given that
// first has already been consumed. A trailing dot with no following digit
// is left unconsumed for the next call to re-scan; a bare '.' with no
// digits at all yields Unknown.
func (s *Scanner) collectNumber(first byte) (string, token.Kind) {
	buf := []byte{first}
	sawDot := first == '.'

	if sawDot {
		nb, ok := s.peek()
		if !ok || !isDigit(nb) {
			return string(buf), token.Unknown
		}
	}

	for {
		nb, ok := s.peek()
		if !ok {
			break
		}
		if isDigit(nb) {
			s.advance()
			s.col++
			buf = append(buf, nb)
			continue
		}
		if nb == '.' && !sawDot {
			after, ok2 := s.peekAt(2)
			if !ok2 || !isDigit(after) {
				// trailing dot with nothing valid following: leave it
				// for the next call to scan on its own.
				break
			}
			sawDot = true
			s.advance()
			s.col++
			buf = append(buf, '.')
			continue
		}
		break
	}

	if sawDot {
		return string(buf), token.RealLit
	}
	return string(buf), token.IntLit
}

// collectString collects the content of a string literal opened by quote
// (already consumed), up to but excluding the matching quote. If no
// matching quote is found before a newline or end-of-input, it reports the
// termination warning (if a warning writer was installed) and leaves the
// offending byte unconsumed so the caller's next Next() call processes it
// normally (newline rule, or EOF/EOS).
func (s *Scanner) collectString(quote byte, openLine, openCol int) string {
	var buf []byte
	for {
		b, ok := s.peek()
		if !ok {
			s.warnUnterminated(openLine, openCol)
			break
		}
		if b == '\n' {
			s.warnUnterminated(openLine, openCol)
			break
		}
		if b == quote {
			s.advance()
			s.col++
			break
		}
		s.advance()
		s.col++
		buf = append(buf, b)
	}
	return string(buf)
}

func (s *Scanner) warnUnterminated(line, col int) {
	if s.warn == nil {
		return
	}
	fmt.Fprintf(s.warn, "**WARNING: string literal @ (%d, %d) not terminated properly\n", line, col)
}
