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

// Package ram implements the nuPy dynamic value store ("RAM"): an
// append-only identifier-indexed store of tagged runtime values.
package ram

import "fmt"

// Kind tags the variant a Value currently holds.
type Kind int

const (
	// None is the zero value's kind: an uninitialized or explicit None cell.
	None Kind = iota
	Int
	Real
	Str
	Bool
	Ptr
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Int:
		return "int"
	case Real:
		return "real"
	case Str:
		return "str"
	case Bool:
		return "boolean"
	case Ptr:
		return "ptr"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged variant holding exactly one of an integer, a double, an
// owned string, a boolean, or a pointer (a logical address into a Store —
// never a machine pointer, per the design notes). Overflow on Int
// arithmetic follows Go's native signed-integer wraparound; this repo
// makes no attempt to trap or saturate it.
//
// A Value is a plain Go value type: copying it (as every read and every
// operator result does) deep-copies its Str payload because Go strings are
// themselves immutable and already safe to share by value — there is no
// manual strdup/free protocol to replicate, only the observable guarantee
// that two Values never alias a mutable buffer.
type Value struct {
	Kind Kind
	I    int64
	R    float64
	S    string
	Addr int // valid only when Kind == Ptr
}

// IntValue, RealValue, StrValue, BoolValue, PtrValue, and NoneValue are
// constructors for each Value variant.
func IntValue(i int64) Value    { return Value{Kind: Int, I: i} }
func RealValue(r float64) Value { return Value{Kind: Real, R: r} }
func StrValue(s string) Value   { return Value{Kind: Str, S: s} }
func NoneValue() Value          { return Value{Kind: None} }

func BoolValue(b bool) Value {
	var i int64
	if b {
		i = 1
	}
	return Value{Kind: Bool, I: i}
}

func PtrValue(addr int) Value { return Value{Kind: Ptr, Addr: addr} }

// Bool reports the truth value of a Bool-kinded Value. Callers must check
// Kind == Bool first; this does no coercion.
func (v Value) Bool() bool { return v.I != 0 }

// Print renders v the way the "print" statement builtin does (§4.3):
// Int as decimal, Real with six decimal digits (C's "%lf"), Str as its raw
// bytes, Bool as "True"/"False", and Ptr as its numeric address.
func (v Value) Print() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("%d", v.I)
	case Real:
		return formatReal(v.R)
	case Str:
		return v.S
	case Bool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case Ptr:
		return fmt.Sprintf("%d", v.Addr)
	default:
		return "None"
	}
}

// formatReal reproduces C's "%lf" format: fixed-point, six decimal
// digits, locale-independent decimal point.
func formatReal(r float64) string {
	return fmt.Sprintf("%.6f", r)
}
