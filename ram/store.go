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

package ram

import (
	"fmt"
	"io"
)

// initialCapacity mirrors ram_init's starting capacity of 4 cells in the
// original C source. The spec only requires "≥ 1"; matching the original's
// constant keeps the doubling growth pattern observable in tests.
const initialCapacity = 4

// Cell is a (identifier, value) pair. A cell's index in the Store is its
// address, assigned on first write and stable for the Store's lifetime.
type Cell struct {
	Identifier string
	Value      Value
}

// Store is the append-only, identifier-indexed dynamic value store
// ("RAM", §4.2 of the specification). The zero Store is not usable; use
// NewStore.
type Store struct {
	cells []Cell
	byID  map[string]int // optional hash index; the spec sanctions this as
	// a pure optimization over the linear scan (§4.2 "Lookup complexity").
}

// NewStore returns an empty Store with capacity for initialCapacity cells
// before its backing slice must grow.
func NewStore() *Store {
	return &Store{
		cells: make([]Cell, 0, initialCapacity),
		byID:  make(map[string]int, initialCapacity),
	}
}

// NumCells returns the number of cells currently written.
func (s *Store) NumCells() int { return len(s.cells) }

// AddressOf returns the address of identifier if it has ever been written,
// and false otherwise.
func (s *Store) AddressOf(identifier string) (int, bool) {
	addr, ok := s.byID[identifier]
	return addr, ok
}

// WriteByID writes value to the cell named identifier, creating it (and
// assigning it a fresh, permanent address) if it does not already exist.
// Always succeeds.
func (s *Store) WriteByID(identifier string, value Value) bool {
	if addr, ok := s.byID[identifier]; ok {
		s.cells[addr].Value = value
		return true
	}
	addr := len(s.cells)
	s.cells = append(s.cells, Cell{Identifier: identifier, Value: value})
	s.byID[identifier] = addr
	return true
}

// WriteByAddr writes value to the cell at addr, leaving its identifier
// unchanged. Returns false if addr is not a valid address.
func (s *Store) WriteByAddr(addr int, value Value) bool {
	if addr < 0 || addr >= len(s.cells) {
		return false
	}
	s.cells[addr].Value = value
	return true
}

// ReadByID returns a copy of the value written under identifier, and false
// if identifier has never been written.
func (s *Store) ReadByID(identifier string) (Value, bool) {
	addr, ok := s.byID[identifier]
	if !ok {
		return Value{}, false
	}
	return s.cells[addr].Value, true
}

// ReadByAddr returns a copy of the value at addr, and false if addr is not
// a valid address.
func (s *Store) ReadByAddr(addr int) (Value, bool) {
	if addr < 0 || addr >= len(s.cells) {
		return Value{}, false
	}
	return s.cells[addr].Value, true
}

// Dump writes a header, a line per cell in " addr: identifier, kind, value"
// form, and a footer; it is the
// Go equivalent of the original implementation's ram_print debug dumper
// (dropped by the distillation but not excluded by any Non-goal — see
// SPEC_FULL.md §D).
func (s *Store) Dump(w io.Writer) {
	fmt.Fprintf(w, "**MEMORY PRINT**\n")
	fmt.Fprintf(w, "Num values: %d\n", len(s.cells))
	fmt.Fprintf(w, "Contents:\n")
	for i, c := range s.cells {
		fmt.Fprintf(w, " %d: %s, %s, %s\n", i, c.Identifier, c.Value.Kind, c.Value.Print())
	}
	fmt.Fprintf(w, "**END PRINT**\n")
}
