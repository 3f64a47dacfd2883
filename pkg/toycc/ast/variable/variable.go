// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package variable

// Id is a convenient alias to help clarity a given variable's intended
// purpose.  It is an index into the locals table of the enclosing function.
type Id = uint

// WORD_SIZE is the number of bytes occupied by every local in the stack frame.
const WORD_SIZE = 8

// Local describes a named storage slot in the stack frame of a function.  Two
// locals are the same local exactly when their names are equal.
type Local struct {
	// Name of the local, as spelled in the source.
	Name string
	// Offset (in bytes) below the frame base.  This is zero until the frame
	// has been laid out.
	Offset uint
}

// Map defines an abstract notion of mapping a variable identifier to a
// local.
type Map interface {
	// Variable gets the local for a given identifier.
	Variable(Id) Local
}

// Table is the set of locals of a function, in declaration order.  Locals
// are never removed, hence an Id remains valid for the lifetime of the table.
type Table struct {
	locals []Local
}

// NewTable constructs an (initially empty) locals table.
func NewTable() *Table {
	return &Table{}
}

// Declare returns the identifier of the local with the given name, creating it
// if it does not already exist.  Declaring the same name twice is therefore
// harmless.
func (p *Table) Declare(name string) Id {
	if id, ok := p.Lookup(name); ok {
		return id
	}
	//
	p.locals = append(p.locals, Local{name, 0})
	//
	return uint(len(p.locals) - 1)
}

// Lookup the identifier for a given name, if it exists.
func (p *Table) Lookup(name string) (Id, bool) {
	for i, local := range p.locals {
		if local.Name == name {
			return uint(i), true
		}
	}
	//
	return 0, false
}

// Variable implementation for Map interface.
func (p *Table) Variable(id Id) Local {
	return p.locals[id]
}

// SetOffset assigns the frame offset of a given local.
func (p *Table) SetOffset(id Id, offset uint) {
	p.locals[id].Offset = offset
}

// Len returns the number of locals in this table.
func (p *Table) Len() uint {
	return uint(len(p.locals))
}

// Locals returns a copy of the locals in declaration order.
func (p *Table) Locals() []Local {
	locals := make([]Local, len(p.locals))
	copy(locals, p.locals)
	//
	return locals
}
