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
package expr

import (
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
)

const (
	// ADD indicates addition
	ADD BinOp = 0
	// SUB indicates subtraction
	SUB BinOp = 1
	// MUL indicates multiplication
	MUL BinOp = 2
	// DIV indicates (signed) division
	DIV BinOp = 3
	// EQ indicates an equality comparison
	EQ BinOp = 4
	// NEQ indicates a non-equality comparison
	NEQ BinOp = 5
	// LT indicates a less-than comparison
	LT BinOp = 6
	// LTEQ indicates a less-than-or-equals comparison
	LTEQ BinOp = 7
	// GT indicates a greater-than comparison
	GT BinOp = 8
	// GTEQ indicates a greater-than-or-equals comparison
	GTEQ BinOp = 9
)

// BinOp represents the binary operators.
type BinOp uint8

// IsComparison determines whether this operator yields a truth value (0 or 1).
func (p BinOp) IsComparison() bool {
	return p >= EQ && p <= GTEQ
}

func (p BinOp) String() string {
	switch p {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case LT:
		return "<"
	case LTEQ:
		return "<="
	case GT:
		return ">"
	case GTEQ:
		return ">="
	default:
		panic("unreachable")
	}
}

// Binary represents a binary operator applied to two operands.
type Binary struct {
	Operator BinOp
	Left     Expr
	Right    Expr
}

// NewBinary constructs a binary expression.
func NewBinary(op BinOp, lhs Expr, rhs Expr) *Binary {
	return &Binary{op, lhs, rhs}
}

// Uses implementation for Expr interface.
func (p *Binary) Uses() []variable.Id {
	return uses(p.Left, p.Right)
}

func (p *Binary) expr() {}

const (
	// ASSIGN indicates plain assignment ("=").
	ASSIGN AssignOp = 0
)

// AssignOp represents the assignment operators.
type AssignOp uint8

func (p AssignOp) String() string {
	switch p {
	case ASSIGN:
		return "="
	default:
		panic("unreachable")
	}
}

// Assign represents an assignment of the right-hand side to the storage
// location denoted by the left-hand side.  The value of an assignment is the
// value assigned.
type Assign struct {
	Operator AssignOp
	Left     Expr
	Right    Expr
}

// NewAssign constructs an assignment expression.
func NewAssign(lhs Expr, rhs Expr) *Assign {
	return &Assign{ASSIGN, lhs, rhs}
}

// Uses implementation for Expr interface.
func (p *Assign) Uses() []variable.Id {
	return uses(p.Left, p.Right)
}

func (p *Assign) expr() {}
