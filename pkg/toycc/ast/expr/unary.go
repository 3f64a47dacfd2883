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
	// NEG negates its operand.
	NEG UnaryOp = 0
	// NOOP leaves its operand unchanged (i.e. prefix "+").
	NOOP UnaryOp = 1
)

// UnaryOp represents the arithmetic prefix operators.
type UnaryOp uint8

func (p UnaryOp) String() string {
	switch p {
	case NEG:
		return "-"
	case NOOP:
		return "+"
	default:
		panic("unreachable")
	}
}

// Unary represents an arithmetic prefix operator applied to an operand.
type Unary struct {
	Operator UnaryOp
	Expr     Expr
}

// NewUnary constructs a unary expression.
func NewUnary(op UnaryOp, e Expr) *Unary {
	return &Unary{op, e}
}

// Uses implementation for Expr interface.
func (p *Unary) Uses() []variable.Id {
	return p.Expr.Uses()
}

func (p *Unary) expr() {}

const (
	// ADDRESS_OF takes the address of an addressable operand (i.e. "&x").
	ADDRESS_OF PointerOp = 0
	// DEREF loads through a pointer value (i.e. "*p").
	DEREF PointerOp = 1
)

// PointerOp represents the pointer prefix operators.
type PointerOp uint8

func (p PointerOp) String() string {
	switch p {
	case ADDRESS_OF:
		return "&"
	case DEREF:
		return "*"
	default:
		panic("unreachable")
	}
}

// Pointer represents a pointer prefix operator applied to an operand.
type Pointer struct {
	Operator PointerOp
	Expr     Expr
}

// NewPointer constructs a pointer expression.
func NewPointer(op PointerOp, e Expr) *Pointer {
	return &Pointer{op, e}
}

// Uses implementation for Expr interface.
func (p *Pointer) Uses() []variable.Id {
	return p.Expr.Uses()
}

func (p *Pointer) expr() {}
