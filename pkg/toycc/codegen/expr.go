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
package codegen

import (
	"github.com/consensys/go-toycc/pkg/toycc/ast/expr"
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
)

// Condition codes used by setcc for each comparison.
var conditionCodes = map[expr.BinOp]string{
	expr.EQ:   "e",
	expr.NEQ:  "ne",
	expr.LT:   "l",
	expr.LTEQ: "le",
	expr.GT:   "g",
	expr.GTEQ: "ge",
}

// Evaluate an expression into the accumulator, leaving the operand stack as it
// was found.
func (p *Generator) genExpr(e expr.Expr) error {
	switch e := e.(type) {
	case *expr.Const:
		p.instructionf("mov $%d, %s", e.Value, ACCUMULATOR)
		return nil
	case *expr.VarAccess:
		p.genAddressOfLocal(e.Variable)
		p.load()
		//
		return nil
	case *expr.Unary:
		return p.genUnary(e)
	case *expr.Pointer:
		return p.genPointer(e)
	case *expr.Binary:
		return p.genBinary(e)
	case *expr.Assign:
		return p.genAssign(e)
	default:
		return invariantError("unknown expression encountered")
	}
}

func (p *Generator) genUnary(e *expr.Unary) error {
	if err := p.genExpr(e.Expr); err != nil {
		return err
	}
	//
	switch e.Operator {
	case expr.NEG:
		p.instructionf("neg %s", ACCUMULATOR)
	case expr.NOOP:
		// nothing
	}
	//
	return nil
}

func (p *Generator) genPointer(e *expr.Pointer) error {
	switch e.Operator {
	case expr.ADDRESS_OF:
		// Only a local has an address
		if access, ok := e.Expr.(*expr.VarAccess); ok {
			p.genAddressOfLocal(access.Variable)
			return nil
		}
		//
		return p.srcmap.SyntaxError(e.Expr, "not an lvalue")
	default:
		if err := p.genExpr(e.Expr); err != nil {
			return err
		}
		//
		p.load()
		//
		return nil
	}
}

// The right operand is evaluated first, and held on the operand stack whilst
// the left operand is evaluated.
func (p *Generator) genBinary(e *expr.Binary) error {
	if err := p.genExpr(e.Right); err != nil {
		return err
	}
	//
	p.push()
	//
	if err := p.genExpr(e.Left); err != nil {
		return err
	}
	//
	if err := p.pop(OPERAND); err != nil {
		return err
	}
	//
	switch e.Operator {
	case expr.ADD:
		p.instructionf("add %s, %s", OPERAND, ACCUMULATOR)
	case expr.SUB:
		p.instructionf("sub %s, %s", OPERAND, ACCUMULATOR)
	case expr.MUL:
		p.instructionf("imul %s, %s", OPERAND, ACCUMULATOR)
	case expr.DIV:
		p.instruction("cqo")
		p.instructionf("idiv %s", OPERAND)
	default:
		p.instructionf("cmp %s, %s", OPERAND, ACCUMULATOR)
		p.instructionf("set%s %%al", conditionCodes[e.Operator])
		p.instructionf("movzb %%al, %s", ACCUMULATOR)
	}
	//
	return nil
}

// The address of the left-hand side is computed and held on the operand stack
// whilst the right-hand side is evaluated.  The assigned value is left in the
// accumulator.
func (p *Generator) genAssign(e *expr.Assign) error {
	if err := p.genAddress(e.Left); err != nil {
		return err
	}
	//
	p.push()
	//
	if err := p.genExpr(e.Right); err != nil {
		return err
	}
	//
	if err := p.pop(OPERAND); err != nil {
		return err
	}
	//
	p.instructionf("mov %s, (%s)", ACCUMULATOR, OPERAND)
	//
	return nil
}

// Compute the address of the storage location denoted by an lvalue into the
// accumulator.
func (p *Generator) genAddress(e expr.Expr) error {
	switch e := e.(type) {
	case *expr.VarAccess:
		p.genAddressOfLocal(e.Variable)
		return nil
	case *expr.Pointer:
		if e.Operator == expr.DEREF {
			// The address is the pointer value itself
			return p.genExpr(e.Expr)
		}
	}
	//
	return p.srcmap.SyntaxError(e, "not an lvalue")
}

func (p *Generator) genAddressOfLocal(id variable.Id) {
	local := p.fn.Variables().Variable(id)
	p.instructionf("lea -%d(%%rbp), %s", local.Offset, ACCUMULATOR)
}

// Load the word addressed by the accumulator into the accumulator.
func (p *Generator) load() {
	p.instructionf("mov (%s), %s", ACCUMULATOR, ACCUMULATOR)
}
