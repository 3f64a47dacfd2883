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
	"fmt"
	"strings"

	"github.com/consensys/go-toycc/pkg/toycc/ast"
	"github.com/consensys/go-toycc/pkg/util/collection/stack"
	"github.com/consensys/go-toycc/pkg/util/source"
)

// ACCUMULATOR holds the value of the expression most recently evaluated.
const ACCUMULATOR = "%rax"

// OPERAND receives the value popped from the operand stack when combining the
// two sides of a binary operation.
const OPERAND = "%rdi"

// RETURN_LABEL is the shared epilogue through which every return passes.
const RETURN_LABEL = ".L.return"

// Generate x86-64 assembly (in AT&T syntax) for a function which has already
// been laid out.  The source map is used only for reporting errors on
// expressions which cannot be used as storage locations.
func Generate(fn *ast.Function, srcmap *source.Map[any]) (string, error) {
	return NewGenerator(fn, srcmap).Generate()
}

// Generator is responsible for emitting the assembly for a single function.
// Values are computed in an accumulator register, with a conceptual operand
// stack (backed by the machine stack) holding the right-hand operand of a
// binary operation whilst its left-hand operand is computed.  A generator is
// single use.
type Generator struct {
	fn     *ast.Function
	srcmap *source.Map[any]
	// Text emitted so far
	out strings.Builder
	// Registers currently pushed onto the machine stack
	operands *stack.Stack[string]
	// Most recently allocated label number
	labels uint
}

// NewGenerator constructs a generator for a given function.
func NewGenerator(fn *ast.Function, srcmap *source.Map[any]) *Generator {
	return &Generator{fn: fn, srcmap: srcmap, operands: stack.NewStack[string]()}
}

// Generate the complete assembly for the function.  This either returns the
// assembly text, or an error.  An error is either a syntax error (for misuse
// of an expression as a storage location) or an *InvariantError.
func (p *Generator) Generate() (string, error) {
	if !p.fn.IsLaidOut() {
		return "", invariantError("function has not been laid out")
	}
	// Prologue
	p.instruction(".globl main")
	p.label("main")
	p.instruction("push %rbp")
	p.instruction("mov %rsp, %rbp")
	p.instructionf("sub $%d, %%rsp", p.fn.FrameSize())
	// Body
	if err := p.genStatement(p.fn.Body()); err != nil {
		return "", err
	}
	// Every path into the epilogue must leave the operand stack empty.
	if !p.operands.IsEmpty() {
		return "", invariantError("operand stack holds %d value(s) at end of function", p.operands.Len())
	}
	// Epilogue
	p.label(RETURN_LABEL)
	p.instruction("mov %rbp, %rsp")
	p.instruction("pop %rbp")
	p.instruction("ret")
	//
	return p.out.String(), nil
}

// Push the accumulator onto the operand stack.
func (p *Generator) push() {
	p.instructionf("push %s", ACCUMULATOR)
	p.operands.Push(ACCUMULATOR)
}

// Pop the top of the operand stack into a given register.
func (p *Generator) pop(register string) error {
	if p.operands.IsEmpty() {
		return invariantError("pop %s from empty operand stack", register)
	}
	//
	p.operands.Pop()
	p.instructionf("pop %s", register)
	//
	return nil
}

// Allocate a fresh label number.  Numbering starts from 1.
func (p *Generator) nextLabel() uint {
	p.labels++
	return p.labels
}

// Emit an indented instruction verbatim.
func (p *Generator) instruction(text string) {
	p.out.WriteString("  ")
	p.out.WriteString(text)
	p.out.WriteString("\n")
}

// Emit an indented instruction from a format string.
func (p *Generator) instructionf(format string, args ...any) {
	p.instruction(fmt.Sprintf(format, args...))
}

// Emit a label definition.
func (p *Generator) label(name string) {
	p.out.WriteString(name)
	p.out.WriteString(":\n")
}
