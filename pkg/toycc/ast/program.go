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
package ast

import (
	"errors"

	"github.com/consensys/go-toycc/pkg/toycc/ast/stmt"
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
)

// ErrAlreadyLaidOut is returned when a frame size is assigned to a function
// whose frame has already been laid out.
var ErrAlreadyLaidOut = errors.New("function already laid out")

// Program is the body of the single, implicit function being compiled.
type Program struct {
	Body *stmt.Block
}

// Function is a parsed program together with the locals it uses and (once
// laid out) the size of its stack frame.
type Function struct {
	program   Program
	variables *variable.Table
	frameSize uint
	laidOut   bool
}

// NewFunction constructs a function which has not yet been laid out.
func NewFunction(body *stmt.Block, variables *variable.Table) *Function {
	return &Function{Program{body}, variables, 0, false}
}

// Body returns the outermost block of this function.
func (p *Function) Body() *stmt.Block {
	return p.program.Body
}

// Variables returns the table of locals used within this function.
func (p *Function) Variables() *variable.Table {
	return p.variables
}

// FrameSize returns the number of bytes reserved below the frame base.  This
// is zero until the function is laid out.
func (p *Function) FrameSize() uint {
	return p.frameSize
}

// IsLaidOut determines whether a frame size has been assigned yet.
func (p *Function) IsLaidOut() bool {
	return p.laidOut
}

// SetFrameSize records the frame size of this function.  This can happen only
// once.
func (p *Function) SetFrameSize(size uint) error {
	if p.laidOut {
		return ErrAlreadyLaidOut
	}
	//
	p.frameSize = size
	p.laidOut = true
	//
	return nil
}

// String returns the body of this function as an S-expression.
func (p *Function) String() string {
	return stmt.String(p.program.Body, p.variables)
}
