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
package stmt

import "github.com/consensys/go-toycc/pkg/toycc/ast/expr"

// Expr is an expression evaluated only for its side effects.  Its value is
// discarded.
type Expr struct {
	Expr expr.Expr
}

// NewExpr constructs an expression statement.
func NewExpr(e expr.Expr) *Expr {
	return &Expr{e}
}

func (p *Expr) stmt() {}

// Return evaluates an expression and leaves the function with its value.
type Return struct {
	Expr expr.Expr
}

// NewReturn constructs a return statement.
func NewReturn(e expr.Expr) *Return {
	return &Return{e}
}

func (p *Return) stmt() {}

// Block is a braced sequence of statements.  It introduces no scope, since all
// locals are function-wide.
type Block struct {
	Stmts []Stmt
}

// NewBlock constructs a block from zero or more statements.
func NewBlock(stmts ...Stmt) *Block {
	return &Block{stmts}
}

func (p *Block) stmt() {}

// Empty is a bare ";", or a run of them collapsed into one statement.
type Empty struct {
	// Count is the number of terminators collapsed into this statement.
	Count uint
}

// NewEmpty constructs an empty statement covering a given number of
// terminators.
func NewEmpty(count uint) *Empty {
	return &Empty{count}
}

func (p *Empty) stmt() {}
