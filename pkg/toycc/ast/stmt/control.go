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

// IfElse executes the Then branch when the condition is non-zero, otherwise
// the Else branch (if present).
type IfElse struct {
	Cond expr.Expr
	Then Stmt
	// Else is nil when there is no else branch.
	Else Stmt
}

// NewIfElse constructs an if statement.  The else branch may be nil.
func NewIfElse(cond expr.Expr, then Stmt, els Stmt) *IfElse {
	return &IfElse{cond, then, els}
}

func (p *IfElse) stmt() {}

// While executes its body for as long as the condition is non-zero.  A nil
// condition loops forever.
type While struct {
	Cond expr.Expr
	Body Stmt
}

// NewWhile constructs a while loop.
func NewWhile(cond expr.Expr, body Stmt) *While {
	return &While{cond, body}
}

func (p *While) stmt() {}

// For evaluates Init once, then executes Body followed by Update for as long as
// Cond is non-zero.  Each of the three clauses is independently optional (nil),
// and an absent condition loops forever.
type For struct {
	Init   expr.Expr
	Cond   expr.Expr
	Update expr.Expr
	Body   Stmt
}

// NewFor constructs a for loop.
func NewFor(init, cond, update expr.Expr, body Stmt) *For {
	return &For{init, cond, update, body}
}

func (p *For) stmt() {}
