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
	"testing"

	"github.com/consensys/go-toycc/pkg/toycc/ast/expr"
	"github.com/consensys/go-toycc/pkg/toycc/ast/stmt"
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
	"github.com/consensys/go-toycc/pkg/util/assert"
)

func TestFunction_SetFrameSize(t *testing.T) {
	fn := NewFunction(stmt.NewBlock(), variable.NewTable())
	//
	assert.False(t, fn.IsLaidOut())
	assert.Equal(t, 0, fn.FrameSize())
	assert.NoError(t, fn.SetFrameSize(16))
	assert.True(t, fn.IsLaidOut())
	assert.Equal(t, 16, fn.FrameSize())
	// Second layout is refused, and leaves the frame untouched
	err := fn.SetFrameSize(32)
	assert.True(t, errors.Is(err, ErrAlreadyLaidOut))
	assert.Equal(t, 16, fn.FrameSize())
}

func TestVariable_Declare(t *testing.T) {
	table := variable.NewTable()
	//
	a := table.Declare("a")
	b := table.Declare("b")
	//
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, a, table.Declare("a"))
	assert.Equal(t, 2, table.Len())
	//
	_, ok := table.Lookup("c")
	assert.False(t, ok)
}

func TestFunction_String(t *testing.T) {
	var (
		table = variable.NewTable()
		x     = table.Declare("x")
		// x = 1; while (x < 10) x = x * 2; if (x == 16) return &x; else return -x;
		body = stmt.NewBlock(
			stmt.NewExpr(expr.NewAssign(expr.NewVarAccess(x), expr.NewConstant(1))),
			stmt.NewWhile(
				expr.NewBinary(expr.LT, expr.NewVarAccess(x), expr.NewConstant(10)),
				stmt.NewExpr(expr.NewAssign(expr.NewVarAccess(x),
					expr.NewBinary(expr.MUL, expr.NewVarAccess(x), expr.NewConstant(2))))),
			stmt.NewIfElse(
				expr.NewBinary(expr.EQ, expr.NewVarAccess(x), expr.NewConstant(16)),
				stmt.NewReturn(expr.NewPointer(expr.ADDRESS_OF, expr.NewVarAccess(x))),
				stmt.NewReturn(expr.NewUnary(expr.NEG, expr.NewVarAccess(x)))),
			stmt.NewFor(nil, nil, nil, stmt.NewEmpty(1)),
		)
		fn = NewFunction(body, table)
	)
	//
	expected := "(block (= x 1) (while (< x 10) (= x (* x 2))) (if (== x 16) (return (& x)) (return (- x)))" +
		" (for _ _ _ (;)))"
	assert.Equal(t, expected, fn.String())
}

func TestExpr_Uses(t *testing.T) {
	var (
		table = variable.NewTable()
		a     = table.Declare("a")
		b     = table.Declare("b")
		e     = expr.NewAssign(expr.NewVarAccess(b),
			expr.NewBinary(expr.ADD, expr.NewVarAccess(a), expr.NewVarAccess(b)))
	)
	//
	assert.Equal(t, []variable.Id{b, a}, e.Uses())
	assert.True(t, expr.IsLValue(expr.NewVarAccess(a)))
	assert.True(t, expr.IsLValue(expr.NewPointer(expr.DEREF, expr.NewConstant(8))))
	assert.False(t, expr.IsLValue(expr.NewPointer(expr.ADDRESS_OF, expr.NewVarAccess(a))))
	assert.False(t, expr.IsLValue(expr.NewConstant(1)))
}
