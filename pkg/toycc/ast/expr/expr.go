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
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
)

// Expr represents an arbitrary expression.  The set of expressions is closed:
// it consists of *Const, *VarAccess, *Unary, *Pointer, *Binary and *Assign.
// Every node is exclusively owned by its parent.
type Expr interface {
	// Uses returns the set of variables accessed by this expression (including
	// those written by assignments), in order of first occurrence.
	Uses() []variable.Id
	// marker to close the set of expressions.
	expr()
}

// String provides a generic facility for converting an expression into an
// S-expression, e.g. "(= x (+ 1 (* 2 3)))".
func String(e Expr, mapping variable.Map) string {
	switch e := e.(type) {
	case *Const:
		return fmt.Sprintf("%d", e.Value)
	case *VarAccess:
		return mapping.Variable(e.Variable).Name
	case *Unary:
		return sexp(e.Operator.String(), mapping, e.Expr)
	case *Pointer:
		return sexp(e.Operator.String(), mapping, e.Expr)
	case *Binary:
		return sexp(e.Operator.String(), mapping, e.Left, e.Right)
	case *Assign:
		return sexp(e.Operator.String(), mapping, e.Left, e.Right)
	default:
		panic("unreachable")
	}
}

// IsLValue determines whether a given expression denotes an addressable
// storage location, and hence may appear on the left of an assignment.
func IsLValue(e Expr) bool {
	switch e := e.(type) {
	case *VarAccess:
		return true
	case *Pointer:
		return e.Operator == DEREF
	default:
		return false
	}
}

func sexp(operator string, mapping variable.Map, args ...Expr) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	builder.WriteString(operator)
	//
	for _, arg := range args {
		builder.WriteString(" ")
		builder.WriteString(String(arg, mapping))
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

func uses(exprs ...Expr) []variable.Id {
	var ids []variable.Id
	//
	for _, e := range exprs {
		for _, id := range e.Uses() {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	//
	return ids
}
