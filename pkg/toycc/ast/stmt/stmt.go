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

import (
	"strings"

	"github.com/consensys/go-toycc/pkg/toycc/ast/expr"
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
)

// Stmt represents a statement.  The set of statements is closed: it consists
// of *Expr, *Return, *Block, *IfElse, *While, *For and *Empty.
type Stmt interface {
	stmt()
}

// String converts a statement into an S-expression, e.g. "(while (< x 5) (=
// x (+ x 1)))".  Absent optional components are written as "_".
func String(s Stmt, mapping variable.Map) string {
	switch s := s.(type) {
	case *Expr:
		return expr.String(s.Expr, mapping)
	case *Return:
		return "(return " + expr.String(s.Expr, mapping) + ")"
	case *Block:
		var builder strings.Builder
		//
		builder.WriteString("(block")
		//
		for _, st := range s.Stmts {
			builder.WriteString(" ")
			builder.WriteString(String(st, mapping))
		}
		//
		builder.WriteString(")")
		//
		return builder.String()
	case *IfElse:
		if s.Else == nil {
			return sexp("if", optional(s.Cond, mapping), String(s.Then, mapping))
		}
		//
		return sexp("if", optional(s.Cond, mapping), String(s.Then, mapping), String(s.Else, mapping))
	case *While:
		return sexp("while", optional(s.Cond, mapping), String(s.Body, mapping))
	case *For:
		return sexp("for", optional(s.Init, mapping), optional(s.Cond, mapping), optional(s.Update, mapping),
			String(s.Body, mapping))
	case *Empty:
		return "(;)"
	default:
		panic("unreachable")
	}
}

func optional(e expr.Expr, mapping variable.Map) string {
	if e == nil {
		return "_"
	}
	//
	return expr.String(e, mapping)
}

func sexp(head string, args ...string) string {
	return "(" + head + " " + strings.Join(args, " ") + ")"
}
