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

	"github.com/consensys/go-toycc/pkg/toycc/ast/expr"
	"github.com/consensys/go-toycc/pkg/toycc/ast/stmt"
)

func (p *Generator) genStatement(s stmt.Stmt) error {
	switch s := s.(type) {
	case *stmt.Expr:
		return p.genExpr(s.Expr)
	case *stmt.Return:
		if err := p.genExpr(s.Expr); err != nil {
			return err
		}
		//
		p.instruction("jmp " + RETURN_LABEL)
		//
		return nil
	case *stmt.Block:
		for _, st := range s.Stmts {
			if err := p.genStatement(st); err != nil {
				return err
			}
		}
		//
		return nil
	case *stmt.IfElse:
		return p.genIfElse(s)
	case *stmt.While:
		return p.genLoop(nil, s.Cond, nil, s.Body)
	case *stmt.For:
		return p.genLoop(s.Init, s.Cond, s.Update, s.Body)
	case *stmt.Empty:
		return nil
	default:
		return invariantError("unknown statement encountered")
	}
}

func (p *Generator) genIfElse(s *stmt.IfElse) error {
	var (
		n        = p.nextLabel()
		elseName = fmt.Sprintf(".L.else.%d", n)
		endName  = fmt.Sprintf(".L.end.%d", n)
	)
	//
	if err := p.genCondition(s.Cond, elseName); err != nil {
		return err
	}
	//
	if err := p.genStatement(s.Then); err != nil {
		return err
	}
	//
	p.instruction("jmp " + endName)
	p.label(elseName)
	//
	if s.Else != nil {
		if err := p.genStatement(s.Else); err != nil {
			return err
		}
	}
	//
	p.label(endName)
	//
	return nil
}

// Generate a loop, of which a while loop is simply a for loop without any
// initialiser or update.  An absent condition loops forever.
func (p *Generator) genLoop(init expr.Expr, cond expr.Expr, update expr.Expr, body stmt.Stmt) error {
	var (
		n         = p.nextLabel()
		beginName = fmt.Sprintf(".L.begin.%d", n)
		endName   = fmt.Sprintf(".L.end.%d", n)
	)
	//
	if init != nil {
		if err := p.genExpr(init); err != nil {
			return err
		}
	}
	//
	p.label(beginName)
	//
	if cond != nil {
		if err := p.genCondition(cond, endName); err != nil {
			return err
		}
	}
	//
	if err := p.genStatement(body); err != nil {
		return err
	}
	//
	if update != nil {
		if err := p.genExpr(update); err != nil {
			return err
		}
	}
	//
	p.instruction("jmp " + beginName)
	p.label(endName)
	//
	return nil
}

// Evaluate a condition, jumping to a given label when it is zero.
func (p *Generator) genCondition(cond expr.Expr, target string) error {
	if err := p.genExpr(cond); err != nil {
		return err
	}
	//
	p.instructionf("cmp $0, %s", ACCUMULATOR)
	p.instruction("je " + target)
	//
	return nil
}
