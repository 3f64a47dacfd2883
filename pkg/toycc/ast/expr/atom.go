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

// Const represents an unsigned integer literal.
type Const struct {
	Value uint64
}

// NewConstant constructs an expression representing a constant value.
func NewConstant(value uint64) *Const {
	return &Const{value}
}

// Uses implementation for Expr interface.
func (p *Const) Uses() []variable.Id {
	return nil
}

func (p *Const) expr() {}

// VarAccess represents a read of a local variable.  When it appears on the
// left of an assignment (or beneath an address-of) it denotes the storage
// location of the variable instead.
type VarAccess struct {
	Variable variable.Id
}

// NewVarAccess constructs an expression representing a variable access.
func NewVarAccess(id variable.Id) *VarAccess {
	return &VarAccess{id}
}

// Uses implementation for Expr interface.
func (p *VarAccess) Uses() []variable.Id {
	return []variable.Id{p.Variable}
}

func (p *VarAccess) expr() {}
