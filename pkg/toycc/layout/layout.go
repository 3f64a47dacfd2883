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
package layout

import (
	"fmt"

	"github.com/consensys/go-toycc/pkg/toycc/ast"
	"github.com/consensys/go-toycc/pkg/toycc/ast/variable"
)

// FRAME_ALIGNMENT is the alignment (in bytes) of every stack frame.
const FRAME_ALIGNMENT uint = 16

// Order determines the order in which locals are assigned successive slots
// below the frame base.
type Order uint8

const (
	// FORWARD gives the first declared local the slot nearest the frame base.
	FORWARD Order = 0
	// REVERSE gives the last declared local the slot nearest the frame base.
	REVERSE Order = 1
)

// ParseOrder converts the textual name of an order (as used in configuration)
// into an order.
func ParseOrder(name string) (Order, error) {
	switch name {
	case "forward":
		return FORWARD, nil
	case "reverse":
		return REVERSE, nil
	default:
		return FORWARD, fmt.Errorf("unknown layout order \"%s\" (expected forward or reverse)", name)
	}
}

func (p Order) String() string {
	switch p {
	case FORWARD:
		return "forward"
	case REVERSE:
		return "reverse"
	default:
		panic("unreachable")
	}
}

// Assign a distinct, word-sized slot to every local of a function, and record
// the resulting frame size (rounded up to the frame alignment).  Offsets are
// measured downwards from the frame base, such that the first local visited has
// offset 8, the next 16, and so on.  A function can only be laid out once.
func Assign(fn *ast.Function, order Order) error {
	var (
		table  = fn.Variables()
		n      = table.Len()
		offset = uint(0)
	)
	//
	if fn.IsLaidOut() {
		return ast.ErrAlreadyLaidOut
	}
	//
	for i := range n {
		id := variable.Id(i)
		//
		if order == REVERSE {
			id = n - 1 - i
		}
		//
		offset += variable.WORD_SIZE
		table.SetOffset(id, offset)
	}
	//
	return fn.SetFrameSize(AlignTo(offset, FRAME_ALIGNMENT))
}

// AlignTo rounds n up to the nearest multiple of align, which must be
// positive.
func AlignTo(n uint, align uint) uint {
	return ((n + align - 1) / align) * align
}
