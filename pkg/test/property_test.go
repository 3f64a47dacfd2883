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
package test

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	test_util "github.com/consensys/go-toycc/pkg/test/util"
	"github.com/consensys/go-toycc/pkg/toycc/compiler"
	"github.com/consensys/go-toycc/pkg/toycc/layout"
	"github.com/consensys/go-toycc/pkg/util/source"
)

// Number of random expressions checked against the reference evaluator.
const RANDOM_TESTS = 250

func Test_Property_Deterministic(t *testing.T) {
	var input = "{ s=0; for (i=0; i<10; i=i+1) { if (i/2*2==i) s=s+i; else while (0) ; } return s; }"
	//
	first := compile(t, input, compiler.DefaultConfig())
	//
	for range 10 {
		if second := compile(t, input, compiler.DefaultConfig()); first != second {
			t.Fatalf("output differs between compilations\n%s\n%s", first, second)
		}
	}
	//
	test_util.CheckExecution(t, "deterministic", first, 20)
}

// The right operand of a binary operator is evaluated before the left.
func Test_Property_EvaluationOrder(t *testing.T) {
	asm := compile(t, "{ a=0; return (a=1) - a; }", compiler.DefaultConfig())
	test_util.CheckExecution(t, "evaluation order", asm, 1)
}

func Test_Property_FrameAlignment(t *testing.T) {
	for n := range 20 {
		var (
			builder strings.Builder
			sum     int64
		)
		//
		builder.WriteString("{ ")
		//
		for i := range n {
			builder.WriteString(fmt.Sprintf("v%d=%d; ", i, i+1))
			sum += int64(i + 1)
		}
		//
		builder.WriteString("return 0")
		//
		for i := range n {
			builder.WriteString(fmt.Sprintf("+v%d", i))
		}
		//
		builder.WriteString("; }")
		//
		for _, order := range []string{"forward", "reverse"} {
			config := compiler.DefaultConfig()
			config.Layout.Order = order
			asm := compile(t, builder.String(), config)
			//
			frame := layout.AlignTo(uint(8*n), layout.FRAME_ALIGNMENT)
			if !strings.Contains(asm, fmt.Sprintf("  sub $%d, %%rsp\n", frame)) {
				t.Errorf("%d local(s) should have frame of %d bytes", n, frame)
			}
			//
			test_util.CheckInterpreted(t, fmt.Sprintf("%d locals (%s)", n, order), asm, sum)
		}
	}
}

func Test_Property_LocalIdentity(t *testing.T) {
	fn, _, err := compiler.Parse(source.NewSourceFile("test", []byte("{ a=1; b=a; c=b+a; a=c; return *&b; }")))
	if err != nil {
		t.Fatal(err)
	} else if err = layout.Assign(fn, layout.FORWARD); err != nil {
		t.Fatal(err)
	}
	//
	var (
		locals  = fn.Variables().Locals()
		offsets = make(map[uint]string)
	)
	//
	if len(locals) != 3 {
		t.Fatalf("expected 3 locals, found %d", len(locals))
	}
	//
	for _, local := range locals {
		if other, ok := offsets[local.Offset]; ok {
			t.Errorf("%s and %s share offset %d", local.Name, other, local.Offset)
		}
		//
		offsets[local.Offset] = local.Name
	}
}

func Test_Property_LabelsUnique(t *testing.T) {
	var (
		input = "{ i=0; while (i<3) { if (i) { for (;0;) ; } else if (1) i=i; i=i+1; } " +
			"for (j=0; j<2; j=j+1) if (j) while (0) ; return i+j; }"
		asm = compile(t, input, compiler.DefaultConfig())
	)
	// Duplicate labels are rejected by the machine
	test_util.CheckExecution(t, "labels", asm, 5)
}

// Compare random expressions against a reference evaluator.
func Test_Property_RandomExpressions(t *testing.T) {
	var rng = rand.New(rand.NewPCG(1, 2))
	//
	for i := range RANDOM_TESTS {
		text, value := randomExpr(rng, 4)
		asm := compile(t, fmt.Sprintf("{ a=3; b=7; return %s; }", text), compiler.DefaultConfig())
		// Every push is matched by a pop
		if pushes, pops := strings.Count(asm, "  push "), strings.Count(asm, "  pop "); pushes != pops {
			t.Fatalf("%s: %d push(es) but %d pop(s)", text, pushes, pops)
		}
		//
		test_util.CheckInterpreted(t, fmt.Sprintf("random #%d: %s", i, text), asm, value)
	}
}

// Generate a random expression over the locals a=3 and b=7, returning its text
// and expected value.  Division is only ever by a non-zero literal.
func randomExpr(rng *rand.Rand, depth int) (string, int64) {
	if depth == 0 || rng.IntN(4) == 0 {
		switch rng.IntN(3) {
		case 0:
			return "a", 3
		case 1:
			return "b", 7
		default:
			n := rng.Int64N(100)
			return fmt.Sprintf("%d", n), n
		}
	}
	//
	if rng.IntN(6) == 0 {
		text, value := randomExpr(rng, depth-1)
		return fmt.Sprintf("-(%s)", text), -value
	}
	//
	lhs, l := randomExpr(rng, depth-1)
	//
	switch rng.IntN(7) {
	case 0:
		rhs, r := randomExpr(rng, depth-1)
		return fmt.Sprintf("(%s+%s)", lhs, rhs), l + r
	case 1:
		rhs, r := randomExpr(rng, depth-1)
		return fmt.Sprintf("(%s-%s)", lhs, rhs), l - r
	case 2:
		rhs, r := randomExpr(rng, depth-1)
		return fmt.Sprintf("(%s*%s)", lhs, rhs), l * r
	case 3:
		divisor := 1 + rng.Int64N(9)
		return fmt.Sprintf("(%s/%d)", lhs, divisor), l / divisor
	case 4:
		rhs, r := randomExpr(rng, depth-1)
		return fmt.Sprintf("(%s<%s)", lhs, rhs), boolToInt(l < r)
	case 5:
		rhs, r := randomExpr(rng, depth-1)
		return fmt.Sprintf("(%s==%s)", lhs, rhs), boolToInt(l == r)
	default:
		rhs, r := randomExpr(rng, depth-1)
		return fmt.Sprintf("(%s>=%s)", lhs, rhs), boolToInt(l >= r)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	//
	return 0
}

func compile(t *testing.T, input string, config compiler.Config) string {
	t.Helper()
	//
	asm, err := compiler.Compile(source.NewSourceFile("test", []byte(input)), config)
	if err != nil {
		t.Fatalf("%s: %s", input, err)
	}
	//
	return asm
}
