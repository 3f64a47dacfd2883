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
package source

import (
	"testing"

	"github.com/consensys/go-toycc/pkg/util/assert"
)

func TestSourceFile_Lines(t *testing.T) {
	file := NewSourceFile("test", []byte("{\n  x=1;\n}"))
	lines := file.Lines()
	//
	assert.Equal(t, 3, len(lines))
	assert.Equal(t, "{", lines[0].String())
	assert.Equal(t, "  x=1;", lines[1].String())
	assert.Equal(t, 2, lines[1].Start())
	assert.Equal(t, 2, lines[1].Number())
	assert.Equal(t, "}", lines[2].String())
}

func TestSourceFile_LinesEmpty(t *testing.T) {
	file := NewSourceFile("test", []byte(""))
	lines := file.Lines()
	//
	assert.Equal(t, 1, len(lines))
	assert.Equal(t, 0, lines[0].Length())
}

func TestSourceFile_EnclosingLine(t *testing.T) {
	file := NewSourceFile("test", []byte("{ a=1;\n  b=2; }"))
	// "b" is at offset 9
	line := file.FindFirstEnclosingLine(NewSpan(9, 10))
	//
	assert.Equal(t, 2, line.Number())
	assert.Equal(t, "  b=2; }", line.String())
	assert.Equal(t, 7, line.Start())
	// Beyond end of file gives last line
	line = file.FindFirstEnclosingLine(NewSpan(15, 15))
	assert.Equal(t, 2, line.Number())
}

func TestSourceFile_Text(t *testing.T) {
	file := NewSourceFile("test", []byte("{ return 42; }"))
	assert.Equal(t, "42", file.Text(NewSpan(9, 11)))
}

func TestSourceMap(t *testing.T) {
	var (
		file   = NewSourceFile("test", []byte("{ x; }"))
		srcmap = NewSourceMap[any](file)
		node   = new(int)
		other  = new(int)
	)
	//
	srcmap.Put(node, NewSpan(2, 3))
	assert.True(t, srcmap.Has(node))
	assert.False(t, srcmap.Has(other))
	assert.Equal(t, NewSpan(2, 3), srcmap.Get(node))
	// Errors on mapped nodes use their span
	err := srcmap.SyntaxError(node, "oops")
	assert.Equal(t, NewSpan(2, 3), err.Span())
	assert.Equal(t, "oops", err.Message())
	assert.Equal(t, "2:3:oops", err.Error())
	// Errors on unmapped nodes span the file
	err = srcmap.SyntaxError(other, "oops")
	assert.Equal(t, NewSpan(0, 6), err.Span())
}

func TestSpan_Join(t *testing.T) {
	lhs := NewSpan(2, 4)
	rhs := NewSpan(7, 9)
	//
	assert.Equal(t, NewSpan(2, 9), lhs.Join(rhs))
	assert.Equal(t, NewSpan(2, 9), rhs.Join(lhs))
}
