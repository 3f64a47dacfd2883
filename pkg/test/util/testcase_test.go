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
package util

import (
	"testing"

	"github.com/consensys/go-toycc/pkg/util/source"
	"github.com/nalgeon/be"
)

const document = "# Heading\n\n" +
	"```\nignored\n```\n\n" +
	"## Test: first\n\n" +
	"Some commentary.\n\n" +
	"```c\n{ return 1; }\n```\n\n" +
	"```exit\n1\n```\n\n" +
	"### Test: second\n\n" +
	"```toml\n[layout]\norder = \"reverse\"\n```\n\n" +
	"```c\n{ 1 = 2;\n}\n```\n\n" +
	"```ast\n(block (= 1 2))\n```\n\n" +
	"```error\n1:3-4:not an lvalue\n2:1-2:other\n```\n"

func Test_TestCase_Extract(t *testing.T) {
	tests, err := ExtractTestCases([]byte(document))
	//
	be.Err(t, err, nil)
	be.Equal(t, len(tests), 2)
	// First
	be.Equal(t, tests[0].Name, "first")
	be.Equal(t, tests[0].Line, 7)
	be.Equal(t, tests[0].Source, "{ return 1; }")
	be.Equal(t, *tests[0].Exit, int64(1))
	be.Equal(t, len(tests[0].Errors), 0)
	// Second
	be.Equal(t, tests[1].Name, "second")
	be.Equal(t, tests[1].Config, "[layout]\norder = \"reverse\"")
	be.Equal(t, tests[1].Source, "{ 1 = 2;\n}")
	be.Equal(t, tests[1].Ast, "(block (= 1 2))")
	be.True(t, tests[1].Exit == nil)
	be.Equal(t, tests[1].Errors, []string{"1:3-4:not an lvalue", "2:1-2:other"})
}

func Test_TestCase_Invalid(t *testing.T) {
	invalid := map[string]string{
		"```c\n{ }\n```\n":                                    "outside of test case",
		"## Test: a\n\n```exit\n1\n```\n":                     "no c fence",
		"## Test: a\n\n```c\n{ }\n```\n":                      "no expectations",
		"## Test: a\n\n```c\n{ }\n```\n\n```c\n{ }\n```\n":    "multiple c fences",
		"## Test: a\n\n```c\n{ }\n```\n\n```exit\nX\n```\n":   "invalid exit code",
		"## Test: a\n\n```c\n{ }\n```\n\n```python\n1\n```\n": "unknown fence",
		"## Test: a\n\n```c\n{ }\n```\n\n```exit\n1\n```\n\n```error\n1:1-2:x\n```\n": "both errors and output",
	}
	//
	for text, msg := range invalid {
		_, err := ExtractTestCases([]byte(text))
		be.Err(t, err, msg)
	}
}

func Test_TestCase_ExpectedError(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("{\n  x = 1 + ;\n}"))
	//
	expected, err := ParseExpectedError("2:11-12:expected: expression", srcfile)
	be.Err(t, err, nil)
	be.Equal(t, expected.Message(), "expected: expression")
	be.Equal(t, expected.Span(), source.NewSpan(12, 13))
	// End of line
	expected, err = ParseExpectedError("3:2-2:eof", srcfile)
	be.Err(t, err, nil)
	be.Equal(t, expected.Span(), source.NewSpan(15, 15))
	//
	for _, text := range []string{"1:1", "x:1-2:m", "0:1-2:m", "1:0-1:m", "1:1:m", "4:1-2:m", "2:1-20:m"} {
		_, err = ParseExpectedError(text, srcfile)
		be.True(t, err != nil)
	}
}
