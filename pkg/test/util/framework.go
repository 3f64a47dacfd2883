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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-toycc/pkg/toycc/compiler"
	"github.com/consensys/go-toycc/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the markdown files describing each group of tests are found.
const TestDir = "../../testdata"

// Check every test case described in a given markdown file.  Each case is
// compiled and, depending on what it expects, the parsed program is compared,
// the assembly is compared, and/or the assembly is executed (both by the
// interpreter and, where possible, natively).
func Check(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/%s.md", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	tests, err := ReadTestCases(filename)
	if err != nil {
		t.Fatalf("%s: %s", filename, err)
	} else if len(tests) == 0 {
		t.Fatalf("missing any tests in %s", filename)
	}
	//
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			checkTestCase(t, fmt.Sprintf("%s:%d", filename, tc.Line), tc)
		})
	}
}

func checkTestCase(t *testing.T, name string, test TestCase) {
	var (
		srcfile = source.NewSourceFile(name, []byte(test.Source))
		config  = compiler.DefaultConfig()
		err     error
	)
	//
	if test.Config != "" {
		if config, err = compiler.ParseConfig([]byte(test.Config)); err != nil {
			t.Fatalf("%s: invalid configuration (%s)", name, err)
		}
	}
	//
	if test.Ast != "" {
		checkAst(t, srcfile, test.Ast)
	}
	//
	asm, err := compiler.Compile(srcfile, config)
	//
	if test.Errors != nil {
		checkErrors(t, srcfile, err, test.Errors)
		return
	} else if err != nil {
		t.Fatalf("%s: unexpected error (%s)", name, err)
	}
	//
	if test.Asm != "" && strings.TrimRight(asm, "\n") != test.Asm {
		t.Errorf("%s: unexpected assembly\n%s\nexpected\n%s", name, asm, test.Asm)
	}
	//
	if test.Exit != nil {
		CheckExecution(t, name, asm, *test.Exit)
	}
}

func checkAst(t *testing.T, srcfile *source.File, expected string) {
	fn, _, err := compiler.Parse(srcfile)
	//
	if err != nil {
		t.Fatalf("%s: unexpected error (%s)", srcfile.Filename(), err)
	} else if actual := fn.String(); actual != expected {
		t.Errorf("%s: unexpected ast %s, expected %s", srcfile.Filename(), actual, expected)
	}
}

func checkErrors(t *testing.T, srcfile *source.File, err error, lines []string) {
	var (
		actual      []source.SyntaxError
		expected    []source.SyntaxError
		syntaxError *source.SyntaxError
	)
	//
	if errors.As(err, &syntaxError) {
		actual = append(actual, *syntaxError)
	} else if err != nil {
		t.Fatalf("%s: unexpected failure (%s)", srcfile.Filename(), err)
	}
	//
	for _, line := range lines {
		expect, err := ParseExpectedError(line, srcfile)
		if err != nil {
			t.Fatalf("%s: %s", srcfile.Filename(), err)
		}
		//
		expected = append(expected, expect)
	}
	//
	checkExpectedErrors(t, srcfile, actual, expected)
}

// CheckExecution runs a given assembly listing, checking that it produces the
// expected exit code.  The listing is run by the interpreter and, when a
// native toolchain is available, also assembled and run natively.
func CheckExecution(t *testing.T, name string, asm string, expected int64) {
	CheckInterpreted(t, name, asm, expected)
	// Exit codes are truncated by the operating system.
	if code, ok := RunNative(t, asm); ok && code != int(expected&0xff) {
		t.Errorf("%s: native exit code %d, expected %d", name, code, expected&0xff)
	}
}

// CheckInterpreted runs a given assembly listing using only the interpreter,
// checking that it produces the expected value in %rax.
func CheckInterpreted(t *testing.T, name string, asm string, expected int64) {
	machine, err := NewMachine(asm)
	if err != nil {
		t.Fatalf("%s: %s", name, err)
	}
	//
	actual, err := machine.Run()
	if err != nil {
		t.Fatalf("%s: %s", name, err)
	} else if actual != expected {
		t.Errorf("%s: exit code %d, expected %d", name, actual, expected)
	}
}
