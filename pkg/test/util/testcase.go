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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// TEST_PREFIX identifies those headings which begin a new test case.
const TEST_PREFIX = "Test: "

// Languages of the fenced code blocks which make up a test case.
const (
	// FENCE_SOURCE holds the program being compiled.
	FENCE_SOURCE = "c"
	// FENCE_CONFIG holds a TOML configuration used for compilation.
	FENCE_CONFIG = "toml"
	// FENCE_AST holds the expected rendering of the parsed program.
	FENCE_AST = "ast"
	// FENCE_ASM holds the exact assembly expected.
	FENCE_ASM = "asm"
	// FENCE_EXIT holds the expected exit code of the compiled program.
	FENCE_EXIT = "exit"
	// FENCE_ERROR holds the expected errors, one per line as "L:X-Y:msg".
	FENCE_ERROR = "error"
)

// TestCase represents a single test extracted from a markdown document.  Every
// test case has a source program, and at least one expectation.
type TestCase struct {
	// Name of the test, taken from its heading.
	Name string
	// Line in the markdown document where the test starts.
	Line int
	// Program being compiled.
	Source string
	// Configuration (TOML), or empty for the defaults.
	Config string
	// Expected rendering of the parsed program, or empty.
	Ast string
	// Expected assembly, or empty.
	Asm string
	// Expected exit code, or nil.
	Exit *int64
	// Expected error lines, or nil.
	Errors []string
}

// ReadTestCases reads and extracts all test cases from a markdown file.
func ReadTestCases(filename string) ([]TestCase, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return ExtractTestCases(data)
}

// ExtractTestCases extracts all test cases from a markdown document.  Each
// test begins with a heading "Test: name", followed by fenced code blocks
// whose language determines their role.  Fences without a language are
// treated as commentary.
func ExtractTestCases(contents []byte) ([]TestCase, error) {
	var (
		doc     = goldmark.New().Parser().Parse(text.NewReader(contents))
		tests   []TestCase
		current *TestCase
	)
	//
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		//
		switch n := node.(type) {
		case *ast.Heading:
			heading := textOf(n, contents)
			//
			if strings.HasPrefix(heading, TEST_PREFIX) {
				if current != nil {
					tests = append(tests, *current)
				}
				//
				current = &TestCase{Name: strings.TrimPrefix(heading, TEST_PREFIX), Line: lineOf(n, contents)}
			}
		case *ast.FencedCodeBlock:
			language := string(n.Language(contents))
			//
			if language == "" {
				return ast.WalkContinue, nil
			} else if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of test case", lineOf(n, contents), language)
			} else if err := current.add(language, contentsOf(n, contents)); err != nil {
				return ast.WalkStop, fmt.Errorf("line %d: %w", lineOf(n, contents), err)
			}
		}
		//
		return ast.WalkContinue, nil
	})
	//
	if err != nil {
		return nil, err
	} else if current != nil {
		tests = append(tests, *current)
	}
	// Sanity check tests
	for _, test := range tests {
		if err := test.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", test.Line, err)
		}
	}
	//
	return tests, nil
}

// Add the contents of a fence with a given language to this test case.
func (p *TestCase) add(language string, contents string) error {
	var target *string
	//
	switch language {
	case FENCE_SOURCE:
		target = &p.Source
	case FENCE_CONFIG:
		target = &p.Config
	case FENCE_AST:
		target = &p.Ast
	case FENCE_ASM:
		target = &p.Asm
	case FENCE_EXIT:
		if p.Exit != nil {
			return fmt.Errorf("multiple %s fences in test \"%s\"", language, p.Name)
		}
		//
		code, err := strconv.ParseInt(strings.TrimSpace(contents), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid exit code in test \"%s\" (%s)", p.Name, err.Error())
		}
		//
		p.Exit = &code
		//
		return nil
	case FENCE_ERROR:
		if p.Errors != nil {
			return fmt.Errorf("multiple %s fences in test \"%s\"", language, p.Name)
		}
		//
		p.Errors = strings.Split(strings.TrimRight(contents, "\n"), "\n")
		//
		return nil
	default:
		return fmt.Errorf("unknown fence \"%s\" in test \"%s\"", language, p.Name)
	}
	//
	if *target != "" {
		return fmt.Errorf("multiple %s fences in test \"%s\"", language, p.Name)
	}
	//
	*target = strings.TrimRight(contents, "\n")
	//
	return nil
}

func (p *TestCase) validate() error {
	var outputs = p.Ast != "" || p.Asm != "" || p.Exit != nil
	//
	switch {
	case p.Source == "":
		return fmt.Errorf("test \"%s\" has no %s fence", p.Name, FENCE_SOURCE)
	case p.Errors != nil && (p.Asm != "" || p.Exit != nil):
		return fmt.Errorf("test \"%s\" expects both errors and output", p.Name)
	case p.Errors == nil && !outputs:
		return fmt.Errorf("test \"%s\" has no expectations", p.Name)
	}
	//
	return nil
}

// Extract the plain text of a markdown node (e.g. a heading).
func textOf(node ast.Node, contents []byte) string {
	var buf bytes.Buffer
	//
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(contents))
		} else {
			buf.WriteString(textOf(child, contents))
		}
	}
	//
	return buf.String()
}

func contentsOf(block *ast.FencedCodeBlock, contents []byte) string {
	var buf bytes.Buffer
	//
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(contents))
	}
	//
	return buf.String()
}

// Determine the (1-indexed) line on which a given node starts.
func lineOf(node ast.Node, contents []byte) int {
	var start int
	//
	if node.Lines().Len() == 0 {
		return 1
	} else if start = node.Lines().At(0).Start; start > len(contents) {
		start = len(contents)
	}
	//
	return 1 + bytes.Count(contents[:start], []byte("\n"))
}
