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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-toycc/pkg/util/assert"
	"github.com/consensys/go-toycc/pkg/util/source"
	"github.com/spf13/cobra"
)

func Test_Cmd_Compile(t *testing.T) {
	code, stdout, stderr := run(t, "{ return 1+2*3; }")
	//
	assert.Equal(t, 0, code)
	assert.Equal(t, "", stderr)
	assert.True(t, strings.HasPrefix(stdout, "  .globl main\nmain:\n"))
	assert.Contains(t, stdout, "  imul %rdi, %rax\n")
}

func Test_Cmd_Ast(t *testing.T) {
	code, stdout, _ := run(t, "--ast", "{ a=b=1; return a; }")
	//
	assert.Equal(t, 0, code)
	assert.Equal(t, "(block (= a (= b 1)) (return a))\n", stdout)
}

func Test_Cmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.c")
	assert.NoError(t, os.WriteFile(path, []byte("{\n  x = 1;\n  return x\n}\n"), 0o644))
	//
	code, stdout, stderr := run(t, "--colour", "never", "-f", path)
	//
	assert.Equal(t, EXIT_SYNTAX, code)
	assert.Equal(t, "", stdout)
	assert.Equal(t, path+":4:1-2 unexpected token\n\n}\n^\n", stderr)
}

func Test_Cmd_SyntaxError(t *testing.T) {
	code, stdout, stderr := run(t, "--colour", "never", "{ return 1 + ; }")
	//
	assert.Equal(t, EXIT_SYNTAX, code)
	assert.Equal(t, "", stdout)
	assert.Equal(t, "<input>:1:14-15 expected expression\n\n{ return 1 + ; }\n"+strings.Repeat(" ", 13)+"^\n", stderr)
}

func Test_Cmd_SyntaxErrorColour(t *testing.T) {
	code, _, stderr := run(t, "--colour", "always", "{ 1 = 2; }")
	//
	assert.Equal(t, EXIT_SYNTAX, code)
	assert.Equal(t, "<input>:1:3-4 not an lvalue\n\n{ 1 = 2; }\n  \033[1;31m^\033[0m\n", stderr)
}

func Test_Cmd_EndOfInput(t *testing.T) {
	code, _, stderr := run(t, "--colour", "never", "{ return 1;")
	//
	assert.Equal(t, EXIT_SYNTAX, code)
	assert.Equal(t, "<input>:1:12-12 unexpected token\n\n{ return 1;\n"+strings.Repeat(" ", 11)+"^\n", stderr)
}

func Test_Cmd_MissingSource(t *testing.T) {
	code, stdout, stderr := run(t)
	//
	assert.Equal(t, EXIT_CONFIG, code)
	assert.Equal(t, "", stdout)
	assert.Contains(t, stderr, "expected exactly one source")
}

func Test_Cmd_BadLayout(t *testing.T) {
	code, _, stderr := run(t, "--layout", "sideways", "{ }")
	//
	assert.Equal(t, EXIT_CONFIG, code)
	assert.Contains(t, stderr, "sideways")
}

func Test_Cmd_ConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toycc.toml")
	assert.NoError(t, os.WriteFile(path, []byte("[layout]\norder = \"reverse\"\n"), 0o644))
	// From the file
	code, stdout, _ := runWithConfig(t, path, "{ a=1; b=2; }")
	assert.Equal(t, 0, code)
	assert.True(t, strings.Index(stdout, "lea -16(%rbp)") < strings.Index(stdout, "lea -8(%rbp)"))
	// Flag takes precedence over the file
	code, stdout, _ = runWithConfig(t, path, "--layout", "forward", "{ a=1; b=2; }")
	assert.Equal(t, 0, code)
	assert.True(t, strings.Index(stdout, "lea -8(%rbp)") < strings.Index(stdout, "lea -16(%rbp)"))
}

func Test_Cmd_PrintSyntaxError(t *testing.T) {
	var (
		out     bytes.Buffer
		srcfile = source.NewSourceFile("test.c", []byte("{\n  a = &(b+1);\n}"))
		err     = srcfile.SyntaxError(source.NewSpan(10, 13), "not an lvalue")
	)
	//
	printSyntaxError(&out, err, false)
	assert.Equal(t, "test.c:2:9-12 not an lvalue\n\n  a = &(b+1);\n"+strings.Repeat(" ", 8)+"^^^\n", out.String())
}

// Run the command with an empty configuration file, so that the outcome does
// not depend on the environment.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	//
	path := filepath.Join(t.TempDir(), "toycc.toml")
	assert.NoError(t, os.WriteFile(path, nil, 0o644))
	//
	return runWithConfig(t, path, args...)
}

func runWithConfig(t *testing.T, config string, args ...string) (int, string, string) {
	t.Helper()
	//
	var (
		stdout, stderr bytes.Buffer
		cmd            = &cobra.Command{Use: "toycc"}
	)
	//
	addFlags(cmd)
	assert.NoError(t, cmd.ParseFlags(append([]string{"--config", config}, args...)))
	//
	code := runCompiler(cmd, cmd.Flags().Args(), &stdout, &stderr)
	//
	return code, stdout.String(), stderr.String()
}
