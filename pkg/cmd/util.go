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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-toycc/pkg/toycc/compiler"
	"github.com/consensys/go-toycc/pkg/util/source"
	"github.com/consensys/go-toycc/pkg/util/termio"
	"github.com/spf13/cobra"
)

// INPUT_NAME is used in diagnostics for source text given on the command line.
const INPUT_NAME = "<input>"

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_CONFIG)
	}

	return r
}

// Determine the configuration, starting from a TOML file (either given
// explicitly or found by searching upwards from the working directory) and
// then applying any flags given explicitly.
func readConfig(cmd *cobra.Command) (compiler.Config, error) {
	var (
		config = compiler.DefaultConfig()
		path   = GetString(cmd, "config")
		err    error
	)
	//
	if path == "" {
		if path, err = compiler.FindConfig("."); err != nil {
			return config, err
		}
	}
	//
	if path != "" {
		if config, err = compiler.LoadConfig(path); err != nil {
			return config, err
		}
	}
	// Flags override the configuration file
	if cmd.Flags().Changed("layout") {
		config.Layout.Order = GetString(cmd, "layout")
	}
	//
	if cmd.Flags().Changed("colour") {
		config.Diagnostics.Colour = GetString(cmd, "colour")
	}
	//
	if GetFlag(cmd, "verbose") {
		config.Log.Verbose = true
	}
	//
	return config, config.Validate()
}

// Read the source text, either from a file or from the (single) argument.
func readSource(cmd *cobra.Command, args []string) (*source.File, error) {
	filename := GetString(cmd, "file")
	//
	switch {
	case filename != "" && len(args) == 0:
		return source.ReadFile(filename)
	case filename == "" && len(args) == 1:
		return source.NewSourceFile(INPUT_NAME, []byte(args[0])), nil
	default:
		return nil, errors.New("expected exactly one source (either an argument or --file)")
	}
}

// Determine whether diagnostics written to a given writer should be
// highlighted.
func useColour(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	// Auto
	if file, ok := out.(*os.File); ok {
		return termio.IsTerminal(file)
	}
	//
	return false
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, err *source.SyntaxError, colour bool) {
	var (
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		// Calculate length (ensures don't overflow line)
		length = min(line.Length()-lineOffset, span.Length())
		// Errors at the end of input have no length, but still need a caret.
		caret = strings.Repeat("^", max(1, length))
		//
		escape = termio.NewAnsiEscape()
	)
	//
	if colour {
		escape = escape.Bold().FgColour(termio.TERM_RED)
	}
	// Print error + line number
	fmt.Fprintf(out, "%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Fprintln(out)
	// Print line
	fmt.Fprintln(out, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(out, strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Fprintln(out, escape.Apply(caret))
}
