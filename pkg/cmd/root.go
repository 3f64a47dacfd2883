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
	"runtime/debug"

	"github.com/consensys/go-toycc/pkg/toycc/codegen"
	"github.com/consensys/go-toycc/pkg/toycc/compiler"
	"github.com/consensys/go-toycc/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled at link time (via -ldflags "-X"), but *not* when installing
// via "go install".
var Version string

// EXIT_CONFIG signals bad arguments or configuration.
const EXIT_CONFIG = 2

// EXIT_SYNTAX signals a problem with the program being compiled.
const EXIT_SYNTAX = 4

// EXIT_INTERNAL signals a defect in the compiler.
const EXIT_INTERNAL = 5

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "toycc [flags] <source>",
	Short: "A compiler for a tiny subset of C.",
	Long: `Compile the body of a single, implicit main function written in a tiny subset of C
	 into x86-64 assembly (AT&T syntax), which is written to standard output.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			printVersion(cmd.OutOrStdout())
			return
		}
		//
		os.Exit(runCompiler(cmd, args, os.Stdout, os.Stderr))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// Run the compiler for a given set of (already parsed) flags and arguments,
// returning the exit code.
func runCompiler(cmd *cobra.Command, args []string, stdout io.Writer, stderr io.Writer) int {
	config, err := readConfig(cmd)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return EXIT_CONFIG
	}
	// Configure log level
	if config.Log.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	// Read source
	srcfile, err := readSource(cmd, args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprint(stderr, cmd.UsageString())
		//
		return EXIT_CONFIG
	}
	//
	output, err := compile(srcfile, config, GetFlag(cmd, "ast"))
	//
	if err != nil {
		var (
			syntaxError    *source.SyntaxError
			invariantError *codegen.InvariantError
		)
		//
		switch {
		case errors.As(err, &syntaxError):
			printSyntaxError(stderr, syntaxError, useColour(config.Diagnostics.Colour, stderr))
			return EXIT_SYNTAX
		case errors.As(err, &invariantError):
			fmt.Fprintln(stderr, invariantError.Error())
			return EXIT_INTERNAL
		default:
			fmt.Fprintln(stderr, err)
			return EXIT_CONFIG
		}
	}
	//
	fmt.Fprint(stdout, output)
	//
	return 0
}

// Either compile the source file into assembly, or parse it and render its
// body as an S-expression.
func compile(srcfile *source.File, config compiler.Config, ast bool) (string, error) {
	if !ast {
		return compiler.Compile(srcfile, config)
	}
	//
	fn, _, err := compiler.Parse(srcfile)
	if err != nil {
		return "", err
	}
	//
	return fn.String() + "\n", nil
}

func printVersion(out io.Writer) {
	fmt.Fprint(out, "toycc ")
	//
	if Version != "" {
		// Set at link time
		fmt.Fprintf(out, "%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		fmt.Fprintf(out, "%s", info.Main.Version)
	} else {
		// Unknown, perhaps "go run"
		fmt.Fprintf(out, "(unknown version)")
	}
	//
	fmt.Fprintln(out)
}

func init() {
	addFlags(rootCmd)
}

func addFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("version", false, "Report version of this executable")
	cmd.Flags().StringP("file", "f", "", "read source from a file, rather than the command line")
	cmd.Flags().Bool("ast", false, "print the parsed program, rather than compiling it")
	cmd.Flags().String("config", "", "read configuration from a TOML file (default: nearest toycc.toml)")
	cmd.Flags().String("layout", "forward", "order in which locals are laid out (forward or reverse)")
	cmd.Flags().String("colour", "auto", "highlight diagnostics (auto, always or never)")
	cmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
}
