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
package compiler

import (
	"github.com/consensys/go-toycc/pkg/toycc/ast"
	"github.com/consensys/go-toycc/pkg/toycc/codegen"
	"github.com/consensys/go-toycc/pkg/toycc/layout"
	"github.com/consensys/go-toycc/pkg/toycc/parser"
	"github.com/consensys/go-toycc/pkg/util"
	"github.com/consensys/go-toycc/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Compile a given source file into x86-64 assembly text.  Compilation stops at
// the first error encountered, which is either a *source.SyntaxError (for a
// problem with the source file) or a *codegen.InvariantError (for a defect in
// the compiler).  Compile holds no state between calls, and can be called
// concurrently.
func Compile(srcfile *source.File, config Config) (string, error) {
	order, err := config.LayoutOrder()
	if err != nil {
		return "", err
	}
	// Parse
	fn, srcmap, err := Parse(srcfile)
	if err != nil {
		return "", err
	}
	// Layout
	stats := util.NewPerfStats()
	//
	if err := layout.Assign(fn, order); err != nil {
		return "", err
	}
	//
	log.Debugf("laid out %d local(s) in a %d byte frame (%s)", fn.Variables().Len(), fn.FrameSize(), order)
	stats.Log("Layout")
	// Generate
	stats = util.NewPerfStats()
	//
	asm, err := codegen.Generate(fn, srcmap)
	if err != nil {
		return "", err
	}
	//
	log.Debugf("generated %d byte(s) of assembly", len(asm))
	stats.Log("Code generation")
	//
	return asm, nil
}

// Parse a given source file into a function which is not yet laid out, along
// with the source map for its nodes.  Any error returned is a
// *source.SyntaxError.
func Parse(srcfile *source.File) (*ast.Function, *source.Map[any], error) {
	stats := util.NewPerfStats()
	//
	fn, srcmap, errs := parser.Parse(srcfile)
	if len(errs) > 0 {
		return nil, nil, &errs[0]
	}
	//
	log.Debugf("parsed %s into %d node(s) using %d local(s)", srcfile.Filename(), srcmap.Len(),
		fn.Variables().Len())
	stats.Log("Parsing")
	//
	return fn, srcmap, nil
}
