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
	"fmt"
	"testing"

	"github.com/consensys/go-toycc/pkg/util/source"
)

// Check that the errors reported for a source file match those expected, both
// in their message and their span.
func checkExpectedErrors(t *testing.T, srcfile *source.File, actual, expected []source.SyntaxError) {
	var (
		mismatch bool
		msg      = fmt.Sprintf("Error %s\n", srcfile.Filename())
	)
	//
	if len(actual) == 0 {
		t.Fatalf("Error %s should not have compiled\n", srcfile.Filename())
	}
	//
	for i := range max(len(actual), len(expected)) {
		if i < len(actual) && i < len(expected) && sameError(actual[i], expected[i]) {
			continue
		}
		//
		mismatch = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected error %s", msg, errorToString(actual[i]))
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %s", msg, errorToString(expected[i]))
		}
	}
	//
	if mismatch {
		t.Fatal(msg)
	}
}

func sameError(lhs, rhs source.SyntaxError) bool {
	return lhs.Message() == rhs.Message() && lhs.Span() == rhs.Span()
}

// Convert an error into the same "file:line:X-Y msg" form used for
// diagnostics.
func errorToString(err source.SyntaxError) string {
	var (
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		length     = min(line.Length()-lineOffset, span.Length())
	)
	//
	return fmt.Sprintf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
}
