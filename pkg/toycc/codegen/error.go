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
package codegen

import "fmt"

// InvariantError signals a defect in the compiler itself, rather than a problem
// with the program being compiled.  For example, an unbalanced operand stack.
type InvariantError struct {
	msg string
}

func invariantError(format string, args ...any) *InvariantError {
	return &InvariantError{fmt.Sprintf(format, args...)}
}

// Message returns the message to be reported.
func (p *InvariantError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *InvariantError) Error() string {
	return "internal failure: " + p.msg
}
