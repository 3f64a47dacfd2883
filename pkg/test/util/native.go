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
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// CC is the C compiler driver used to assemble and link programs natively.
const CC = "cc"

// NativeAvailable determines whether generated assembly can be assembled and
// executed on this machine.
func NativeAvailable() bool {
	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		return false
	}
	//
	_, err := exec.LookPath(CC)
	//
	return err == nil
}

// RunNative assembles, links and executes a given assembly listing, returning
// its exit code.  If no native toolchain is available, this returns false.
func RunNative(t *testing.T, asm string) (int, bool) {
	if !NativeAvailable() {
		return 0, false
	}
	//
	var (
		dir     = t.TempDir()
		srcPath = filepath.Join(dir, "main.s")
		binPath = filepath.Join(dir, "main")
	)
	//
	if err := os.WriteFile(srcPath, []byte(asm), 0o644); err != nil {
		t.Fatal(err)
	}
	//
	if out, err := exec.Command(CC, "-o", binPath, srcPath).CombinedOutput(); err != nil {
		t.Fatalf("%s failed: %s\n%s", CC, err, out)
	}
	//
	var exitErr *exec.ExitError
	//
	if err := exec.Command(binPath).Run(); err == nil {
		return 0, true
	} else if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), true
	} else {
		t.Fatalf("%s did not exit normally (%s)", binPath, err)
	}
	//
	return 0, false
}
