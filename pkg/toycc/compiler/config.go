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
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/consensys/go-toycc/pkg/toycc/layout"
)

// CONFIG_FILENAME is the name of the configuration file searched for when none
// is given explicitly.
const CONFIG_FILENAME = "toycc.toml"

// Config determines how a compilation is carried out, and how its outcome is
// reported.  It can be read from a TOML file, with individual settings then
// overridden from the command line.
type Config struct {
	Layout      LayoutConfig      `toml:"layout"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Log         LogConfig         `toml:"log"`
}

// LayoutConfig configures the stack frame layout pass.
type LayoutConfig struct {
	// Order is either "forward" or "reverse".
	Order string `toml:"order"`
}

// DiagnosticsConfig configures how errors are reported.
type DiagnosticsConfig struct {
	// Colour is one of "auto", "always" or "never".
	Colour string `toml:"colour"`
}

// LogConfig configures logging.
type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns the configuration used when no other is provided.
func DefaultConfig() Config {
	return Config{
		Layout:      LayoutConfig{Order: layout.FORWARD.String()},
		Diagnostics: DiagnosticsConfig{Colour: "auto"},
	}
}

// ParseConfig parses a configuration from TOML text.  Settings missing from the
// text retain their default values.
func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	//
	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return config, err
	}
	// Catch misspelled settings
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config, fmt.Errorf("unknown setting \"%s\"", undecoded[0].String())
	}
	//
	return config, config.Validate()
}

// LoadConfig reads a configuration from a given TOML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("cannot read %s: %w", path, err)
	}
	//
	config, err := ParseConfig(data)
	if err != nil {
		return config, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	//
	return config, nil
}

// FindConfig walks up from a given directory looking for a configuration file,
// returning its path.  An empty path is returned when none is found.
func FindConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	//
	for {
		path := filepath.Join(dir, CONFIG_FILENAME)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		//
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", nil
		}
		//
		dir = parent
	}
}

// Validate checks that every setting holds a recognised value.
func (p Config) Validate() error {
	if _, err := p.LayoutOrder(); err != nil {
		return err
	}
	//
	switch p.Diagnostics.Colour {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("unknown colour mode \"%s\" (expected auto, always or never)", p.Diagnostics.Colour)
	}
}

// LayoutOrder returns the configured order for assigning frame offsets.
func (p Config) LayoutOrder() (layout.Order, error) {
	return layout.ParseOrder(p.Layout.Order)
}
