/*
Copyright 2025 Flant JSC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package plugin

import (
	"fmt"
	"strings"
)

type OptimizationLevel int

const (
	OptimizationDebug OptimizationLevel = iota
	OptimizationRelease
	OptimizationSize
)

var optimizationNames = map[OptimizationLevel]string{
	OptimizationDebug:   "debug",
	OptimizationRelease: "release",
	OptimizationSize:    "size",
}

func (o OptimizationLevel) String() string {
	if name, ok := optimizationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OptimizationLevel(%d)", int(o))
}

// ParseOptimizationLevel accepts the lowercase names printed by String.
func ParseOptimizationLevel(s string) (OptimizationLevel, error) {
	for level, name := range optimizationNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}
	return OptimizationRelease, fmt.Errorf("unknown optimization level %q, expected one of: debug, release, size", s)
}

type TargetType int

const (
	TargetStandard TargetType = iota
	TargetWeb
)

func (t TargetType) String() string {
	switch t {
	case TargetStandard:
		return "standard"
	case TargetWeb:
		return "web"
	default:
		return fmt.Sprintf("TargetType(%d)", int(t))
	}
}

// BuildConfig holds the parameters of a single build. The builder only reads it.
type BuildConfig struct {
	ProjectPath       string
	OutputDirectory   string
	Verbose           bool
	OptimizationLevel OptimizationLevel
	TargetType        TargetType
}

// CompileConfig is the name the Chakra flavour of the host uses for BuildConfig.
type CompileConfig = BuildConfig

// BuildResult describes what a successful build produced.
type BuildResult struct {
	WasmFilePath    string   `json:"wasm_file_path" yaml:"wasm_file_path"`
	JSFilePath      string   `json:"js_file_path,omitempty" yaml:"js_file_path,omitempty"`
	AdditionalFiles []string `json:"additional_files" yaml:"additional_files"`
	IsWasmBindgen   bool     `json:"is_wasm_bindgen" yaml:"is_wasm_bindgen"`
}

// HasJSFile reports whether the build emitted a JavaScript companion.
func (r *BuildResult) HasJSFile() bool {
	return r != nil && r.JSFilePath != ""
}
