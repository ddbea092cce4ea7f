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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCloneIsDeep(t *testing.T) {
	orig := Info{
		Name:         "go",
		Extensions:   []string{"go"},
		EntryFiles:   []string{"main.go"},
		Dependencies: []string{"tinygo"},
		Source:       &Source{Kind: SourceRegistry, Name: "wasmgo", Version: "0.2.0"},
		Capabilities: Capabilities{CompileWasm: true, CustomTargets: []string{}},
	}

	clone := orig.Clone()
	clone.Extensions[0] = "rs"
	clone.EntryFiles[0] = "lib.rs"
	clone.Dependencies[0] = "cargo"
	clone.Source.Name = "other"

	assert.Equal(t, []string{"go"}, orig.Extensions)
	assert.Equal(t, []string{"main.go"}, orig.EntryFiles)
	assert.Equal(t, []string{"tinygo"}, orig.Dependencies)
	assert.Equal(t, "wasmgo", orig.Source.Name)
	require.NotNil(t, clone.Capabilities.CustomTargets)
}

func TestDefaultCapabilities(t *testing.T) {
	caps := DefaultCapabilities()
	assert.True(t, caps.CompileWasm)
	assert.False(t, caps.CompileWebapp)
	assert.False(t, caps.LiveReload)
	assert.Empty(t, caps.CustomTargets)
}

func TestParseOptimizationLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected OptimizationLevel
		wantErr  bool
	}{
		{input: "debug", expected: OptimizationDebug},
		{input: "Release", expected: OptimizationRelease},
		{input: "SIZE", expected: OptimizationSize},
		{input: "fast", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseOptimizationLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, level, mustParse(t, level.String()))
		})
	}
}

func TestBuildResultHasJSFile(t *testing.T) {
	assert.False(t, (*BuildResult)(nil).HasJSFile())
	assert.False(t, (&BuildResult{WasmFilePath: "dist/main.wasm"}).HasJSFile())
	assert.True(t, (&BuildResult{JSFilePath: "dist/main.js"}).HasJSFile())
}

func TestTargetTypeString(t *testing.T) {
	assert.Equal(t, "standard", TargetStandard.String())
	assert.Equal(t, "web", TargetWeb.String())
}

func mustParse(t *testing.T, s string) OptimizationLevel {
	t.Helper()
	level, err := ParseOptimizationLevel(s)
	require.NoError(t, err)
	return level
}
