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

package goplugin

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/executor/executortest"
	"github.com/wasmrun/wasmgo/pkg/plugin"
)

func buildConfig(project, output string) plugin.BuildConfig {
	return plugin.BuildConfig{
		ProjectPath:       project,
		OutputDirectory:   output,
		OptimizationLevel: plugin.OptimizationRelease,
		TargetType:        plugin.TargetStandard,
	}
}

func TestBuildWithoutTinyGo(t *testing.T) {
	runner := executortest.NewRunner().ToolMissing(executor.ToolTinyGo)
	p := newTestPlugin(t, runner)

	dir := t.TempDir()
	writeFiles(t, dir, "main.go")
	out := filepath.Join(dir, "dist")

	_, err := p.Build(context.Background(), buildConfig(dir, out))
	require.ErrorIs(t, err, plugin.ErrBuildToolNotFound)
	assert.Equal(t, "Build tool not found: tinygo", err.Error())

	assert.NoDirExists(t, out)
	runner.AssertNotCalled(t, "Run", mock.Anything, executortest.TinyGoBuild())
}

func TestBuildSuccess(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{name: "main.go", files: []string{"go.mod", "main.go"}, expected: "main.wasm"},
		{name: "app.go", files: []string{"app.go"}, expected: "app.wasm"},
		{name: "fallback source", files: []string{"server.go"}, expected: "server.wasm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := executortest.NewRunner().
				ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
				BuildSucceeds()
			p := newTestPlugin(t, runner)

			dir := t.TempDir()
			writeFiles(t, dir, tt.files...)
			out := filepath.Join(dir, "dist")

			result, err := p.Build(context.Background(), buildConfig(dir, out))
			require.NoError(t, err)

			assert.Equal(t, filepath.Join(out, tt.expected), result.WasmFilePath)
			assert.FileExists(t, result.WasmFilePath)
			assert.False(t, result.HasJSFile())
			assert.False(t, result.IsWasmBindgen)
			assert.NotNil(t, result.AdditionalFiles)
			assert.Empty(t, result.AdditionalFiles)
			runner.AssertExpectations(t)
		})
	}
}

func TestBuildInvocation(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.go")
	out := filepath.Join(dir, "dist")

	tests := []struct {
		level    plugin.OptimizationLevel
		expected []string
	}{
		{level: plugin.OptimizationDebug, expected: []string{"build", "-o", filepath.Join(out, "main.wasm"), "-target=wasm", "."}},
		{level: plugin.OptimizationRelease, expected: []string{"build", "-o", filepath.Join(out, "main.wasm"), "-target=wasm", "-opt=2", "."}},
		{level: plugin.OptimizationSize, expected: []string{"build", "-o", filepath.Join(out, "main.wasm"), "-target=wasm", "-opt=z", "-no-debug", "."}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			runner := executortest.NewRunner().
				ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
				BuildSucceeds()
			p := newTestPlugin(t, runner)

			config := buildConfig(dir, out)
			config.OptimizationLevel = tt.level
			_, err := p.Build(context.Background(), config)
			require.NoError(t, err)

			runner.AssertCalled(t, "Run", mock.Anything, executor.Command{
				Name: executor.ToolTinyGo,
				Args: tt.expected,
				Dir:  dir,
			})
		})
	}
}

func TestBuildRelativeOutputIsPassedAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.go")
	t.Chdir(dir)

	runner := executortest.NewRunner().
		ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
		BuildSucceeds()
	p := newTestPlugin(t, runner)

	result, err := p.Build(context.Background(), buildConfig(".", "dist"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("dist", "main.wasm"), result.WasmFilePath)

	var buildCmd executor.Command
	for _, call := range runner.Calls {
		cmd := call.Arguments.Get(1).(executor.Command)
		if len(cmd.Args) > 0 && cmd.Args[0] == "build" {
			buildCmd = cmd
		}
	}
	assert.True(t, filepath.IsAbs(executortest.OutputPath(buildCmd)))
}

func TestBuildFailures(t *testing.T) {
	t.Run("non-zero exit", func(t *testing.T) {
		runner := executortest.NewRunner().
			ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
			BuildExitsWith(1, "main.go:3: undefined: foo")
		p := newTestPlugin(t, runner)

		dir := t.TempDir()
		writeFiles(t, dir, "main.go")

		_, err := p.Build(context.Background(), buildConfig(dir, filepath.Join(dir, "dist")))
		require.ErrorIs(t, err, plugin.ErrCompilationFailed)
		require.ErrorIs(t, err, plugin.ErrNonZeroExit)
		require.NotErrorIs(t, err, plugin.ErrArtifactMissing)
		assert.Equal(t, "Compilation failed: Build failed: main.go:3: undefined: foo", err.Error())
	})

	t.Run("zero exit without artifact", func(t *testing.T) {
		runner := executortest.NewRunner().
			ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
			BuildExitsWith(0, "")
		p := newTestPlugin(t, runner)

		dir := t.TempDir()
		writeFiles(t, dir, "main.go")

		_, err := p.Build(context.Background(), buildConfig(dir, filepath.Join(dir, "dist")))
		require.ErrorIs(t, err, plugin.ErrCompilationFailed)
		require.ErrorIs(t, err, plugin.ErrArtifactMissing)
		require.NotErrorIs(t, err, plugin.ErrNonZeroExit)
		assert.Equal(t, "Compilation failed: TinyGo build completed but WASM file was not created", err.Error())
	})

	t.Run("no entry file", func(t *testing.T) {
		runner := executortest.NewRunner().ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0")
		p := newTestPlugin(t, runner)

		_, err := p.Build(context.Background(), buildConfig(t.TempDir(), filepath.Join(t.TempDir(), "dist")))
		require.ErrorIs(t, err, plugin.ErrMissingEntryFile)
		runner.AssertNotCalled(t, "Run", mock.Anything, executortest.TinyGoBuild())
	})

	t.Run("output directory cannot be created", func(t *testing.T) {
		runner := executortest.NewRunner().ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0")
		p := newTestPlugin(t, runner)

		dir := t.TempDir()
		writeFiles(t, dir, "main.go")
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))

		_, err := p.Build(context.Background(), buildConfig(dir, filepath.Join(blocker, "dist")))
		require.ErrorIs(t, err, plugin.ErrOutputDirectoryCreationFailed)
	})

	t.Run("compiler cannot start", func(t *testing.T) {
		runner := executortest.NewRunner().ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0")
		runner.On("Run", mock.Anything, executortest.TinyGoBuild()).Return(nil, executortest.ErrNotFound)
		p := newTestPlugin(t, runner)

		dir := t.TempDir()
		writeFiles(t, dir, "main.go")

		_, err := p.Build(context.Background(), buildConfig(dir, filepath.Join(dir, "dist")))
		require.ErrorIs(t, err, plugin.ErrIO)
		require.ErrorIs(t, err, executortest.ErrNotFound)
	})
}

func TestBuildVerbose(t *testing.T) {
	runner := executortest.NewRunner().
		ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
		BuildSucceeds()

	var buf bytes.Buffer
	p, err := NewDefault(WithRunner(runner), WithOutput(&buf))
	require.NoError(t, err)

	dir := t.TempDir()
	writeFiles(t, dir, "main.go")

	config := buildConfig(dir, filepath.Join(dir, "dist"))
	config.Verbose = true
	_, err = p.Compile(context.Background(), config)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "🔨 Building with TinyGo...")
	assert.Contains(t, buf.String(), "Executing: tinygo build -o ")
}

func TestCheckDependencies(t *testing.T) {
	t.Run("all installed", func(t *testing.T) {
		runner := executortest.NewRunner().
			ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0").
			ToolInstalled(executor.ToolGo, "go version go1.23.1 linux/amd64")
		p := newTestPlugin(t, runner)

		assert.Empty(t, p.CheckDependencies(context.Background()))
	})

	t.Run("missing tools keep declaration order", func(t *testing.T) {
		runner := executortest.NewRunner().
			ToolMissing(executor.ToolTinyGo).
			ToolMissing(executor.ToolGo)
		p := newTestPlugin(t, runner)

		assert.Equal(t, []string{
			"tinygo (install from https://tinygo.org)",
			"go (Go compiler)",
		}, p.CheckDependencies(context.Background()))
	})

	t.Run("versions", func(t *testing.T) {
		runner := executortest.NewRunner().
			ToolInstalled(executor.ToolTinyGo, "tinygo version 0.33.0 linux/amd64").
			ToolMissing(executor.ToolGo)
		p := newTestPlugin(t, runner)

		assert.Equal(t, []DependencyStatus{
			{Tool: "tinygo", Installed: true, Version: "0.33.0", Hint: "tinygo (install from https://tinygo.org)"},
			{Tool: "go", Installed: false, Hint: "go (Go compiler)"},
		}, p.Dependencies(context.Background()))
	})
}
