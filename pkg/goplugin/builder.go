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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/plugin"
)

const wasmExtension = ".wasm"

// DependencyStatus is the probe result for one declared tool
type DependencyStatus struct {
	Tool      string
	Installed bool
	Version   string
	Hint      string
}

// CheckDependencies returns the declared tools that failed their version
// probe, decorated with install hints.
func (p *Plugin) CheckDependencies(ctx context.Context) []string {
	return lo.FilterMap(p.info.Dependencies, func(tool string, _ int) (string, bool) {
		if p.exec.IsToolInstalled(ctx, tool) {
			return "", false
		}
		return executor.InstallHint(tool), true
	})
}

// Dependencies probes every declared tool and reports its version when it has one.
func (p *Plugin) Dependencies(ctx context.Context) []DependencyStatus {
	return lo.Map(p.info.Dependencies, func(tool string, _ int) DependencyStatus {
		status := DependencyStatus{
			Tool: tool,
			Hint: executor.InstallHint(tool),
		}

		version, err := p.exec.ToolVersion(ctx, tool)
		if err != nil {
			p.logger.Debug("Tool version unavailable", slog.String("tool", tool), slog.String("error", err.Error()))
			status.Installed = p.exec.IsToolInstalled(ctx, tool)
			return status
		}

		status.Installed = true
		status.Version = version.String()
		return status
	})
}

func (p *Plugin) ValidateProject(projectPath string) error {
	if err := executor.ValidateDirectoryExists(projectPath); err != nil {
		return err
	}

	_, err := p.FindEntryFile(projectPath)
	return err
}

// FindEntryFile returns the first entry candidate present in the project,
// falling back to the first source file of the top-level directory.
func (p *Plugin) FindEntryFile(projectPath string) (string, error) {
	for _, candidate := range p.info.EntryFiles {
		entryPath := executor.JoinPaths(projectPath, candidate)
		if executor.FileExists(entryPath) {
			p.logger.Debug("Found entry file candidate", slog.String("path", entryPath))
			return entryPath, nil
		}
	}

	if entries, err := os.ReadDir(projectPath); err == nil {
		for _, entry := range entries {
			if entry.IsDir() || !p.hasSupportedExtension(entry.Name()) {
				continue
			}
			entryPath := filepath.Join(projectPath, entry.Name())
			p.logger.Debug("Using first source file as entry", slog.String("path", entryPath))
			return entryPath, nil
		}
	}

	return "", plugin.NewMissingEntryFile(p.info.EntryFiles)
}

// Build compiles the project with tinygo into <output>/<entry stem>.wasm.
func (p *Plugin) Build(ctx context.Context, config plugin.BuildConfig) (*plugin.BuildResult, error) {
	if !p.exec.IsToolInstalled(ctx, executor.ToolTinyGo) {
		return nil, plugin.NewBuildToolNotFound(executor.ToolTinyGo)
	}

	entryFilePath, err := p.FindEntryFile(config.ProjectPath)
	if err != nil {
		return nil, err
	}

	if err := executor.EnsureOutputDirectoryExists(config.OutputDirectory); err != nil {
		return nil, err
	}

	entryName := filepath.Base(entryFilePath)
	outputFileName := strings.TrimSuffix(entryName, filepath.Ext(entryName)) + wasmExtension
	outputPath := filepath.Join(config.OutputDirectory, outputFileName)

	// tinygo runs inside the project directory, so it needs an absolute output path
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return nil, plugin.NewIO(err)
	}

	if config.Verbose {
		fmt.Fprintln(p.out, "🔨 Building with TinyGo...")
	}
	p.logger.Debug("Building project",
		slog.String("project", config.ProjectPath),
		slog.String("entry", entryFilePath),
		slog.String("output", outputPath),
		slog.String("optimization", config.OptimizationLevel.String()),
		slog.String("target", config.TargetType.String()))

	output, err := p.exec.Execute(ctx, executor.ToolTinyGo, buildArgs(absOutputPath, config.OptimizationLevel), config.ProjectPath, config.Verbose)
	if err != nil {
		return nil, err
	}

	if !output.Success() {
		return nil, plugin.NewCompilationFailed(
			fmt.Sprintf("Build failed: %s", output.Stderr),
			plugin.ErrNonZeroExit,
		)
	}

	if !executor.FileExists(absOutputPath) {
		return nil, plugin.NewCompilationFailed(
			"TinyGo build completed but WASM file was not created",
			plugin.ErrArtifactMissing,
		)
	}

	return &plugin.BuildResult{
		WasmFilePath:    outputPath,
		AdditionalFiles: []string{},
		IsWasmBindgen:   false,
	}, nil
}

// Compile is Build under the name the Chakra host uses.
func (p *Plugin) Compile(ctx context.Context, config plugin.CompileConfig) (*plugin.BuildResult, error) {
	return p.Build(ctx, config)
}

func buildArgs(outputPath string, level plugin.OptimizationLevel) []string {
	args := []string{"build", "-o", outputPath, "-target=wasm"}

	switch level {
	case plugin.OptimizationRelease:
		args = append(args, "-opt=2")
	case plugin.OptimizationSize:
		args = append(args, "-opt=z", "-no-debug")
	}

	return append(args, ".")
}
