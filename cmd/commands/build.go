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

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/wasmrun/wasmgo/cmd/commands/flags"
	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/plugin"
)

var (
	runLong = templates.LongDesc(`
		Build a Go project to WebAssembly and print the path of the produced module.

		This is what Wasmrun calls before executing a Go project. Without --verbose
		only the artifact path is printed, so the output can be consumed by scripts.`)

	runExample = templates.Examples(`
		# Build the project in the current directory into ./dist
		wasmgo run

		# Build another project with the smallest output
		wasmgo run -p ./my-go-project --optimization size`)

	compileLong = templates.LongDesc(`
		Compile a Go project to WebAssembly with TinyGo.

		The entry file is the first of the manifest's entry candidates found in the
		project, or the first .go file of the project directory.`)

	compileExample = templates.Examples(`
		# Compile with debug information
		wasmgo compile -p ./my-project --optimization debug -v`)
)

func (pc *PluginCommands) runCommand() *cobra.Command {
	buildFlags := &flags.Build{}

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Run a Go WebAssembly project for execution",
		Long:    runLong,
		Example: runExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := buildFlags.BuildConfig()
			if err != nil {
				return err
			}

			if config.Verbose {
				pc.printHeader()
				fmt.Fprintln(pc.stdout, "🚀 Preparing Go project for execution...")
				pc.printBuildParameters(config, false)
			}

			result, err := pc.build(cmd.Context(), config)
			if errors.Is(err, ErrReported) {
				return err
			}
			if err != nil {
				pc.failure(pc.stderr, "❌ Failed to prepare project for execution: %v", err)
				return ErrReported
			}

			if config.Verbose {
				pc.success("✅ Project ready for execution!")
				fmt.Fprintf(pc.stdout, "🎯 Entry point: %s\n", result.WasmFilePath)
			} else {
				fmt.Fprintln(pc.stdout, result.WasmFilePath)
			}
			return nil
		},
	}

	flags.AddBuildFlags(cmd.Flags(), buildFlags, false)

	return cmd
}

func (pc *PluginCommands) compileCommand() *cobra.Command {
	buildFlags := &flags.Build{}

	cmd := &cobra.Command{
		Use:     "compile",
		Aliases: []string{"c"},
		Short:   "Compile a Go project to WebAssembly",
		Long:    compileLong,
		Example: compileExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := buildFlags.BuildConfig()
			if err != nil {
				return err
			}

			if config.Verbose {
				pc.printHeader()
				fmt.Fprintln(pc.stdout, "🔨 Compiling Go project to WebAssembly...")
				pc.printBuildParameters(config, true)
			}

			result, err := pc.build(cmd.Context(), config)
			if errors.Is(err, ErrReported) {
				return err
			}
			if err != nil {
				pc.failure(pc.stderr, "❌ Compilation failed: %v", err)
				return ErrReported
			}

			pc.success("✅ Compilation completed successfully!")
			fmt.Fprintf(pc.stdout, "🎯 WASM file: %s\n", result.WasmFilePath)

			if result.HasJSFile() {
				fmt.Fprintf(pc.stdout, "📄 JS bindings: %s\n", result.JSFilePath)
			}

			if len(result.AdditionalFiles) > 0 {
				fmt.Fprintf(pc.stdout, "📂 Additional files: %d\n", len(result.AdditionalFiles))
				if config.Verbose {
					for _, file := range result.AdditionalFiles {
						fmt.Fprintf(pc.stdout, "   • %s\n", file)
					}
				}
			}
			return nil
		},
	}

	flags.AddBuildFlags(cmd.Flags(), buildFlags, true)

	return cmd
}

func (pc *PluginCommands) printBuildParameters(config plugin.BuildConfig, withTarget bool) {
	fmt.Fprintf(pc.stdout, "📁 Project: %s\n", config.ProjectPath)
	fmt.Fprintf(pc.stdout, "📦 Output: %s\n", config.OutputDirectory)
	fmt.Fprintf(pc.stdout, "🎯 Optimization: %s\n", config.OptimizationLevel)
	if withTarget {
		fmt.Fprintf(pc.stdout, "🏗️  Target: %s\n", flags.TargetName(config.TargetType))
	}
	fmt.Fprintln(pc.stdout)
}

// build runs the same checks as the host before handing over to the builder
func (pc *PluginCommands) build(ctx context.Context, config plugin.BuildConfig) (*plugin.BuildResult, error) {
	if !pc.checkProjectValidity(config.ProjectPath) {
		return nil, ErrReported
	}

	if !pc.checkDependencies(ctx) {
		return nil, ErrReported
	}

	pc.logger.Debug("Starting build",
		slog.String("project", config.ProjectPath),
		slog.String("output", config.OutputDirectory))

	return pc.plugin.Builder().Build(ctx, config)
}

func (pc *PluginCommands) checkProjectValidity(project string) bool {
	if pc.plugin.CanHandleProject(project) {
		return true
	}

	pc.failure(pc.stderr, "❌ Error: Not a valid Go project")
	fmt.Fprintf(pc.stderr, "   Looking for go.mod or .go files in: %s\n", project)
	fmt.Fprintln(pc.stderr, "   Make sure you're in a Go project directory")
	return false
}

func (pc *PluginCommands) checkDependencies(ctx context.Context) bool {
	missing := pc.plugin.Builder().CheckDependencies(ctx)
	if len(missing) == 0 {
		return true
	}

	pc.failure(pc.stderr, "❌ Missing required dependencies:")
	for _, dep := range missing {
		fmt.Fprintf(pc.stderr, "   • %s\n", dep)
	}
	fmt.Fprintln(pc.stderr)
	fmt.Fprintln(pc.stderr, "💡 Installation suggestions:")
	if lo.ContainsBy(missing, func(dep string) bool { return dep == executor.InstallHint(executor.ToolGo) }) {
		fmt.Fprintln(pc.stderr, "   • Install Go: https://golang.org/dl/")
	}
	if lo.ContainsBy(missing, func(dep string) bool { return dep == executor.InstallHint(executor.ToolTinyGo) }) {
		fmt.Fprintln(pc.stderr, "   • Install TinyGo: https://tinygo.org/getting-started/install/")
	}
	return false
}
