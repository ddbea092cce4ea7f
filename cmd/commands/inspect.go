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
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/wasmrun/wasmgo/cmd/commands/flags"
	"github.com/wasmrun/wasmgo/internal/project"
	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/goplugin"
)

var toolDescriptions = map[string]string{
	executor.ToolGo:     "Go compiler",
	executor.ToolTinyGo: "WebAssembly compiler for Go",
}

var inspectLong = templates.LongDesc(`
	Analyze a Go project and report whether it is ready to be compiled
	to WebAssembly.

	Shows the Go files found in the project directory, the module declared in
	go.mod and the status of every build tool the plugin depends on.`)

func (pc *PluginCommands) inspectCommand() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:     "inspect",
		Aliases: []string{"check"},
		Short:   "Inspect a Go project and its build dependencies",
		Long:    inspectLong,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc.printHeader()
			fmt.Fprintln(pc.stdout, "🔍 Inspecting Go project...")
			fmt.Fprintln(pc.stdout)

			if !pc.plugin.CanHandleProject(projectPath) {
				pc.failure(pc.stderr, "❌ Invalid project: Not a Go project")
				fmt.Fprintf(pc.stderr, "   Looking for go.mod or .go files in: %s\n", projectPath)
				return ErrReported
			}

			pc.printSection("📊 Project Analysis")

			analysis, err := project.Analyze(projectPath)
			if err != nil {
				pc.logger.Warn("Project analysis incomplete", slog.String("project", projectPath), slog.String("error", err.Error()))
			}
			if analysis != nil {
				pc.printAnalysis(analysis)
			}

			fmt.Fprintln(pc.stdout, "🎯 Type: Go WebAssembly project")
			fmt.Fprintln(pc.stdout, "🔧 Build Tool: TinyGo")
			fmt.Fprintln(pc.stdout)

			pc.printSection("📋 Dependencies")

			statuses := pc.plugin.Dependencies(cmd.Context())
			for _, status := range statuses {
				pc.printDependency(status)
			}
			fmt.Fprintln(pc.stdout)

			if lo.EveryBy(statuses, func(s goplugin.DependencyStatus) bool { return s.Installed }) {
				pc.success("🎉 Project is ready to compile!")
				return nil
			}

			pc.warn("⚠️  Some required dependencies are missing. Install them to proceed.")
			return ErrReported
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", flags.DefaultProject, "Project path to inspect")

	return cmd
}

func (pc *PluginCommands) printAnalysis(analysis *project.Analysis) {
	if len(analysis.GoFiles) > 0 {
		fmt.Fprintf(pc.stdout, "📁 Go files: %s\n", strings.Join(analysis.GoFiles, ", "))
	}

	if !analysis.HasModule {
		return
	}

	fmt.Fprintln(pc.stdout, "📦 Module: Found go.mod")
	if analysis.ModulePath != "" {
		fmt.Fprintf(pc.stdout, "   Path: %s\n", analysis.ModulePath)
	}
	if analysis.GoVersion != "" {
		fmt.Fprintf(pc.stdout, "   Go version: %s\n", analysis.GoVersion)
	}
	if analysis.Requires > 0 {
		fmt.Fprintf(pc.stdout, "   Requirements: %d\n", analysis.Requires)
	}
}

func (pc *PluginCommands) printDependency(status goplugin.DependencyStatus) {
	if !status.Installed {
		pc.failure(pc.stdout, "❌ %s", status.Hint)
		return
	}
	pc.success("✅ %s", dependencyLine(status))
}

// dependencyLine renders an installed tool as "tinygo - WebAssembly compiler for Go (0.33.0)"
func dependencyLine(status goplugin.DependencyStatus) string {
	line := status.Tool
	if description, ok := toolDescriptions[status.Tool]; ok {
		line += " - " + description
	}
	if status.Version != "" {
		line += " (" + status.Version + ")"
	}
	return line
}
