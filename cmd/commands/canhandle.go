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

	"github.com/spf13/cobra"

	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/goplugin"
)

func (pc *PluginCommands) canHandleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "can-handle PATH",
		Short: "Check whether wasmgo can build the project at PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			projectPath := args[0]

			if !pc.plugin.CanHandleProject(projectPath) {
				pc.failure(pc.stdout, "❌ No, wasmgo cannot handle this project")
				fmt.Fprintf(pc.stdout, "🔍 Looking for go.mod or .go files in: %s\n", projectPath)
				return ErrReported
			}

			pc.success("✅ Yes, wasmgo can handle this project")
			modFile := executor.JoinPaths(projectPath, goplugin.ModuleFile)
			if executor.FileExists(modFile) {
				fmt.Fprintf(pc.stdout, "📁 Found go.mod at: %s\n", modFile)
			} else {
				fmt.Fprintf(pc.stdout, "📁 Found Go files in: %s\n", projectPath)
			}
			return nil
		},
	}
}
