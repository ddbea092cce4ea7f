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
	"os"

	"github.com/spf13/cobra"

	"github.com/wasmrun/wasmgo/pkg/executor"
)

const distDirectory = "dist"

func (pc *PluginCommands) cleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean PATH",
		Short: "Remove build artifacts of the project at PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			projectPath := args[0]
			if !executor.IsSafePath(projectPath) {
				return fmt.Errorf("refusing to clean %q: parent directory references are not allowed", projectPath)
			}

			fmt.Fprintf(pc.stdout, "🧹 Cleaning project artifacts: %s\n", projectPath)

			distPath := executor.JoinPaths(projectPath, distDirectory)
			if executor.FileExists(distPath) {
				pc.logger.Debug("Removing build output", slog.String("path", distPath))
				if err := os.RemoveAll(distPath); err != nil {
					pc.warn("⚠️  Failed to clean dist directory: %v", err)
				} else {
					pc.success("✅ Cleaned dist directory")
				}
			}

			pc.success("✅ Project cleaned successfully!")
			return nil
		},
	}
}
