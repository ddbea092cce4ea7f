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
	"k8s.io/kubectl/pkg/util/templates"
)

var checkDepsLong = templates.LongDesc(`
	Check that every tool declared in the plugin manifest is installed.

	Exits with a non-zero status and prints installation suggestions when
	any of them is missing.`)

func (pc *PluginCommands) checkDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-deps",
		Short: "Check the system for required build tools",
		Long:  checkDepsLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pc.printHeader()
			fmt.Fprintln(pc.stdout, "🔍 Checking system dependencies...")
			fmt.Fprintln(pc.stdout)

			missing := pc.plugin.Builder().CheckDependencies(cmd.Context())
			if len(missing) == 0 {
				pc.success("✅ All required dependencies are available!")
				fmt.Fprintln(pc.stdout)
				fmt.Fprintln(pc.stdout, "📋 Available tools:")
				for _, status := range pc.plugin.Dependencies(cmd.Context()) {
					fmt.Fprintf(pc.stdout, "   ✅ %s\n", dependencyLine(status))
				}
				return nil
			}

			pc.failure(pc.stdout, "❌ Missing required dependencies:")
			for _, dep := range missing {
				fmt.Fprintf(pc.stdout, "   • %s\n", dep)
			}

			fmt.Fprintln(pc.stdout)
			fmt.Fprintln(pc.stdout, "💡 Installation suggestions:")
			fmt.Fprintln(pc.stdout, "   • Install Go: https://golang.org/dl/")
			fmt.Fprintln(pc.stdout, "   • Install TinyGo: https://tinygo.org/getting-started/install/")
			fmt.Fprintln(pc.stdout, "   • On macOS with Homebrew: brew install go tinygo")
			fmt.Fprintln(pc.stdout, "   • On Ubuntu/Debian: sudo apt install golang-go && follow TinyGo instructions")
			return ErrReported
		},
	}
}
