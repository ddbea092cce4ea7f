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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"k8s.io/kubectl/pkg/util/templates"

	"github.com/wasmrun/wasmgo/cmd/commands/flags"
)

var infoExample = templates.Examples(`
	# Show plugin information
	wasmgo info

	# Dump the descriptor the host would receive
	wasmgo info -o json`)

func (pc *PluginCommands) infoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "info",
		Short:   "Show plugin information",
		Example: infoExample,
		Args:    cobra.NoArgs,
		PreRunE: flags.ValidateOutputFormat,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("output")
			info := pc.plugin.Info()

			switch format {
			case "json":
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal plugin info: %w", err)
				}
				fmt.Fprintln(pc.stdout, string(data))
				return nil
			case "yaml":
				data, err := yaml.Marshal(info)
				if err != nil {
					return fmt.Errorf("marshal plugin info: %w", err)
				}
				fmt.Fprint(pc.stdout, string(data))
				return nil
			}

			pc.printHeader()
			pc.printSection("🔧 Plugin Information")
			fmt.Fprintf(pc.stdout, "Name: %s\n", info.Name)
			fmt.Fprintf(pc.stdout, "Version: %s\n", info.Version)
			fmt.Fprintf(pc.stdout, "Description: %s\n", info.Description)
			fmt.Fprintf(pc.stdout, "Author: %s\n", info.Author)
			fmt.Fprintln(pc.stdout)

			pc.printSection("🎯 Capabilities")
			fmt.Fprintln(pc.stdout, "✅ Standard WASM compilation")
			fmt.Fprintln(pc.stdout, "✅ TinyGo integration")
			if info.Capabilities.Optimization {
				fmt.Fprintln(pc.stdout, "✅ Multiple optimization levels")
			}
			fmt.Fprintln(pc.stdout, "✅ Go module support")
			fmt.Fprintln(pc.stdout)

			pc.printSection("📄 Usage")
			fmt.Fprintln(pc.stdout, "Primary (via Wasmrun):")
			fmt.Fprintln(pc.stdout, "   wasmrun run ./my-go-project")
			fmt.Fprintln(pc.stdout, "   wasmrun compile ./my-project --optimization size")
			fmt.Fprintln(pc.stdout)
			fmt.Fprintln(pc.stdout, "Standalone (testing/development):")
			fmt.Fprintln(pc.stdout, "   wasmgo run -p ./my-project")
			fmt.Fprintln(pc.stdout, "   wasmgo compile -p ./my-project --target web-app")
			fmt.Fprintln(pc.stdout, "   wasmgo inspect -p ./my-project")
			return nil
		},
	}

	flags.AddOutputFormatFlag(cmd.Flags())

	return cmd
}

func (pc *PluginCommands) frameworksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List supported project types, build tools and optimization levels",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			pc.printHeader()
			pc.printSection("🌐 Supported Frameworks & Project Types")
			fmt.Fprintln(pc.stdout)

			fmt.Fprintln(pc.stdout, "📦 Project Types:")
			fmt.Fprintln(pc.stdout, "   • Standard WASM    - Basic Go → WebAssembly compilation via TinyGo")
			fmt.Fprintln(pc.stdout, "   • Web Applications - Full Go web apps compiled to WebAssembly")
			fmt.Fprintln(pc.stdout)

			fmt.Fprintln(pc.stdout, "🔧 Build Tools:")
			fmt.Fprintln(pc.stdout, "   • TinyGo           - Primary WebAssembly compiler for Go")
			fmt.Fprintln(pc.stdout, "   • go               - Standard Go toolchain for dependency management")
			fmt.Fprintln(pc.stdout)

			fmt.Fprintln(pc.stdout, "🎯 Optimization Levels:")
			fmt.Fprintln(pc.stdout, "   • debug            - Fast compilation, debug symbols")
			fmt.Fprintln(pc.stdout, "   • release          - Balanced optimization")
			fmt.Fprintln(pc.stdout, "   • size             - Smallest possible output")
		},
	}
}
