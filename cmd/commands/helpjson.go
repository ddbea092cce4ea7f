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
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandInfo describes one command of the tree for hosts that drive
// wasmgo as a subprocess.
type CommandInfo struct {
	Name        string              `json:"name,omitempty"`
	Description string              `json:"description"`
	Version     string              `json:"version,omitempty"`
	Aliases     []string            `json:"aliases"`
	Args        string              `json:"args,omitempty"`
	Flags       map[string]FlagInfo `json:"flags"`
	Subcommands []CommandInfo       `json:"subcommands"`
}

type FlagInfo struct {
	Description string `json:"description"`
	Short       string `json:"shorthand"`
	Default     string `json:"default,omitempty"`
	Global      bool   `json:"global"`
}

func (pc *PluginCommands) HelpJSONCommand(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "help-json",
		Short:  "Describe every wasmgo command and flag in JSON.",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(DescribeCommand(root), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal command tree: %w", err)
			}
			fmt.Fprintln(pc.stdout, string(data))
			return nil
		},
	}
}

// DescribeCommand walks cmd and its visible subcommands
func DescribeCommand(cmd *cobra.Command) CommandInfo {
	flags := make(map[string]FlagInfo)
	collectFlags(cmd.InheritedFlags(), flags, true)
	collectFlags(cmd.LocalFlags(), flags, false)

	commands := slices.Clone(cmd.Commands())
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name() < commands[j].Name() })

	subcommands := make([]CommandInfo, 0, len(commands))
	for _, sub := range commands {
		if sub.Hidden || !sub.IsAvailableCommand() {
			continue
		}
		subcommands = append(subcommands, DescribeCommand(sub))
	}

	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Version:     cmd.Version,
		Aliases:     cmd.Aliases,
		Flags:       flags,
		Subcommands: subcommands,
	}
	if info.Aliases == nil {
		info.Aliases = []string{}
	}
	if _, args, found := strings.Cut(cmd.Use, " "); found {
		info.Args = args
	}
	return info
}

func collectFlags(flagSet *pflag.FlagSet, flags map[string]FlagInfo, global bool) {
	if flagSet == nil {
		return
	}
	flagSet.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		flags[f.Name] = FlagInfo{
			Description: f.Usage,
			Short:       f.Shorthand,
			Default:     f.DefValue,
			Global:      global,
		}
	})
}
