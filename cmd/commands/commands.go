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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"github.com/wasmrun/wasmgo/cmd/commands/flags"
	"github.com/wasmrun/wasmgo/pkg/goplugin"
	"github.com/wasmrun/wasmgo/pkg/manifest"
)

// ErrReported means the command already told the user what went wrong and
// only the exit status is left to set.
var ErrReported = errors.New("command failed")

// PluginCommands holds what every wasmgo subcommand needs
type PluginCommands struct {
	plugin  *goplugin.Plugin
	options []goplugin.Option

	stdout io.Writer
	stderr io.Writer
	logger *dkplog.Logger
}

func NewPluginCommands(logger *dkplog.Logger, options ...goplugin.Option) *PluginCommands {
	return &PluginCommands{
		options: options,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  logger,
	}
}

// SetOutput redirects everything the commands print.
func (pc *PluginCommands) SetOutput(stdout, stderr io.Writer) {
	pc.stdout = stdout
	pc.stderr = stderr
}

// InitPlugin resolves the manifest and builds the plugin. It runs once the
// persistent flags are parsed.
func (pc *PluginCommands) InitPlugin() error {
	if pc.plugin != nil {
		return nil
	}

	pc.logger.Debug("Loading plugin manifest", slog.String("manifest", flags.ManifestPath))

	m, err := manifest.Resolve(flags.ManifestPath)
	if err != nil {
		return fmt.Errorf("load plugin manifest: %w", err)
	}

	opts := append([]goplugin.Option{
		goplugin.WithLogger(pc.logger.Named("go-plugin")),
		goplugin.WithOutput(pc.stdout),
	}, pc.options...)

	p, err := goplugin.New(m, opts...)
	if err != nil {
		return fmt.Errorf("create go plugin: %w", err)
	}
	pc.plugin = p

	pc.logger.Debug("Plugin initialized", slog.String("name", p.Info().Name), slog.String("version", p.Info().Version))
	return nil
}

// Commands returns every wasmgo subcommand
func (pc *PluginCommands) Commands() []*cobra.Command {
	return []*cobra.Command{
		pc.runCommand(),
		pc.compileCommand(),
		pc.inspectCommand(),
		pc.canHandleCommand(),
		pc.checkDepsCommand(),
		pc.cleanCommand(),
		pc.infoCommand(),
		pc.frameworksCommand(),
	}
}
