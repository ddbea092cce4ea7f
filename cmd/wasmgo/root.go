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

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	cliflag "k8s.io/component-base/cli/flag"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"github.com/wasmrun/wasmgo/cmd/commands"
	"github.com/wasmrun/wasmgo/cmd/commands/flags"
	"github.com/wasmrun/wasmgo/internal/version"
	"github.com/wasmrun/wasmgo/pkg/goplugin"
)

type RootCommand struct {
	cmd      *cobra.Command
	commands *commands.PluginCommands
	stderr   io.Writer
	logger   *dkplog.Logger
}

func NewRootCommand(options ...goplugin.Option) *RootCommand {
	logger := dkplog.NewLogger(
		dkplog.WithLevel(
			slog.Level(
				dkplog.LogLevelFromStr(
					os.Getenv("LOG_LEVEL"),
				),
			),
		),
	)

	return newRootCommand(logger.Named("wasmgo"), options...)
}

func newRootCommand(logger *dkplog.Logger, options ...goplugin.Option) *RootCommand {
	rootCmd := &RootCommand{
		commands: commands.NewPluginCommands(logger, options...),
		stderr:   os.Stderr,
		logger:   logger,
	}

	rootCmd.cmd = &cobra.Command{
		Use:           "wasmgo",
		Short:         "wasmgo compiles Go projects to WebAssembly for Wasmrun",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return rootCmd.commands.InitPlugin()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	flags.AddPersistentFlags(rootCmd.cmd.PersistentFlags())
	rootCmd.registerCommands()
	rootCmd.cmd.SetGlobalNormalizationFunc(cliflag.WordSepNormalizeFunc)

	return rootCmd
}

func (r *RootCommand) registerCommands() {
	r.cmd.AddCommand(r.commands.Commands()...)
	r.cmd.AddCommand(r.commands.HelpJSONCommand(r.cmd))
}

// SetOutput redirects both the command output and the error report.
func (r *RootCommand) SetOutput(stdout, stderr io.Writer) {
	r.commands.SetOutput(stdout, stderr)
	r.cmd.SetOut(stdout)
	r.cmd.SetErr(stderr)
	r.stderr = stderr
}

func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the command tree and returns the process exit status.
func (r *RootCommand) Execute(ctx context.Context) int {
	err := r.cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, commands.ErrReported):
		r.logger.Debug("Command reported failure")
	default:
		color.New(color.FgRed).Fprintf(r.stderr, "Error: %v\n", err)
	}
	return 1
}

func execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCommand().Execute(ctx)
}
