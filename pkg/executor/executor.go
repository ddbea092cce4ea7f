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

package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"github.com/wasmrun/wasmgo/pkg/plugin"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Executor runs build tools through a CommandRunner and optionally echoes
// what it does to an output stream.
type Executor struct {
	runner CommandRunner
	out    io.Writer
	logger *dkplog.Logger
}

func New(runner CommandRunner, logger *dkplog.Logger) *Executor {
	if runner == nil {
		runner = NewOSRunner()
	}
	if logger == nil {
		logger = dkplog.NewNop()
	}

	return &Executor{
		runner: runner,
		out:    os.Stdout,
		logger: logger,
	}
}

// WithOutput redirects verbose pass-through printing.
func (e *Executor) WithOutput(w io.Writer) *Executor {
	e.out = w
	return e
}

// IsToolInstalled probes the tool with its version flag; only a zero exit counts.
func (e *Executor) IsToolInstalled(ctx context.Context, tool string) bool {
	out, err := e.probe(ctx, tool)
	if err != nil {
		e.logger.Debug("Tool probe failed to start", slog.String("tool", tool), slog.String("error", err.Error()))
		return false
	}

	e.logger.Debug("Tool probe finished", slog.String("tool", tool), slog.Int("exit_code", out.ExitCode))
	return out.Success()
}

// ToolVersion extracts the first version number from the probe's output.
func (e *Executor) ToolVersion(ctx context.Context, tool string) (*semver.Version, error) {
	out, err := e.probe(ctx, tool)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		return nil, fmt.Errorf("%s exited with status %d", tool, out.ExitCode)
	}

	raw := versionPattern.FindString(string(out.Stdout))
	if raw == "" {
		raw = versionPattern.FindString(string(out.Stderr))
	}
	if raw == "" {
		return nil, fmt.Errorf("no version found in %s output", tool)
	}

	version, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s version %q: %w", tool, raw, err)
	}

	return version, nil
}

func (e *Executor) probe(ctx context.Context, tool string) (*Output, error) {
	return e.runner.Run(ctx, Command{Name: tool, Args: []string{VersionArg(tool)}})
}

// Execute runs name with args inside workingDirectory. Failure to start the
// process becomes an IO plugin error; the exit status is left to the caller.
func (e *Executor) Execute(ctx context.Context, name string, args []string, workingDirectory string, verbose bool) (*Output, error) {
	cmd := Command{Name: name, Args: args, Dir: workingDirectory}

	if verbose {
		fmt.Fprintf(e.out, "Executing: %s %s in %s\n", name, strings.Join(args, " "), workingDirectory)
	}
	e.logger.Debug("Executing command", slog.String("command", cmd.String()), slog.String("dir", workingDirectory))

	out, err := e.runner.Run(ctx, cmd)
	if err != nil {
		return nil, plugin.NewIO(err)
	}

	if verbose {
		fmt.Fprintf(e.out, "Command output: %s\n", out.Stdout)
		if len(out.Stderr) > 0 {
			fmt.Fprintf(e.out, "Command stderr: %s\n", out.Stderr)
		}
	}

	return out, nil
}
