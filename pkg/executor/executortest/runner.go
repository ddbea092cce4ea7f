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

// Package executortest fakes external tools for builder and CLI tests.
package executortest

import (
	"context"
	"errors"
	"os"
	"slices"

	"github.com/stretchr/testify/mock"

	"github.com/wasmrun/wasmgo/pkg/executor"
)

var ErrNotFound = errors.New("executable file not found in $PATH")

// Runner is a testify mock of executor.CommandRunner.
type Runner struct {
	mock.Mock
}

var _ executor.CommandRunner = (*Runner)(nil)

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Run(ctx context.Context, cmd executor.Command) (*executor.Output, error) {
	args := r.Called(ctx, cmd)
	out, _ := args.Get(0).(*executor.Output)
	return out, args.Error(1)
}

// Probe matches the version probe of tool.
func Probe(tool string) any {
	return mock.MatchedBy(func(cmd executor.Command) bool {
		return cmd.Name == tool && slices.Equal(cmd.Args, []string{executor.VersionArg(tool)})
	})
}

// TinyGoBuild matches any tinygo build invocation.
func TinyGoBuild() any {
	return mock.MatchedBy(func(cmd executor.Command) bool {
		return cmd.Name == executor.ToolTinyGo && len(cmd.Args) > 0 && cmd.Args[0] == "build"
	})
}

// ToolInstalled makes the version probe of tool succeed with the given output.
func (r *Runner) ToolInstalled(tool, versionOutput string) *Runner {
	r.On("Run", mock.Anything, Probe(tool)).
		Return(&executor.Output{Stdout: []byte(versionOutput)}, nil)
	return r
}

// ToolMissing makes the version probe of tool fail to start.
func (r *Runner) ToolMissing(tool string) *Runner {
	r.On("Run", mock.Anything, Probe(tool)).
		Return(nil, ErrNotFound)
	return r
}

// BuildSucceeds fakes a tinygo run that exits 0 and writes the artifact.
func (r *Runner) BuildSucceeds() *Runner {
	r.On("Run", mock.Anything, TinyGoBuild()).
		Return(&executor.Output{}, nil).
		Run(func(args mock.Arguments) {
			cmd := args.Get(1).(executor.Command)
			if out := OutputPath(cmd); out != "" {
				_ = os.WriteFile(out, []byte("\x00asm\x01\x00\x00\x00"), 0o644)
			}
		})
	return r
}

// BuildExitsWith fakes a tinygo run that exits with code and writes nothing.
func (r *Runner) BuildExitsWith(code int, stderr string) *Runner {
	r.On("Run", mock.Anything, TinyGoBuild()).
		Return(&executor.Output{ExitCode: code, Stderr: []byte(stderr)}, nil)
	return r
}

// OutputPath returns the value following -o in a build invocation.
func OutputPath(cmd executor.Command) string {
	i := slices.Index(cmd.Args, "-o")
	if i < 0 || i+1 >= len(cmd.Args) {
		return ""
	}
	return cmd.Args[i+1]
}
