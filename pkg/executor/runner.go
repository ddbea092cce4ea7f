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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command is a single external process invocation
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output is what a finished process left behind
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (o *Output) Success() bool {
	return o != nil && o.ExitCode == 0
}

// CommandRunner runs a command to completion. A process that started and
// exited with a non-zero status is not an error: it is reported through
// Output.ExitCode. Errors are reserved for processes that could not run.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// OSRunner runs commands on the host with os/exec.
type OSRunner struct {
	env []string
}

func NewOSRunner() *OSRunner {
	return &OSRunner{env: os.Environ()}
}

// NewOSRunnerWithEnv runs commands with extra KEY=VALUE pairs on top of the current environment.
func NewOSRunnerWithEnv(extra map[string]string) *OSRunner {
	env := append([]string(nil), os.Environ()...)
	for key, value := range extra {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	return &OSRunner{env: env}
}

func (r *OSRunner) Run(ctx context.Context, cmd Command) (*Output, error) {
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	execCmd.Dir = cmd.Dir
	execCmd.Env = r.env

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()
	out := &Output{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return out, nil
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	default:
		return nil, fmt.Errorf("run %s: %w", cmd.Name, err)
	}
}
