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
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"github.com/wasmrun/wasmgo/cmd/commands"
	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/executor/executortest"
	"github.com/wasmrun/wasmgo/pkg/goplugin"
)

func runRoot(t *testing.T, runner *executortest.Runner, args ...string) (int, string, string) {
	t.Helper()
	color.NoColor = true
	t.Setenv("WASMGO_MANIFEST", "")

	root := newRootCommand(dkplog.NewNop(), goplugin.WithRunner(runner))
	var stdout, stderr bytes.Buffer
	root.SetOutput(&stdout, &stderr)
	root.SetArgs(args)

	code := root.Execute(context.Background())
	return code, stdout.String(), stderr.String()
}

func TestRootExitCodes(t *testing.T) {
	runner := executortest.NewRunner().
		ToolMissing(executor.ToolTinyGo).
		ToolMissing(executor.ToolGo)

	code, stdout, stderr := runRoot(t, runner, "frameworks")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Optimization Levels")
	assert.Empty(t, stderr)

	code, _, stderr = runRoot(t, runner, "check-deps")
	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr, "Error:")

	code, _, stderr = runRoot(t, runner, "no-such-command")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: unknown command")
}

func TestRootInfoJSON(t *testing.T) {
	code, stdout, _ := runRoot(t, executortest.NewRunner(), "info", "--output", "json")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, `"plugin_type": "external"`)
}

func TestHelpJSON(t *testing.T) {
	code, stdout, _ := runRoot(t, executortest.NewRunner(), "help-json")
	require.Equal(t, 0, code)

	var tree commands.CommandInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "wasmgo", tree.Name)
	assert.Contains(t, tree.Flags, "manifest")

	names := make(map[string]commands.CommandInfo)
	for _, sub := range tree.Subcommands {
		names[sub.Name] = sub
	}
	require.Contains(t, names, "run")
	require.Contains(t, names, "clean")
	assert.NotContains(t, names, "help-json")
	assert.Equal(t, []string{"r"}, names["run"].Aliases)
	assert.Equal(t, "PATH", names["clean"].Args)
	assert.Equal(t, "./dist", names["run"].Flags["output"].Default)
	assert.True(t, names["run"].Flags["manifest"].Global)
}
