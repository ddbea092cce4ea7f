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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmrun/wasmgo/pkg/plugin"
)

func TestValidateDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	require.NoError(t, ValidateDirectoryExists(dir))

	err := ValidateDirectoryExists(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, plugin.ErrInvalidProjectStructure)
	assert.Equal(t, "Invalid project structure: Directory does not exist: "+filepath.Join(dir, "missing"), err.Error())

	err = ValidateDirectoryExists(file)
	require.ErrorIs(t, err, plugin.ErrInvalidProjectStructure)
	assert.Contains(t, err.Error(), "Path is not a directory: ")
}

func TestEnsureOutputDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "dist")

	require.NoError(t, EnsureOutputDirectoryExists(nested))
	require.DirExists(t, nested)
	require.NoError(t, EnsureOutputDirectoryExists(nested))

	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	err := EnsureOutputDirectoryExists(filepath.Join(blocker, "dist"))
	require.ErrorIs(t, err, plugin.ErrOutputDirectoryCreationFailed)
}

func TestIsSafePath(t *testing.T) {
	assert.True(t, IsSafePath("./project"))
	assert.True(t, IsSafePath("/abs/project"))
	assert.False(t, IsSafePath("../project"))
	assert.False(t, IsSafePath("a/../../b"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileExists(dir))
	assert.False(t, FileExists(JoinPaths(dir, "nope")))
}
