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
	"strings"

	"github.com/wasmrun/wasmgo/pkg/plugin"
)

func JoinPaths(basePath, relativePath string) string {
	return filepath.Join(basePath, relativePath)
}

// ValidateDirectoryExists fails with an invalid project structure error
// when path is missing or is not a directory.
func ValidateDirectoryExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return plugin.NewInvalidProjectStructure("Directory does not exist: " + path)
	}
	if !info.IsDir() {
		return plugin.NewInvalidProjectStructure("Path is not a directory: " + path)
	}
	return nil
}

func EnsureOutputDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return plugin.NewOutputDirectoryCreationFailed(path, err)
	}
	return nil
}

// IsSafePath rejects anything that mentions a parent directory.
func IsSafePath(path string) bool {
	return !strings.Contains(path, "..")
}

// FileExists reports whether path exists, whatever it is.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
