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

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Analysis is what `inspect` shows about a Go project
type Analysis struct {
	Path       string
	GoFiles    []string
	HasModule  bool
	ModulePath string
	GoVersion  string
	Requires   int
}

// Analyze lists the top-level Go files and reads go.mod when present.
// A go.mod that fails to parse is reported as an error, the file list is still returned.
func Analyze(projectPath string) (*Analysis, error) {
	analysis := &Analysis{Path: projectPath}

	entries, err := os.ReadDir(projectPath)
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".go") {
			analysis.GoFiles = append(analysis.GoFiles, entry.Name())
		}
	}

	modPath := filepath.Join(projectPath, "go.mod")
	modBytes, err := os.ReadFile(modPath)
	if err != nil {
		if os.IsNotExist(err) {
			return analysis, nil
		}
		return analysis, fmt.Errorf("read go.mod: %w", err)
	}
	analysis.HasModule = true

	modFile, err := modfile.Parse(modPath, modBytes, nil)
	if err != nil {
		return analysis, fmt.Errorf("parse go.mod: %w", err)
	}

	if modFile.Module != nil {
		analysis.ModulePath = modFile.Module.Mod.Path
	}
	if modFile.Go != nil {
		analysis.GoVersion = modFile.Go.Version
	}
	analysis.Requires = len(modFile.Require)

	return analysis, nil
}
