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

import "sync"

const (
	ToolTinyGo = "tinygo"
	ToolGo     = "go"
)

var (
	toolsMu sync.RWMutex

	// tinygo has no --version flag
	versionArgs = map[string]string{
		ToolTinyGo: "version",
		ToolGo:     "version",
	}

	installHints = map[string]string{
		ToolTinyGo: "install from https://tinygo.org",
		ToolGo:     "Go compiler",
	}
)

const defaultVersionArg = "--version"

// VersionArg returns the argument used to probe a tool.
func VersionArg(tool string) string {
	toolsMu.RLock()
	defer toolsMu.RUnlock()

	if arg, ok := versionArgs[tool]; ok {
		return arg
	}
	return defaultVersionArg
}

// RegisterVersionArg overrides the probe argument for a tool.
func RegisterVersionArg(tool, arg string) {
	toolsMu.Lock()
	defer toolsMu.Unlock()

	versionArgs[tool] = arg
}

// InstallHint formats a missing tool for humans, e.g. "tinygo (install from https://tinygo.org)".
// Tools without a registered hint are returned as is.
func InstallHint(tool string) string {
	toolsMu.RLock()
	defer toolsMu.RUnlock()

	if hint, ok := installHints[tool]; ok {
		return tool + " (" + hint + ")"
	}
	return tool
}

func RegisterInstallHint(tool, hint string) {
	toolsMu.Lock()
	defer toolsMu.Unlock()

	installHints[tool] = hint
}
