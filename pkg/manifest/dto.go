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

package manifest

// Manifest represents the build manifest (DTO for TOML unmarshaling)
type Manifest struct {
	Package PackageDTO `toml:"package"`
}

// PackageDTO represents the [package] table
type PackageDTO struct {
	Name        string       `toml:"name"`
	Version     string       `toml:"version"`
	Authors     []string     `toml:"authors"`
	Description string       `toml:"description"`
	Homepage    string       `toml:"homepage,omitempty"`
	Repository  string       `toml:"repository,omitempty"`
	License     string       `toml:"license,omitempty"`
	Keywords    []string     `toml:"keywords,omitempty"`
	Categories  []string     `toml:"categories,omitempty"`
	Metadata    *MetadataDTO `toml:"metadata,omitempty"`
}

// MetadataDTO represents the [package.metadata] table
type MetadataDTO struct {
	WasmPlugin *WasmPluginDTO `toml:"wasm-plugin,omitempty"`
}

// WasmPluginDTO represents the [package.metadata.wasm-plugin] table
type WasmPluginDTO struct {
	Name         string          `toml:"name"`
	Extensions   []string        `toml:"extensions"`
	EntryFiles   []string        `toml:"entry_files"`
	Capabilities CapabilitiesDTO `toml:"capabilities"`
	Dependencies DependenciesDTO `toml:"dependencies"`
}

// CapabilitiesDTO represents the capabilities table
type CapabilitiesDTO struct {
	CompileWasm   bool     `toml:"compile_wasm"`
	CompileWebapp bool     `toml:"compile_webapp"`
	LiveReload    bool     `toml:"live_reload"`
	Optimization  bool     `toml:"optimization"`
	CustomTargets []string `toml:"custom_targets"`
}

// DependenciesDTO represents the dependencies table
type DependenciesDTO struct {
	Tools []string `toml:"tools"`
}
