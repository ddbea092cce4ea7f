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

// Package manifest reads plugin metadata out of the TOML build manifest.
package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"

	"github.com/wasmrun/wasmgo/pkg/plugin"
)

// EnvManifestPath overrides the embedded manifest for the CLI.
const EnvManifestPath = "WASMGO_MANIFEST"

const unknownAuthor = "Unknown"

var (
	ErrInvalidManifest       = errors.New("invalid plugin manifest")
	ErrMissingPluginMetadata = errors.New("missing [package.metadata.wasm-plugin] section")
)

//go:embed wasmgo.toml
var embedded []byte

// requiredKeys must be present in every manifest, missing ones are all reported at once
var requiredKeys = [][]string{
	{"package", "name"},
	{"package", "version"},
	{"package", "description"},
	{"package", "metadata", "wasm-plugin", "name"},
	{"package", "metadata", "wasm-plugin", "extensions"},
	{"package", "metadata", "wasm-plugin", "entry_files"},
	{"package", "metadata", "wasm-plugin", "capabilities", "compile_wasm"},
	{"package", "metadata", "wasm-plugin", "capabilities", "compile_webapp"},
	{"package", "metadata", "wasm-plugin", "capabilities", "live_reload"},
	{"package", "metadata", "wasm-plugin", "capabilities", "optimization"},
	{"package", "metadata", "wasm-plugin", "capabilities", "custom_targets"},
	{"package", "metadata", "wasm-plugin", "dependencies", "tools"},
}

// Parse decodes and validates a manifest
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	if !md.IsDefined("package", "metadata", "wasm-plugin") {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, ErrMissingPluginMetadata)
	}

	var merr *multierror.Error
	for _, key := range requiredKeys {
		if !md.IsDefined(key...) {
			merr = multierror.Append(merr, fmt.Errorf("missing required field %s", strings.Join(key, ".")))
		}
	}

	if wp := m.Package.Metadata.WasmPlugin; wp != nil {
		if md.IsDefined("package", "metadata", "wasm-plugin", "extensions") && len(wp.Extensions) == 0 {
			merr = multierror.Append(merr, errors.New("package.metadata.wasm-plugin.extensions must not be empty"))
		}
		if md.IsDefined("package", "metadata", "wasm-plugin", "entry_files") && len(wp.EntryFiles) == 0 {
			merr = multierror.Append(merr, errors.New("package.metadata.wasm-plugin.entry_files must not be empty"))
		}
	}

	if m.Package.Version != "" {
		if _, err := semver.NewVersion(m.Package.Version); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("package.version %q is not a semantic version: %w", m.Package.Version, err))
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return &m, nil
}

// Load reads the manifest at path
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Default returns the manifest compiled into the binary
func Default() (*Manifest, error) {
	return Parse(embedded)
}

// Resolve picks the manifest the way the CLI does: explicit path first,
// then $WASMGO_MANIFEST, then the embedded one.
func Resolve(path string) (*Manifest, error) {
	if path == "" {
		path = os.Getenv(EnvManifestPath)
	}
	if path == "" {
		return Default()
	}
	return Load(path)
}

// PluginInfo converts the manifest DTO to the plugin domain entity
func (m *Manifest) PluginInfo() (plugin.Info, error) {
	if m.Package.Metadata == nil || m.Package.Metadata.WasmPlugin == nil {
		return plugin.Info{}, fmt.Errorf("%w: %w", ErrInvalidManifest, ErrMissingPluginMetadata)
	}

	wasmPlugin := m.Package.Metadata.WasmPlugin

	author := unknownAuthor
	if len(m.Package.Authors) > 0 {
		author = m.Package.Authors[0]
	}

	info := plugin.Info{
		Name:        wasmPlugin.Name,
		Version:     m.Package.Version,
		Description: m.Package.Description,
		Author:      author,
		Extensions:  make([]string, 0, len(wasmPlugin.Extensions)),
		EntryFiles:  append([]string{}, wasmPlugin.EntryFiles...),
		Type:        plugin.TypeExternal,
		Source: &plugin.Source{
			Kind:    plugin.SourceRegistry,
			Name:    m.Package.Name,
			Version: m.Package.Version,
		},
		Dependencies: append([]string{}, wasmPlugin.Dependencies.Tools...),
		Capabilities: plugin.Capabilities{
			CompileWasm:   wasmPlugin.Capabilities.CompileWasm,
			CompileWebapp: wasmPlugin.Capabilities.CompileWebapp,
			LiveReload:    wasmPlugin.Capabilities.LiveReload,
			Optimization:  wasmPlugin.Capabilities.Optimization,
			CustomTargets: append([]string{}, wasmPlugin.Capabilities.CustomTargets...),
		},
	}

	// Extensions are compared against lowercased file suffixes
	for _, ext := range wasmPlugin.Extensions {
		info.Extensions = append(info.Extensions, strings.ToLower(strings.TrimPrefix(ext, ".")))
	}

	return info, nil
}
