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

// Package plugin describes the contract between a Wasmrun host and a
// language plugin: static plugin metadata, per-build parameters and the
// builder that turns a source project into a WebAssembly artifact.
package plugin

import (
	"context"
	"slices"
)

// Plugin is implemented by every language plugin the host can instantiate.
type Plugin interface {
	Info() Info
	CanHandleProject(projectPath string) bool
	Builder() WasmBuilder
}

// WasmBuilder compiles a project of a single language to WebAssembly.
type WasmBuilder interface {
	LanguageName() string
	EntryFileCandidates() []string
	SupportedExtensions() []string
	CheckDependencies(ctx context.Context) []string
	ValidateProject(projectPath string) error
	Build(ctx context.Context, config BuildConfig) (*BuildResult, error)
}

// Type tells the host where a plugin came from
type Type string

const (
	TypeBuiltin  Type = "builtin"
	TypeExternal Type = "external"
	TypeRegistry Type = "registry"
)

// SourceKind discriminates the Source variants
type SourceKind string

const (
	SourceRegistry SourceKind = "registry"
	SourceGit      SourceKind = "git"
	SourceLocal    SourceKind = "local"
)

// Source records where the plugin distribution can be fetched from.
// Only the fields relevant to Kind are set.
type Source struct {
	Kind    SourceKind `json:"kind" yaml:"kind"`
	Name    string     `json:"name,omitempty" yaml:"name,omitempty"`
	Version string     `json:"version,omitempty" yaml:"version,omitempty"`
	URL     string     `json:"url,omitempty" yaml:"url,omitempty"`
	Branch  string     `json:"branch,omitempty" yaml:"branch,omitempty"`
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"`
}

// Capabilities lists what the plugin is able to produce
type Capabilities struct {
	CompileWasm   bool     `json:"compile_wasm" yaml:"compile_wasm"`
	CompileWebapp bool     `json:"compile_webapp" yaml:"compile_webapp"`
	LiveReload    bool     `json:"live_reload" yaml:"live_reload"`
	Optimization  bool     `json:"optimization" yaml:"optimization"`
	CustomTargets []string `json:"custom_targets" yaml:"custom_targets"`
}

// DefaultCapabilities is what a plugin supports when its manifest says nothing else.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		CompileWasm:   true,
		CustomTargets: []string{},
	}
}

// Info is the static description of a plugin. It is built once from the
// manifest and never changes afterwards.
type Info struct {
	Name         string       `json:"name" yaml:"name"`
	Version      string       `json:"version" yaml:"version"`
	Description  string       `json:"description" yaml:"description"`
	Author       string       `json:"author" yaml:"author"`
	Extensions   []string     `json:"extensions" yaml:"extensions"`
	EntryFiles   []string     `json:"entry_files" yaml:"entry_files"`
	Type         Type         `json:"plugin_type" yaml:"plugin_type"`
	Source       *Source      `json:"source,omitempty" yaml:"source,omitempty"`
	Dependencies []string     `json:"dependencies" yaml:"dependencies"`
	Capabilities Capabilities `json:"capabilities" yaml:"capabilities"`
}

// Clone returns a deep copy so callers cannot mutate the plugin's own Info.
func (i Info) Clone() Info {
	out := i
	out.Extensions = slices.Clone(i.Extensions)
	out.EntryFiles = slices.Clone(i.EntryFiles)
	out.Dependencies = slices.Clone(i.Dependencies)
	out.Capabilities.CustomTargets = slices.Clone(i.Capabilities.CustomTargets)
	if i.Source != nil {
		src := *i.Source
		out.Source = &src
	}
	return out
}
