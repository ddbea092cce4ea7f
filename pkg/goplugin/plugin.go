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

// Package goplugin compiles Go projects to WebAssembly with TinyGo.
package goplugin

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	dkplog "github.com/deckhouse/deckhouse/pkg/log"

	"github.com/wasmrun/wasmgo/pkg/executor"
	"github.com/wasmrun/wasmgo/pkg/manifest"
	"github.com/wasmrun/wasmgo/pkg/plugin"
)

const (
	LanguageName = "Go"
	ModuleFile   = "go.mod"
)

var (
	_ plugin.Plugin      = (*Plugin)(nil)
	_ plugin.WasmBuilder = (*Plugin)(nil)
)

// Plugin is both the plugin descriptor and its builder.
type Plugin struct {
	info plugin.Info

	runner executor.CommandRunner
	exec   *executor.Executor
	out    io.Writer
	logger *dkplog.Logger
}

type Option func(*Plugin)

// WithRunner replaces the process runner, tests use it to fake tinygo.
func WithRunner(runner executor.CommandRunner) Option {
	return func(p *Plugin) {
		p.runner = runner
	}
}

func WithLogger(logger *dkplog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithOutput sets where progress and verbose compiler output are printed.
func WithOutput(w io.Writer) Option {
	return func(p *Plugin) {
		p.out = w
	}
}

// New builds the plugin from an already parsed manifest.
func New(m *manifest.Manifest, opts ...Option) (*Plugin, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: manifest is nil", manifest.ErrInvalidManifest)
	}

	info, err := m.PluginInfo()
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		info:   info,
		out:    os.Stdout,
		logger: dkplog.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runner == nil {
		p.runner = executor.NewOSRunner()
	}

	p.exec = executor.New(p.runner, p.logger.Named("executor")).WithOutput(p.out)

	return p, nil
}

// NewDefault builds the plugin from the manifest embedded in the binary.
func NewDefault(opts ...Option) (*Plugin, error) {
	m, err := manifest.Default()
	if err != nil {
		return nil, err
	}
	return New(m, opts...)
}

// PluginInfo is the host-facing descriptor entry point.
func PluginInfo() (plugin.Info, error) {
	p, err := NewDefault()
	if err != nil {
		return plugin.Info{}, err
	}
	return p.Info(), nil
}

// Create is the host-facing constructor entry point.
func Create() (plugin.Plugin, error) {
	return NewDefault()
}

func (p *Plugin) Info() plugin.Info {
	return p.info.Clone()
}

func (p *Plugin) Builder() plugin.WasmBuilder {
	return p
}

// CanHandleProject is true when the directory holds go.mod or any file with
// a supported extension. Subdirectories are not scanned.
func (p *Plugin) CanHandleProject(projectPath string) bool {
	if executor.FileExists(executor.JoinPaths(projectPath, ModuleFile)) {
		return true
	}

	entries, err := os.ReadDir(projectPath)
	if err != nil {
		p.logger.Debug("Cannot read project directory", slog.String("path", projectPath), slog.String("error", err.Error()))
		return false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if p.hasSupportedExtension(entry.Name()) {
			return true
		}
	}

	return false
}

func (p *Plugin) hasSupportedExtension(fileName string) bool {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	if ext == "" {
		return false
	}
	return lo.Contains(p.info.Extensions, strings.ToLower(ext))
}

func (p *Plugin) LanguageName() string {
	return LanguageName
}

func (p *Plugin) EntryFileCandidates() []string {
	return append([]string(nil), p.info.EntryFiles...)
}

func (p *Plugin) SupportedExtensions() []string {
	return append([]string(nil), p.info.Extensions...)
}
