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

package flags

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wasmrun/wasmgo/pkg/plugin"
)

const (
	DefaultProject = "."
	DefaultOutput  = "./dist"
)

var ManifestPath string

// CLI spellings of the build enums
var (
	optimizationValues = []string{
		plugin.OptimizationDebug.String(),
		plugin.OptimizationRelease.String(),
		plugin.OptimizationSize.String(),
	}
	// derived from the Go names, WebApp becomes web-app
	targetValues = map[string]plugin.TargetType{
		strcase.ToKebab("Wasm"):   plugin.TargetStandard,
		strcase.ToKebab("WebApp"): plugin.TargetWeb,
	}
	outputFormats = []string{"text", "json", "yaml"}
)

// Build holds the flags shared by run and compile
type Build struct {
	Project      string
	Output       string
	Optimization string
	Target       string
	Verbose      bool
}

func AddPersistentFlags(flags *pflag.FlagSet) {
	flags.StringVar(
		&ManifestPath,
		"manifest",
		"",
		"Path to the plugin manifest. Defaults to $WASMGO_MANIFEST or the manifest built into the binary.",
	)
}

func AddBuildFlags(flags *pflag.FlagSet, b *Build, withTarget bool) {
	flags.StringVarP(&b.Project, "project", "p", DefaultProject, "Project path containing go.mod or main.go")
	flags.StringVarP(&b.Output, "output", "o", DefaultOutput, "Output directory for compiled files")
	flags.StringVar(&b.Optimization, "optimization", plugin.OptimizationRelease.String(),
		"Optimization level for compilation: "+strings.Join(optimizationValues, ", "))
	flags.BoolVarP(&b.Verbose, "verbose", "v", false, "Enable verbose compilation output")

	if withTarget {
		flags.StringVar(&b.Target, "target", "wasm",
			"Target type for compilation: "+strings.Join(sortedKeys(targetValues), ", "))
	}
}

// BuildConfig validates the flag values and converts them to a build config.
func (b *Build) BuildConfig() (plugin.BuildConfig, error) {
	level, err := plugin.ParseOptimizationLevel(b.Optimization)
	if err != nil {
		return plugin.BuildConfig{}, fmt.Errorf("invalid --optimization value %q. Supported values are: %s",
			b.Optimization, strings.Join(optimizationValues, ", "))
	}

	target := plugin.TargetStandard
	if b.Target != "" {
		name, ok := lo.FindKeyBy(targetValues, func(key string, _ plugin.TargetType) bool {
			return unhyphenate(key) == unhyphenate(strings.ToLower(b.Target))
		})
		if !ok {
			return plugin.BuildConfig{}, fmt.Errorf("invalid --target value %q. Supported values are: %s",
				b.Target, strings.Join(sortedKeys(targetValues), ", "))
		}
		target = targetValues[name]
	}

	return plugin.BuildConfig{
		ProjectPath:       b.Project,
		OutputDirectory:   b.Output,
		Verbose:           b.Verbose,
		OptimizationLevel: level,
		TargetType:        target,
	}, nil
}

// TargetName is the CLI spelling of a target type.
func TargetName(t plugin.TargetType) string {
	name, _ := lo.FindKey(targetValues, t)
	return name
}

func ValidateOutputFormat(cmd *cobra.Command, _ []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	if !lo.Contains(outputFormats, outputFormat) {
		return fmt.Errorf("Please provide valid output: %s. Got '%s', try --help", strings.Join(outputFormats, ", "), outputFormat)
	}
	return nil
}

func AddOutputFormatFlag(flags *pflag.FlagSet) {
	flags.StringP("output", "o", "text", "Output format: "+strings.Join(outputFormats, ", "))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

// unhyphenate lets "webapp" match "web-app"
func unhyphenate(s string) string {
	return strings.ReplaceAll(s, "-", "")
}
