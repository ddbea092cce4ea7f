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

package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"golang.org/x/term"
)

const defaultTerminalWidth = 80

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	titleColor   = color.New(color.FgCyan, color.Bold)
)

func (pc *PluginCommands) printHeader() {
	info := pc.plugin.Info()
	name := info.Name
	if info.Source != nil && info.Source.Name != "" {
		name = info.Source.Name
	}

	titleColor.Fprintf(pc.stdout, "🐹 %s v%s\n", name, info.Version)
	fmt.Fprintln(pc.stdout, indent(wrap(info.Description, 3), "   "))
	fmt.Fprintln(pc.stdout)
}

func (pc *PluginCommands) printSection(title string) {
	titleColor.Fprintln(pc.stdout, title)
	fmt.Fprintln(pc.stdout, strings.Repeat("═", len([]rune(title))))
}

func (pc *PluginCommands) success(format string, a ...any) {
	successColor.Fprintf(pc.stdout, format+"\n", a...)
}

func (pc *PluginCommands) warn(format string, a ...any) {
	warningColor.Fprintf(pc.stdout, format+"\n", a...)
}

func (pc *PluginCommands) failure(w io.Writer, format string, a ...any) {
	failureColor.Fprintf(w, format+"\n", a...)
}

// wrap fits text into the terminal, leaving room for a left margin
func wrap(text string, margin int) string {
	width := defaultTerminalWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	if width <= margin {
		return text
	}
	return wordwrap.WrapString(text, uint(width-margin))
}

func indent(text, prefix string) string {
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}
