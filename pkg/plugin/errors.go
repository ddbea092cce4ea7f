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

package plugin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind classifies every failure a builder can report
type ErrorKind int

const (
	KindCompilationFailed ErrorKind = iota + 1
	KindBuildToolNotFound
	KindInvalidProjectStructure
	KindMissingEntryFile
	KindOutputDirectoryCreationFailed
	KindIO
)

// Sentinels matched with errors.Is against any *Error of the same kind.
var (
	ErrCompilationFailed             = errors.New("compilation failed")
	ErrBuildToolNotFound             = errors.New("build tool not found")
	ErrInvalidProjectStructure       = errors.New("invalid project structure")
	ErrMissingEntryFile              = errors.New("missing entry file")
	ErrOutputDirectoryCreationFailed = errors.New("output directory creation failed")
	ErrIO                            = errors.New("io error")
)

// Causes attached to a compilation failure, so callers can tell them apart.
var (
	ErrNonZeroExit     = errors.New("compiler exited with non-zero status")
	ErrArtifactMissing = errors.New("compiler succeeded but produced no artifact")
)

var kindSentinels = map[ErrorKind]error{
	KindCompilationFailed:             ErrCompilationFailed,
	KindBuildToolNotFound:             ErrBuildToolNotFound,
	KindInvalidProjectStructure:       ErrInvalidProjectStructure,
	KindMissingEntryFile:              ErrMissingEntryFile,
	KindOutputDirectoryCreationFailed: ErrOutputDirectoryCreationFailed,
	KindIO:                            ErrIO,
}

// Error is the single error type returned by builders.
type Error struct {
	Kind       ErrorKind
	Reason     string
	Tool       string
	Path       string
	Candidates []string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindCompilationFailed:
		return "Compilation failed: " + e.Reason
	case KindBuildToolNotFound:
		return "Build tool not found: " + e.Tool
	case KindInvalidProjectStructure:
		return "Invalid project structure: " + e.Reason
	case KindMissingEntryFile:
		quoted := make([]string, 0, len(e.Candidates))
		for _, c := range e.Candidates {
			quoted = append(quoted, strconv.Quote(c))
		}
		return "Missing entry file. Expected one of: [" + strings.Join(quoted, ", ") + "]"
	case KindOutputDirectoryCreationFailed:
		return "Output directory creation failed: " + e.Path
	case KindIO:
		return fmt.Sprintf("IO error: %v", e.Err)
	default:
		return fmt.Sprintf("plugin error (kind %d)", int(e.Kind))
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func NewCompilationFailed(reason string, cause error) *Error {
	return &Error{Kind: KindCompilationFailed, Reason: reason, Err: cause}
}

func NewBuildToolNotFound(tool string) *Error {
	return &Error{Kind: KindBuildToolNotFound, Tool: tool}
}

func NewInvalidProjectStructure(reason string) *Error {
	return &Error{Kind: KindInvalidProjectStructure, Reason: reason}
}

func NewMissingEntryFile(candidates []string) *Error {
	return &Error{Kind: KindMissingEntryFile, Candidates: append([]string(nil), candidates...)}
}

func NewOutputDirectoryCreationFailed(path string, cause error) *Error {
	return &Error{Kind: KindOutputDirectoryCreationFailed, Path: path, Err: cause}
}

func NewIO(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}

// KindOf returns the kind of a plugin error anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
