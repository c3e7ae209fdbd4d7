// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package apk inspects installable application packages. It runs the
// platform badging tool and parses its textual output, degrading to a
// manual archive extraction when the tool fails.
package apk

import (
	"context"
	"os"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"github.com/walteh/driveops/pkg/execute"
	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/platform"
)

// 📦 Metadata is the structured result of inspecting a package. A nil
// field means "not determined", never "empty".
type Metadata struct {
	Package      *string
	VersionName  *string
	VersionCode  *string
	SDKMin       *string
	SDKTarget    *string
	Label        *string
	MainActivity *string

	// Permissions keeps every declaration in encounter order; duplicates
	// are preserved as declared
	Permissions []string
}

// badging output patterns, matched independently so a single missing field
// never hides the others
var (
	rePackage      = regexp.MustCompile(`package: name='([^']+)'`)
	reVersionName  = regexp.MustCompile(`versionName='([^']+)'`)
	reVersionCode  = regexp.MustCompile(`versionCode='(\d+)'`)
	reSDKMin       = regexp.MustCompile(`sdkVersion:'(\d+)'`)
	reSDKTarget    = regexp.MustCompile(`targetSdkVersion:'(\d+)'`)
	reLabel        = regexp.MustCompile(`application-label:'([^']+)'`)
	reMainActivity = regexp.MustCompile(`launchable-activity: name='([^']+)'`)
	rePermission   = regexp.MustCompile(`uses-permission: name='([^']+)'`)
)

// archiveTypes are the zip-family content types a package may sniff as
var archiveTypes = []string{
	"application/zip",
	"application/jar",
	"application/vnd.android.package-archive",
}

// 🔬 Analyzer extracts package metadata using the platform's tools. The
// zero value plus a profile uses the production runner and real temp dir.
type Analyzer struct {
	// Profile selects which tool paths to invoke
	Profile platform.Profile

	// Runner launches external commands; defaults to execute.ExecRunner
	Runner execute.Runner
	// TempDir is the scratch base for manual extraction; defaults to os.TempDir
	TempDir string
	// ToolPath resolves a tool name to a configured path; empty keeps the
	// platform-conventional choice
	ToolPath func(name string) string
	// Glob overrides filepath.Glob for build-tools discovery on macOS
	Glob func(pattern string) ([]string, error)
}

// New creates an analyzer for the given profile
func New(profile platform.Profile) *Analyzer {
	return &Analyzer{Profile: profile}
}

// Analyze inspects the package at archivePath. It never fails hard: when
// both the badging tool and the extraction fallback give nothing, the
// returned metadata simply has every field absent.
func (a *Analyzer) Analyze(ctx context.Context, archivePath string) Metadata {
	logger := zerolog.Ctx(ctx)

	if !a.looksLikeArchive(archivePath) {
		logger.Debug().Str("path", archivePath).Msg("not a package archive, skipping tools")
		return Metadata{}
	}

	result, err := a.run(ctx, a.analyzeCommand(archivePath))
	if err != nil || result.ExitCode != 0 {
		logger.Debug().Err(err).Int("exit", result.ExitCode).Msg("badging tool failed, extracting manually")
		return a.extractManually(ctx, archivePath)
	}

	return parseBadging(result.Stdout)
}

// parseBadging extracts fields from the badging tool's output. Fields whose
// pattern does not match remain absent.
func parseBadging(output string) Metadata {
	var meta Metadata

	meta.Package = firstGroup(rePackage, output)
	meta.VersionName = firstGroup(reVersionName, output)
	meta.VersionCode = firstGroup(reVersionCode, output)
	meta.SDKMin = firstGroup(reSDKMin, output)
	meta.SDKTarget = firstGroup(reSDKTarget, output)
	meta.Label = firstGroup(reLabel, output)
	meta.MainActivity = firstGroup(reMainActivity, output)

	for _, match := range rePermission.FindAllStringSubmatch(output, -1) {
		meta.Permissions = append(meta.Permissions, match[1])
	}

	return meta
}

func firstGroup(re *regexp.Regexp, output string) *string {
	match := re.FindStringSubmatch(output)
	if match == nil {
		return nil
	}
	value := match[1]
	return &value
}

// looksLikeArchive sniffs the file content before any tool is spent on it
func (a *Analyzer) looksLikeArchive(path string) bool {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false
	}
	for _, want := range archiveTypes {
		if mtype.Is(want) {
			return true
		}
	}
	return false
}

func (a *Analyzer) run(ctx context.Context, cmd plan.Command) (execute.Result, error) {
	runner := a.Runner
	if runner == nil {
		runner = &execute.ExecRunner{}
	}
	return runner.Run(ctx, cmd)
}

func (a *Analyzer) tempDir() string {
	if a.TempDir != "" {
		return a.TempDir
	}
	return os.TempDir()
}
