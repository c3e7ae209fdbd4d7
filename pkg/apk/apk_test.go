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

package apk_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/driveops/pkg/apk"
	"github.com/walteh/driveops/pkg/execute"
	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/platform"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// runnerFunc adapts a function to the execute.Runner interface
type runnerFunc func(ctx context.Context, cmd plan.Command) (execute.Result, error)

func (f runnerFunc) Run(ctx context.Context, cmd plan.Command) (execute.Result, error) {
	return f(ctx, cmd)
}

// writeTestArchive builds a zip package containing the given entries
func writeTestArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

const sampleBadging = `package: name='com.example.notes' versionCode='42' versionName='3.1.4'
sdkVersion:'24'
targetSdkVersion:'34'
application-label:'Example Notes'
launchable-activity: name='com.example.notes.MainActivity'  label='Example Notes' icon=''
uses-permission: name='android.permission.INTERNET'
uses-permission: name='android.permission.CAMERA'
uses-permission: name='android.permission.INTERNET'
`

// 🧪 TestAnalyzeParsesBadging tests the full badging parse
func TestAnalyzeParsesBadging(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "notes.apk")
	writeTestArchive(t, archive, map[string]string{"AndroidManifest.xml": "binary"})

	var calls []plan.Command
	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		calls = append(calls, cmd)
		return execute.Result{ExitCode: 0, Stdout: sampleBadging}, nil
	})

	meta := a.Analyze(testContext(t), archive)

	require.Len(t, calls, 1)
	assert.Equal(t, "aapt", calls[0].Name)
	assert.Equal(t, []string{"dump", "badging", archive}, calls[0].Args)

	require.NotNil(t, meta.Package)
	assert.Equal(t, "com.example.notes", *meta.Package)
	require.NotNil(t, meta.VersionName)
	assert.Equal(t, "3.1.4", *meta.VersionName)
	require.NotNil(t, meta.VersionCode)
	assert.Equal(t, "42", *meta.VersionCode)
	require.NotNil(t, meta.SDKMin)
	assert.Equal(t, "24", *meta.SDKMin)
	require.NotNil(t, meta.SDKTarget)
	assert.Equal(t, "34", *meta.SDKTarget)
	require.NotNil(t, meta.Label)
	assert.Equal(t, "Example Notes", *meta.Label)
	require.NotNil(t, meta.MainActivity)
	assert.Equal(t, "com.example.notes.MainActivity", *meta.MainActivity)

	// declaration order preserved, duplicates included
	assert.Equal(t, []string{
		"android.permission.INTERNET",
		"android.permission.CAMERA",
		"android.permission.INTERNET",
	}, meta.Permissions)
}

// 🧪 TestAnalyzePartialBadging tests that missing fields stay absent
func TestAnalyzePartialBadging(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "bare.apk")
	writeTestArchive(t, archive, map[string]string{"AndroidManifest.xml": "binary"})

	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		return execute.Result{ExitCode: 0, Stdout: "package: name='com.example.bare' versionCode='1' versionName='1.0'\n"}, nil
	})

	meta := a.Analyze(testContext(t), archive)

	require.NotNil(t, meta.Package)
	assert.Equal(t, "com.example.bare", *meta.Package)
	assert.Nil(t, meta.SDKMin)
	assert.Nil(t, meta.Label)
	assert.Nil(t, meta.MainActivity)
	assert.Empty(t, meta.Permissions)
}

// 🧪 TestAnalyzeSkipsNonArchive tests the content sniff short-circuit
func TestAnalyzeSkipsNonArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.apk")
	require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o644))

	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		t.Fatalf("no tool should run for a non-archive, got %s", cmd.Name)
		return execute.Result{}, nil
	})

	meta := a.Analyze(testContext(t), path)

	assert.Nil(t, meta.Package)
	assert.Empty(t, meta.Permissions)
}

// 🧪 TestAnalyzeManualExtraction tests the fallback when every tool fails.
// The badging tool exits non-zero and the unpack utility is missing, so the
// manifest comes out of the archive in-process.
func TestAnalyzeManualExtraction(t *testing.T) {
	tmpDir := t.TempDir()
	archive := filepath.Join(tmpDir, "my_app.apk")
	writeTestArchive(t, archive, map[string]string{
		"AndroidManifest.xml": "binary manifest",
		"classes.dex":         "bytecode",
	})

	scratchBase := t.TempDir()
	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.TempDir = scratchBase
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		switch cmd.Name {
		case "aapt":
			return execute.Result{ExitCode: 1, Stderr: "ERROR: dump failed"}, nil
		case "unzip":
			return execute.Result{ExitCode: -1}, errors.Errorf("starting unzip: executable not found")
		default:
			t.Fatalf("unexpected tool %s", cmd.Name)
			return execute.Result{}, nil
		}
	})

	meta := a.Analyze(testContext(t), archive)

	require.NotNil(t, meta.Package)
	assert.Equal(t, "my_app", *meta.Package, "package name falls back to the file name")
	require.NotNil(t, meta.VersionName)
	assert.Equal(t, "1.0", *meta.VersionName)
	require.NotNil(t, meta.VersionCode)
	assert.Equal(t, "1", *meta.VersionCode)
	assert.Nil(t, meta.SDKMin)

	// scratch directory is gone whatever the result
	leftovers, err := os.ReadDir(scratchBase)
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

// 🧪 TestAnalyzeManualExtractionWithoutManifest tests total degradation
func TestAnalyzeManualExtractionWithoutManifest(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "broken.apk")
	writeTestArchive(t, archive, map[string]string{"classes.dex": "bytecode"})

	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.TempDir = t.TempDir()
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		return execute.Result{ExitCode: 1}, nil
	})

	meta := a.Analyze(testContext(t), archive)

	assert.Nil(t, meta.Package)
	assert.Nil(t, meta.VersionName)
	assert.Nil(t, meta.VersionCode)
}

// 🧪 TestAnalyzeToolPathOverride tests configured tool locations
func TestAnalyzeToolPathOverride(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "notes.apk")
	writeTestArchive(t, archive, map[string]string{"AndroidManifest.xml": "binary"})

	var toolName string
	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.ToolPath = func(name string) string {
		if name == "aapt" {
			return "/opt/android/aapt"
		}
		return ""
	}
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		toolName = cmd.Name
		return execute.Result{ExitCode: 0, Stdout: sampleBadging}, nil
	})

	a.Analyze(testContext(t), archive)

	assert.Equal(t, "/opt/android/aapt", toolName)
}

// 🧪 TestAnalyzeIdempotent tests that repeated analysis gives equal results
func TestAnalyzeIdempotent(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "notes.apk")
	writeTestArchive(t, archive, map[string]string{"AndroidManifest.xml": "binary"})

	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		return execute.Result{ExitCode: 0, Stdout: sampleBadging}, nil
	})

	ctx := testContext(t)
	first := a.Analyze(ctx, archive)
	second := a.Analyze(ctx, archive)

	assert.Equal(t, first, second)
}

// 🧪 TestInstallCommandSelection tests per-family install tooling
func TestInstallCommandSelection(t *testing.T) {
	tests := []struct {
		name     string
		family   platform.Family
		wantTool string
	}{
		{name: "android uses the package manager", family: platform.FamilyAndroid, wantTool: "pm"},
		{name: "linux goes through adb", family: platform.FamilyLinux, wantTool: "adb"},
		{name: "windows goes through adb", family: platform.FamilyWindows, wantTool: "adb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var call plan.Command
			a := apk.New(platform.Profile{Family: tt.family})
			a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
				call = cmd
				return execute.Result{ExitCode: 0}, nil
			})

			outcome := a.Install(testContext(t), "/tmp/app.apk")

			assert.True(t, outcome.Success)
			assert.Equal(t, "Successfully installed app.apk", outcome.Message)
			assert.Equal(t, tt.wantTool, call.Name)
			assert.Equal(t, []string{"install", "-r", "/tmp/app.apk"}, call.Args)
		})
	}
}

// 🧪 TestInstallFailure tests the non-zero exit outcome
func TestInstallFailure(t *testing.T) {
	a := apk.New(platform.Profile{Family: platform.FamilyLinux})
	a.Runner = runnerFunc(func(ctx context.Context, cmd plan.Command) (execute.Result, error) {
		return execute.Result{ExitCode: 1, Stderr: "INSTALL_FAILED_INVALID_APK"}, nil
	})

	outcome := a.Install(testContext(t), "/tmp/app.apk")

	assert.False(t, outcome.Success)
	assert.Equal(t, "Failed to install APK: INSTALL_FAILED_INVALID_APK", outcome.Message)
	assert.Equal(t, "INSTALL_FAILED_INVALID_APK", outcome.Detail)
}
