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

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/driveops/pkg/config"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// 🧪 TestLoadYAML tests loading a YAML config
func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
tools:
  rsync: /usr/local/bin/rsync
  aapt: /opt/android/aapt
large_file_threshold_mb: 250
probe_timeout_seconds: 5
protected_patterns:
  - "/etc/**"
async: true
`)

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/rsync", cfg.ToolPath("rsync"))
	assert.Equal(t, "/opt/android/aapt", cfg.ToolPath("aapt"))
	assert.Equal(t, "", cfg.ToolPath("trash"))
	assert.Equal(t, int64(250*1024*1024), cfg.LargeFileThreshold())
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout())
	assert.Equal(t, []string{"/etc/**"}, cfg.ProtectedPatterns)
	assert.True(t, cfg.Async)
	assert.Equal(t, path, cfg.Location())
}

// 🧪 TestLoadJSON tests loading a JSON config
func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "tools": {"fastcopy": "D:\\Tools\\FastCopy.exe"},
  "large_file_threshold_mb": 50
}`)

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)

	assert.Equal(t, `D:\Tools\FastCopy.exe`, cfg.ToolPath("fastcopy"))
	assert.Equal(t, int64(50*1024*1024), cfg.LargeFileThreshold())
	assert.False(t, cfg.Async)
}

// 🧪 TestLoadHCL tests loading an HCL config
func TestLoadHCL(t *testing.T) {
	path := writeConfig(t, "config.hcl", `
tools = {
  rsync = "/usr/bin/rsync"
}
probe_timeout_seconds = 3
`)

	cfg, err := config.Load(testContext(t), path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/rsync", cfg.ToolPath("rsync"))
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout())
}

// 🧪 TestLoadDriveopsFileTriesBothFormats tests the dual-format extension
func TestLoadDriveopsFileTriesBothFormats(t *testing.T) {
	t.Run("yaml content", func(t *testing.T) {
		path := writeConfig(t, ".driveops", "async: true\n")

		cfg, err := config.Load(testContext(t), path)
		require.NoError(t, err)
		assert.True(t, cfg.Async)
	})

	t.Run("hcl content", func(t *testing.T) {
		path := writeConfig(t, ".driveops", `async = true`)

		cfg, err := config.Load(testContext(t), path)
		require.NoError(t, err)
		assert.True(t, cfg.Async)
	})

	t.Run("garbage content", func(t *testing.T) {
		path := writeConfig(t, ".driveops", "{{{ not a config")

		_, err := config.Load(testContext(t), path)
		assert.Error(t, err)
	})
}

// 🧪 TestLoadMissingFile tests that absence means defaults
func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(testContext(t), filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.ToolPath("rsync"))
	assert.Zero(t, cfg.LargeFileThreshold())
	assert.Zero(t, cfg.ProbeTimeout())
	assert.Empty(t, cfg.Location())
}

// 🧪 TestLoadRejectsUnknownFields tests strict decoding
func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "config.yaml", "not_a_real_option: 12\n")

	_, err := config.Load(testContext(t), path)
	assert.Error(t, err)
}

// 🧪 TestLoadRejectsUnsupportedExtension tests extension dispatch
func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "async = true\n")

	_, err := config.Load(testContext(t), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

// 🧪 TestLoadValidation tests nonsense value rejection
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative threshold", content: "large_file_threshold_mb: -1\n"},
		{name: "negative timeout", content: "probe_timeout_seconds: -2\n"},
		{name: "empty tool path", content: "tools:\n  rsync: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", tt.content)

			_, err := config.Load(testContext(t), path)
			assert.Error(t, err)
		})
	}
}

// 🧪 TestNilConfigAccessors tests the nil-receiver accessors
func TestNilConfigAccessors(t *testing.T) {
	var cfg *config.Config

	assert.Equal(t, "", cfg.ToolPath("rsync"))
	assert.Zero(t, cfg.LargeFileThreshold())
	assert.Zero(t, cfg.ProbeTimeout())
}
