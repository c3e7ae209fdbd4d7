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

// Package config loads the optional driveops configuration file, which
// overrides tool paths and planner thresholds.
package config

import (
	"time"

	"gitlab.com/tozd/go/errors"
)

// 📚 Config is the complete driveops configuration. Every field is
// optional: the zero value keeps the platform-conventional behavior.
type Config struct {
	// Tools maps a tool name (rsync, trash, fastcopy, robocopy, ditto,
	// aapt, unzip, 7z, adb, pm) to an explicit path
	Tools map[string]string `json:"tools,omitempty" yaml:"tools,omitempty"`

	// LargeFileThresholdMB overrides the 100 MB Windows transfer threshold
	LargeFileThresholdMB int64 `json:"large_file_threshold_mb,omitempty" yaml:"large_file_threshold_mb,omitempty"`

	// ProbeTimeoutSeconds bounds each tool-availability probe
	ProbeTimeoutSeconds int `json:"probe_timeout_seconds,omitempty" yaml:"probe_timeout_seconds,omitempty"`

	// ProtectedPatterns are doublestar patterns marking paths whose
	// deletion requires elevation, in addition to the system roots
	ProtectedPatterns []string `json:"protected_patterns,omitempty" yaml:"protected_patterns,omitempty"`

	// Async runs independent CLI operations in parallel
	Async bool `json:"async,omitempty" yaml:"async,omitempty"`

	location string
}

// Location returns the path the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// ToolPath returns the configured path for a tool, empty when unset
func (cfg *Config) ToolPath(name string) string {
	if cfg == nil {
		return ""
	}
	return cfg.Tools[name]
}

// LargeFileThreshold returns the configured threshold in bytes, zero when unset
func (cfg *Config) LargeFileThreshold() int64 {
	if cfg == nil || cfg.LargeFileThresholdMB <= 0 {
		return 0
	}
	return cfg.LargeFileThresholdMB * 1024 * 1024
}

// ProbeTimeout returns the configured probe timeout, zero when unset
func (cfg *Config) ProbeTimeout() time.Duration {
	if cfg == nil || cfg.ProbeTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.ProbeTimeoutSeconds) * time.Second
}

// 🔍 Validate checks the configuration for nonsense values
func (cfg *Config) Validate() error {
	if cfg.LargeFileThresholdMB < 0 {
		return errors.Errorf("large_file_threshold_mb must not be negative")
	}
	if cfg.ProbeTimeoutSeconds < 0 {
		return errors.Errorf("probe_timeout_seconds must not be negative")
	}
	for name, path := range cfg.Tools {
		if path == "" {
			return errors.Errorf("tools.%s must not be empty", name)
		}
	}
	return nil
}
