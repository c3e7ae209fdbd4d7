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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/driveops/cmd/driveops/commands"
	"github.com/walteh/driveops/pkg/apk"
	"github.com/walteh/driveops/pkg/config"
	"github.com/walteh/driveops/pkg/execute"
	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/platform"
	"github.com/walteh/driveops/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	configFile string
	debug      bool
	async      bool
)

// newRootOpts detects the host once and wires every component from it
func newRootOpts(ctx context.Context) (*commands.Opts, error) {
	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// Detect the host profile once; everything downstream shares it
	profile := platform.Current(ctx)

	planner := plan.New(profile)
	planner.Prober = &plan.ExecProber{Timeout: cfg.ProbeTimeout()}
	planner.LargeFileThreshold = cfg.LargeFileThreshold()
	planner.ToolPath = cfg.ToolPath
	planner.ProtectedPatterns = cfg.ProtectedPatterns

	analyzer := apk.New(profile)
	analyzer.ToolPath = cfg.ToolPath

	return &commands.Opts{
		Config:     cfg,
		Profile:    profile,
		Planner:    planner,
		Executor:   execute.New(),
		Analyzer:   analyzer,
		UserLogger: status.NewUserLogger(ctx),
		Async:      async || cfg.Async,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".driveops", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "run independent operations in parallel")
}

// setupLogging configures zerolog and returns the base context
func setupLogging() context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}
