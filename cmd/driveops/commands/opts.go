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

// Package commands holds the driveops CLI subcommands
package commands

import (
	"github.com/walteh/driveops/pkg/apk"
	"github.com/walteh/driveops/pkg/config"
	"github.com/walteh/driveops/pkg/execute"
	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/platform"
	"github.com/walteh/driveops/pkg/status"
)

// 🔧 Opts carries the shared dependencies every subcommand needs. The
// profile is detected once at startup and passed down, never recomputed.
type Opts struct {
	Config     *config.Config
	Profile    platform.Profile
	Planner    *plan.Planner
	Executor   *execute.Executor
	Analyzer   *apk.Analyzer
	UserLogger *status.UserLogger
	Async      bool
}
