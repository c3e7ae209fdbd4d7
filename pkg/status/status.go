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

// Package status renders profiles, plans and outcomes for the person
// running the CLI. The core packages never print; all user-facing output
// funnels through here.
package status

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/driveops/pkg/dirs"
	"github.com/walteh/driveops/pkg/execute"
	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/platform"
)

// 📢 UserLogger provides user-friendly feedback about operations
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 NewUserLogger creates a new user logger
func NewUserLogger(ctx context.Context) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
	}
}

// 📝 LogPlan announces the selected mechanism before execution
func (u *UserLogger) LogPlan(p plan.Plan) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "🧭"})
	printer.Println(FormatPlan(p))
	if p.Warning != "" {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(p.Warning)
	}
	u.log.Info().Str("mechanism", string(p.Mechanism)).Msg("planned")
}

// 📝 LogOutcome reports the result of an executed plan
func (u *UserLogger) LogOutcome(p plan.Plan, outcome execute.Outcome) {
	if outcome.Success {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(outcome.Message)
		u.log.Info().Str("mechanism", string(p.Mechanism)).Msg(outcome.Message)
		return
	}

	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(outcome.Message)
	if outcome.Detail != "" && outcome.Detail != outcome.Message {
		pterm.Error.Println(outcome.Detail)
	}
	u.log.Error().Str("mechanism", string(p.Mechanism)).Str("detail", outcome.Detail).Msg(outcome.Message)
}

// 🖥️ LogProfile prints the detected host profile
func (u *UserLogger) LogProfile(profile platform.Profile) {
	printer := pterm.Info.WithPrefix(pterm.Prefix{Text: "🖥️"})
	printer.Println(profile.Name)
	u.log.Info().Str("family", profile.Family.String()).Str("version", profile.Version).Msg("detected host")
}

// 🗺️ LogDirectories prints the resolved directory map
func (u *UserLogger) LogDirectories(m dirs.Map) {
	for _, key := range m.Keys() {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "📁"}).Println(FormatDirectory(key, m[key]))
	}
	u.log.Info().Int("entries", len(m)).Msg("resolved directories")
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
		pterm.Error.Println(err)
		u.log.Error().Err(err).Msg(description)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(description)
		u.log.Warn().Msg(description)
	}
}

// 📦 LogMetadata prints extracted package metadata, absent fields skipped
func (u *UserLogger) LogMetadata(fields [][2]string, permissions []string) {
	for _, field := range fields {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Println(fmt.Sprintf("%s: %s", field[0], field[1]))
	}
	for _, permission := range permissions {
		pterm.Debug.WithPrefix(pterm.Prefix{Text: "🔑"}).Println(permission)
	}
	u.log.Info().Int("fields", len(fields)).Int("permissions", len(permissions)).Msg("package inspected")
}
