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

package status

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/walteh/driveops/pkg/plan"
)

// 🎨 Display configuration
const (
	keyWidth       = 18 // Width for directory keys
	mechanismWidth = 14 // Width for mechanism names
)

// 🎯 FormatPlan renders a plan as a single line for display
func FormatPlan(p plan.Plan) string {
	mechanism := color.CyanString("%-*s", mechanismWidth, p.Mechanism)
	kind := color.HiBlackString("%s", p.Kind)

	line := fmt.Sprintf("%s %s %s", kind, mechanism, p.Source)
	if p.Dest != "" {
		line += color.HiBlackString(" -> ") + p.Dest
	}

	var marks string
	if p.Native() {
		marks += color.GreenString(" [native]")
	}
	if p.CrossDevice {
		marks += color.YellowString(" [cross-device]")
	}
	if p.Secure {
		marks += color.RedString(" [elevation]")
	}
	if p.MonitorBattery {
		marks += color.YellowString(" [battery]")
	}
	return line + marks
}

// 📁 FormatDirectory renders one directory map entry
func FormatDirectory(key, path string) string {
	return fmt.Sprintf("%-*s %s", keyWidth, color.CyanString(key), path)
}
