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

package status_test

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/status"
)

func disableColor(t *testing.T) {
	t.Helper()
	previous := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = previous })
}

// 🧪 TestFormatPlanTransfer tests the transfer line rendering
func TestFormatPlanTransfer(t *testing.T) {
	disableColor(t)

	p := plan.Plan{
		Kind:      plan.KindCopy,
		Source:    "/data/big",
		Dest:      "/mnt/big",
		Mechanism: plan.MechanismRsync,
		Commands:  []plan.Command{{Name: "rsync"}},
	}

	line := status.FormatPlan(p)

	assert.Contains(t, line, "copy")
	assert.Contains(t, line, "rsync")
	assert.Contains(t, line, "/data/big -> /mnt/big")
	assert.NotContains(t, line, "[native]")
}

// 🧪 TestFormatPlanNative tests the native mark and absent destination
func TestFormatPlanNative(t *testing.T) {
	disableColor(t)

	p := plan.Plan{
		Kind:      plan.KindDelete,
		Source:    "/tmp/junk",
		Mechanism: plan.MechanismNative,
	}

	line := status.FormatPlan(p)

	assert.Contains(t, line, "[native]")
	assert.NotContains(t, line, "->")
}

// 🧪 TestFormatPlanMarks tests the warning marks
func TestFormatPlanMarks(t *testing.T) {
	disableColor(t)

	p := plan.Plan{
		Kind:        plan.KindMove,
		Source:      "/a",
		Dest:        "/b",
		Mechanism:   plan.MechanismRsyncRemove,
		Commands:    []plan.Command{{Name: "rsync"}},
		CrossDevice: true,
		Secure:      true,
	}

	line := status.FormatPlan(p)

	assert.Contains(t, line, "[cross-device]")
	assert.Contains(t, line, "[elevation]")
	assert.NotContains(t, line, "[battery]")
}

// 🧪 TestFormatDirectory tests the aligned key column
func TestFormatDirectory(t *testing.T) {
	disableColor(t)

	line := status.FormatDirectory("downloads", "/home/dev/Downloads")

	assert.Contains(t, line, "downloads")
	assert.Contains(t, line, "/home/dev/Downloads")
}
