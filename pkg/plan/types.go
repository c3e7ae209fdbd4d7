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

// Package plan selects the best available mechanism for a requested file
// operation on the current host and produces an immutable execution plan.
package plan

import "strings"

// 🏷️ Kind is the logical operation being requested
type Kind string

const (
	KindCopy   Kind = "copy"
	KindMove   Kind = "move"
	KindDelete Kind = "delete"
	KindBackup Kind = "backup"
)

// Valid reports whether the kind is one of the four supported operations
func (k Kind) Valid() bool {
	switch k {
	case KindCopy, KindMove, KindDelete, KindBackup:
		return true
	}
	return false
}

// ⚙️ Mechanism identifies a specific way of performing an operation
type Mechanism string

const (
	// MechanismNative is the generic in-process filesystem routine
	MechanismNative Mechanism = "native"
	// MechanismFastCopy is the Windows high-throughput copy tool
	MechanismFastCopy Mechanism = "fastcopy"
	// MechanismRobocopy is the Windows mirroring tool used for backups
	MechanismRobocopy Mechanism = "robocopy"
	// MechanismDitto is the macOS resource-fork-preserving copy tool
	MechanismDitto Mechanism = "ditto"
	// MechanismDittoRemove is the two-step macOS move (ditto then rm)
	MechanismDittoRemove Mechanism = "ditto_remove"
	// MechanismRsync is the Unix sync utility
	MechanismRsync Mechanism = "rsync"
	// MechanismRsyncRemove is the cross-device Unix move (rsync then cleanup)
	MechanismRsyncRemove Mechanism = "rsync_remove"
	// MechanismRename is an atomic same-device rename
	MechanismRename Mechanism = "rename"
	// MechanismTrash is the macOS Finder trash command
	MechanismTrash Mechanism = "trash"
	// MechanismTrashCLI is the Linux trash utility
	MechanismTrashCLI Mechanism = "trash_cli"
	// MechanismRecycleBin is the Windows recoverable delete
	MechanismRecycleBin Mechanism = "recycle_bin"
	// MechanismRemove is an irreversible in-process delete
	MechanismRemove Mechanism = "remove"
)

// 📨 Request is the caller's input: what to do and on which paths.
// Dest is required for copy, move and backup, and must be empty for delete.
type Request struct {
	Kind   Kind
	Source string
	Dest   string
}

// 📜 Command is a structured process invocation: an executable name and an
// explicit argument vector. Paths are passed as discrete arguments, never
// interpolated into a shell string.
type Command struct {
	Name string
	Args []string

	// SuccessCodes are the exit statuses treated as success. nil means {0}.
	// The mirroring backup tool reports 0..3 for "copied, some skipped".
	SuccessCodes []int

	// BestEffort marks a step whose failure does not fail the plan
	// (the cross-device move's empty-directory cleanup).
	BestEffort bool
}

// Succeeded reports whether the given exit status counts as success
func (c Command) Succeeded(code int) bool {
	if len(c.SuccessCodes) == 0 {
		return code == 0
	}
	for _, ok := range c.SuccessCodes {
		if code == ok {
			return true
		}
	}
	return false
}

// String renders the command for logs and dry-run display
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// 🧾 Plan is the immutable output of the planner. Either Commands is empty
// and the executor performs the operation in-process, or Commands holds the
// ordered external steps; a plan never mixes the two.
type Plan struct {
	Kind      Kind
	Source    string
	Dest      string
	Mechanism Mechanism
	Commands  []Command

	// MonitorBattery asks the caller to throttle on battery-powered hosts
	MonitorBattery bool
	// CheckStorage asks the caller to verify free space before moving
	CheckStorage bool
	// CrossDevice marks a move whose endpoints are on different volumes
	CrossDevice bool
	// Secure marks an operation that touches protected system paths
	Secure bool
	// Warning carries a caller-facing caution, empty when none applies
	Warning string
	// Timestamp is the capture time of a backup plan (YYYYMMDD_HHMMSS)
	Timestamp string
}

// Native reports whether the plan uses in-process execution
func (p Plan) Native() bool {
	return len(p.Commands) == 0
}
