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

// Package execute runs operation plans, invoking the native in-process
// routines or launching the planned external commands, and normalizes the
// result into an outcome the caller owns.
package execute

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog"
	"github.com/walteh/driveops/pkg/plan"
)

// ✅ Outcome is the normalized result of executing a plan. There is no
// partial-success state: a plan fully succeeds or fails as a unit.
type Outcome struct {
	Success bool
	// Message is a human-readable summary of what happened
	Message string
	// Detail carries the captured diagnostic text verbatim on failure
	Detail string
}

// 📋 Result is the raw observation of one external command
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// 🏃 Runner launches a single planned command and reports what happened.
// err is returned only when the process could not be started at all.
type Runner interface {
	Run(ctx context.Context, cmd plan.Command) (Result, error)
}

// 🔧 ExecRunner is the production Runner backed by os/exec. The argument
// vector is passed through untouched: no shell is involved.
type ExecRunner struct{}

// Run starts the command and waits for it, capturing both output streams
func (r *ExecRunner) Run(ctx context.Context, cmd plan.Command) (Result, error) {
	var stdout, stderr bytes.Buffer
	proc := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	err := proc.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	result.ExitCode = -1
	return result, err
}

// 🎯 Executor consumes plans without mutating them
type Executor struct {
	// Runner launches external commands; defaults to ExecRunner
	Runner Runner
}

// New creates an executor with the production runner
func New() *Executor {
	return &Executor{Runner: &ExecRunner{}}
}

// Execute runs the plan and returns its outcome. Errors raised by the
// selected mechanism are translated into a failed outcome, never panics.
func (e *Executor) Execute(ctx context.Context, p plan.Plan) Outcome {
	if p.Native() {
		return e.executeNative(ctx, p)
	}
	return e.executeCommands(ctx, p)
}

// executeCommands runs the plan's ordered steps, stopping at the first
// failing step without undoing prior ones. Best-effort steps may fail
// without failing the plan.
func (e *Executor) executeCommands(ctx context.Context, p plan.Plan) Outcome {
	logger := zerolog.Ctx(ctx)

	runner := e.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}

	for _, cmd := range p.Commands {
		result, err := runner.Run(ctx, cmd)
		if err != nil {
			if cmd.BestEffort {
				logger.Debug().Err(err).Str("command", cmd.Name).Msg("best-effort step did not start")
				continue
			}
			return failure(err.Error())
		}
		if !cmd.Succeeded(result.ExitCode) {
			if cmd.BestEffort {
				logger.Debug().Int("exit", result.ExitCode).Str("command", cmd.Name).Msg("best-effort step failed")
				continue
			}
			return failure(result.Stderr)
		}
	}

	return Outcome{Success: true, Message: successMessage(p)}
}

// successMessage mirrors the operation kind in caller-facing wording
func successMessage(p plan.Plan) string {
	switch p.Kind {
	case plan.KindCopy:
		return fmt.Sprintf("Copied %s to %s", p.Source, p.Dest)
	case plan.KindMove:
		return fmt.Sprintf("Moved %s to %s", p.Source, p.Dest)
	case plan.KindDelete:
		switch p.Mechanism {
		case plan.MechanismTrash, plan.MechanismTrashCLI:
			return fmt.Sprintf("Moved %s to Trash", p.Source)
		default:
			// the native routine removes irreversibly, recycle_bin plans
			// included: the message must match what actually happened
			return fmt.Sprintf("Deleted %s", p.Source)
		}
	case plan.KindBackup:
		return fmt.Sprintf("Backed up %s to %s", p.Source, p.Dest)
	}
	return "Done"
}

func failure(detail string) Outcome {
	return Outcome{
		Success: false,
		Message: fmt.Sprintf("Error: %s", detail),
		Detail:  detail,
	}
}
