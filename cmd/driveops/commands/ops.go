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

package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/driveops/pkg/execute"
	"github.com/walteh/driveops/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates the copy command
func NewCopyCmd(opts *Opts) *cobra.Command {
	return newTransferCmd(opts, plan.KindCopy, "copy SOURCE... DEST",
		"Copy files or directories using the best mechanism for this host")
}

// NewMoveCmd creates the move command
func NewMoveCmd(opts *Opts) *cobra.Command {
	return newTransferCmd(opts, plan.KindMove, "move SOURCE... DEST",
		"Move files or directories, preferring an atomic rename")
}

// NewBackupCmd creates the backup command
func NewBackupCmd(opts *Opts) *cobra.Command {
	return newTransferCmd(opts, plan.KindBackup, "backup SOURCE... DEST",
		"Back up files or directories with the platform backup tool")
}

// NewDeleteCmd creates the delete command
func NewDeleteCmd(opts *Opts) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "delete SOURCE...",
		Short: "Delete files or directories, recoverably where the host allows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests := make([]plan.Request, len(args))
			for i, source := range args {
				requests[i] = plan.Request{Kind: plan.KindDelete, Source: source}
			}
			return runOperations(cmd.Context(), opts, requests, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan only, do not execute")
	return cmd
}

// newTransferCmd builds a two-endpoint operation command: the last
// argument is the destination, everything before it a source
func newTransferCmd(opts *Opts, kind plan.Kind, use, short string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[len(args)-1]
			sources := args[:len(args)-1]

			requests := make([]plan.Request, len(sources))
			for i, source := range sources {
				requests[i] = plan.Request{Kind: kind, Source: source, Dest: dest}
			}
			return runOperations(cmd.Context(), opts, requests, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "plan only, do not execute")
	return cmd
}

// runOperations plans every request, then executes the plans as a batch
func runOperations(ctx context.Context, opts *Opts, requests []plan.Request, dryRun bool) error {
	plans := make([]plan.Plan, len(requests))
	for i, req := range requests {
		p, err := opts.Planner.Plan(ctx, req)
		if err != nil {
			return errors.Errorf("planning %s of %s: %w", req.Kind, req.Source, err)
		}
		plans[i] = p
		opts.UserLogger.LogPlan(p)
	}

	if dryRun {
		return nil
	}

	runner := execute.NewBatchRunner(opts.Executor, opts.Async)
	outcomes, err := runner.Run(ctx, plans)
	if err != nil {
		return errors.Errorf("running operations: %w", err)
	}

	failed := 0
	for i, outcome := range outcomes {
		opts.UserLogger.LogOutcome(plans[i], outcome)
		if !outcome.Success {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d operations failed", failed, len(outcomes))
	}
	return nil
}
