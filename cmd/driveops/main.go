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
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/driveops/cmd/driveops/commands"
	"github.com/walteh/driveops/pkg/status"
)

func main() {
	ctx := setupLogging()
	userLogger := status.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "driveops",
		Short: "Platform-adaptive file operations and package inspection",
		Long: `driveops picks the best available mechanism for copy, move, delete and
backup operations on the current operating system, runs it, and reports a
normalized outcome. It can also inspect installable application packages.`,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Build shared options lazily so flags are parsed first
	opts := &commands.Opts{}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// flags are parsed by now, so the log level honors --debug
		ctx := setupLogging()
		cmd.SetContext(ctx)

		built, err := newRootOpts(ctx)
		if err != nil {
			return err
		}
		*opts = *built
		return nil
	}

	// Add commands
	rootCmd.AddCommand(
		commands.NewCopyCmd(opts),
		commands.NewMoveCmd(opts),
		commands.NewDeleteCmd(opts),
		commands.NewBackupCmd(opts),
		commands.NewDetectCmd(opts),
		commands.NewDirsCmd(opts),
		commands.NewInspectCmd(opts),
		commands.NewInstallCmd(opts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
