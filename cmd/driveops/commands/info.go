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
	"github.com/spf13/cobra"
	"github.com/walteh/driveops/pkg/dirs"
)

// NewDetectCmd creates the detect command
func NewDetectCmd(opts *Opts) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Show the detected host profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.UserLogger.LogProfile(opts.Profile)
			return nil
		},
	}
}

// NewDirsCmd creates the dirs command
func NewDirsCmd(opts *Opts) *cobra.Command {
	return &cobra.Command{
		Use:   "dirs",
		Short: "Show the semantic directories resolved for this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := &dirs.Resolver{}
			m := resolver.Resolve(cmd.Context(), opts.Profile)
			opts.UserLogger.LogDirectories(m)
			return nil
		},
	}
}
