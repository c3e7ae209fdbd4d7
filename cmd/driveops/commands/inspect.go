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
	"github.com/walteh/driveops/pkg/apk"
	"gitlab.com/tozd/go/errors"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd(opts *Opts) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PACKAGE",
		Short: "Extract metadata from an installable application package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta := opts.Analyzer.Analyze(cmd.Context(), args[0])
			opts.UserLogger.LogMetadata(metadataFields(meta), meta.Permissions)
			return nil
		},
	}
}

// NewInstallCmd creates the install command
func NewInstallCmd(opts *Opts) *cobra.Command {
	return &cobra.Command{
		Use:   "install PACKAGE",
		Short: "Install an application package with the platform install tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := opts.Analyzer.Install(cmd.Context(), args[0])
			opts.UserLogger.LogValidation(outcome.Success, outcome.Message, nil)
			if !outcome.Success {
				return errors.Errorf("installing package: %s", outcome.Detail)
			}
			return nil
		},
	}
}

// metadataFields flattens the determined fields in display order
func metadataFields(meta apk.Metadata) [][2]string {
	var fields [][2]string
	add := func(label string, value *string) {
		if value != nil {
			fields = append(fields, [2]string{label, *value})
		}
	}
	add("package", meta.Package)
	add("label", meta.Label)
	add("version", meta.VersionName)
	add("version code", meta.VersionCode)
	add("min sdk", meta.SDKMin)
	add("target sdk", meta.SDKTarget)
	add("main activity", meta.MainActivity)
	return fields
}
