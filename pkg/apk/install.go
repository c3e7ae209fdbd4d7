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

package apk

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/walteh/driveops/pkg/execute"
)

// Install installs the package using the platform install tool and reports
// the outcome. Failures come back in the outcome, never as a panic.
func (a *Analyzer) Install(ctx context.Context, archivePath string) execute.Outcome {
	result, err := a.run(ctx, a.installCommand(archivePath))
	if err != nil {
		return execute.Outcome{
			Success: false,
			Message: fmt.Sprintf("Error installing APK: %s", err.Error()),
			Detail:  err.Error(),
		}
	}
	if result.ExitCode != 0 {
		return execute.Outcome{
			Success: false,
			Message: fmt.Sprintf("Failed to install APK: %s", result.Stderr),
			Detail:  result.Stderr,
		}
	}
	return execute.Outcome{
		Success: true,
		Message: fmt.Sprintf("Successfully installed %s", filepath.Base(archivePath)),
	}
}
