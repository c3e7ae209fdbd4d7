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
	"os"
	"path/filepath"
	"sort"

	"github.com/walteh/driveops/pkg/plan"
	"github.com/walteh/driveops/pkg/platform"
)

// sevenZipPath is the conventional 7-Zip install location on Windows
const sevenZipPath = `C:\Program Files\7-Zip\7z.exe`

// macBuildToolsGlob locates aapt inside the Android SDK on macOS
const macBuildToolsGlob = "Library/Android/sdk/build-tools/*/aapt"

// analyzeCommand builds the platform badging invocation
func (a *Analyzer) analyzeCommand(archivePath string) plan.Command {
	return plan.Command{
		Name: a.aaptPath(),
		Args: []string{"dump", "badging", archivePath},
	}
}

// extractCommand builds the platform-conventional unpack invocation
func (a *Analyzer) extractCommand(archivePath, outputDir string) plan.Command {
	if a.Profile.Family == platform.FamilyWindows {
		return plan.Command{
			Name: a.tool("7z", sevenZipPath),
			Args: []string{"x", archivePath, "-o" + outputDir},
		}
	}
	return plan.Command{
		Name: a.tool("unzip", "unzip"),
		Args: []string{"-q", archivePath, "-d", outputDir},
	}
}

// installCommand builds the platform install invocation. Android installs
// through its own package manager; everything else goes through adb.
func (a *Analyzer) installCommand(archivePath string) plan.Command {
	if a.Profile.Family == platform.FamilyAndroid {
		return plan.Command{Name: a.tool("pm", "pm"), Args: []string{"install", "-r", archivePath}}
	}
	return plan.Command{Name: a.tool("adb", "adb"), Args: []string{"install", "-r", archivePath}}
}

// aaptPath picks the badging tool path. On macOS the SDK build-tools
// directory is searched first, newest version winning; everywhere else the
// tool is expected on PATH unless configured otherwise.
func (a *Analyzer) aaptPath() string {
	if a.ToolPath != nil {
		if path := a.ToolPath("aapt"); path != "" {
			return path
		}
	}

	if a.Profile.Family == platform.FamilyMacOS {
		home, err := os.UserHomeDir()
		if err == nil {
			matches, err := a.glob(filepath.Join(home, macBuildToolsGlob))
			if err == nil && len(matches) > 0 {
				sort.Strings(matches)
				return matches[len(matches)-1]
			}
		}
	}

	return "aapt"
}

func (a *Analyzer) tool(name, fallback string) string {
	if a.ToolPath != nil {
		if path := a.ToolPath(name); path != "" {
			return path
		}
	}
	return fallback
}

func (a *Analyzer) glob(pattern string) ([]string, error) {
	if a.Glob != nil {
		return a.Glob(pattern)
	}
	return filepath.Glob(pattern)
}
