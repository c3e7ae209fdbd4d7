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

// Package platform identifies the host operating system and exposes an
// immutable profile of it for the planner, resolver and extractor packages.
package platform

import "fmt"

// 🖥️ Family is the operating system family of the host
type Family string

const (
	FamilyWindows Family = "windows"
	FamilyMacOS   Family = "macos"
	FamilyLinux   Family = "linux"
	FamilyAndroid Family = "android"
	FamilyUnknown Family = "unknown"
)

// String returns the family identifier
func (f Family) String() string {
	return string(f)
}

// 🪪 Profile describes the detected host. It is a plain value: compute it
// once at process start and pass it to every component that needs it.
type Profile struct {
	Family  Family // Operating system family
	Name    string // Human readable name (e.g. "macOS 14.2")
	Version string // Version string, empty when unknown
	Distro  string // Linux distribution ID from os-release, empty elsewhere
}

// IsWindows reports whether the host is Windows
func (p Profile) IsWindows() bool { return p.Family == FamilyWindows }

// IsMacOS reports whether the host is macOS
func (p Profile) IsMacOS() bool { return p.Family == FamilyMacOS }

// IsLinux reports whether the host is traditional (non-Android) Linux
func (p Profile) IsLinux() bool { return p.Family == FamilyLinux }

// IsAndroid reports whether the host is Android
func (p Profile) IsAndroid() bool { return p.Family == FamilyAndroid }

// IsUnix reports whether the host is a Unix-like system that is neither
// macOS nor Android. The planner uses this for the generic rsync/trash paths.
func (p Profile) IsUnix() bool {
	return p.Family == FamilyLinux || p.Family == FamilyUnknown
}

// String returns a short description of the profile
func (p Profile) String() string {
	if p.Version == "" {
		return string(p.Family)
	}
	return fmt.Sprintf("%s %s", p.Family, p.Version)
}
