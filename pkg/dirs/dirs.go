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

// Package dirs maps a host profile to the canonical set of semantic
// directories (home, downloads, temp, ...), consulting environment
// variables and well-known platform paths.
package dirs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/driveops/pkg/platform"
)

// appDirName is the vendor directory used for derived cache paths
const appDirName = "driveops"

// 🗺️ Map is a read-only mapping from semantic key to an absolute path.
// A key is present only if the path was verified to exist, except "temp"
// and "cache" which are always present as computed.
type Map map[string]string

// Keys returns the semantic keys in sorted order
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// 🧭 Resolver resolves semantic directories for a profile. The zero value
// queries the real environment and filesystem; tests override the hooks.
type Resolver struct {
	// LookupEnv overrides os.LookupEnv
	LookupEnv func(key string) (string, bool)
	// Exists overrides the existence check
	Exists func(path string) bool
	// Home overrides os.UserHomeDir
	Home string
	// TempDir overrides os.TempDir
	TempDir string
}

// windowsEnvDirs maps Windows environment variables to semantic keys
var windowsEnvDirs = []struct {
	envVar string
	key    string
}{
	{"USERPROFILE", "user_profile"},
	{"APPDATA", "app_data"},
	{"LOCALAPPDATA", "local_app_data"},
	{"PROGRAMFILES", "program_files"},
	{"PROGRAMFILES(X86)", "program_files_x86"},
	{"WINDIR", "windows"},
	{"SYSTEMROOT", "system_root"},
}

// xdgEnvDirs maps XDG base-directory variables to semantic keys
var xdgEnvDirs = []struct {
	envVar string
	key    string
}{
	{"XDG_DESKTOP_DIR", "desktop"},
	{"XDG_DOCUMENTS_DIR", "documents"},
	{"XDG_DOWNLOAD_DIR", "downloads"},
	{"XDG_MUSIC_DIR", "music"},
	{"XDG_PICTURES_DIR", "pictures"},
	{"XDG_PUBLICSHARE_DIR", "public"},
	{"XDG_TEMPLATES_DIR", "templates"},
	{"XDG_VIDEOS_DIR", "videos"},
	{"XDG_CONFIG_HOME", "config"},
	{"XDG_DATA_HOME", "data"},
}

// userFolders are the conventional per-user subfolders checked on Windows
// and Linux hosts
var userFolders = []string{"Documents", "Pictures", "Music", "Videos", "Downloads"}

// Resolve builds the directory map for the given profile. It is a pure
// query over environment and filesystem state: nothing is created.
func (r *Resolver) Resolve(ctx context.Context, profile platform.Profile) Map {
	logger := zerolog.Ctx(ctx)

	home := r.home()
	m := Map{"home": home}

	switch profile.Family {
	case platform.FamilyWindows:
		r.resolveWindows(m, home)
	case platform.FamilyMacOS:
		r.resolveMacOS(m, home)
	case platform.FamilyAndroid:
		r.resolveAndroid(m)
	default:
		r.resolveUnix(m, home)
	}

	// temp and cache are computed, never existence-checked
	m["temp"] = r.tempDir()
	m["cache"] = r.cacheDir(profile, home)

	logger.Debug().Int("entries", len(m)).Str("family", profile.Family.String()).Msg("resolved directories")
	return m
}

func (r *Resolver) resolveWindows(m Map, home string) {
	for _, d := range windowsEnvDirs {
		if value, ok := r.lookupEnv(d.envVar); ok {
			m[d.key] = value
		}
	}

	profileDir, ok := m["user_profile"]
	if !ok {
		profileDir = home
	}
	for _, name := range userFolders {
		path := filepath.Join(profileDir, name)
		if r.exists(path) {
			m[strings.ToLower(name)] = path
		}
	}
}

func (r *Resolver) resolveMacOS(m Map, home string) {
	candidates := map[string]string{
		"documents":    filepath.Join(home, "Documents"),
		"desktop":      filepath.Join(home, "Desktop"),
		"downloads":    filepath.Join(home, "Downloads"),
		"pictures":     filepath.Join(home, "Pictures"),
		"music":        filepath.Join(home, "Music"),
		"movies":       filepath.Join(home, "Movies"),
		"applications": "/Applications",
		"library":      filepath.Join(home, "Library"),
	}
	for key, path := range candidates {
		if r.exists(path) {
			m[key] = path
		}
	}
}

func (r *Resolver) resolveAndroid(m Map) {
	candidates := map[string]string{
		"internal_storage": "/storage/emulated/0",
		"app_data":         "/data/data/com.walteh.driveops",
		"dcim":             "/storage/emulated/0/DCIM",
		"pictures":         "/storage/emulated/0/Pictures",
		"downloads":        "/storage/emulated/0/Download",
		"music":            "/storage/emulated/0/Music",
		"movies":           "/storage/emulated/0/Movies",
		"documents":        "/storage/emulated/0/Documents",
	}
	for key, path := range candidates {
		if r.exists(path) {
			m[key] = path
		}
	}
}

func (r *Resolver) resolveUnix(m Map, home string) {
	// XDG variables win when set
	for _, d := range xdgEnvDirs {
		if value, ok := r.lookupEnv(d.envVar); ok {
			m[d.key] = value
		}
	}

	// conventional user folders fill the gaps
	for _, name := range userFolders {
		key := strings.ToLower(name)
		if _, ok := m[key]; ok {
			continue
		}
		path := filepath.Join(home, name)
		if r.exists(path) {
			m[key] = path
		}
	}

	if r.exists("/usr/bin") {
		m["bin"] = "/usr/bin"
	}
	if r.exists("/usr/lib") {
		m["lib"] = "/usr/lib"
	}
}

// cacheDir derives the platform cache location for the tool itself
func (r *Resolver) cacheDir(profile platform.Profile, home string) string {
	switch profile.Family {
	case platform.FamilyWindows:
		base, ok := r.lookupEnv("LOCALAPPDATA")
		if !ok {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, appDirName, "Cache")
	case platform.FamilyMacOS:
		return filepath.Join(home, "Library", "Caches", appDirName)
	case platform.FamilyAndroid:
		return "/storage/emulated/0/Android/data/com.walteh.driveops/cache"
	default:
		base, ok := r.lookupEnv("XDG_CACHE_HOME")
		if !ok {
			base = filepath.Join(home, ".cache")
		}
		return filepath.Join(base, appDirName)
	}
}

func (r *Resolver) lookupEnv(key string) (string, bool) {
	if r.LookupEnv != nil {
		return r.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (r *Resolver) exists(path string) bool {
	if r.Exists != nil {
		return r.Exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

func (r *Resolver) home() string {
	if r.Home != "" {
		return r.Home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func (r *Resolver) tempDir() string {
	if r.TempDir != "" {
		return r.TempDir
	}
	return os.TempDir()
}
