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

package platform

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// androidPaths are filesystem locations that only exist on Android hosts.
// Any one of them existing is enough to classify the kernel as Android.
var androidPaths = []string{
	"/system/app/",
	"/data/data/",
	"/storage/emulated/0/Android/",
}

// propProbeTimeout bounds the getprop invocation so detection cannot hang
// on non-Android Linux hosts.
const propProbeTimeout = time.Second

// 🔍 Detector computes a Profile from the running environment. The zero
// value detects the real host; tests override the probe hooks.
type Detector struct {
	// GOOS overrides runtime.GOOS when non-empty
	GOOS string
	// Exists reports whether a path exists; defaults to an os.Stat check
	Exists func(path string) bool
	// ReadFile reads a file; defaults to os.ReadFile
	ReadFile func(path string) ([]byte, error)
	// RunProbe runs a short external probe and returns its combined output.
	// Defaults to exec.CommandContext. It must respect ctx deadlines.
	RunProbe func(ctx context.Context, name string, args ...string) (string, error)
}

// Detect computes the host profile. It never returns an error: every
// sub-detection that fails degrades to a coarser answer, down to the
// unknown family with an empty version.
func (d *Detector) Detect(ctx context.Context) Profile {
	logger := zerolog.Ctx(ctx)

	goos := d.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	switch goos {
	case "windows":
		return Profile{Family: FamilyWindows, Name: "Windows"}
	case "darwin":
		version := ""
		if out, err := d.runProbe(ctx, "sw_vers", "-productVersion"); err == nil {
			version = strings.TrimSpace(out)
		}
		name := "macOS"
		if version != "" {
			name = fmt.Sprintf("macOS %s", version)
		}
		return Profile{Family: FamilyMacOS, Name: name, Version: version}
	case "android":
		return d.androidProfile(ctx)
	case "linux":
		if d.isAndroid(ctx) {
			logger.Debug().Msg("linux kernel classified as android")
			return d.androidProfile(ctx)
		}
		return d.linuxProfile(ctx)
	default:
		logger.Debug().Str("goos", goos).Msg("unrecognized operating system")
		return Profile{Family: FamilyUnknown, Name: "Unknown OS"}
	}
}

// isAndroid distinguishes Android from traditional Linux using two
// independent signals: well-known Android paths, and the property-query
// utility answering within the probe timeout. Either one is sufficient.
func (d *Detector) isAndroid(ctx context.Context) bool {
	for _, path := range androidPaths {
		if d.exists(path) {
			return true
		}
	}

	_, err := d.runProbe(ctx, "getprop", "ro.build.version.release")
	return err == nil
}

// androidProfile builds the Android profile, with a best-effort version query
func (d *Detector) androidProfile(ctx context.Context) Profile {
	version := ""
	if out, err := d.runProbe(ctx, "getprop", "ro.build.version.release"); err == nil {
		version = strings.TrimSpace(out)
	}
	name := "Android"
	if version != "" {
		name = fmt.Sprintf("Android %s", version)
	}
	return Profile{Family: FamilyAndroid, Name: name, Version: version}
}

// linuxProfile prefers the structured os-release file, falling back to the
// kernel release string. Errors here never fail detection.
func (d *Detector) linuxProfile(ctx context.Context) Profile {
	logger := zerolog.Ctx(ctx)

	if data, err := d.readFile("/etc/os-release"); err == nil {
		info := parseOSRelease(data)

		distro := info["ID"]
		if distro == "" {
			distro = "linux"
		}
		version := info["VERSION_ID"]
		name := info["PRETTY_NAME"]
		if name == "" {
			name = strings.TrimSpace(fmt.Sprintf("Linux %s %s", distro, version))
		}

		return Profile{Family: FamilyLinux, Name: name, Version: version, Distro: distro}
	}

	logger.Debug().Msg("os-release unavailable, falling back to kernel release")

	release := d.kernelRelease()
	name := "Linux"
	if release != "" {
		name = fmt.Sprintf("Linux %s", release)
	}
	return Profile{Family: FamilyLinux, Name: name, Version: release, Distro: "linux"}
}

// kernelRelease reads the kernel release string from procfs
func (d *Detector) kernelRelease() string {
	data, err := d.readFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// parseOSRelease parses KEY=value lines, stripping surrounding quotes
func parseOSRelease(data []byte) map[string]string {
	info := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		info[key] = strings.Trim(value, `"`)
	}
	return info
}

func (d *Detector) exists(path string) bool {
	if d.Exists != nil {
		return d.Exists(path)
	}
	_, err := os.Stat(path)
	return err == nil
}

func (d *Detector) readFile(path string) ([]byte, error) {
	if d.ReadFile != nil {
		return d.ReadFile(path)
	}
	return os.ReadFile(path)
}

func (d *Detector) runProbe(ctx context.Context, name string, args ...string) (string, error) {
	if d.RunProbe != nil {
		return d.RunProbe(ctx, name, args...)
	}

	probeCtx, cancel := context.WithTimeout(ctx, propProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(probeCtx, name, args...).CombinedOutput()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

var (
	currentOnce    sync.Once
	currentProfile Profile
)

// Current returns the profile of the running host, computed once per
// process. Kernel identity cannot change mid-process, so the cached value
// is shared read-only by every caller.
func Current(ctx context.Context) Profile {
	currentOnce.Do(func() {
		d := &Detector{}
		currentProfile = d.Detect(ctx)
	})
	return currentProfile
}
