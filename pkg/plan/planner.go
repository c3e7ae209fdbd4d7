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

package plan

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/driveops/pkg/platform"
	"gitlab.com/tozd/go/errors"
)

// DefaultLargeFileThreshold is the size above which Windows transfers
// prefer the high-throughput external tool.
const DefaultLargeFileThreshold = 100 * 1024 * 1024

// backupTimestampLayout is the capture-time suffix format for backups
const backupTimestampLayout = "20060102_150405"

// 🧠 Planner selects a mechanism per request based on the host profile,
// file size and filesystem-boundary relationships. The zero value plus a
// profile queries the real filesystem; tests override the hooks.
type Planner struct {
	// Profile is the host profile the selection policy branches on
	Profile platform.Profile

	// Prober checks external tool availability; defaults to ExecProber
	Prober Prober
	// Stat overrides os.Stat for size and directory checks
	Stat func(path string) (os.FileInfo, error)
	// DeviceID reports the storage volume of an existing path; ok is false
	// when the volume cannot be determined on this host
	DeviceID func(path string) (id uint64, ok bool)
	// LookupEnv overrides os.LookupEnv for Windows system-root discovery
	LookupEnv func(key string) (string, bool)
	// SystemAttr reports whether the path carries the filesystem's system
	// attribute; on non-Windows hosts the default always reports false
	SystemAttr func(path string) bool
	// Now overrides time.Now for backup timestamps
	Now func() time.Time

	// LargeFileThreshold overrides DefaultLargeFileThreshold when positive
	LargeFileThreshold int64
	// ToolPath resolves a tool name to a configured path; empty keeps the name
	ToolPath func(name string) string
	// ProtectedPatterns are extra doublestar patterns that mark a delete as
	// requiring elevation, alongside the built-in system roots
	ProtectedPatterns []string
}

// New creates a planner for the given profile
func New(profile platform.Profile) *Planner {
	return &Planner{Profile: profile}
}

// Plan produces an immutable plan for the request. It fails only when the
// request kind is unsupported; every probe or stat failure inside selection
// degrades to the generic native mechanism instead of erroring.
func (p *Planner) Plan(ctx context.Context, req Request) (Plan, error) {
	logger := zerolog.Ctx(ctx)

	if !req.Kind.Valid() {
		return Plan{}, errors.Errorf("unsupported operation: %s", req.Kind)
	}

	var out Plan
	switch req.Kind {
	case KindCopy:
		out = p.planCopy(ctx, req)
	case KindMove:
		out = p.planMove(ctx, req)
	case KindDelete:
		out = p.planDelete(ctx, req)
	case KindBackup:
		out = p.planBackup(ctx, req)
	}

	logger.Debug().
		Str("kind", string(out.Kind)).
		Str("mechanism", string(out.Mechanism)).
		Bool("native", out.Native()).
		Msg("planned operation")
	return out, nil
}

func (p *Planner) planCopy(ctx context.Context, req Request) Plan {
	out := Plan{Kind: KindCopy, Source: req.Source, Dest: req.Dest}

	switch {
	case p.Profile.IsWindows():
		if p.sourceSize(req.Source) >= p.threshold() {
			out.Mechanism = MechanismFastCopy
			out.Commands = []Command{p.fastcopyCommand("diff", req.Source, req.Dest)}
		} else {
			out.Mechanism = MechanismNative
		}

	case p.Profile.IsMacOS():
		out.Mechanism = MechanismDitto
		out.Commands = []Command{{Name: p.tool("ditto"), Args: []string{req.Source, req.Dest}}}

	case p.Profile.IsAndroid():
		out.Mechanism = MechanismNative
		out.MonitorBattery = true

	default:
		if p.probe(ctx, "rsync", "--version") == ProbeAvailable {
			out.Mechanism = MechanismRsync
			out.Commands = []Command{{
				Name: p.tool("rsync"),
				Args: []string{"-a", "--info=progress2", req.Source, req.Dest},
			}}
		} else {
			out.Mechanism = MechanismNative
		}
	}

	return out
}

func (p *Planner) planMove(ctx context.Context, req Request) Plan {
	out := Plan{Kind: KindMove, Source: req.Source, Dest: req.Dest}

	switch {
	case p.Profile.IsWindows():
		if p.sourceSize(req.Source) >= p.threshold() {
			out.Mechanism = MechanismFastCopy
			out.Commands = []Command{p.fastcopyCommand("move", req.Source, req.Dest)}
		} else {
			out.Mechanism = MechanismNative
		}

	case p.Profile.IsMacOS():
		// two ordered steps: resource-fork-preserving copy, then removal.
		// The executor aborts after step one's failure.
		out.Mechanism = MechanismDittoRemove
		out.Commands = []Command{
			{Name: p.tool("ditto"), Args: []string{req.Source, req.Dest}},
			{Name: "rm", Args: []string{"-rf", req.Source}},
		}

	case p.Profile.IsAndroid():
		out.Mechanism = MechanismNative
		out.MonitorBattery = true
		out.CheckStorage = true

	default:
		srcDev, srcOK := p.deviceID(req.Source)
		dstDev, dstOK := p.deviceID(filepath.Dir(req.Dest))

		if srcOK && dstOK && srcDev == dstDev {
			out.Mechanism = MechanismRename
			break
		}

		out.CrossDevice = true
		if p.probe(ctx, "rsync", "--version") == ProbeAvailable {
			out.Mechanism = MechanismRsyncRemove
			out.Commands = []Command{
				{
					Name: p.tool("rsync"),
					Args: []string{"-a", "--remove-source-files", "--info=progress2", req.Source, req.Dest},
				},
				{
					// cleanup runs only when the transfer step succeeded,
					// and its own failure does not fail the move
					Name:       "find",
					Args:       []string{filepath.Dir(req.Source), "-type", "d", "-empty", "-delete"},
					BestEffort: true,
				},
			}
		} else {
			out.Mechanism = MechanismNative
		}
	}

	return out
}

func (p *Planner) planDelete(ctx context.Context, req Request) Plan {
	out := Plan{Kind: KindDelete, Source: req.Source}

	switch {
	case p.Profile.IsWindows():
		out.Mechanism = MechanismRecycleBin
		if p.isProtectedPath(ctx, req.Source) {
			out.Secure = true
			out.Warning = "System file deletion requires elevation"
		}

	case p.Profile.IsMacOS():
		script := `tell application "Finder" to delete POSIX file "` + appleScriptString(req.Source) + `"`
		out.Mechanism = MechanismTrash
		out.Commands = []Command{{Name: "osascript", Args: []string{"-e", script}}}

	case p.Profile.IsAndroid():
		// no recycle concept on Android
		out.Mechanism = MechanismRemove

	default:
		if p.probe(ctx, "trash", "--version") == ProbeAvailable {
			out.Mechanism = MechanismTrashCLI
			out.Commands = []Command{{Name: p.tool("trash"), Args: []string{req.Source}}}
		} else {
			out.Mechanism = MechanismRemove
		}
	}

	return out
}

func (p *Planner) planBackup(ctx context.Context, req Request) Plan {
	out := Plan{
		Kind:      KindBackup,
		Source:    req.Source,
		Dest:      req.Dest,
		Timestamp: p.now().Format(backupTimestampLayout),
	}

	switch {
	case p.Profile.IsWindows():
		if p.sourceIsDir(req.Source) {
			out.Mechanism = MechanismRobocopy
			out.Commands = []Command{{
				Name:         p.tool("robocopy"),
				Args:         []string{req.Source, req.Dest, "/MIR", "/W:1", "/R:1", "/Z", "/FFT", "/MT:4"},
				SuccessCodes: []int{0, 1, 2, 3},
			}}
		} else {
			out.Mechanism = MechanismNative
		}

	case p.Profile.IsMacOS():
		out.Mechanism = MechanismDitto
		out.Commands = []Command{{Name: p.tool("ditto"), Args: []string{"-X", req.Source, req.Dest}}}

	case p.Profile.IsAndroid():
		// suffix the destination so repeated captures never collide
		out.Mechanism = MechanismNative
		out.MonitorBattery = true
		out.Dest = req.Dest + "_" + out.Timestamp

	default:
		if p.probe(ctx, "rsync", "--version") == ProbeAvailable {
			out.Mechanism = MechanismRsync
			out.Commands = []Command{{
				Name: p.tool("rsync"),
				Args: []string{"-a", "--info=progress2", "--backup", req.Source, req.Dest},
			}}
		} else {
			out.Mechanism = MechanismNative
		}
	}

	return out
}

// appleScriptString escapes a path for splicing into an AppleScript string
// literal: backslashes and double quotes are the only special characters
func appleScriptString(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	return strings.ReplaceAll(path, `"`, `\"`)
}

// fastcopyCommand builds the high-throughput Windows transfer invocation
func (p *Planner) fastcopyCommand(mode, source, dest string) Command {
	return Command{
		Name: p.tool("fastcopy"),
		Args: []string{"/cmd=" + mode, "/auto_close", "/force_close", "/srcfile=" + source, "/to=" + dest},
	}
}

// isProtectedPath reports whether the path carries the system attribute,
// sits under a known system root, or matches a configured protected pattern.
// The attribute query is authoritative when it answers; the path heuristics
// catch system files the attribute check cannot see.
func (p *Planner) isProtectedPath(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)

	if p.systemAttr(path) {
		return true
	}

	normalized := strings.ToLower(filepath.ToSlash(path))

	patterns := make([]string, 0, len(p.ProtectedPatterns)+2)
	for _, envVar := range []string{"WINDIR", "SYSTEMROOT"} {
		root, ok := p.lookupEnv(envVar)
		if !ok || root == "" {
			continue
		}
		root = strings.ToLower(strings.TrimSuffix(filepath.ToSlash(root), "/"))
		patterns = append(patterns, root+"/**")
	}
	patterns = append(patterns, p.ProtectedPatterns...)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(strings.ToLower(pattern), normalized)
		if err != nil {
			logger.Debug().Err(err).Str("pattern", pattern).Msg("invalid protected pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// sourceSize returns the size of the source, degrading to zero on error so
// selection falls back to the native mechanism
func (p *Planner) sourceSize(path string) int64 {
	info, err := p.stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func (p *Planner) sourceIsDir(path string) bool {
	info, err := p.stat(path)
	return err == nil && info.IsDir()
}

func (p *Planner) threshold() int64 {
	if p.LargeFileThreshold > 0 {
		return p.LargeFileThreshold
	}
	return DefaultLargeFileThreshold
}

func (p *Planner) probe(ctx context.Context, name string, args ...string) ProbeResult {
	prober := p.Prober
	if prober == nil {
		prober = &ExecProber{}
	}
	return prober.Probe(ctx, p.tool(name), args...)
}

func (p *Planner) tool(name string) string {
	if p.ToolPath != nil {
		if path := p.ToolPath(name); path != "" {
			return path
		}
	}
	return name
}

func (p *Planner) stat(path string) (os.FileInfo, error) {
	if p.Stat != nil {
		return p.Stat(path)
	}
	return os.Stat(path)
}

func (p *Planner) deviceID(path string) (uint64, bool) {
	if p.DeviceID != nil {
		return p.DeviceID(path)
	}
	return fileDeviceID(path)
}

func (p *Planner) systemAttr(path string) bool {
	if p.SystemAttr != nil {
		return p.SystemAttr(path)
	}
	return fileHasSystemAttr(path)
}

func (p *Planner) lookupEnv(key string) (string, bool) {
	if p.LookupEnv != nil {
		return p.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
