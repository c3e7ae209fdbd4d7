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
	"errors"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
)

// 🔍 ProbeResult is the three-valued answer of a tool-availability probe
type ProbeResult int

const (
	// ProbeUnknown means the probe itself could not give an answer
	ProbeUnknown ProbeResult = iota
	// ProbeAvailable means the tool answered its version check
	ProbeAvailable
	// ProbeUnavailable means the tool binary is not on this host
	ProbeUnavailable
)

// String returns a readable probe result
func (r ProbeResult) String() string {
	switch r {
	case ProbeAvailable:
		return "available"
	case ProbeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Prober checks whether an external utility is usable on the host. Probes
// must never raise: any failure collapses to unavailable or unknown, and
// the planner treats everything except available as "use the fallback".
type Prober interface {
	Probe(ctx context.Context, name string, args ...string) ProbeResult
}

// defaultProbeTimeout bounds a version check so planning cannot hang
const defaultProbeTimeout = 2 * time.Second

// 🧰 ExecProber probes by running the tool's no-op version check
type ExecProber struct {
	// Timeout bounds each probe, defaulting to defaultProbeTimeout
	Timeout time.Duration
}

// Probe runs `name args...` with output discarded and classifies the result
func (p *ExecProber) Probe(ctx context.Context, name string, args ...string) ProbeResult {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = defaultProbeTimeout
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := exec.CommandContext(probeCtx, name, args...).Run()
	switch {
	case err == nil:
		return ProbeAvailable
	case errors.Is(err, exec.ErrNotFound):
		return ProbeUnavailable
	default:
		// non-zero exit or probe timeout: the tool cannot be trusted
		zerolog.Ctx(ctx).Debug().Err(err).Str("tool", name).Msg("tool probe inconclusive")
		return ProbeUnknown
	}
}
