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

package execute_test

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/walteh/driveops/pkg/plan"
)

// 🧪 fixedProber always answers the same result
type fixedProber struct {
	result plan.ProbeResult
}

func (f fixedProber) Probe(ctx context.Context, name string, args ...string) plan.ProbeResult {
	return f.result
}

func staticProber(result plan.ProbeResult) plan.Prober {
	return fixedProber{result: result}
}

// 🧪 sizedFileInfo fakes a regular file of a given size
type sizedFileInfo struct {
	size int64
}

func (s sizedFileInfo) Name() string       { return "fake" }
func (s sizedFileInfo) Size() int64        { return s.size }
func (s sizedFileInfo) Mode() fs.FileMode  { return 0o644 }
func (s sizedFileInfo) ModTime() time.Time { return time.Time{} }
func (s sizedFileInfo) IsDir() bool        { return false }
func (s sizedFileInfo) Sys() any           { return nil }

func statSize(size int64) func(path string) (os.FileInfo, error) {
	return func(path string) (os.FileInfo, error) {
		return sizedFileInfo{size: size}, nil
	}
}
