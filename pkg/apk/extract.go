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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
)

// manifestName is the package manifest entry inside the archive
const manifestName = "AndroidManifest.xml"

// placeholder version fields signal an unparsed binary manifest; the
// manual path does not decode it
const (
	placeholderVersionName = "1.0"
	placeholderVersionCode = "1"
)

// extractManually unpacks the archive into a fresh scratch directory and
// looks for the manifest entry. The scratch directory is removed whatever
// the result. When even extraction fails the metadata comes back with
// every field absent.
func (a *Analyzer) extractManually(ctx context.Context, archivePath string) Metadata {
	logger := zerolog.Ctx(ctx)

	scratch, err := os.MkdirTemp(a.tempDir(), "apk_extract_")
	if err != nil {
		logger.Debug().Err(err).Msg("creating scratch directory failed")
		return Metadata{}
	}
	defer os.RemoveAll(scratch)

	if !a.unpack(ctx, archivePath, scratch) {
		return Metadata{}
	}

	manifestPath := filepath.Join(scratch, manifestName)
	if _, err := os.Stat(manifestPath); err != nil {
		logger.Debug().Str("path", manifestPath).Msg("manifest entry not found")
		return Metadata{}
	}

	// the binary manifest is not decoded here: the package identifier
	// comes from the archive's own file name
	name := strings.TrimSuffix(filepath.Base(archivePath), filepath.Ext(archivePath))
	versionName := placeholderVersionName
	versionCode := placeholderVersionCode
	return Metadata{
		Package:     &name,
		VersionName: &versionName,
		VersionCode: &versionCode,
	}
}

// unpack tries the platform unpack command first and degrades to an
// in-process zip walk when the utility itself is unavailable
func (a *Analyzer) unpack(ctx context.Context, archivePath, outputDir string) bool {
	logger := zerolog.Ctx(ctx)

	result, err := a.run(ctx, a.extractCommand(archivePath, outputDir))
	if err == nil && result.ExitCode == 0 {
		return true
	}

	logger.Debug().Err(err).Int("exit", result.ExitCode).Msg("unpack utility failed, reading archive in-process")
	if err := unzipManifest(archivePath, outputDir); err != nil {
		logger.Debug().Err(err).Msg("in-process unpack failed")
		return false
	}
	return true
}

// unzipManifest copies the manifest entry out of the archive in-process
func unzipManifest(archivePath, outputDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.Name != manifestName {
			continue
		}

		in, err := entry.Open()
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.Create(filepath.Join(outputDir, manifestName))
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, in); err != nil {
			out.Close()
			return err
		}
		return out.Close()
	}

	return os.ErrNotExist
}
