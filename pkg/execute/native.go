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

package execute

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/driveops/pkg/plan"
	"gitlab.com/tozd/go/errors"
)

// executeNative performs the in-process filesystem action for a plan that
// carries no external commands
func (e *Executor) executeNative(ctx context.Context, p plan.Plan) Outcome {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("kind", string(p.Kind)).Str("source", p.Source).Msg("executing native operation")

	var err error
	switch p.Kind {
	case plan.KindCopy, plan.KindBackup:
		err = copyPath(p.Source, p.Dest)
	case plan.KindMove:
		err = movePath(p.Source, p.Dest)
	case plan.KindDelete:
		err = deletePath(p.Source)
	default:
		err = errors.Errorf("unsupported native operation: %s", p.Kind)
	}

	if err != nil {
		return failure(err.Error())
	}
	return Outcome{Success: true, Message: successMessage(p)}
}

// copyPath copies a file or directory tree, preserving permissions
func copyPath(source, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return errors.Errorf("reading source: %w", err)
	}
	if info.IsDir() {
		return copyDir(source, dest)
	}
	return copyFile(source, dest, info.Mode())
}

func copyFile(source, dest string, mode os.FileMode) error {
	in, err := os.Open(source)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.Errorf("creating destination directory: %w", err)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Errorf("copying content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination: %w", err)
	}

	// carry the source timestamp so copies look like the original
	if info, err := os.Stat(source); err == nil {
		_ = os.Chtimes(dest, info.ModTime(), info.ModTime())
	}
	return nil
}

func copyDir(source, dest string) error {
	return filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(source, path)
		if err != nil {
			return errors.Errorf("resolving relative path: %w", err)
		}
		target := filepath.Join(dest, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}

		if d.Type()&os.ModeSymlink != 0 {
			link, err := os.Readlink(path)
			if err != nil {
				return errors.Errorf("reading symlink: %w", err)
			}
			return os.Symlink(link, target)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}

// movePath renames when possible and falls back to copy-then-remove when
// the rename crosses a device boundary
func movePath(source, dest string) error {
	if err := os.Rename(source, dest); err == nil {
		return nil
	}
	if err := copyPath(source, dest); err != nil {
		return err
	}
	return deletePath(source)
}

func deletePath(source string) error {
	info, err := os.Stat(source)
	if err != nil {
		return errors.Errorf("reading target: %w", err)
	}
	if info.IsDir() {
		return os.RemoveAll(source)
	}
	return os.Remove(source)
}
