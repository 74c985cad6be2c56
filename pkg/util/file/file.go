/*
Copyright 2022 The Katalyst Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package file

import (
	"io"
	"os"

	"github.com/alecthomas/units"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// maxReadSize bounds a single pseudo-file read.
const maxReadSize = int64(units.MiB)

// FileSystem is the low-level file access used by the telemetry readers.
// Both methods return errors of kind general.ErrIO.
type FileSystem interface {
	ReadFileToString(path string) (string, error)
	ReadSymlink(path string) (string, error)
}

// DefaultFS implements FileSystem on the host filesystem.
type DefaultFS struct{}

var _ FileSystem = DefaultFS{}

func (DefaultFS) ReadFileToString(path string) (string, error) {
	b, err := ReadFileNoStat(path)
	if err != nil {
		return "", general.NewIOError(err, "failed to read file %s", path)
	}
	return string(b), nil
}

func (DefaultFS) ReadSymlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", general.NewIOError(err, "failed to read symlink %s", path)
	}
	return target, nil
}

// ReadFileNoStat uses io.ReadAll to read contents of entire file.
// This is similar to os.ReadFile but without the call to os.Stat, because
// many files in /proc and /sys report incorrect file sizes (either 0 or 4096).
// Reads a max file size of 1MiB.
func ReadFileNoStat(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxReadSize))
}
