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

// Package profiler wraps the process-wide CPU and heap profilers so that
// binaries can be built without them (build tag noprofiler).
package profiler

import (
	"errors"
)

var (
	ErrProfilerUnavailable = errors.New("profiler is not available in this build")
	ErrProfilerRunning     = errors.New("profiler is already running")
)

// Profiler records a profile of the running process into a file.
type Profiler interface {
	// IsAvailable reports whether the binary was built with profiling.
	IsAvailable() bool
	// Start begins profiling into outputPath.
	Start(outputPath string) error
	// Stop finishes the profile. It returns false when nothing was running.
	Stop() (bool, error)
	IsRunning() bool
}
