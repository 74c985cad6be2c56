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

package manager

import (
	"path/filepath"
	"strconv"

	"github.com/kubewharf/katalyst-telemetry/pkg/config/system"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/file"
)

// DefaultNetIFaceIgnorePrefixes identify virtual and loopback interfaces.
var DefaultNetIFaceIgnorePrefixes = []string{"v", "docker", "lo"}

// ProcParser reads resource usage out of a procfs mount. It holds no
// mutable state, so calls for different outputs may run concurrently.
type ProcParser struct {
	nsPerKernelTick     int64
	clockRealTimeOffset int64
	bytesPerPage        int64
	procBasePath        string

	netIFaceIgnorePrefixes []string
	fs                     file.FileSystem
}

type ProcParserOption func(p *ProcParser)

// WithFileSystem replaces the filesystem used for whole-file and symlink reads.
func WithFileSystem(fs file.FileSystem) ProcParserOption {
	return func(p *ProcParser) {
		p.fs = fs
	}
}

// WithNetIFaceIgnorePrefixes replaces DefaultNetIFaceIgnorePrefixes.
func WithNetIFaceIgnorePrefixes(prefixes []string) ProcParserOption {
	return func(p *ProcParser) {
		p.netIFaceIgnorePrefixes = append([]string{}, prefixes...)
	}
}

// NewProcParser captures everything it needs from cfg at construction.
func NewProcParser(cfg system.Provider, opts ...ProcParserOption) *ProcParser {
	p := &ProcParser{
		nsPerKernelTick:        system.NSPerKernelTick(cfg),
		clockRealTimeOffset:    cfg.ClockRealTimeOffset(),
		bytesPerPage:           cfg.PageSize(),
		procBasePath:           cfg.ProcPath(),
		netIFaceIgnorePrefixes: append([]string{}, DefaultNetIFaceIgnorePrefixes...),
		fs:                     file.DefaultFS{},
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *ProcParser) NSPerKernelTick() int64 {
	return p.nsPerKernelTick
}

func (p *ProcParser) ClockRealTimeOffset() int64 {
	return p.clockRealTimeOffset
}

func (p *ProcParser) ProcBasePath() string {
	return p.procBasePath
}

func (p *ProcParser) pidPath(pid int, elem ...string) string {
	return filepath.Join(append([]string{p.procBasePath, strconv.Itoa(pid)}, elem...)...)
}
