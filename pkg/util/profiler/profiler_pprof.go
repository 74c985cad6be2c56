//go:build !noprofiler
// +build !noprofiler

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

package profiler

import (
	"os"
	"runtime"
	"runtime/pprof"
	"sync"

	"go.uber.org/atomic"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

type cpuProfiler struct {
	mtx     sync.Mutex
	running *atomic.Bool
	out     *os.File
}

// NewCPUProfiler returns a profiler streaming CPU samples to its output
// file while running. Only one CPU profile may run per process.
func NewCPUProfiler() Profiler {
	return &cpuProfiler{running: atomic.NewBool(false)}
}

func (p *cpuProfiler) IsAvailable() bool { return true }
func (p *cpuProfiler) IsRunning() bool   { return p.running.Load() }

func (p *cpuProfiler) Start(outputPath string) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.running.Load() {
		return ErrProfilerRunning
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return general.NewIOError(err, "failed to create cpu profile %s", outputPath)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}

	p.out = f
	p.running.Store(true)
	general.Infof("cpu profiling into %s", outputPath)
	return nil
}

func (p *cpuProfiler) Stop() (bool, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if !p.running.Load() {
		return false, nil
	}

	pprof.StopCPUProfile()
	p.running.Store(false)
	err := p.out.Close()
	p.out = nil
	return true, err
}

type heapProfiler struct {
	mtx     sync.Mutex
	running *atomic.Bool
	out     *os.File
}

// NewHeapProfiler returns a profiler that writes a heap snapshot to its
// output file on Stop.
func NewHeapProfiler() Profiler {
	return &heapProfiler{running: atomic.NewBool(false)}
}

func (p *heapProfiler) IsAvailable() bool { return true }
func (p *heapProfiler) IsRunning() bool   { return p.running.Load() }

func (p *heapProfiler) Start(outputPath string) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.running.Load() {
		return ErrProfilerRunning
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return general.NewIOError(err, "failed to create heap profile %s", outputPath)
	}

	p.out = f
	p.running.Store(true)
	general.Infof("heap profiling into %s", outputPath)
	return nil
}

func (p *heapProfiler) Stop() (bool, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if !p.running.Load() {
		return false, nil
	}

	// up-to-date allocation statistics
	runtime.GC()
	writeErr := pprof.WriteHeapProfile(p.out)
	closeErr := p.out.Close()
	p.out = nil
	p.running.Store(false)

	if writeErr != nil {
		return true, writeErr
	}
	return true, closeErr
}
