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

package system

import (
	"fmt"
	"time"
)

const (
	DefaultProcPath  = "/proc"
	DefaultSysfsPath = "/sys/fs"

	// DefaultKernelTicksPerSecond is USER_HZ, which the kernel exports as a
	// fixed 100 on every architecture Go supports.
	DefaultKernelTicksPerSecond int64 = 100
)

// Provider supplies the host constants the telemetry readers depend on.
type Provider interface {
	// KernelTicksPerSecond is the rate of the tick unit used in /proc files.
	KernelTicksPerSecond() int64
	// ClockRealTimeOffset is CLOCK_REALTIME minus CLOCK_MONOTONIC in ns;
	// add it to a boot-relative timestamp to obtain wall-clock time.
	ClockRealTimeOffset() int64
	// PageSize is the memory page size in bytes.
	PageSize() int64
	// ProcPath is the mount point of procfs.
	ProcPath() string
	// SysfsPath is the directory the cgroup hierarchy hangs from, i.e.
	// cgroups are found under <SysfsPath>/cgroup.
	SysfsPath() string
}

// Configuration is an immutable Provider.
type Configuration struct {
	kernelTicksPerSecond int64
	clockRealTimeOffset  int64
	pageSize             int64
	procPath             string
	sysfsPath            string
}

var _ Provider = &Configuration{}

// NewStaticConfiguration builds a Configuration from fixed values.
func NewStaticConfiguration(ticksPerSecond, clockRealTimeOffset, pageSize int64,
	procPath, sysfsPath string,
) (*Configuration, error) {
	if ticksPerSecond <= 0 {
		return nil, fmt.Errorf("kernel ticks per second must be positive, got %d", ticksPerSecond)
	}
	if ticksPerSecond > int64(time.Second) {
		return nil, fmt.Errorf("kernel ticks per second %d exceeds nanosecond resolution", ticksPerSecond)
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if procPath == "" || sysfsPath == "" {
		return nil, fmt.Errorf("proc path %q and sysfs path %q must not be empty", procPath, sysfsPath)
	}

	return &Configuration{
		kernelTicksPerSecond: ticksPerSecond,
		clockRealTimeOffset:  clockRealTimeOffset,
		pageSize:             pageSize,
		procPath:             procPath,
		sysfsPath:            sysfsPath,
	}, nil
}

// NewConfiguration detects page size and clock offset from the running host.
// A non-positive ticksPerSecond selects DefaultKernelTicksPerSecond.
func NewConfiguration(ticksPerSecond int64, procPath, sysfsPath string) (*Configuration, error) {
	if ticksPerSecond <= 0 {
		ticksPerSecond = DefaultKernelTicksPerSecond
	}

	offset, err := detectClockRealTimeOffset()
	if err != nil {
		return nil, fmt.Errorf("detect clock realtime offset failed: %w", err)
	}

	return NewStaticConfiguration(ticksPerSecond, offset, detectPageSize(), procPath, sysfsPath)
}

func (c *Configuration) KernelTicksPerSecond() int64 { return c.kernelTicksPerSecond }
func (c *Configuration) ClockRealTimeOffset() int64  { return c.clockRealTimeOffset }
func (c *Configuration) PageSize() int64             { return c.pageSize }
func (c *Configuration) ProcPath() string            { return c.procPath }
func (c *Configuration) SysfsPath() string           { return c.sysfsPath }

// NSPerKernelTick converts the configured tick rate into a nanosecond ratio.
func NSPerKernelTick(p Provider) int64 {
	return int64(time.Second) / p.KernelTicksPerSecond()
}
