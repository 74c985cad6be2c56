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

package options

import (
	"github.com/spf13/pflag"

	"github.com/kubewharf/katalyst-telemetry/pkg/config/system"
)

// SystemOptions locate the pseudo filesystems and override host constants.
type SystemOptions struct {
	ProcPath             string
	SysfsPath            string
	KernelTicksPerSecond int64
}

func NewSystemOptions() *SystemOptions {
	return &SystemOptions{
		ProcPath:             system.DefaultProcPath,
		SysfsPath:            system.DefaultSysfsPath,
		KernelTicksPerSecond: system.DefaultKernelTicksPerSecond,
	}
}

// AddFlags adds flags  to the specified FlagSet.
func (o *SystemOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.ProcPath, "proc-path", o.ProcPath, "the mount point of procfs")
	fs.StringVar(&o.SysfsPath, "sysfs-path", o.SysfsPath,
		"the directory holding the cgroup hierarchies, i.e. cgroups are read from <sysfs-path>/cgroup")
	fs.Int64Var(&o.KernelTicksPerSecond, "kernel-ticks-per-second", o.KernelTicksPerSecond,
		"the USER_HZ the kernel reports times in")
}

func (o *SystemOptions) ApplyTo() (*system.Configuration, error) {
	return system.NewConfiguration(o.KernelTicksPerSecond, o.ProcPath, o.SysfsPath)
}
