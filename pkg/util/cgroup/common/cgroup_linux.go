//go:build linux
// +build linux

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

package common

import (
	"github.com/opencontainers/runc/libcontainer/cgroups"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// hostCgroupMountPoint is where runc looks for the unified hierarchy.
const hostCgroupMountPoint = "/sys/fs/cgroup"

// CheckCgroup2UnifiedMode return whether it is in cgroupv2 env.
// runc panics when the mount point is absent, so that case reports v1.
func CheckCgroup2UnifiedMode() bool {
	if !general.IsPathExists(hostCgroupMountPoint) {
		return false
	}
	return cgroups.IsCgroup2UnifiedMode()
}
