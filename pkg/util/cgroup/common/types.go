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

const (
	// CgroupFSDir is the directory under the sysfs root holding every
	// cgroup v1 hierarchy.
	CgroupFSDir = "cgroup"
	// CgroupSubsysCPUAcct is the co-mounted cpu and cpuacct hierarchy.
	CgroupSubsysCPUAcct = "cpu,cpuacct"
	// CgroupProcsFile lists the thread group ids attached to a cgroup.
	CgroupProcsFile = "cgroup.procs"

	PodCgroupPathPrefix      = "pod"
	CgroupFsRootDir          = "kubepods"
	CgroupFsBestEffortSubDir = "besteffort"
	CgroupFsBurstableSubDir  = "burstable"
)
