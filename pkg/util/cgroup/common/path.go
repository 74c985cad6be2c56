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
	"path/filepath"

	v1 "k8s.io/api/core/v1"
)

// qosSubDir returns the directory a QoS class nests its pods in below
// kubepods; guaranteed pods sit directly under it.
func qosSubDir(qos v1.PodQOSClass) string {
	switch qos {
	case v1.PodQOSBurstable:
		return CgroupFsBurstableSubDir
	case v1.PodQOSBestEffort:
		return CgroupFsBestEffortSubDir
	default:
		return ""
	}
}

// IsValidQOSClass reports whether qos is one of the three kubernetes
// QoS classes.
func IsValidQOSClass(qos v1.PodQOSClass) bool {
	switch qos {
	case v1.PodQOSGuaranteed, v1.PodQOSBurstable, v1.PodQOSBestEffort:
		return true
	default:
		return false
	}
}

// GetPodCgroupDir returns the cpu,cpuacct directory of a pod, e.g.
// <root>/cgroup/cpu,cpuacct/kubepods/burstable/pod<uid>.
func GetPodCgroupDir(root string, qos v1.PodQOSClass, podUID string) string {
	return filepath.Join(root, CgroupFSDir, CgroupSubsysCPUAcct, CgroupFsRootDir,
		qosSubDir(qos), PodCgroupPathPrefix+podUID)
}

// CGroupProcFilePath returns the cgroup.procs file of a container:
//
//	Guaranteed: <root>/cgroup/cpu,cpuacct/kubepods/pod<uid>/<container>/cgroup.procs
//	Burstable:  <root>/cgroup/cpu,cpuacct/kubepods/burstable/pod<uid>/<container>/cgroup.procs
//	BestEffort: <root>/cgroup/cpu,cpuacct/kubepods/besteffort/pod<uid>/<container>/cgroup.procs
//
// Classes rejected by IsValidQOSClass take the Guaranteed shape.
func CGroupProcFilePath(root string, qos v1.PodQOSClass, podUID, containerID string) string {
	return filepath.Join(GetPodCgroupDir(root, qos, podUID), containerID, CgroupProcsFile)
}
