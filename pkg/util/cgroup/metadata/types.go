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

package metadata

import (
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
)

// PIDMetadata identifies a process found in a container cgroup.
type PIDMetadata struct {
	PID int `json:"pid" yaml:"pid"`
	// StartTimeNS is the wall-clock start time in ns since the epoch, or
	// 0 when the stat file could not be parsed.
	StartTimeNS int64  `json:"startTimeNs" yaml:"startTimeNs"`
	CmdlineArgs string `json:"cmdlineArgs" yaml:"cmdlineArgs"`
}

// ContainerRef locates a container cgroup.
type ContainerRef struct {
	PodUID      types.UID      `json:"podUID" yaml:"podUID"`
	ContainerID string         `json:"containerID" yaml:"containerID"`
	QoSClass    v1.PodQOSClass `json:"qosClass" yaml:"qosClass"`
}
