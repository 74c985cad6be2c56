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

package collector

import (
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/metadata"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/procfs/manager"
)

// SystemSnapshot holds host-wide totals; CPU times are kernel ticks.
type SystemSnapshot struct {
	Stats manager.SystemStats `json:"stats" yaml:"stats"`
}

// ProcessSnapshot is one fully parsed process. It is never partially
// filled: a failure of any parser discards the whole snapshot.
type ProcessSnapshot struct {
	Metadata metadata.PIDMetadata `json:"metadata" yaml:"metadata"`
	Stats    manager.ProcessStats `json:"stats" yaml:"stats"`
	Network  manager.NetworkStats `json:"network" yaml:"network"`
	// SchedWaitNS is the time spent waiting on a runqueue, 0 when the
	// kernel has no schedstats.
	SchedWaitNS uint64 `json:"schedWaitNs" yaml:"schedWaitNs"`
}

// ContainerSnapshot holds the processes of a container that could be
// collected; processes that exited mid-scrape are absent.
type ContainerSnapshot struct {
	Container metadata.ContainerRef `json:"container" yaml:"container"`
	Processes []*ProcessSnapshot    `json:"processes" yaml:"processes"`
}

// Snapshot is the result of one collection pass.
type Snapshot struct {
	System     *SystemSnapshot      `json:"system,omitempty" yaml:"system,omitempty"`
	Processes  []*ProcessSnapshot   `json:"processes,omitempty" yaml:"processes,omitempty"`
	Containers []*ContainerSnapshot `json:"containers,omitempty" yaml:"containers,omitempty"`
}
