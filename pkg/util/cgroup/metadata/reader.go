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
	"os"
	"path/filepath"
	"strconv"

	v1 "k8s.io/api/core/v1"

	"github.com/kubewharf/katalyst-telemetry/pkg/config/system"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/common"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/procfs/manager"
)

// CGroupMetadataReader maps container cgroups to the processes inside
// them. Like ProcParser it is immutable after construction.
type CGroupMetadataReader struct {
	cgroupRoot string
	parser     *manager.ProcParser
}

// NewCGroupMetadataReader resolves cgroups under cfg.SysfsPath() and
// processes under cfg.ProcPath().
func NewCGroupMetadataReader(cfg system.Provider, opts ...manager.ProcParserOption) *CGroupMetadataReader {
	return &CGroupMetadataReader{
		cgroupRoot: cfg.SysfsPath(),
		parser:     manager.NewProcParser(cfg, opts...),
	}
}

// ReadPIDList returns the processes attached to a container cgroup in
// the order the kernel lists them.
func (r *CGroupMetadataReader) ReadPIDList(qos v1.PodQOSClass, podUID, containerID string) ([]int, error) {
	if !common.IsValidQOSClass(qos) {
		return nil, general.NewInvalidArgumentError("unknown qos class %q", qos)
	}

	procsFile := common.CGroupProcFilePath(r.cgroupRoot, qos, podUID, containerID)
	pids, err := common.ReadPIDsFile(procsFile)
	if err != nil {
		return nil, err
	}

	general.InfofV(4, "read %d pids of pod %s container %s from %s", len(pids), podUID, containerID, procsFile)
	return pids, nil
}

// ReadContainerPIDList is ReadPIDList for a ContainerRef.
func (r *CGroupMetadataReader) ReadContainerPIDList(ref ContainerRef) ([]int, error) {
	return r.ReadPIDList(ref.QoSClass, string(ref.PodUID), ref.ContainerID)
}

// ReadPIDMetadata returns the wall-clock start time and command line of
// pid. It only fails when the process directory is gone; unreadable stat
// or cmdline files degrade to a zero start time and an empty command line.
func (r *CGroupMetadataReader) ReadPIDMetadata(pid int) (*PIDMetadata, error) {
	pidDir := filepath.Join(r.parser.ProcBasePath(), strconv.Itoa(pid))
	if !general.IsPathExists(pidDir) {
		return nil, general.NewIOError(os.ErrNotExist, "process directory %s", pidDir)
	}

	var startTimeNS int64
	if ticks := r.parser.GetPIDStartTimeTicks(pid); ticks > 0 {
		startTimeNS = ticks*r.parser.NSPerKernelTick() + r.parser.ClockRealTimeOffset()
	}

	return &PIDMetadata{
		PID:         pid,
		StartTimeNS: startTimeNS,
		CmdlineArgs: r.parser.GetPIDCmdline(pid),
	}, nil
}

// Parser exposes the process parser sharing this reader's configuration.
func (r *CGroupMetadataReader) Parser() *manager.ProcParser {
	return r.parser
}
