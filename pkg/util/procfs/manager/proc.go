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
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// ListPIDs returns every numeric entry under the proc root in ascending order.
func (p *ProcParser) ListPIDs() ([]int, error) {
	fs, err := procfs.NewFS(p.procBasePath)
	if err != nil {
		return nil, general.NewIOError(err, "failed to open procfs at %s", p.procBasePath)
	}

	procs, err := fs.AllProcs()
	if err != nil {
		return nil, general.NewIOError(err, "failed to list processes under %s", p.procBasePath)
	}

	pids := make([]int, 0, len(procs))
	for _, proc := range procs {
		pids = append(pids, proc.PID)
	}
	sort.Ints(pids)
	return pids, nil
}

// GetPIDComm returns the comm of the given pid.
func (p *ProcParser) GetPIDComm(pid int) (string, error) {
	fs, err := procfs.NewFS(p.procBasePath)
	if err != nil {
		return "", general.NewIOError(err, "failed to open procfs at %s", p.procBasePath)
	}

	proc, err := fs.Proc(pid)
	if err != nil {
		return "", general.NewIOError(err, "get pid %d proc failed", pid)
	}

	comm, err := proc.Comm()
	if err != nil {
		return "", general.NewIOError(err, "get pid %d comm failed", pid)
	}
	return comm, nil
}

// GetTaskSchedWait https://docs.kernel.org/scheduler/sched-stats.html#proc-pid-schedstat
// schedwait unit: nanosecond
func (p *ProcParser) GetTaskSchedWait(pids []int) (map[int]uint64, error) {
	taskSchedWait := make(map[int]uint64)

	for _, pid := range pids {
		taskSchedStatFile := p.pidPath(pid, "schedstat")
		content, err := p.fs.ReadFileToString(taskSchedStatFile)
		if err != nil {
			general.Warningf("failed to read %s, err %s", taskSchedStatFile, err)
			continue
		}

		schedStatLine := strings.TrimRight(content, "\n")

		cols := strings.Fields(schedStatLine)
		if len(cols) < 2 {
			general.Errorf("invalid %s content with less than 2 cols", schedStatLine)
			continue
		}

		schedWait, err := strconv.ParseUint(cols[1], 10, 64)
		if err != nil {
			general.Errorf("failed ParseUint(%s) in %s, err %s", cols[1], schedStatLine, err)
			continue
		}

		taskSchedWait[pid] = schedWait
	}

	return taskSchedWait, nil
}
