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
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/kubewharf/katalyst-telemetry/pkg/metrics"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/common"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/metadata"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/procfs/manager"
)

// Collector runs one-shot collections on top of the procfs and cgroupfs
// readers and emits every successful snapshot as raw metrics. It keeps
// no state between calls; retrying is up to the caller.
type Collector struct {
	parser  *manager.ProcParser
	reader  *metadata.CGroupMetadataReader
	emitter metrics.MetricEmitter
	logger  general.Logger
}

func NewCollector(parser *manager.ProcParser, reader *metadata.CGroupMetadataReader,
	emitter metrics.MetricEmitter,
) *Collector {
	return &Collector{
		parser:  parser,
		reader:  reader,
		emitter: emitter.WithTags(metricsUnitCollector),
		logger:  general.LoggerWithPrefix(metricsUnitCollector, general.LoggingPKGShort),
	}
}

// CollectSystem reads /proc/stat and /proc/meminfo.
func (c *Collector) CollectSystem(ctx context.Context) (*SystemSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stats manager.SystemStats
	if err := c.parser.ParseProcStat(&stats); err != nil {
		return nil, err
	}
	if err := c.parser.ParseProcMemInfo(&stats); err != nil {
		return nil, err
	}

	snapshot := &SystemSnapshot{Stats: stats}
	c.emitSystem(snapshot)
	return snapshot, nil
}

// CollectProcess parses stat, io and net/dev of pid along with its
// identity. Any failure discards the whole snapshot.
func (c *Collector) CollectProcess(ctx context.Context, pid int) (*ProcessSnapshot, error) {
	snapshot, err := c.collectProcess(ctx, pid)
	if err != nil {
		return nil, err
	}

	c.emitProcess(snapshot, containerTags(metadata.ContainerRef{})...)
	return snapshot, nil
}

func (c *Collector) collectProcess(ctx context.Context, pid int) (*ProcessSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md, err := c.reader.ReadPIDMetadata(pid)
	if err != nil {
		return nil, err
	}

	var (
		stats   manager.ProcessStats
		network manager.NetworkStats
	)
	if err := c.parser.ParseProcPIDStat(pid, &stats); err != nil {
		return nil, err
	}
	if err := c.parser.ParseProcPIDStatIO(pid, &stats); err != nil {
		return nil, err
	}
	if err := c.parser.ParseProcPIDNetDev(pid, &network); err != nil {
		return nil, err
	}

	schedWait, _ := c.parser.GetTaskSchedWait([]int{pid})
	return &ProcessSnapshot{
		Metadata:    *md,
		Stats:       stats,
		Network:     network,
		SchedWaitNS: schedWait[pid],
	}, nil
}

// CollectContainer collects every process of a container cgroup. A
// process failing to parse, typically because it exited after the pid
// list was read, is left out and its error is returned aggregated next
// to the snapshot of the remaining processes.
func (c *Collector) CollectContainer(ctx context.Context, ref metadata.ContainerRef) (*ContainerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if common.CheckCgroup2UnifiedMode() {
		c.logger.Warningf("host runs cgroup v2, cpu,cpuacct hierarchy of pod %s may not exist", ref.PodUID)
	}

	pids, err := c.reader.ReadContainerPIDList(ref)
	if err != nil {
		return nil, err
	}

	tags := containerTags(ref)
	var errList []error
	snapshot := &ContainerSnapshot{Container: ref, Processes: make([]*ProcessSnapshot, 0, len(pids))}
	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		process, err := c.collectProcess(ctx, pid)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				c.logger.InfofV(4, "pid %d of pod %s container %s exited: %v", pid, ref.PodUID, ref.ContainerID, err)
			}
			errList = append(errList, fmt.Errorf("pid %d: %w", pid, err))
			continue
		}

		c.emitProcess(process, tags...)
		snapshot.Processes = append(snapshot.Processes, process)
	}

	_ = c.emitter.StoreInt64(metricsNameContainerProcessCount, int64(len(snapshot.Processes)),
		metrics.MetricTypeNameRaw, tags...)
	_ = c.emitter.StoreInt64(metricsNameContainerCollectFailure, int64(len(errList)),
		metrics.MetricTypeNameRaw, tags...)

	return snapshot, utilerrors.NewAggregate(errList)
}

// FindPIDsByComm returns the processes whose comm equals comm.
func (c *Collector) FindPIDsByComm(ctx context.Context, comm string) ([]int, error) {
	pids, err := c.parser.ListPIDs()
	if err != nil {
		return nil, err
	}

	var matched []int
	for _, pid := range pids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pidComm, err := c.parser.GetPIDComm(pid)
		if err != nil {
			c.logger.InfofV(5, "skip pid %d: %v", pid, err)
			continue
		}
		if pidComm == comm {
			matched = append(matched, pid)
		}
	}
	return matched, nil
}

// Collect runs one pass over the host, the given processes and the given
// containers. Failures do not stop the pass; they are aggregated into the
// returned error.
func (c *Collector) Collect(ctx context.Context, pids []int, containers []metadata.ContainerRef) (*Snapshot, error) {
	var errList []error
	snapshot := &Snapshot{}

	system, err := c.CollectSystem(ctx)
	if err != nil {
		errList = append(errList, fmt.Errorf("system: %w", err))
	}
	snapshot.System = system

	for _, pid := range lo.Uniq(pids) {
		process, err := c.CollectProcess(ctx, pid)
		if err != nil {
			errList = append(errList, fmt.Errorf("pid %d: %w", pid, err))
			continue
		}
		snapshot.Processes = append(snapshot.Processes, process)
	}

	for _, ref := range containers {
		container, err := c.CollectContainer(ctx, ref)
		if err != nil {
			errList = append(errList, fmt.Errorf("pod %s container %s: %w", ref.PodUID, ref.ContainerID, err))
		}
		if container != nil {
			snapshot.Containers = append(snapshot.Containers, container)
		}
	}

	return snapshot, utilerrors.NewAggregate(errList)
}

func (c *Collector) emitSystem(snapshot *SystemSnapshot) {
	s := snapshot.Stats
	for name, val := range map[string]int64{
		metricsNameSystemCPUUTimeTicks: s.CPUUTimeNS,
		metricsNameSystemCPUKTimeTicks: s.CPUKTimeNS,
		metricsNameSystemMemTotal:      s.MemTotalBytes,
		metricsNameSystemMemFree:       s.MemFreeBytes,
		metricsNameSystemMemAvailable:  s.MemAvailableBytes,
		metricsNameSystemMemBuffer:     s.MemBufferBytes,
		metricsNameSystemMemCached:     s.MemCachedBytes,
		metricsNameSystemMemSwapCached: s.MemSwapCachedBytes,
		metricsNameSystemMemActive:     s.MemActiveBytes,
		metricsNameSystemMemInactive:   s.MemInactiveBytes,
	} {
		if err := c.emitter.StoreInt64(name, val, metrics.MetricTypeNameRaw); err != nil {
			c.logger.Errorf("emit %s failed: %v", name, err)
		}
	}
}

func (c *Collector) emitProcess(snapshot *ProcessSnapshot, tags ...metrics.MetricTag) {
	tags = append([]metrics.MetricTag{
		{Key: metricsTagKeyPID, Val: strconv.Itoa(snapshot.Metadata.PID)},
		{Key: metricsTagKeyComm, Val: snapshot.Stats.ProcessName},
	}, tags...)

	s, n := snapshot.Stats, snapshot.Network
	for name, val := range map[string]int64{
		metricsNameProcessStartTime:    snapshot.Metadata.StartTimeNS,
		metricsNameProcessMinorFaults:  s.MinorFaults,
		metricsNameProcessMajorFaults:  s.MajorFaults,
		metricsNameProcessUTime:        s.UTimeNS,
		metricsNameProcessKTime:        s.KTimeNS,
		metricsNameProcessNumThreads:   s.NumThreads,
		metricsNameProcessVSize:        s.VSizeBytes,
		metricsNameProcessRSS:          s.RSSBytes,
		metricsNameProcessRChar:        s.RCharBytes,
		metricsNameProcessWChar:        s.WCharBytes,
		metricsNameProcessReadBytes:    s.ReadBytes,
		metricsNameProcessWriteBytes:   s.WriteBytes,
		metricsNameProcessSchedWait:    int64(snapshot.SchedWaitNS),
		metricsNameProcessNetRxBytes:   n.RxBytes,
		metricsNameProcessNetRxPackets: n.RxPackets,
		metricsNameProcessNetRxDrops:   n.RxDrops,
		metricsNameProcessNetRxErrs:    n.RxErrs,
		metricsNameProcessNetTxBytes:   n.TxBytes,
		metricsNameProcessNetTxPackets: n.TxPackets,
		metricsNameProcessNetTxDrops:   n.TxDrops,
		metricsNameProcessNetTxErrs:    n.TxErrs,
	} {
		if err := c.emitter.StoreInt64(name, val, metrics.MetricTypeNameRaw, tags...); err != nil {
			c.logger.Errorf("emit %s of pid %d failed: %v", name, snapshot.Metadata.PID, err)
		}
	}
}

// containerTags are attached to every process metric so that each metric
// keeps a single tag set; standalone processes carry empty values.
func containerTags(ref metadata.ContainerRef) []metrics.MetricTag {
	return []metrics.MetricTag{
		{Key: metricsTagKeyPodUID, Val: string(ref.PodUID)},
		{Key: metricsTagKeyContainerID, Val: ref.ContainerID},
		{Key: metricsTagKeyQoSClass, Val: string(ref.QoSClass)},
	}
}
