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

const (
	metricsNameSystemCPUUTimeTicks     = "system_cpu_utime_ticks"
	metricsNameSystemCPUKTimeTicks     = "system_cpu_ktime_ticks"
	metricsNameSystemMemTotal          = "system_mem_total_bytes"
	metricsNameSystemMemFree           = "system_mem_free_bytes"
	metricsNameSystemMemAvailable      = "system_mem_available_bytes"
	metricsNameSystemMemBuffer         = "system_mem_buffer_bytes"
	metricsNameSystemMemCached         = "system_mem_cached_bytes"
	metricsNameSystemMemSwapCached     = "system_mem_swap_cached_bytes"
	metricsNameSystemMemActive         = "system_mem_active_bytes"
	metricsNameSystemMemInactive       = "system_mem_inactive_bytes"
	metricsNameProcessStartTime        = "process_start_time_ns"
	metricsNameProcessMinorFaults      = "process_minor_faults"
	metricsNameProcessMajorFaults      = "process_major_faults"
	metricsNameProcessUTime            = "process_utime_ns"
	metricsNameProcessKTime            = "process_ktime_ns"
	metricsNameProcessNumThreads       = "process_num_threads"
	metricsNameProcessVSize            = "process_vsize_bytes"
	metricsNameProcessRSS              = "process_rss_bytes"
	metricsNameProcessRChar            = "process_rchar_bytes"
	metricsNameProcessWChar            = "process_wchar_bytes"
	metricsNameProcessReadBytes        = "process_read_bytes"
	metricsNameProcessWriteBytes       = "process_write_bytes"
	metricsNameProcessSchedWait        = "process_sched_wait_ns"
	metricsNameProcessNetRxBytes       = "process_net_rx_bytes"
	metricsNameProcessNetRxPackets     = "process_net_rx_packets"
	metricsNameProcessNetRxDrops       = "process_net_rx_drops"
	metricsNameProcessNetRxErrs        = "process_net_rx_errs"
	metricsNameProcessNetTxBytes       = "process_net_tx_bytes"
	metricsNameProcessNetTxPackets     = "process_net_tx_packets"
	metricsNameProcessNetTxDrops       = "process_net_tx_drops"
	metricsNameProcessNetTxErrs        = "process_net_tx_errs"
	metricsNameContainerProcessCount   = "container_process_count"
	metricsNameContainerCollectFailure = "container_collect_failures"
)

const (
	metricsTagKeyPID         = "pid"
	metricsTagKeyComm        = "comm"
	metricsTagKeyPodUID      = "pod_uid"
	metricsTagKeyContainerID = "container_id"
	metricsTagKeyQoSClass    = "qos_class"
)

const metricsUnitCollector = "collector"
