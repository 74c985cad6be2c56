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

// ProcessStats is a resource snapshot of one process. Time fields are in
// nanoseconds and memory/io fields in bytes.
type ProcessStats struct {
	PID         int64  `json:"pid" yaml:"pid"`
	ProcessName string `json:"processName" yaml:"processName"`

	MinorFaults int64 `json:"minorFaults" yaml:"minorFaults"`
	MajorFaults int64 `json:"majorFaults" yaml:"majorFaults"`

	UTimeNS    int64 `json:"utimeNs" yaml:"utimeNs"`
	KTimeNS    int64 `json:"ktimeNs" yaml:"ktimeNs"`
	NumThreads int64 `json:"numThreads" yaml:"numThreads"`

	VSizeBytes int64 `json:"vsizeBytes" yaml:"vsizeBytes"`
	RSSBytes   int64 `json:"rssBytes" yaml:"rssBytes"`

	RCharBytes int64 `json:"rcharBytes" yaml:"rcharBytes"`
	WCharBytes int64 `json:"wcharBytes" yaml:"wcharBytes"`
	ReadBytes  int64 `json:"readBytes" yaml:"readBytes"`
	WriteBytes int64 `json:"writeBytes" yaml:"writeBytes"`
}

// SystemStats is a host-wide snapshot. CPU times stay in kernel ticks,
// unlike ProcessStats, since consumers of host CPU expect tick units.
type SystemStats struct {
	CPUUTimeNS int64 `json:"cpuUtimeNs" yaml:"cpuUtimeNs"`
	CPUKTimeNS int64 `json:"cpuKtimeNs" yaml:"cpuKtimeNs"`

	MemTotalBytes      int64 `json:"memTotalBytes" yaml:"memTotalBytes"`
	MemFreeBytes       int64 `json:"memFreeBytes" yaml:"memFreeBytes"`
	MemAvailableBytes  int64 `json:"memAvailableBytes" yaml:"memAvailableBytes"`
	MemBufferBytes     int64 `json:"memBufferBytes" yaml:"memBufferBytes"`
	MemCachedBytes     int64 `json:"memCachedBytes" yaml:"memCachedBytes"`
	MemSwapCachedBytes int64 `json:"memSwapCachedBytes" yaml:"memSwapCachedBytes"`
	MemActiveBytes     int64 `json:"memActiveBytes" yaml:"memActiveBytes"`
	MemInactiveBytes   int64 `json:"memInactiveBytes" yaml:"memInactiveBytes"`
}

// NetworkStats accumulates counters over every tracked interface.
type NetworkStats struct {
	RxBytes   int64 `json:"rxBytes" yaml:"rxBytes"`
	RxPackets int64 `json:"rxPackets" yaml:"rxPackets"`
	RxDrops   int64 `json:"rxDrops" yaml:"rxDrops"`
	RxErrs    int64 `json:"rxErrs" yaml:"rxErrs"`

	TxBytes   int64 `json:"txBytes" yaml:"txBytes"`
	TxPackets int64 `json:"txPackets" yaml:"txPackets"`
	TxDrops   int64 `json:"txDrops" yaml:"txDrops"`
	TxErrs    int64 `json:"txErrs" yaml:"txErrs"`
}

// Add accumulates other into s.
func (s *NetworkStats) Add(other NetworkStats) {
	s.RxBytes += other.RxBytes
	s.RxPackets += other.RxPackets
	s.RxDrops += other.RxDrops
	s.RxErrs += other.RxErrs
	s.TxBytes += other.TxBytes
	s.TxPackets += other.TxPackets
	s.TxDrops += other.TxDrops
	s.TxErrs += other.TxErrs
}

// ProcUIDs is the credential set from the Uid: line of /proc/<pid>/status.
type ProcUIDs struct {
	Real       string `json:"real" yaml:"real"`
	Effective  string `json:"effective" yaml:"effective"`
	SavedSet   string `json:"savedSet" yaml:"savedSet"`
	Filesystem string `json:"filesystem" yaml:"filesystem"`
}
