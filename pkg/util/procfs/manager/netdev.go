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
	"bufio"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// field layout of /proc/<pid>/net/dev
const (
	procNetDevHeaderLines = 2

	// the kernel may append fields but never removes them
	procNetDevNumFields = 17

	procNetDevIFaceField     = 0
	procNetDevRxBytesField   = 1
	procNetDevRxPacketsField = 2
	procNetDevRxErrsField    = 3
	procNetDevRxDropField    = 4
	procNetDevTxBytesField   = 9
	procNetDevTxPacketsField = 10
	procNetDevTxErrsField    = 11
	procNetDevTxDropField    = 12
)

// ShouldSkipNetIFace reports whether iface is virtual or loopback and
// must not count towards network totals.
func (p *ProcParser) ShouldSkipNetIFace(iface string) bool {
	return lo.SomeBy(p.netIFaceIgnorePrefixes, func(prefix string) bool {
		return strings.HasPrefix(iface, prefix)
	})
}

// ParseProcPIDNetDev adds the counters of every tracked interface in
// /proc/<pid>/net/dev to out. out is left untouched on failure.
//
// Sample file:
//
//	Inter-|   Receive                                                |  Transmit
//	 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
//	 ens33: 54504114   65296    0    0    0     0          0         0  4258632   39739    0    0    0     0       0          0
//	 vnet1:  3936114   23029    0    0    0     0          0         0 551949355  42771    0    0    0     0       0          0
func (p *ProcParser) ParseProcPIDNetDev(pid int, out *NetworkStats) error {
	fpath := p.pidPath(pid, "net", "dev")
	f, err := os.Open(fpath)
	if err != nil {
		return general.NewIOError(err, "failed to open file %s", fpath)
	}
	defer f.Close()

	var (
		total   NetworkStats
		lineNum int
		scanner = bufio.NewScanner(f)
	)
	for scanner.Scan() {
		lineNum++
		if lineNum <= procNetDevHeaderLines {
			continue
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) < procNetDevNumFields {
			return general.NewParseError("incorrect number of fields in net dev file %s line %d: got %d, want at least %d",
				fpath, lineNum, len(fields), procNetDevNumFields)
		}

		if p.ShouldSkipNetIFace(fields[procNetDevIFaceField]) {
			continue
		}

		iface, err := parseNetDevIFace(fields)
		if err != nil {
			return general.NewParseError("failed to parse net dev file %s line %d: %v", fpath, lineNum, err)
		}
		total.Add(iface)
	}

	if err := scanner.Err(); err != nil {
		return general.NewIOError(err, "failed to read file %s", fpath)
	}

	out.Add(total)
	return nil
}

func parseNetDevIFace(fields []string) (NetworkStats, error) {
	fp := &fieldParser{fields: fields}
	stats := NetworkStats{
		RxBytes:   fp.int64At(procNetDevRxBytesField),
		RxPackets: fp.int64At(procNetDevRxPacketsField),
		RxDrops:   fp.int64At(procNetDevRxDropField),
		RxErrs:    fp.int64At(procNetDevRxErrsField),
		TxBytes:   fp.int64At(procNetDevTxBytesField),
		TxPackets: fp.int64At(procNetDevTxPacketsField),
		TxDrops:   fp.int64At(procNetDevTxDropField),
		TxErrs:    fp.int64At(procNetDevTxErrsField),
	}
	return stats, fp.err
}
