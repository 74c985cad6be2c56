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
	"path/filepath"
	"strings"

	"github.com/alecthomas/units"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// field layout of the aggregate cpu line in /proc/stat
const (
	procStatCPULabel      = "cpu"
	procStatCPUNumFields  = 11
	procStatCPUUTimeField = 1
	procStatCPUKTimeField = 3
)

// ParseProcStat reads the aggregate cpu line of /proc/stat. Values are
// kept in kernel ticks; per-core lines are ignored.
//
// Sample file:
//
//	cpu  248758 4995 78314 12965346 10040 0 5498 0 0 0
//	cpu0 43574 817 13011 2159486 994 0 1022 0 0 0
func (p *ProcParser) ParseProcStat(out *SystemStats) error {
	fpath := filepath.Join(p.procBasePath, "stat")
	f, err := os.Open(fpath)
	if err != nil {
		return general.NewIOError(err, "failed to open file %s", fpath)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != procStatCPULabel {
			continue
		}

		if len(fields) < procStatCPUNumFields {
			return general.NewParseError("incorrect number of fields in %s cpu line: got %d, want at least %d",
				fpath, len(fields), procStatCPUNumFields)
		}

		fp := &fieldParser{fields: fields}
		kTime := fp.int64At(procStatCPUKTimeField)
		uTime := fp.int64At(procStatCPUUTimeField)
		if fp.err != nil {
			return general.NewParseError("failed to parse %s cpu line: %v", fpath, fp.err)
		}

		out.CPUKTimeNS = kTime
		out.CPUUTimeNS = uTime
		return nil
	}

	if err := scanner.Err(); err != nil {
		return general.NewIOError(err, "failed to read file %s", fpath)
	}
	return general.NewNotFoundError("no cpu line in %s", fpath)
}

// ParseProcMemInfo reads the memory totals of /proc/meminfo in bytes.
//
// Sample file:
//
//	MemTotal:       65652452 kB
//	MemFree:        19170960 kB
//	MemAvailable:   52615288 kB
func (p *ProcParser) ParseProcMemInfo(out *SystemStats) error {
	stats := *out
	fields := KeyValueFields{
		"MemTotal:":     func(v int64) { stats.MemTotalBytes = v },
		"MemFree:":      func(v int64) { stats.MemFreeBytes = v },
		"MemAvailable:": func(v int64) { stats.MemAvailableBytes = v },
		"Buffers:":      func(v int64) { stats.MemBufferBytes = v },
		"Cached:":       func(v int64) { stats.MemCachedBytes = v },
		"SwapCached:":   func(v int64) { stats.MemSwapCachedBytes = v },
		"Active:":       func(v int64) { stats.MemActiveBytes = v },
		"Inactive:":     func(v int64) { stats.MemInactiveBytes = v },
	}

	// values carry a kB unit
	if err := ParseFromKeyValueFile(filepath.Join(p.procBasePath, "meminfo"), fields, int64(units.KiB)); err != nil {
		return err
	}
	*out = stats
	return nil
}
