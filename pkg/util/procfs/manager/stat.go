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
	"fmt"
	"strconv"
	"strings"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/file"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// field layout of /proc/<pid>/stat, see proc(5).
const (
	// the kernel may append fields but never removes them
	procStatNumFields = 52

	procStatPIDField          = 0
	procStatProcessNameField  = 1
	procStatMinorFaultsField  = 9
	procStatMajorFaultsField  = 11
	procStatUTimeField        = 13
	procStatKTimeField        = 14
	procStatNumThreadsField   = 19
	procStatStartTimeField    = 21
	procStatVSizeField        = 22
	procStatRSSField          = 23
	procStatProcessNameMinLen = 2
)

// fieldParser converts positional fields, remembering the first failure.
type fieldParser struct {
	fields []string
	err    error
}

func (fp *fieldParser) int64At(idx int) int64 {
	if fp.err != nil {
		return 0
	}
	val, err := strconv.ParseInt(fp.fields[idx], 10, 64)
	if err != nil {
		fp.err = fmt.Errorf("field %d (%q): %v", idx, fp.fields[idx], err)
	}
	return val
}

// splitStatFields splits a stat line into its positional fields. The
// process name is kept as one "(name)" field even if it contains spaces.
func splitStatFields(line string) []string {
	start := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if start < 0 || end < start {
		return strings.Fields(line)
	}

	fields := strings.Fields(line[:start])
	fields = append(fields, line[start:end+1])
	return append(fields, strings.Fields(line[end+1:])...)
}

func readFirstLine(fpath string) (string, error) {
	b, err := file.ReadFileNoStat(fpath)
	if err != nil {
		return "", general.NewIOError(err, "failed to open file %s", fpath)
	}
	content := string(b)
	if content == "" {
		return "", general.NewIOError(nil, "failed to read stat file %s: empty", fpath)
	}
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		content = content[:idx]
	}
	return content, nil
}

// ParseProcPIDStat parses /proc/<pid>/stat into out. Times are converted
// from kernel ticks to ns and RSS from pages to bytes. out is only written
// when every field parsed.
//
// Sample file:
//
//	4602 (ibazel) S 3260 4602 3260 34818 4602 1077936128 1799 174589 55 68 8 23 106 72 20 0 13 0 14329 114384896 2577 ...
func (p *ProcParser) ParseProcPIDStat(pid int, out *ProcessStats) error {
	fpath := p.pidPath(pid, "stat")
	line, err := readFirstLine(fpath)
	if err != nil {
		return err
	}

	fields := splitStatFields(line)
	if len(fields) < procStatNumFields {
		return general.NewParseError("incorrect number of fields in stat file %s: got %d, want at least %d",
			fpath, len(fields), procStatNumFields)
	}

	nameField := fields[procStatProcessNameField]
	if len(nameField) <= procStatProcessNameMinLen {
		return general.NewParseError("invalid process name field %q in stat file %s", nameField, fpath)
	}

	fp := &fieldParser{fields: fields}
	stats := *out
	stats.PID = fp.int64At(procStatPIDField)
	stats.ProcessName = nameField[1 : len(nameField)-1]
	stats.MinorFaults = fp.int64At(procStatMinorFaultsField)
	stats.MajorFaults = fp.int64At(procStatMajorFaultsField)
	stats.UTimeNS = fp.int64At(procStatUTimeField) * p.nsPerKernelTick
	stats.KTimeNS = fp.int64At(procStatKTimeField) * p.nsPerKernelTick
	stats.NumThreads = fp.int64At(procStatNumThreadsField)
	stats.VSizeBytes = fp.int64At(procStatVSizeField)
	stats.RSSBytes = fp.int64At(procStatRSSField) * p.bytesPerPage
	if fp.err != nil {
		return general.NewParseError("failed to parse stat file %s: %v", fpath, fp.err)
	}

	*out = stats
	return nil
}

// GetPIDStartTimeTicks returns the start time of pid in kernel ticks since
// boot, or 0 when it cannot be determined.
func (p *ProcParser) GetPIDStartTimeTicks(pid int) int64 {
	return GetPIDStartTimeTicks(p.pidPath(pid))
}

// GetPIDStartTimeTicks reads the start time field of <procPIDPath>/stat.
// It is best effort: every failure yields 0.
func GetPIDStartTimeTicks(procPIDPath string) int64 {
	fpath := procPIDPath + "/stat"
	line, err := readFirstLine(fpath)
	if err != nil {
		general.InfofV(5, "start time of %s unavailable: %v", procPIDPath, err)
		return 0
	}

	fields := splitStatFields(line)
	if len(fields) < procStatNumFields {
		general.InfofV(5, "start time of %s unavailable: only %d fields", procPIDPath, len(fields))
		return 0
	}

	startTimeTicks, err := strconv.ParseInt(fields[procStatStartTimeField], 10, 64)
	if err != nil {
		general.InfofV(5, "start time of %s unavailable: %v", procPIDPath, err)
		return 0
	}
	return startTimeTicks
}
