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

// ParseProcPIDStatIO parses /proc/<pid>/io into the byte counters of out.
//
// Sample file:
//
//	rchar: 5405203
//	wchar: 1239158
//	syscr: 10608
//	syscw: 3141
//	read_bytes: 17838080
//	write_bytes: 634880
//	cancelled_write_bytes: 192512
func (p *ProcParser) ParseProcPIDStatIO(pid int, out *ProcessStats) error {
	stats := *out
	fields := KeyValueFields{
		"rchar:":       func(v int64) { stats.RCharBytes = v },
		"wchar:":       func(v int64) { stats.WCharBytes = v },
		"read_bytes:":  func(v int64) { stats.ReadBytes = v },
		"write_bytes:": func(v int64) { stats.WriteBytes = v },
	}

	if err := ParseFromKeyValueFile(p.pidPath(pid, "io"), fields, 1); err != nil {
		return err
	}
	*out = stats
	return nil
}
