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

package common

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

// ReadPIDsFile reads a cgroup.procs shaped file, one id per line, and
// returns the ids in file order. Blank lines are skipped.
func ReadPIDsFile(file string) ([]int, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, general.NewIOError(err, "failed to open file %s", file)
	}
	defer f.Close()

	var (
		s      = bufio.NewScanner(f)
		result = []int{}
	)

	for s.Scan() {
		t := strings.TrimSpace(s.Text())
		if t == "" {
			continue
		}

		pid, err := strconv.Atoi(t)
		if err != nil {
			return nil, general.NewParseError("invalid pid %q in %s", t, file)
		}
		result = append(result, pid)
	}

	if err := s.Err(); err != nil {
		return nil, general.NewIOError(err, "failed to read file %s", file)
	}
	return result, nil
}
