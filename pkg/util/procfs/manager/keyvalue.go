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
	"strconv"
	"strings"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

const (
	// a key-value line is "<key> <value>", with an optional trailing unit
	// such as "kB" that is absent when the value is 0 on some kernels.
	keyValueMinFields = 2
	keyValueMaxFields = 3
)

// KeyValueFields maps a recognised key (including any trailing colon)
// to the setter of its destination slot.
type KeyValueFields map[string]func(val int64)

// ParseFromKeyValueFile scans fpath for "key value [unit]" lines and hands
// value*multiplier to the setter registered for key. Lines of any other
// shape and unknown keys are skipped; keys never seen leave their slot
// untouched. Keys are assumed unique, so the scan stops once as many
// lines matched as there are keys.
func ParseFromKeyValueFile(fpath string, fields KeyValueFields, multiplier int64) error {
	f, err := os.Open(fpath)
	if err != nil {
		return general.NewIOError(err, "failed to open file %s", fpath)
	}
	defer f.Close()

	readCount := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		cols := strings.Fields(scanner.Text())
		if len(cols) < keyValueMinFields || len(cols) > keyValueMaxFields {
			continue
		}

		setter, ok := fields[cols[0]]
		if !ok {
			continue
		}

		val, err := strconv.ParseInt(cols[1], 10, 64)
		if err != nil {
			return general.NewParseError("failed to parse value %q of key %s in %s: %v", cols[1], cols[0], fpath, err)
		}
		setter(val * multiplier)

		readCount++
		if readCount == len(fields) {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return general.NewIOError(err, "failed to read file %s", fpath)
	}
	return nil
}
