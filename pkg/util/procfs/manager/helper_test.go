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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kubewharf/katalyst-telemetry/pkg/config/system"
)

const (
	testTicksPerSecond  = 100
	testNSPerKernelTick = 10000000
	testClockOffset     = 128
	testPageSize        = 4096
)

func newTestProcParser(t *testing.T, opts ...ProcParserOption) (*ProcParser, string) {
	t.Helper()

	procDir := t.TempDir()
	cfg, err := system.NewStaticConfiguration(testTicksPerSecond, testClockOffset, testPageSize, procDir, t.TempDir())
	require.NoError(t, err)
	return NewProcParser(cfg, opts...), procDir
}

func writeProcFile(t *testing.T, procDir, rel, content string) {
	t.Helper()

	fpath := filepath.Join(procDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(fpath), 0o755))
	require.NoError(t, os.WriteFile(fpath, []byte(content), 0o644))
}

// makeStatLine builds a stat record of numFields fields where field i
// defaults to strconv.Itoa(i) and the name field is "(" + name + ")".
func makeStatLine(pid int, name string, numFields int, overrides map[int]string) string {
	fields := make([]string, numFields)
	for i := range fields {
		fields[i] = strconv.Itoa(i)
	}
	fields[procStatPIDField] = strconv.Itoa(pid)
	fields[procStatProcessNameField] = "(" + name + ")"
	for idx, val := range overrides {
		fields[idx] = val
	}
	return strings.Join(fields, " ") + "\n"
}
