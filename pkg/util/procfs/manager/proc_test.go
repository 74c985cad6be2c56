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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

func TestListPIDs(t *testing.T) {
	t.Parallel()

	p, procDir := newTestProcParser(t)
	for _, name := range []string{"20", "1", "3", "self", "sys"} {
		require.NoError(t, os.MkdirAll(filepath.Join(procDir, name), 0o755))
	}
	writeProcFile(t, procDir, "meminfo", "")

	pids, err := p.ListPIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 20}, pids)
}

func TestListPIDsMissingRoot(t *testing.T) {
	t.Parallel()

	p, _ := newTestProcParser(t)
	p.procBasePath = filepath.Join(t.TempDir(), "absent")

	_, err := p.ListPIDs()
	assert.True(t, general.IsIOError(err))
}

func TestGetPIDComm(t *testing.T) {
	t.Parallel()

	p, procDir := newTestProcParser(t)
	writeProcFile(t, procDir, "42/comm", "kubelet\n")

	comm, err := p.GetPIDComm(42)
	require.NoError(t, err)
	assert.Equal(t, "kubelet", comm)

	_, err = p.GetPIDComm(43)
	assert.True(t, general.IsIOError(err))
}

func TestGetTaskSchedWait(t *testing.T) {
	t.Parallel()

	p, procDir := newTestProcParser(t)
	writeProcFile(t, procDir, "1/schedstat", "123456 7890 12\n")
	writeProcFile(t, procDir, "2/schedstat", "123456\n")
	writeProcFile(t, procDir, "3/schedstat", "123456 x 12\n")
	writeProcFile(t, procDir, "4/schedstat", "1 2 3\n")

	waits, err := p.GetTaskSchedWait([]int{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, map[int]uint64{1: 7890, 4: 2}, waits)
}
