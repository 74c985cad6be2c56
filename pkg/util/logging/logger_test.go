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

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubewharf/katalyst-telemetry/pkg/metrics"
)

func TestAsyncLogger_WriteAndShutdown(t *testing.T) {
	logFilePath := filepath.Join(t.TempDir(), "test.log")
	asyncLogger := NewAsyncLogger(metrics.DummyMetrics{}, logFilePath, 100, 100)
	require.NotNil(t, asyncLogger)
	assert.Equal(t, logFilePath, asyncLogger.LogFile())

	_, err := asyncLogger.Write([]byte("test\n"))
	assert.NoError(t, err, "write log should not fail")

	asyncLogger.Shutdown()

	content, err := os.ReadFile(logFilePath)
	require.NoError(t, err, "log file should be created")
	assert.Contains(t, string(content), "test")
}
