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

package general

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrimCallPath(t *testing.T) {
	t.Parallel()

	callPath := "github.com/kubewharf/katalyst-telemetry/pkg/util/procfs/manager.(*ProcParser).ParseProcStat"
	require.Equal(t, "ParseProcStat", trimCallPath(callPath, LoggingPKGNone))
	require.Equal(t, "manager.(*ProcParser).ParseProcStat", trimCallPath(callPath, LoggingPKGShort))
	require.Equal(t, "katalyst-telemetry/pkg/util/procfs/manager.(*ProcParser).ParseProcStat",
		trimCallPath(callPath, LoggingPKGFull))
}

func TestLoggingPKGSet(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		value   string
		want    LoggingPKG
		wantErr bool
	}{
		{value: "none", want: LoggingPKGNone},
		{value: "short", want: LoggingPKGShort},
		{value: "2", want: LoggingPKGFull},
		{value: "7", wantErr: true},
		{value: "verbose", wantErr: true},
	} {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()

			var l LoggingPKG
			err := l.Set(tc.value)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, l)
		})
	}
}

func TestLoggingMessage(t *testing.T) {
	msg := logging("pid %v", 42)
	require.Contains(t, msg, "pid 42")
	require.True(t, msg[0] == '[')
}

func TestLoggerWithPrefix(t *testing.T) {
	t.Parallel()

	l := LoggerWithPrefix("collector", LoggingPKGNone)
	msg := l.logging("pid %v", 42)
	require.Contains(t, msg, "[collector: ")
	require.Contains(t, msg, "pid 42")

	require.Equal(t, "", LoggerWithPrefix("", LoggingPKGNone).prefix)
}
