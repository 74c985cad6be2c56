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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

func TestParseProcPIDStat(t *testing.T) {
	t.Parallel()

	full := map[int]string{
		procStatMinorFaultsField: "1799",
		procStatMajorFaultsField: "55",
		procStatUTimeField:       "8",
		procStatKTimeField:       "23",
		procStatNumThreadsField:  "13",
		procStatStartTimeField:   "14329",
		procStatVSizeField:       "114384896",
		procStatRSSField:         "2577",
	}
	want := ProcessStats{
		PID:         4602,
		ProcessName: "ibazel",
		MinorFaults: 1799,
		MajorFaults: 55,
		UTimeNS:     8 * testNSPerKernelTick,
		KTimeNS:     23 * testNSPerKernelTick,
		NumThreads:  13,
		VSizeBytes:  114384896,
		RSSBytes:    2577 * testPageSize,
	}

	tests := []struct {
		name    string
		content string
		want    ProcessStats
		wantErr func(error) bool
	}{
		{
			name:    "regular record",
			content: makeStatLine(4602, "ibazel", procStatNumFields, full),
			want:    want,
		},
		{
			name:    "appended fields are ignored",
			content: makeStatLine(4602, "ibazel", procStatNumFields+3, full),
			want:    want,
		},
		{
			name:    "name with spaces and parentheses",
			content: makeStatLine(4602, "tmux: server (1)", procStatNumFields, full),
			want: func() ProcessStats {
				w := want
				w.ProcessName = "tmux: server (1)"
				return w
			}(),
		},
		{
			name:    "too few fields",
			content: makeStatLine(4602, "ibazel", procStatNumFields-1, full),
			wantErr: general.IsParseError,
		},
		{
			name:    "empty name",
			content: makeStatLine(4602, "", procStatNumFields, full),
			wantErr: general.IsParseError,
		},
		{
			name:    "name without parentheses",
			content: strings.Replace(makeStatLine(4602, "x", procStatNumFields, full), "(x)", "x", 1),
			wantErr: general.IsParseError,
		},
		{
			name: "malformed utime",
			content: makeStatLine(4602, "ibazel", procStatNumFields, map[int]string{
				procStatUTimeField: "8x",
			}),
			wantErr: general.IsParseError,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: general.IsIOError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, procDir := newTestProcParser(t)
			writeProcFile(t, procDir, "4602/stat", tt.content)

			sentinel := ProcessStats{ProcessName: "untouched", RCharBytes: 7}
			got := sentinel
			err := p.ParseProcPIDStat(4602, &got)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				assert.Equal(t, sentinel, got)
				return
			}
			require.NoError(t, err)

			// fields owned by other parsers survive
			tt.want.RCharBytes = 7
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseProcPIDStatMissing(t *testing.T) {
	t.Parallel()

	p, _ := newTestProcParser(t)
	err := p.ParseProcPIDStat(1, &ProcessStats{})
	assert.True(t, general.IsIOError(err))
}

func TestParseProcPIDStatIdempotent(t *testing.T) {
	t.Parallel()

	p, procDir := newTestProcParser(t)
	writeProcFile(t, procDir, "12/stat", makeStatLine(12, "sshd", procStatNumFields, nil))

	var first, second ProcessStats
	require.NoError(t, p.ParseProcPIDStat(12, &first))
	require.NoError(t, p.ParseProcPIDStat(12, &second))
	assert.Equal(t, first, second)
}

func TestGetPIDStartTimeTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    int64
	}{
		{
			name:    "regular record",
			content: strPtr(makeStatLine(7, "init", procStatNumFields, map[int]string{procStatStartTimeField: "80019809"})),
			want:    80019809,
		},
		{
			name: "missing file",
			want: 0,
		},
		{
			name:    "too few fields",
			content: strPtr(makeStatLine(7, "init", procStatStartTimeField+1, nil)),
			want:    0,
		},
		{
			name:    "malformed start time",
			content: strPtr(makeStatLine(7, "init", procStatNumFields, map[int]string{procStatStartTimeField: "abc"})),
			want:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, procDir := newTestProcParser(t)
			if tt.content != nil {
				writeProcFile(t, procDir, "7/stat", *tt.content)
			}
			assert.Equal(t, tt.want, p.GetPIDStartTimeTicks(7))
		})
	}
}

func strPtr(s string) *string {
	return &s
}
