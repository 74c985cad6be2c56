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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

func TestParseFromKeyValueFile(t *testing.T) {
	t.Parallel()

	type slots struct {
		a, b, c int64
	}

	tests := []struct {
		name       string
		content    string
		multiplier int64
		want       slots
		wantErr    func(error) bool
	}{
		{
			name:       "all keys with and without unit",
			content:    "a: 1 kB\nb: 2\nc: 3 kB\n",
			multiplier: 1,
			want:       slots{a: 1, b: 2, c: 3},
		},
		{
			name:       "multiplier applied",
			content:    "a: 1 kB\nb: 2 kB\nc: 0\n",
			multiplier: 1024,
			want:       slots{a: 1024, b: 2048, c: 0},
		},
		{
			name:       "other line shapes and unknown keys skipped",
			content:    "header\nz: 9\na: 1 kB extra tokens\nb: 2\nunknown 5 kB\n\nc: 3\n",
			multiplier: 1,
			want:       slots{a: -1, b: 2, c: 3},
		},
		{
			name:       "missing key keeps prior value",
			content:    "a: 1\nc: 3\n",
			multiplier: 1,
			want:       slots{a: 1, b: -1, c: 3},
		},
		{
			name:       "duplicate key counts towards early exit",
			content:    "a: 1\na: 2\nb: 3\nc: 4\n",
			multiplier: 1,
			want:       slots{a: 2, b: 3, c: -1},
		},
		{
			name:       "stops after every key was seen",
			content:    "a: 1\nb: 2\nc: 3\na: x\n",
			multiplier: 1,
			want:       slots{a: 1, b: 2, c: 3},
		},
		{
			name:       "malformed value",
			content:    "a: 1\nb: two\nc: 3\n",
			multiplier: 1,
			wantErr:    general.IsParseError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeProcFile(t, dir, "kv", tt.content)

			got := slots{a: -1, b: -1, c: -1}
			err := ParseFromKeyValueFile(filepath.Join(dir, "kv"), KeyValueFields{
				"a:": func(v int64) { got.a = v },
				"b:": func(v int64) { got.b = v },
				"c:": func(v int64) { got.c = v },
			}, tt.multiplier)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFromKeyValueFileMissing(t *testing.T) {
	t.Parallel()

	err := ParseFromKeyValueFile(filepath.Join(t.TempDir(), "absent"), KeyValueFields{}, 1)
	assert.True(t, general.IsIOError(err))
}
