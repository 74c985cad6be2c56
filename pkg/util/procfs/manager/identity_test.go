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

const testStatusContent = "Name:\tapache2\n" +
	"Umask:\t0022\n" +
	"State:\tS (sleeping)\n" +
	"Tgid:\t2578\n" +
	"NStgid:\t2578\t33\n" +
	"Pid:\t2578\n" +
	"PPid:\t1\n" +
	"Uid:\t33\t33\t33\t33\n" +
	"Gid:\t33\t33\t33\t33\n"

func TestGetPIDCmdline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    string
	}{
		{
			name:    "null delimited",
			content: strPtr("/usr/lib/at-spi2-core/at-spi2-registryd\x00--use-gnome-session\x00"),
			want:    "/usr/lib/at-spi2-core/at-spi2-registryd --use-gnome-session",
		},
		{
			name:    "space delimited",
			content: strPtr("/usr/lib/slack/slack --force-device-scale-factor=1.5 --high-dpi-support=1"),
			want:    "/usr/lib/slack/slack --force-device-scale-factor=1.5 --high-dpi-support=1",
		},
		{
			name:    "only one trailing null stripped",
			content: strPtr("foo\x00bar\x00\x00"),
			want:    "foo bar ",
		},
		{
			name:    "kernel thread",
			content: strPtr(""),
			want:    "",
		},
		{
			name: "missing file",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, procDir := newTestProcParser(t)
			if tt.content != nil {
				writeProcFile(t, procDir, "5/cmdline", *tt.content)
			}
			assert.Equal(t, tt.want, p.GetPIDCmdline(5))
		})
	}
}

func TestReadUIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    *ProcUIDs
		wantErr func(error) bool
	}{
		{
			name:    "tab separated",
			content: strPtr(testStatusContent),
			want:    &ProcUIDs{Real: "33", Effective: "33", SavedSet: "33", Filesystem: "33"},
		},
		{
			name:    "space separated",
			content: strPtr("Name: sh\nUid: 0 1000 2000 3000\n"),
			want:    &ProcUIDs{Real: "0", Effective: "1000", SavedSet: "2000", Filesystem: "3000"},
		},
		{
			name:    "too few uids",
			content: strPtr("Uid:\t33\t33\t33\n"),
			wantErr: general.IsParseError,
		},
		{
			name:    "too many uids",
			content: strPtr("Uid:\t33\t33\t33\t33\t33\n"),
			wantErr: general.IsParseError,
		},
		{
			name:    "no uid line",
			content: strPtr("Name:\tsh\n"),
			wantErr: general.IsParseError,
		},
		{
			name:    "missing file",
			wantErr: general.IsIOError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, procDir := newTestProcParser(t)
			if tt.content != nil {
				writeProcFile(t, procDir, "6/status", *tt.content)
			}

			got, err := p.ReadUIDs(6)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadNSPid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    []string
		wantErr func(error) bool
	}{
		{
			name:    "nested namespace",
			content: strPtr(testStatusContent),
			want:    []string{"2578", "33"},
		},
		{
			name:    "root namespace",
			content: strPtr("NStgid:\t1\n"),
			want:    []string{"1"},
		},
		{
			name:    "label only",
			content: strPtr("NStgid:\n"),
			wantErr: general.IsInvalidArgumentError,
		},
		{
			name:    "no NStgid line",
			content: strPtr("Name:\tsh\n"),
			wantErr: general.IsInvalidArgumentError,
		},
		{
			name:    "missing file",
			wantErr: general.IsIOError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, procDir := newTestProcParser(t)
			if tt.content != nil {
				writeProcFile(t, procDir, "6/status", *tt.content)
			}

			got, err := p.ReadNSPid(6)
			if tt.wantErr != nil {
				assert.True(t, tt.wantErr(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadProcPIDFDLink(t *testing.T) {
	t.Parallel()

	p, procDir := newTestProcParser(t)
	fdDir := filepath.Join(procDir, "8", "fd")
	require.NoError(t, os.MkdirAll(fdDir, 0o755))
	require.NoError(t, os.Symlink("socket:[12345]", filepath.Join(fdDir, "3")))

	target, err := p.ReadProcPIDFDLink(8, 3)
	require.NoError(t, err)
	assert.Equal(t, "socket:[12345]", target)

	_, err = p.ReadProcPIDFDLink(8, 4)
	assert.True(t, general.IsIOError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type fakeFS struct {
	files    map[string]string
	symlinks map[string]string
}

func (f fakeFS) ReadFileToString(path string) (string, error) {
	if content, ok := f.files[path]; ok {
		return content, nil
	}
	return "", general.NewIOError(os.ErrNotExist, "fake read %s", path)
}

func (f fakeFS) ReadSymlink(path string) (string, error) {
	if target, ok := f.symlinks[path]; ok {
		return target, nil
	}
	return "", general.NewIOError(os.ErrNotExist, "fake readlink %s", path)
}

func TestIdentityWithFileSystem(t *testing.T) {
	t.Parallel()

	fs := fakeFS{
		files:    map[string]string{"/fake/proc/10/cmdline": "a\x00b\x00"},
		symlinks: map[string]string{"/fake/proc/10/fd/0": "/dev/null"},
	}
	p, _ := newTestProcParser(t, WithFileSystem(fs))
	p.procBasePath = "/fake/proc"

	assert.Equal(t, "a b", p.GetPIDCmdline(10))

	target, err := p.ReadProcPIDFDLink(10, 0)
	require.NoError(t, err)
	assert.Equal(t, "/dev/null", target)

	_, err = p.ReadUIDs(10)
	assert.True(t, general.IsIOError(err))
}
