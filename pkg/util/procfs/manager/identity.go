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
	"strconv"
	"strings"

	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

const (
	statusUIDPrefix    = "Uid:"
	statusNSTgidPrefix = "NStgid:"

	// label + real, effective, saved set and filesystem uid
	statusUIDFieldCount = 5
	// label + at least the pid in the outermost namespace
	statusNSTgidMinFields = 2
)

// GetPIDCmdline returns /proc/<pid>/cmdline with arguments joined by
// spaces. Kernels delimit arguments with either nulls or spaces, so
// nulls are normalised to spaces and tokenizing is left to the caller.
// A missing file yields "".
func (p *ProcParser) GetPIDCmdline(pid int) string {
	content, err := p.fs.ReadFileToString(p.pidPath(pid, "cmdline"))
	if err != nil {
		general.InfofV(5, "cmdline of pid %d unavailable: %v", pid, err)
		return ""
	}

	cmdline := strings.ReplaceAll(content, "\n", "")
	cmdline = strings.TrimSuffix(cmdline, "\x00")
	return strings.ReplaceAll(cmdline, "\x00", " ")
}

// ReadUIDs returns the uids listed in /proc/<pid>/status, e.g.
//
//	Name:   apache2
//	Umask:  0022
//	State:  S (sleeping)
//	Uid:    33      33      33      33
func (p *ProcParser) ReadUIDs(pid int) (*ProcUIDs, error) {
	fpath := p.pidPath(pid, "status")
	content, err := p.fs.ReadFileToString(fpath)
	if err != nil {
		return nil, err
	}

	uidLine := lineWithPrefix(content, statusUIDPrefix)
	fields := splitStatusLine(uidLine)
	if len(fields) != statusUIDFieldCount {
		return nil, general.NewParseError("status file %s returns incorrect uid line %q", fpath, uidLine)
	}

	return &ProcUIDs{
		Real:       fields[1],
		Effective:  fields[2],
		SavedSet:   fields[3],
		Filesystem: fields[4],
	}, nil
}

// ReadNSPid returns the thread group id of pid in every pid namespace it
// belongs to, outermost first. A process outside any nested namespace has
// exactly one entry.
//
//	NStgid: 2578    33
func (p *ProcParser) ReadNSPid(pid int) ([]string, error) {
	fpath := p.pidPath(pid, "status")
	content, err := p.fs.ReadFileToString(fpath)
	if err != nil {
		return nil, err
	}

	nsPidLine := lineWithPrefix(content, statusNSTgidPrefix)
	fields := splitStatusLine(nsPidLine)
	if len(fields) < statusNSTgidMinFields {
		return nil, general.NewInvalidArgumentError("NStgid line in %s is invalid: %q", fpath, nsPidLine)
	}
	return append([]string{}, fields[1:]...), nil
}

// ReadProcPIDFDLink resolves /proc/<pid>/fd/<fd>, e.g. "socket:[12345]".
func (p *ProcParser) ReadProcPIDFDLink(pid, fd int) (string, error) {
	return p.fs.ReadSymlink(p.pidPath(pid, "fd", strconv.Itoa(fd)))
}

func lineWithPrefix(content, prefix string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	return ""
}

func splitStatusLine(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}
