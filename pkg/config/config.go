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

// Package config is the package that contains the configurations of a
// telemetry collection run, both the host constants and what to collect.
package config // import "github.com/kubewharf/katalyst-telemetry/pkg/config"

import (
	"github.com/kubewharf/katalyst-telemetry/pkg/config/system"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/metadata"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

type OutputFormat string

const (
	OutputFormatYAML       OutputFormat = "yaml"
	OutputFormatPrometheus OutputFormat = "prometheus"
)

// CollectConfiguration selects the targets of one collection pass.
type CollectConfiguration struct {
	// PIDs are collected individually on top of the host totals.
	PIDs []int
	// Comm adds every process with this comm when not empty.
	Comm string
	// Containers are resolved to their processes through cgroupfs.
	Containers []metadata.ContainerRef

	NetIFaceIgnorePrefixes []string
	OutputFormat           OutputFormat
}

// ProfileConfiguration enables profiling of the collector itself; an
// empty path disables the corresponding profiler.
type ProfileConfiguration struct {
	CPUProfilePath  string
	HeapProfilePath string
}

// LogConfiguration controls klog; an empty LogFile keeps logging on stderr.
type LogConfiguration struct {
	LogPackageLevel general.LoggingPKG

	LogFile          string
	LogFileMaxSizeMB int
	LogBufferSize    int
}

// Configuration stores all the configurations needed by a collection run.
type Configuration struct {
	// System is nil until the options are applied, since building it
	// detects host constants.
	System *system.Configuration

	*CollectConfiguration
	*ProfileConfiguration
	*LogConfiguration
}

func NewConfiguration() *Configuration {
	return &Configuration{
		CollectConfiguration: &CollectConfiguration{
			OutputFormat: OutputFormatYAML,
		},
		ProfileConfiguration: &ProfileConfiguration{},
		LogConfiguration: &LogConfiguration{
			LogPackageLevel:  general.LoggingPKGFull,
			LogFileMaxSizeMB: 100,
			LogBufferSize:    1000,
		},
	}
}
