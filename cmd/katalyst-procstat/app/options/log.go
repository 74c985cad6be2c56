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

package options

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/kubewharf/katalyst-telemetry/pkg/config"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
)

type LogsOptions struct {
	LogPackageLevel general.LoggingPKG

	LogFile          string
	LogFileMaxSizeMB int
	LogBufferSize    int
}

func NewLogsOptions() *LogsOptions {
	return &LogsOptions{
		LogPackageLevel:  general.LoggingPKGFull,
		LogFileMaxSizeMB: 100,
		LogBufferSize:    1000,
	}
}

// AddFlags adds the klog flags along with our own to the specified FlagSet.
func (o *LogsOptions) AddFlags(fs *pflag.FlagSet) {
	local := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	klog.InitFlags(local)
	local.VisitAll(func(fl *flag.Flag) {
		fs.AddGoFlag(fl)
	})

	fs.Var(&o.LogPackageLevel, "logs-package-level", "the default package level for logging")
	fs.StringVar(&o.LogFile, "log-file-path", o.LogFile,
		"write logs asynchronously into this file instead of stderr, rotating it by size")
	fs.IntVar(&o.LogFileMaxSizeMB, "log-file-max-size", o.LogFileMaxSizeMB,
		"the max size in megabytes of the log file before it gets rotated")
	fs.IntVar(&o.LogBufferSize, "log-buffer-size", o.LogBufferSize,
		"the number of pending log messages kept before new ones are dropped")
}

func (o *LogsOptions) ApplyTo(c *config.LogConfiguration) error {
	if o.LogFile != "" && (o.LogFileMaxSizeMB <= 0 || o.LogBufferSize <= 0) {
		return fmt.Errorf("log file size %d and buffer size %d must be positive",
			o.LogFileMaxSizeMB, o.LogBufferSize)
	}

	general.SetDefaultLoggingPackage(o.LogPackageLevel)
	c.LogPackageLevel = o.LogPackageLevel
	c.LogFile = o.LogFile
	c.LogFileMaxSizeMB = o.LogFileMaxSizeMB
	c.LogBufferSize = o.LogBufferSize
	return nil
}
