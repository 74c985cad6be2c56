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

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	cliflag "k8s.io/component-base/cli/flag"
	"k8s.io/component-base/term"

	"github.com/kubewharf/katalyst-telemetry/cmd/katalyst-procstat/app/options"
	"github.com/kubewharf/katalyst-telemetry/pkg/agent/collector"
	"github.com/kubewharf/katalyst-telemetry/pkg/config"
	"github.com/kubewharf/katalyst-telemetry/pkg/metrics"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/metadata"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/general"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/logging"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/procfs/manager"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/profiler"
)

const metricsPrefix = "katalyst"

// NewProcStatCommand creates a *cobra.Command object with default parameters
func NewProcStatCommand() *cobra.Command {
	opt := options.NewOptions()

	cmd := &cobra.Command{
		Use:   "katalyst-procstat",
		Short: "Read process, container and host telemetry from procfs and cgroupfs once and print it",
		// the collection error is already logged
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments %v", args)
			}

			conf, err := opt.Config()
			if err != nil {
				general.Errorf("parse config error: %v", err)
				return err
			}
			return Run(cmd.Context(), conf, cmd.OutOrStdout())
		},
	}

	fss := &cliflag.NamedFlagSets{}
	opt.AddFlags(fss)

	fs := cmd.Flags()
	for _, f := range fss.FlagSets {
		fs.AddFlagSet(f)
	}

	cols, _, _ := term.TerminalSize(cmd.OutOrStdout())
	cliflag.SetUsageAndHelpFunc(cmd, *fss, cols)
	return cmd
}

// Run performs one collection pass and writes the snapshot to out. The
// snapshot is written even when some targets failed; the failures are
// returned aggregated.
func Run(ctx context.Context, conf *config.Configuration, out io.Writer) error {
	stopProfilers, err := startProfilers(conf.ProfileConfiguration)
	if err != nil {
		return err
	}
	defer stopProfilers()

	emitter := metrics.NewPrometheusMetricsEmitter(metricsPrefix)
	if conf.LogFile != "" {
		asyncLogger := logging.NewAsyncLogger(emitter, conf.LogFile, conf.LogFileMaxSizeMB, conf.LogBufferSize)
		defer asyncLogger.Shutdown()
	}

	reader := metadata.NewCGroupMetadataReader(conf.System,
		manager.WithNetIFaceIgnorePrefixes(conf.NetIFaceIgnorePrefixes))
	c := collector.NewCollector(reader.Parser(), reader, emitter)

	pids := append([]int{}, conf.PIDs...)
	if conf.Comm != "" {
		matched, err := c.FindPIDsByComm(ctx, conf.Comm)
		if err != nil {
			return err
		}
		general.Infof("found %d processes named %s", len(matched), conf.Comm)
		pids = append(pids, matched...)
	}

	snapshot, collectErr := c.Collect(ctx, pids, conf.Containers)
	if collectErr != nil {
		general.ErrorS(collectErr, "collection incomplete")
	}
	general.InfoS("collection finished", "processes", len(snapshot.Processes),
		"containers", len(snapshot.Containers))

	if err := writeSnapshot(out, conf.OutputFormat, snapshot, emitter); err != nil {
		return err
	}
	return collectErr
}

func writeSnapshot(out io.Writer, format config.OutputFormat, snapshot *collector.Snapshot,
	emitter *metrics.PrometheusMetricsEmitter,
) error {
	switch format {
	case config.OutputFormatPrometheus:
		return emitter.WriteText(out)
	case config.OutputFormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func startProfilers(conf *config.ProfileConfiguration) (func(), error) {
	var running []profiler.Profiler
	stop := func() {
		for _, p := range running {
			if _, err := p.Stop(); err != nil {
				general.Errorf("stop profiler failed: %v", err)
			}
		}
	}

	for _, target := range []struct {
		path string
		p    profiler.Profiler
	}{
		{path: conf.CPUProfilePath, p: profiler.NewCPUProfiler()},
		{path: conf.HeapProfilePath, p: profiler.NewHeapProfiler()},
	} {
		if target.path == "" {
			continue
		}
		if !target.p.IsAvailable() {
			general.Warningf("profiling requested into %s but this binary is built without profilers", target.path)
			continue
		}
		if err := target.p.Start(target.path); err != nil {
			stop()
			return nil, err
		}
		running = append(running, target.p)
	}
	return stop, nil
}
