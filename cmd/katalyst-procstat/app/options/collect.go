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
	"fmt"

	"github.com/spf13/pflag"
	v1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/kubewharf/katalyst-telemetry/pkg/config"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/common"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/cgroup/metadata"
	"github.com/kubewharf/katalyst-telemetry/pkg/util/procfs/manager"
)

var supportedOutputFormats = sets.NewString(string(config.OutputFormatYAML), string(config.OutputFormatPrometheus))

// CollectOptions select what a collection pass reads.
type CollectOptions struct {
	PIDs []int
	Comm string

	PodUID      string
	ContainerID string
	QoSClass    string

	NetIFaceIgnorePrefixes []string
	OutputFormat           string
}

func NewCollectOptions() *CollectOptions {
	return &CollectOptions{
		QoSClass:               string(v1.PodQOSGuaranteed),
		NetIFaceIgnorePrefixes: append([]string{}, manager.DefaultNetIFaceIgnorePrefixes...),
		OutputFormat:           string(config.OutputFormatYAML),
	}
}

// AddFlags adds flags  to the specified FlagSet.
func (o *CollectOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntSliceVar(&o.PIDs, "pids", o.PIDs, "the processes to collect besides the host totals")
	fs.StringVar(&o.Comm, "comm", o.Comm, "also collect every process whose comm equals this value")
	fs.StringVar(&o.PodUID, "pod-uid", o.PodUID, "the uid of the pod whose container should be collected")
	fs.StringVar(&o.ContainerID, "container-id", o.ContainerID, "the id of the container to collect, requires --pod-uid")
	fs.StringVar(&o.QoSClass, "qos-class", o.QoSClass, "the qos class of the pod, one of Guaranteed, Burstable, BestEffort")
	fs.StringSliceVar(&o.NetIFaceIgnorePrefixes, "net-iface-ignore-prefixes", o.NetIFaceIgnorePrefixes,
		"network interfaces with these prefixes are left out of the network totals")
	fs.StringVar(&o.OutputFormat, "output", o.OutputFormat,
		fmt.Sprintf("the output format, one of %v", supportedOutputFormats.List()))
}

// ApplyTo fills up config with options
func (o *CollectOptions) ApplyTo(c *config.CollectConfiguration) error {
	var errList []error

	for _, pid := range o.PIDs {
		if pid <= 0 {
			errList = append(errList, fmt.Errorf("invalid pid %d", pid))
		}
	}
	c.PIDs = o.PIDs
	c.Comm = o.Comm

	if !supportedOutputFormats.Has(o.OutputFormat) {
		errList = append(errList, fmt.Errorf("unsupported output format %q", o.OutputFormat))
	}
	c.OutputFormat = config.OutputFormat(o.OutputFormat)
	c.NetIFaceIgnorePrefixes = o.NetIFaceIgnorePrefixes

	switch {
	case o.PodUID == "" && o.ContainerID == "":
	case o.PodUID == "" || o.ContainerID == "":
		errList = append(errList, fmt.Errorf("--pod-uid and --container-id must be set together"))
	case !common.IsValidQOSClass(v1.PodQOSClass(o.QoSClass)):
		errList = append(errList, fmt.Errorf("unsupported qos class %q", o.QoSClass))
	default:
		c.Containers = append(c.Containers, metadata.ContainerRef{
			PodUID:      types.UID(o.PodUID),
			ContainerID: o.ContainerID,
			QoSClass:    v1.PodQOSClass(o.QoSClass),
		})
	}

	return errors.NewAggregate(errList)
}
