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
	"k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/kubewharf/katalyst-telemetry/pkg/config"
)

// Options holds the configurations for katalyst-procstat.
type Options struct {
	systemOptions  *SystemOptions
	collectOptions *CollectOptions
	profileOptions *ProfileOptions
	logsOptions    *LogsOptions
}

// NewOptions creates a new Options with a default config.
func NewOptions() *Options {
	return &Options{
		systemOptions:  NewSystemOptions(),
		collectOptions: NewCollectOptions(),
		profileOptions: NewProfileOptions(),
		logsOptions:    NewLogsOptions(),
	}
}

// AddFlags adds flags  to the specified FlagSet.
func (o *Options) AddFlags(fss *cliflag.NamedFlagSets) {
	o.systemOptions.AddFlags(fss.FlagSet("system"))
	o.collectOptions.AddFlags(fss.FlagSet("collect"))
	o.profileOptions.AddFlags(fss.FlagSet("profile"))
	o.logsOptions.AddFlags(fss.FlagSet("logs"))
}

// ApplyTo fills up config with options
func (o *Options) ApplyTo(c *config.Configuration) error {
	var errList []error

	systemConf, err := o.systemOptions.ApplyTo()
	errList = append(errList, err)
	c.System = systemConf

	errList = append(errList, o.collectOptions.ApplyTo(c.CollectConfiguration))
	errList = append(errList, o.profileOptions.ApplyTo(c.ProfileConfiguration))
	errList = append(errList, o.logsOptions.ApplyTo(c.LogConfiguration))

	return errors.NewAggregate(errList)
}

// Config returns a new configuration instance.
func (o *Options) Config() (*config.Configuration, error) {
	c := config.NewConfiguration()
	if err := o.ApplyTo(c); err != nil {
		return nil, err
	}
	return c, nil
}
