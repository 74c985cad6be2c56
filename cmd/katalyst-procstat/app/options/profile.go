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
	"github.com/spf13/pflag"

	"github.com/kubewharf/katalyst-telemetry/pkg/config"
)

type ProfileOptions struct {
	CPUProfilePath  string
	HeapProfilePath string
}

func NewProfileOptions() *ProfileOptions {
	return &ProfileOptions{}
}

// AddFlags adds flags  to the specified FlagSet.
func (o *ProfileOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.CPUProfilePath, "cpu-profile", o.CPUProfilePath, "write a cpu profile of the collection to this file")
	fs.StringVar(&o.HeapProfilePath, "heap-profile", o.HeapProfilePath, "write a heap profile of the collection to this file")
}

func (o *ProfileOptions) ApplyTo(c *config.ProfileConfiguration) error {
	c.CPUProfilePath = o.CPUProfilePath
	c.HeapProfilePath = o.HeapProfilePath
	return nil
}
