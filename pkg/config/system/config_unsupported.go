//go:build !linux
// +build !linux

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

package system

import (
	"os"
	"time"
)

func detectPageSize() int64 {
	return int64(os.Getpagesize())
}

// detectClockRealTimeOffset has no monotonic clock to compare against,
// so the whole wall-clock time is reported as the offset.
func detectClockRealTimeOffset() (int64, error) {
	return time.Now().UnixNano(), nil
}
