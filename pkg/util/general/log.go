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

package general

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// LoggingPKG decides how much of the caller path is put in front of
// each log message; it implements pflag.Value.
type LoggingPKG int

func (l *LoggingPKG) Type() string {
	return "LoggingPKG"
}

func (l *LoggingPKG) String() string {
	return fmt.Sprintf("logging-level: %v", *l)
}

func (l *LoggingPKG) Set(value string) error {
	switch value {
	case "none":
		*l = LoggingPKGNone
		return nil
	case "short":
		*l = LoggingPKGShort
		return nil
	case "full":
		*l = LoggingPKGFull
		return nil
	}

	level, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	if level < int(LoggingPKGNone) || level > int(LoggingPKGFull) {
		return fmt.Errorf("logging package level %d out of range", level)
	}
	*l = LoggingPKG(level)
	return nil
}

const (
	LoggingPKGNone LoggingPKG = iota
	LoggingPKGShort
	LoggingPKGFull
)

var (
	defaultLoggingPackage = LoggingPKGFull
	defaultLoggingMtx     sync.RWMutex
)

// SetDefaultLoggingPackage should only be called by flags,
// and should not be altered dynamically.
func SetDefaultLoggingPackage(l LoggingPKG) {
	defaultLoggingMtx.Lock()
	defer defaultLoggingMtx.Unlock()
	defaultLoggingPackage = l
}

func getDefaultLoggingPackage() LoggingPKG {
	defaultLoggingMtx.RLock()
	defer defaultLoggingMtx.RUnlock()
	return defaultLoggingPackage
}

const callDepth = 3

const skippedPackagePrefix = "github.com/kubewharf/"

// callerName returns the logging-prefix for the caller, so that
// messages never hardcode function names.
func callerName(pkg LoggingPKG) string {
	pc, _, _, ok := runtime.Caller(callDepth)
	if !ok {
		return ""
	}
	return trimCallPath(runtime.FuncForPC(pc).Name(), pkg)
}

func trimCallPath(callPath string, pkg LoggingPKG) string {
	callerNames := strings.Split(callPath, "/")
	switch pkg {
	case LoggingPKGNone:
		funcNames := strings.Split(callerNames[len(callerNames)-1], ".")
		return funcNames[len(funcNames)-1]
	case LoggingPKGShort:
		return callerNames[len(callerNames)-1]
	case LoggingPKGFull:
		return strings.TrimPrefix(callPath, skippedPackagePrefix)
	}
	return ""
}

func logging(message string, params ...interface{}) string {
	return "[" + callerName(getDefaultLoggingPackage()) + "] " + fmt.Sprintf(message, params...)
}

func InfoS(message string, params ...interface{}) {
	klog.InfoSDepth(1, logging("%s", message), params...)
}

func Infof(message string, params ...interface{}) {
	klog.InfofDepth(1, logging(message, params...))
}

func InfofV(level int, message string, params ...interface{}) {
	klog.V(klog.Level(level)).InfofDepth(1, logging(message, params...))
}

func Warningf(message string, params ...interface{}) {
	klog.WarningfDepth(1, logging(message, params...))
}

func Errorf(message string, params ...interface{}) {
	klog.ErrorfDepth(1, logging(message, params...))
}

func ErrorS(err error, message string, params ...interface{}) {
	klog.ErrorSDepth(1, err, logging("%s", message), params...)
}

// Logger carries a fixed prefix, typically the component name.
type Logger struct {
	pkg    LoggingPKG
	prefix string
}

func LoggerWithPrefix(prefix string, pkg LoggingPKG) Logger {
	if len(prefix) > 0 {
		prefix = fmt.Sprintf("%v: ", prefix)
	}
	return Logger{pkg: pkg, prefix: prefix}
}

func (l Logger) logging(message string, params ...interface{}) string {
	return "[" + l.prefix + callerName(l.pkg) + "] " + fmt.Sprintf(message, params...)
}

func (l Logger) Infof(message string, params ...interface{}) {
	klog.InfofDepth(1, l.logging(message, params...))
}

func (l Logger) InfofV(level int, message string, params ...interface{}) {
	klog.V(klog.Level(level)).InfofDepth(1, l.logging(message, params...))
}

func (l Logger) Warningf(message string, params ...interface{}) {
	klog.WarningfDepth(1, l.logging(message, params...))
}

func (l Logger) Errorf(message string, params ...interface{}) {
	klog.ErrorfDepth(1, l.logging(message, params...))
}

func (l Logger) ErrorS(err error, message string, params ...interface{}) {
	klog.ErrorSDepth(1, err, l.logging("%s", message), params...)
}
