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
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// error kinds returned by the telemetry readers; match them with errors.Is
// or the Is* helpers below.
var (
	// ErrIO means a file was missing or could not be opened / read.
	ErrIO = errors.New("io error")
	// ErrParse means a field count was too small or a mandatory integer was malformed.
	ErrParse = errors.New("parse error")
	// ErrNotFound means an expected marker line was absent.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means a structured line was present but malformed.
	ErrInvalidArgument = errors.New("invalid argument")
)

// kindError tags a detailed error with one of the kinds above while
// keeping the original cause reachable through Unwrap.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.err.Error()
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.err
}

// NewIOError wraps cause (usually an *os.PathError) as ErrIO.
func NewIOError(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return &kindError{kind: ErrIO, err: pkgerrors.Errorf(format, args...)}
	}
	return &kindError{kind: ErrIO, err: pkgerrors.Wrapf(cause, format, args...)}
}

func NewParseError(format string, args ...interface{}) error {
	return &kindError{kind: ErrParse, err: pkgerrors.Errorf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &kindError{kind: ErrNotFound, err: pkgerrors.Errorf(format, args...)}
}

func NewInvalidArgumentError(format string, args ...interface{}) error {
	return &kindError{kind: ErrInvalidArgument, err: pkgerrors.Errorf(format, args...)}
}

func IsIOError(err error) bool {
	return errors.Is(err, ErrIO)
}

func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsErrNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
