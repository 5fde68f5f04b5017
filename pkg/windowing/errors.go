/*
Copyright 2022 The Numaproj Authors.

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

package windowing

import "errors"

var (
	// ErrNegativeAllowedLateness is returned, or panicked with, when a negative allowed lateness is supplied.
	ErrNegativeAllowedLateness = errors.New("allowed lateness can not be negative")
	// ErrNilOutputTimeFn is returned, or panicked with, when a nil output time policy is supplied.
	ErrNilOutputTimeFn = errors.New("output time policy can not be nil")
	// ErrWindowTypeMismatch is returned when a serialized window function does not produce the requested window type.
	ErrWindowTypeMismatch = errors.New("window function does not match the requested element and window types")
)
