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

import (
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Validate reports every invalid setting of s. A trigger other than the default on any window but the
// global window requires both the allowed lateness and the accumulation mode to be explicitly specified.
func (s *Strategy[T, W]) Validate() error {
	var errs error
	if s.allowedLateness.value < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%w, got %v", ErrNegativeAllowedLateness, s.allowedLateness.value))
	}
	if !s.mode.value.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid accumulation mode %q", s.mode.value))
	}
	if !s.closingBehavior.IsValid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid closing behavior %q", s.closingBehavior))
	}
	if s.trigger.value.IsDefault() || s.windowFn.Strategy() == window.Global {
		return errs
	}
	if !s.allowedLateness.specified {
		errs = multierr.Append(errs, fmt.Errorf("trigger %s on %s windows requires the allowed lateness to be specified", s.trigger.value, s.windowFn))
	}
	if !s.mode.specified {
		errs = multierr.Append(errs, fmt.Errorf("trigger %s on %s windows requires the accumulation mode to be specified", s.trigger.value, s.windowFn))
	}
	return errs
}

// GarbageCollectionTime returns the time after which the state of w can be dropped: the end of w plus
// the allowed lateness, never later than the end of the global window.
func (s *Strategy[T, W]) GarbageCollectionTime(w W) time.Time {
	end := w.MaxTimestamp()
	if !end.Before(window.EndOfGlobalWindow) {
		return window.EndOfGlobalWindow
	}
	gc := end.Add(s.allowedLateness.value)
	if gc.After(window.EndOfGlobalWindow) {
		return window.EndOfGlobalWindow
	}
	return gc
}

// IsLate reports whether the watermark has passed the garbage collection time of w, elements of w
// arriving now are dropped.
func (s *Strategy[T, W]) IsLate(w W, watermark time.Time) bool {
	return watermark.After(s.GarbageCollectionTime(w))
}
