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

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window/outputtime"
	"github.com/numaproj/numaflow-windowing/pkg/window/trigger"
)

// options holds the explicitly specified settings passed to New. A nil field keeps the default.
type options struct {
	trigger         *trigger.Handle
	mode            *v1alpha1.AccumulationMode
	allowedLateness *time.Duration
	outputTimeFn    outputtime.Fn
	closingBehavior *v1alpha1.ClosingBehavior
}

type Option func(*options) error

// WithTrigger sets the trigger
func WithTrigger(t trigger.Handle) Option {
	return func(o *options) error {
		o.trigger = &t
		return nil
	}
}

// WithAccumulationMode sets the accumulation mode
func WithAccumulationMode(mode v1alpha1.AccumulationMode) Option {
	return func(o *options) error {
		if !mode.IsValid() {
			return fmt.Errorf("invalid accumulation mode %q", mode)
		}
		o.mode = &mode
		return nil
	}
}

// WithAllowedLateness sets the allowed lateness, it must not be negative
func WithAllowedLateness(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("%w, got %v", ErrNegativeAllowedLateness, d)
		}
		o.allowedLateness = &d
		return nil
	}
}

// WithOutputTimeFn sets the output time policy
func WithOutputTimeFn(fn outputtime.Fn) Option {
	return func(o *options) error {
		if fn == nil {
			return ErrNilOutputTimeFn
		}
		o.outputTimeFn = fn
		return nil
	}
}

// WithClosingBehavior sets the closing behavior
func WithClosingBehavior(cb v1alpha1.ClosingBehavior) Option {
	return func(o *options) error {
		if !cb.IsValid() {
			return fmt.Errorf("invalid closing behavior %q", cb)
		}
		o.closingBehavior = &cb
		return nil
	}
}
