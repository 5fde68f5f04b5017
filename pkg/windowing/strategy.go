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

	"github.com/spaolacci/murmur3"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/outputtime"
	"github.com/numaproj/numaflow-windowing/pkg/window/trigger"
)

// setting is an overridable value together with whether it was explicitly specified.
type setting[V any] struct {
	value     V
	specified bool
}

func inherited[V any](v V) setting[V] {
	return setting[V]{value: v}
}

func explicit[V any](v V) setting[V] {
	return setting[V]{value: v, specified: true}
}

// Strategy is the immutable windowing strategy of elements of type T assigned to windows of type W.
type Strategy[T any, W window.Window] struct {
	windowFn        window.WindowFn[T, W]
	trigger         setting[trigger.Handle]
	mode            setting[v1alpha1.AccumulationMode]
	allowedLateness setting[time.Duration]
	outputTimeFn    setting[outputtime.Fn]
	closingBehavior v1alpha1.ClosingBehavior
	// reconciler is derived from windowFn and outputTimeFn
	reconciler *outputtime.Reconciler[W]
}

// Of returns the strategy that uses fn and the default value of every other setting, none of them
// explicitly specified.
func Of[T any, W window.Window](fn window.WindowFn[T, W]) *Strategy[T, W] {
	return build(fn,
		inherited(trigger.Default()),
		inherited(v1alpha1.DefaultAccumulationMode),
		inherited(v1alpha1.DefaultAllowedLateness),
		inherited(outputtime.EndOfWindow()),
		v1alpha1.DefaultClosingBehavior,
	)
}

// New returns the strategy that uses fn, with the settings given by opts explicitly specified.
func New[T any, W window.Window](fn window.WindowFn[T, W], opts ...Option) (*Strategy[T, W], error) {
	if fn == nil {
		return nil, fmt.Errorf("window function can not be nil")
	}
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	s := Of(fn)
	if o.trigger != nil {
		s.trigger = explicit(*o.trigger)
	}
	if o.mode != nil {
		s.mode = explicit(*o.mode)
	}
	if o.allowedLateness != nil {
		s.allowedLateness = explicit(*o.allowedLateness)
	}
	if o.outputTimeFn != nil {
		s.outputTimeFn = explicit(o.outputTimeFn)
		s.reconciler = outputtime.ComposeWindowFn(o.outputTimeFn, fn)
	}
	if o.closingBehavior != nil {
		s.closingBehavior = *o.closingBehavior
	}
	return s, nil
}

// build is the full field constructor, it derives the reconciler.
func build[T any, W window.Window](
	fn window.WindowFn[T, W],
	t setting[trigger.Handle],
	mode setting[v1alpha1.AccumulationMode],
	allowedLateness setting[time.Duration],
	outputTimeFn setting[outputtime.Fn],
	closingBehavior v1alpha1.ClosingBehavior,
) *Strategy[T, W] {
	return &Strategy[T, W]{
		windowFn:        fn,
		trigger:         t,
		mode:            mode,
		allowedLateness: allowedLateness,
		outputTimeFn:    outputTimeFn,
		closingBehavior: closingBehavior,
		reconciler:      outputtime.ComposeWindowFn(outputTimeFn.value, fn),
	}
}

func (s *Strategy[T, W]) WindowFn() window.WindowFn[T, W] {
	return s.windowFn
}

func (s *Strategy[T, W]) Trigger() trigger.Handle {
	return s.trigger.value
}

func (s *Strategy[T, W]) IsTriggerSpecified() bool {
	return s.trigger.specified
}

func (s *Strategy[T, W]) AccumulationMode() v1alpha1.AccumulationMode {
	return s.mode.value
}

func (s *Strategy[T, W]) IsModeSpecified() bool {
	return s.mode.specified
}

func (s *Strategy[T, W]) AllowedLateness() time.Duration {
	return s.allowedLateness.value
}

func (s *Strategy[T, W]) IsAllowedLatenessSpecified() bool {
	return s.allowedLateness.specified
}

// OutputTimeFn returns the output time reconciler: the configured output time policy composed with
// the output time adjustment of the window function.
func (s *Strategy[T, W]) OutputTimeFn() *outputtime.Reconciler[W] {
	return s.reconciler
}

func (s *Strategy[T, W]) IsOutputTimeFnSpecified() bool {
	return s.outputTimeFn.specified
}

func (s *Strategy[T, W]) ClosingBehavior() v1alpha1.ClosingBehavior {
	return s.closingBehavior
}

// WithTrigger returns a copy of s with the trigger explicitly set to t.
func (s *Strategy[T, W]) WithTrigger(t trigger.Handle) *Strategy[T, W] {
	return build(s.windowFn, explicit(t), s.mode, s.allowedLateness, s.outputTimeFn, s.closingBehavior)
}

// WithAccumulationMode returns a copy of s with the accumulation mode explicitly set to mode.
func (s *Strategy[T, W]) WithAccumulationMode(mode v1alpha1.AccumulationMode) *Strategy[T, W] {
	return build(s.windowFn, s.trigger, explicit(mode), s.allowedLateness, s.outputTimeFn, s.closingBehavior)
}

// WithAllowedLateness returns a copy of s with the allowed lateness explicitly set to d.
// It panics with ErrNegativeAllowedLateness if d is negative.
func (s *Strategy[T, W]) WithAllowedLateness(d time.Duration) *Strategy[T, W] {
	if d < 0 {
		panic(fmt.Errorf("%w, got %v", ErrNegativeAllowedLateness, d))
	}
	return build(s.windowFn, s.trigger, s.mode, explicit(d), s.outputTimeFn, s.closingBehavior)
}

// WithOutputTimeFn returns a copy of s with the output time policy explicitly set to fn. The reconciler
// composes fn with the output time adjustment of the current window function.
// It panics with ErrNilOutputTimeFn if fn is nil.
func (s *Strategy[T, W]) WithOutputTimeFn(fn outputtime.Fn) *Strategy[T, W] {
	if fn == nil {
		panic(ErrNilOutputTimeFn)
	}
	return build(s.windowFn, s.trigger, s.mode, s.allowedLateness, explicit(fn), s.closingBehavior)
}

// WithClosingBehavior returns a copy of s with the closing behavior set to cb.
func (s *Strategy[T, W]) WithClosingBehavior(cb v1alpha1.ClosingBehavior) *Strategy[T, W] {
	return build(s.windowFn, s.trigger, s.mode, s.allowedLateness, s.outputTimeFn, cb)
}

// WithWindowFn returns a copy of s that uses fn. The reconciler is re-derived from the current output
// time policy and the output time adjustment of fn, whether the policy was specified is kept.
func (s *Strategy[T, W]) WithWindowFn(fn window.WindowFn[T, W]) *Strategy[T, W] {
	return WithWindowFn(s, fn)
}

// WithWindowFn is Strategy.WithWindowFn for a window function of different element or window types.
// Every other setting, including whether it was specified, is carried over.
func WithWindowFn[T2 any, W2 window.Window, T1 any, W1 window.Window](s *Strategy[T1, W1], fn window.WindowFn[T2, W2]) *Strategy[T2, W2] {
	return build(fn, s.trigger, s.mode, s.allowedLateness, s.outputTimeFn, s.closingBehavior)
}

// Equal reports whether both strategies have the same window function, trigger, accumulation mode,
// allowed lateness and closing behavior, and agree on which settings were explicitly specified.
// The derived reconciler is not compared.
func (s *Strategy[T, W]) Equal(o *Strategy[T, W]) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.trigger.specified == o.trigger.specified &&
		s.mode.specified == o.mode.specified &&
		s.allowedLateness.specified == o.allowedLateness.specified &&
		s.outputTimeFn.specified == o.outputTimeFn.specified &&
		s.mode.value == o.mode.value &&
		s.allowedLateness.value == o.allowedLateness.value &&
		s.closingBehavior == o.closingBehavior &&
		s.trigger.value.Equals(o.trigger.value) &&
		s.windowFn.Equals(o.windowFn)
}

// Hash is consistent with Equal as long as window functions that are Equals have the same String.
func (s *Strategy[T, W]) Hash() uint64 {
	h := murmur3.New64()
	_, _ = fmt.Fprintf(h, "%t|%t|%t|%t|%s|%d|%s|%s|%s",
		s.trigger.specified, s.mode.specified, s.allowedLateness.specified, s.outputTimeFn.specified,
		s.mode.value, s.allowedLateness.value, s.closingBehavior, s.trigger.value, s.windowFn)
	return h.Sum64()
}

func (s *Strategy[T, W]) String() string {
	return fmt.Sprintf("Strategy{windowFn=%s, trigger=%s, accumulationMode=%s, allowedLateness=%v, outputTime=%s, closingBehavior=%s}",
		s.windowFn, describe(s.trigger), describe(s.mode), describe(s.allowedLateness), s.reconciler, s.closingBehavior)
}

// describe marks explicitly specified values with a trailing '*'.
func describe[V any](v setting[V]) string {
	if v.specified {
		return fmt.Sprintf("%v*", v.value)
	}
	return fmt.Sprintf("%v", v.value)
}
