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

// Package strategy builds window functions from their serializable description.
package strategy

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/fixed"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/global"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/session"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/sliding"
)

// FromSpec returns the window function described by spec. The result is a
// window.WindowFn[T, window.GlobalWindow] for the global window and a
// window.WindowFn[T, window.IntervalWindow] for every other type.
func FromSpec[T any](spec v1alpha1.Window) (any, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}
	switch spec.GetType() {
	case v1alpha1.FixedType:
		f := fixed.NewFixed[T](spec.Fixed.Length.Duration)
		if spec.Fixed.Offset != nil {
			f = f.WithOffset(spec.Fixed.Offset.Duration)
		}
		return f, nil
	case v1alpha1.SlidingType:
		s := sliding.NewSliding[T](spec.Sliding.Length.Duration, spec.Sliding.Slide.Duration)
		if spec.Sliding.Offset != nil {
			s = s.WithOffset(spec.Sliding.Offset.Duration)
		}
		return s, nil
	case v1alpha1.SessionType:
		return session.NewSession[T](spec.Session.Timeout.Duration), nil
	default:
		return global.NewGlobal[T](), nil
	}
}

// Validate checks that exactly one window type is set and that its durations are usable.
func Validate(spec v1alpha1.Window) error {
	set := 0
	for _, isSet := range []bool{spec.Fixed != nil, spec.Sliding != nil, spec.Session != nil} {
		if isSet {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("only one of fixed, sliding or session window can be specified")
	}
	switch spec.GetType() {
	case v1alpha1.FixedType:
		if err := checkDuration("fixed window length", spec.Fixed.Length); err != nil {
			return err
		}
		return checkOffset("fixed window offset", spec.Fixed.Offset)
	case v1alpha1.SlidingType:
		if err := checkDuration("sliding window length", spec.Sliding.Length); err != nil {
			return err
		}
		if err := checkDuration("sliding window slide", spec.Sliding.Slide); err != nil {
			return err
		}
		return checkOffset("sliding window offset", spec.Sliding.Offset)
	case v1alpha1.SessionType:
		return checkDuration("session window timeout", spec.Session.Timeout)
	}
	return nil
}

func checkDuration(name string, d *metav1.Duration) error {
	if d == nil {
		return fmt.Errorf("%s must be positive", name)
	}
	return window.CheckDuration(name, d.Duration)
}

func checkOffset(name string, d *metav1.Duration) error {
	if d == nil {
		return nil
	}
	if d.Duration < 0 {
		return fmt.Errorf("%s can not be negative, got %v", name, d.Duration)
	}
	return window.CheckPrecision(name, d.Duration)
}
