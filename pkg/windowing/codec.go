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

	"github.com/goccy/go-json"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/outputtime"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy"
	"github.com/numaproj/numaflow-windowing/pkg/window/trigger"
)

// Spec returns the serializable form of s. Only explicitly specified settings are set, so FromSpec
// restores which settings were specified.
func (s *Strategy[T, W]) Spec() v1alpha1.WindowingStrategy {
	spec := v1alpha1.WindowingStrategy{
		Window:          s.windowFn.Spec(),
		ClosingBehavior: s.closingBehavior,
	}
	if s.trigger.specified {
		spec.Trigger = ptr.To(s.trigger.value.Spec())
	}
	if s.mode.specified {
		spec.AccumulationMode = ptr.To(s.mode.value)
	}
	if s.allowedLateness.specified {
		spec.AllowedLateness = &metav1.Duration{Duration: s.allowedLateness.value}
	}
	if s.outputTimeFn.specified {
		spec.OutputTime = ptr.To(s.outputTimeFn.value.Type())
	}
	return spec
}

// FromSpec builds the strategy described by spec. It returns ErrWindowTypeMismatch when the window
// described by spec does not assign elements of type T to windows of type W.
func FromSpec[T any, W window.Window](spec v1alpha1.WindowingStrategy) (*Strategy[T, W], error) {
	built, err := strategy.FromSpec[T](spec.Window)
	if err != nil {
		return nil, fmt.Errorf("invalid window, %w", err)
	}
	fn, ok := built.(window.WindowFn[T, W])
	if !ok {
		return nil, fmt.Errorf("%w: %s window", ErrWindowTypeMismatch, spec.Window.GetType())
	}

	opts := []Option{WithClosingBehavior(spec.GetClosingBehavior())}
	if spec.Trigger != nil {
		t, err := trigger.FromSpec(*spec.Trigger)
		if err != nil {
			return nil, fmt.Errorf("invalid trigger, %w", err)
		}
		opts = append(opts, WithTrigger(t))
	}
	if spec.AccumulationMode != nil {
		opts = append(opts, WithAccumulationMode(*spec.AccumulationMode))
	}
	if spec.AllowedLateness != nil {
		opts = append(opts, WithAllowedLateness(spec.AllowedLateness.Duration))
	}
	if spec.OutputTime != nil {
		otf, err := outputtime.FromType(*spec.OutputTime)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOutputTimeFn(otf))
	}
	return New(fn, opts...)
}

// Encode serializes s to JSON.
func Encode[T any, W window.Window](s *Strategy[T, W]) ([]byte, error) {
	return json.Marshal(s.Spec())
}

// Decode deserializes a strategy encoded with Encode.
func Decode[T any, W window.Window](data []byte) (*Strategy[T, W], error) {
	var spec v1alpha1.WindowingStrategy
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to decode windowing strategy, %w", err)
	}
	return FromSpec[T, W](spec)
}
