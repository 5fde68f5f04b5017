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

package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/fixed"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/global"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/session"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/sliding"
)

func d(duration time.Duration) *metav1.Duration {
	return &metav1.Duration{Duration: duration}
}

func TestFromSpec(t *testing.T) {
	fns := []any{
		global.NewGlobal[string](),
		fixed.NewFixed[string](time.Minute),
		fixed.NewFixed[string](time.Minute).WithOffset(10 * time.Second),
		sliding.NewSliding[string](time.Minute, 10*time.Second),
		sliding.NewSliding[string](time.Minute, 10*time.Second).WithOffset(time.Second),
		session.NewSession[string](time.Minute),
	}
	for _, fn := range fns {
		switch want := fn.(type) {
		case window.WindowFn[string, window.GlobalWindow]:
			got, err := FromSpec[string](want.Spec())
			require.NoError(t, err)
			assert.True(t, want.Equals(got.(window.WindowFn[string, window.GlobalWindow])), want.String())
		case window.WindowFn[string, window.IntervalWindow]:
			got, err := FromSpec[string](want.Spec())
			require.NoError(t, err)
			assert.True(t, want.Equals(got.(window.WindowFn[string, window.IntervalWindow])), want.String())
		default:
			t.Fatalf("unexpected window function %T", fn)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		spec   v1alpha1.Window
		errMsg string
	}{
		{name: "global", spec: v1alpha1.Window{}},
		{name: "fixed", spec: v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{Length: d(time.Minute)}}},
		{
			name:   "two types",
			spec:   v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{Length: d(time.Minute)}, Session: &v1alpha1.SessionWindow{Timeout: d(time.Minute)}},
			errMsg: "only one of",
		},
		{name: "fixed no length", spec: v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{}}, errMsg: "fixed window length"},
		{name: "fixed negative offset", spec: v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{Length: d(time.Minute), Offset: d(-time.Second)}}, errMsg: "offset"},
		{name: "sliding no slide", spec: v1alpha1.Window{Sliding: &v1alpha1.SlidingWindow{Length: d(time.Minute)}}, errMsg: "slide must be positive"},
		{name: "sliding zero length", spec: v1alpha1.Window{Sliding: &v1alpha1.SlidingWindow{Length: d(0), Slide: d(time.Second)}}, errMsg: "length must be positive"},
		{name: "sliding negative offset", spec: v1alpha1.Window{Sliding: &v1alpha1.SlidingWindow{Length: d(time.Minute), Slide: d(time.Second), Offset: d(-time.Second)}}, errMsg: "offset"},
		{name: "session no timeout", spec: v1alpha1.Window{Session: &v1alpha1.SessionWindow{}}, errMsg: "timeout must be positive"},
		{name: "fixed sub millisecond length", spec: v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{Length: d(500 * time.Microsecond)}}, errMsg: "fixed window length must be a whole number of milliseconds"},
		{name: "fixed fractional length", spec: v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{Length: d(1500 * time.Microsecond)}}, errMsg: "whole number of milliseconds, got 1.5ms"},
		{name: "fixed fractional offset", spec: v1alpha1.Window{Fixed: &v1alpha1.FixedWindow{Length: d(time.Minute), Offset: d(time.Microsecond)}}, errMsg: "fixed window offset must be a whole number"},
		{name: "sliding fractional slide", spec: v1alpha1.Window{Sliding: &v1alpha1.SlidingWindow{Length: d(time.Minute), Slide: d(1500 * time.Microsecond)}}, errMsg: "sliding window slide must be a whole number"},
		{name: "session fractional timeout", spec: v1alpha1.Window{Session: &v1alpha1.SessionWindow{Timeout: d(time.Microsecond)}}, errMsg: "session window timeout must be a whole number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.spec)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
			_, err = FromSpec[string](tt.spec)
			assert.Error(t, err)
		})
	}
}
