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

package fixed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

func TestFixed_AssignWindow(t *testing.T) {

	loc, _ := time.LoadLocation("UTC")
	baseTime := time.Unix(1651129201, 0).In(loc)

	tests := []struct {
		name      string
		length    time.Duration
		offset    time.Duration
		eventTime time.Time
		want      window.IntervalWindow
	}{
		{
			name:      "minute",
			length:    time.Minute,
			eventTime: baseTime,
			want:      window.NewIntervalWindow(time.Unix(1651129200, 0), time.Unix(1651129260, 0)),
		},
		{
			name:      "hour",
			length:    time.Hour,
			eventTime: baseTime,
			want:      window.NewIntervalWindow(time.Unix(1651129200, 0), time.Unix(1651129200+3600, 0)),
		},
		{
			name:      "5_minute",
			length:    time.Minute * 5,
			eventTime: baseTime,
			want:      window.NewIntervalWindow(time.Unix(1651129200, 0), time.Unix(1651129200+300, 0)),
		},
		{
			name:      "30_second",
			length:    time.Second * 30,
			eventTime: baseTime,
			want:      window.NewIntervalWindow(time.Unix(1651129200, 0), time.Unix(1651129230, 0)),
		},
		{
			name:      "boundary_goes_right",
			length:    time.Minute,
			eventTime: time.Unix(1651129260, 0),
			want:      window.NewIntervalWindow(time.Unix(1651129260, 0), time.Unix(1651129320, 0)),
		},
		{
			name:      "offset",
			length:    time.Minute,
			offset:    10 * time.Second,
			eventTime: baseTime,
			want:      window.NewIntervalWindow(time.Unix(1651129150, 0), time.Unix(1651129210, 0)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFixed[string](tt.length).WithOffset(tt.offset)
			got := f.AssignWindows("", tt.eventTime)
			assert.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
			assert.True(t, got[0].Contains(tt.eventTime))
		})
	}
}

func TestFixed_WithOffset(t *testing.T) {
	f := NewFixed[string](time.Minute)
	assert.Equal(t, 10*time.Second, f.WithOffset(70*time.Second).Offset)
	assert.Equal(t, 50*time.Second, f.WithOffset(-10*time.Second).Offset)
	// the receiver is never modified
	assert.Equal(t, time.Duration(0), f.Offset)
}

func TestFixed_Properties(t *testing.T) {
	f := NewFixed[string](time.Minute)
	w := window.NewIntervalWindow(time.Unix(0, 0), time.Unix(60, 0))
	ts := time.Unix(5, 0)
	assert.Equal(t, ts, f.OutputTime(ts, w))
	assert.True(t, f.IsNonMerging())
	assert.Nil(t, f.MergeWindows([]window.IntervalWindow{w}))
	assert.Equal(t, window.Fixed, f.Strategy())
	assert.Equal(t, "Fixed[1m0s]", f.String())
	assert.Equal(t, "Fixed[1m0s,offset=5s]", f.WithOffset(5*time.Second).String())
}

func TestFixed_Equals(t *testing.T) {
	assert.True(t, NewFixed[string](time.Minute).Equals(NewFixed[string](time.Minute)))
	assert.False(t, NewFixed[string](time.Minute).Equals(NewFixed[string](time.Hour)))
	assert.False(t, NewFixed[string](time.Minute).Equals(NewFixed[string](time.Minute).WithOffset(time.Second)))
}

func TestFixed_Spec(t *testing.T) {
	spec := NewFixed[string](time.Minute).Spec()
	assert.Equal(t, v1alpha1.FixedType, spec.GetType())
	assert.Equal(t, time.Minute, spec.Fixed.Length.Duration)
	assert.Nil(t, spec.Fixed.Offset)

	spec = NewFixed[string](time.Minute).WithOffset(time.Second).Spec()
	assert.Equal(t, time.Second, spec.Fixed.Offset.Duration)
}

func TestNewFixed_InvalidLength(t *testing.T) {
	assert.Panics(t, func() { NewFixed[string](0) })
	assert.PanicsWithError(t, "fixed window length must be a whole number of milliseconds, got 500µs", func() {
		NewFixed[string](500 * time.Microsecond)
	})
	assert.Panics(t, func() { NewFixed[string](1500 * time.Microsecond) })
	assert.Panics(t, func() { NewFixed[string](time.Minute).WithOffset(time.Millisecond / 2) })
}

func TestFixed_MillisecondWindowsDoNotOverlap(t *testing.T) {
	f := NewFixed[string](2 * time.Millisecond)
	var prev window.IntervalWindow
	for ms := int64(0); ms < 10; ms++ {
		windows := f.AssignWindows("", time.UnixMilli(ms))
		assert.Len(t, windows, 1)
		w := windows[0]
		assert.True(t, w.Contains(time.UnixMilli(ms)))
		if ms > 0 && w != prev {
			assert.False(t, w.Intersects(prev))
			assert.Equal(t, prev.EndTime(), w.StartTime())
		}
		prev = w
	}
}
