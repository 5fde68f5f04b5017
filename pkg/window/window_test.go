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

package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalWindow_Equality(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	start := time.Unix(1651129200, 0)
	// the same instants in a different location with a monotonic reading are the same window
	a := NewIntervalWindow(start, start.Add(time.Minute))
	b := NewIntervalWindow(start.In(loc), start.Add(time.Minute).In(loc))
	assert.True(t, a == b)

	now := time.Now()
	assert.Equal(t, NewIntervalWindow(now, now.Add(time.Second)), NewIntervalWindow(now.Round(0), now.Round(0).Add(time.Second)))
}

func TestIntervalWindow_Bounds(t *testing.T) {
	w := NewIntervalWindow(time.Unix(60, 0), time.Unix(120, 0))
	assert.Equal(t, time.UnixMilli(119999).UTC(), w.MaxTimestamp())
	assert.True(t, w.Contains(time.Unix(60, 0)))
	assert.True(t, w.Contains(time.UnixMilli(119999)))
	assert.False(t, w.Contains(time.Unix(120, 0)))
	assert.False(t, w.Contains(time.UnixMilli(59999)))
	assert.Equal(t, "[1970-01-01T00:01:00Z, 1970-01-01T00:02:00Z)", w.String())
}

func TestIntervalWindow_IntersectsAndSpan(t *testing.T) {
	a := NewIntervalWindow(time.Unix(0, 0), time.Unix(60, 0))
	b := NewIntervalWindow(time.Unix(30, 0), time.Unix(90, 0))
	c := NewIntervalWindow(time.Unix(60, 0), time.Unix(90, 0))

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	// adjacent windows do not share an instant
	assert.False(t, a.Intersects(c))

	assert.Equal(t, NewIntervalWindow(time.Unix(0, 0), time.Unix(90, 0)), a.Span(b))
	assert.Equal(t, NewIntervalWindow(time.Unix(0, 0), time.Unix(90, 0)), c.Span(a))
}

func TestGlobalWindow(t *testing.T) {
	assert.Equal(t, EndOfGlobalWindow, GlobalWindow{}.MaxTimestamp())
	assert.True(t, GlobalWindow{}.MaxTimestamp().Before(MaxTimestamp))
	assert.True(t, MinTimestamp.Before(time.Unix(0, 0)))
	assert.Equal(t, "GlobalWindow", GlobalWindow{}.String())
}

func TestStrategy_String(t *testing.T) {
	assert.Equal(t, "Fixed", Fixed.String())
	assert.Equal(t, "Sliding", Sliding.String())
	assert.Equal(t, "Session", Session.String())
	assert.Equal(t, "Global", Global.String())
	assert.Equal(t, "Unknown", Strategy(42).String())
}

func TestCheckDuration(t *testing.T) {
	assert.NoError(t, CheckDuration("length", time.Millisecond))
	assert.NoError(t, CheckDuration("length", time.Minute))
	assert.EqualError(t, CheckDuration("length", 0), "length must be positive, got 0s")
	assert.EqualError(t, CheckDuration("length", 500*time.Microsecond), "length must be a whole number of milliseconds, got 500µs")
	assert.EqualError(t, CheckDuration("length", 1500*time.Microsecond), "length must be a whole number of milliseconds, got 1.5ms")
	assert.NoError(t, CheckPrecision("offset", 0))
	assert.NoError(t, CheckPrecision("offset", -time.Second))
	assert.Error(t, CheckPrecision("offset", time.Nanosecond))
}

func TestAlignedStart(t *testing.T) {
	tests := []struct {
		name      string
		eventTime time.Time
		length    time.Duration
		offset    time.Duration
		want      time.Time
	}{
		{"minute", time.Unix(1651129201, 0), time.Minute, 0, time.Unix(1651129200, 0)},
		{"on_boundary", time.Unix(1651129200, 0), time.Minute, 0, time.Unix(1651129200, 0)},
		{"offset", time.Unix(1651129201, 0), time.Minute, 10 * time.Second, time.Unix(1651129150, 0)},
		{"before_epoch", time.Unix(-1, 0), time.Minute, 0, time.Unix(-60, 0)},
		{"sub_millisecond", time.Unix(59, 999999999), time.Minute, 0, time.Unix(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.UTC(), AlignedStart(tt.eventTime, tt.length, tt.offset))
		})
	}
}
