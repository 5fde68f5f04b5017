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

// Package wmb defines the watermark, the event time up to which a stage has seen every element.
package wmb

import (
	"time"
)

// Watermark is the monotonically increasing watermark of a stage. The output watermark of a stage
// never passes the earliest output time held by its open windows.
type Watermark time.Time

// InitialWatermark is the watermark before any element was seen.
var InitialWatermark = Watermark(time.UnixMilli(-1))

func (w Watermark) String() string {
	return time.Time(w).UTC().Format(time.RFC3339Nano)
}

func (w Watermark) UnixMilli() int64 {
	return time.Time(w).UnixMilli()
}

func (w Watermark) After(t time.Time) bool {
	return time.Time(w).After(t)
}

func (w Watermark) AfterWatermark(compare Watermark) bool {
	return w.After(time.Time(compare))
}

func (w Watermark) Before(t time.Time) bool {
	return time.Time(w).Before(t)
}

func (w Watermark) BeforeWatermark(compare Watermark) bool {
	return w.Before(time.Time(compare))
}

// Min returns the earlier of the two watermarks.
func Min(a, b Watermark) Watermark {
	if b.BeforeWatermark(a) {
		return b
	}
	return a
}
