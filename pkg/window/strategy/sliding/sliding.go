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

// Package sliding implements Sliding windows. Sliding windows are defined by a static window size
// e.g. minutely windows or hourly windows and a fixed "slide". This is the duration by which the boundaries
// of the windows move once every <slide> duration.
package sliding

import (
	"fmt"
	"slices"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Sliding implements sliding windows
type Sliding[T any] struct {
	// Length is the duration of the window
	Length time.Duration
	// offset between successive windows.
	// successive windows are phased out by this duration.
	Slide time.Duration
	// Offset moves the window boundaries away from the epoch, 0 <= Offset < Slide.
	Offset time.Duration
}

var _ window.WindowFn[any, window.IntervalWindow] = (*Sliding[any])(nil)

// NewSliding returns a Sliding window function. It panics unless length and slide are positive whole
// numbers of milliseconds.
func NewSliding[T any](length time.Duration, slide time.Duration) *Sliding[T] {
	if err := window.CheckDuration("sliding window length", length); err != nil {
		panic(err)
	}
	if err := window.CheckDuration("sliding window slide", slide); err != nil {
		panic(err)
	}
	return &Sliding[T]{
		Length: length,
		Slide:  slide,
	}
}

// WithOffset returns a copy of the function with the boundaries shifted by offset. Offsets are
// normalized into [0, Slide). It panics if offset is not a whole number of milliseconds.
func (s *Sliding[T]) WithOffset(offset time.Duration) *Sliding[T] {
	if err := window.CheckPrecision("sliding window offset", offset); err != nil {
		panic(err)
	}
	offset %= s.Slide
	if offset < 0 {
		offset += s.Slide
	}
	return &Sliding[T]{
		Length: s.Length,
		Slide:  s.Slide,
		Offset: offset,
	}
}

func (s *Sliding[T]) Strategy() window.Strategy {
	return window.Sliding
}

// AssignWindows returns a set of windows that contain the element based on event time, ordered by
// start time.
func (s *Sliding[T]) AssignWindows(_ T, eventTime time.Time) []window.IntervalWindow {
	windows := make([]window.IntervalWindow, 0, s.Length/s.Slide+1)

	// use the highest integer multiple of slide length which is less than the eventTime
	// as the start time for the window. For example if the eventTime is 810 and slide
	// length is 70, use 770 as the startTime of the window. In that way we can be guarantee
	// consistency while assigning the messages to the windows.
	startTime := window.AlignedStart(eventTime, s.Slide, s.Offset)
	endTime := startTime.Add(s.Length)

	// startTime and endTime will be the largest timestamp window for the given eventTime,
	// using that we can create other windows by subtracting the slide length

	// since there is overlap at the boundaries
	// we attribute the element to the window to the right (higher)
	// of the boundary
	// left inclusive and right exclusive
	// so given windows 500-600 and 600-700 and the event time is 600
	// we will add the element to 600-700 window and not to the 500-600 window.
	for !startTime.After(eventTime) && endTime.After(eventTime) {
		windows = append(windows, window.NewIntervalWindow(startTime, endTime))
		startTime = startTime.Add(-s.Slide)
		endTime = endTime.Add(-s.Slide)
	}

	slices.Reverse(windows)
	return windows
}

// OutputTime moves the output timestamp of an element to after the end of the prior overlapping
// window, so an element in many windows does not hold the watermark for the earlier windows of the
// next window.
func (s *Sliding[T]) OutputTime(timestamp time.Time, w window.IntervalWindow) time.Time {
	startOfLastSegment := w.MaxTimestamp().Add(-s.Slide)
	if startOfLastSegment.Before(timestamp) {
		return timestamp
	}
	return startOfLastSegment.Add(time.Millisecond)
}

func (s *Sliding[T]) IsNonMerging() bool {
	return true
}

func (s *Sliding[T]) MergeWindows([]window.IntervalWindow) []window.MergeResult[window.IntervalWindow] {
	return nil
}

func (s *Sliding[T]) Equals(other window.WindowFn[T, window.IntervalWindow]) bool {
	o, ok := other.(*Sliding[T])
	return ok && s.Length == o.Length && s.Slide == o.Slide && s.Offset == o.Offset
}

func (s *Sliding[T]) Spec() v1alpha1.Window {
	sw := &v1alpha1.SlidingWindow{
		Length: &metav1.Duration{Duration: s.Length},
		Slide:  &metav1.Duration{Duration: s.Slide},
	}
	if s.Offset != 0 {
		sw.Offset = &metav1.Duration{Duration: s.Offset}
	}
	return v1alpha1.Window{Sliding: sw}
}

func (s *Sliding[T]) String() string {
	if s.Offset != 0 {
		return fmt.Sprintf("Sliding[%v@%v,offset=%v]", s.Length, s.Slide, s.Offset)
	}
	return fmt.Sprintf("Sliding[%v@%v]", s.Length, s.Slide)
}
