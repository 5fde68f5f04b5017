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

// Package fixed implements Fixed windows. Fixed windows (sometimes called tumbling windows) are
// defined by a static window size, e.g. minutely windows or hourly windows. They are generally aligned, i.e. every
// window applies across all the data for the corresponding period of time.
package fixed

import (
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Fixed implements Fixed window.
type Fixed[T any] struct {
	// Length is the temporal length of the window.
	Length time.Duration
	// Offset moves the window boundaries away from the epoch, 0 <= Offset < Length.
	Offset time.Duration
}

var _ window.WindowFn[any, window.IntervalWindow] = (*Fixed[any])(nil)

// NewFixed returns a Fixed window function. It panics unless length is a positive whole number of
// milliseconds.
func NewFixed[T any](length time.Duration) *Fixed[T] {
	if err := window.CheckDuration("fixed window length", length); err != nil {
		panic(err)
	}
	return &Fixed[T]{
		Length: length,
	}
}

// WithOffset returns a copy of the function with the boundaries shifted by offset. Offsets are
// normalized into [0, Length). It panics if offset is not a whole number of milliseconds.
func (f *Fixed[T]) WithOffset(offset time.Duration) *Fixed[T] {
	if err := window.CheckPrecision("fixed window offset", offset); err != nil {
		panic(err)
	}
	offset %= f.Length
	if offset < 0 {
		offset += f.Length
	}
	return &Fixed[T]{
		Length: f.Length,
		Offset: offset,
	}
}

func (f *Fixed[T]) Strategy() window.Strategy {
	return window.Fixed
}

// AssignWindows assigns a window for the given eventTime.
func (f *Fixed[T]) AssignWindows(_ T, eventTime time.Time) []window.IntervalWindow {
	start := window.AlignedStart(eventTime, f.Length, f.Offset)
	end := start.Add(f.Length)

	// Assignment of windows should follow a Left inclusive and right exclusive
	// principle. Since we align down, it is guaranteed that any element
	// on the boundary will automatically fall in to the window to the right
	// of the boundary thereby satisfying the requirement.
	return []window.IntervalWindow{
		window.NewIntervalWindow(start, end),
	}
}

// OutputTime keeps the element timestamp.
func (f *Fixed[T]) OutputTime(timestamp time.Time, _ window.IntervalWindow) time.Time {
	return timestamp
}

func (f *Fixed[T]) IsNonMerging() bool {
	return true
}

func (f *Fixed[T]) MergeWindows([]window.IntervalWindow) []window.MergeResult[window.IntervalWindow] {
	return nil
}

func (f *Fixed[T]) Equals(other window.WindowFn[T, window.IntervalWindow]) bool {
	o, ok := other.(*Fixed[T])
	return ok && f.Length == o.Length && f.Offset == o.Offset
}

func (f *Fixed[T]) Spec() v1alpha1.Window {
	fw := &v1alpha1.FixedWindow{
		Length: &metav1.Duration{Duration: f.Length},
	}
	if f.Offset != 0 {
		fw.Offset = &metav1.Duration{Duration: f.Offset}
	}
	return v1alpha1.Window{Fixed: fw}
}

func (f *Fixed[T]) String() string {
	if f.Offset != 0 {
		return fmt.Sprintf("Fixed[%v,offset=%v]", f.Length, f.Offset)
	}
	return fmt.Sprintf("Fixed[%v]", f.Length)
}
