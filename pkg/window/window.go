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
	"fmt"
	"math"
	"time"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
)

var (
	// MinTimestamp is the smallest timestamp an element may carry.
	MinTimestamp = time.UnixMilli(math.MinInt64 / 1000).UTC()
	// MaxTimestamp is the largest timestamp an element may carry.
	MaxTimestamp = time.UnixMilli(math.MaxInt64 / 1000).UTC()
	// EndOfGlobalWindow leaves a day between the global window and MaxTimestamp, so the
	// global window can close before the final watermark.
	EndOfGlobalWindow = MaxTimestamp.Add(-24 * time.Hour)
)

// Bounded is a window viewed only through its end instant.
type Bounded interface {
	// MaxTimestamp returns the largest timestamp that belongs to the window.
	MaxTimestamp() time.Time
}

// Window is the constraint satisfied by every window type. Windows are compared with == and ordered
// by MaxTimestamp.
type Window interface {
	comparable
	Bounded
}

// Interval is a window with a start time, used by the sorted window list.
type Interval interface {
	comparable
	StartTime() time.Time
	EndTime() time.Time
}

// GlobalWindow is the single window that holds every element.
type GlobalWindow struct{}

func (GlobalWindow) MaxTimestamp() time.Time {
	return EndOfGlobalWindow
}

func (GlobalWindow) String() string {
	return "GlobalWindow"
}

// IntervalWindow is the half-open interval [start, end).
// Both bounds are stored in UTC without a monotonic clock reading so that == compares the instants.
type IntervalWindow struct {
	start time.Time
	end   time.Time
}

// NewIntervalWindow returns the window [start, end).
func NewIntervalWindow(start, end time.Time) IntervalWindow {
	return IntervalWindow{
		start: normalize(start),
		end:   normalize(end),
	}
}

func normalize(t time.Time) time.Time {
	return t.Round(0).UTC()
}

func (w IntervalWindow) StartTime() time.Time {
	return w.start
}

func (w IntervalWindow) EndTime() time.Time {
	return w.end
}

// MaxTimestamp returns the last millisecond of the window.
func (w IntervalWindow) MaxTimestamp() time.Time {
	return w.end.Add(-time.Millisecond)
}

// Contains reports whether t falls in [start, end).
func (w IntervalWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// Intersects reports whether the two windows share at least one instant.
func (w IntervalWindow) Intersects(o IntervalWindow) bool {
	return w.start.Before(o.end) && o.start.Before(w.end)
}

// Span returns the smallest window that covers both windows.
func (w IntervalWindow) Span(o IntervalWindow) IntervalWindow {
	span := w
	// expand the start and end to accommodate the other window
	if o.start.Before(span.start) {
		span.start = o.start
	}
	if o.end.After(span.end) {
		span.end = o.end
	}
	return span
}

func (w IntervalWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format(time.RFC3339Nano), w.end.Format(time.RFC3339Nano))
}

// CheckDuration returns an error unless d is a positive whole number of milliseconds. It guards
// window lengths, slides and session timeouts.
func CheckDuration(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, d)
	}
	return CheckPrecision(name, d)
}

// CheckPrecision returns an error unless d is a whole number of milliseconds, the precision of
// window boundaries.
func CheckPrecision(name string, d time.Duration) error {
	if d%time.Millisecond != 0 {
		return fmt.Errorf("%s must be a whole number of milliseconds, got %v", name, d)
	}
	return nil
}

// AlignedStart returns the start of the window of the given length, aligned to offset from the
// epoch, that contains t. Boundaries have millisecond precision, length must pass CheckDuration.
func AlignedStart(t time.Time, length, offset time.Duration) time.Time {
	ms := t.UnixMilli()
	mod := (ms - offset.Milliseconds()) % length.Milliseconds()
	if mod < 0 {
		mod += length.Milliseconds()
	}
	return time.UnixMilli(ms - mod).UTC()
}

// MergeResult describes a set of windows that were merged into a single window.
type MergeResult[W Window] struct {
	// From holds the windows that are replaced
	From []W
	// To is the window they are replaced with
	To W
}

// WindowFn assigns elements to windows.
type WindowFn[T any, W Window] interface {
	// Strategy returns the window strategy
	Strategy() Strategy
	// AssignWindows returns the windows the element with the given timestamp belongs to.
	AssignWindows(element T, timestamp time.Time) []W
	// OutputTime adjusts the output timestamp of an element within the given window, before
	// it is handed to the output time policy.
	OutputTime(timestamp time.Time, w W) time.Time
	// IsNonMerging returns true if the function never merges windows.
	IsNonMerging() bool
	// MergeWindows returns the merges to perform on the given active windows. Non merging
	// functions return nil.
	MergeWindows(active []W) []MergeResult[W]
	// Equals reports whether the two functions assign and merge windows the same way.
	Equals(other WindowFn[T, W]) bool
	// Spec returns the serializable description of the function.
	Spec() v1alpha1.Window
	String() string
}

// Strategy represents the windowing strategy
type Strategy int

const (
	Fixed Strategy = iota
	Sliding
	Session
	Global
)

func (s Strategy) String() string {
	switch s {
	case Fixed:
		return "Fixed"
	case Sliding:
		return "Sliding"
	case Session:
		return "Session"
	case Global:
		return "Global"
	default:
		return "Unknown"
	}
}
