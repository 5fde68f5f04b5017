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

// Package outputtime decides the timestamp attached to the output of a window.
//
// An output time policy (Fn) assigns an output timestamp to every element of a window, combines the pending
// timestamps of the buffered elements, and merges the timestamps of windows that are merged together. The policy
// is composed with the assignment-time adjustment of a window function (see Compose), so the window function keeps
// its own timestamp skew while the policy only decides how timestamps are consolidated.
//
// Combine must be commutative and associative, and Merge must agree with Combine, because the timestamps are
// reduced incrementally in arrival order. A policy that breaks these laws yields undefined output times; CheckLaws
// can sample a policy for violations but nothing validates a policy implicitly.
package outputtime

import (
	"fmt"
	"time"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Fn is an output time policy.
type Fn interface {
	// AssignOutputTime returns the output timestamp of an element with the given timestamp in w.
	AssignOutputTime(timestamp time.Time, w window.Bounded) time.Time
	// Combine reduces two output timestamps of the same window into one.
	Combine(a, b time.Time) time.Time
	// Merge returns the output timestamp of the window w that replaces the windows holding the
	// given output timestamps.
	Merge(w window.Bounded, timestamps []time.Time) time.Time
	// DependsOnlyOnWindow returns true if the output timestamp is determined by the window alone.
	DependsOnlyOnWindow() bool
	// DependsOnlyOnEarliestInputTimestamp returns true if the output timestamp depends only on
	// the earliest input timestamp seen.
	DependsOnlyOnEarliestInputTimestamp() bool
	// Type returns the serializable name of the policy.
	Type() v1alpha1.OutputTimeType
}

// endOfWindow outputs at the end of the window.
type endOfWindow struct{}

// EndOfWindow returns the policy that outputs at the last instant of the window.
func EndOfWindow() Fn {
	return endOfWindow{}
}

func (endOfWindow) AssignOutputTime(_ time.Time, w window.Bounded) time.Time {
	return w.MaxTimestamp()
}

// Combine returns the earlier timestamp. Within a window every assigned timestamp is the same.
func (endOfWindow) Combine(a, b time.Time) time.Time {
	return earlier(a, b)
}

func (endOfWindow) Merge(w window.Bounded, _ []time.Time) time.Time {
	return w.MaxTimestamp()
}

func (endOfWindow) DependsOnlyOnWindow() bool {
	return true
}

func (endOfWindow) DependsOnlyOnEarliestInputTimestamp() bool {
	return false
}

func (endOfWindow) Type() v1alpha1.OutputTimeType {
	return v1alpha1.OutputAtEndOfWindow
}

// earliestInputTimestamp outputs at the earliest input timestamp.
type earliestInputTimestamp struct{}

// EarliestInputTimestamp returns the policy that outputs at the earliest input timestamp of the window.
func EarliestInputTimestamp() Fn {
	return earliestInputTimestamp{}
}

func (earliestInputTimestamp) AssignOutputTime(timestamp time.Time, _ window.Bounded) time.Time {
	return timestamp
}

func (earliestInputTimestamp) Combine(a, b time.Time) time.Time {
	return earlier(a, b)
}

// Merge returns the earliest timestamp, or the end of w when there is none.
func (p earliestInputTimestamp) Merge(w window.Bounded, timestamps []time.Time) time.Time {
	if len(timestamps) == 0 {
		return w.MaxTimestamp()
	}
	return CombineAll(p, timestamps)
}

func (earliestInputTimestamp) DependsOnlyOnWindow() bool {
	return false
}

func (earliestInputTimestamp) DependsOnlyOnEarliestInputTimestamp() bool {
	return true
}

func (earliestInputTimestamp) Type() v1alpha1.OutputTimeType {
	return v1alpha1.OutputAtEarliestInputTimestamp
}

// latestInputTimestamp outputs at the latest input timestamp.
type latestInputTimestamp struct{}

// LatestInputTimestamp returns the policy that outputs at the latest input timestamp of the window.
func LatestInputTimestamp() Fn {
	return latestInputTimestamp{}
}

func (latestInputTimestamp) AssignOutputTime(timestamp time.Time, _ window.Bounded) time.Time {
	return timestamp
}

func (latestInputTimestamp) Combine(a, b time.Time) time.Time {
	return later(a, b)
}

// Merge returns the latest timestamp, or window.MinTimestamp when there is none.
func (p latestInputTimestamp) Merge(_ window.Bounded, timestamps []time.Time) time.Time {
	if len(timestamps) == 0 {
		return window.MinTimestamp
	}
	return CombineAll(p, timestamps)
}

func (latestInputTimestamp) DependsOnlyOnWindow() bool {
	return false
}

func (latestInputTimestamp) DependsOnlyOnEarliestInputTimestamp() bool {
	return false
}

func (latestInputTimestamp) Type() v1alpha1.OutputTimeType {
	return v1alpha1.OutputAtLatestInputTimestamp
}

// FromType returns the built-in policy with the given name.
func FromType(t v1alpha1.OutputTimeType) (Fn, error) {
	switch t {
	case v1alpha1.OutputAtEndOfWindow:
		return EndOfWindow(), nil
	case v1alpha1.OutputAtEarliestInputTimestamp:
		return EarliestInputTimestamp(), nil
	case v1alpha1.OutputAtLatestInputTimestamp:
		return LatestInputTimestamp(), nil
	default:
		return nil, fmt.Errorf("unknown output time type %q", t)
	}
}

// CombineAll folds the timestamps with fn.Combine. It panics if timestamps is empty.
func CombineAll(fn Fn, timestamps []time.Time) time.Time {
	if len(timestamps) == 0 {
		panic("outputtime: CombineAll requires at least one timestamp")
	}
	combined := timestamps[0]
	for _, ts := range timestamps[1:] {
		combined = fn.Combine(combined, ts)
	}
	return combined
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
