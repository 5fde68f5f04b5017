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

// Package session implements Session windows. A session window holds the elements of a key that arrive
// within Timeout of each other: every element opens the window [eventTime, eventTime+Timeout), and overlapping
// windows are merged into one. Session windows are unaligned, the boundaries depend on the data.
package session

import (
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Session implements session windows.
type Session[T any] struct {
	// Timeout is the gap of inactivity that closes a session.
	Timeout time.Duration
}

var _ window.WindowFn[any, window.IntervalWindow] = (*Session[any])(nil)

// NewSession returns a Session window function. It panics unless timeout is a positive whole number
// of milliseconds.
func NewSession[T any](timeout time.Duration) *Session[T] {
	if err := window.CheckDuration("session window timeout", timeout); err != nil {
		panic(err)
	}
	return &Session[T]{
		Timeout: timeout,
	}
}

func (s *Session[T]) Strategy() window.Strategy {
	return window.Session
}

// AssignWindows opens a new proto-session for the element, merging takes care of joining it with
// the existing sessions.
func (s *Session[T]) AssignWindows(_ T, eventTime time.Time) []window.IntervalWindow {
	return []window.IntervalWindow{
		window.NewIntervalWindow(eventTime, eventTime.Add(s.Timeout)),
	}
}

// OutputTime keeps the element timestamp.
func (s *Session[T]) OutputTime(timestamp time.Time, _ window.IntervalWindow) time.Time {
	return timestamp
}

func (s *Session[T]) IsNonMerging() bool {
	return false
}

// MergeWindows merges every group of overlapping windows into the window that spans the group.
// Windows that only touch at the boundary are not merged. Groups of one window are not reported.
func (s *Session[T]) MergeWindows(active []window.IntervalWindow) []window.MergeResult[window.IntervalWindow] {
	if len(active) < 2 {
		return nil
	}

	sorted := window.NewSortedWindowList[window.IntervalWindow](len(active))
	for _, w := range active {
		sorted.InsertIfNotPresent(w)
	}

	var (
		merges  []window.MergeResult[window.IntervalWindow]
		current []window.IntervalWindow
		span    window.IntervalWindow
	)
	flush := func() {
		if len(current) > 1 {
			merges = append(merges, window.MergeResult[window.IntervalWindow]{From: current, To: span})
		}
	}
	for _, w := range sorted.Items() {
		if len(current) > 0 && span.Intersects(w) {
			current = append(current, w)
			span = span.Span(w)
			continue
		}
		flush()
		current = []window.IntervalWindow{w}
		span = w
	}
	flush()

	return merges
}

func (s *Session[T]) Equals(other window.WindowFn[T, window.IntervalWindow]) bool {
	o, ok := other.(*Session[T])
	return ok && s.Timeout == o.Timeout
}

func (s *Session[T]) Spec() v1alpha1.Window {
	return v1alpha1.Window{
		Session: &v1alpha1.SessionWindow{
			Timeout: &metav1.Duration{Duration: s.Timeout},
		},
	}
}

func (s *Session[T]) String() string {
	return fmt.Sprintf("Session[%v]", s.Timeout)
}
