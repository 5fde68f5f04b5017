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
	"sort"
)

// SortedWindowList is a list of distinct windows sorted by start time from lowest to highest. Windows
// with the same start time are ordered by end time. It is not safe for concurrent use.
type SortedWindowList[W Interval] struct {
	windows []W
}

// NewSortedWindowList returns an empty list with room for size windows.
func NewSortedWindowList[W Interval](size int) *SortedWindowList[W] {
	return &SortedWindowList[W]{
		windows: make([]W, 0, size),
	}
}

func less[W Interval](a, b W) bool {
	if a.StartTime().Equal(b.StartTime()) {
		return a.EndTime().Before(b.EndTime())
	}
	return a.StartTime().Before(b.StartTime())
}

// InsertIfNotPresent inserts a window to the list if not present and returns the window.
// The boolean reports whether the window was already present.
func (s *SortedWindowList[W]) InsertIfNotPresent(window W) (W, bool) {
	index := sort.Search(len(s.windows), func(i int) bool {
		return !less(s.windows[i], window)
	})

	if index < len(s.windows) && s.windows[index] == window {
		return s.windows[index], true
	}

	s.windows = append(s.windows, window)
	copy(s.windows[index+1:], s.windows[index:])
	s.windows[index] = window

	return window, false
}

// Items returns the windows in order.
func (s *SortedWindowList[W]) Items() []W {
	items := make([]W, len(s.windows))
	copy(items, s.windows)
	return items
}
