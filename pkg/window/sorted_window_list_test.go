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

func iw(start, end int64) IntervalWindow {
	return NewIntervalWindow(time.Unix(start, 0), time.Unix(end, 0))
}

func TestSortedWindowList_InsertIfNotPresent(t *testing.T) {
	tests := []struct {
		name            string
		given           []IntervalWindow
		input           IntervalWindow
		expectedWindows []IntervalWindow
		isPresent       bool
	}{
		{
			name:            "FirstWindow",
			given:           []IntervalWindow{},
			input:           iw(0, 60),
			expectedWindows: []IntervalWindow{iw(0, 60)},
			isPresent:       false,
		},
		{
			name:            "late_window",
			given:           []IntervalWindow{iw(120, 180)},
			input:           iw(60, 120),
			expectedWindows: []IntervalWindow{iw(60, 120), iw(120, 180)},
			isPresent:       false,
		},
		{
			name:            "early_window",
			given:           []IntervalWindow{iw(120, 180)},
			input:           iw(240, 300),
			expectedWindows: []IntervalWindow{iw(120, 180), iw(240, 300)},
			isPresent:       false,
		},
		{
			name:            "insert_middle",
			given:           []IntervalWindow{iw(120, 180), iw(240, 300)},
			input:           iw(180, 240),
			expectedWindows: []IntervalWindow{iw(120, 180), iw(180, 240), iw(240, 300)},
			isPresent:       false,
		},
		{
			name:            "already_present",
			given:           []IntervalWindow{iw(120, 180), iw(240, 300)},
			input:           iw(240, 300),
			expectedWindows: []IntervalWindow{iw(120, 180), iw(240, 300)},
			isPresent:       true,
		},
		{
			name:            "same_start_different_end",
			given:           []IntervalWindow{iw(120, 180), iw(120, 300)},
			input:           iw(120, 240),
			expectedWindows: []IntervalWindow{iw(120, 180), iw(120, 240), iw(120, 300)},
			isPresent:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := NewSortedWindowList[IntervalWindow](len(tt.given) + 1)
			for _, w := range tt.given {
				list.InsertIfNotPresent(w)
			}
			got, isPresent := list.InsertIfNotPresent(tt.input)
			assert.Equal(t, tt.isPresent, isPresent)
			assert.Equal(t, tt.input, got)
			assert.Equal(t, tt.expectedWindows, list.Items())
		})
	}
}

func TestSortedWindowList_Items(t *testing.T) {
	list := NewSortedWindowList[IntervalWindow](0)
	assert.Empty(t, list.Items())

	list.InsertIfNotPresent(iw(60, 120))
	items := list.Items()
	items[0] = iw(0, 60)
	// the returned slice is a copy
	assert.Equal(t, []IntervalWindow{iw(60, 120)}, list.Items())
}
