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

package global

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

func TestGlobal_AssignWindows(t *testing.T) {
	g := NewGlobal[string]()
	for _, ts := range []time.Time{window.MinTimestamp, time.Unix(0, 0), time.Now(), window.EndOfGlobalWindow} {
		assert.Equal(t, []window.GlobalWindow{{}}, g.AssignWindows("element", ts))
	}
}

func TestGlobal_Properties(t *testing.T) {
	g := NewGlobal[string]()
	ts := time.Unix(1651129201, 0)
	assert.Equal(t, ts, g.OutputTime(ts, window.GlobalWindow{}))
	assert.True(t, g.IsNonMerging())
	assert.Nil(t, g.MergeWindows([]window.GlobalWindow{{}, {}}))
	assert.Equal(t, window.Global, g.Strategy())
	assert.Equal(t, v1alpha1.GlobalType, g.Spec().GetType())
	assert.Equal(t, "Global", g.String())
}

func TestGlobal_Equals(t *testing.T) {
	assert.True(t, NewGlobal[string]().Equals(NewGlobal[string]()))
	var other window.WindowFn[string, window.GlobalWindow] = &notGlobal{}
	assert.False(t, NewGlobal[string]().Equals(other))
}

// notGlobal assigns to the global window but is a different function.
type notGlobal struct{}

func (n *notGlobal) Strategy() window.Strategy {
	return window.Global
}

func (n *notGlobal) IsNonMerging() bool {
	return true
}

func (n *notGlobal) Spec() v1alpha1.Window {
	return v1alpha1.Window{}
}

func (n *notGlobal) String() string {
	return "NotGlobal"
}

func (n *notGlobal) AssignWindows(string, time.Time) []window.GlobalWindow {
	return []window.GlobalWindow{{}}
}

func (n *notGlobal) OutputTime(ts time.Time, _ window.GlobalWindow) time.Time {
	return ts
}

func (n *notGlobal) MergeWindows([]window.GlobalWindow) []window.MergeResult[window.GlobalWindow] {
	return nil
}

func (n *notGlobal) Equals(window.WindowFn[string, window.GlobalWindow]) bool {
	return false
}
