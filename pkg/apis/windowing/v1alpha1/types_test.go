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

package v1alpha1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func TestWindow_GetType(t *testing.T) {
	assert.Equal(t, GlobalType, Window{}.GetType())
	assert.Equal(t, FixedType, Window{Fixed: &FixedWindow{}}.GetType())
	assert.Equal(t, SlidingType, Window{Sliding: &SlidingWindow{}}.GetType())
	assert.Equal(t, SessionType, Window{Session: &SessionWindow{}}.GetType())
}

func TestWindowingStrategy_Getters(t *testing.T) {
	ws := WindowingStrategy{}
	assert.Equal(t, DefaultAllowedLateness, ws.GetAllowedLateness())
	assert.Equal(t, DefaultAccumulationMode, ws.GetAccumulationMode())
	assert.Equal(t, DefaultOutputTime, ws.GetOutputTime())
	assert.Equal(t, DefaultClosingBehavior, ws.GetClosingBehavior())

	ws = WindowingStrategy{
		AllowedLateness:  &metav1.Duration{Duration: 10 * time.Second},
		AccumulationMode: ptr.To(AccumulationAccumulating),
		OutputTime:       ptr.To(OutputAtLatestInputTimestamp),
		ClosingBehavior:  FireAlways,
	}
	assert.Equal(t, 10*time.Second, ws.GetAllowedLateness())
	assert.Equal(t, AccumulationAccumulating, ws.GetAccumulationMode())
	assert.Equal(t, OutputAtLatestInputTimestamp, ws.GetOutputTime())
	assert.Equal(t, FireAlways, ws.GetClosingBehavior())
}

func TestWindowingStrategy_MergeOver(t *testing.T) {
	base := WindowingStrategy{
		Window:           Window{Fixed: &FixedWindow{Length: &metav1.Duration{Duration: time.Minute}}},
		AllowedLateness:  &metav1.Duration{Duration: time.Second},
		AccumulationMode: ptr.To(AccumulationAccumulating),
	}
	ws := WindowingStrategy{
		AllowedLateness: &metav1.Duration{Duration: 5 * time.Second},
	}
	merged := ws.MergeOver(base)
	assert.Equal(t, FixedType, merged.Window.GetType())
	assert.Equal(t, 5*time.Second, merged.GetAllowedLateness())
	assert.Equal(t, AccumulationAccumulating, merged.GetAccumulationMode())
	assert.Nil(t, merged.OutputTime)
	// the receiver is left untouched
	assert.Nil(t, ws.AccumulationMode)

	session := WindowingStrategy{Window: Window{Session: &SessionWindow{Timeout: &metav1.Duration{Duration: time.Minute}}}}
	assert.Equal(t, SessionType, session.MergeOver(base).Window.GetType())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "sliding", SlidingType.String())
	assert.Equal(t, "unknownWindowType", WindowType("x").String())
	assert.Equal(t, "accumulating", AccumulationAccumulating.String())
	assert.Equal(t, "unknownAccumulationMode", AccumulationMode("x").String())
	assert.True(t, AccumulationDiscarding.IsValid())
	assert.False(t, AccumulationMode("x").IsValid())
	assert.Equal(t, "fireAlways", FireAlways.String())
	assert.False(t, ClosingBehavior("").IsValid())
	assert.Equal(t, "earliestInputTimestamp", OutputAtEarliestInputTimestamp.String())
	assert.Equal(t, "unknownOutputTimeType", OutputTimeType("x").String())
	assert.Equal(t, "orFinally", TriggerOrFinally.String())
	assert.Equal(t, "unknownTriggerType", TriggerType("x").String())
}
