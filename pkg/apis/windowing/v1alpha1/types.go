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
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Window describes a window assignment function. Only one of the fields may be set;
// none set means the global window.
type Window struct {
	// +optional
	Fixed *FixedWindow `json:"fixed,omitempty"`
	// +optional
	Sliding *SlidingWindow `json:"sliding,omitempty"`
	// +optional
	Session *SessionWindow `json:"session,omitempty"`
}

// FixedWindow describes a fixed window
type FixedWindow struct {
	// Length is the duration of the fixed window.
	Length *metav1.Duration `json:"length,omitempty"`
	// Offset shifts the window boundaries away from the epoch.
	// +optional
	Offset *metav1.Duration `json:"offset,omitempty"`
}

// SlidingWindow describes a sliding window
type SlidingWindow struct {
	// Length is the duration of the sliding window.
	Length *metav1.Duration `json:"length,omitempty"`
	// Slide is the slide parameter that controls the frequency at which the sliding window is created.
	Slide *metav1.Duration `json:"slide,omitempty"`
	// +optional
	Offset *metav1.Duration `json:"offset,omitempty"`
}

// SessionWindow describes a session window
type SessionWindow struct {
	// Timeout is the duration of inactivity after which a session window closes.
	Timeout *metav1.Duration `json:"timeout,omitempty"`
}

// GetType returns the window type described by the spec.
func (w Window) GetType() WindowType {
	switch {
	case w.Fixed != nil:
		return FixedType
	case w.Sliding != nil:
		return SlidingType
	case w.Session != nil:
		return SessionType
	default:
		return GlobalType
	}
}

// Trigger describes a trigger tree. Count is used by afterCount, Delay by afterProcessingTime,
// and Triggers holds the sub-triggers of the composite types.
type Trigger struct {
	Type TriggerType `json:"type"`
	// +optional
	Count *int64 `json:"count,omitempty"`
	// +optional
	Delay *metav1.Duration `json:"delay,omitempty"`
	// +optional
	Triggers []Trigger `json:"triggers,omitempty"`
}

// WindowingStrategy is the serializable form of a windowing strategy.
// A nil optional field means the value was inherited from the defaults, a non-nil one means it
// was explicitly specified.
type WindowingStrategy struct {
	Window Window `json:"window"`
	// +optional
	Trigger *Trigger `json:"trigger,omitempty"`
	// +optional
	AccumulationMode *AccumulationMode `json:"accumulationMode,omitempty"`
	// +optional
	AllowedLateness *metav1.Duration `json:"allowedLateness,omitempty"`
	// +optional
	OutputTime *OutputTimeType `json:"outputTime,omitempty"`
	// +optional
	ClosingBehavior ClosingBehavior `json:"closingBehavior,omitempty"`
}

// GetAllowedLateness returns the allowed lateness, or the default when it is not specified.
func (ws WindowingStrategy) GetAllowedLateness() time.Duration {
	if ws.AllowedLateness == nil {
		return DefaultAllowedLateness
	}
	return ws.AllowedLateness.Duration
}

func (ws WindowingStrategy) GetAccumulationMode() AccumulationMode {
	if ws.AccumulationMode == nil {
		return DefaultAccumulationMode
	}
	return *ws.AccumulationMode
}

func (ws WindowingStrategy) GetOutputTime() OutputTimeType {
	if ws.OutputTime == nil {
		return DefaultOutputTime
	}
	return *ws.OutputTime
}

func (ws WindowingStrategy) GetClosingBehavior() ClosingBehavior {
	if ws.ClosingBehavior == "" {
		return DefaultClosingBehavior
	}
	return ws.ClosingBehavior
}

// MergeOver returns a copy of ws where every unset field is taken from base.
// The window is taken from base only when ws describes the global window.
func (ws WindowingStrategy) MergeOver(base WindowingStrategy) WindowingStrategy {
	merged := ws
	if ws.Window.GetType() == GlobalType {
		merged.Window = base.Window
	}
	if merged.Trigger == nil {
		merged.Trigger = base.Trigger
	}
	if merged.AccumulationMode == nil {
		merged.AccumulationMode = base.AccumulationMode
	}
	if merged.AllowedLateness == nil {
		merged.AllowedLateness = base.AllowedLateness
	}
	if merged.OutputTime == nil {
		merged.OutputTime = base.OutputTime
	}
	if merged.ClosingBehavior == "" {
		merged.ClosingBehavior = base.ClosingBehavior
	}
	return merged
}
