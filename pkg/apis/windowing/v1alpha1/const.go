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

import "time"

const (
	// Environment variables
	EnvDebug              = "NUMAFLOW_DEBUG"
	EnvWindowingConfigDir = "NUMAFLOW_WINDOWING_CONFIG_DIR"

	// Default windowing strategy options
	DefaultAllowedLateness  = time.Duration(0)
	DefaultAccumulationMode = AccumulationDiscarding
	DefaultClosingBehavior  = FireIfNonEmpty
	DefaultOutputTime       = OutputAtEndOfWindow
	DefaultWindowType       = GlobalType

	DefaultWindowingConfigDir  = "/etc/numaflow"
	DefaultWindowingConfigName = "windowing-config"
)

type WindowType string

const (
	GlobalType  WindowType = "global"
	FixedType   WindowType = "fixed"
	SlidingType WindowType = "sliding"
	SessionType WindowType = "session"
)

func (wt WindowType) String() string {
	switch wt {
	case GlobalType:
		return string(GlobalType)
	case FixedType:
		return string(FixedType)
	case SlidingType:
		return string(SlidingType)
	case SessionType:
		return string(SessionType)
	default:
		return "unknownWindowType"
	}
}

// AccumulationMode decides whether re-firings of a window replace or add to the prior output.
type AccumulationMode string

const (
	AccumulationDiscarding   AccumulationMode = "discarding"
	AccumulationAccumulating AccumulationMode = "accumulating"
)

func (am AccumulationMode) String() string {
	switch am {
	case AccumulationDiscarding:
		return string(AccumulationDiscarding)
	case AccumulationAccumulating:
		return string(AccumulationAccumulating)
	default:
		return "unknownAccumulationMode"
	}
}

// IsValid reports whether the mode is one of the known values.
func (am AccumulationMode) IsValid() bool {
	return am == AccumulationDiscarding || am == AccumulationAccumulating
}

// ClosingBehavior decides whether an expired window with no buffered data still emits.
type ClosingBehavior string

const (
	FireIfNonEmpty ClosingBehavior = "fireIfNonEmpty"
	FireAlways     ClosingBehavior = "fireAlways"
)

func (cb ClosingBehavior) String() string {
	switch cb {
	case FireIfNonEmpty:
		return string(FireIfNonEmpty)
	case FireAlways:
		return string(FireAlways)
	default:
		return "unknownClosingBehavior"
	}
}

func (cb ClosingBehavior) IsValid() bool {
	return cb == FireIfNonEmpty || cb == FireAlways
}

// OutputTimeType names a built-in output time policy.
type OutputTimeType string

const (
	OutputAtEndOfWindow            OutputTimeType = "endOfWindow"
	OutputAtEarliestInputTimestamp OutputTimeType = "earliestInputTimestamp"
	OutputAtLatestInputTimestamp   OutputTimeType = "latestInputTimestamp"
)

func (ot OutputTimeType) String() string {
	switch ot {
	case OutputAtEndOfWindow:
		return string(OutputAtEndOfWindow)
	case OutputAtEarliestInputTimestamp:
		return string(OutputAtEarliestInputTimestamp)
	case OutputAtLatestInputTimestamp:
		return string(OutputAtLatestInputTimestamp)
	default:
		return "unknownOutputTimeType"
	}
}

type TriggerType string

const (
	TriggerDefault             TriggerType = "default"
	TriggerNever               TriggerType = "never"
	TriggerAfterWatermark      TriggerType = "afterWatermark"
	TriggerAfterProcessingTime TriggerType = "afterProcessingTime"
	TriggerAfterCount          TriggerType = "afterCount"
	TriggerRepeatedly          TriggerType = "repeatedly"
	TriggerAfterEach           TriggerType = "afterEach"
	TriggerAfterFirst          TriggerType = "afterFirst"
	TriggerAfterAll            TriggerType = "afterAll"
	TriggerOrFinally           TriggerType = "orFinally"
)

func (tt TriggerType) String() string {
	switch tt {
	case TriggerDefault, TriggerNever, TriggerAfterWatermark, TriggerAfterProcessingTime, TriggerAfterCount,
		TriggerRepeatedly, TriggerAfterEach, TriggerAfterFirst, TriggerAfterAll, TriggerOrFinally:
		return string(tt)
	default:
		return "unknownTriggerType"
	}
}
