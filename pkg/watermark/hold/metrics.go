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

package hold

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LabelStrategy is the name of the windowing strategy a holder tracks
const LabelStrategy = "strategy"

// activeHolds is the number of windows holding back the watermark
var activeHolds = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Subsystem: "watermark_hold",
	Name:      "active_holds",
	Help:      "Number of windows holding back the watermark",
}, []string{LabelStrategy})

// assignedOutputTimes is the number of element output times added to a hold
var assignedOutputTimes = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "watermark_hold",
	Name:      "assigned_total",
	Help:      "Total number of output times assigned to windows",
}, []string{LabelStrategy})

// mergedWindows is the number of windows whose holds were merged into another window
var mergedWindows = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "watermark_hold",
	Name:      "merged_windows_total",
	Help:      "Total number of windows merged into another window",
}, []string{LabelStrategy})

// expiredWindows is the number of holds released because their window expired
var expiredWindows = promauto.NewCounterVec(prometheus.CounterOpts{
	Subsystem: "watermark_hold",
	Name:      "expired_windows_total",
	Help:      "Total number of holds released after the garbage collection time of their window",
}, []string{LabelStrategy})
