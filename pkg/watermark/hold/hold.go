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

// Package hold tracks the output time holds of open windows. Each window holds the watermark back to the
// output time of the elements buffered in it, as decided by the output time reconciler of the windowing
// strategy: element output times are assigned and combined as they arrive, and merged when windows merge.
package hold

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/numaproj/numaflow-windowing/pkg/shared/logging"
	"github.com/numaproj/numaflow-windowing/pkg/watermark/wmb"
	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/windowing"
)

// Holder keeps one pending output time per open window. It is safe for concurrent use.
type Holder[T any, W window.Window] struct {
	name     string
	strategy *windowing.Strategy[T, W]
	lock     sync.RWMutex
	holds    map[W]time.Time
	log      *zap.SugaredLogger
}

// NewHolder returns an empty Holder for the given strategy. The name labels the metrics of the holder.
func NewHolder[T any, W window.Window](ctx context.Context, name string, strategy *windowing.Strategy[T, W]) *Holder[T, W] {
	return &Holder[T, W]{
		name:     name,
		strategy: strategy,
		holds:    make(map[W]time.Time),
		log:      logging.FromContext(ctx).With("strategy", name),
	}
}

// Add adds the output time of an element with the given timestamp to the hold of w and returns the new hold.
func (h *Holder[T, W]) Add(timestamp time.Time, w W) time.Time {
	r := h.strategy.OutputTimeFn()

	h.lock.Lock()
	defer h.lock.Unlock()

	assignedOutputTimes.WithLabelValues(h.name).Inc()
	existing, ok := h.holds[w]
	switch {
	case !ok:
		h.holds[w] = r.AssignOutputTime(timestamp, w)
		activeHolds.WithLabelValues(h.name).Inc()
	case r.DependsOnlyOnWindow():
		// every element of the window has the same output time
	default:
		h.holds[w] = r.Combine(existing, r.AssignOutputTime(timestamp, w))
	}
	return h.holds[w]
}

// Merge moves the holds of the from windows to the window they were merged into and returns the hold of
// that window. The boolean is false when none of the windows held anything.
func (h *Holder[T, W]) Merge(into W, from []W) (time.Time, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	pending := make([]time.Time, 0, len(from)+1)
	if ts, ok := h.holds[into]; ok {
		pending = append(pending, ts)
		delete(h.holds, into)
	}
	merged := 0
	for _, w := range from {
		if w == into {
			continue
		}
		if ts, ok := h.holds[w]; ok {
			pending = append(pending, ts)
			delete(h.holds, w)
			merged++
		}
	}
	activeHolds.WithLabelValues(h.name).Sub(float64(len(pending)))
	if len(pending) == 0 {
		return time.Time{}, false
	}

	hold := h.strategy.OutputTimeFn().Merge(into, pending)
	h.holds[into] = hold
	activeHolds.WithLabelValues(h.name).Inc()
	mergedWindows.WithLabelValues(h.name).Add(float64(merged))
	h.log.Debugw("Merged window holds", zap.Any("into", into), zap.Int("windows", merged), zap.Time("hold", hold))
	return hold, true
}

// Get returns the hold of w.
func (h *Holder[T, W]) Get(w W) (time.Time, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	ts, ok := h.holds[w]
	return ts, ok
}

// Release drops the hold of w, typically after its pane was emitted, and returns it.
func (h *Holder[T, W]) Release(w W) (time.Time, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()
	ts, ok := h.holds[w]
	if ok {
		delete(h.holds, w)
		activeHolds.WithLabelValues(h.name).Dec()
	}
	return ts, ok
}

// Hold returns the earliest pending output time, the watermark can not advance past it.
// The boolean is false when no window holds anything.
func (h *Holder[T, W]) Hold() (wmb.Watermark, bool) {
	h.lock.RLock()
	defer h.lock.RUnlock()
	if len(h.holds) == 0 {
		return wmb.Watermark{}, false
	}
	var earliest time.Time
	first := true
	for _, ts := range h.holds {
		if first || ts.Before(earliest) {
			earliest = ts
			first = false
		}
	}
	return wmb.Watermark(earliest), true
}

// OutputWatermark returns the input watermark held back to the earliest pending output time.
// Without any hold the input watermark passes through.
func (h *Holder[T, W]) OutputWatermark(input wmb.Watermark) wmb.Watermark {
	hold, ok := h.Hold()
	if !ok {
		return input
	}
	return wmb.Min(input, hold)
}

// Windows returns the windows with a hold, ordered by their end.
func (h *Holder[T, W]) Windows() []W {
	h.lock.RLock()
	defer h.lock.RUnlock()
	windows := make([]W, 0, len(h.holds))
	for w := range h.holds {
		windows = append(windows, w)
	}
	sortByEnd(windows)
	return windows
}

// Len returns the number of windows with a hold.
func (h *Holder[T, W]) Len() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.holds)
}

// Expire releases the holds of the windows that are late at the given watermark, and returns those
// windows ordered by their end.
func (h *Holder[T, W]) Expire(watermark wmb.Watermark) []W {
	h.lock.Lock()
	defer h.lock.Unlock()

	var expired []W
	for w := range h.holds {
		if h.strategy.IsLate(w, time.Time(watermark)) {
			expired = append(expired, w)
		}
	}
	for _, w := range expired {
		delete(h.holds, w)
	}
	sortByEnd(expired)

	if len(expired) > 0 {
		activeHolds.WithLabelValues(h.name).Sub(float64(len(expired)))
		expiredWindows.WithLabelValues(h.name).Add(float64(len(expired)))
		h.log.Infow("Expired window holds", zap.Int("windows", len(expired)), zap.String("watermark", watermark.String()))
	}
	return expired
}

func sortByEnd[W window.Window](windows []W) {
	slices.SortFunc(windows, func(a, b W) int {
		return a.MaxTimestamp().Compare(b.MaxTimestamp())
	})
}
