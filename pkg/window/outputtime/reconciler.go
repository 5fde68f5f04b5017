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

package outputtime

import (
	"time"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Adjuster moves the output timestamp of an element within a window, see window.WindowFn.OutputTime.
type Adjuster[W window.Window] func(timestamp time.Time, w W) time.Time

// Reconciler is an output time policy composed with the assignment-time adjustment of a window function.
//
//   - AssignOutputTime adjusts the element timestamp, then passes the single adjusted timestamp
//     through the policy's Merge.
//   - When multiple elements are buffered for output, their output timestamps are reduced with Combine.
//   - When windows merge, the output timestamp of the result is computed with Merge.
//
// A Reconciler holds no state, it is safe for concurrent use.
type Reconciler[W window.Window] struct {
	base   Fn
	adjust Adjuster[W]
}

// Compose returns the Reconciler that assigns output times with adjust and consolidates them with base.
func Compose[W window.Window](base Fn, adjust Adjuster[W]) *Reconciler[W] {
	return &Reconciler[W]{
		base:   base,
		adjust: adjust,
	}
}

// ComposeWindowFn composes base with the OutputTime adjustment of fn.
func ComposeWindowFn[T any, W window.Window](base Fn, fn window.WindowFn[T, W]) *Reconciler[W] {
	return Compose[W](base, fn.OutputTime)
}

// AssignOutputTime returns the output timestamp of an element with the given input timestamp in w.
func (r *Reconciler[W]) AssignOutputTime(timestamp time.Time, w W) time.Time {
	return r.base.Merge(w, []time.Time{r.adjust(timestamp, w)})
}

// Combine reduces two output timestamps of the same window into one.
func (r *Reconciler[W]) Combine(a, b time.Time) time.Time {
	return r.base.Combine(a, b)
}

// CombineAll reduces the output timestamps of the same window into one.
func (r *Reconciler[W]) CombineAll(timestamps []time.Time) time.Time {
	return CombineAll(r.base, timestamps)
}

// Merge returns the output timestamp of newWindow from the output timestamps of the windows merged into it.
func (r *Reconciler[W]) Merge(newWindow W, timestamps []time.Time) time.Time {
	return r.base.Merge(newWindow, timestamps)
}

func (r *Reconciler[W]) DependsOnlyOnWindow() bool {
	return r.base.DependsOnlyOnWindow()
}

func (r *Reconciler[W]) DependsOnlyOnEarliestInputTimestamp() bool {
	return r.base.DependsOnlyOnEarliestInputTimestamp()
}

// Base returns the policy used to combine and merge timestamps.
func (r *Reconciler[W]) Base() Fn {
	return r.base
}

func (r *Reconciler[W]) Type() v1alpha1.OutputTimeType {
	return r.base.Type()
}

func (r *Reconciler[W]) String() string {
	return r.base.Type().String()
}
