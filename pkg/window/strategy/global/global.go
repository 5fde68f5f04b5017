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

// Package global implements the Global window. Every element is assigned to the single GlobalWindow, which
// closes only at window.EndOfGlobalWindow. It is the window function of the default windowing strategy.
package global

import (
	"time"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// Global implements the global window.
type Global[T any] struct{}

var _ window.WindowFn[any, window.GlobalWindow] = (*Global[any])(nil)

// NewGlobal returns the global window function.
func NewGlobal[T any]() *Global[T] {
	return &Global[T]{}
}

func (g *Global[T]) Strategy() window.Strategy {
	return window.Global
}

// AssignWindows assigns every element to the global window.
func (g *Global[T]) AssignWindows(T, time.Time) []window.GlobalWindow {
	return []window.GlobalWindow{{}}
}

// OutputTime keeps the element timestamp.
func (g *Global[T]) OutputTime(timestamp time.Time, _ window.GlobalWindow) time.Time {
	return timestamp
}

func (g *Global[T]) IsNonMerging() bool {
	return true
}

func (g *Global[T]) MergeWindows([]window.GlobalWindow) []window.MergeResult[window.GlobalWindow] {
	return nil
}

func (g *Global[T]) Equals(other window.WindowFn[T, window.GlobalWindow]) bool {
	_, ok := other.(*Global[T])
	return ok
}

func (g *Global[T]) Spec() v1alpha1.Window {
	return v1alpha1.Window{}
}

func (g *Global[T]) String() string {
	return "Global"
}
