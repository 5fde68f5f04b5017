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

// Package windowing holds the windowing strategy of a pipeline stage: the window function, the trigger, the
// accumulation mode, the allowed lateness, the output time policy and the closing behavior.
//
// A Strategy is immutable. Every With method returns a new Strategy and leaves the receiver untouched, so
// strategies can be shared between goroutines and derived concurrently without locking. Each overridable
// setting remembers whether it was explicitly specified or inherited from the defaults, which decides how
// strategies of consecutive stages are merged.
//
// The output time reconciler of a Strategy is always derived from the current window function and the
// configured output time policy. Replacing the window function re-derives it with the new function's output
// time adjustment while keeping the policy.
package windowing
