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
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/numaproj/numaflow-windowing/pkg/window"
)

// CheckLaws samples fn on every pair and triple of the given timestamps and reports each violation of
// commutativity and associativity of Combine, and of the agreement between Merge and Combine into w.
// A nil error does not prove the laws hold, only that no sample broke them.
func CheckLaws(fn Fn, w window.Bounded, samples []time.Time) error {
	var errs error
	for i, a := range samples {
		for j, b := range samples {
			if ab, ba := fn.Combine(a, b), fn.Combine(b, a); !ab.Equal(ba) {
				errs = multierr.Append(errs, fmt.Errorf("combine is not commutative for samples %d and %d: %v != %v", i, j, ab, ba))
			}
			// merging the union of two buffers equals combining the merge of each buffer
			union := fn.Merge(w, []time.Time{a, b})
			parts := fn.Combine(fn.Merge(w, []time.Time{a}), fn.Merge(w, []time.Time{b}))
			if !union.Equal(parts) {
				errs = multierr.Append(errs, fmt.Errorf("merge disagrees with combine for samples %d and %d: %v != %v", i, j, union, parts))
			}
			for k, c := range samples {
				left := fn.Combine(fn.Combine(a, b), c)
				right := fn.Combine(a, fn.Combine(b, c))
				if !left.Equal(right) {
					errs = multierr.Append(errs, fmt.Errorf("combine is not associative for samples %d, %d and %d: %v != %v", i, j, k, left, right))
				}
			}
		}
	}
	return errs
}
