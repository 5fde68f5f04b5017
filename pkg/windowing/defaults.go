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

package windowing

import (
	"sync"

	"github.com/numaproj/numaflow-windowing/pkg/window"
	"github.com/numaproj/numaflow-windowing/pkg/window/strategy/global"
)

var globalDefault = sync.OnceValue(func() *Strategy[any, window.GlobalWindow] {
	return Of[any, window.GlobalWindow](global.NewGlobal[any]())
})

// GlobalDefault returns the strategy used when no windowing is requested: the global window, the default
// trigger, discarding accumulation, no allowed lateness, output at the end of the window and firing only
// non-empty panes. It is built once and shared.
func GlobalDefault() *Strategy[any, window.GlobalWindow] {
	return globalDefault()
}
