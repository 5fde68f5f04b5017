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

// Package trigger describes when the panes of a window are emitted. A Handle is only a description: it is
// carried by a windowing strategy, compared, hashed and serialized, but never executed here.
package trigger

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spaolacci/murmur3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/numaproj/numaflow-windowing/pkg/apis/windowing/v1alpha1"
)

// Handle is an immutable trigger tree. The zero value is the default trigger.
type Handle struct {
	kind  v1alpha1.TriggerType
	count int64
	delay time.Duration
	subs  []Handle
}

// Default fires once the watermark passes the end of the window, and then for every late element.
func Default() Handle {
	return Handle{kind: v1alpha1.TriggerDefault}
}

// Never never fires, the window is only emitted when it expires.
func Never() Handle {
	return Handle{kind: v1alpha1.TriggerNever}
}

// AfterWatermark fires once the watermark passes the end of the window.
func AfterWatermark() Handle {
	return Handle{kind: v1alpha1.TriggerAfterWatermark}
}

// AfterProcessingTime fires delay after the first element of the pane arrives. It panics if delay is negative.
func AfterProcessingTime(delay time.Duration) Handle {
	if delay < 0 {
		panic(fmt.Sprintf("trigger: negative processing time delay %v", delay))
	}
	return Handle{kind: v1alpha1.TriggerAfterProcessingTime, delay: delay}
}

// AfterCount fires once the pane holds n elements. It panics if n < 1.
func AfterCount(n int64) Handle {
	if n < 1 {
		panic(fmt.Sprintf("trigger: element count must be at least 1, got %d", n))
	}
	return Handle{kind: v1alpha1.TriggerAfterCount, count: n}
}

// Repeatedly fires h forever.
func Repeatedly(h Handle) Handle {
	return Handle{kind: v1alpha1.TriggerRepeatedly, subs: []Handle{h}}
}

// AfterEach fires each of hs in sequence. It panics if hs is empty.
func AfterEach(hs ...Handle) Handle {
	return composite(v1alpha1.TriggerAfterEach, hs)
}

// AfterFirst fires when any of hs fires. It panics if hs is empty.
func AfterFirst(hs ...Handle) Handle {
	return composite(v1alpha1.TriggerAfterFirst, hs)
}

// AfterAll fires when all of hs have fired. It panics if hs is empty.
func AfterAll(hs ...Handle) Handle {
	return composite(v1alpha1.TriggerAfterAll, hs)
}

// OrFinally fires h until the until trigger fires, then finishes.
func OrFinally(h, until Handle) Handle {
	return Handle{kind: v1alpha1.TriggerOrFinally, subs: []Handle{h, until}}
}

func composite(kind v1alpha1.TriggerType, hs []Handle) Handle {
	if len(hs) == 0 {
		panic(fmt.Sprintf("trigger: %s requires at least one sub trigger", kind))
	}
	return Handle{kind: kind, subs: slices.Clone(hs)}
}

// Type returns the kind of the root of the tree.
func (h Handle) Type() v1alpha1.TriggerType {
	if h.kind == "" {
		return v1alpha1.TriggerDefault
	}
	return h.kind
}

// IsDefault reports whether h is the default trigger.
func (h Handle) IsDefault() bool {
	return h.Type() == v1alpha1.TriggerDefault
}

// SubTriggers returns a copy of the sub triggers of h.
func (h Handle) SubTriggers() []Handle {
	return slices.Clone(h.subs)
}

// Equals reports whether both trees have the same shape and parameters.
func (h Handle) Equals(o Handle) bool {
	if h.Type() != o.Type() || h.count != o.count || h.delay != o.delay {
		return false
	}
	return slices.EqualFunc(h.subs, o.subs, Handle.Equals)
}

// Hash is consistent with Equals.
func (h Handle) Hash() uint64 {
	return murmur3.Sum64([]byte(h.String()))
}

func (h Handle) String() string {
	var sb strings.Builder
	h.write(&sb)
	return sb.String()
}

func (h Handle) write(sb *strings.Builder) {
	sb.WriteString(h.Type().String())
	switch h.Type() {
	case v1alpha1.TriggerAfterProcessingTime:
		fmt.Fprintf(sb, "(%v)", h.delay)
	case v1alpha1.TriggerAfterCount:
		fmt.Fprintf(sb, "(%d)", h.count)
	default:
		if len(h.subs) == 0 {
			return
		}
		sb.WriteByte('(')
		for i, sub := range h.subs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sub.write(sb)
		}
		sb.WriteByte(')')
	}
}

// Spec returns the serializable form of h.
func (h Handle) Spec() v1alpha1.Trigger {
	spec := v1alpha1.Trigger{Type: h.Type()}
	switch h.Type() {
	case v1alpha1.TriggerAfterProcessingTime:
		spec.Delay = &metav1.Duration{Duration: h.delay}
	case v1alpha1.TriggerAfterCount:
		spec.Count = ptr.To(h.count)
	}
	for _, sub := range h.subs {
		spec.Triggers = append(spec.Triggers, sub.Spec())
	}
	return spec
}

// FromSpec builds the Handle described by spec.
func FromSpec(spec v1alpha1.Trigger) (Handle, error) {
	subs := make([]Handle, 0, len(spec.Triggers))
	for i, s := range spec.Triggers {
		sub, err := FromSpec(s)
		if err != nil {
			return Handle{}, fmt.Errorf("invalid sub trigger %d of %s, %w", i, spec.Type, err)
		}
		subs = append(subs, sub)
	}

	arity := func(want int) error {
		if len(subs) != want {
			return fmt.Errorf("%s trigger takes %d sub triggers, got %d", spec.Type, want, len(subs))
		}
		return nil
	}

	switch spec.Type {
	case v1alpha1.TriggerDefault, "", v1alpha1.TriggerNever, v1alpha1.TriggerAfterWatermark:
		if err := arity(0); err != nil {
			return Handle{}, err
		}
		return Handle{kind: spec.Type}, nil
	case v1alpha1.TriggerAfterProcessingTime:
		if err := arity(0); err != nil {
			return Handle{}, err
		}
		var delay time.Duration
		if spec.Delay != nil {
			delay = spec.Delay.Duration
		}
		if delay < 0 {
			return Handle{}, fmt.Errorf("afterProcessingTime delay must not be negative, got %v", delay)
		}
		return AfterProcessingTime(delay), nil
	case v1alpha1.TriggerAfterCount:
		if err := arity(0); err != nil {
			return Handle{}, err
		}
		if spec.Count == nil || *spec.Count < 1 {
			return Handle{}, fmt.Errorf("afterCount requires a count of at least 1")
		}
		return AfterCount(*spec.Count), nil
	case v1alpha1.TriggerRepeatedly:
		if err := arity(1); err != nil {
			return Handle{}, err
		}
		return Repeatedly(subs[0]), nil
	case v1alpha1.TriggerOrFinally:
		if err := arity(2); err != nil {
			return Handle{}, err
		}
		return OrFinally(subs[0], subs[1]), nil
	case v1alpha1.TriggerAfterEach, v1alpha1.TriggerAfterFirst, v1alpha1.TriggerAfterAll:
		if len(subs) == 0 {
			return Handle{}, fmt.Errorf("%s trigger requires at least one sub trigger", spec.Type)
		}
		return composite(spec.Type, subs), nil
	default:
		return Handle{}, fmt.Errorf("unknown trigger type %q", spec.Type)
	}
}
