// Copyright 2025 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nestedset

import (
	"unique"

	"github.com/buildgraph/nestedset/internal/uniquelist"
	"github.com/buildgraph/nestedset/order"
)

// New returns an immutable NestedSet with the given order, direct contents
// and transitive sub-sets. It is the building block Builder.Build calls;
// most callers should prefer a Builder, but New is useful for constructing
// a set in one line without the chaining API.
//
// New panics with *OrderMismatch if any non-empty transitive's order is
// incompatible with order, and with *NullElement if any direct element is
// nil.
func New[T comparable](ord order.Order, direct []T, transitive []NestedSet[T]) NestedSet[T] {
	for _, d := range direct {
		if isNil(d) {
			panic(&NullElement{})
		}
	}

	liveTransitive := make([]NestedSet[T], 0, len(transitive))
	for _, t := range transitive {
		if t.isDefinitelyEmpty() {
			continue
		}
		if !ord.IsCompatible(t.Order()) {
			panic(&OrderMismatch{Builder: ord, Added: t.Order()})
		}
		liveTransitive = append(liveTransitive, t)
	}

	if len(direct) == 0 {
		switch len(liveTransitive) {
		case 0:
			// Both empty: the zero NestedSet is the order's empty
			// singleton. Returning it here, rather than interning an
			// empty depSet, lets every empty set of every order share
			// the same zero-cost representation.
			return NestedSet[T]{}
		case 1:
			// Collapsing invariant: a set with no direct members and
			// exactly one transitive of the SAME order is
			// indistinguishable from that transitive, so return it
			// unchanged instead of wrapping it in a new interned value.
			// A transitive of a merely compatible but different order
			// still needs its own wrapper, since Order() must reflect
			// the order requested here.
			if liveTransitive[0].Order() == ord {
				return liveTransitive[0]
			}
		}
	}

	return NestedSet[T]{unique.Make(depSet[T]{
		order:      ord,
		direct:     uniquelist.Make(direct),
		transitive: uniquelist.Make(liveTransitive),
	})}
}

// NewAsync returns a NestedSet whose contents are resolved lazily from
// producer instead of being supplied eagerly. producer is resolved at most
// once, the first time ToList or Iterator is called on the returned set or
// on any set that embeds it as a transitive, or IsEmpty is called on the
// returned set itself. IsEmpty on an embedding set does not resolve it.
func NewAsync[T comparable](ord order.Order, producer AsyncProducer[T]) NestedSet[T] {
	return NestedSet[T]{unique.Make(depSet[T]{
		order: ord,
		async: producer,
	})}
}

// Builder accumulates direct members and transitive sub-sets of a single
// order and produces an immutable NestedSet via Build. A Builder is not
// safe for concurrent use; each goroutine should own its own Builder and
// publish only the finished NestedSet.
type Builder[T comparable] struct {
	order      order.Order
	direct     []T
	transitive []NestedSet[T]
}

// NewBuilder returns an empty Builder for the given order.
func NewBuilder[T comparable](ord order.Order) *Builder[T] {
	return &Builder[T]{order: ord}
}

// Direct appends elements to the builder's direct members, to the right of
// anything already added. It panics with *NullElement if any element is
// nil.
func (b *Builder[T]) Direct(elements ...T) *Builder[T] {
	for _, e := range elements {
		if isNil(e) {
			panic(&NullElement{})
		}
	}
	b.direct = append(b.direct, elements...)
	return b
}

// DirectSlice is equivalent to Direct(elements...) but accepts a slice
// directly, avoiding a copy for callers that already have one.
func (b *Builder[T]) DirectSlice(elements []T) *Builder[T] {
	return b.Direct(elements...)
}

// Transitive appends sub-sets to the builder, to the right of anything
// already added. An empty (including zero-valued) transitive is dropped
// silently. A non-empty transitive whose order is incompatible with the
// builder's order panics with *OrderMismatch.
func (b *Builder[T]) Transitive(sets ...NestedSet[T]) *Builder[T] {
	for _, t := range sets {
		if t.isDefinitelyEmpty() {
			continue
		}
		if !b.order.IsCompatible(t.Order()) {
			panic(&OrderMismatch{Builder: b.order, Added: t.Order()})
		}
		b.transitive = append(b.transitive, t)
	}
	return b
}

// IsEmpty reports whether neither Direct nor a non-empty Transitive has
// been added yet.
func (b *Builder[T]) IsEmpty() bool {
	return len(b.direct) == 0 && len(b.transitive) == 0
}

// Build returns the immutable NestedSet accumulated so far. The Builder
// retains its contents, so Build may be called more than once, optionally
// with further Direct/Transitive calls in between.
func (b *Builder[T]) Build() NestedSet[T] {
	return New(b.order, b.direct, b.transitive)
}
