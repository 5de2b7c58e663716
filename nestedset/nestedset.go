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

// Package nestedset implements an immutable, shareable, recursively composed
// set designed for efficient aggregation over a build-style dependency DAG:
// a build graph node typically references the sets produced by every one of
// its dependencies, and flattening one of these sets into a final ordered,
// duplicate-free sequence (a classpath, a link line, a source list) is the
// operation everything downstream cares about.
//
// NestedSet is designed to be conceptually compatible with Bazel's depsets:
// https://bazel.build/rules/lib/builtins/depset
package nestedset

import (
	"hash/maphash"
	"reflect"
	"sync"
	"unique"

	"github.com/buildgraph/nestedset/internal/uniquelist"
	"github.com/buildgraph/nestedset/order"
)

// NestedSet is an immutable set of T, stored as a DAG of direct members and
// references to other NestedSets. It is created by a Builder or by Wrap, and
// is safe to share across goroutines without locking: a NestedSet never
// changes after it is built.
//
// A NestedSet is a unique.Handle in disguise, so it is always exactly one
// word wide and copies, comparisons and map keys are all cheap.
type NestedSet[T comparable] struct {
	handle unique.Handle[depSet[T]]
}

// depSet is the interned payload behind a NestedSet handle. unique.Make
// collapses structurally identical depSets to the same handle, which is
// what gives two NestedSets built from equal content the same identity.
type depSet[T comparable] struct {
	order      order.Order
	direct     uniquelist.List[T]
	transitive uniquelist.List[NestedSet[T]]

	// async, if non-nil, means this depSet has no eager direct/transitive
	// contents: its elements come from resolving this producer on first
	// use. It is stored directly (not wrapped) so that two depSets built
	// from the same producer reference are the same comparable value and
	// intern to the same unique.Handle; the actual sync.Once/cache for a
	// given producer lives in the resolveCells side table in async.go. A
	// depSet never has both eager contents and an async producer.
	async AsyncProducer[T]
}

// impl returns the interned payload for s. Calling impl on the zero
// NestedSet returns the zero depSet.
func (s NestedSet[T]) impl() depSet[T] {
	if s.isZero() {
		return depSet[T]{}
	}
	return s.handle.Value()
}

func (s NestedSet[T]) isZero() bool {
	var zero NestedSet[T]
	return s == zero
}

// isDefinitelyEmpty reports whether s is known to be empty without blocking
// on an async producer. An async-backed set is never reported empty here —
// only a blocking call like IsEmpty can determine that — so callers that
// use this to decide whether to drop a transitive at add-time keep a live
// async transitive around unresolved.
func (s NestedSet[T]) isDefinitelyEmpty() bool {
	if s.isZero() {
		return true
	}
	impl := s.impl()
	if impl.async != nil {
		return false
	}
	return impl.direct.IsEmpty() && impl.transitive.IsEmpty()
}

// Order returns the order s was built with. The empty set is the zero
// NestedSet, a single value shared by every order, so Order reports Stable
// for it whatever order it was built with.
func (s NestedSet[T]) Order() order.Order {
	return s.impl().order
}

// IsEmpty reports whether flattening s would produce no elements. For a
// set with eager contents this is O(1); for an async-backed set it blocks
// on the producer exactly like ToList does.
func (s NestedSet[T]) IsEmpty() bool {
	if s.isZero() {
		return true
	}
	impl := s.impl()
	if impl.async != nil {
		list, err := resolveAsync(impl.async)
		return err == nil && len(list) == 0
	}
	return impl.direct.IsEmpty() && impl.transitive.IsEmpty()
}

// ToList flattens s into an ordered, duplicate-free slice according to s's
// order. The call is idempotent and restartable: it does not mutate s, and
// calling it again re-traverses the DAG and returns an equal slice.
//
// If s (or any set transitively reachable from s) is async-backed and its
// producer fails, ToList returns an *AsyncBackingFailed wrapping the
// producer's error; subsequent calls return the same error without
// re-invoking the producer.
func (s NestedSet[T]) ToList() ([]T, error) {
	if s.isZero() {
		return nil, nil
	}

	visitedNodes := make(map[NestedSet[T]]bool)
	ord := s.Order()

	switch ord {
	case order.Link:
		raw, err := collectLink(s, visitedNodes, nil)
		if err != nil {
			return nil, err
		}
		return lastUniqueInPlace(raw), nil
	default:
		list, err := collectForwards(s, ord, visitedNodes, nil)
		if err != nil {
			return nil, err
		}
		return firstUniqueInPlace(list), nil
	}
}

// Iterator returns the same sequence as ToList, as a Go 1.23 iterator. Range
// over it stops early if the yield function returns false, but the
// underlying flattening still has to run to completion first: NestedSet
// does not support lazy, order-respecting, deduplicated streaming.
func (s NestedSet[T]) Iterator() (func(yield func(T) bool), error) {
	list, err := s.ToList()
	if err != nil {
		return nil, err
	}
	return func(yield func(T) bool) {
		for _, v := range list {
			if !yield(v) {
				return
			}
		}
	}, nil
}

// collectForwards implements Stable, Compile and NaiveLink: a single DFS
// pass where each visited node contributes, in order, either its direct
// members before its transitives (NaiveLink and Stable) or after them
// (Compile).
func collectForwards[T comparable](s NestedSet[T], ord order.Order, visited map[NestedSet[T]]bool, list []T) ([]T, error) {
	impl := s.impl()
	if impl.async != nil {
		resolved, err := resolveAsync(impl.async)
		if err != nil {
			return nil, err
		}
		return append(list, resolved...), nil
	}

	visited[s] = true

	emitDirect := func(l []T) []T { return impl.direct.AppendTo(l) }

	if ord != order.Compile {
		list = emitDirect(list)
	}

	for child := range impl.transitive.All() {
		if visited[child] {
			continue
		}
		var err error
		list, err = collectForwards(child, ord, visited, list)
		if err != nil {
			return nil, err
		}
	}

	if ord == order.Compile {
		list = emitDirect(list)
	}

	return list, nil
}

// collectLink implements the Link order: each visited node contributes its
// own direct members first, then recurses into its transitives in the
// reverse of the order they were added — the opposite traversal order from
// NaiveLink. Element deduplication is deliberately NOT done here: it
// happens once, globally, after this raw sequence is fully built (see
// NestedSet.ToList and lastUniqueInPlace), so that a value re-added deeper
// in the DAG wins the slot closest to the end of the raw sequence, and the
// surviving occurrences keep their relative order from the raw sequence.
func collectLink[T comparable](s NestedSet[T], visited map[NestedSet[T]]bool, list []T) ([]T, error) {
	impl := s.impl()
	if impl.async != nil {
		resolved, err := resolveAsync(impl.async)
		if err != nil {
			return nil, err
		}
		return append(list, resolved...), nil
	}

	visited[s] = true

	list = impl.direct.AppendTo(list)

	children := impl.transitive.ToSlice()
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		if visited[child] {
			continue
		}
		var err error
		list, err = collectLink(child, visited, list)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}

// firstUniqueInPlace returns the elements of slice with every element after
// its first occurrence removed, keeping the earliest occurrence's position.
// It reuses slice's backing array.
func firstUniqueInPlace[T comparable](slice []T) []T {
	if len(slice) > 128 {
		return firstUniqueMap(slice)
	}
	write := 0
outer:
	for read := 0; read < len(slice); read++ {
		for compare := 0; compare < write; compare++ {
			if slice[read] == slice[compare] {
				continue outer
			}
		}
		if read != write {
			slice[write] = slice[read]
		}
		write++
	}
	return slice[:write]
}

func firstUniqueMap[T comparable](slice []T) []T {
	write := 0
	seen := make(map[T]bool, len(slice))
	for read := 0; read < len(slice); read++ {
		if seen[slice[read]] {
			continue
		}
		seen[slice[read]] = true
		if read != write {
			slice[write] = slice[read]
		}
		write++
	}
	return slice[:write]
}

// lastUniqueInPlace keeps, for each distinct value in slice, only the
// occurrence closest to the end, while preserving the relative order that
// survivors had in the original slice. This implements Link order's
// "first-occurrence-from-the-end" rule: a backward pass decides which
// occurrence of each value survives, then a forward compaction pass emits
// the survivors without disturbing their original relative order.
func lastUniqueInPlace[T comparable](slice []T) []T {
	n := len(slice)
	survives := make([]bool, n)
	seen := make(map[T]bool, n)
	for read := n - 1; read >= 0; read-- {
		if seen[slice[read]] {
			continue
		}
		seen[slice[read]] = true
		survives[read] = true
	}
	write := 0
	for read := 0; read < n; read++ {
		if survives[read] {
			slice[write] = slice[read]
			write++
		}
	}
	return slice[:write]
}

// isNil reports whether v is a nil pointer, interface, channel, map, slice
// or function value. Non-pointer-like kinds (including comparable structs
// and basic types) are never nil.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

var shallowHashSeed = sync.OnceValue(maphash.MakeSeed)

// ShallowHash returns a hash consistent with shallow equality: two
// NestedSets that compare equal with == always have the same ShallowHash.
// It says nothing about a set's flattened contents.
func ShallowHash[T comparable](s NestedSet[T]) uint64 {
	return maphash.Comparable(shallowHashSeed(), s)
}

// ShallowEquals reports whether a and b are structurally identical: the
// same order and the same direct-members and transitive-references storage
// by reference, not by flattened contents. Two sets that flatten to the
// same sequence are not required to satisfy ShallowEquals.
func ShallowEquals[T comparable](a, b NestedSet[T]) bool {
	return a == b
}
