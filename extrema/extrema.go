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

// Package extrema implements a bounded top-k aggregator: it retains the k
// most extreme values seen so far under a caller-supplied comparator,
// without ever sorting the full stream of candidates it has been fed.
package extrema

import (
	"cmp"
	"container/heap"
)

// Comparator reports the relative extremeness of a and b: a negative
// result means a is more extreme than b, a positive result means b is more
// extreme, and zero means they tie (ties may be broken in any
// stable-by-insertion fashion).
type Comparator[T any] func(a, b T) int

// Extrema retains the k most extreme values aggregated so far, as judged
// by a Comparator. It is not safe for concurrent use.
type Extrema[T any] struct {
	k    int
	cmp  Comparator[T]
	heap extremaHeap[T]
}

// New returns an Extrema that retains at most k values, ranked by cmp.
// New panics if k is not positive.
func New[T any](k int, cmp Comparator[T]) *Extrema[T] {
	if k <= 0 {
		panic("extrema: k must be positive")
	}
	return &Extrema[T]{k: k, cmp: cmp}
}

// Max returns an Extrema over an ordered type that retains the k largest
// values seen.
func Max[T cmp.Ordered](k int) *Extrema[T] {
	return New[T](k, func(a, b T) int { return cmp.Compare(b, a) })
}

// Min returns an Extrema over an ordered type that retains the k smallest
// values seen.
func Min[T cmp.Ordered](k int) *Extrema[T] {
	return New[T](k, cmp.Compare[T])
}

// Aggregate offers element for retention. If fewer than k elements have
// been retained so far, it is kept unconditionally; otherwise it replaces
// the currently least-extreme retained element only if it is more extreme
// than that element.
func (e *Extrema[T]) Aggregate(element T) {
	if e.heap.cmp == nil {
		e.heap.cmp = e.cmp
	}
	if len(e.heap.values) < e.k {
		heap.Push(&e.heap, element)
		return
	}
	// heap.values[0] is the least extreme retained element: extremaHeap
	// is a min-heap ordered so its root is cmp's worst element, i.e. the
	// weakest element currently kept.
	if e.cmp(element, e.heap.values[0]) < 0 {
		e.heap.values[0] = element
		heap.Fix(&e.heap, 0)
	}
}

// ExtremeElements returns the retained elements, most extreme first. It
// does not consume or otherwise modify the Extrema's state.
func (e *Extrema[T]) ExtremeElements() []T {
	values := make([]T, len(e.heap.values))
	copy(values, e.heap.values)
	ordered := extremaHeap[T]{values: values, cmp: e.cmp}
	result := make([]T, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		// Popping a min-heap over cmp's "worst first" ordering yields
		// the weakest remaining element each time, so filling result
		// from the back produces most-extreme-first.
		result[i] = heap.Pop(&ordered).(T)
	}
	return result
}

// Len returns the number of elements currently retained.
func (e *Extrema[T]) Len() int {
	return len(e.heap.values)
}

// Clear discards all retained elements.
func (e *Extrema[T]) Clear() {
	e.heap.values = nil
}

// extremaHeap is a container/heap.Interface ordered so that its root
// (heap.values[0]) is the single least extreme element retained, judged by
// cmp — the one Aggregate needs to peek at and conditionally evict in
// O(1)/O(log k).
type extremaHeap[T any] struct {
	values []T
	cmp    Comparator[T]
}

func (h *extremaHeap[T]) Len() int { return len(h.values) }
func (h *extremaHeap[T]) Less(i, j int) bool {
	// cmp(a,b) < 0 means a is more extreme than b. The heap root should
	// be the LEAST extreme element, so i sorts before j when i is less
	// extreme than j, i.e. when cmp(i,j) > 0.
	return h.cmp(h.values[i], h.values[j]) > 0
}
func (h *extremaHeap[T]) Swap(i, j int) { h.values[i], h.values[j] = h.values[j], h.values[i] }
func (h *extremaHeap[T]) Push(x any)    { h.values = append(h.values, x.(T)) }
func (h *extremaHeap[T]) Pop() any {
	n := len(h.values)
	v := h.values[n-1]
	h.values = h.values[:n-1]
	return v
}
