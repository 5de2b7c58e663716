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

// Package uniquelist provides an interned, immutable list used to back the
// direct-member and transitive-reference storage of a nested set.
//
// Go slices are not comparable, so they cannot be stored inside a type used
// with unique.Make. List stores its elements in an unrolled linked list of
// fixed-size, comparable nodes, each of which is itself interned with
// unique.Make. Two Lists built from equal content therefore collapse to the
// same handle, which is what lets a nested set compare two of its
// sub-components by == instead of a deep walk.
package uniquelist

import (
	"iter"
	"slices"
	"unique"
)

// List is an immutable, interned sequence of comparable elements.
//
// The zero value represents the empty list and requires no interning: it
// compares equal to every other empty List of the same element type.
type List[T comparable] struct {
	handle unique.Handle[node[T]]
}

// node is one chunk of the unrolled linked list. Fixing the array size makes
// node comparable, which unique.Make requires.
type node[T comparable] struct {
	elements [chunkSize]T
	// len is the total number of elements in this node plus every node it
	// transitively points to, not just this node's own chunk. Storing the
	// running total here means Len is O(1) instead of a list walk.
	len  int
	next unique.Handle[node[T]]
}

// chunkSize is the number of elements packed into each interned node. 6 was
// chosen, following the teacher package this is adapted from, to land node's
// size on a single 64-byte cache line for the common case of pointer-sized
// elements.
const chunkSize = 6

// Make interns slice and returns a List over its contents. Two calls to Make
// with equal slice contents return Lists that compare equal with ==,
// regardless of whether the underlying slices are the same backing array.
func Make[T comparable](slice []T) List[T] {
	if len(slice) == 0 {
		return List[T]{}
	}

	var tail unique.Handle[node[T]]
	total := 0
	for chunk := range chunksFromEnd(slice, chunkSize) {
		var n node[T]
		copy(n.elements[:], chunk)
		n.next = tail
		total += len(chunk)
		n.len = total
		tail = unique.Make(n)
	}
	return List[T]{tail}
}

// chunksFromEnd yields slice in chunks of at most n elements, starting from
// the tail, so that the first node Make interns (which has no next pointer)
// holds the end of slice and the last one holds its front. Only the first
// chunk yielded may be shorter than n: it holds the len(slice)%n trailing
// elements.
func chunksFromEnd[T any](slice []T, n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		total := len(slice)
		lead := total % n
		if lead > 0 {
			if !yield(slice[total-lead : total : total]) {
				return
			}
		}
		for i := total - lead - n; i >= 0; i -= n {
			if !yield(slice[i : i+n : i+n]) {
				return
			}
		}
	}
}

// Len returns the number of elements in the list without walking it.
func (l List[T]) Len() int {
	var zero unique.Handle[node[T]]
	if l.handle == zero {
		return 0
	}
	return l.handle.Value().len
}

// IsEmpty reports whether the list has no elements.
func (l List[T]) IsEmpty() bool {
	var zero unique.Handle[node[T]]
	return l.handle == zero
}

// All returns an iterator over the list's elements in order.
func (l List[T]) All() iter.Seq[T] {
	var zero unique.Handle[node[T]]
	return func(yield func(T) bool) {
		cur := l.handle
		for cur != zero {
			n := cur.Value()
			used := n.len
			if used > chunkSize {
				used = chunkSize
			}
			for _, v := range n.elements[:used] {
				if !yield(v) {
					return
				}
			}
			cur = n.next
		}
	}
}

// AppendTo appends a copy of the list's elements to dst and returns the
// result, following the append growth convention.
func (l List[T]) AppendTo(dst []T) []T {
	dst = slices.Grow(dst, l.Len())
	for chunk := range l.chunks() {
		dst = append(dst, chunk...)
	}
	return dst
}

// ToSlice returns a freshly allocated copy of the list's contents.
func (l List[T]) ToSlice() []T {
	return l.AppendTo(nil)
}

// chunks iterates the list one interned node's worth of elements at a time,
// avoiding the per-element yield overhead of All when the caller just wants
// to bulk-copy.
func (l List[T]) chunks() iter.Seq[[]T] {
	var zero unique.Handle[node[T]]
	return func(yield func([]T) bool) {
		cur := l.handle
		for cur != zero {
			n := cur.Value()
			used := min(n.len, len(n.elements))
			if !yield(n.elements[:used]) {
				return
			}
			cur = n.next
		}
	}
}
