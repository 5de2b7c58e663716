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

// Package uniquifier provides a thread-safe, monotone filter used by
// parallel graph visitors to guarantee each node is visited at most once
// across worker goroutines.
package uniquifier

import (
	"iter"

	"github.com/buildgraph/nestedset/internal/syncmap"
)

// Uniquifier remembers every element it has ever been asked about. Once it
// has declared an element "not unique", it remains so forever: observed
// elements are never forgotten.
type Uniquifier[T comparable] struct {
	seen syncmap.Map[T, struct{}]
}

// New returns an empty Uniquifier.
func New[T comparable]() *Uniquifier[T] {
	return &Uniquifier[T]{}
}

// UniqueOne reports whether candidate had not been observed before this
// call. The check-and-remember is atomic: if two goroutines call
// UniqueOne(e) concurrently, exactly one of them observes true.
func (u *Uniquifier[T]) UniqueOne(candidate T) bool {
	_, alreadySeen := u.seen.LoadOrStore(candidate, struct{}{})
	return !alreadySeen
}

// Unique lazily filters candidates down to the elements not previously
// observed (by this call or any other), in their original order. Every
// candidate produced by the sequence is marked seen the moment it is
// reached, even if the consumer stops ranging early.
func (u *Uniquifier[T]) Unique(candidates iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := range candidates {
			if u.UniqueOne(c) {
				if !yield(c) {
					return
				}
			}
		}
	}
}
