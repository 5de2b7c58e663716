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
	"sync"

	"github.com/buildgraph/nestedset/internal/syncmap"
)

// AsyncProducer resolves to the flat, ordered contents of an async-backed
// nested set. Implementations are supplied by callers (a deserializer
// reading a set's contents off the wire, for example); the core never
// interprets a failure, it only surfaces it.
//
// Implementations must be comparable (most naturally, a pointer to a
// struct): a depSet embeds its producer directly, so two NestedSets built
// from the same producer reference intern to the same unique.Handle — this
// is what spec's "shallow equality on async sets requires identical
// producer references" demands.
type AsyncProducer[T comparable] interface {
	Resolve() ([]T, error)
}

// resolveCell caches the one-time outcome of resolving an AsyncProducer.
// It deliberately lives outside depSet: depSet is interned by value via
// unique.Make, so two depSets built from the same producer reference are
// already the same value, but a sync.Once cannot itself be embedded in a
// comparable struct. resolveCells keys a process-wide registry of cells by
// producer identity instead, so depSet only has to hold the producer
// value itself.
type resolveCell[T comparable] struct {
	once    sync.Once
	payload []T
	err     error
}

// resolveCells maps a producer (of any element type, boxed as any) to its
// *resolveCell[T]. A single process-wide registry has to serve every
// instantiation of NestedSet[T], hence the any/any typing.
var resolveCells syncmap.Map[any, any]

// resolveAsync resolves producer at most once process-wide, regardless of
// how many depSets embed the same producer reference or how many
// goroutines call resolveAsync on it concurrently, and returns the cached
// outcome on every call after the first.
func resolveAsync[T comparable](producer AsyncProducer[T]) ([]T, error) {
	stored, _ := resolveCells.LoadOrStore(producer, &resolveCell[T]{})
	cell := stored.(*resolveCell[T])
	cell.once.Do(func() {
		cell.payload, cell.err = producer.Resolve()
	})
	if cell.err != nil {
		return nil, &AsyncBackingFailed{Err: cell.err}
	}
	return cell.payload, nil
}
