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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buildgraph/nestedset/order"
)

// TestWrapIdentityCaching exercises spec.md §8 scenario 8: wrapping the same
// backing sequence twice under Stable order returns the same NestedSet.
func TestWrapIdentityCaching(t *testing.T) {
	seq := []string{"a", "b", "c"}
	first := Wrap(order.Stable, seq)
	second := Wrap(order.Stable, seq)
	assert.True(t, ShallowEquals(first, second), "wrapping the same sequence twice must hit the cache")
}

func TestWrapDistinctSequencesInternByContent(t *testing.T) {
	a := Wrap(order.Stable, []string{"a", "b"})
	b := Wrap(order.Stable, []string{"a", "b"})
	assert.True(t, ShallowEquals(a, b), "two distinct backing slices with equal contents are not cache hits, but New interns equal content to the same handle")

	listA, err := a.ToList()
	assert.NoError(t, err)
	listB, err := b.ToList()
	assert.NoError(t, err)
	assert.Equal(t, listA, listB, "flattened contents are still equal")
}

func TestWrapShortSequenceBypassesCache(t *testing.T) {
	single := []string{"only"}
	a := Wrap(order.Stable, single)
	b := Wrap(order.Stable, single)
	// Both collapse to the same interned single-element set regardless of
	// caching, since New itself interns identical content.
	assert.True(t, ShallowEquals(a, b))

	var empty []string
	e := Wrap(order.Stable, empty)
	assert.True(t, e.IsEmpty())
}

func TestWrapNonStableAlwaysBuildsFresh(t *testing.T) {
	seq := []string{"a", "b", "c"}
	a := Wrap(order.Compile, seq)
	b := Wrap(order.Compile, seq)
	// Compile is order-sensitive content equality, so Wrap still interns
	// identical content to the same handle via New/unique.Make — the
	// point under test is that the wrap cache itself is never consulted
	// (no identity-only sharing before content comparison), which is not
	// directly observable from outside the package, so we only assert
	// the outward-facing contract: flattening is still correct.
	listA, err := a.ToList()
	assert.NoError(t, err)
	listB, err := b.ToList()
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, listA)
	assert.Equal(t, listA, listB)
}

func TestWrapConcurrentCoalesces(t *testing.T) {
	seq := []string{"x", "y", "z", "w", "v"}
	const goroutines = 32

	results := make([]NestedSet[string], goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = Wrap(order.Stable, seq)
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.True(t, ShallowEquals(results[0], results[i]), "all concurrent wraps of the same slice must converge on one cached set")
	}
}
