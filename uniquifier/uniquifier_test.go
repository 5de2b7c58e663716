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

package uniquifier

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueOne(t *testing.T) {
	u := New[string]()
	assert.True(t, u.UniqueOne("a"))
	assert.False(t, u.UniqueOne("a"))
	assert.True(t, u.UniqueOne("b"))
}

func TestUniqueOneConcurrentExactlyOneWinner(t *testing.T) {
	u := New[int]()
	const goroutines = 64
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if u.UniqueOne(42) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins, "exactly one caller should observe candidate 42 as unique")
}

func TestUniquePreservesOrderAndFiltersSeen(t *testing.T) {
	u := New[int]()
	u.UniqueOne(2)

	input := slices.Values([]int{1, 2, 3, 2, 4})
	var got []int
	for v := range u.Unique(input) {
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 3, 4}, got)
}

func TestUniqueMarksSeenEvenOnEarlyStop(t *testing.T) {
	u := New[int]()
	input := slices.Values([]int{1, 2, 3, 4, 5})

	var got []int
	for v := range u.Unique(input) {
		got = append(got, v)
		if v == 3 {
			break
		}
	}
	assert.Equal(t, []int{1, 2, 3}, got)

	// 1, 2 and 3 were already marked seen by the aborted iteration; only 4
	// and 5 remain unique.
	var second []int
	for v := range u.Unique(slices.Values([]int{1, 2, 3, 4, 5})) {
		second = append(second, v)
	}
	assert.Equal(t, []int{4, 5}, second)
}
