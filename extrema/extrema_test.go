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

package extrema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxWorkedExample(t *testing.T) {
	e := Max[int](3)
	for _, v := range []int{5, 2, 9, 9, 1, 7, 3, 9} {
		e.Aggregate(v)
	}
	assert.Equal(t, []int{9, 9, 9}, e.ExtremeElements())
}

func TestMinWorkedExample(t *testing.T) {
	e := Min[int](3)
	for _, v := range []int{5, 2, 9, 9, 1, 7, 3, 9} {
		e.Aggregate(v)
	}
	assert.Equal(t, []int{1, 2, 3}, e.ExtremeElements())
}

func TestExtremaRetainsFewerThanK(t *testing.T) {
	e := Max[int](5)
	e.Aggregate(1)
	e.Aggregate(2)
	assert.Equal(t, 2, e.Len())
	assert.ElementsMatch(t, []int{1, 2}, e.ExtremeElements())
}

func TestExtremaClear(t *testing.T) {
	e := Max[int](3)
	e.Aggregate(1)
	e.Aggregate(2)
	e.Clear()
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.ExtremeElements())
}

func TestExtremaPanicsOnNonPositiveK(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	Max[int](0)
}

func TestExtremaCustomComparator(t *testing.T) {
	type task struct {
		name     string
		priority int
	}
	byPriority := func(a, b task) int { return b.priority - a.priority }
	e := New(2, byPriority)
	e.Aggregate(task{"low", 1})
	e.Aggregate(task{"high", 10})
	e.Aggregate(task{"mid", 5})

	got := e.ExtremeElements()
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].name)
	assert.Equal(t, "mid", got[1].name)
}

func TestExtremaDoesNotMutateOnRead(t *testing.T) {
	e := Max[int](3)
	e.Aggregate(1)
	e.Aggregate(2)
	_ = e.ExtremeElements()
	assert.Equal(t, 2, e.Len(), "ExtremeElements must not consume the aggregator's state")
	assert.ElementsMatch(t, []int{1, 2}, e.ExtremeElements())
}
