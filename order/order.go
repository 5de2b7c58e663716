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

// Package order enumerates the traversal orders a nested set can flatten
// under, and the compatibility rule used to decide whether one order's sets
// may be composed as a transitive of another.
package order

import "fmt"

// Order governs how a nested set's DAG of sub-sets is flattened into a
// linear, duplicate-free sequence.
type Order int

const (
	// Stable gives no ordering guarantee beyond "each element appears
	// once". Implementations are free to choose any deterministic
	// traversal; callers must not depend on which one.
	Stable Order = iota

	// Compile flattens in post-order: every transitive sub-set, in the
	// order it was added, is fully emitted before this set's own direct
	// members.
	Compile

	// Link flattens like NaiveLink but visits each set's transitives in
	// the reverse of the order they were added, and deduplicates by
	// keeping each value's occurrence closest to the end of the raw
	// traversal rather than its first occurrence; the surviving
	// occurrences keep their relative order from the raw traversal.
	Link

	// NaiveLink flattens in pre-order: this set's own direct members
	// come first, followed by its transitives in the order they were
	// added.
	NaiveLink
)

// String returns a diagnostic name for o, used only in compatibility-failure
// messages.
func (o Order) String() string {
	switch o {
	case Stable:
		return "Stable"
	case Compile:
		return "Compile"
	case Link:
		return "Link"
	case NaiveLink:
		return "NaiveLink"
	default:
		panic(fmt.Errorf("order: invalid Order %d", int(o)))
	}
}

// IsCompatible reports whether a set built under o may be added as a
// transitive of a builder of order other, or vice versa. The relation is
// commutative: Stable is compatible with every order, and every non-Stable
// order is compatible only with itself and Stable.
func (o Order) IsCompatible(other Order) bool {
	return o == other || o == Stable || other == Stable
}
