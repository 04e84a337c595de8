// Copyright 2024 ColumnKit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package groupby

import "sort"

// Groups is the finished grouping structure: one entry per group, pairing
// the representative (first-encountered) row index with the full member
// list in encounter order. The member lists partition the row index space;
// a group's first member always equals its representative.
type Groups struct {
	First []uint32
	Idx   [][]uint32

	// Sorted marks that groups are ordered by ascending representative.
	// When false the group order is a single merge pass over the workers
	// and callers must not depend on it.
	Sorted bool
}

func (g *Groups) GroupCount() int {
	return len(g.First)
}

// Rows is the total number of row indices covered by all groups.
func (g *Groups) Rows() int {
	n := 0
	for _, idx := range g.Idx {
		n += len(idx)
	}
	return n
}

// Get returns group i's representative and member indices.
func (g *Groups) Get(i int) (uint32, []uint32) {
	return g.First[i], g.Idx[i]
}

func (g *Groups) IsSorted() bool {
	return g.Sorted
}

// sort.Interface over (First, Idx) in lockstep, ordered by representative.
func (g *Groups) Len() int {
	return len(g.First)
}

func (g *Groups) Less(a, b int) bool {
	return g.First[a] < g.First[b]
}

func (g *Groups) Swap(a, b int) {
	g.First[a], g.First[b] = g.First[b], g.First[a]
	g.Idx[a], g.Idx[b] = g.Idx[b], g.Idx[a]
}

// ensureSortedByFirst verifies representative order instead of assuming it,
// sorting only on violation. Representatives are globally distinct (every
// row joins exactly one group), so the resulting order is total and
// deterministic.
func (g *Groups) ensureSortedByFirst() {
	if !sort.IsSorted(g) {
		sort.Sort(g)
	}
	g.Sorted = true
}
