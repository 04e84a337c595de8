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

import (
	"fmt"
	"sort"

	"github.com/columnkit/columnkit/pkg/common/worker"
)

type groupItem struct {
	first uint32
	idx   []uint32
}

// finishGroupOrder merges the per-worker (first, members) accumulators
// into one Groups.
//
// Unsorted mode flattens in worker order, a single merge pass. Sorted mode
// scatters every worker's pairs in parallel into disjoint pre-offset ranges
// of one pre-sized slice, then runs the one global sort by representative
// index that establishes total order across workers.
func finishGroupOrder(vecs []partial, sorted bool) *Groups {
	if sorted {
		if len(vecs) == 1 {
			g := &Groups{First: vecs[0].first, Idx: vecs[0].all}
			// A single sequential accumulation assigns representatives in
			// row order already; verify instead of trusting it.
			g.ensureSortedByFirst()
			return g
		}

		total := 0
		offsets := make([]int, len(vecs))
		for i, v := range vecs {
			offsets[i] = total
			total += len(v.first)
		}

		items := make([]groupItem, total)
		worker.RunParallel(len(vecs), func(i int) {
			v := vecs[i]
			// The disjoint-range write below stands or falls with this.
			if len(v.first) != len(v.all) {
				panic(fmt.Sprintf("accumulator length mismatch: %d firsts, %d member lists",
					len(v.first), len(v.all)))
			}
			dst := items[offsets[i] : offsets[i]+len(v.first)]
			for j := range v.first {
				dst[j] = groupItem{first: v.first[j], idx: v.all[j]}
			}
		})

		// Representatives are globally distinct, so this order is total
		// and deterministic even with an unstable sort.
		sort.Slice(items, func(a, b int) bool {
			return items[a].first < items[b].first
		})

		g := &Groups{
			First:  make([]uint32, total),
			Idx:    make([][]uint32, total),
			Sorted: true,
		}
		for i, item := range items {
			g.First[i] = item.first
			g.Idx[i] = item.idx
		}
		return g
	}

	total := 0
	for _, v := range vecs {
		total += len(v.first)
	}
	g := &Groups{
		First: make([]uint32, 0, total),
		Idx:   make([][]uint32, 0, total),
	}
	for _, v := range vecs {
		if len(v.first) != len(v.all) {
			panic(fmt.Sprintf("accumulator length mismatch: %d firsts, %d member lists",
				len(v.first), len(v.all)))
		}
		g.First = append(g.First, v.first...)
		g.Idx = append(g.Idx, v.all...)
	}
	return g
}
