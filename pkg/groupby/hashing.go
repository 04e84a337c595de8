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

// Package groupby partitions row indices into groups of equal key using
// hash tables rather than sorting. Keys are never copied: the threaded
// multi-key path stores only (hash, row index) pairs and re-derives
// equality by indexing back into the original columns.
package groupby

import (
	"github.com/axiomhq/hyperloglog"
	"go.uber.org/zap"

	"github.com/columnkit/columnkit/pkg/common/worker"
	"github.com/columnkit/columnkit/pkg/compare"
	"github.com/columnkit/columnkit/pkg/container/batch"
	"github.com/columnkit/columnkit/pkg/container/hashtable"
	"github.com/columnkit/columnkit/pkg/container/types"
	"github.com/columnkit/columnkit/pkg/hashing"
	"github.com/columnkit/columnkit/pkg/logutil"
)

// DefaultSeed keeps repeated groupings of the same input consistent.
const DefaultSeed uint64 = 0

// initGroupCap balances cache coherence against resizing cost for the
// per-worker accumulator arrays.
const initGroupCap = 512

// partial is one worker's accumulation output: the representative row per
// local group and the member lists, index-aligned.
type partial struct {
	first []uint32
	all   [][]uint32
}

// Sequential groups keys by value with a single hash table, visiting rows
// in input order. Member lists reflect encounter order; representatives
// are assigned in ascending row order, which ensureSortedByFirst verifies
// rather than trusts.
//
// Float keys group by bit pattern, the same relation every threaded path
// uses: +0.0 and -0.0 are distinct keys, identical-bit NaNs share a group.
func Sequential[T comparable](keys []T, sorted bool) *Groups {
	switch ks := any(keys).(type) {
	case []float32:
		return sequentialBy(ks, types.AsUint64[float32], sorted)
	case []float64:
		return sequentialBy(ks, types.AsUint64[float64], sorted)
	}
	return sequentialBy(keys, func(k T) T { return k }, sorted)
}

func sequentialBy[T any, K comparable](keys []T, key func(T) K, sorted bool) *Groups {
	tbl := make(map[K]uint32, initGroupCap)
	g := &Groups{
		First: make([]uint32, 0, initGroupCap),
		Idx:   make([][]uint32, 0, initGroupCap),
	}
	for i, k := range keys {
		row := uint32(i)
		if off, ok := tbl[key(k)]; ok {
			g.Idx[off] = append(g.Idx[off], row)
		} else {
			tbl[key(k)] = uint32(len(g.First))
			g.First = append(g.First, row)
			g.Idx = append(g.Idx, append(make([]uint32, 0, 4), row))
		}
	}
	if sorted {
		g.ensureSortedByFirst()
	}
	return g
}

// ThreadedNumeric groups small fixed-width numeric keys across nPartitions
// workers. Every worker scans the entire input, hashes every key, and
// skips rows it does not own: the redundant hashing buys zero
// synchronization and zero atomic contention during accumulation, a good
// trade when hashing a scalar is cheap and the row count is large.
//
// keys is a list of row-aligned chunks; their concatenation in order is
// the input. nPartitions must be a power of two.
func ThreadedNumeric[T types.Number](keys [][]T, nPartitions uint64, sorted bool) *Groups {
	hashing.MustPowerOfTwo(nPartitions)

	results := make([]partial, nPartitions)
	worker.RunParallel(int(nPartitions), func(p int) {
		var tbl hashtable.Int64HashMap
		tbl.Init(DefaultSeed)
		first := make([]uint32, 0, initGroupCap)
		all := make([][]uint32, 0, initGroupCap)

		offset := uint32(0)
		for _, chunk := range keys {
			for i, k := range chunk {
				key := types.AsUint64(k)
				h := hashtable.Int64Hash(key, DefaultSeed)
				if !hashing.Owns(h, uint64(p), nPartitions) {
					continue
				}
				row := offset + uint32(i)
				mapped, isNew := tbl.FindOrInsert(h, key)
				if isNew {
					first = append(first, row)
					all = append(all, append(make([]uint32, 0, 4), row))
				} else {
					all[mapped-1] = append(all[mapped-1], row)
				}
			}
			offset += uint32(len(chunk))
		}
		results[p] = partial{first: first, all: all}
	})
	return finishGroupOrder(results, sorted)
}

// ThreadedMultipleKeys groups rows of a composite key table. The hash
// tables never hold key values: they hold (hash, row index) proxies, and a
// candidate collision is resolved by comparing the two rows column by
// column with early exit, equality being an eager AND whose probability of
// success declines rapidly with each extra column.
//
// This is the engine's one fallible entry point: structurally incompatible
// key columns surface as an error from the row hasher.
func ThreadedMultipleKeys(bat *batch.Batch, nPartitions uint64, sorted bool) (*Groups, error) {
	hashing.MustPowerOfTwo(nPartitions)

	hashes, err := hashing.HashRowsThreaded(bat, int(nPartitions), DefaultSeed)
	if err != nil {
		return nil, err
	}

	// One comparator per key column, precomputed so probing skips type
	// dispatch on every collision.
	cmps := compare.NewList(bat.Vecs)
	eq := func(a, b uint32) bool {
		return equalRowsCmp(cmps, a, b)
	}

	perWorkerCap := estimateGroupCount(hashes) / nPartitions
	if perWorkerCap < initGroupCap {
		perWorkerCap = initGroupCap
	}

	results := make([]partial, nPartitions)
	worker.RunParallel(int(nPartitions), func(p int) {
		var tbl hashtable.IdxHashMap
		tbl.InitWithCapacity(perWorkerCap)
		first := make([]uint32, 0, perWorkerCap)
		all := make([][]uint32, 0, perWorkerCap)

		for i, h := range hashes {
			if !hashing.Owns(h, uint64(p), nPartitions) {
				continue
			}
			row := uint32(i)
			populateIdxMap(&tbl, row, h, eq,
				func() {
					first = append(first, row)
					all = append(all, append(make([]uint32, 0, 4), row))
				},
				func(off uint64) {
					all[off] = append(all[off], row)
				})
		}
		results[p] = partial{first: first, all: all}
	})

	g := finishGroupOrder(results, sorted)
	logutil.Debug("multi-key grouping done",
		zap.Int("rows", bat.RowCount()),
		zap.Int("keyColumns", bat.VectorCount()),
		zap.Uint64("partitions", nPartitions),
		zap.Int("groups", g.GroupCount()))
	return g, nil
}

// populateIdxMap is the single population routine shared by every
// comparator style: probe by precomputed hash, then either the vacant case
// (record a new accumulator) or the occupied case (update the existing one
// at the given group offset). Two cases, no further branching.
func populateIdxMap(tbl *hashtable.IdxHashMap, row uint32, hash uint64,
	eq hashtable.RowEq, vacantFn func(), occupiedFn func(off uint64)) {
	mapped, isNew := tbl.FindOrInsert(hash, row, eq)
	if isNew {
		vacantFn()
	} else {
		occupiedFn(mapped - 1)
	}
}

// equalRowsCmp ANDs per-column equality eagerly, catching failures on the
// cheapest early columns instead of materializing either row.
func equalRowsCmp(cmps []compare.EqualityCompare, a, b uint32) bool {
	for _, cmp := range cmps {
		if !cmp.Eq(a, b) {
			return false
		}
	}
	return true
}

// EqualRows is the direct-column-access comparator style: it resolves the
// columns on every call. The precomputed-comparator form above is the hot
// path; this one serves callers holding just the table.
func EqualRows(bat *batch.Batch, a, b uint32) bool {
	for _, vec := range bat.Vecs {
		if !compare.EqualElement(vec, a, b) {
			return false
		}
	}
	return true
}

// estimateGroupCount sketches the hash cardinality so per-worker tables
// start near their final size instead of resizing up through the load
// factors.
func estimateGroupCount(hashes []uint64) uint64 {
	sk := hyperloglog.New14()
	for _, h := range hashes {
		sk.InsertHash(h)
	}
	return sk.Estimate()
}
