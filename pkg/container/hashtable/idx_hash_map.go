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

package hashtable

// IdxHashMapCell stores a (hash, row index) proxy for a composite key
// instead of the key value itself. Equality between two occupied keys is
// deferred to a row comparison against the original columns.
type IdxHashMapCell struct {
	Hash   uint64
	RowIdx uint32
	Mapped uint64
}

// RowEq reports whether the rows at two indices carry equal composite keys.
type RowEq func(a, b uint32) bool

// IdxHashMap is an open-addressing table keyed by precomputed hash with
// caller-supplied equality. The stored hash is used for placement and as a
// cheap pre-filter; it is never recomputed from the row. Mapped ids start
// at 1 so 0 marks an empty bucket.
type IdxHashMap struct {
	bucketCntBits uint8
	bucketCnt     uint64
	elemCnt       uint64
	maxElemCnt    uint64
	bucketData    []IdxHashMapCell
}

func (ht *IdxHashMap) Init() {
	ht.bucketCntBits = kInitialBucketCntBits
	ht.bucketCnt = kInitialBucketCnt
	ht.elemCnt = 0
	ht.maxElemCnt = kInitialBucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	ht.bucketData = make([]IdxHashMapCell, kInitialBucketCnt)
}

func (ht *IdxHashMap) InitWithCapacity(capacity uint64) {
	ht.Init()
	ht.resizeOnDemand(int(capacity))
}

// FindOrInsert probes by hash; a candidate cell matches only if its stored
// hash equals hash (cheap rejection before touching column data) and eq
// accepts the two row indices. On a miss, row is recorded as the new key's
// representative and the next dense id assigned.
func (ht *IdxHashMap) FindOrInsert(hash uint64, row uint32, eq RowEq) (mapped uint64, isNew bool) {
	ht.resizeOnDemand(1)

	mask := ht.bucketCnt - 1
	for idx := hash & mask; true; idx = (idx + 1) & mask {
		cell := &ht.bucketData[idx]
		if cell.Mapped == 0 {
			ht.elemCnt++
			cell.Hash = hash
			cell.RowIdx = row
			cell.Mapped = ht.elemCnt
			return cell.Mapped, true
		}
		if cell.Hash == hash && eq(cell.RowIdx, row) {
			return cell.Mapped, false
		}
	}
	return 0, false
}

// resizeOnDemand relocates cells by stored hash only. Keys already in the
// table are pairwise distinct, so no equality callback is needed here.
func (ht *IdxHashMap) resizeOnDemand(n int) {
	targetCnt := ht.elemCnt + uint64(n)
	if targetCnt <= ht.maxElemCnt {
		return
	}

	newBucketCntBits := ht.bucketCntBits + 2
	newBucketCnt := uint64(1) << newBucketCntBits
	newMaxElemCnt := newBucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	for newMaxElemCnt < targetCnt {
		newBucketCntBits++
		newBucketCnt <<= 1
		newMaxElemCnt = newBucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	}

	oldBucketData := ht.bucketData

	ht.bucketCntBits = newBucketCntBits
	ht.bucketCnt = newBucketCnt
	ht.maxElemCnt = newMaxElemCnt
	ht.bucketData = make([]IdxHashMapCell, newBucketCnt)

	mask := ht.bucketCnt - 1
	for i := range oldBucketData {
		cell := &oldBucketData[i]
		if cell.Mapped == 0 {
			continue
		}
		for idx := cell.Hash & mask; true; idx = (idx + 1) & mask {
			if ht.bucketData[idx].Mapped == 0 {
				ht.bucketData[idx] = *cell
				break
			}
		}
	}
}

func (ht *IdxHashMap) Cardinality() uint64 {
	return ht.elemCnt
}
