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

type Int64HashMapCell struct {
	Key    uint64
	Mapped uint64
}

// Int64HashMap maps a 64-bit scalar key to a dense id starting at 1, in
// insertion order. Key 0 lives in a dedicated cell so that 0 can serve as
// the empty-bucket sentinel.
type Int64HashMap struct {
	bucketCntBits uint8
	bucketCnt     uint64
	elemCnt       uint64
	maxElemCnt    uint64
	seed          uint64
	zeroCell      Int64HashMapCell
	bucketData    []Int64HashMapCell
}

// Init readies the map. The seed must match the seed the caller used to
// precompute hashes; resizing rehashes stored keys with it.
func (ht *Int64HashMap) Init(seed uint64) {
	ht.bucketCntBits = kInitialBucketCntBits
	ht.bucketCnt = kInitialBucketCnt
	ht.elemCnt = 0
	ht.maxElemCnt = kInitialBucketCnt * kLoadFactorNumerator / kLoadFactorDenominator
	ht.seed = seed
	ht.zeroCell = Int64HashMapCell{}
	ht.bucketData = make([]Int64HashMapCell, kInitialBucketCnt)
}

func (ht *Int64HashMap) InitWithCapacity(seed uint64, capacity uint64) {
	ht.Init(seed)
	ht.resizeOnDemand(int(capacity))
}

// FindOrInsert returns the dense id of key, assigning the next id when the
// key is new. hash must be Int64Hash(key, seed).
func (ht *Int64HashMap) FindOrInsert(hash, key uint64) (mapped uint64, isNew bool) {
	if key == 0 {
		if ht.zeroCell.Mapped == 0 {
			ht.elemCnt++
			ht.zeroCell.Mapped = ht.elemCnt
			return ht.zeroCell.Mapped, true
		}
		return ht.zeroCell.Mapped, false
	}

	ht.resizeOnDemand(1)

	empty, _, cell := ht.findBucket(hash, key)
	if empty {
		ht.elemCnt++
		cell.Key = key
		cell.Mapped = ht.elemCnt
		return cell.Mapped, true
	}
	return cell.Mapped, false
}

// Find returns the dense id of key, 0 when absent.
func (ht *Int64HashMap) Find(hash, key uint64) uint64 {
	if key == 0 {
		return ht.zeroCell.Mapped
	}
	_, _, cell := ht.findBucket(hash, key)
	return cell.Mapped
}

func (ht *Int64HashMap) findBucket(hash uint64, key uint64) (empty bool, idx uint64, cell *Int64HashMapCell) {
	mask := ht.bucketCnt - 1
	var equal bool
	for idx = hash & mask; true; idx = (idx + 1) & mask {
		cell = &ht.bucketData[idx]
		empty, equal = cell.Key == 0, cell.Key == key
		if empty || equal {
			return
		}
	}
	return
}

func (ht *Int64HashMap) resizeOnDemand(n int) {
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
	ht.bucketData = make([]Int64HashMapCell, newBucketCnt)

	for i := range oldBucketData {
		cell := &oldBucketData[i]
		if cell.Key != 0 {
			_, newIdx, _ := ht.findBucket(Int64Hash(cell.Key, ht.seed), cell.Key)
			ht.bucketData[newIdx] = *cell
		}
	}
}

func (ht *Int64HashMap) Cardinality() uint64 {
	return ht.elemCnt
}
