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

package hashing

import "fmt"

// MustPowerOfTwo aborts unless n is a positive power of two. Partition
// counts are a caller-controlled invariant, never user input.
func MustPowerOfTwo(n uint64) {
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("partition count %d is not a power of two", n))
	}
}

// Owns reports whether the row with hash h belongs to worker w out of
// nPartitions. The low bits select the partition: masking is branch-free,
// needs no division, and stays uncorrelated with the mixing patterns of
// reasonable hash functions (which concentrate entropy in the low bits
// last).
//
// Owns runs once per row per worker, so it is the bare mask; callers
// assert the partition count up front with MustPowerOfTwo.
func Owns(h, w, nPartitions uint64) bool {
	return h&(nPartitions-1) == w
}
