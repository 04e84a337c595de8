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

package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	require.NoError(t, Setup(2))
	require.Equal(t, 2, Parallelism())

	require.NoError(t, Setup(0))
	require.Greater(t, Parallelism(), 0)
}

func TestRunParallelCollectsByIndex(t *testing.T) {
	require.NoError(t, Setup(2))

	out := make([]int, 64)
	RunParallel(len(out), func(i int) {
		out[i] = i * i
	})
	for i, v := range out {
		require.Equal(t, i*i, v)
	}
}

func TestRunParallelRunsAllOnce(t *testing.T) {
	require.NoError(t, Setup(3))

	var cnt int64
	RunParallel(100, func(int) {
		atomic.AddInt64(&cnt, 1)
	})
	require.Equal(t, int64(100), cnt)
}

func TestRunParallelSingle(t *testing.T) {
	ran := false
	RunParallel(1, func(i int) {
		require.Equal(t, 0, i)
		ran = true
	})
	require.True(t, ran)
}
