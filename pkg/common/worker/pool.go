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

// Package worker holds the process-wide pool that runs the data-parallel
// phases of the grouping engine. The pool is initialized once and reused
// across calls; tests inject a small deterministic size through Setup.
package worker

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/columnkit/columnkit/pkg/logutil"
)

var (
	mu     sync.Mutex
	global *ants.Pool
)

// Setup replaces the global pool with one of the given size. Size 0 picks
// the number of CPUs.
func Setup(size int) error {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p, err := ants.NewPool(size)
	if err != nil {
		return err
	}
	mu.Lock()
	old := global
	global = p
	mu.Unlock()
	if old != nil {
		old.Release()
	}
	logutil.Debugf("worker pool sized to %d", size)
	return nil
}

func getPool() *ants.Pool {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		p, err := ants.NewPool(runtime.NumCPU())
		if err != nil {
			// NewPool only fails on a non-positive size.
			panic(err)
		}
		global = p
	}
	return global
}

// Parallelism is the current pool capacity.
func Parallelism() int {
	return getPool().Cap()
}

// RunParallel runs fn(0) .. fn(n-1) on the pool and returns when all have
// completed. The closures must be independent; results are collected by
// having fn write to the caller's slot i.
func RunParallel(n int, fn func(i int)) {
	if n == 1 {
		fn(0)
		return
	}
	p := getPool()
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		if err := p.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			// Pool released under us; degrade to inline execution.
			fn(i)
			wg.Done()
		}
	}
	wg.Wait()
}
