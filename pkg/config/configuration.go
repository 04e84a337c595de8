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

package config

import (
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/columnkit/columnkit/pkg/common/moerr"
	"github.com/columnkit/columnkit/pkg/logutil"
)

type Config struct {
	Worker WorkerConfig      `toml:"worker"`
	Log    logutil.LogConfig `toml:"log"`
}

type WorkerConfig struct {
	// PoolSize is the worker pool capacity; 0 means one worker per CPU.
	PoolSize int `toml:"pool-size"`
	// Partitions is the grouping partition count; must be a power of two.
	// 0 picks the largest power of two not above the pool size.
	Partitions int `toml:"partitions"`
}

func Default() *Config {
	return &Config{
		Worker: WorkerConfig{},
		Log:    logutil.LogConfig{Level: "info"},
	}
}

// Load parses a toml file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, moerr.NewInvalidInput("parse config %s: %s", path, err)
	}
	if p := cfg.Worker.Partitions; p != 0 && (p < 0 || p&(p-1) != 0) {
		return nil, moerr.NewInvalidInput("worker.partitions %d is not a power of two", p)
	}
	return cfg, nil
}

// PartitionCount resolves the configured partition count, defaulting to
// the largest power of two not above the pool size.
func (c *Config) PartitionCount() uint64 {
	if c.Worker.Partitions > 0 {
		return uint64(c.Worker.Partitions)
	}
	size := c.Worker.PoolSize
	if size <= 0 {
		size = runtime.NumCPU()
	}
	n := uint64(1)
	for n*2 <= uint64(size) {
		n *= 2
	}
	return n
}
