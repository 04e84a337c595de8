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

// ck-group groups the rows of a CSV file by one or more key columns and
// prints a summary of each group.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matrixorigin/simdcsv"

	"github.com/columnkit/columnkit/pkg/common/worker"
	"github.com/columnkit/columnkit/pkg/config"
	"github.com/columnkit/columnkit/pkg/container/batch"
	"github.com/columnkit/columnkit/pkg/container/types"
	"github.com/columnkit/columnkit/pkg/container/vector"
	"github.com/columnkit/columnkit/pkg/groupby"
	"github.com/columnkit/columnkit/pkg/logutil"
)

const batchReadRows = 4000

var (
	configFile = flag.String("config", "", "toml configuration file")
	keyList    = flag.String("keys", "0", "comma-separated key column indexes")
	sorted     = flag.Bool("sorted", false, "order groups by first row index")
	verbose    = flag.Bool("v", false, "print every group")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	logutil.SetupLogger(cfg.Log)
	if err := worker.Setup(cfg.Worker.PoolSize); err != nil {
		logutil.Fatal(err.Error())
	}

	keys, err := parseKeys(*keyList)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	records, err := readCSV(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bat, err := keyBatch(records, keys)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	g, err := groupby.ThreadedMultipleKeys(bat, cfg.PartitionCount(), *sorted)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("%d rows, %d groups\n", g.Rows(), g.GroupCount())
	if *verbose {
		for i := 0; i < g.GroupCount(); i++ {
			first, members := g.Get(i)
			fmt.Printf("  %s: first=%d rows=%d\n",
				keyOfRow(bat, first), first, len(members))
		}
	}
}

func parseKeys(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	keys := make([]int, 0, len(parts))
	for _, p := range parts {
		k, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || k < 0 {
			return nil, fmt.Errorf("bad key column %q", p)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := simdcsv.NewReaderWithOptions(f, ',', '#', true, true)
	ctx := context.Background()

	var records [][]string
	buf := make([][]string, batchReadRows)
	for {
		out, cnt, err := reader.Read(batchReadRows, ctx, buf)
		if err != nil {
			return nil, err
		}
		records = append(records, out[:cnt]...)
		if cnt < batchReadRows {
			return records, nil
		}
		buf = make([][]string, batchReadRows)
	}
}

func keyBatch(records [][]string, keys []int) (*batch.Batch, error) {
	vecs := make([]*vector.Vector, len(keys))
	for i, k := range keys {
		vec := vector.NewVec(types.New(types.T_varchar))
		for row, rec := range records {
			if k >= len(rec) {
				return nil, fmt.Errorf("row %d has no column %d", row, k)
			}
			if err := vector.AppendBytes(vec, []byte(rec[k]), false); err != nil {
				return nil, err
			}
		}
		vecs[i] = vec
	}
	return batch.NewWithVectors(vecs), nil
}

func keyOfRow(bat *batch.Batch, row uint32) string {
	parts := make([]string, len(bat.Vecs))
	for i, vec := range bat.Vecs {
		parts[i] = vec.GetStringAt(int(row))
	}
	return strings.Join(parts, ",")
}
