// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-muller/internal/benchlog"
	"github.com/ajroetker/go-muller/internal/resultdb"
	"github.com/ajroetker/go-muller/muller"
	"github.com/ajroetker/go-muller/muller/contrib/matmul"
)

type runFlags struct {
	sizes      []string
	strategies []string
	reps       int
	seed       uint64
	workers    int
	session    string
}

// runConfig is a validated run.
type runConfig struct {
	sizes      []problemSize
	strategies []string
	reps       int
	seed       uint64
	workers    int
	session    string
	logDir     string
	dbPath     string
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time and verify strategies on random operands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.config(g)
			if err != nil {
				return err
			}
			results, err := runBench(cmd.Context(), cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			failed := lo.CountBy(results, func(r benchlog.Result) bool { return r.Status != benchlog.StatusPass })
			if failed > 0 {
				return fmt.Errorf("%d of %d results did not pass", failed, len(results))
			}
			return nil
		},
	}
	addRunFlags(cmd.Flags(), f)
	return cmd
}

func addRunFlags(fs *pflag.FlagSet, f *runFlags) {
	fs.StringSliceVar(&f.sizes, "sizes", []string{"64", "128", "256"}, "problem sizes, N or MxNxK")
	fs.StringSliceVar(&f.strategies, "strategies", nil, "strategies to run (default all)")
	fs.IntVar(&f.reps, "reps", 3, "timed Multiply calls per strategy and size")
	fs.Uint64Var(&f.seed, "seed", 1, "seed for the random operands")
	fs.IntVar(&f.workers, "workers", 0, "worker goroutines for parallel strategies (0 = GOMAXPROCS)")
	fs.StringVar(&f.session, "session", "mullerbench", "session name used for the JSON log file")
}

func (f *runFlags) config(g *globalFlags) (runConfig, error) {
	sizes, err := parseSizes(f.sizes)
	if err != nil {
		return runConfig{}, err
	}
	strategies := matmul.Strategies()
	if len(f.strategies) > 0 {
		if unknown := lo.Without(f.strategies, strategies...); len(unknown) > 0 {
			return runConfig{}, fmt.Errorf("%w: %v (have %v)", matmul.ErrUnknownStrategy, unknown, strategies)
		}
		strategies = lo.Uniq(f.strategies)
	}
	if f.reps < 1 {
		return runConfig{}, fmt.Errorf("--reps must be at least 1, got %d", f.reps)
	}
	if f.workers < 0 {
		return runConfig{}, fmt.Errorf("--workers must not be negative, got %d", f.workers)
	}
	return runConfig{
		sizes:      sizes,
		strategies: strategies,
		reps:       f.reps,
		seed:       f.seed,
		workers:    f.workers,
		session:    f.session,
		logDir:     g.logDir,
		dbPath:     g.dbPath,
	}, nil
}

// runBench times every strategy on every size, verifies all instances of a
// size concurrently against the naive reference and records the results.
func runBench(ctx context.Context, cfg runConfig, out io.Writer) ([]benchlog.Result, error) {
	logger, err := benchlog.New(cfg.logDir, cfg.session, time.Now())
	if err != nil {
		return nil, err
	}

	var db *resultdb.DB
	if cfg.dbPath != "" {
		db, err = resultdb.Open(cfg.dbPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
	}

	opts := []muller.Option{muller.WithWorkers(cfg.workers)}
	platform := muller.Platform()
	var all []benchlog.Result

	for i, size := range cfg.sizes {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		rng := rand.New(rand.NewPCG(cfg.seed, uint64(i)))
		a, err := muller.RandomMatrix(size.M, size.K, rng)
		if err != nil {
			return all, err
		}
		b, err := muller.RandomMatrix(size.K, size.N, rng)
		if err != nil {
			return all, err
		}

		results := make([]benchlog.Result, len(cfg.strategies))
		instances := make([]muller.Muller, len(cfg.strategies))
		for j, name := range cfg.strategies {
			inst, err := matmul.New(name, a, b, opts...)
			if err != nil {
				return all, err
			}
			instances[j] = inst
			results[j] = benchlog.Result{
				Strategy: name,
				M:        size.M,
				N:        size.N,
				K:        size.K,
				Reps:     cfg.reps,
				Platform: platform,
			}
			// Timing stays serial so strategies do not compete for cores.
			timeMultiply(inst, cfg.reps, size, &results[j])
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(runtime.GOMAXPROCS(0))
		for j := range instances {
			if results[j].Status == benchlog.StatusError {
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				verify(instances[j], &results[j])
				return nil
			})
		}
		waitErr := g.Wait()
		for _, inst := range instances {
			if err := inst.Close(); err != nil {
				log.Printf("closing %s: %v", inst.Name(), err)
			}
		}
		if waitErr != nil {
			return all, waitErr
		}

		for _, r := range results {
			if err := logger.Log(r); err != nil {
				return all, err
			}
			if db != nil {
				if _, err := db.Insert(r); err != nil {
					return all, err
				}
			}
		}
		all = append(all, results...)
	}

	if err := printResults(out, all); err != nil {
		return all, err
	}
	log.Printf("results written to %s", logger.Path())
	return all, nil
}

func timeMultiply(inst muller.Muller, reps int, size problemSize, r *benchlog.Result) {
	start := time.Now()
	for range reps {
		if err := inst.Multiply(); err != nil {
			r.Status = benchlog.StatusError
			r.Error = err.Error()
			return
		}
	}
	elapsed := time.Since(start)
	r.NsPerOp = float64(elapsed.Nanoseconds()) / float64(reps)
	if r.NsPerOp > 0 {
		r.GFLOPS = size.flops() / r.NsPerOp
	}
}

func verify(inst muller.Muller, r *benchlog.Result) {
	report, err := inst.Test()
	if err != nil {
		r.Status = benchlog.StatusError
		r.Error = err.Error()
		return
	}
	r.MaxAbsErr = report.MaxAbsErr
	r.MaxULP = report.MaxULP
	if report.Passed {
		r.Status = benchlog.StatusPass
		return
	}
	r.Status = benchlog.StatusFail
	r.Error = report.String()
}

func printResults(out io.Writer, results []benchlog.Result) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "STRATEGY\tSIZE\tREPS\tMS/OP\tGFLOPS\tMAX ABS ERR\tMAX ULP\tSTATUS\t")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%dx%dx%d\t%d\t%.3f\t%.2f\t%.3g\t%d\t%s\t\n",
			r.Strategy, r.M, r.N, r.K, r.Reps, r.NsPerOp/1e6, r.GFLOPS, r.MaxAbsErr, r.MaxULP, r.Status)
	}
	return w.Flush()
}
