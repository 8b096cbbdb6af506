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
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-muller/internal/benchlog"
	"github.com/ajroetker/go-muller/internal/resultdb"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var (
		strategy string
		limit    int
		summary  bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored runs (from --db, or the latest JSON session log)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if g.dbPath == "" {
				path, err := benchlog.Latest(g.logDir)
				if err != nil {
					return err
				}
				results, err := benchlog.Load(path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "session log %s\n", path)
				return printResults(out, results)
			}

			db, err := resultdb.Open(g.dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if summary {
				sums, err := db.Summaries()
				if err != nil {
					return err
				}
				return printSummaries(out, sums)
			}
			results, err := db.Recent(strategy, limit)
			if err != nil {
				return err
			}
			return printResults(out, results)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "", "only show this strategy")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show")
	cmd.Flags().BoolVar(&summary, "summary", false, "aggregate runs per strategy")
	return cmd
}

func printSummaries(out io.Writer, sums []resultdb.Summary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tRUNS\tFAILURES\tBEST GFLOPS\tAVG GFLOPS\tLAST RUN")
	for _, s := range sums {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\t%s\n",
			s.Strategy, s.Runs, s.Failures, s.BestGFLOPS, s.AvgGFLOPS, s.LastRun.Format(time.DateTime))
	}
	return w.Flush()
}
