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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultLogDir = "benchmark_logs"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dbPath string
	logDir string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "mullerbench",
		Short:         "Benchmark and verify matrix-multiplication strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(root.PersistentFlags(), g)

	root.AddCommand(newListCmd(), newRunCmd(g), newHistoryCmd(g))
	return root
}

func addGlobalFlags(fs *pflag.FlagSet, g *globalFlags) {
	logDir := os.Getenv("MULLER_LOG_DIR")
	if logDir == "" {
		logDir = defaultLogDir
	}
	fs.StringVar(&g.dbPath, "db", "", "SQLite database for run history (disabled if empty)")
	fs.StringVar(&g.logDir, "log-dir", logDir, "directory for JSON session logs (env MULLER_LOG_DIR)")
}
