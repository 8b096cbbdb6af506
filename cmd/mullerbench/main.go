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

// Command mullerbench times and verifies the matrix-multiplication strategies.
//
// Usage:
//
//	mullerbench list
//	mullerbench run --sizes 64,256,128x512x64 --strategies fma,naive --reps 5
//	mullerbench run --db runs.db          # also store every result in SQLite
//	mullerbench history --db runs.db --summary
//	mullerbench history                   # latest JSON session log
//
// Every run writes a JSON session log to --log-dir (default $MULLER_LOG_DIR
// or ./benchmark_logs).
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mullerbench: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Print(err)
		stop()
		os.Exit(1)
	}
}
