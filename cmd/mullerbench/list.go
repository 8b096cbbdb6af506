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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-muller/muller"
	"github.com/ajroetker/go-muller/muller/contrib/matmul"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered strategies and the platform FMA support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "platform: %s (hardware FMA: %t)\n", muller.Platform(), muller.HasHardwareFMA())
			fmt.Fprintf(out, "auto: %s below %d ops, %s above\n\n",
				matmul.NameFMA, matmul.SmallMatrixThreshold, matmul.Choose(512, 512, 512))

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STRATEGY\tAUTO(64)\tAUTO(512)")
			for _, name := range matmul.Strategies() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", name,
					mark(matmul.Choose(64, 64, 64) == name), mark(matmul.Choose(512, 512, 512) == name))
			}
			return w.Flush()
		},
	}
}

func mark(b bool) string {
	if b {
		return "*"
	}
	return ""
}
