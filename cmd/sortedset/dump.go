// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the trie of the lines of file or stdin as tree diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := readSet(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if stats {
				st := set.Stats()
				_, err := fmt.Fprintf(out, "entries: %d, branches: %d, collisions: %d, max depth: %d\n",
					st.Entries, st.Branches, st.Collisions, st.MaxDepth)
				return err
			}

			return set.Fprint(out)
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "print the trie statistics only")

	return cmd
}
