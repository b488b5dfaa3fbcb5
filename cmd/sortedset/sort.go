// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSortCmd() *cobra.Command {
	var (
		reverse bool
		count   bool
	)

	cmd := &cobra.Command{
		Use:   "sort [file]",
		Short: "Print the unique lines of file or stdin in byte order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := readSet(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if count {
				_, err = fmt.Fprintln(out, set.Len())
				return err
			}

			seq := set.All()
			if reverse {
				seq = set.Backward()
			}

			for line := range seq {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "descending order")
	cmd.Flags().BoolVarP(&count, "count", "c", false, "print only the number of unique lines")

	return cmd
}
