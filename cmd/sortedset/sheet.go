// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gaissmai/sortedset/sheet"
)

func newSheetCmd() *cobra.Command {
	var (
		accept bool
		reset  bool
		out    string
	)

	cmd := &cobra.Command{
		Use:   "sheet <file.yaml>",
		Short: "Load a property sheet and print its terms per kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if accept && reset {
				return errors.New("--accept and --reset are mutually exclusive")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open sheet")
			}
			defer f.Close()

			sh, err := sheet.Load(f)
			if err != nil {
				return errors.Wrapf(err, "load %s", args[0])
			}

			w := cmd.OutOrStdout()

			var changes []sheet.Change
			switch {
			case accept:
				changes = sh.AcceptAll()
			case reset:
				changes = sh.ResetAll()
			}
			for _, c := range changes {
				fmt.Fprintf(w, "~ %s\n", &sheet.Term{Kind: c.Kind, Value: c.Value, Status: c.Status})
			}

			if out != "" {
				o, err := os.Create(out)
				if err != nil {
					return errors.Wrap(err, "create output")
				}
				defer o.Close()

				return sh.Store(o)
			}

			for _, kind := range sh.Kinds() {
				label := kind
				if label == sheet.KindTag {
					label = "tags"
				}
				fmt.Fprintf(w, "[%s]\n", label)

				for t := range sh.Terms(kind) {
					fmt.Fprintf(w, "  %s\n", t)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "commit all pending changes before printing")
	cmd.Flags().BoolVar(&reset, "reset", false, "revert all pending changes before printing")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the sheet as YAML to this file instead of printing")

	return cmd
}
