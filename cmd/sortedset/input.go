// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gaissmai/sortedset"
)

// keyOfLine, lines are their own keys
func keyOfLine(s string) []byte {
	return []byte(s)
}

// readSet inserts every line of the file in args, or stdin, into a new set.
func readSet(cmd *cobra.Command, args []string) (*sortedset.Set[string], error) {
	var r io.Reader = cmd.InOrStdin()
	name := "stdin"

	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()

		r, name = f, args[0]
	}

	set := sortedset.New(keyOfLine)

	lines := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		set.Insert(sc.Text())
		lines++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}

	log.WithField("input", name).Debugf("read %d lines, %d unique", lines, set.Len())

	return set, nil
}
