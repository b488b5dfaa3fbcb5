// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gaissmai/sortedset"
	"github.com/gaissmai/sortedset/internal/metrics"
)

type benchOptions struct {
	keys    int
	ops     int
	seed    uint64
	keyLen  int
	readers int

	metricsAddress string
	metricsHold    time.Duration
}

func newBenchCmd() *cobra.Command {
	opts := &benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a seeded random insert/delete workload, verified against a sorted slice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := prometheus.NewRegistry()
			m := metrics.New(reg)

			if opts.metricsAddress != "" {
				srv := serveMetrics(opts.metricsAddress, reg)
				defer srv.Close()
			}

			res, err := runBench(cmd.Context(), opts, m)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ops: %d, inserted: %d, replaced: %d, deleted: %d, noop: %d, entries: %d, elapsed: %v\n",
				opts.ops, res.inserted, res.replaced, res.deleted, res.noop, res.entries, res.elapsed)

			if opts.metricsAddress != "" && opts.metricsHold > 0 {
				log.Infof("holding metrics for %v", opts.metricsHold)
				select {
				case <-time.After(opts.metricsHold):
				case <-cmd.Context().Done():
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&opts.keys, "keys", 100, "size of the key pool")
	cmd.Flags().IntVar(&opts.ops, "ops", 1000, "number of operations")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1770278786, "PRNG seed")
	cmd.Flags().IntVar(&opts.keyLen, "key-len", 12, "max. key length in bytes")
	cmd.Flags().IntVar(&opts.readers, "readers", 0, "concurrent readers on published versions of the set")
	cmd.Flags().StringVar(&opts.metricsAddress, "metrics.address", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().DurationVar(&opts.metricsHold, "metrics.hold", 0, "keep serving metrics after the run")

	return cmd
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	log.WithField("url", fmt.Sprintf("http://%s/metrics", addr)).Info("serving metrics")
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped working")
		}
	}()

	return srv
}

type benchResult struct {
	inserted, replaced, deleted, noop int
	entries                           int
	elapsed                           time.Duration
}

// runBench drives a set with random operations and checks every result,
// including the successor handed to the callback, against a sorted slice.
func runBench(ctx context.Context, opts *benchOptions, m *metrics.Metrics) (res benchResult, err error) {
	if opts.keys <= 0 || opts.ops < 0 || opts.keyLen <= 0 {
		return res, errors.Errorf("invalid workload: keys %d, ops %d, key-len %d", opts.keys, opts.ops, opts.keyLen)
	}

	prng := rand.New(rand.NewPCG(opts.seed, opts.seed))

	pool := make([][]byte, opts.keys)
	for i := range pool {
		pool[i] = randomKey(prng, opts.keyLen)
	}

	keyFor := func(k []byte) []byte { return k }

	set := NewSyncSet(keyFor)
	var ref [][]byte

	// readers only exercise the published versions
	var wg sync.WaitGroup
	readCtx, cancel := context.WithCancel(ctx)
	for r := range opts.readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rp := rand.New(rand.NewPCG(opts.seed, uint64(r)))
			for readCtx.Err() == nil {
				k := pool[rp.IntN(len(pool))]
				if got, ok := set.Get(k); ok && !bytes.Equal(got, k) {
					m.Mismatches.Inc()
				}
			}
		}()
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	start := time.Now()

	for i := range opts.ops {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		key := pool[prng.IntN(len(pool))]
		insert := prng.IntN(4) != 0

		idx, found := slices.BinarySearchFunc(ref, key, bytes.Compare)

		var wantNext []byte
		if j := idx; found {
			if j+1 < len(ref) {
				wantNext = ref[j+1]
			}
		} else if j < len(ref) {
			wantNext = ref[j]
		}

		var gotNext []byte
		var gotFound bool

		t0 := time.Now()
		set.Operate(key, func(_ []byte, ok bool, next []byte, hasNext bool) ([]byte, bool) {
			gotFound = ok
			if hasNext {
				gotNext = next
			}
			return key, !insert
		})
		m.OperateSeconds.Observe(time.Since(t0).Seconds())

		if gotFound != found || !bytes.Equal(gotNext, wantNext) {
			m.Mismatches.Inc()
			return res, errors.Errorf("op %d at %q: found %v, next %q, want %v, %q",
				i, key, gotFound, gotNext, found, wantNext)
		}

		switch {
		case insert && found:
			res.replaced++
			m.Operations.WithLabelValues("replaced").Inc()
		case insert:
			ref = slices.Insert(ref, idx, key)
			res.inserted++
			m.Operations.WithLabelValues("inserted").Inc()
		case found:
			ref = slices.Delete(ref, idx, idx+1)
			res.deleted++
			m.Operations.WithLabelValues("deleted").Inc()
		default:
			res.noop++
			m.Operations.WithLabelValues("noop").Inc()
		}
	}

	res.elapsed = time.Since(start)

	final := set.Load()
	if err := compareAll(final, ref); err != nil {
		m.Mismatches.Inc()
		return res, err
	}

	res.entries = final.Len()
	m.ObserveShape(final.Stats())

	log.WithField("seed", opts.seed).Debugf("bench done, %d entries", res.entries)

	return res, nil
}

// compareAll checks the content and order of set against ref.
func compareAll(set *sortedset.Set[[]byte], ref [][]byte) error {
	if set.Len() != len(ref) {
		return errors.Errorf("set has %d entries, reference %d", set.Len(), len(ref))
	}

	i := 0
	for k := range set.All() {
		if !bytes.Equal(k, ref[i]) {
			return errors.Errorf("entry %d is %q, want %q", i, k, ref[i])
		}
		i++
	}
	return nil
}

// randomKey returns a key over a small alphabet with a shared prefix,
// to provoke collisions and deep paths.
func randomKey(prng *rand.Rand, maxLen int) []byte {
	const alphabet = "abc_\x00\xff"

	n := prng.IntN(maxLen + 1)
	key := make([]byte, n)
	for i := range key {
		key[i] = alphabet[prng.IntN(len(alphabet))]
	}
	return key
}
