// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaissmai/sortedset"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Operations.WithLabelValues("inserted").Add(3)
	m.Operations.WithLabelValues("deleted").Inc()
	m.ObserveShape(sortedset.Stats{Entries: 2, Branches: 1, Collisions: 0, MaxDepth: 1})

	assert.InDelta(t, 3, testutil.ToFloat64(m.Operations.WithLabelValues("inserted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Operations.WithLabelValues("deleted")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Entries), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.MaxDepth), 0)

	n, err := testutil.GatherAndCount(reg, "sortedset_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
