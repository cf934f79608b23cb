// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func TestPutCommitGetLatestRoundTrips(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	point := uuid.New()
	t0 := temporal.FromMillis(1_700_000_000_000)

	require.NoError(t, s.Put(ctx, []value.PointValue{{PointUUID: point, Timestamp: t0, Value: value.Long(42)}}))
	require.NoError(t, s.Commit(ctx))

	got, ok, err := s.GetLatest(ctx, point, t0)
	require.NoError(t, err)
	require.True(t, ok)
	n, _ := got.Value.Long()
	assert.Equal(t, int64(42), n)
}

func TestGetRangeIsAscendingByTimestamp(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	point := uuid.New()
	base := temporal.FromMillis(1_700_000_000_000)

	for i, n := range []int64{3, 1, 2} {
		ts := base.AfterElapsed(temporal.ElapsedFromMillis(int64(i) * 1000))
		require.NoError(t, s.Put(ctx, []value.PointValue{{PointUUID: point, Timestamp: ts, Value: value.Long(n)}}))
	}
	require.NoError(t, s.Commit(ctx))

	vals, err := s.GetRange(ctx, point, temporal.Unbounded, 0)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	for i := 1; i < len(vals); i++ {
		assert.True(t, vals[i].Timestamp.After(vals[i-1].Timestamp) || vals[i].Timestamp.Equal(vals[i-1].Timestamp))
	}
}

func TestPurgeRemovesWithinInterval(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	point := uuid.New()
	t0 := temporal.FromMillis(1_700_000_000_000)

	require.NoError(t, s.Put(ctx, []value.PointValue{{PointUUID: point, Timestamp: t0, Value: value.Long(1)}}))
	require.NoError(t, s.Commit(ctx))

	n, err := s.Purge(ctx, point, temporal.Unbounded)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, ok, err := s.GetLatest(ctx, point, t0)
	require.NoError(t, err)
	assert.False(t, ok)
}
