// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"

	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

// Store is the value-store contract as seen by the batch engine. It is
// declared locally (rather than imported from pkg/store) so the engine
// depends only on the shape it needs: put(values), getRange(point,
// interval), getLatest(point) — the store is an external collaborator.
type Store interface {
	Put(ctx context.Context, values []value.PointValue) error
	GetRange(ctx context.Context, point uuid.UUID, interval temporal.Interval, limit int) ([]value.PointValue, error)
	GetLatest(ctx context.Context, point uuid.UUID, atOrBefore temporal.Timestamp) (value.PointValue, bool, error)
	Purge(ctx context.Context, point uuid.UUID, interval temporal.Interval) (int, error)
	Commit(ctx context.Context) error
}

// Messaging is the sender-side messaging contract: the engine depends
// only on send(values) and commit().
type Messaging interface {
	Send(values []value.PointValue) error
	Commit() error
}
