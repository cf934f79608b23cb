// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package value

import (
	"github.com/google/uuid"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
)

// PointValue is the tuple (pointUUID, timestamp, state?, value?, deleted?).
// Equality for pipeline purposes is by (PointUUID, Timestamp); a later
// write at the same key replaces an earlier one.
type PointValue struct {
	PointUUID uuid.UUID
	Timestamp temporal.Timestamp
	State     string // optional free-form status/quality string
	Value     Value
	Deleted   bool // tombstone marker, set for nullRemoves deletes
}

// NullPointValue constructs the sentinel NULL PointValue used to flush queues: when
// the batch engine sees one, it commits the current batch.
func NullPointValue() PointValue {
	return PointValue{Timestamp: temporal.InvalidTimestamp}
}

// IsNull reports whether pv is the flush sentinel.
func (pv PointValue) IsNull() bool {
	return pv.Timestamp == temporal.InvalidTimestamp && pv.PointUUID == uuid.Nil
}

// Key returns the (PointUUID, Timestamp) identity used for comparison,
// update-replacement, and store idempotency.
func (pv PointValue) Key() (uuid.UUID, temporal.Timestamp) {
	return pv.PointUUID, pv.Timestamp
}

// SameKey reports whether pv and other identify the same (point, timestamp)
// slot — i.e. whether other is an update superseding pv.
func (pv PointValue) SameKey(other PointValue) bool {
	return pv.PointUUID == other.PointUUID && pv.Timestamp == other.Timestamp
}

// Tombstone returns a delete marker PointValue for the given point/timestamp,
// used when a point configured nullRemoves receives a null write.
func Tombstone(point uuid.UUID, ts temporal.Timestamp) PointValue {
	return PointValue{PointUUID: point, Timestamp: ts, Value: Null(), Deleted: true}
}
