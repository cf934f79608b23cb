// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/xapiens/RVPF-sub009/pkg/batch"
)

func TestPrometheusRecordsEachHook(t *testing.T) {
	p := Prometheus{}

	p.NoticeReceived(batch.NoticeValue)
	before := testutil.ToFloat64(noticesReceived.WithLabelValues("value"))
	p.NoticeReceived(batch.NoticeValue)
	after := testutil.ToFloat64(noticesReceived.WithLabelValues("value"))
	assert.Equal(t, before+1, after)

	p.PendingDepth(7)
	assert.Equal(t, float64(7), testutil.ToFloat64(pendingDepth))

	p.BatchCommitted(5 * time.Millisecond)

	p.TransformFailed("TEMP")
	assert.Equal(t, float64(1), testutil.ToFloat64(transformFailures.WithLabelValues("TEMP")))
}
