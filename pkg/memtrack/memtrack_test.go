// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memtrack

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerSamplesOnInterval(t *testing.T) {
	var mu sync.Mutex
	var samples []Sample

	tr := NewTracker(5*time.Millisecond, func(s Sample) {
		mu.Lock()
		defer mu.Unlock()
		samples = append(samples, s)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go tr.Run(ctx, &wg)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, samples)
	assert.Greater(t, samples[0].AllocBytes, uint64(0))
}

func TestTrackerDisabledByNonPositiveInterval(t *testing.T) {
	called := false
	tr := NewTracker(0, func(Sample) { called = true })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	tr.Run(ctx, &wg)

	assert.False(t, called)
}
