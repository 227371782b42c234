// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/station"
)

func TestShutdownReleasesParkedTasks(t *testing.T) {
	s := section.NewSection()
	require.True(t, s.TryAcquire(1))

	ctx, cancel := context.WithCancel(context.Background())
	sup := New(ctx, s)

	parked := make(chan error, 1)
	sup.Go("train 0", func(context.Context) error {
		err := s.Acquire(0)
		parked <- err
		return err
	})
	sup.Go("ticker", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.Eventually(t, func() bool { return s.Describe().Waiting == 1 }, time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, sup.Wait())
	assert.Equal(t, context.Canceled, <-parked)
}

func TestFailingTaskCancelsFlowsWithItsError(t *testing.T) {
	r, err := station.NewRendezvous(2)
	require.NoError(t, err)
	sup := New(context.Background(), r)

	derailed := errors.New("derailed")
	arrived := make(chan error, 1)
	sup.Go("train 0", func(context.Context) error {
		err := r.Arrive(0)
		arrived <- err
		return err
	})
	assert.Eventually(t, func() bool { return r.Describe().Arrived == 1 }, time.Second, time.Millisecond)

	sup.Go("train 1", func(context.Context) error { return derailed })

	assert.Equal(t, derailed, sup.Wait())
	assert.Equal(t, derailed, <-arrived)
}

func TestStop(t *testing.T) {
	sup := New(context.Background())
	sup.Go("loop", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	sup.Stop()
	assert.NoError(t, sup.Wait())
}
