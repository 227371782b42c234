// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amzn.com/trainsim/railway/config"
	"go.amzn.com/trainsim/railway/control"
	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/testdata/mocktrack"
	"go.amzn.com/trainsim/railway/trajectory"
)

func scenario(t *testing.T) *config.Scenario {
	s, err := config.Default()
	require.NoError(t, err)
	s.Trips = config.Trips{Min: 1, Max: 2}
	return s
}

func TestRunBothTrains(t *testing.T) {
	display := mocktrack.NewDisplay()
	simulation, err := New(scenario(t), Options{
		Arbiter: config.ArbiterPriority,
		Seed:    3,
		Tick:    2 * time.Millisecond,
		Display: display,
		Sleep:   func(time.Duration) {},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- simulation.Run(ctx) }()

	assert.Eventually(t, func() bool {
		state := simulation.InternalState()
		for _, train := range state.Trains {
			if train.SectionRounds < 2 || train.StationRounds < 1 {
				return false
			}
		}
		return state.Station.Rounds >= 1
	}, 10*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("simulation did not stop")
	}

	state := simulation.InternalState()
	assert.Equal(t, simulation.RunID(), state.RunID)
	assert.Equal(t, "priority", state.Section.Kind)
	assert.Equal(t, 2, state.Station.Parties)
	require.Len(t, state.Trains, 2)
	for _, train := range state.Trains {
		assert.Equal(t, "stopped", train.Step)
		assert.True(t, display.Contains(train.ID, "Ready!", 1))
		assert.True(t, display.Contains(train.ID, "Shared section liberated.", 2))
	}
}

func TestInternalStateBeforeRun(t *testing.T) {
	simulation, err := New(scenario(t), Options{})
	require.NoError(t, err)

	state := simulation.InternalState()
	assert.Equal(t, "fifo", state.Section.Kind)
	assert.False(t, state.Section.Held)
	assert.Equal(t, "deviated", state.Switches["14"])
	assert.Equal(t, "straight", state.Switches["1"])
	require.Len(t, state.Trains, 2)

	assert.Equal(t, "TowardStation", state.Trains[0].Phase)
	assert.Equal(t, "backward", state.Trains[0].Direction)
	assert.Equal(t, 5, state.Trains[0].ReserveContact)
	assert.Equal(t, 23, state.Trains[0].ReleaseContact)
	assert.Equal(t, 15, state.Trains[0].Speed)

	assert.Equal(t, "forward", state.Trains[1].Direction)
	assert.Equal(t, 13, state.Trains[1].ReserveContact)
	assert.Equal(t, 31, state.Trains[1].ReleaseContact)
}

func TestTogglePriorityMode(t *testing.T) {
	fifo, err := New(scenario(t), Options{})
	require.NoError(t, err)
	_, err = fifo.TogglePriorityMode()
	assert.Equal(t, control.ErrNotPriority, err)

	priority, err := New(scenario(t), Options{Arbiter: config.ArbiterPriority})
	require.NoError(t, err)
	mode, err := priority.TogglePriorityMode()
	require.NoError(t, err)
	assert.Equal(t, section.LowestFirst, mode)
	assert.Equal(t, "LOW", priority.InternalState().Section.Mode)
}

func TestEmergencyStop(t *testing.T) {
	simulation, err := New(scenario(t), Options{})
	require.NoError(t, err)
	simulation.EmergencyStop()
	for _, train := range simulation.InternalState().Trains {
		assert.Equal(t, 0, train.Speed)
	}
}

func TestRejectsInvalidTrain(t *testing.T) {
	s := scenario(t)
	s.Trains[1].Station = 28
	_, err := New(s, Options{})
	assert.True(t, errors.Is(err, trajectory.ErrInvalidStation), "got %v", err)
	assert.Contains(t, err.Error(), "train 1")

	_, err = New(scenario(t), Options{Arbiter: "random"})
	assert.True(t, errors.Is(err, trajectory.ErrInvalidScenario))
}
