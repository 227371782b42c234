// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.amzn.com/trainsim/railway/interop"
	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/trajectory"
)

const minimal = `
section: { entrance: 33, exit: 24 }
trains:
  - id: 0
    speed: 15
    contacts: [15, 16, 23, 24, 22, 28, 33, 34, 5, 6, 7, 14]
    station: 6
    start: { behind: 14, ahead: 7 }
`

func TestDefaultScenario(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	assert.Equal(t, ArbiterFIFO, s.Arbiter)
	assert.Equal(t, section.HighestFirst, s.Mode())
	assert.Equal(t, trajectory.Buffers{Incoming: 2, Outgoing: 1}, s.Buffers)
	assert.Equal(t, 2*time.Second, s.Pause())
	require.Len(t, s.Trains, 2)

	switches, err := s.InitialSwitches()
	require.NoError(t, err)
	assert.Len(t, switches, 24)
	assert.Equal(t, interop.SwitchSetting{Switch: 14, Direction: interop.Deviated}, switches[13])

	for _, train := range s.Trains {
		_, _, err := trajectory.Build(s.Layout(train), s.Buffers)
		assert.NoError(t, err, "train %d", train.ID)
	}

	cfg, err := s.ControllerConfig(s.Trains[1])
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ID)
	assert.Equal(t, 2, cfg.Priority)
	assert.Equal(t, 1, cfg.MinTrips)
	assert.Equal(t, 10, cfg.MaxTrips)
	assert.Equal(t, []interop.SwitchSetting{{Switch: 14, Direction: interop.Straight}, {Switch: 21, Direction: interop.Straight}}, cfg.SectionSwitches)
}

func TestDefaultsApplied(t *testing.T) {
	s, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, ArbiterFIFO, s.Arbiter)
	assert.Equal(t, trajectory.DefaultBuffers, s.Buffers)
	assert.Equal(t, Trips{Min: 1, Max: 10}, s.Trips)
	assert.Equal(t, 2*time.Second, s.Pause())
	assert.False(t, s.Trains[0].WrittenForward)
	assert.Empty(t, s.Switches)
}

func TestPriorityScenario(t *testing.T) {
	s, err := Parse([]byte("arbiter: priority\npriorityMode: LOW\nstationPause: 150ms\n" + minimal))
	require.NoError(t, err)
	assert.Equal(t, ArbiterPriority, s.Arbiter)
	assert.Equal(t, section.LowestFirst, s.Mode())
	assert.Equal(t, 150*time.Millisecond, s.Pause())
}

func TestRejectedScenarios(t *testing.T) {
	testCases := map[string]string{
		"not yaml":          "trains: [",
		"no trains":         "section: { entrance: 33, exit: 24 }\n",
		"empty trains":      "section: { entrance: 33, exit: 24 }\ntrains: []\n",
		"unknown field":     "colour: red\n" + minimal,
		"unknown arbiter":   "arbiter: random\n" + minimal,
		"zero buffer":       "buffers: { incoming: 0 }\n" + minimal,
		"bad pause":         "stationPause: soon\n" + minimal,
		"bad switch":        "switches: [{ switch: 1, direction: left }]\n" + minimal,
		"trip bounds":       "trips: { min: 5, max: 2 }\n" + minimal,
		"negative contact":  "section: { entrance: -1, exit: 24 }\ntrains: []\n",
		"duplicate contact": "section: { entrance: 33, exit: 24 }\ntrains:\n  - { id: 0, speed: 1, contacts: [1, 1], station: 1, start: { behind: 1, ahead: 1 } }\n",
		"duplicate train":   minimal + "  - { id: 0, speed: 1, contacts: [1, 2], station: 1, start: { behind: 1, ahead: 2 } }\n",
	}
	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, trajectory.ErrInvalidScenario), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Len(t, s.Trains, 2)

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0600))
	s, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Trains, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
