// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package simulation assembles a scenario into running trains: one
// controller per train, the shared section, the station and the simulated track.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/config"
	"go.amzn.com/trainsim/railway/control"
	"go.amzn.com/trainsim/railway/controller"
	"go.amzn.com/trainsim/railway/fatalerror"
	"go.amzn.com/trainsim/railway/interop"
	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/sim"
	"go.amzn.com/trainsim/railway/statejson"
	"go.amzn.com/trainsim/railway/station"
	"go.amzn.com/trainsim/railway/supervisor"
	"go.amzn.com/trainsim/railway/trajectory"
)

// Options override the scenario for one run.
type Options struct {
	// Arbiter is "fifo" or "priority". Empty keeps the scenario's choice.
	Arbiter string
	Seed    int64
	// Pause overrides the station pause when positive.
	Pause   time.Duration
	Tick    time.Duration
	Display interop.MessageSink
	// Sleep replaces time.Sleep for the station pause.
	Sleep func(time.Duration)
}

// Simulation is one run of a scenario.
type Simulation struct {
	runID       uuid.UUID
	simulator   *sim.Simulator
	arbiter     section.Arbiter
	station     *station.Rendezvous
	controllers []*controller.Controller
}

func newArbiter(kind string, mode section.PriorityMode) (section.Arbiter, error) {
	switch kind {
	case config.ArbiterFIFO:
		return section.NewSection(), nil
	case config.ArbiterPriority:
		return section.NewPrioritySection(mode), nil
	}
	return nil, &trajectory.ConfigurationError{Type: fatalerror.InvalidScenario, Reason: fmt.Sprintf("unknown arbiter %q", kind)}
}

// New validates every train of s and wires it to the simulated track.
func New(s *config.Scenario, opts Options) (*Simulation, error) {
	kind := s.Arbiter
	if opts.Arbiter != "" {
		kind = opts.Arbiter
	}
	arbiter, err := newArbiter(kind, s.Mode())
	if err != nil {
		return nil, err
	}

	pause := s.Pause()
	if opts.Pause > 0 {
		pause = opts.Pause
	}
	stationOpts := []station.Option{station.WithPause(pause)}
	if opts.Sleep != nil {
		stationOpts = append(stationOpts, station.WithSleep(opts.Sleep))
	}
	meeting, err := station.NewRendezvous(len(s.Trains), stationOpts...)
	if err != nil {
		return nil, err
	}

	simulator := sim.NewSimulator(opts.Tick)
	switches, err := s.InitialSwitches()
	if err != nil {
		return nil, err
	}
	for _, setting := range switches {
		simulator.Switches().SetSwitch(setting.Switch, setting.Direction)
	}

	simulation := &Simulation{
		runID:     uuid.New(),
		simulator: simulator,
		arbiter:   arbiter,
		station:   meeting,
	}

	for _, train := range s.Trains {
		index, start, err := trajectory.Build(s.Layout(train), s.Buffers)
		if err != nil {
			return nil, fmt.Errorf("train %d: %w", train.ID, err)
		}

		loco, err := sim.NewLocomotive(train.ID, index.Trajectory(), train.Start.Behind, train.Start.Ahead, train.Speed)
		if err != nil {
			return nil, fmt.Errorf("train %d: %w", train.ID, err)
		}
		simulator.Add(loco)

		cfg, err := s.ControllerConfig(train)
		if err != nil {
			return nil, fmt.Errorf("train %d: %w", train.ID, err)
		}
		cfg.Rand = rand.New(rand.NewSource(opts.Seed + int64(train.ID)))

		c, err := controller.New(cfg, index, start, controller.Collaborators{
			Locomotive: loco,
			Contacts:   loco,
			Switches:   simulator.Switches(),
			Display:    opts.Display,
		}, arbiter, meeting)
		if err != nil {
			return nil, fmt.Errorf("train %d: %w", train.ID, err)
		}
		simulation.controllers = append(simulation.controllers, c)
	}

	log.WithField("run", simulation.runID.String()).Infof("Simulation ready: %d trains, %s arbiter, station pause %s", len(s.Trains), kind, pause)
	return simulation, nil
}

// RunID identifies this run in the state output.
func (s *Simulation) RunID() string {
	return s.runID.String()
}

// Run drives the track and every train until ctx ends or one of them fails.
func (s *Simulation) Run(ctx context.Context) error {
	sup := supervisor.New(ctx, s.arbiter, s.station)
	sup.Go("simulator", s.simulator.Run)
	for _, c := range s.controllers {
		sup.Go(fmt.Sprintf("train %d", c.Snapshot().ID), c.Run)
	}
	return sup.Wait()
}

func (s *Simulation) InternalState() *statejson.InternalStateDescription {
	state := &statejson.InternalStateDescription{
		RunID:    s.runID.String(),
		Section:  s.arbiter.Describe(),
		Station:  s.station.Describe(),
		Switches: s.simulator.Switches().Describe(),
	}
	for _, c := range s.controllers {
		state.Trains = append(state.Trains, c.Snapshot())
	}
	return state
}

func (s *Simulation) TogglePriorityMode() (section.PriorityMode, error) {
	p, ok := s.arbiter.(*section.PrioritySection)
	if !ok {
		return section.HighestFirst, control.ErrNotPriority
	}
	return p.TogglePriorityMode(), nil
}

func (s *Simulation) EmergencyStop() {
	s.simulator.EmergencyStop()
}
