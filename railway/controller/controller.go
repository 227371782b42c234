// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package controller drives one train around its loop: it reserves the
// shared section ahead of it, crosses it, and meets the other trains at the
// station once its trips are done.
package controller

import (
	"context"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/fatalerror"
	"go.amzn.com/trainsim/railway/interop"
	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/statejson"
	"go.amzn.com/trainsim/railway/trajectory"
)

const (
	DefaultMinTrips = 1
	DefaultMaxTrips = 10
)

// Station is where trains meet before reversing.
type Station interface {
	Arrive(trainID int) error
}

// Config holds the per-train settings.
type Config struct {
	ID       int
	Priority int
	MinTrips int
	MaxTrips int
	// SectionSwitches are set once the section is held, before the train enters it.
	SectionSwitches []interop.SwitchSetting
	// Rand draws trip counts. Seeded from the clock when nil.
	Rand *rand.Rand
}

// Collaborators are the devices the controller commands.
type Collaborators struct {
	Locomotive interop.Locomotive
	Contacts   interop.ContactSource
	Switches   interop.SwitchActuator
	Display    interop.MessageSink
}

// Controller owns the phase, direction and trip count of one train.
type Controller struct {
	cfg     Config
	index   *trajectory.Index
	devices Collaborators
	section section.Arbiter
	station Station
	rand    *rand.Rand

	mu            sync.Mutex
	phase         trajectory.Target
	step          string
	direction     trajectory.Direction
	tripsLeft     int
	reserve       trajectory.Contact
	release       trajectory.Contact
	sectionRounds uint64
	stationRounds uint64
}

// New validates the trip bounds and prepares a controller starting as described by start.
func New(cfg Config, index *trajectory.Index, start trajectory.Start, devices Collaborators, arbiter section.Arbiter, station Station) (*Controller, error) {
	if cfg.MinTrips < 1 || cfg.MaxTrips < cfg.MinTrips {
		return nil, &trajectory.ConfigurationError{
			Type:   fatalerror.InvalidScenario,
			Reason: "trip bounds must satisfy 1 <= min <= max",
		}
	}

	r := cfg.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		cfg:       cfg,
		index:     index,
		devices:   devices,
		section:   arbiter,
		station:   station,
		rand:      r,
		phase:     start.Target,
		step:      "idle",
		direction: start.Direction,
	}
	c.tripsLeft = c.drawTrips()
	c.reserve, c.release = index.ReservationPoint(c.direction), index.ReleasePoint(c.direction)
	return c, nil
}

func (c *Controller) drawTrips() int {
	return c.cfg.MinTrips + c.rand.Intn(c.cfg.MaxTrips-c.cfg.MinTrips+1)
}

func (c *Controller) message(msg string) {
	log.WithField("train", c.cfg.ID).Debug(msg)
	if c.devices.Display != nil {
		c.devices.Display.Message(c.cfg.ID, msg)
	}
}

func (c *Controller) setStep(step string) {
	c.mu.Lock()
	c.step = step
	c.mu.Unlock()
}

func (c *Controller) waitFor(ctx context.Context, step string, contact trajectory.Contact) error {
	c.setStep(step)
	return c.devices.Contacts.WaitForContact(ctx, contact)
}

// Run starts the locomotive and alternates between the section and the
// station until ctx ends or a shared primitive is canceled.
func (c *Controller) Run(ctx context.Context) error {
	loco := c.devices.Locomotive
	loco.SetHeadlights(true)
	loco.Start()
	c.message("Ready!")
	log.WithField("train", c.cfg.ID).Infof("Train started %s, %s, %s", c.direction, c.phase, c.index)

	for {
		c.mu.Lock()
		phase := c.phase
		c.mu.Unlock()

		var err error
		if phase == trajectory.TowardSection {
			err = c.crossSection(ctx)
		} else {
			err = c.visitStation(ctx)
		}
		if err != nil {
			c.setStep("stopped")
			log.WithError(err).WithField("train", c.cfg.ID).Debug("Controller stopped")
			return err
		}
	}
}

func (c *Controller) crossSection(ctx context.Context) error {
	c.mu.Lock()
	direction, reserve, release := c.direction, c.reserve, c.release
	c.mu.Unlock()

	if err := c.waitFor(ctx, "approaching section", reserve); err != nil {
		return err
	}

	if r, ok := c.section.(section.Requester); ok {
		r.Request(c.cfg.ID, c.cfg.Priority)
	}
	c.message("Shared section requested.")

	if !c.section.TryAcquire(c.cfg.ID) {
		loco := c.devices.Locomotive
		speed := loco.Speed()
		loco.Stop()
		c.setStep("waiting for section")
		if err := c.section.Acquire(c.cfg.ID); err != nil {
			return err
		}
		loco.SetSpeed(speed)
		loco.Start()
	}

	for _, s := range c.cfg.SectionSwitches {
		c.devices.Switches.SetSwitch(s.Switch, s.Direction)
	}

	if err := c.waitFor(ctx, "entering section", c.index.EntryContact(direction)); err != nil {
		return err
	}
	c.message("Shared section entered.")

	if err := c.waitFor(ctx, "in section", c.index.ExitContact(direction)); err != nil {
		return err
	}
	c.message("Exit from shared section.")

	if err := c.waitFor(ctx, "leaving section", release); err != nil {
		return err
	}
	c.message("Shared section liberated.")

	if err := c.section.Release(c.cfg.ID); err != nil {
		return err
	}

	c.mu.Lock()
	c.phase = trajectory.TowardStation
	c.sectionRounds++
	c.mu.Unlock()
	return nil
}

func (c *Controller) visitStation(ctx context.Context) error {
	if err := c.waitFor(ctx, "approaching station", c.index.Station()); err != nil {
		return err
	}
	c.message("Arrived at the station.")

	c.mu.Lock()
	c.tripsLeft--
	done := c.tripsLeft == 0
	c.mu.Unlock()

	if done {
		loco := c.devices.Locomotive
		speed := loco.Speed()
		loco.SetSpeed(0)

		c.message("Stopped at station. Synchronizing...")
		c.setStep("at station")
		if err := c.station.Arrive(c.cfg.ID); err != nil {
			return err
		}

		loco.Reverse()
		c.mu.Lock()
		c.direction = c.direction.Reverse()
		c.reserve, c.release = c.index.ReservationPoint(c.direction), c.index.ReleasePoint(c.direction)
		c.tripsLeft = c.drawTrips()
		c.stationRounds++
		c.mu.Unlock()
		c.message("Reverse course.")

		loco.SetSpeed(speed)
	}

	c.mu.Lock()
	c.phase = trajectory.TowardSection
	c.mu.Unlock()
	return nil
}

// Snapshot returns the last published state of the train.
func (c *Controller) Snapshot() statejson.TrainDescription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return statejson.TrainDescription{
		ID:             c.cfg.ID,
		Phase:          c.phase.String(),
		Step:           c.step,
		Direction:      c.direction.String(),
		TripsLeft:      c.tripsLeft,
		ReserveContact: int(c.reserve),
		ReleaseContact: int(c.release),
		Speed:          c.devices.Locomotive.Speed(),
		SectionRounds:  c.sectionRounds,
		StationRounds:  c.stationRounds,
	}
}
