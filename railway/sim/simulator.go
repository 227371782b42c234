// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sim is an in-process stand-in for the model railway: it moves the
// locomotives, fires their contacts and keeps the switch positions.
package sim

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultTick = 50 * time.Millisecond

// Simulator advances every locomotive once per tick.
type Simulator struct {
	tick     time.Duration
	switches *SwitchBoard

	mu          sync.Mutex
	locomotives []*Locomotive
	stopped     bool
}

func NewSimulator(tick time.Duration) *Simulator {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Simulator{tick: tick, switches: NewSwitchBoard()}
}

func (s *Simulator) Switches() *SwitchBoard {
	return s.switches
}

func (s *Simulator) Add(l *Locomotive) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locomotives = append(s.locomotives, l)
}

func (s *Simulator) Locomotives() []*Locomotive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Locomotive(nil), s.locomotives...)
}

// Step advances every locomotive by one tick.
func (s *Simulator) Step() {
	for _, l := range s.Locomotives() {
		l.advance()
	}
}

// Run ticks until ctx ends.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	log.Debugf("Simulation running, tick %s", s.tick)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}

// EmergencyStop halts every locomotive and zeroes its speed.
func (s *Simulator) EmergencyStop() {
	s.mu.Lock()
	s.stopped = true
	locomotives := append([]*Locomotive(nil), s.locomotives...)
	s.mu.Unlock()

	for _, l := range locomotives {
		l.halt()
	}
	log.Warn("STOP!")
}

// Stopped reports whether EmergencyStop was triggered.
func (s *Simulator) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
