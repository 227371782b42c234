// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/trajectory"
)

// referenceSpeed is the distance between two contacts, in speed units per tick.
const referenceSpeed = 20

// Locomotive moves along its trajectory one contact at a time and publishes
// every contact it reaches on its own bus.
type Locomotive struct {
	*ContactBus

	mu         sync.Mutex
	number     int
	trajectory *trajectory.Trajectory
	ahead      int
	direction  trajectory.Direction
	speed      int
	running    bool
	halted     bool
	lights     bool
	// progress is the distance covered since the last contact.
	progress int
}

// NewLocomotive places a locomotive between behind and ahead, heading to ahead.
func NewLocomotive(number int, t *trajectory.Trajectory, behind, ahead trajectory.Contact, speed int) (*Locomotive, error) {
	b, err := t.IndexOf(behind)
	if err != nil {
		return nil, err
	}
	a, err := t.IndexOf(ahead)
	if err != nil {
		return nil, err
	}
	d := trajectory.Forward
	if t.Step(b, trajectory.Backward, 1) == a {
		d = trajectory.Backward
	}
	return &Locomotive{
		ContactBus: NewContactBus(),
		number:     number,
		trajectory: t,
		ahead:      a,
		direction:  d,
		speed:      speed,
	}, nil
}

func (l *Locomotive) Number() int { return l.number }

func (l *Locomotive) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = true
}

func (l *Locomotive) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
}

func (l *Locomotive) SetSpeed(v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.speed = v
}

func (l *Locomotive) Speed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.speed
}

// Reverse turns the locomotive around. Unless it stands right on it, the
// contact it just left is ahead again.
func (l *Locomotive) Reverse() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.progress == 0 {
		l.ahead = l.trajectory.Step(l.ahead, l.direction, -2)
	} else {
		l.ahead = l.trajectory.Step(l.ahead, l.direction, -1)
		l.progress = referenceSpeed - l.progress
	}
	l.direction = l.direction.Reverse()
	log.WithField("train", l.number).Debugf("Locomotive reversed, now heading %s", l.direction)
}

func (l *Locomotive) SetHeadlights(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lights = on
}

// Ahead returns the next contact on the way.
func (l *Locomotive) Ahead() trajectory.Contact {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.trajectory.At(l.ahead)
}

// Moving reports whether the motor runs with a non-zero speed.
func (l *Locomotive) Moving() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running && l.speed > 0 && !l.halted
}

// halt stops the locomotive for good. Later commands are accepted but it no longer moves.
func (l *Locomotive) halt() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.halted = true
	l.running = false
	l.speed = 0
}

// advance moves by one tick worth of speed and publishes the contacts reached.
func (l *Locomotive) advance() {
	l.mu.Lock()
	if !l.running || l.speed <= 0 || l.halted {
		l.mu.Unlock()
		return
	}
	l.progress += l.speed
	var reached []trajectory.Contact
	for l.progress >= referenceSpeed {
		l.progress -= referenceSpeed
		reached = append(reached, l.trajectory.At(l.ahead))
		l.ahead = l.trajectory.Step(l.ahead, l.direction, 1)
	}
	l.mu.Unlock()

	for _, c := range reached {
		log.WithFields(log.Fields{"train": l.number, "contact": c}).Trace("Contact reached")
		l.Publish(c)
	}
}
