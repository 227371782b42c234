// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package station holds trains at the station until every party has arrived.
package station

import (
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/statejson"
)

// DefaultPause is the simulated boarding time once every train is in.
const DefaultPause = 2 * time.Second

// ErrCanceled is returned to waiters once the rendezvous is canceled without a cause.
var ErrCanceled = errors.New("ErrRendezvousCanceled")

// ErrIntegrity is returned when the rendezvous is built for no party.
var ErrIntegrity = errors.New("ErrRendezvousIntegrity")

// Rendezvous is a reusable N-party barrier. The call completing a round
// performs the pause, then releases the other N-1.
type Rendezvous struct {
	cond     *sync.Cond
	parties  int
	arrived  int
	round    uint64
	pause    time.Duration
	sleep    func(time.Duration)
	canceled bool
	err      error
}

// Option configures a Rendezvous.
type Option func(*Rendezvous)

// WithPause overrides DefaultPause.
func WithPause(d time.Duration) Option {
	return func(r *Rendezvous) { r.pause = d }
}

// WithSleep replaces time.Sleep, mostly for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(r *Rendezvous) { r.sleep = sleep }
}

// NewRendezvous returns a barrier for parties trains.
func NewRendezvous(parties int, opts ...Option) (*Rendezvous, error) {
	if parties < 1 {
		return nil, ErrIntegrity
	}
	r := &Rendezvous{
		cond:    sync.NewCond(&sync.Mutex{}),
		parties: parties,
		pause:   DefaultPause,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Arrive blocks trainID until the round is complete.
func (r *Rendezvous) Arrive(trainID int) error {
	r.cond.L.Lock()
	if r.canceled {
		err := r.cancelCause()
		r.cond.L.Unlock()
		return err
	}

	r.arrived++
	round := r.round
	logger := log.WithFields(log.Fields{"train": trainID, "round": round})

	if r.arrived < r.parties {
		logger.Debugf("Waiting at the station (%d/%d)", r.arrived, r.parties)
		for r.round == round && !r.canceled {
			r.cond.Wait()
		}
		defer r.cond.L.Unlock()
		if r.round == round {
			return r.cancelCause()
		}
		return nil
	}

	// the other parties stay parked until round advances
	r.arrived = 0
	r.cond.L.Unlock()

	logger.Infof("All %d trains at the station, boarding for %s", r.parties, r.pause)
	r.sleep(r.pause)

	r.cond.L.Lock()
	r.round++
	r.cond.Broadcast()
	r.cond.L.Unlock()
	return nil
}

func (r *Rendezvous) cancelCause() error {
	if r.err != nil {
		return r.err
	}
	return ErrCanceled
}

// CancelWithError releases every waiter with err.
func (r *Rendezvous) CancelWithError(err error) {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	if r.canceled {
		return
	}
	r.canceled = true
	r.err = err
	r.cond.Broadcast()
}

// Round is the number of completed rounds.
func (r *Rendezvous) Round() uint64 {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	return r.round
}

func (r *Rendezvous) Describe() statejson.StationDescription {
	r.cond.L.Lock()
	defer r.cond.L.Unlock()
	return statejson.StationDescription{Parties: r.parties, Arrived: r.arrived, Rounds: r.round}
}
