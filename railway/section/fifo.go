// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package section

import (
	"sync"

	"go.amzn.com/trainsim/railway/statejson"
)

const fifoKind = "fifo"

// Section is the baseline arbiter. Waiters are woken one at a time on release;
// admission order among them is not guaranteed.
type Section struct {
	cond     *sync.Cond
	held     bool
	current  lease
	waiting  int
	grants   uint64
	canceled bool
	err      error
}

// NewSection returns a free section.
func NewSection() *Section {
	return &Section{cond: sync.NewCond(&sync.Mutex{})}
}

func (s *Section) grantLocked(trainID int) lease {
	s.held = true
	s.current = newLease(trainID)
	s.grants++
	return s.current
}

func (s *Section) TryAcquire(trainID int) bool {
	s.cond.L.Lock()
	if s.held || s.canceled {
		s.cond.L.Unlock()
		return false
	}
	granted := s.grantLocked(trainID)
	s.cond.L.Unlock()

	granted.logGrant(fifoKind)
	return true
}

func (s *Section) Acquire(trainID int) error {
	s.cond.L.Lock()
	s.waiting++
	for s.held && !s.canceled {
		s.cond.Wait()
	}
	s.waiting--
	if s.canceled {
		err := cancelCause(s.err)
		s.cond.L.Unlock()
		return err
	}
	granted := s.grantLocked(trainID)
	s.cond.L.Unlock()

	granted.logGrant(fifoKind)
	return nil
}

func (s *Section) Release(trainID int) error {
	s.cond.L.Lock()
	if !s.held || s.current.trainID != trainID {
		s.cond.L.Unlock()
		return ErrNotHolder
	}
	released := s.current
	s.held = false
	s.current = lease{}
	s.cond.Signal()
	s.cond.L.Unlock()

	released.logRelease(fifoKind)
	return nil
}

// CancelWithError wakes every waiter with err. Subsequent calls to Acquire fail.
func (s *Section) CancelWithError(err error) {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	if s.canceled {
		return
	}
	s.canceled = true
	s.err = err
	s.cond.Broadcast()
}

func (s *Section) Describe() statejson.SectionDescription {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()

	d := statejson.SectionDescription{
		Kind:    fifoKind,
		Held:    s.held,
		Waiting: s.waiting,
		Grants:  s.grants,
	}
	if s.held {
		holder := s.current.trainID
		d.Holder = &holder
		d.LeaseID = s.current.id.String()
	}
	return d
}
