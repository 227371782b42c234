// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package section

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/statejson"
)

const priorityKind = "priority"

// PrioritySection admits the head of a request queue kept sorted by priority.
// On release only the new head is signalled.
type PrioritySection struct {
	mu       sync.Mutex
	mode     PriorityMode
	queue    requestQueue
	arrivals uint64
	held     bool
	current  lease
	grants   uint64

	cancelOnce sync.Once
	canceled   chan struct{}
	err        error
}

// NewPrioritySection returns a free section admitting in the given mode.
func NewPrioritySection(mode PriorityMode) *PrioritySection {
	return &PrioritySection{mode: mode, canceled: make(chan struct{})}
}

// Request registers interest of trainID. A second request while one is pending is ignored.
func (s *PrioritySection) Request(trainID, priority int) {
	s.mu.Lock()
	if s.queue.find(trainID) >= 0 {
		s.mu.Unlock()
		log.WithField("train", trainID).Warnf("Locomotive %d already has an active request.", trainID)
		return
	}
	s.enqueueLocked(trainID, priority)
	s.mu.Unlock()

	log.WithField("train", trainID).Infof("Locomotive %d requested the section with priority %d.", trainID, priority)
}

func (s *PrioritySection) enqueueLocked(trainID, priority int) int {
	s.arrivals++
	s.queue = append(s.queue, &request{priority: priority, trainID: trainID, arrival: s.arrivals})
	s.queue.sort(s.mode)
	s.signalHeadLocked()
	return s.queue.find(trainID)
}

// signalHeadLocked wakes the head of the queue if it is parked and the section is free.
func (s *PrioritySection) signalHeadLocked() {
	if s.held || len(s.queue) == 0 {
		return
	}
	head := s.queue[0]
	if head.wake != nil {
		close(head.wake)
		head.wake = nil
	}
}

func (s *PrioritySection) isCanceled() bool {
	select {
	case <-s.canceled:
		return true
	default:
		return false
	}
}

// admitLocked grants the section to trainID if it is free and trainID heads the queue.
// A train without a pending request gets an implicit one with priority 0.
func (s *PrioritySection) admitLocked(trainID int) (*request, bool) {
	i := s.queue.find(trainID)
	if i < 0 {
		i = s.enqueueLocked(trainID, 0)
	}
	if s.held || i != 0 {
		return s.queue[i], false
	}
	s.queue = s.queue[1:]
	s.held = true
	s.current = newLease(trainID)
	s.grants++
	return nil, true
}

func (s *PrioritySection) TryAcquire(trainID int) bool {
	s.mu.Lock()
	if s.isCanceled() {
		s.mu.Unlock()
		return false
	}
	_, granted := s.admitLocked(trainID)
	current := s.current
	s.mu.Unlock()

	if granted {
		current.logGrant(priorityKind)
	}
	return granted
}

func (s *PrioritySection) Acquire(trainID int) error {
	for {
		s.mu.Lock()
		if s.isCanceled() {
			s.mu.Unlock()
			return cancelCause(s.err)
		}
		pending, granted := s.admitLocked(trainID)
		if granted {
			current := s.current
			s.mu.Unlock()
			current.logGrant(priorityKind)
			return nil
		}
		if pending.wake == nil {
			pending.wake = make(chan struct{})
		}
		wake := pending.wake
		s.mu.Unlock()

		select {
		case <-wake:
		case <-s.canceled:
		}
	}
}

func (s *PrioritySection) Release(trainID int) error {
	s.mu.Lock()
	if !s.held || s.current.trainID != trainID {
		s.mu.Unlock()
		return ErrNotHolder
	}
	released := s.current
	s.held = false
	s.current = lease{}
	s.signalHeadLocked()
	s.mu.Unlock()

	released.logRelease(priorityKind)
	return nil
}

// Leave is Release under the name used by the priority protocol.
func (s *PrioritySection) Leave(trainID int) error {
	return s.Release(trainID)
}

// TogglePriorityMode flips the ordering and re-sorts pending requests.
func (s *PrioritySection) TogglePriorityMode() PriorityMode {
	s.mu.Lock()
	s.mode = s.mode.Toggle()
	s.queue.sort(s.mode)
	s.signalHeadLocked()
	mode := s.mode
	s.mu.Unlock()

	log.Infof("Priority mode changed to %s", mode)
	return mode
}

// Mode returns the current ordering.
func (s *PrioritySection) Mode() PriorityMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// CancelWithError wakes every waiter with err. Only the first cause is kept.
func (s *PrioritySection) CancelWithError(err error) {
	s.cancelOnce.Do(func() {
		s.mu.Lock()
		s.err = err
		close(s.canceled)
		s.mu.Unlock()
	})
}

func (s *PrioritySection) Describe() statejson.SectionDescription {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := statejson.SectionDescription{
		Kind:   priorityKind,
		Held:   s.held,
		Grants: s.grants,
		Mode:   s.mode.String(),
		Queue:  s.queue.describe(),
	}
	for _, r := range s.queue {
		if r.wake != nil {
			d.Waiting++
		}
	}
	if s.held {
		holder := s.current.trainID
		d.Holder = &holder
		d.LeaseID = s.current.id.String()
	}
	return d
}
