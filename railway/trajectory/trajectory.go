// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package trajectory

import (
	"go.amzn.com/trainsim/railway/fatalerror"
)

// Contact identifies a position marker on the track.
type Contact int

// Direction of travel relative to the order of the contact list.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Sign is +1 for Forward and -1 for Backward.
func (d Direction) Sign() int {
	if d == Forward {
		return 1
	}
	return -1
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

// Wrap maps any integer onto a ring of n positions.
func Wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Trajectory is an immutable cyclic list of unique contacts.
type Trajectory struct {
	contacts  []Contact
	positions map[Contact]int
}

// New copies contacts into a Trajectory. It rejects empty lists and duplicates.
func New(contacts []Contact) (*Trajectory, error) {
	if len(contacts) == 0 {
		return nil, configError(fatalerror.InvalidTrajectory, "no contacts")
	}

	t := &Trajectory{
		contacts:  make([]Contact, len(contacts)),
		positions: make(map[Contact]int, len(contacts)),
	}
	for i, c := range contacts {
		if prev, found := t.positions[c]; found {
			return nil, configError(fatalerror.InvalidTrajectory, "contact %d listed at %d and %d", c, prev, i)
		}
		t.contacts[i] = c
		t.positions[c] = i
	}
	return t, nil
}

// Len is the number of contacts on the loop.
func (t *Trajectory) Len() int {
	return len(t.contacts)
}

// At returns the contact at ring index i.
func (t *Trajectory) At(i int) Contact {
	return t.contacts[Wrap(i, len(t.contacts))]
}

// Contacts returns a copy of the contact list.
func (t *Trajectory) Contacts() []Contact {
	out := make([]Contact, len(t.contacts))
	copy(out, t.contacts)
	return out
}

// IndexOf returns the position of c, or ErrNotFound.
func (t *Trajectory) IndexOf(c Contact) (int, error) {
	i, found := t.positions[c]
	if !found {
		return -1, configError(fatalerror.ContactNotFound, "contact %d is outside the trajectory", c)
	}
	return i, nil
}

// Step moves k contacts from i in direction d. Negative k moves against d.
func (t *Trajectory) Step(i int, d Direction, k int) int {
	return Wrap(i+d.Sign()*k, len(t.contacts))
}

// Distance is the number of steps in direction d needed to go from i to j.
func (t *Trajectory) Distance(i, j int, d Direction) int {
	return Wrap((j-i)*d.Sign(), len(t.contacts))
}

// ComputeWindow locates the shared section on the trajectory.
func (t *Trajectory) ComputeWindow(entrance, exit Contact, writtenForward bool) (Window, error) {
	entranceIndex, err := t.IndexOf(entrance)
	if err != nil {
		return Window{}, configError(fatalerror.ContactNotFound, "entrance %d is outside the trajectory", entrance)
	}
	exitIndex, err := t.IndexOf(exit)
	if err != nil {
		return Window{}, configError(fatalerror.ContactNotFound, "exit %d is outside the trajectory", exit)
	}
	if entranceIndex == exitIndex {
		return Window{}, configError(fatalerror.InvalidGeometry, "entrance and exit are the same contact %d", entrance)
	}
	return Window{Entrance: entranceIndex, Exit: exitIndex, WrittenForward: writtenForward}, nil
}
