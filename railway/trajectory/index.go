// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package trajectory

import (
	"fmt"

	"go.amzn.com/trainsim/railway/fatalerror"
)

// Target is the next landmark a train is heading to.
type Target int

const (
	TowardSection Target = iota
	TowardStation
)

func (t Target) String() string {
	if t == TowardSection {
		return "TowardSection"
	}
	return "TowardStation"
}

// Layout is the construction-time description of one train's loop.
type Layout struct {
	Contacts       []Contact
	Entrance       Contact
	Exit           Contact
	WrittenForward bool
	Station        Contact
	// Behind and Ahead are the two adjacent contacts the train starts between,
	// Ahead being the one it drives over first.
	Behind Contact
	Ahead  Contact
}

// Start is the initial situation derived from a Layout.
type Start struct {
	Direction Direction
	Target    Target
}

// Index answers geometry questions about one trajectory and its section.
// It is immutable once built.
type Index struct {
	trajectory *Trajectory
	window     Window
	buffers    Buffers
	station    int
}

// Build validates l and returns its Index along with the train's starting situation.
func Build(l Layout, b Buffers) (*Index, Start, error) {
	if err := b.Validate(); err != nil {
		return nil, Start{}, configError(fatalerror.InvalidGeometry, "%s", err)
	}

	t, err := New(l.Contacts)
	if err != nil {
		return nil, Start{}, err
	}

	window, err := t.ComputeWindow(l.Entrance, l.Exit, l.WrittenForward)
	if err != nil {
		return nil, Start{}, err
	}

	x := &Index{trajectory: t, window: window, buffers: b, station: -1}

	behind, err := t.IndexOf(l.Behind)
	if err != nil {
		return nil, Start{}, configError(fatalerror.InvalidStart, "contact behind the train %d is outside the trajectory", l.Behind)
	}
	ahead, err := t.IndexOf(l.Ahead)
	if err != nil {
		return nil, Start{}, configError(fatalerror.InvalidStart, "contact ahead of the train %d is outside the trajectory", l.Ahead)
	}
	direction, err := x.ValidateStart(behind, ahead)
	if err != nil {
		return nil, Start{}, err
	}

	if err := x.checkSize(); err != nil {
		return nil, Start{}, err
	}

	station, err := t.IndexOf(l.Station)
	if err != nil {
		return nil, Start{}, configError(fatalerror.InvalidStation, "station %d is outside the trajectory", l.Station)
	}
	if err := x.ValidateStation(station); err != nil {
		return nil, Start{}, err
	}
	x.station = station

	return x, Start{Direction: direction, Target: x.NextTarget(ahead, direction)}, nil
}

// Trajectory returns the underlying contact ring.
func (x *Index) Trajectory() *Trajectory {
	return x.trajectory
}

// Window returns the section indices.
func (x *Index) Window() Window {
	return x.window
}

// Buffers returns the guard distances the index was built with.
func (x *Index) Buffers() Buffers {
	return x.buffers
}

// IndexOf returns the position of c, or ErrNotFound.
func (x *Index) IndexOf(c Contact) (int, error) {
	return x.trajectory.IndexOf(c)
}

// IsSectionSplit reports whether the section wraps past the end of the list.
func (x *Index) IsSectionSplit() bool {
	return x.window.Split()
}

// SectionLength counts the section contacts, both ends included.
func (x *Index) SectionLength() int {
	return x.window.Length(x.trajectory.Len())
}

// Station returns the station contact.
func (x *Index) Station() Contact {
	return x.trajectory.At(x.station)
}

// EntryContact is the section end met first when heading d.
func (x *Index) EntryContact(d Direction) Contact {
	return x.trajectory.At(x.window.EntryIndex(d))
}

// ExitContact is the section end met last when heading d.
func (x *Index) ExitContact(d Direction) Contact {
	return x.trajectory.At(x.window.ExitIndex(d))
}

// ReservationPoint is the contact where a train heading d must hold the section.
func (x *Index) ReservationPoint(d Direction) Contact {
	return x.trajectory.At(x.trajectory.Step(x.window.EntryIndex(d), d, -x.buffers.Incoming))
}

// ReleasePoint is the contact where a train heading d gives the section back.
func (x *Index) ReleasePoint(d Direction) Contact {
	return x.trajectory.At(x.trajectory.Step(x.window.ExitIndex(d), d, x.buffers.Outgoing))
}

// ValidateStart checks that a train between behind and ahead stays clear of the
// section and of its buffers, and returns its direction of travel.
func (x *Index) ValidateStart(behind, ahead int) (Direction, error) {
	n := x.trajectory.Len()
	if behind < 0 || behind >= n || ahead < 0 || ahead >= n {
		return Forward, configError(fatalerror.InvalidStart, "index out of range (%d, %d)", behind, ahead)
	}
	if behind == ahead {
		return Forward, configError(fatalerror.InvalidStart, "same contact %d", x.trajectory.At(behind))
	}
	for _, i := range []int{behind, ahead} {
		switch i {
		case x.window.Entrance:
			return Forward, configError(fatalerror.InvalidStart, "contact %d is the section entrance", x.trajectory.At(i))
		case x.window.Exit:
			return Forward, configError(fatalerror.InvalidStart, "contact %d is the section exit", x.trajectory.At(i))
		}
	}

	var d Direction
	switch ahead {
	case x.trajectory.Step(behind, Forward, 1):
		d = Forward
	case x.trajectory.Step(behind, Backward, 1):
		d = Backward
	default:
		return Forward, configError(fatalerror.InvalidStart, "contacts %d and %d are not consecutive",
			x.trajectory.At(behind), x.trajectory.At(ahead))
	}

	if x.window.Covers(behind, n) || x.window.Covers(ahead, n) {
		return d, configError(fatalerror.InvalidStart, "train starts in the shared section")
	}

	entry, exit := x.window.EntryIndex(d), x.window.ExitIndex(d)
	for k := 1; k <= x.buffers.Guard(); k++ {
		if x.trajectory.Step(ahead, d, k) == entry || x.trajectory.Step(behind, d, -k) == exit {
			return d, configError(fatalerror.InvalidStart, "train starts in the shared section buffer")
		}
	}
	return d, nil
}

// ValidateStation checks that the station lies neither on the section, ends
// included, nor within Guard contacts outside either end.
func (x *Index) ValidateStation(station int) error {
	n := x.trajectory.Len()
	if station < 0 || station >= n {
		return configError(fatalerror.InvalidStation, "index %d out of range", station)
	}
	if x.window.Covers(station, n) {
		return configError(fatalerror.InvalidStation, "station %d is in the shared section", x.trajectory.At(station))
	}

	o := x.window.orientation()
	for k := 1; k <= x.buffers.Guard(); k++ {
		if station == x.trajectory.Step(x.window.Entrance, o, -k) || station == x.trajectory.Step(x.window.Exit, o, k) {
			return configError(fatalerror.InvalidStation, "station %d is in the shared section buffer", x.trajectory.At(station))
		}
	}
	return nil
}

// checkSize leaves room for the section, a buffer on each side and the station.
func (x *Index) checkSize() error {
	need := x.SectionLength() + 2*x.buffers.Guard() + 1
	if n := x.trajectory.Len(); n < need {
		return configError(fatalerror.TrajectoryTooShort, "%d contacts given, section and buffers need %d", n, need)
	}
	return nil
}

// NextTarget walks from index from in direction d and reports whether the
// section entry or the station comes first.
func (x *Index) NextTarget(from int, d Direction) Target {
	entry := x.window.EntryIndex(d)
	i := from
	for k := 0; k < x.trajectory.Len(); k++ {
		if i == entry {
			return TowardSection
		}
		if i == x.station {
			return TowardStation
		}
		i = x.trajectory.Step(i, d, 1)
	}
	return TowardSection
}

func (x *Index) String() string {
	return fmt.Sprintf("section %s length=%d split=%t station=%d buffers=%d/%d",
		x.window, x.SectionLength(), x.IsSectionSplit(), x.Station(), x.buffers.Incoming, x.buffers.Outgoing)
}
