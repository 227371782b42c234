// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package trajectory

import "fmt"

// Window holds the entrance and exit indices of the shared section.
type Window struct {
	Entrance       int
	Exit           int
	WrittenForward bool
}

// orientation is the list direction leading from entrance to exit.
func (w Window) orientation() Direction {
	if w.WrittenForward {
		return Forward
	}
	return Backward
}

// Split reports whether the section wraps past the end of the contact list.
func (w Window) Split() bool {
	return (w.Entrance > w.Exit) == w.WrittenForward
}

// Length counts the section contacts, both ends included, on a ring of n.
func (w Window) Length(n int) int {
	return Wrap((w.Exit-w.Entrance)*w.orientation().Sign(), n) + 1
}

// Covers reports whether index i lies on the section, ends included.
func (w Window) Covers(i, n int) bool {
	return Wrap((i-w.Entrance)*w.orientation().Sign(), n) < w.Length(n)
}

func (w Window) withWriting(d Direction) bool {
	return (d == Forward) == w.WrittenForward
}

// EntryIndex is the section end a train heading d drives over first.
func (w Window) EntryIndex(d Direction) int {
	if w.withWriting(d) {
		return w.Entrance
	}
	return w.Exit
}

// ExitIndex is the section end a train heading d drives over last.
func (w Window) ExitIndex(d Direction) int {
	if w.withWriting(d) {
		return w.Exit
	}
	return w.Entrance
}

func (w Window) String() string {
	return fmt.Sprintf("[%d..%d written forward=%t]", w.Entrance, w.Exit, w.WrittenForward)
}

// Buffers are the guard distances, in contacts, before and after the section.
type Buffers struct {
	Incoming int `yaml:"incoming" json:"incoming"`
	Outgoing int `yaml:"outgoing" json:"outgoing"`
}

// DefaultBuffers reserve two contacts ahead of the section and release one after it.
var DefaultBuffers = Buffers{Incoming: 2, Outgoing: 1}

// Guard is the distance kept clear on both sides of the section.
func (b Buffers) Guard() int {
	return max(b.Incoming, b.Outgoing)
}

// Validate requires strictly positive buffers.
func (b Buffers) Validate() error {
	if b.Incoming < 1 || b.Outgoing < 1 {
		return fmt.Errorf("buffers must be positive, got incoming=%d outgoing=%d", b.Incoming, b.Outgoing)
	}
	return nil
}
