// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package mocktrack holds scripted stand-ins for the locomotive, contacts and
// display a train controller drives.
package mocktrack

import (
	"context"
	"fmt"
	"sync"

	"go.amzn.com/trainsim/railway/trajectory"
)

// Track replays contacts pushed with Pass. A waiter skips every contact
// other than the one it waits for.
type Track struct {
	events chan trajectory.Contact
}

func NewTrack() *Track {
	return &Track{events: make(chan trajectory.Contact, 256)}
}

// Pass queues contacts in the order the train drives over them.
func (t *Track) Pass(contacts ...trajectory.Contact) {
	for _, c := range contacts {
		t.events <- c
	}
}

// Pending is the number of queued contacts nobody consumed yet.
func (t *Track) Pending() int {
	return len(t.events)
}

func (t *Track) WaitForContact(ctx context.Context, c trajectory.Contact) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case got := <-t.events:
			if got == c {
				return nil
			}
		}
	}
}

// Locomotive records motion commands.
type Locomotive struct {
	mu      sync.Mutex
	number  int
	speed   int
	running bool
	lights  bool
	calls   []string
}

func NewLocomotive(number, speed int) *Locomotive {
	return &Locomotive{number: number, speed: speed}
}

func (l *Locomotive) record(call string) {
	l.calls = append(l.calls, call)
}

func (l *Locomotive) Number() int { return l.number }

func (l *Locomotive) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = true
	l.record("start")
}

func (l *Locomotive) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
	l.record("stop")
}

func (l *Locomotive) SetSpeed(v int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.speed = v
	l.record(fmt.Sprintf("speed %d", v))
}

func (l *Locomotive) Speed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.speed
}

func (l *Locomotive) Reverse() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("reverse")
}

func (l *Locomotive) SetHeadlights(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lights = on
	l.record(fmt.Sprintf("headlights %t", on))
}

// Running reports whether the last motor command was Start.
func (l *Locomotive) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Calls returns the recorded commands in order.
func (l *Locomotive) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// Display collects train messages.
type Display struct {
	mu       sync.Mutex
	messages map[int][]string
}

func NewDisplay() *Display {
	return &Display{messages: map[int][]string{}}
}

func (d *Display) Message(trainID int, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages[trainID] = append(d.messages[trainID], msg)
}

// Messages returns what trainID displayed so far.
func (d *Display) Messages(trainID int) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.messages[trainID]...)
}

// Contains reports whether trainID displayed msg at least n times.
func (d *Display) Contains(trainID int, msg string, n int) bool {
	count := 0
	for _, m := range d.Messages(trainID) {
		if m == msg {
			count++
		}
	}
	return count >= n
}
