// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package interop declares the collaborators a train controller drives: the
// locomotive, the contacts it reports, the track switches and the message display.
package interop

import (
	"context"
	"fmt"
	"strings"

	"go.amzn.com/trainsim/railway/trajectory"
)

// SwitchDirection is the position of a track switch.
type SwitchDirection int

const (
	Straight SwitchDirection = iota
	Deviated
)

func (d SwitchDirection) String() string {
	if d == Straight {
		return "straight"
	}
	return "deviated"
}

// ParseSwitchDirection accepts "straight" and "deviated", case insensitive.
func ParseSwitchDirection(s string) (SwitchDirection, error) {
	switch strings.ToLower(s) {
	case "straight":
		return Straight, nil
	case "deviated":
		return Deviated, nil
	}
	return Straight, fmt.Errorf("unknown switch direction %q", s)
}

// SwitchSetting positions one switch.
type SwitchSetting struct {
	Switch    int
	Direction SwitchDirection
}

// ContactSource reports a train driving over a contact.
type ContactSource interface {
	// WaitForContact blocks until the train reaches c. Only ctx ending makes it fail.
	WaitForContact(ctx context.Context, c trajectory.Contact) error
}

// SwitchActuator positions switches. Fire and forget.
type SwitchActuator interface {
	SetSwitch(id int, d SwitchDirection)
}

// Locomotive is the motion interface of one train.
type Locomotive interface {
	Number() int
	Start()
	Stop()
	SetSpeed(v int)
	Speed() int
	Reverse()
	SetHeadlights(on bool)
}

// MessageSink displays train messages. Not load-bearing.
type MessageSink interface {
	Message(trainID int, msg string)
}
