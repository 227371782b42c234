// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package section guards the shared track segment. At most one train holds
// it at any instant.
package section

import (
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/statejson"
)

// ErrCanceled is returned to waiters once the arbiter is canceled without a cause.
var ErrCanceled = errors.New("ErrSectionCanceled")

// ErrNotHolder is returned when a train releases a section it does not hold.
var ErrNotHolder = errors.New("ErrNotHolder")

// Arbiter is the mutual-exclusion gate in front of the shared section.
type Arbiter interface {
	// TryAcquire takes the section if it can do so without blocking.
	TryAcquire(trainID int) bool
	// Acquire blocks until the section is granted to trainID.
	Acquire(trainID int) error
	Release(trainID int) error
	CancelWithError(error)
	Describe() statejson.SectionDescription
}

// Requester is implemented by arbiters that order admission by priority.
type Requester interface {
	Request(trainID, priority int)
}

type lease struct {
	trainID int
	id      uuid.UUID
}

func newLease(trainID int) lease {
	return lease{trainID: trainID, id: uuid.New()}
}

func (l lease) logGrant(kind string) {
	log.WithFields(log.Fields{"train": l.trainID, "lease": l.id.String(), "arbiter": kind}).
		Infof("The engine no. %d accesses the shared section.", l.trainID)
}

func (l lease) logRelease(kind string) {
	log.WithFields(log.Fields{"train": l.trainID, "lease": l.id.String(), "arbiter": kind}).
		Infof("The engine no. %d leaves the shared section.", l.trainID)
}

func cancelCause(err error) error {
	if err != nil {
		return err
	}
	return ErrCanceled
}
