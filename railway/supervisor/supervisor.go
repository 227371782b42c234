// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package supervisor runs the simulation tasks and tears the shared
// primitives down once any of them stops.
package supervisor

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Flow is a shared primitive tasks may be parked in.
type Flow interface {
	CancelWithError(error)
}

// Supervisor watches started tasks.
type Supervisor struct {
	group      *errgroup.Group
	ctx        context.Context
	cancel     context.CancelFunc
	cancelOnce sync.Once
	flows      []Flow
}

// New returns a Supervisor whose tasks stop when ctx ends or one of them fails.
func New(ctx context.Context, flows ...Flow) *Supervisor {
	ctx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(ctx)
	s := &Supervisor{
		group:  group,
		ctx:    groupCtx,
		cancel: cancel,
		flows:  flows,
	}
	go func() {
		<-groupCtx.Done()
		s.CancelFlows(groupCtx.Err())
	}()
	return s
}

// Go starts task in its own goroutine.
func (s *Supervisor) Go(name string, task func(ctx context.Context) error) {
	s.group.Go(func() error {
		log.Debugf("Task %s started", name)
		err := task(s.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Warnf("Task %s exited", name)
			s.CancelFlows(err)
			return err
		}
		log.Debugf("Task %s stopped", name)
		return err
	})
}

// CancelFlows cancels every flow with err.
func (s *Supervisor) CancelFlows(err error) {
	// The following block protects us from overwriting the error
	// which was first used to cancel flows.
	s.cancelOnce.Do(func() {
		log.Debugf("Canceling flows: %s", err)
		for _, f := range s.flows {
			f.CancelWithError(err)
		}
	})
}

// Stop asks every task to return.
func (s *Supervisor) Stop() {
	s.cancel()
}

// Wait blocks until every task returned. A plain shutdown is not an error.
func (s *Supervisor) Wait() error {
	err := s.group.Wait()
	s.cancel()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
