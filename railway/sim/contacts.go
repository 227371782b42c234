// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"context"
	"sync"

	"go.amzn.com/trainsim/railway/trajectory"
)

// ContactBus delivers the contacts one locomotive drives over. A contact only
// wakes the waiters registered when it fires; nothing is remembered.
type ContactBus struct {
	mu      sync.Mutex
	waiters map[trajectory.Contact][]chan struct{}
}

func NewContactBus() *ContactBus {
	return &ContactBus{waiters: map[trajectory.Contact][]chan struct{}{}}
}

// Publish wakes everyone waiting on c.
func (b *ContactBus) Publish(c trajectory.Contact) {
	b.mu.Lock()
	waiters := b.waiters[c]
	delete(b.waiters, c)
	b.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
}

func (b *ContactBus) WaitForContact(ctx context.Context, c trajectory.Contact) error {
	w := make(chan struct{})
	b.mu.Lock()
	b.waiters[c] = append(b.waiters[c], w)
	b.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		b.forget(c, w)
		return ctx.Err()
	}
}

func (b *ContactBus) forget(c trajectory.Contact, w chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	waiters := b.waiters[c]
	for i := range waiters {
		if waiters[i] == w {
			b.waiters[c] = append(waiters[:i], waiters[i+1:]...)
			break
		}
	}
	if len(b.waiters[c]) == 0 {
		delete(b.waiters, c)
	}
}

// Waiting is the number of pending waiters.
func (b *ContactBus) Waiting() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, ws := range b.waiters {
		n += len(ws)
	}
	return n
}
