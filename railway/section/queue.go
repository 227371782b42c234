// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package section

import (
	"sort"

	"go.amzn.com/trainsim/railway/statejson"
)

// PriorityMode selects which end of the priority scale is admitted first.
type PriorityMode int

const (
	HighestFirst PriorityMode = iota
	LowestFirst
)

func (m PriorityMode) String() string {
	if m == HighestFirst {
		return "HIGH"
	}
	return "LOW"
}

// Toggle returns the other mode.
func (m PriorityMode) Toggle() PriorityMode {
	if m == HighestFirst {
		return LowestFirst
	}
	return HighestFirst
}

type request struct {
	priority int
	trainID  int
	arrival  uint64
	// wake is set while the train is parked in Acquire and closed to signal it.
	wake chan struct{}
}

type requestQueue []*request

// sort orders the queue by priority for mode, ties by arrival.
func (q requestQueue) sort(mode PriorityMode) {
	sort.SliceStable(q, func(i, j int) bool {
		a, b := q[i], q[j]
		if a.priority != b.priority {
			if mode == HighestFirst {
				return a.priority > b.priority
			}
			return a.priority < b.priority
		}
		return a.arrival < b.arrival
	})
}

func (q requestQueue) find(trainID int) int {
	for i, r := range q {
		if r.trainID == trainID {
			return i
		}
	}
	return -1
}

func (q requestQueue) describe() []statejson.RequestDescription {
	out := make([]statejson.RequestDescription, 0, len(q))
	for _, r := range q {
		out = append(out, statejson.RequestDescription{TrainID: r.trainID, Priority: r.priority, Arrival: r.arrival})
	}
	return out
}
