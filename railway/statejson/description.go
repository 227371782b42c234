// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// RequestDescription is one pending entry of a priority section queue.
type RequestDescription struct {
	TrainID  int    `json:"trainId"`
	Priority int    `json:"priority"`
	Arrival  uint64 `json:"arrival"`
}

// SectionDescription ...
type SectionDescription struct {
	Kind    string               `json:"kind"`
	Held    bool                 `json:"held"`
	Holder  *int                 `json:"holder,omitempty"`
	LeaseID string               `json:"leaseId,omitempty"`
	Waiting int                  `json:"waiting"`
	Grants  uint64               `json:"grants"`
	Mode    string               `json:"mode,omitempty"`
	Queue   []RequestDescription `json:"queue,omitempty"`
}

// StationDescription ...
type StationDescription struct {
	Parties int    `json:"parties"`
	Arrived int    `json:"arrived"`
	Rounds  uint64 `json:"rounds"`
}

// TrainDescription is the last state published by a train controller.
type TrainDescription struct {
	ID             int    `json:"id"`
	Phase          string `json:"phase"`
	Step           string `json:"step"`
	Direction      string `json:"direction"`
	TripsLeft      int    `json:"tripsLeft"`
	ReserveContact int    `json:"reserveContact"`
	ReleaseContact int    `json:"releaseContact"`
	Speed          int    `json:"speed"`
	SectionRounds  uint64 `json:"sectionRounds"`
	StationRounds  uint64 `json:"stationRounds"`
}

// InternalStateDescription describes the whole simulation for debugging purposes
type InternalStateDescription struct {
	RunID    string             `json:"runId"`
	Trains   []TrainDescription `json:"trains"`
	Section  SectionDescription `json:"section"`
	Station  StationDescription `json:"station"`
	Switches map[string]string  `json:"switches,omitempty"`
}

func (s *InternalStateDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshall internal states: %s", err)
	}
	return bytes
}
