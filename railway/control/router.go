// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package control serves the HTTP API used to watch and steer a running simulation.
package control

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/statejson"
)

// ErrNotPriority is returned when the priority mode of a plain FIFO section is toggled.
var ErrNotPriority = errors.New("ErrNotPriority")

// Railway is the running simulation as seen by the API.
type Railway interface {
	InternalState() *statejson.InternalStateDescription
	TogglePriorityMode() (section.PriorityMode, error)
	EmergencyStop()
}

func NewHTTPRouter(rw Railway) *chi.Mux {
	r := chi.NewRouter()
	r.Use(accessLogDecorator)

	r.Get("/ping", PingHandler)
	r.Get("/state", func(w http.ResponseWriter, r *http.Request) { InternalStateHandler(w, r, rw) })
	r.Post("/section/priority/toggle", func(w http.ResponseWriter, r *http.Request) { TogglePriorityHandler(w, r, rw) })
	r.Post("/emergency-stop", func(w http.ResponseWriter, r *http.Request) { EmergencyStopHandler(w, r, rw) })
	return r
}
