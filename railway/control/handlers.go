// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

const errorTypeNotPriority = "Client.NotPriorityArbiter"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

// ModeResponse reports the priority mode after a toggle.
type ModeResponse struct {
	Mode string `json:"mode"`
}

// StopResponse acknowledges an emergency stop.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

func InternalStateHandler(w http.ResponseWriter, r *http.Request, rw Railway) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(rw.InternalState().AsJSON())
}

func TogglePriorityHandler(w http.ResponseWriter, r *http.Request, rw Railway) {
	mode, err := rw.TogglePriorityMode()
	if errors.Is(err, ErrNotPriority) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, &ErrorResponse{
			ErrorType:    errorTypeNotPriority,
			ErrorMessage: "The shared section does not order trains by priority",
		})
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to toggle priority mode")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, &ErrorResponse{ErrorType: "Server.Unknown", ErrorMessage: err.Error()})
		return
	}
	render.JSON(w, r, &ModeResponse{Mode: mode.String()})
}

func EmergencyStopHandler(w http.ResponseWriter, r *http.Request, rw Railway) {
	rw.EmergencyStop()
	render.JSON(w, r, &StopResponse{Stopped: true})
}
