// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events/test"
	"github.com/stretchr/testify/assert"

	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/statejson"
)

type fakeRailway struct {
	priority *section.PrioritySection
	stops    int
}

func (f *fakeRailway) InternalState() *statejson.InternalStateDescription {
	holder := 1
	return &statejson.InternalStateDescription{
		RunID: "run",
		Trains: []statejson.TrainDescription{
			{ID: 0, Phase: "TowardStation", Step: "approaching station", Direction: "backward", TripsLeft: 3, ReserveContact: 5, ReleaseContact: 23, Speed: 15},
		},
		Section:  statejson.SectionDescription{Kind: "fifo", Held: true, Holder: &holder, Grants: 4},
		Station:  statejson.StationDescription{Parties: 2, Arrived: 1, Rounds: 2},
		Switches: map[string]string{"14": "deviated"},
	}
}

func (f *fakeRailway) TogglePriorityMode() (section.PriorityMode, error) {
	if f.priority == nil {
		return section.HighestFirst, ErrNotPriority
	}
	return f.priority.TogglePriorityMode(), nil
}

func (f *fakeRailway) EmergencyStop() {
	f.stops++
}

func serve(rw Railway, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	NewHTTPRouter(rw).ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func TestPing(t *testing.T) {
	recorder := serve(&fakeRailway{}, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestInternalState(t *testing.T) {
	recorder := serve(&fakeRailway{}, http.MethodGet, "/state")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	expected := `{
		"runId": "run",
		"trains": [{"id": 0, "phase": "TowardStation", "step": "approaching station", "direction": "backward",
			"tripsLeft": 3, "reserveContact": 5, "releaseContact": 23, "speed": 15, "sectionRounds": 0, "stationRounds": 0}],
		"section": {"kind": "fifo", "held": true, "holder": 1, "waiting": 0, "grants": 4},
		"station": {"parties": 2, "arrived": 1, "rounds": 2},
		"switches": {"14": "deviated"}
	}`
	test.AssertJsonsEqual(t, []byte(expected), recorder.Body.Bytes())
}

func TestTogglePriority(t *testing.T) {
	rw := &fakeRailway{priority: section.NewPrioritySection(section.HighestFirst)}

	recorder := serve(rw, http.MethodPost, "/section/priority/toggle")
	assert.Equal(t, http.StatusOK, recorder.Code)
	test.AssertJsonsEqual(t, []byte(`{"mode": "LOW"}`), recorder.Body.Bytes())

	recorder = serve(rw, http.MethodPost, "/section/priority/toggle")
	test.AssertJsonsEqual(t, []byte(`{"mode": "HIGH"}`), recorder.Body.Bytes())
}

func TestTogglePriorityOnFIFOSection(t *testing.T) {
	recorder := serve(&fakeRailway{}, http.MethodPost, "/section/priority/toggle")
	assert.Equal(t, http.StatusConflict, recorder.Code)
	test.AssertJsonsEqual(t, []byte(`{
		"errorType": "Client.NotPriorityArbiter",
		"errorMessage": "The shared section does not order trains by priority"
	}`), recorder.Body.Bytes())
}

func TestEmergencyStop(t *testing.T) {
	rw := &fakeRailway{}
	recorder := serve(rw, http.MethodPost, "/emergency-stop")
	assert.Equal(t, http.StatusOK, recorder.Code)
	test.AssertJsonsEqual(t, []byte(`{"stopped": true}`), recorder.Body.Bytes())
	assert.Equal(t, 1, rw.stops)
}

func TestUnknownMethod(t *testing.T) {
	recorder := serve(&fakeRailway{}, http.MethodGet, "/emergency-stop")
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeRailway{}, http.MethodGet, "/nowhere").Code)
}
