// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the scenario a simulation runs: the shared section,
// the switches and every train with its loop.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"go.amzn.com/trainsim/railway/controller"
	"go.amzn.com/trainsim/railway/fatalerror"
	"go.amzn.com/trainsim/railway/interop"
	"go.amzn.com/trainsim/railway/section"
	"go.amzn.com/trainsim/railway/station"
	"go.amzn.com/trainsim/railway/trajectory"
)

//go:embed schema/scenario-schema.json
var scenarioSchemaJSON []byte
var scenarioSchema *jsonschema.Schema

//go:embed default.yaml
var defaultScenario []byte

func init() {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scenario-schema.json", bytes.NewReader(scenarioSchemaJSON)); err != nil {
		log.WithError(err).Panic("error adding scenario schema resource")
	}

	var err error
	scenarioSchema, err = compiler.Compile("scenario-schema.json")
	if err != nil {
		log.WithError(err).Panic("error compiling scenario schema")
	}
}

const (
	ArbiterFIFO     = "fifo"
	ArbiterPriority = "priority"
)

type Section struct {
	Entrance trajectory.Contact `yaml:"entrance"`
	Exit     trajectory.Contact `yaml:"exit"`
}

type Trips struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type Start struct {
	Behind trajectory.Contact `yaml:"behind"`
	Ahead  trajectory.Contact `yaml:"ahead"`
}

type SwitchSetting struct {
	Switch    int    `yaml:"switch"`
	Direction string `yaml:"direction"`
}

type Train struct {
	ID              int                  `yaml:"id"`
	Speed           int                  `yaml:"speed"`
	Priority        int                  `yaml:"priority"`
	Contacts        []trajectory.Contact `yaml:"contacts"`
	WrittenForward  bool                 `yaml:"writtenForward"`
	Station         trajectory.Contact   `yaml:"station"`
	Start           Start                `yaml:"start"`
	SectionSwitches []SwitchSetting      `yaml:"sectionSwitches"`
}

// Scenario is a whole simulation setup.
type Scenario struct {
	Arbiter      string             `yaml:"arbiter"`
	PriorityMode string             `yaml:"priorityMode"`
	Buffers      trajectory.Buffers `yaml:"buffers"`
	Trips        Trips              `yaml:"trips"`
	StationPause string             `yaml:"stationPause"`
	Section      Section            `yaml:"section"`
	Switches     []SwitchSetting    `yaml:"switches"`
	Trains       []Train            `yaml:"trains"`
}

func invalidScenario(format string, args ...interface{}) error {
	return &trajectory.ConfigurationError{Type: fatalerror.InvalidScenario, Reason: fmt.Sprintf(format, args...)}
}

// Default returns the embedded two-train scenario.
func Default() (*Scenario, error) {
	return Parse(defaultScenario)
}

// Load reads a scenario file. An empty path loads the default scenario.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates data against the scenario schema and decodes it.
func Parse(data []byte) (*Scenario, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, invalidScenario("failed to parse YAML: %s", err)
	}

	// the schema validator expects JSON values
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, invalidScenario("failed to convert scenario: %s", err)
	}
	var rawData interface{}
	if err := json.Unmarshal(jsonData, &rawData); err != nil {
		return nil, invalidScenario("failed to convert scenario: %s", err)
	}
	if err := scenarioSchema.Validate(rawData); err != nil {
		return nil, invalidScenario("schema validation error: %s", err)
	}

	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, invalidScenario("failed to decode scenario: %s", err)
	}
	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) applyDefaults() {
	if s.Arbiter == "" {
		s.Arbiter = ArbiterFIFO
	}
	if s.PriorityMode == "" {
		s.PriorityMode = section.HighestFirst.String()
	}
	if s.Buffers.Incoming == 0 {
		s.Buffers.Incoming = trajectory.DefaultBuffers.Incoming
	}
	if s.Buffers.Outgoing == 0 {
		s.Buffers.Outgoing = trajectory.DefaultBuffers.Outgoing
	}
	if s.Trips.Min == 0 {
		s.Trips.Min = controller.DefaultMinTrips
	}
	if s.Trips.Max == 0 {
		s.Trips.Max = controller.DefaultMaxTrips
	}
	if s.StationPause == "" {
		s.StationPause = station.DefaultPause.String()
	}
}

func (s *Scenario) validate() error {
	if s.Trips.Min > s.Trips.Max {
		return invalidScenario("trips: min %d is greater than max %d", s.Trips.Min, s.Trips.Max)
	}
	seen := map[int]bool{}
	for _, t := range s.Trains {
		if seen[t.ID] {
			return invalidScenario("train %d is declared twice", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Pause is the station boarding time.
func (s *Scenario) Pause() time.Duration {
	d, err := time.ParseDuration(s.StationPause)
	if err != nil {
		return station.DefaultPause
	}
	return d
}

// Mode is the initial priority ordering.
func (s *Scenario) Mode() section.PriorityMode {
	if s.PriorityMode == section.LowestFirst.String() {
		return section.LowestFirst
	}
	return section.HighestFirst
}

// InitialSwitches returns the switch positions set before the trains start.
func (s *Scenario) InitialSwitches() ([]interop.SwitchSetting, error) {
	return convertSwitches(s.Switches)
}

// Layout is the trajectory description of t.
func (s *Scenario) Layout(t Train) trajectory.Layout {
	return trajectory.Layout{
		Contacts:       t.Contacts,
		Entrance:       s.Section.Entrance,
		Exit:           s.Section.Exit,
		WrittenForward: t.WrittenForward,
		Station:        t.Station,
		Behind:         t.Start.Behind,
		Ahead:          t.Start.Ahead,
	}
}

// ControllerConfig is the controller setup of t, without a random source.
func (s *Scenario) ControllerConfig(t Train) (controller.Config, error) {
	switches, err := convertSwitches(t.SectionSwitches)
	if err != nil {
		return controller.Config{}, err
	}
	return controller.Config{
		ID:              t.ID,
		Priority:        t.Priority,
		MinTrips:        s.Trips.Min,
		MaxTrips:        s.Trips.Max,
		SectionSwitches: switches,
	}, nil
}

func convertSwitches(settings []SwitchSetting) ([]interop.SwitchSetting, error) {
	out := make([]interop.SwitchSetting, 0, len(settings))
	for _, s := range settings {
		d, err := interop.ParseSwitchDirection(s.Direction)
		if err != nil {
			return nil, invalidScenario("switch %d: %s", s.Switch, err)
		}
		out = append(out, interop.SwitchSetting{Switch: s.Switch, Direction: d})
	}
	return out, nil
}
