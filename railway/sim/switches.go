// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"strconv"

	cmap "github.com/orcaman/concurrent-map"
	log "github.com/sirupsen/logrus"

	"go.amzn.com/trainsim/railway/interop"
)

// SwitchBoard keeps the position of every switch of the layout.
type SwitchBoard struct {
	positions cmap.ConcurrentMap
}

func NewSwitchBoard() *SwitchBoard {
	return &SwitchBoard{positions: cmap.New()}
}

func (s *SwitchBoard) SetSwitch(id int, d interop.SwitchDirection) {
	key := strconv.Itoa(id)
	if prev, ok := s.positions.Get(key); ok && prev.(interop.SwitchDirection) == d {
		return
	}
	s.positions.Set(key, d)
	log.WithField("switch", id).Debugf("Switch set %s", d)
}

// Position returns the switch position, if it was ever set.
func (s *SwitchBoard) Position(id int) (interop.SwitchDirection, bool) {
	v, ok := s.positions.Get(strconv.Itoa(id))
	if !ok {
		return interop.Straight, false
	}
	return v.(interop.SwitchDirection), true
}

// Describe renders positions by switch id.
func (s *SwitchBoard) Describe() map[string]string {
	out := make(map[string]string, s.positions.Count())
	s.positions.IterCb(func(key string, v interface{}) {
		out[key] = v.(interop.SwitchDirection).String()
	})
	return out
}
