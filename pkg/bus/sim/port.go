// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package sim provides a simulated set of physical lines, along with a model of
// a parallel EEPROM attached to them.  Every transition and every delay is
// recorded, which allows the behaviour of a bus controller to be checked
// without any hardware.
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/consensys/go-eeprog/pkg/bus"
	log "github.com/sirupsen/logrus"
)

// EventKind identifies what happened in a recorded event.
type EventKind uint8

const (
	// Drive indicates a line was driven to a level.
	Drive EventKind = iota
	// Hold indicates a blocking delay.
	Hold
	// Release indicates the port was released.
	Release
)

// Event is a single recorded action on the port.
type Event struct {
	Kind EventKind
	// Line driven (Drive only).
	Line string
	// Level driven (Drive only).
	Level bus.Level
	// Length of delay (Hold only).
	Duration time.Duration
}

func (e Event) String() string {
	switch e.Kind {
	case Drive:
		return fmt.Sprintf("%s=%s", e.Line, e.Level)
	case Hold:
		return fmt.Sprintf("hold(%s)", e.Duration)
	default:
		return "release"
	}
}

// Port is a simulated set of lines.  It also acts as the clock for the
// controller, so that delays are recorded in order with transitions rather
// than actually slept.
type Port struct {
	// Current level of every line which has been claimed at some point.
	levels map[string]bus.Level
	// Lines currently claimed.
	claimed map[string]bool
	// Injected failures for specific lines.
	claimFailures map[string]error
	driveFailures map[string]error
	// Everything which has happened, in order.
	events []Event
	// Number of times Release has been called.
	releases uint
	// Simulated device (if attached).
	device *Device
	// When set, transitions are logged at debug level.
	trace bool
	// Total simulated time spent in delays.
	elapsed time.Duration
}

// NewPort constructs an empty simulated port.
func NewPort() *Port {
	return &Port{
		levels:        make(map[string]bus.Level),
		claimed:       make(map[string]bool),
		claimFailures: make(map[string]error),
		driveFailures: make(map[string]error),
	}
}

// Trace enables debug logging of every transition.
func (p *Port) Trace(enable bool) {
	p.trace = enable
}

// Attach connects a simulated device to the lines of the given mapping.
func (p *Port) Attach(mapping bus.Mapping) *Device {
	p.device = newDevice(mapping)
	return p.device
}

// FailClaim causes any attempt to claim the given line to fail with err.
func (p *Port) FailClaim(name string, err error) {
	p.claimFailures[name] = err
}

// FailDrive causes any attempt to drive the given line to fail with err.
func (p *Port) FailDrive(name string, err error) {
	p.driveFailures[name] = err
}

// Claim implementation for the bus.Port interface.
func (p *Port) Claim(name string) (bus.Line, error) {
	if err, ok := p.claimFailures[name]; ok {
		return nil, err
	} else if p.claimed[name] {
		return nil, fmt.Errorf("%w: %s already claimed", bus.ErrResourceAcquisition, name)
	}
	//
	p.claimed[name] = true
	//
	// Pulled up until first driven
	if _, ok := p.levels[name]; !ok {
		p.levels[name] = bus.High
	}
	//
	return &line{name, p}, nil
}

// Release implementation for the bus.Port interface.
func (p *Port) Release() error {
	p.releases++
	p.claimed = make(map[string]bool)
	p.events = append(p.events, Event{Kind: Release})
	//
	if p.trace {
		log.Debug("released all lines")
	}
	//
	return nil
}

// Sleep implementation for the bus.Clock interface.  No real time passes.
func (p *Port) Sleep(d time.Duration) {
	p.elapsed += d
	p.events = append(p.events, Event{Kind: Hold, Duration: d})
}

// Claimed determines whether the given line is currently claimed.
func (p *Port) Claimed(name string) bool {
	return p.claimed[name]
}

// Level returns the current level of a line.  Lines never claimed read low.
// Newly claimed lines read high until first driven.
func (p *Port) Level(name string) bus.Level {
	return p.levels[name]
}

// Value reconstructs an integer from the levels of the given lines, where the
// first line holds the least significant bit.
func (p *Port) Value(lines []string) uint64 {
	var value uint64
	//
	for i, name := range lines {
		if p.levels[name] {
			value |= 1 << i
		}
	}
	//
	return value
}

// Events returns every recorded event, in order.
func (p *Port) Events() []Event {
	return p.events
}

// Releases returns the number of times the port has been released.
func (p *Port) Releases() uint {
	return p.releases
}

// Elapsed returns the total simulated time spent in delays.
func (p *Port) Elapsed() time.Duration {
	return p.elapsed
}

func (p *Port) drive(name string, level bus.Level) error {
	if err, ok := p.driveFailures[name]; ok {
		return err
	} else if !p.claimed[name] {
		return errors.New("line not claimed")
	}
	//
	previous := p.levels[name]
	p.levels[name] = level
	p.events = append(p.events, Event{Kind: Drive, Line: name, Level: level})
	//
	if p.trace {
		log.Debugf("%s -> %s", name, level)
	}
	//
	if p.device != nil {
		p.device.observe(p, name, previous, level)
	}
	//
	return nil
}

type line struct {
	name string
	port *Port
}

func (l *line) Name() string {
	return l.name
}

func (l *line) Out(level bus.Level) error {
	return l.port.drive(l.name, level)
}
