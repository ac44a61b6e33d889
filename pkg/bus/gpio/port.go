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

// Package gpio implements a bus port on top of the host's general-purpose I/O
// lines, using periph.io for pin access.  Line names are those registered with
// periph (e.g. "GPIO17" on a Raspberry Pi).
package gpio

import (
	"errors"
	"fmt"

	"github.com/consensys/go-eeprog/pkg/bus"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Port hands out host GPIO lines as bus lines.  Exclusivity is enforced within
// this process only; periph offers no way to detect another process driving
// the same pins.
type Port struct {
	// Claimed pins, in claim order.
	pins []gpio.PinIO
	// Names of claimed pins.
	claimed map[string]bool
	// Lookup function (gpioreg.ByName outside tests).
	lookup func(string) gpio.PinIO
}

// NewPort initialises the host drivers.  This fails when the host has no
// usable GPIO driver (e.g. insufficient permissions on /dev/gpiomem).
func NewPort() (*Port, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", bus.ErrResourceAcquisition, err)
	}
	//
	for _, d := range state.Loaded {
		log.Debugf("loaded host driver %s", d)
	}
	//
	for _, f := range state.Failed {
		log.Debugf("host driver %s failed: %s", f.D, f.Err)
	}
	//
	return newPort(gpioreg.ByName), nil
}

func newPort(lookup func(string) gpio.PinIO) *Port {
	return &Port{nil, make(map[string]bool), lookup}
}

// Claim implementation for the bus.Port interface.  The pin is configured as
// an output, initially driven high.
func (p *Port) Claim(name string) (bus.Line, error) {
	pin := p.lookup(name)
	//
	if pin == nil {
		return nil, fmt.Errorf("%w: no such line %s", bus.ErrResourceAcquisition, name)
	} else if p.claimed[pin.Name()] {
		return nil, fmt.Errorf("%w: %s already claimed", bus.ErrResourceAcquisition, pin.Name())
	} else if err := pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", bus.ErrResourceAcquisition, pin.Name(), err)
	}
	//
	p.claimed[pin.Name()] = true
	p.pins = append(p.pins, pin)
	//
	return &line{pin}, nil
}

// Release implementation for the bus.Port interface.  Every claimed pin is
// returned to a high-impedance input and halted.  Releasing continues past
// failures so that as many pins as possible are made safe.
func (p *Port) Release() error {
	var errs []error
	//
	for _, pin := range p.pins {
		if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			errs = append(errs, fmt.Errorf("releasing %s: %w", pin.Name(), err))
		} else if err := pin.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("halting %s: %w", pin.Name(), err))
		}
	}
	//
	p.pins = nil
	p.claimed = make(map[string]bool)
	//
	return errors.Join(errs...)
}

type line struct {
	pin gpio.PinIO
}

func (l *line) Name() string {
	return l.pin.Name()
}

func (l *line) Out(level bus.Level) error {
	return l.pin.Out(gpio.Level(level))
}
