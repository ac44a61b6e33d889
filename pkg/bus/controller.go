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
package bus

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Controller drives a parallel EEPROM through the lines of a port.  A
// controller is the sole owner of its port, from Open until Close.  It is not
// safe for concurrent use: write cycles must be issued one at a time from a
// single goroutine.
type Controller struct {
	port    Port
	mapping Mapping
	timing  Timing
	clock   Clock
	// Claimed address bus lines, A0 first.
	address []Line
	// Claimed data bus lines, D0 first.
	data []Line
	// Control lines
	ce, oe, we Line
	// Set once Close has been called.
	closed bool
}

// Open claims every line of the mapping from the given port, configures them
// as outputs and places the control lines in their idle (high) state.  Open
// takes ownership of the port: should it fail, the port has already been
// released.
func Open(port Port, mapping Mapping, timing Timing, clock Clock) (*Controller, error) {
	c := &Controller{port: port, mapping: mapping, timing: timing, clock: clock}
	//
	if err := c.initialise(); err != nil {
		return nil, errors.Join(err, port.Release())
	}
	//
	log.Debugf("bus controller ready (%d address lines, %s pulse, %s recovery)",
		mapping.AddressWidth(), timing.PulseWidth, timing.Recovery)
	//
	return c, nil
}

func (c *Controller) initialise() error {
	if err := c.mapping.Validate(); err != nil {
		return err
	} else if err := c.timing.Validate(); err != nil {
		return err
	}
	// Claim address and data buses
	for _, name := range c.mapping.Address {
		line, err := c.claim(name)
		if err != nil {
			return err
		}
		//
		c.address = append(c.address, line)
	}
	//
	for _, name := range c.mapping.Data {
		line, err := c.claim(name)
		if err != nil {
			return err
		}
		//
		c.data = append(c.data, line)
	}
	// Claim control lines
	var err error
	if c.ce, err = c.claim(c.mapping.ChipEnable); err != nil {
		return err
	} else if c.oe, err = c.claim(c.mapping.OutputEnable); err != nil {
		return err
	} else if c.we, err = c.claim(c.mapping.WriteEnable); err != nil {
		return err
	}
	// Idle: device deselected, neither reading nor writing.
	for _, line := range []Line{c.ce, c.oe, c.we} {
		if err := drive(line, High); err != nil {
			return fmt.Errorf("%w: %w", ErrResourceAcquisition, err)
		}
	}
	//
	return nil
}

func (c *Controller) claim(name string) (Line, error) {
	line, err := c.port.Claim(name)
	//
	if err != nil && !errors.Is(err, ErrResourceAcquisition) {
		return nil, fmt.Errorf("%w: %s (%s): %w", ErrResourceAcquisition, name, c.mapping.Role(name), err)
	} else if err != nil {
		return nil, err
	}
	//
	log.Debugf("claimed %s as %s", name, c.mapping.Role(name))
	//
	return line, nil
}

// Mapping returns the pin mapping this controller was opened with.
func (c *Controller) Mapping() Mapping {
	return c.mapping
}

// Timing returns the write cycle delays in use.
func (c *Controller) Timing() Timing {
	return c.timing
}

// Capacity returns the number of bytes addressable through this controller.
func (c *Controller) Capacity() uint64 {
	return c.mapping.Capacity()
}

// SetAddress drives address line i to bit i of addr.  Addresses which do not
// fit on the address bus are rejected rather than truncated.
func (c *Controller) SetAddress(addr uint) error {
	if c.closed {
		return ErrClosed
	} else if uint64(addr) >= c.Capacity() {
		return fmt.Errorf("%w: 0x%X exceeds %d-bit address bus", ErrAddressRange, addr, c.mapping.AddressWidth())
	}
	//
	return fanout(c.address, uint64(addr))
}

// SetData drives data line i to bit i of value.
func (c *Controller) SetData(value byte) error {
	if c.closed {
		return ErrClosed
	}
	//
	return fanout(c.data, uint64(value))
}

// WriteCycle programs a single byte.  The sequence is: assert address and
// data; select the chip with output disabled; pulse write-enable low for the
// pulse width; deselect; then wait out the recovery time.  Output-enable is
// held high throughout so it is never active alongside write-enable.  A cycle
// always runs to completion once write-enable has been asserted and is never
// retried.
func (c *Controller) WriteCycle(addr uint, value byte) error {
	if err := c.SetAddress(addr); err != nil {
		return err
	} else if err := c.SetData(value); err != nil {
		return err
	}
	//
	if err := drive(c.oe, High); err != nil {
		return c.abort(err)
	} else if err := drive(c.ce, Low); err != nil {
		return c.abort(err)
	} else if err := drive(c.we, Low); err != nil {
		return c.abort(err)
	}
	// Latch
	c.clock.Sleep(c.timing.PulseWidth)
	//
	if err := drive(c.we, High); err != nil {
		return c.abort(err)
	} else if err := drive(c.ce, High); err != nil {
		return c.abort(err)
	}
	// Internal write
	c.clock.Sleep(c.timing.Recovery)
	//
	return nil
}

// Return write-enable and chip-enable to idle after a failed transition, and
// wait out the recovery time in case the device began a write.
func (c *Controller) abort(err error) error {
	err = errors.Join(err, drive(c.we, High), drive(c.ce, High))
	c.clock.Sleep(c.timing.Recovery)
	//
	return err
}

// Close releases the port.  Only the first call has any effect; subsequent
// calls return nil.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	//
	c.closed = true
	//
	log.Debug("releasing bus lines")
	//
	return c.port.Release()
}

// Drive each line to the corresponding bit of value, least significant first.
func fanout(lines []Line, value uint64) error {
	for i, line := range lines {
		if err := drive(line, LevelOf(value>>i)); err != nil {
			return err
		}
	}
	//
	return nil
}

func drive(line Line, level Level) error {
	if err := line.Out(level); err != nil {
		return fmt.Errorf("driving %s %s: %w", line.Name(), level, err)
	}
	//
	return nil
}
