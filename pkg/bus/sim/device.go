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
package sim

import (
	"fmt"

	"github.com/consensys/go-eeprog/pkg/bus"
)

// Device models a byte-wide parallel EEPROM.  A byte is latched on the rising
// edge of write-enable whilst chip-enable is low and output-enable is high.
// Asserting output-enable and write-enable together is recorded as a
// violation.
type Device struct {
	mapping bus.Mapping
	// Contents, indexed by address.  Unwritten bytes read as 0xFF.
	memory map[uint64]byte
	// Addresses in the order they were latched.
	writes []uint64
	// Electrical violations observed.
	violations []string
}

func newDevice(mapping bus.Mapping) *Device {
	return &Device{mapping: mapping, memory: make(map[uint64]byte)}
}

// Read returns the byte stored at the given address.
func (d *Device) Read(addr uint64) byte {
	if b, ok := d.memory[addr]; ok {
		return b
	}
	//
	return 0xFF
}

// Writes returns the address of every byte latched, in order.
func (d *Device) Writes() []uint64 {
	return d.writes
}

// Violations returns a description of every electrically invalid state seen.
func (d *Device) Violations() []string {
	return d.violations
}

func (d *Device) observe(p *Port, name string, previous bus.Level, level bus.Level) {
	var (
		ce = p.Level(d.mapping.ChipEnable)
		oe = p.Level(d.mapping.OutputEnable)
		we = p.Level(d.mapping.WriteEnable)
	)
	//
	if oe == bus.Low && we == bus.Low {
		d.violations = append(d.violations, fmt.Sprintf("OE and WE both active after %s -> %s", name, level))
	}
	// Latch on rising edge of write-enable
	if name == d.mapping.WriteEnable && previous == bus.Low && level == bus.High && ce == bus.Low && oe == bus.High {
		addr := p.Value(d.mapping.Address)
		d.memory[addr] = byte(p.Value(d.mapping.Data))
		d.writes = append(d.writes, addr)
	}
}
