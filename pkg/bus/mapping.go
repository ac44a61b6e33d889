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
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DataWidth is the number of lines on the data bus.  Every supported device
// is byte-wide.
const DataWidth = 8

// MaxAddressWidth bounds the number of address lines which can be mapped.
const MaxAddressWidth = 32

// Mapping binds logical bus signals to physical line names.  Address and data
// lines are ordered from least significant bit upwards, such that Address[0]
// is A0 and Data[0] is D0.  A mapping is fixed once a controller has been
// opened with it.
type Mapping struct {
	// Address bus lines, A0 first.
	Address []string `json:"address"`
	// Data bus lines, D0 first.
	Data []string `json:"data"`
	// Chip-enable line (active low).
	ChipEnable string `json:"ce"`
	// Output-enable line (active low).
	OutputEnable string `json:"oe"`
	// Write-enable line (active low).
	WriteEnable string `json:"we"`
}

// DefaultMapping returns the wiring of the reference programmer: A0-A14 on
// GPIO2-GPIO16, D0-D7 on GPIO17-GPIO24 and the control lines on GPIO25-GPIO27.
func DefaultMapping() Mapping {
	var m Mapping
	//
	for i := 2; i <= 16; i++ {
		m.Address = append(m.Address, fmt.Sprintf("GPIO%d", i))
	}
	//
	for i := 17; i <= 24; i++ {
		m.Data = append(m.Data, fmt.Sprintf("GPIO%d", i))
	}
	//
	m.ChipEnable = "GPIO25"
	m.OutputEnable = "GPIO26"
	m.WriteEnable = "GPIO27"
	//
	return m
}

// ParseMapping parses a mapping from its JSON representation and checks it is
// valid.
func ParseMapping(bytes []byte) (Mapping, error) {
	var m Mapping
	//
	if err := json.Unmarshal(bytes, &m); err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidMapping, err)
	}
	//
	return m, m.Validate()
}

// LoadMapping reads a JSON pin mapping from the given file.
func LoadMapping(filename string) (Mapping, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Mapping{}, err
	}
	//
	return ParseMapping(bytes)
}

// AddressWidth returns the number of lines on the address bus.
func (m Mapping) AddressWidth() uint {
	return uint(len(m.Address))
}

// Capacity returns the number of addressable bytes, i.e. 2^width.
func (m Mapping) Capacity() uint64 {
	return uint64(1) << m.AddressWidth()
}

// Lines returns every physical line in the mapping: the address bus, then the
// data bus, then chip-enable, output-enable and write-enable.
func (m Mapping) Lines() []string {
	lines := make([]string, 0, len(m.Address)+len(m.Data)+3)
	lines = append(lines, m.Address...)
	lines = append(lines, m.Data...)
	//
	return append(lines, m.ChipEnable, m.OutputEnable, m.WriteEnable)
}

// Role returns the logical signal a physical line is bound to (e.g. "A3",
// "D7" or "WE"), or the empty string if it is not bound.
func (m Mapping) Role(line string) string {
	for i, l := range m.Address {
		if l == line {
			return fmt.Sprintf("A%d", i)
		}
	}
	//
	for i, l := range m.Data {
		if l == line {
			return fmt.Sprintf("D%d", i)
		}
	}
	//
	switch line {
	case m.ChipEnable:
		return "CE"
	case m.OutputEnable:
		return "OE"
	case m.WriteEnable:
		return "WE"
	}
	//
	return ""
}

// Validate checks the bus widths and that every physical line is bound to
// exactly one role.
func (m Mapping) Validate() error {
	switch {
	case len(m.Address) == 0:
		return fmt.Errorf("%w: empty address bus", ErrInvalidMapping)
	case len(m.Address) > MaxAddressWidth:
		return fmt.Errorf("%w: address bus wider than %d lines", ErrInvalidMapping, MaxAddressWidth)
	case len(m.Data) != DataWidth:
		return fmt.Errorf("%w: data bus has %d lines (expected %d)", ErrInvalidMapping, len(m.Data), DataWidth)
	}
	//
	seen := make(map[string]bool)
	//
	for _, line := range m.Lines() {
		if strings.TrimSpace(line) == "" {
			return fmt.Errorf("%w: unnamed line", ErrInvalidMapping)
		} else if seen[line] {
			return fmt.Errorf("%w: line %s bound more than once", ErrInvalidMapping, line)
		}
		//
		seen[line] = true
	}
	//
	return nil
}

// String returns a compact rendering of the mapping, one signal group per line.
func (m Mapping) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("A0-A%d: %s\n", len(m.Address)-1, strings.Join(m.Address, " ")))
	builder.WriteString(fmt.Sprintf("D0-D%d: %s\n", len(m.Data)-1, strings.Join(m.Data, " ")))
	builder.WriteString(fmt.Sprintf("CE: %s\nOE: %s\nWE: %s", m.ChipEnable, m.OutputEnable, m.WriteEnable))
	//
	return builder.String()
}
