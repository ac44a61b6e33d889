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
	"slices"
	"testing"
)

func Test_Mapping_01(t *testing.T) {
	m := DefaultMapping()
	//
	if err := m.Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	} else if m.AddressWidth() != 15 {
		t.Errorf("expected 15 address lines, received %d", m.AddressWidth())
	} else if m.Capacity() != 32768 {
		t.Errorf("expected capacity 32768, received %d", m.Capacity())
	} else if len(m.Lines()) != 26 {
		t.Errorf("expected 26 lines, received %d", len(m.Lines()))
	}
}

func Test_Mapping_02(t *testing.T) {
	m := DefaultMapping()
	//
	checkRole(t, m, "GPIO2", "A0")
	checkRole(t, m, "GPIO16", "A14")
	checkRole(t, m, "GPIO17", "D0")
	checkRole(t, m, "GPIO24", "D7")
	checkRole(t, m, "GPIO25", "CE")
	checkRole(t, m, "GPIO26", "OE")
	checkRole(t, m, "GPIO27", "WE")
	checkRole(t, m, "GPIO28", "")
}

func Test_Mapping_03(t *testing.T) {
	m, err := ParseMapping([]byte(`{
		"address": ["P1", "P2", "P3"],
		"data": ["D0", "D1", "D2", "D3", "D4", "D5", "D6", "D7"],
		"ce": "CE", "oe": "OE", "we": "WE"
	}`))
	//
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if m.Capacity() != 8 {
		t.Errorf("expected capacity 8, received %d", m.Capacity())
	} else if !slices.Equal(m.Address, []string{"P1", "P2", "P3"}) {
		t.Errorf("unexpected address lines %v", m.Address)
	}
}

func Test_Mapping_04(t *testing.T) {
	// Data bus too narrow
	checkInvalidMapping(t, `{"address": ["A0"], "data": ["D0"], "ce": "CE", "oe": "OE", "we": "WE"}`)
}

func Test_Mapping_05(t *testing.T) {
	// Empty address bus
	checkInvalidMapping(t, `{"address": [], "data": ["D0","D1","D2","D3","D4","D5","D6","D7"],
		"ce": "CE", "oe": "OE", "we": "WE"}`)
}

func Test_Mapping_06(t *testing.T) {
	// Line bound twice
	checkInvalidMapping(t, `{"address": ["A0", "D3"], "data": ["D0","D1","D2","D3","D4","D5","D6","D7"],
		"ce": "CE", "oe": "OE", "we": "WE"}`)
}

func Test_Mapping_07(t *testing.T) {
	// Missing control line
	checkInvalidMapping(t, `{"address": ["A0"], "data": ["D0","D1","D2","D3","D4","D5","D6","D7"],
		"ce": "CE", "oe": "OE"}`)
}

func Test_Mapping_08(t *testing.T) {
	checkInvalidMapping(t, `{"address": `)
}

func Test_Mapping_09(t *testing.T) {
	m := DefaultMapping()
	//
	for i := len(m.Address); i <= MaxAddressWidth; i++ {
		m.Address = append(m.Address, fmt.Sprintf("X%d", i))
	}
	//
	if err := m.Validate(); !errors.Is(err, ErrInvalidMapping) {
		t.Errorf("expected invalid mapping error, received %v", err)
	}
}

func Test_Timing_01(t *testing.T) {
	if err := DefaultTiming().Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	//
	slow := Timing{2 * MinPulseWidth, 10 * MinRecovery}
	//
	if err := slow.Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func checkRole(t *testing.T, m Mapping, line string, expected string) {
	if actual := m.Role(line); actual != expected {
		t.Errorf("%s: expected %q, received %q", line, expected, actual)
	}
}

func checkInvalidMapping(t *testing.T, json string) {
	if _, err := ParseMapping([]byte(json)); !errors.Is(err, ErrInvalidMapping) {
		t.Errorf("expected invalid mapping error, received %v", err)
	}
}
