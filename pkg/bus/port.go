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

// Package bus drives a parallel EEPROM over individual address, data and
// control lines.
package bus

// Level is the state of a single output line.
type Level bool

const (
	// Low corresponds to 0V, which is the active state for every control line.
	Low Level = false
	// High corresponds to VCC, the idle state for every control line.
	High Level = true
)

// LevelOf returns the level representing the given bit (0 or 1).
func LevelOf(bit uint64) Level {
	return bit&1 == 1
}

func (l Level) String() string {
	if l {
		return "high"
	}
	//
	return "low"
}

// Line is a single physical output line.
type Line interface {
	// Name returns the physical name of this line.
	Name() string
	// Out drives the line to the given level.
	Out(Level) error
}

// Port is the set of physical lines available to a controller.  A port hands
// out lines exclusively: claiming the same line twice is an error.
type Port interface {
	// Claim configures the named line as an output and takes exclusive
	// control of it.
	Claim(name string) (Line, error)
	// Release returns every claimed line to a safe, non-driving state and
	// relinquishes control of it.
	Release() error
}
