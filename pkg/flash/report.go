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
package flash

import (
	log "github.com/sirupsen/logrus"
)

// ProgressInterval is the number of addresses between progress
// notifications.
const ProgressInterval = 512

// Reporter receives notifications as an image is flashed.
type Reporter interface {
	// Started is called once, before the first write, with the image size.
	Started(total uint)
	// Progress is called at address 0 and every ProgressInterval addresses
	// thereafter, after the byte at that address has been written.
	Progress(addr uint, value byte)
	// Completed is called once every byte has been written.
	Completed()
}

// LogReporter reports progress through the logger.
type LogReporter struct{}

// Started implementation for Reporter interface.
func (LogReporter) Started(total uint) {
	log.Infof("flashing %d bytes", total)
}

// Progress implementation for Reporter interface.
func (LogReporter) Progress(addr uint, value byte) {
	log.Infof("[%05X] writing 0x%02X", addr, value)
}

// Completed implementation for Reporter interface.
func (LogReporter) Completed() {
	log.Info("flash complete")
}

// MultiReporter forwards every notification to each of its reporters in turn.
type MultiReporter []Reporter

// Started implementation for Reporter interface.
func (p MultiReporter) Started(total uint) {
	for _, r := range p {
		r.Started(total)
	}
}

// Progress implementation for Reporter interface.
func (p MultiReporter) Progress(addr uint, value byte) {
	for _, r := range p {
		r.Progress(addr, value)
	}
}

// Completed implementation for Reporter interface.
func (p MultiReporter) Completed() {
	for _, r := range p {
		r.Completed()
	}
}
