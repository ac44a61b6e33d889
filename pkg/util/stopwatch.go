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
package util

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// Stopwatch records when an operation began, so that its duration and
// throughput can be logged once it ends.
type Stopwatch struct {
	// Starting time
	startTime time.Time
	// Starting number of gc events
	startGc uint32
}

// NewStopwatch starts a new stopwatch.
func NewStopwatch() *Stopwatch {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)

	return &Stopwatch{time.Now(), m.NumGC}
}

// Elapsed returns the time since the stopwatch was started.
func (p *Stopwatch) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Rate returns the number of items per second processed, given the number of
// items processed since the stopwatch was started.
func (p *Stopwatch) Rate(items uint) float64 {
	secs := p.Elapsed().Seconds()
	//
	if secs == 0 {
		return 0
	}
	//
	return float64(items) / secs
}

// Log logs the time taken since the stopwatch was started, along with the
// number of bytes processed per second.
func (p *Stopwatch) Log(prefix string, bytes uint) {
	var m runtime.MemStats

	runtime.ReadMemStats(&m)
	gcs := m.NumGC - p.startGc

	log.Debugf("%s took %0.2fs for %d bytes (%0.1f bytes/s, %v GC events)", prefix, p.Elapsed().Seconds(), bytes,
		p.Rate(bytes), gcs)
}
