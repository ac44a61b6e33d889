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
	"fmt"
	"time"
)

// MinPulseWidth is the shortest time write-enable may be held active for the
// device to latch a byte.
const MinPulseWidth = 10 * time.Microsecond

// MinRecovery is the device's internal write completion time.  No cycle may
// begin until this has elapsed since the previous one ended.
const MinRecovery = time.Millisecond

// Timing holds the delays of a write cycle.
type Timing struct {
	// How long write-enable is held active.
	PulseWidth time.Duration
	// How long to wait after chip-enable returns inactive.
	Recovery time.Duration
}

// DefaultTiming returns the device minimums.
func DefaultTiming() Timing {
	return Timing{MinPulseWidth, MinRecovery}
}

// Validate checks neither delay has been shortened below the device minimum.
// Lengthening them (e.g. for slower parts) is permitted.
func (t Timing) Validate() error {
	if t.PulseWidth < MinPulseWidth {
		return fmt.Errorf("%w: pulse width %s below %s", ErrInvalidTiming, t.PulseWidth, MinPulseWidth)
	} else if t.Recovery < MinRecovery {
		return fmt.Errorf("%w: recovery %s below %s", ErrInvalidTiming, t.Recovery, MinRecovery)
	}
	//
	return nil
}

// Clock provides the blocking delays of a write cycle.
type Clock interface {
	// Sleep blocks the calling goroutine for at least the given duration.
	Sleep(time.Duration)
}

// SystemClock blocks using the wall clock.
type SystemClock struct{}

// Sleep implementation for the Clock interface.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
