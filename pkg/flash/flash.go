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

// Package flash programs a binary image into a parallel EEPROM, one write
// cycle per byte in ascending address order.
package flash

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/go-eeprog/pkg/bus"
	"github.com/consensys/go-eeprog/pkg/util"
)

// Config determines how the bus controller is opened for a run.
type Config struct {
	Mapping bus.Mapping
	Timing  bus.Timing
	Clock   bus.Clock
}

// DefaultConfig uses the reference wiring, the device minimum timings and the
// wall clock.
func DefaultConfig() Config {
	return Config{bus.DefaultMapping(), bus.DefaultTiming(), bus.SystemClock{}}
}

// Program opens a controller on the given port, flashes the image through it
// and then closes the controller.  The port is released exactly once however
// the run ends, including when the image cannot be read, the context is
// cancelled, or a write fails.
func Program(ctx context.Context, port bus.Port, cfg Config, image Image, reporter Reporter) (err error) {
	controller, err := bus.Open(port, cfg.Mapping, cfg.Timing, cfg.Clock)
	if err != nil {
		return err
	}
	//
	defer func() {
		err = errors.Join(err, controller.Close())
	}()
	//
	return Flash(ctx, image, controller, reporter)
}

// Flash writes every byte of the image, such that byte i goes to address i.
// An image larger than the address bus can reach is rejected before anything
// is written.  Cancellation is checked between write cycles only; a cycle,
// once begun, always completes.  There is no retry and no verification: on
// error the device is left partially programmed.
func Flash(ctx context.Context, image Image, controller *bus.Controller, reporter Reporter) error {
	size := image.Size()
	//
	if uint64(size) > controller.Capacity() {
		return fmt.Errorf("%w: image of %d bytes exceeds capacity of %d bytes", bus.ErrAddressRange, size,
			controller.Capacity())
	}
	//
	stopwatch := util.NewStopwatch()
	//
	reporter.Started(size)
	//
	for addr := uint(0); addr < size; addr++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted at 0x%X: %w", addr, err)
		}
		//
		value, err := image.ReadByte()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: image ended at 0x%X (expected %d bytes): %w", ErrImageRead, addr, size,
				io.ErrUnexpectedEOF)
		} else if err != nil {
			return fmt.Errorf("%w: at 0x%X: %w", ErrImageRead, addr, err)
		}
		//
		if err := controller.WriteCycle(addr, value); err != nil {
			return fmt.Errorf("writing 0x%X: %w", addr, err)
		}
		//
		if addr%ProgressInterval == 0 {
			reporter.Progress(addr, value)
		}
	}
	//
	reporter.Completed()
	stopwatch.Log("flashing", size)
	//
	return nil
}
