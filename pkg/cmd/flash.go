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
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/consensys/go-eeprog/pkg/bus"
	"github.com/consensys/go-eeprog/pkg/bus/gpio"
	"github.com/consensys/go-eeprog/pkg/bus/sim"
	"github.com/consensys/go-eeprog/pkg/flash"
	"github.com/consensys/go-eeprog/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flashCmd = &cobra.Command{
	Use:   "flash [flags] image_file",
	Short: "Program a binary image into a parallel EEPROM.",
	Long: `Program a binary image into a parallel EEPROM.
	The image is raw binary: byte N is written to address N.
	Bytes are written one at a time, in ascending order, with no verification.
	An interrupted run leaves the device partially programmed.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg flashConfig

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		cfg.program.Mapping = readMapping(cmd)
		cfg.program.Timing.PulseWidth = GetDuration(cmd, "pulse-width")
		cfg.program.Timing.Recovery = GetDuration(cmd, "recovery")
		cfg.dryRun = GetFlag(cmd, "dry-run")
		cfg.progressBar = !GetFlag(cmd, "no-progress-bar") && !GetFlag(cmd, "verbose") &&
			termio.IsTerminal(os.Stderr)
		cfg.ansiEscapes = GetFlag(cmd, "ansi-escapes")
		cfg.trace = GetFlag(cmd, "verbose")
		// Interrupts are honoured between write cycles.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		//
		if err := flashImage(ctx, args[0], cfg); err != nil {
			log.Error(err)
			stop()
			os.Exit(1)
		}
	},
}

// flash config encapsulates the parameters of a single flashing run.
type flashConfig struct {
	// Mapping and timing for the bus controller.
	program flash.Config
	// Use simulated lines instead of real ones.
	dryRun bool
	// Show a progress bar instead of progress logs.
	progressBar bool
	// Allow ANSI escapes in the progress bar.
	ansiEscapes bool
	// Log every line transition (dry run only).
	trace bool
}

func flashImage(ctx context.Context, filename string, cfg flashConfig) (err error) {
	var port bus.Port
	//
	image, err := flash.OpenImage(filename)
	if err != nil {
		return err
	}
	//
	defer func() {
		err = errors.Join(err, image.Close())
	}()
	//
	if cfg.dryRun {
		simulated := sim.NewPort()
		simulated.Trace(cfg.trace)
		simulated.Attach(cfg.program.Mapping)
		// Delays are recorded, not slept.
		cfg.program.Clock = simulated
		port = simulated
		//
		defer func() {
			log.Infof("dry run: %s of simulated delays", simulated.Elapsed())
		}()
	} else if port, err = gpio.NewPort(); err != nil {
		return err
	} else {
		cfg.program.Clock = bus.SystemClock{}
	}
	//
	return flash.Program(ctx, port, cfg.program, image, newReporter(cfg))
}

func newReporter(cfg flashConfig) flash.Reporter {
	if cfg.progressBar {
		return termio.NewProgressBar(os.Stderr, termio.Width(os.Stderr), cfg.ansiEscapes)
	}
	//
	return flash.LogReporter{}
}

func init() {
	rootCmd.AddCommand(flashCmd)
	flashCmd.Flags().Bool("dry-run", false, "simulate the bus lines instead of driving GPIO")
	flashCmd.Flags().Duration("pulse-width", bus.MinPulseWidth,
		"how long to hold write-enable active (cannot be below the default)")
	flashCmd.Flags().Duration("recovery", bus.MinRecovery,
		"how long to wait after each write cycle (cannot be below the default)")
	flashCmd.Flags().Bool("no-progress-bar", false, "log progress instead of showing a progress bar")
	flashCmd.Flags().Bool("ansi-escapes", true, "specify whether to allow ANSI escapes or not (e.g. for colour)")
}
