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
package gpio

import (
	"errors"
	"testing"
	"time"

	"github.com/consensys/go-eeprog/pkg/bus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func Test_Port_01(t *testing.T) {
	port, pins := newTestPort("GPIO2", "GPIO3")
	//
	line, err := port.Claim("GPIO2")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if pins["GPIO2"].L != gpio.High {
		t.Errorf("expected claimed line to start high")
	}
	//
	if err := line.Out(bus.Low); err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if pins["GPIO2"].L != gpio.Low {
		t.Errorf("expected line driven low")
	} else if line.Name() != "GPIO2" {
		t.Errorf("expected GPIO2, received %s", line.Name())
	}
}

func Test_Port_02(t *testing.T) {
	port, _ := newTestPort("GPIO2")
	//
	if _, err := port.Claim("GPIO9"); !errors.Is(err, bus.ErrResourceAcquisition) {
		t.Errorf("expected resource acquisition error, received %v", err)
	}
	//
	if _, err := port.Claim("GPIO2"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if _, err := port.Claim("GPIO2"); !errors.Is(err, bus.ErrResourceAcquisition) {
		t.Errorf("expected resource acquisition error, received %v", err)
	}
}

func Test_Port_03(t *testing.T) {
	port, pins := newTestPort("GPIO2", "GPIO3")
	pins["GPIO2"].P = gpio.PullUp
	//
	for _, name := range []string{"GPIO2", "GPIO3"} {
		if _, err := port.Claim(name); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	//
	if err := port.Release(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	} else if pins["GPIO2"].P != gpio.PullNoChange {
		t.Errorf("expected GPIO2 returned to input")
	}
	// Released lines can be claimed again
	if _, err := port.Claim("GPIO2"); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func Test_Port_04(t *testing.T) {
	port, _ := newTestPort(bus.DefaultMapping().Lines()...)
	//
	controller, err := bus.Open(port, bus.DefaultMapping(), bus.DefaultTiming(), nopClock{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	//
	if err := controller.WriteCycle(0x10, 0x20); err != nil {
		t.Errorf("unexpected error: %s", err)
	} else if err := controller.Close(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func newTestPort(names ...string) (*Port, map[string]*gpiotest.Pin) {
	pins := make(map[string]*gpiotest.Pin)
	//
	for i, name := range names {
		pins[name] = &gpiotest.Pin{N: name, Num: i}
	}
	//
	lookup := func(name string) gpio.PinIO {
		if pin, ok := pins[name]; ok {
			return pin
		}
		//
		return nil
	}
	//
	return newPort(lookup), pins
}

type nopClock struct{}

func (nopClock) Sleep(time.Duration) {}
