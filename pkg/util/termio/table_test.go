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
package termio

import (
	"bytes"
	"testing"
)

func Test_TablePrinter_01(t *testing.T) {
	var buf bytes.Buffer
	//
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "A0", "GPIO2")
	table.SetRow(1, "WE", "GPIO27")
	table.SetEscape(0, 1, BoldAnsiEscape().Build())
	table.AnsiEscapes(false)
	table.Print(&buf)
	//
	if expected := " A0 |  GPIO2 |\n WE | GPIO27 |\n"; buf.String() != expected {
		t.Errorf("expected %q, received %q", expected, buf.String())
	}
}
