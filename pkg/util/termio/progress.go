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
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// DEFAULT_WIDTH is used when the width of the output cannot be determined.
const DEFAULT_WIDTH = uint(80)

// IsTerminal determines whether the given file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// Width returns the number of columns of the terminal attached to the given
// file, or DEFAULT_WIDTH if this cannot be determined.
func Width(file *os.File) uint {
	w, _, err := term.GetSize(int(file.Fd()))
	//
	if err != nil || w <= 0 {
		return DEFAULT_WIDTH
	}
	//
	return uint(w)
}

// ProgressBar renders a single, continuously updated line showing how much of
// an image has been written.  For example:
//
// [#########                    ] 31% 0x2800/0x8000
//
// A progress bar can be used as a flash reporter.
type ProgressBar struct {
	out io.Writer
	// Number of columns available.
	width uint
	// Total number of bytes.
	total uint
	// Whether or not to use ANSI escapes.
	ansi bool
}

// NewProgressBar constructs a progress bar writing to the given output, which
// has the given number of columns.
func NewProgressBar(out io.Writer, width uint, ansi bool) *ProgressBar {
	return &ProgressBar{out, width, 0, ansi}
}

// Started implementation for Reporter interface.
func (p *ProgressBar) Started(total uint) {
	p.total = total
	p.render(0)
}

// Progress implementation for Reporter interface.
func (p *ProgressBar) Progress(addr uint, value byte) {
	p.render(addr + 1)
}

// Completed implementation for Reporter interface.
func (p *ProgressBar) Completed() {
	p.render(p.total)
	fmt.Fprintln(p.out)
}

// Render the bar for the given number of bytes written.
func (p *ProgressBar) render(done uint) {
	fmt.Fprintf(p.out, "\r%s", p.Line(done))
}

// Line returns the text of the bar for the given number of bytes written,
// without any carriage return.
func (p *ProgressBar) Line(done uint) string {
	var (
		percent uint = 100
		counter      = fmt.Sprintf(" %3d%% 0x%X/0x%X", percent, done, p.total)
	)
	//
	if p.total > 0 {
		percent = uint(uint64(done) * 100 / uint64(p.total))
		counter = fmt.Sprintf(" %3d%% 0x%X/0x%X", percent, done, p.total)
	}
	// Space left for the bar itself, excluding brackets.
	var cells uint
	//
	if n := uint(len(counter)) + 2; p.width > n {
		cells = p.width - n
	}
	//
	filled := cells * percent / 100
	bar := strings.Repeat("#", int(filled))
	//
	if p.ansi && filled > 0 {
		bar = NewAnsiEscape().FgColour(TERM_GREEN).Build() + bar + ResetAnsiEscape().Build()
	}
	//
	return "[" + bar + strings.Repeat(" ", int(cells-filled)) + "]" + counter
}
