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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrImageRead indicates the image could not be read in full.
var ErrImageRead = errors.New("cannot read image")

// Image is a raw binary image: byte i is programmed at address i.  There is no
// header, checksum or length prefix.
type Image interface {
	io.ByteReader
	// Size returns the number of bytes in the image.
	Size() uint
}

// MemoryImage is an image held entirely in memory.
type MemoryImage struct {
	reader *bytes.Reader
}

// NewImage constructs an image from the given bytes.
func NewImage(data []byte) *MemoryImage {
	return &MemoryImage{bytes.NewReader(data)}
}

// ReadByte implementation for the io.ByteReader interface.
func (p *MemoryImage) ReadByte() (byte, error) {
	return p.reader.ReadByte()
}

// Size implementation for the Image interface.
func (p *MemoryImage) Size() uint {
	return uint(p.reader.Size())
}

// FileImage streams an image from a file.  Its size is fixed when the file is
// opened; if the file is subsequently truncated, reading fails with
// io.ErrUnexpectedEOF.
type FileImage struct {
	file   *os.File
	reader *bufio.Reader
	size   uint
}

// OpenImage opens the given file as an image.
func OpenImage(filename string) (*FileImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageRead, err)
	}
	//
	info, err := file.Stat()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %w", ErrImageRead, err), file.Close())
	} else if !info.Mode().IsRegular() {
		return nil, errors.Join(fmt.Errorf("%w: %s is not a regular file", ErrImageRead, filename), file.Close())
	}
	//
	return &FileImage{file, bufio.NewReader(file), uint(info.Size())}, nil
}

// ReadByte implementation for the io.ByteReader interface.
func (p *FileImage) ReadByte() (byte, error) {
	return p.reader.ReadByte()
}

// Size implementation for the Image interface.
func (p *FileImage) Size() uint {
	return p.size
}

// Close the underlying file.
func (p *FileImage) Close() error {
	return p.file.Close()
}
