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

import "errors"

// ErrResourceAcquisition indicates the physical lines could not be claimed.
// Nothing has been written to the device when this is returned.
var ErrResourceAcquisition = errors.New("cannot acquire physical lines")

// ErrAddressRange indicates an address (or image) which does not fit on the
// configured address bus.
var ErrAddressRange = errors.New("address out of range")

// ErrInvalidMapping indicates a pin mapping which breaks one of its
// invariants.
var ErrInvalidMapping = errors.New("invalid pin mapping")

// ErrInvalidTiming indicates a delay shorter than the device allows.
var ErrInvalidTiming = errors.New("invalid timing")

// ErrClosed is returned by any operation on a controller which has already
// been finalised.
var ErrClosed = errors.New("bus controller closed")
