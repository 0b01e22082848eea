// This file is part of FDSKey.
//
// FDSKey is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// FDSKey is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with FDSKey.  If not, see <https://www.gnu.org/licenses/>.

package fds_test

import (
	"testing"

	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/test"
)

func TestCrcEmpty(t *testing.T) {
	// a zero length payload is just the two flush bytes through the shift
	// register: the register value walks from 0x8000 down to 0x0001 and the
	// final carry applies the polynomial once
	test.ExpectEquality(t, fds.Crc(nil), 0x8408)
	test.ExpectEquality(t, fds.Crc([]byte{}), 0x8408)
}

func TestCrcSingleByte(t *testing.T) {
	test.ExpectEquality(t, fds.Crc([]byte{0x00}), 0x8ccc)
}

func TestCrcLeadingZeroes(t *testing.T) {
	// leading zero bytes shift the register without triggering the
	// polynomial until the seed bit has drained, so the checksum of N zero
	// bytes never equals the checksum of N+1 zero bytes
	a := fds.Crc(make([]byte, 4))
	b := fds.Crc(make([]byte, 5))
	test.ExpectInequality(t, a, b)
}

func TestCrcSensitivity(t *testing.T) {
	payload := make([]byte, 56)
	payload[0] = fds.KindDiskInfo
	copy(payload[1:], fds.Signature)

	ref := fds.Crc(payload)

	// every single-bit flip must change the checksum
	for i := range payload {
		for bit := 0; bit < 8; bit++ {
			payload[i] ^= 1 << bit
			if fds.Crc(payload) == ref {
				t.Fatalf("checksum unchanged by flipping bit %d of byte %d", bit, i)
			}
			payload[i] ^= 1 << bit
		}
	}

	// and the unmodified payload still matches
	test.ExpectEquality(t, fds.Crc(payload), ref)
}
