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

package sim

import "github.com/donly/fdskey/hardware/host"

// Pulse intervals in capture ticks for the three interval bands the drive
// distinguishes. They correspond to 1.0, 1.5 and 2.0 bit cells.
const (
	ShortPulse  = 96
	MediumPulse = 144
	LongPulse   = 192
)

// Settings is a fixed host.Settings value for tests.
type Settings struct {
	Rewind host.RewindSpeed
	Save   host.SaveStrategy
}

// RewindSpeed implements the host.Settings interface.
func (s Settings) RewindSpeed() host.RewindSpeed { return s.Rewind }

// SaveStrategy implements the host.Settings interface.
func (s Settings) SaveStrategy() host.SaveStrategy { return s.Save }

// BitsOf unpacks bytes into bits, LSB first, the order they appear on the
// media.
func BitsOf(data []byte) []byte {
	bits := make([]byte, 0, len(data)*8)
	for _, d := range data {
		for i := 0; i < 8; i++ {
			bits = append(bits, (d>>i)&0x01)
		}
	}
	return bits
}

// Modulate converts a bit stream into the pulse intervals a console
// produces when writing it. The encoding starts on the carrier phase the
// drive is in immediately after it has recognised the gap terminator.
//
// A trailing zero bit that cannot be paired is sent as a zero-zero pair;
// the padding bit is harmless because a drive stops listening at the block
// end.
func Modulate(bits []byte) []uint16 {
	pulses := make([]uint16, 0, len(bits))

	carrier := byte(0)
	i := 0
	for i < len(bits) {
		if carrier == 0x80 {
			if bits[i] == 0 {
				pulses = append(pulses, ShortPulse)
			} else {
				pulses = append(pulses, MediumPulse)
				carrier = 0
			}
			i++
			continue
		}

		// carrier phase 0: a one stands alone, zeroes pair with the bit
		// that follows
		if bits[i] == 1 {
			pulses = append(pulses, ShortPulse)
			i++
			continue
		}
		if i+1 >= len(bits) {
			pulses = append(pulses, MediumPulse)
			break
		}
		if bits[i+1] == 0 {
			pulses = append(pulses, MediumPulse)
			carrier = 0x80
		} else {
			pulses = append(pulses, LongPulse)
		}
		i += 2
	}

	return pulses
}

// WriteTrain builds the complete pulse train for rewriting a block: the
// write-enable ramp, a stretch of gap carrier, the gap terminator start and
// the modulated data bits.
func WriteTrain(ramp int, gap int, data []byte) []uint16 {
	train := make([]uint16, 0, ramp+gap+1+len(data)*8)

	for i := 0; i < ramp+gap; i++ {
		train = append(train, ShortPulse)
	}

	// the terminator's start bit
	train = append(train, MediumPulse)

	return append(train, Modulate(BitsOf(data))...)
}
