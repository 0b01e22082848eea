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

// Package host defines the contracts between the drive emulation and the
// hardware it runs on: the RAM adapter control lines, the PWM stream that
// carries the read signal, the capture timer that observes the write signal,
// a millisecond clock, the removable storage and the user settings.
//
// The drive package works exclusively through these interfaces. On real
// hardware they are implemented by timer/DMA/GPIO glue; the sim package
// implements them deterministically for tests and for the command line
// driver.
package host
