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

// Package drive emulates the quick-disk drive of the Famicom Disk System.
//
// The Drive type couples three things: a read engine that turns the loaded
// side image into the pulse stream a real drive head would produce, a write
// engine that demodulates the console's write signal back into image bytes,
// and a state machine that switches between them according to the console's
// motor and write-enable lines.
//
// CheckPins() is the state machine tick. It must be called whenever a
// control line changes and periodically from the foreground loop. The read
// and write engines run from the host's DMA callbacks and never block.
//
// LoadSide(), Save() and Close() move whole sides between the image file on
// storage and the media buffer. Saving is driven by the foreground loop:
// when the drive reports the SavePending state the loop is expected to call
// Save().
package drive
