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

package drive

import (
	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/logger"
)

// One FDS bit cell in ticks of the capture timer. Pulse intervals arrive in
// three bands around 1.0, 1.5 and 2.0 bit cells; the two thresholds sit
// between the bands.
const (
	bitCellTicks = 96
	threshold1   = bitCellTicks + bitCellTicks/4   // 1.25 cells
	threshold2   = 2*bitCellTicks - bitCellTicks/4 // 1.75 cells
)

// startWriting positions the write cursor on the block under the head and
// starts the capture DMA. The engine waits in WritingGap for the gap
// terminator before any bit is stored.
func (drv *Drive) startWriting() {
	if !drv.resetWriting() {
		return
	}

	drv.carrier = 0
	drv.lastTimestamp = 0
	drv.setState(WritingGap)
	drv.host.Capture.StartCapture(drv.writeBuffer[:], drv.onWriteHalf, drv.onWriteFull)
}

// DMA callbacks. pulse intervals are the differences between consecutive
// capture timestamps; the last timestamp carries across buffer halves.

func (drv *Drive) onWriteHalf() {
	drv.decodeCaptures(0, writeBufferSize/2)
}

func (drv *Drive) onWriteFull() {
	drv.decodeCaptures(writeBufferSize/2, writeBufferSize)
}

func (drv *Drive) decodeCaptures(from int, to int) {
	st := drv.State()
	if st != WritingGap && st != Writing && st != WritingStopping {
		return
	}

	for i := from; i < to; i++ {
		t := drv.writeBuffer[i]
		pulse := t - drv.lastTimestamp
		drv.lastTimestamp = t
		drv.decodePulse(pulse)
	}
}

// decodePulse interprets a single pulse interval according to the current
// state.
func (drv *Drive) decodePulse(pulse uint16) {
	switch drv.State() {
	case WritingGap:
		// swallow the write-enable ramp, then wait for the gap terminator:
		// every gap pulse is a short carrier pulse, the first longer pulse
		// is the terminator's start bit
		if drv.gapSkip < writeGapSkipPulses {
			drv.gapSkip++
			return
		}
		if pulse >= threshold1 {
			drv.carrier = 0
			drv.writeBit = 0
			drv.setState(Writing)
		}

	case Writing:
		var band byte
		switch {
		case pulse < threshold1:
			band = 0x02
		case pulse < threshold2:
			band = 0x03
		default:
			band = 0x04
		}

		switch drv.carrier | band {
		case 0x82:
			drv.emitBit(0)
			drv.carrier = 0x80
		case 0x83:
			drv.emitBit(1)
			drv.carrier = 0
		case 0x02:
			drv.emitBit(1)
			drv.carrier = 0
		case 0x03:
			if drv.emitBit(0) {
				drv.emitBit(0)
			}
			drv.carrier = 0x80
		case 0x04:
			if drv.emitBit(0) {
				drv.emitBit(1)
			}
			drv.carrier = 0
		case 0x84:
			// a long pulse cannot occur on this carrier phase; ignore
		}

	case WritingStopping:
		// consecutive short pulses announce an immediate write of the next
		// block without WRITE being released (seen in unlicensed software)
		if pulse < threshold1 {
			drv.shortPulses++
			if drv.shortPulses >= multiWriteBits {
				if drv.resetWriting() {
					drv.carrier = 0
					drv.setState(WritingGap)
				}
			}
		} else {
			drv.shortPulses = 0
		}
	}
}

// emitBit stores one decoded bit in the media buffer, LSB first. Returns
// false if the bit completed the block and the engine has left the Writing
// state.
func (drv *Drive) emitBit(bit byte) bool {
	data := drv.side.Data()
	cb := int(drv.currentByte.Load())

	data[cb] = (data[cb] >> 1) | (bit << 7)

	drv.writeBit++
	if drv.writeBit < 8 {
		return true
	}
	drv.writeBit = 0

	cb = (cb + 1) % fds.MaxSideSize
	drv.currentByte.Store(int32(cb))

	if cb != drv.currentBlockEnd {
		return true
	}

	drv.endOfBlock()
	return false
}

// endOfBlock finalises the block once the cursor has crossed the block end.
func (drv *Drive) endOfBlock() {
	if !drv.host.Lines.ScanMedia() {
		// the motor stopped while the block was draining
		drv.stop()
		return
	}

	if drv.host.Lines.WriteEnable() {
		drv.gapSkip = 0
		drv.shortPulses = 0
		drv.setState(WritingStopping)
		return
	}

	// the console has already released WRITE; resume reading in place
	drv.host.Capture.StopCapture()
	drv.startReading(Reading)
}

// resetWriting aligns the write cursor with the block under the head. If the
// head is past the last block a fresh block is appended; if the block's span
// now collides with the block after it, the table is truncated. The block's
// gap is re-laid either way.
//
// Returns false if the media overflowed, in which case the drive has come to
// a full stop.
func (drv *Drive) resetWriting() bool {
	s := drv.side
	cb := int(drv.currentByte.Load())

	i := s.BlockAt(cb)
	if i < 0 {
		var err error
		i, err = s.AppendEmptyBlock()
		if err != nil {
			logger.Logf("drive", "write past media end: %v", err)
			drv.stop()
			return false
		}
	}

	offset := s.BlockOffset(i)
	size := s.BlockSize(i, true, true)

	if i+1 < s.BlockCount() && offset+size > s.BlockOffset(i+1) {
		logger.Logf("drive", "block %d grew; truncating table at %d", i, i+1)
		s.Truncate(i + 1)
	}

	s.RelayGap(i)

	drv.currentBlock = i
	drv.currentByte.Store(int32(offset + fds.GapSize(i)))
	drv.writeBit = 0
	drv.currentBlockEnd = (offset + size) % fds.MaxSideSize
	drv.gapSkip = 0
	drv.shortPulses = 0
	drv.changed.Store(true)

	return true
}
