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
	"sync/atomic"

	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/hardware/host"
)

// buffer sizes for the two DMA streams. each stream is processed in halves.
const (
	readBufferSize  = 128
	writeBufferSize = 16
)

// timing constants. dwells are milliseconds against the host clock.
const (
	notReadyTime         = 100
	notReadyTimeOriginal = 3500
	autosaveDelay        = 2000
)

// the turbo rewind triggers when the head has drifted this many bytes past
// the used media space.
const notReadyBytes = 2

// number of captured pulses discarded after WRITE is asserted, covering the
// write-enable ramp.
const writeGapSkipPulses = 32

// number of consecutive short pulses in the stopping state that announce a
// consecutive block write by unlicensed software.
const multiWriteBits = 64

// error patterns returned by the drive.
const (
	InvalidImage  = "invalid disk image: %v"
	ImageTooLarge = "disk image too large: %v"
	ReadOnlyImage = "disk image is write protected"
	WrongCRC      = "crc mismatch in block %d"
	NotLoaded     = "no disk image loaded"
)

// Drive is the quick-disk drive emulation. It owns the side image, the read
// and write engines and the state machine that couples them to the console's
// control lines.
//
// The state and changed fields and the head position are touched by both the
// foreground and the DMA callbacks; they are atomic. Everything else is
// owned by exactly one context at a time.
type Drive struct {
	host host.Host

	side     *fds.Side
	filename string
	sideNum  int
	readOnly bool

	state   atomic.Int32
	changed atomic.Bool

	lastActionTime atomic.Uint32
	notReadyTime   atomic.Uint32

	// head position in media bytes, shared by the two engines. the engines
	// never run at the same time
	currentByte atomic.Int32

	// read engine
	readBuffer [readBufferSize]uint16
	readBit    int
	clock      byte
	lastValue  byte

	// write engine
	writeBuffer     [writeBufferSize]uint16
	lastTimestamp   uint16
	carrier         byte
	writeBit        int
	currentBlock    int
	currentBlockEnd int
	gapSkip         int
	shortPulses     int
}

// NewDrive is the preferred method of initialisation for the Drive type.
func NewDrive(h host.Host) *Drive {
	drv := &Drive{
		host: h,
		side: fds.NewSide(),
	}

	h.Lines.SetReady(false)
	h.Lines.SetMediaSet(false)
	h.Lines.SetWritableMedia(false)

	return drv
}

// State returns the current drive state.
func (drv *Drive) State() State {
	return State(drv.state.Load())
}

func (drv *Drive) setState(s State) {
	drv.state.Store(int32(s))
}

// IsChanged returns true if the image differs from what was last loaded or
// saved.
func (drv *Drive) IsChanged() bool {
	return drv.changed.Load()
}

// Filename of the loaded image. Empty when no image is loaded.
func (drv *Drive) Filename() string {
	return drv.filename
}

// Side returns the loaded side number.
func (drv *Drive) Side() int {
	return drv.sideNum
}

// Block returns the index of the block under the head, or -1.
func (drv *Drive) Block() int {
	if drv.State() == Off {
		return -1
	}
	return drv.side.BlockAt(int(drv.currentByte.Load()))
}

// BlockCount returns the number of blocks on the loaded side.
func (drv *Drive) BlockCount() int {
	return drv.side.BlockCount()
}

// HeadPosition returns the head position in media bytes.
func (drv *Drive) HeadPosition() int {
	return int(drv.currentByte.Load())
}

// Image exposes the loaded side image for diagnostics. Callers must treat
// it as read-only while the drive is running.
func (drv *Drive) Image() *fds.Side {
	return drv.side
}

// MaxSize returns the media capacity in bytes.
func (drv *Drive) MaxSize() int {
	return fds.MaxSideSize
}

// UsedSpace returns the occupied media bytes of the loaded side.
func (drv *Drive) UsedSpace() int {
	return drv.side.UsedSpace()
}

func (drv *Drive) turbo() bool {
	return drv.host.Settings.RewindSpeed() == host.RewindTurbo
}

// stop both engines and drop to Idle with READY withdrawn.
func (drv *Drive) stop() {
	drv.host.Read.StopRead()
	drv.host.Capture.StopCapture()
	drv.host.Lines.SetReady(false)
	drv.setState(Idle)
}

// CheckPins is the state machine tick. It observes the console's control
// lines and moves the drive between idle, read and write operation. Call it
// on every control line change and periodically from the foreground loop.
func (drv *Drive) CheckPins() {
	if drv.State() == Off {
		return
	}

	now := drv.host.Clock.Ticks()

	if !drv.host.Lines.ScanMedia() {
		// motor off
		switch drv.State() {
		case Writing:
			// the write engine drains to the block end on its own
		case Idle:
			if drv.changed.Load() && now-drv.lastActionTime.Load() > autosaveDelay {
				drv.setState(SavePending)
			}
		case SavePending:
			if !drv.changed.Load() {
				drv.setState(Idle)
			}
		default:
			drv.stop()
			if drv.turbo() {
				drv.resetReading()
			}
		}
		return
	}

	// motor on
	if drv.State() == SavePending && !drv.changed.Load() {
		drv.setState(Idle)
	}

	if !drv.host.Lines.WriteEnable() {
		// console is reading
		switch drv.State() {
		case Idle:
			if drv.turbo() || drv.currentByte.Load() == 0 {
				drv.host.Lines.SetReady(false)
				drv.notReadyTime.Store(now)
				drv.resetReading()
				drv.setState(ReadWaitReadyTimer)
			} else {
				// without turbo rewind the head keeps its position and the
				// console waits out the remainder of the revolution; READY
				// is only granted after the natural wrap to disk start
				drv.startReading(ReadWaitReady)
			}
		case ReadWaitReadyTimer:
			dwell := uint32(notReadyTimeOriginal)
			if drv.turbo() {
				dwell = notReadyTime
			}
			if now-drv.notReadyTime.Load() >= dwell {
				drv.host.Lines.SetReady(true)
				drv.startReading(Reading)
			}
		case WritingStopping:
			drv.host.Capture.StopCapture()
			drv.startReading(Reading)
		}
	} else {
		// console is writing
		switch drv.State() {
		case Idle, Reading, ReadWaitReady, ReadWaitReadyTimer:
			drv.host.Read.StopRead()
			drv.startWriting()
		}
	}

	drv.lastActionTime.Store(now)
}
