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

import "github.com/donly/fdskey/hardware/fds"

// length of the read impulse in PWM ticks. a slot value of impulseLength-1
// produces one impulse; a zero slot keeps the line level.
const impulseLength = 16

// each media bit is emitted over two phase slots, so a media byte spans
// sixteen phases.
const phasesPerByte = 16

// startReading prefills the stream buffer and starts the PWM DMA. The state
// argument selects between Reading and ReadWaitReady operation; it is set
// before the prefill so that the fill routine is live.
func (drv *Drive) startReading(s State) {
	drv.setState(s)
	drv.fillReadBuffer(0, readBufferSize)
	drv.host.Read.StartRead(drv.readBuffer[:], drv.onReadHalf, drv.onReadFull)
}

// resetReading returns the modulator to its initial phase. With turbo rewind
// the head is also returned to disk start; otherwise the head keeps its
// position, emulating the latency of a real rewind.
func (drv *Drive) resetReading() {
	drv.clock = 0
	drv.lastValue = 0
	drv.readBit = 0
	if drv.turbo() {
		drv.currentByte.Store(0)
	}
}

// DMA callbacks. the half-complete callback refills the consumed first half
// of the buffer, the full-complete callback the second half.

func (drv *Drive) onReadHalf() {
	drv.fillReadBuffer(0, readBufferSize/2)
}

func (drv *Drive) onReadFull() {
	drv.fillReadBuffer(readBufferSize/2, readBufferSize)
}

// fillReadBuffer produces one phase slot per buffer entry. It is a no-op
// unless the read engine is running.
//
// Each phase compares the current media bit against the phase clock; an
// impulse is emitted on every low-to-high transition of the comparison,
// which yields the FM waveform of the original drive head.
func (drv *Drive) fillReadBuffer(from int, to int) {
	st := drv.State()
	if st != Reading && st != ReadWaitReady {
		return
	}

	data := drv.side.Data()

	for i := from; i < to; i++ {
		cb := int(drv.currentByte.Load())

		b := (data[cb] >> (drv.readBit / 2)) & 0x01
		v := b ^ drv.clock

		if v == 1 && drv.lastValue == 0 {
			drv.readBuffer[i] = impulseLength - 1
		} else {
			drv.readBuffer[i] = 0
		}

		drv.lastValue = v
		drv.clock ^= 0x01

		drv.readBit++
		if drv.readBit >= phasesPerByte {
			drv.readBit = 0
			cb = (cb + 1) % fds.MaxSideSize
			drv.currentByte.Store(int32(cb))

			if drv.endOfMedia(cb) {
				// rewind: the console sees NOT_READY until the dwell in
				// CheckPins() has elapsed. the remaining slots stay silent
				drv.host.Lines.SetReady(false)
				drv.notReadyTime.Store(drv.host.Clock.Ticks())
				drv.setState(ReadWaitReadyTimer)
				drv.resetReading()
				for ; i < to; i++ {
					drv.readBuffer[i] = 0
				}
				return
			}
		}
	}
}

// endOfMedia decides whether the head has to rewind after advancing to
// media byte cb.
func (drv *Drive) endOfMedia(cb int) bool {
	if cb == 0 {
		return true
	}
	return drv.turbo() && cb > drv.side.UsedSpace()+notReadyBytes
}
