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

// Package sim is a deterministic host implementation. Control lines are
// plain fields, the clock advances on demand, the read DMA is stepped by
// consuming slots and the capture DMA is stepped by feeding pulse
// intervals.
//
// The package also provides the inverse of the drive's write demodulator,
// so that tests and the command line driver can synthesise the pulse train
// a console would produce for a given byte sequence.
package sim

import "github.com/donly/fdskey/hardware/host"

// Host implements the hardware side of every host interface.
type Host struct {
	// output lines as driven by the drive, asserted state
	ready    bool
	mediaSet bool
	writable bool

	// input lines as driven by the test
	scanMedia   bool
	writeEnable bool

	ticks uint32

	readBuf    []uint16
	readPos    int
	onReadHalf func()
	onReadFull func()
	reading    bool

	capBuf    []uint16
	capPos    int
	onCapHalf func()
	onCapFull func()
	capturing bool

	// free-running capture counter
	counter uint16
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost() *Host {
	return &Host{}
}

// Bundle assembles a host.Host around this simulation.
func (h *Host) Bundle(sto host.Storage, set host.Settings) host.Host {
	return host.Host{
		Lines:    h,
		Read:     h,
		Capture:  h,
		Clock:    h,
		Storage:  sto,
		Settings: set,
	}
}

// SetReady implements the host.Lines interface.
func (h *Host) SetReady(asserted bool) { h.ready = asserted }

// SetMediaSet implements the host.Lines interface.
func (h *Host) SetMediaSet(asserted bool) { h.mediaSet = asserted }

// SetWritableMedia implements the host.Lines interface.
func (h *Host) SetWritableMedia(asserted bool) { h.writable = asserted }

// ScanMedia implements the host.Lines interface.
func (h *Host) ScanMedia() bool { return h.scanMedia }

// WriteEnable implements the host.Lines interface.
func (h *Host) WriteEnable() bool { return h.writeEnable }

// Ready reports the level the drive is driving on the READY line.
func (h *Host) Ready() bool { return h.ready }

// MediaSet reports the level the drive is driving on the MEDIA_SET line.
func (h *Host) MediaSet() bool { return h.mediaSet }

// WritableMedia reports the level the drive is driving on the
// WRITABLE_MEDIA line.
func (h *Host) WritableMedia() bool { return h.writable }

// SetScanMedia drives the SCAN_MEDIA line: true runs the motor.
func (h *Host) SetScanMedia(on bool) { h.scanMedia = on }

// SetWrite drives the WRITE line: true means the console is writing.
func (h *Host) SetWrite(on bool) { h.writeEnable = on }

// Ticks implements the host.Clock interface.
func (h *Host) Ticks() uint32 { return h.ticks }

// Advance the millisecond clock.
func (h *Host) Advance(ms uint32) { h.ticks += ms }

// StartRead implements the host.ReadStream interface.
func (h *Host) StartRead(buf []uint16, onHalf func(), onFull func()) {
	h.readBuf = buf
	h.onReadHalf = onHalf
	h.onReadFull = onFull
	h.readPos = 0
	h.reading = true
}

// StopRead implements the host.ReadStream interface.
func (h *Host) StopRead() { h.reading = false }

// ReadRunning reports whether the read stream has been started.
func (h *Host) ReadRunning() bool { return h.reading }

// ConsumeRead consumes n phase slots from the read stream, firing the DMA
// callbacks at the half and full marks, and returns the consumed slot
// values.
func (h *Host) ConsumeRead(n int) []uint16 {
	out := make([]uint16, 0, n)

	for i := 0; i < n; i++ {
		if !h.reading {
			break
		}

		out = append(out, h.readBuf[h.readPos])
		h.readPos++

		if h.readPos == len(h.readBuf)/2 {
			h.onReadHalf()
		} else if h.readPos == len(h.readBuf) {
			h.readPos = 0
			h.onReadFull()
		}
	}

	return out
}

// StartCapture implements the host.WriteCapture interface.
func (h *Host) StartCapture(buf []uint16, onHalf func(), onFull func()) {
	h.capBuf = buf
	h.onCapHalf = onHalf
	h.onCapFull = onFull
	h.capPos = 0
	h.capturing = true
}

// StopCapture implements the host.WriteCapture interface.
func (h *Host) StopCapture() { h.capturing = false }

// CaptureRunning reports whether the capture stream has been started.
func (h *Host) CaptureRunning() bool { return h.capturing }

// FeedPulses converts pulse intervals to capture timestamps and deposits
// them in the capture buffer, firing the DMA callbacks at the half and full
// marks. Timestamps left in an incomplete half stay pending, as they would
// on real hardware.
func (h *Host) FeedPulses(intervals []uint16) {
	for _, iv := range intervals {
		if !h.capturing {
			return
		}

		h.counter += iv
		h.capBuf[h.capPos] = h.counter
		h.capPos++

		if h.capPos == len(h.capBuf)/2 {
			h.onCapHalf()
		} else if h.capPos == len(h.capBuf) {
			h.capPos = 0
			h.onCapFull()
		}
	}
}

// CapturePending returns the number of timestamps waiting in an incomplete
// buffer half.
func (h *Host) CapturePending() int {
	if len(h.capBuf) == 0 {
		return 0
	}
	return h.capPos % (len(h.capBuf) / 2)
}
