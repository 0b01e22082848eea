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
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/hardware/host"
	"github.com/donly/fdskey/hardware/host/sim"
)

// a drive wired to a simulated host and a temporary storage directory.
type testRig struct {
	drv *Drive
	h   *sim.Host
	dir string
}

func newRig(t *testing.T, rewind host.RewindSpeed, save host.SaveStrategy) *testRig {
	t.Helper()

	h := sim.NewHost()
	dir := t.TempDir()

	drv := NewDrive(h.Bundle(host.NewDirStorage(dir), sim.Settings{
		Rewind: rewind,
		Save:   save,
	}))

	return &testRig{drv: drv, h: h, dir: dir}
}

// sidePayloads builds the block payloads of a disk side with one file per
// entry of fileSizes. The name argument becomes the game name in the disk
// info block.
func sidePayloads(name string, fileSizes ...int) [][]byte {
	info := make([]byte, 56)
	info[0] = fds.KindDiskInfo
	copy(info[1:], fds.Signature)
	copy(info[0x10:], name)

	count := []byte{fds.KindFileCount, byte(len(fileSizes))}

	payloads := [][]byte{info, count}

	for n, size := range fileSizes {
		hdr := make([]byte, 16)
		hdr[0] = fds.KindFileHeader
		hdr[1] = byte(n)
		hdr[2] = byte(n)
		copy(hdr[3:], "FILE")
		binary.LittleEndian.PutUint16(hdr[0x0d:], uint16(size))

		data := make([]byte, 1+size)
		data[0] = fds.KindFileData
		for i := 1; i < len(data); i++ {
			data[i] = byte((i*37 + n) & 0xff)
		}

		payloads = append(payloads, hdr, data)
	}

	return payloads
}

// sideBytes serialises block payloads into the file layout of one side:
// payload and checksum per block, no gaps, padded to the side size.
func sideBytes(payloads [][]byte) []byte {
	side := make([]byte, 0, fds.RomSideSize)

	for _, p := range payloads {
		side = append(side, p...)
		var crc [2]byte
		binary.LittleEndian.PutUint16(crc[:], fds.Crc(p))
		side = append(side, crc[:]...)
	}

	if len(side) > fds.RomSideSize {
		panic("test side does not fit the side size")
	}

	return append(side, make([]byte, fds.RomSideSize-len(side))...)
}

// writeImage writes an image file of the given sides, optionally with the
// 16 byte file header.
func writeImage(t *testing.T, dir string, fn string, withHeader bool, sides ...[]byte) string {
	t.Helper()

	var img []byte
	if withHeader {
		img = append(img, "FDS\x1a"...)
		img = append(img, make([]byte, fds.HeaderSize-4)...)
	}
	for _, s := range sides {
		img = append(img, s...)
	}

	if err := os.WriteFile(filepath.Join(dir, fn), img, 0644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}

	return fn
}

// readStored reads a stored file back for byte comparisons.
func readStored(t *testing.T, dir string, fn ...string) []byte {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(append([]string{dir}, fn...)...))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	return b
}

// motorOnReading brings a loaded drive into the Reading state.
func (rig *testRig) motorOnReading(t *testing.T) {
	t.Helper()

	rig.h.SetScanMedia(true)
	rig.drv.CheckPins()
	rig.h.Advance(notReadyTimeOriginal + 1)
	rig.drv.CheckPins()

	if rig.drv.State() != Reading {
		t.Fatalf("drive did not reach the reading state (%v)", rig.drv.State())
	}
}

// seekGap consumes the read stream until the head sits in the leading gap
// of the block at index i.
func (rig *testRig) seekGap(t *testing.T, i int) {
	t.Helper()

	offset := rig.drv.Image().BlockOffset(i)
	limit := 20 * fds.MaxSideSize

	for rig.drv.HeadPosition() < offset+1 && limit > 0 {
		rig.h.ConsumeRead(phasesPerByte)
		limit -= phasesPerByte
	}

	if limit <= 0 {
		t.Fatalf("read stream never reached block %d", i)
	}
}

// feedTrain feeds a pulse train to the capture stream, padded with short
// pulses so that no timestamp is left pending in a partial buffer half.
func (rig *testRig) feedTrain(train []uint16) {
	for len(train)%(writeBufferSize/2) != 0 {
		train = append(train, sim.ShortPulse)
	}
	rig.h.FeedPulses(train)
}

// blockTrain is the pulse train that rewrites the current block with the
// given payload: ramp, gap carrier, terminator and the modulated payload
// plus checksum.
func blockTrain(payload []byte) []uint16 {
	data := make([]byte, 0, len(payload)+2)
	data = append(data, payload...)
	var crc [2]byte
	binary.LittleEndian.PutUint16(crc[:], fds.Crc(payload))
	data = append(data, crc[:]...)

	return sim.WriteTrain(writeGapSkipPulses, 40, data)
}
