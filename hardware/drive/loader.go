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
	"io"

	"github.com/donly/fdskey/curated"
	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/hardware/host"
	"github.com/donly/fdskey/logger"
)

// reasons the block walk of a load can end.
type loadEnd int

const (
	endOfSide loadEnd = iota
	endOverflow
	endBadKind
)

// LoadSide reads one side of an image file into the media buffer and brings
// the drive out of the Off state. Any previously loaded side is discarded.
//
// With the everdrive save strategy a bram.srm save file shadows the image
// file and is preferred as the source.
func (drv *Drive) LoadSide(path string, side int, readOnly bool) error {
	if drv.State() != Off {
		if drv.IsChanged() {
			logger.Logf("fds", "discarding unsaved changes to %s", drv.filename)
		}
		drv.Close(false)
	}

	drv.host.Lines.SetMediaSet(true)
	drv.host.Lines.SetReady(false)

	// a previously written everdrive save replaces the image file as the
	// source
	src := path
	if drv.host.Settings.SaveStrategy() == host.SaveEverdrive {
		ed := everdrivePath(path)
		if _, err := drv.host.Storage.Stat(ed); err == nil {
			logger.Logf("fds", "loading from %s", ed)
			src = ed
		}
	}

	f, err := drv.host.Storage.Open(src, false)
	if err != nil {
		drv.unload()
		return err
	}
	defer f.Close()

	sides, hasHeader, err := fds.SideCount(f.Size())
	if err != nil {
		drv.unload()
		return curated.Errorf(InvalidImage, err)
	}
	if side < 0 || side >= sides {
		drv.unload()
		return curated.Errorf(InvalidImage, curated.Errorf("file has no side %d", side))
	}

	seek := int64(side) * fds.RomSideSize
	if hasHeader {
		seek += fds.HeaderSize
	}
	if _, err := f.Seek(seek, io.SeekStart); err != nil {
		drv.unload()
		return err
	}

	s := drv.side
	s.Reset()

	end, err := drv.readBlocks(f, s)
	if err != nil {
		drv.unload()
		return err
	}

	// the file count block defines how many blocks the side must have for
	// the walk to be considered complete; fewer is only acceptable if the
	// side genuinely ends there
	minBlocks := 2
	if n, ok := s.FileCount(); ok {
		minBlocks = n*2 + 2
	}
	if s.BlockCount() < minBlocks {
		drv.unload()
		if end == endOverflow {
			return curated.Errorf(ImageTooLarge, curated.Errorf("%d of %d blocks loaded", s.BlockCount(), minBlocks))
		}
		return curated.Errorf(InvalidImage, curated.Errorf("%d of %d blocks loaded", s.BlockCount(), minBlocks))
	}

	drv.filename = path
	drv.sideNum = side
	drv.readOnly = readOnly
	drv.changed.Store(false)
	drv.resetCursors()

	drv.host.Lines.SetWritableMedia(!readOnly)

	if inf, ok := s.Info(); ok {
		logger.Logf("fds", "loaded %s side %d: %v, %d blocks, %d bytes", path, side, inf, s.BlockCount(), s.UsedSpace())
	}

	if drv.host.Lines.ScanMedia() && drv.turbo() {
		drv.host.Lines.SetReady(false)
		drv.notReadyTime.Store(drv.host.Clock.Ticks())
		drv.setState(ReadWaitReadyTimer)
	} else {
		drv.setState(Idle)
	}

	drv.CheckPins()

	return nil
}

// readBlocks walks the file from the current seek position, appending blocks
// to the side until the side region is exhausted, a block does not fit on
// the media, or a payload does not carry the expected kind tag.
func (drv *Drive) readBlocks(f host.File, s *fds.Side) (loadEnd, error) {
	// payloads can be as large as a full file plus the kind tag
	buf := make([]byte, 1+0x10000)

	// bytes of the side region consumed so far; a block that would extend
	// past the region is treated like end of file
	consumed := 0

	for i := 0; ; i++ {
		psize := s.PayloadSize(i)

		if consumed+psize+2 > fds.RomSideSize {
			return endOfSide, nil
		}

		if _, err := io.ReadFull(f, buf[:psize]); err != nil {
			return endOfSide, nil
		}

		if buf[0] != fds.KindForIndex(i) {
			return endBadKind, nil
		}

		if i == 0 && string(buf[1:15]) != fds.Signature {
			return endBadKind, curated.Errorf(InvalidImage, curated.Errorf("disk info signature missing"))
		}

		if err := s.AppendBlock(buf[:psize]); err != nil {
			return endOverflow, nil
		}

		// the stored checksum is not trusted; skip it
		if _, err := io.ReadFull(f, buf[:2]); err != nil {
			return endOfSide, nil
		}

		consumed += psize + 2
	}
}

// resetCursors returns both engines to disk start.
func (drv *Drive) resetCursors() {
	drv.currentByte.Store(0)
	drv.readBit = 0
	drv.clock = 0
	drv.lastValue = 0
	drv.writeBit = 0
	drv.currentBlock = 0
	drv.currentBlockEnd = 0
	drv.gapSkip = 0
	drv.shortPulses = 0
}

// unload reverses the effects of a failed load.
func (drv *Drive) unload() {
	drv.side.Reset()
	drv.filename = ""
	drv.changed.Store(false)
	drv.resetCursors()
	drv.host.Lines.SetReady(false)
	drv.host.Lines.SetMediaSet(false)
	drv.host.Lines.SetWritableMedia(false)
	drv.setState(Off)
}

// Close stops the drive and discards the loaded image, saving it first if
// the save argument is set and there are unsaved changes. A save failure
// still closes the drive; the error is returned.
func (drv *Drive) Close(save bool) error {
	if drv.State() == Off {
		return nil
	}

	var err error
	if save && drv.IsChanged() {
		err = drv.Save()
	}

	drv.host.Read.StopRead()
	drv.host.Capture.StopCapture()
	drv.unload()

	return err
}
