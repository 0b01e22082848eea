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
	"errors"
	"io"
	"strings"

	"github.com/donly/fdskey/curated"
	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/hardware/host"
	"github.com/donly/fdskey/logger"
)

// everdrivePath maps an image file path to the Everdrive N8 save file that
// shadows it.
func everdrivePath(path string) string {
	base := path
	if i := strings.LastIndexAny(base, "\\/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return "EDN8\\gamedata\\" + base + "\\bram.srm"
}

// Save writes the loaded side back to storage according to the configured
// save strategy. A clean image is a successful no-op; a write protected
// image fails with ReadOnlyImage.
//
// Every block checksum is verified before anything is written: a mismatch
// means the write engine produced a block the console itself would reject,
// and persisting it would corrupt the image file.
func (drv *Drive) Save() error {
	if drv.State() == Off {
		return curated.Errorf(NotLoaded)
	}
	if !drv.IsChanged() {
		return nil
	}
	if drv.readOnly {
		return curated.Errorf(ReadOnlyImage)
	}

	s := drv.side
	for i := 0; i < s.BlockCount(); i++ {
		if fds.Crc(s.Payload(i)) != s.StoredCrc(i) {
			return curated.Errorf(WrongCRC, i)
		}
	}

	dest := drv.filename
	switch drv.host.Settings.SaveStrategy() {
	case host.SaveRewriteBackup:
		// a one-time verbatim copy of the original sits next to it
		backup := drv.filename + ".bak"
		if _, err := drv.host.Storage.Stat(backup); err != nil {
			if err := drv.copyFile(drv.filename, backup, 0); err != nil {
				return err
			}
			logger.Logf("save", "backup written to %s", backup)
		}

	case host.SaveEverdrive:
		dest = everdrivePath(drv.filename)
		if err := drv.makeEverdriveDirs(dest); err != nil {
			return err
		}
		if _, err := drv.host.Storage.Stat(dest); err != nil {
			// seed the save file with the original image, stripping the
			// header: bram.srm is always headerless
			var skip int64
			if _, hasHeader, err := drv.statHeader(drv.filename); err == nil && hasHeader {
				skip = fds.HeaderSize
			}
			if err := drv.copyFile(drv.filename, dest, skip); err != nil {
				return err
			}
		}
	}

	f, err := drv.host.Storage.Open(dest, true)
	if err != nil {
		return err
	}
	defer f.Close()

	// the destination decides for itself whether it carries a header
	seek := int64(drv.sideNum) * fds.RomSideSize
	if f.Size()%fds.RomSideSize == fds.HeaderSize {
		seek += fds.HeaderSize
	}
	if _, err := f.Seek(seek, io.SeekStart); err != nil {
		return err
	}

	// blocks are written payload and checksum only; gaps exist on the media,
	// not in the file
	for i := 0; i < s.BlockCount(); i++ {
		po := s.BlockOffset(i) + fds.GapSize(i)
		if _, err := f.Write(s.Data()[po : po+s.PayloadSize(i)+2]); err != nil {
			return err
		}
	}

	drv.changed.Store(false)
	logger.Logf("save", "%s side %d: %d blocks", dest, drv.sideNum, s.BlockCount())

	drv.CheckPins()

	return nil
}

// statHeader reports the side count and header presence of a stored file.
func (drv *Drive) statHeader(path string) (int, bool, error) {
	size, err := drv.host.Storage.Stat(path)
	if err != nil {
		return 0, false, err
	}
	sides, hasHeader, err := fds.SideCount(size)
	return sides, hasHeader, err
}

// makeEverdriveDirs creates the directory chain of an everdrive save path.
func (drv *Drive) makeEverdriveDirs(dest string) error {
	dir := dest[:strings.LastIndex(dest, "\\")]

	var p string
	for _, part := range strings.Split(dir, "\\") {
		if p == "" {
			p = part
		} else {
			p += "\\" + part
		}
		if err := drv.host.Storage.Mkdir(p); err != nil && !errors.Is(err, host.Exists) {
			return err
		}
	}

	return nil
}

// copyFile copies a stored file, skipping the first skip bytes of the
// source.
func (drv *Drive) copyFile(src string, dst string, skip int64) error {
	in, err := drv.host.Storage.Open(src, false)
	if err != nil {
		return err
	}
	defer in.Close()

	if _, err := in.Seek(skip, io.SeekStart); err != nil {
		return err
	}

	out, err := drv.host.Storage.Open(dst, true)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}

	return nil
}
