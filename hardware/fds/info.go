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

package fds

import (
	"fmt"
	"strings"
)

// DiskInfo is the decoded disk info block. Only the fields useful for
// display and logging are decoded; the block is otherwise opaque to the
// drive.
type DiskInfo struct {
	ManufacturerCode byte
	GameName         string
	GameType         byte
	Revision         byte
	SideNumber       byte
	DiskNumber       byte
	BootFileID       byte
}

// field offsets inside the disk info payload.
const (
	infoManufacturer = 0x0f
	infoGameName     = 0x10
	infoGameType     = 0x13
	infoRevision     = 0x14
	infoSideNumber   = 0x15
	infoDiskNumber   = 0x16
	infoBootFileID   = 0x19
)

// Info decodes the disk info block. Returns false if the block is not in the
// buffer.
func (s *Side) Info() (DiskInfo, bool) {
	if len(s.offsets) == 0 {
		return DiskInfo{}, false
	}

	p := s.Payload(0)

	name := strings.TrimRight(string(p[infoGameName:infoGameName+3]), "\x00 ")

	return DiskInfo{
		ManufacturerCode: p[infoManufacturer],
		GameName:         name,
		GameType:         p[infoGameType],
		Revision:         p[infoRevision],
		SideNumber:       p[infoSideNumber],
		DiskNumber:       p[infoDiskNumber],
		BootFileID:       p[infoBootFileID],
	}, true
}

func (inf DiskInfo) String() string {
	side := "A"
	if inf.SideNumber != 0 {
		side = "B"
	}
	return fmt.Sprintf("%s disk %d side %s rev %d", inf.GameName, inf.DiskNumber+1, side, inf.Revision)
}
