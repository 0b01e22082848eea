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

import "github.com/donly/fdskey/curated"

// RomSideSize is the number of bytes one disk side occupies in an image
// file. Sides are stored back to back, optionally preceded by a 16 byte file
// header.
const RomSideSize = 65500

// HeaderSize is the length of the optional image file header. A file carries
// the header iff its size modulo RomSideSize equals HeaderSize.
const HeaderSize = 16

// MaxSideSize is the capacity of the raw media buffer for one side,
// including gaps and checksums.
const MaxSideSize = 0x14000

// Gap sizes in media bytes. The first block is preceded by the long leading
// gap (28300 bits on real media); every further block by the short
// inter-block gap (976 bits). The last byte of every gap is the terminator.
const (
	FirstGapBytes = 28300 / 8
	NextGapBytes  = 976 / 8
)

// GapTerminator is the byte that ends a gap and announces the next block.
const GapTerminator = 0x80

// Signature is the ASCII string every disk info block carries at payload
// offset 1.
const Signature = "*NINTENDO-HVC*"

// Block kind tags. The first payload byte of every block is its kind.
const (
	KindDiskInfo   = 0x01
	KindFileCount  = 0x02
	KindFileHeader = 0x03
	KindFileData   = 0x04
)

// fixed payload sizes per block kind. File data blocks have no fixed size;
// see Side.PayloadSize().
const (
	diskInfoPayloadSize   = 56
	fileCountPayloadSize  = 2
	fileHeaderPayloadSize = 16
)

// offset of the 16-bit little-endian file size field inside a file header
// block payload.
const fileSizeOffset = 0x0d

// error patterns used by this package.
const (
	// file size is not a whole number of sides
	NotSideMultiple = "file size is not a multiple of the side size"
)

// KindForIndex returns the kind tag expected of the block at index i.
func KindForIndex(i int) byte {
	switch {
	case i == 0:
		return KindDiskInfo
	case i == 1:
		return KindFileCount
	case i%2 == 0:
		return KindFileHeader
	}
	return KindFileData
}

// GapSize returns the size of the gap that precedes the block at index i,
// including the terminator byte.
func GapSize(i int) int {
	if i == 0 {
		return FirstGapBytes
	}
	return NextGapBytes
}

// SideCount returns the number of sides in an image file of the given size
// and whether the file begins with a header.
func SideCount(fileSize int64) (sides int, hasHeader bool, err error) {
	switch fileSize % RomSideSize {
	case 0:
	case HeaderSize:
		hasHeader = true
		fileSize -= HeaderSize
	default:
		return 0, false, curated.Errorf(NotSideMultiple)
	}

	sides = int(fileSize / RomSideSize)
	if sides == 0 {
		return 0, hasHeader, curated.Errorf(NotSideMultiple)
	}

	return sides, hasHeader, nil
}
