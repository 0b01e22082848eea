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
	"encoding/binary"

	"github.com/donly/fdskey/curated"
)

// error pattern returned when an operation would exceed MaxSideSize.
const Overflow = "media overflow"

// Side is the raw media image of one disk side plus its block index.
//
// The layout of the data buffer is: for every block, a gap of zero bytes
// whose last byte is the terminator, the block payload, then the two byte
// little-endian checksum. The block index records the byte offset of each
// block's leading gap.
type Side struct {
	data      []byte
	offsets   []int
	usedSpace int
}

// NewSide is the preferred method of initialisation for the Side type.
func NewSide() *Side {
	return &Side{
		data: make([]byte, MaxSideSize),
	}
}

// Reset clears the media buffer and the block index.
func (s *Side) Reset() {
	for i := range s.data {
		s.data[i] = 0
	}
	s.offsets = s.offsets[:0]
	s.usedSpace = 0
}

// Data exposes the raw media buffer. The read and write engines own the
// buffer while they run; other callers must treat it as read-only.
func (s *Side) Data() []byte {
	return s.data
}

// BlockCount returns the number of blocks in the index.
func (s *Side) BlockCount() int {
	return len(s.offsets)
}

// BlockOffset returns the byte offset of the block's leading gap.
func (s *Side) BlockOffset(i int) int {
	return s.offsets[i]
}

// UsedSpace returns the number of media bytes occupied by gaps, payloads and
// checksums.
func (s *Side) UsedSpace() int {
	return s.usedSpace
}

// PayloadSize returns the payload size of the block at index i, excluding
// gap and checksum. For file data blocks the size is taken from the file
// header block already in the buffer.
func (s *Side) PayloadSize(i int) int {
	switch {
	case i == 0:
		return diskInfoPayloadSize
	case i == 1:
		return fileCountPayloadSize
	case i%2 == 0:
		return fileHeaderPayloadSize
	}

	// file data blocks carry the kind tag plus the number of bytes named by
	// the preceding header
	if i-1 >= len(s.offsets) {
		return 1
	}
	po := s.offsets[i-1] + GapSize(i-1)
	return 1 + int(binary.LittleEndian.Uint16(s.data[po+fileSizeOffset:po+fileSizeOffset+2]))
}

// BlockSize returns the total size of the block at index i.
func (s *Side) BlockSize(i int, includeGap bool, includeCrc bool) int {
	sz := s.PayloadSize(i)
	if includeGap {
		sz += GapSize(i)
	}
	if includeCrc {
		sz += 2
	}
	return sz
}

// FileCount returns the value of the file count block, or false if the block
// is not in the buffer.
func (s *Side) FileCount() (int, bool) {
	if len(s.offsets) < 2 {
		return 0, false
	}
	po := s.offsets[1] + GapSize(1)
	return int(s.data[po+1]), true
}

// BlockAt returns the index of the block whose range contains the media
// offset, or -1.
func (s *Side) BlockAt(offset int) int {
	for i := range s.offsets {
		start := s.offsets[i]
		if offset >= start && offset < start+s.BlockSize(i, true, true) {
			return i
		}
	}
	return -1
}

// Payload returns the payload bytes of the block at index i.
func (s *Side) Payload(i int) []byte {
	po := s.offsets[i] + GapSize(i)
	return s.data[po : po+s.PayloadSize(i)]
}

// StoredCrc returns the checksum stored after the payload of the block at
// index i.
func (s *Side) StoredCrc(i int) uint16 {
	po := s.offsets[i] + GapSize(i) + s.PayloadSize(i)
	return binary.LittleEndian.Uint16(s.data[po : po+2])
}

// SetStoredCrc replaces the checksum stored after the payload of the block
// at index i.
func (s *Side) SetStoredCrc(i int, crc uint16) {
	po := s.offsets[i] + GapSize(i) + s.PayloadSize(i)
	binary.LittleEndian.PutUint16(s.data[po:po+2], crc)
}

// AppendBlock lays out the next block: the gap with its terminator, the
// payload and the freshly computed checksum. The buffer is unchanged if the
// block does not fit.
func (s *Side) AppendBlock(payload []byte) error {
	i := len(s.offsets)
	gap := GapSize(i)

	if s.usedSpace+gap+len(payload)+2 > MaxSideSize {
		return curated.Errorf(Overflow)
	}

	offset := s.usedSpace

	s.layGap(offset, gap)
	copy(s.data[offset+gap:], payload)
	binary.LittleEndian.PutUint16(s.data[offset+gap+len(payload):], Crc(payload))

	s.offsets = append(s.offsets, offset)
	s.usedSpace += gap + len(payload) + 2

	return nil
}

// AppendEmptyBlock extends the block index by one block without writing
// anything to the media buffer; the gap is laid separately with RelayGap().
// The payload size of the new block follows from
// its index and, for file data blocks, the header already in the buffer.
// Returns the index of the new block.
func (s *Side) AppendEmptyBlock() (int, error) {
	i := len(s.offsets)

	offset := 0
	if i > 0 {
		offset = s.offsets[i-1] + s.BlockSize(i-1, true, true)
	}

	s.offsets = append(s.offsets, offset)

	used := offset + s.BlockSize(i, true, true)
	if used > MaxSideSize {
		s.offsets = s.offsets[:i]
		return 0, curated.Errorf(Overflow)
	}
	s.usedSpace = used

	return i, nil
}

// Truncate drops every block at index keep and above and zeroes the media
// bytes they occupied.
func (s *Side) Truncate(keep int) {
	if keep >= len(s.offsets) {
		return
	}

	for i := s.offsets[keep]; i < MaxSideSize; i++ {
		s.data[i] = 0
	}
	s.offsets = s.offsets[:keep]
	s.usedSpace = s.offsets[keep-1] + s.BlockSize(keep-1, true, true)
}

// RelayGap rewrites the gap and terminator of the block at index i.
func (s *Side) RelayGap(i int) {
	s.layGap(s.offsets[i], GapSize(i))
}

func (s *Side) layGap(offset int, gap int) {
	for i := 0; i < gap-1; i++ {
		s.data[offset+i] = 0
	}
	s.data[offset+gap-1] = GapTerminator
}
