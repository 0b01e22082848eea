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

package fds_test

import (
	"encoding/binary"
	"testing"

	"github.com/donly/fdskey/curated"
	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/test"
)

// payloads for a minimal one file disk side.
func testPayloads(fileSize int) [][]byte {
	info := make([]byte, 56)
	info[0] = fds.KindDiskInfo
	copy(info[1:], fds.Signature)
	copy(info[0x10:], "TST")

	count := []byte{fds.KindFileCount, 1}

	hdr := make([]byte, 16)
	hdr[0] = fds.KindFileHeader
	binary.LittleEndian.PutUint16(hdr[0x0d:], uint16(fileSize))

	data := make([]byte, 1+fileSize)
	data[0] = fds.KindFileData
	for i := 1; i < len(data); i++ {
		data[i] = byte(i)
	}

	return [][]byte{info, count, hdr, data}
}

func fillTestSide(t *testing.T, s *fds.Side, fileSize int) {
	t.Helper()
	for _, p := range testPayloads(fileSize) {
		test.ExpectSuccess(t, s.AppendBlock(p))
	}
}

func TestSideLayout(t *testing.T) {
	s := fds.NewSide()
	fillTestSide(t, s, 256)

	test.ExpectEquality(t, s.BlockCount(), 4)

	// block offsets are the running sum of the previous block sizes
	expected := 0
	for i := 0; i < s.BlockCount(); i++ {
		test.ExpectEquality(t, s.BlockOffset(i), expected)
		expected += s.BlockSize(i, true, true)
	}
	test.ExpectEquality(t, s.UsedSpace(), expected)
	test.ExpectSuccess(t, s.UsedSpace() <= fds.MaxSideSize)

	// the data block size comes from the header block
	test.ExpectEquality(t, s.PayloadSize(3), 257)

	// gap terminators are in place
	d := s.Data()
	test.ExpectEquality(t, d[fds.FirstGapBytes-1], fds.GapTerminator)
	test.ExpectEquality(t, d[s.BlockOffset(1)+fds.NextGapBytes-1], fds.GapTerminator)

	// and the gap bytes before the terminator are zero
	for i := 0; i < fds.FirstGapBytes-1; i++ {
		if d[i] != 0 {
			t.Fatalf("gap byte %d is not zero", i)
		}
	}
}

func TestSideCrcStorage(t *testing.T) {
	s := fds.NewSide()
	fillTestSide(t, s, 64)

	for i := 0; i < s.BlockCount(); i++ {
		test.ExpectEquality(t, s.StoredCrc(i), fds.Crc(s.Payload(i)))
	}
}

func TestSideBlockAt(t *testing.T) {
	s := fds.NewSide()
	fillTestSide(t, s, 64)

	test.ExpectEquality(t, s.BlockAt(0), 0)
	test.ExpectEquality(t, s.BlockAt(fds.FirstGapBytes), 0)
	test.ExpectEquality(t, s.BlockAt(s.BlockOffset(1)), 1)
	test.ExpectEquality(t, s.BlockAt(s.BlockOffset(3)), 3)
	test.ExpectEquality(t, s.BlockAt(s.UsedSpace()-1), 3)
	test.ExpectEquality(t, s.BlockAt(s.UsedSpace()), -1)
	test.ExpectEquality(t, s.BlockAt(fds.MaxSideSize-1), -1)
}

func TestSideOverflow(t *testing.T) {
	s := fds.NewSide()

	// a payload that cannot fit alongside the leading gap
	big := make([]byte, fds.MaxSideSize)
	err := s.AppendBlock(big)
	test.ExpectSuccess(t, curated.Is(err, fds.Overflow))

	// the buffer is untouched by the failed append
	test.ExpectEquality(t, s.BlockCount(), 0)
	test.ExpectEquality(t, s.UsedSpace(), 0)
	test.ExpectEquality(t, s.Data()[fds.FirstGapBytes-1], 0)
}

func TestSideAppendEmptyBlock(t *testing.T) {
	s := fds.NewSide()
	fillTestSide(t, s, 64)

	used := s.UsedSpace()

	i, err := s.AppendEmptyBlock()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, i, 4)
	test.ExpectEquality(t, s.BlockOffset(4), used)
	test.ExpectEquality(t, s.UsedSpace(), used+s.BlockSize(4, true, true))
}

func TestSideTruncate(t *testing.T) {
	s := fds.NewSide()
	fillTestSide(t, s, 64)

	cut := s.BlockOffset(2)
	s.Truncate(2)

	test.ExpectEquality(t, s.BlockCount(), 2)
	test.ExpectEquality(t, s.UsedSpace(), cut)

	// the media bytes beyond the cut are zeroed
	d := s.Data()
	for i := cut; i < fds.MaxSideSize; i++ {
		if d[i] != 0 {
			t.Fatalf("media byte %d not zeroed by truncation", i)
		}
	}
}

func TestSideInfo(t *testing.T) {
	s := fds.NewSide()

	_, ok := s.Info()
	test.ExpectFailure(t, ok)

	fillTestSide(t, s, 64)

	inf, ok := s.Info()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, inf.GameName, "TST")
	test.ExpectEquality(t, inf.SideNumber, 0)
}

func TestSideFileCount(t *testing.T) {
	s := fds.NewSide()

	_, ok := s.FileCount()
	test.ExpectFailure(t, ok)

	fillTestSide(t, s, 64)

	n, ok := s.FileCount()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, 1)
}

func TestSideCount(t *testing.T) {
	sides, hasHeader, err := fds.SideCount(fds.RomSideSize)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sides, 1)
	test.ExpectFailure(t, hasHeader)

	sides, hasHeader, err = fds.SideCount(2*fds.RomSideSize + fds.HeaderSize)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, sides, 2)
	test.ExpectSuccess(t, hasHeader)

	_, _, err = fds.SideCount(100)
	test.ExpectSuccess(t, curated.Is(err, fds.NotSideMultiple))
}

func TestKindForIndex(t *testing.T) {
	test.ExpectEquality(t, fds.KindForIndex(0), fds.KindDiskInfo)
	test.ExpectEquality(t, fds.KindForIndex(1), fds.KindFileCount)
	test.ExpectEquality(t, fds.KindForIndex(2), fds.KindFileHeader)
	test.ExpectEquality(t, fds.KindForIndex(3), fds.KindFileData)
	test.ExpectEquality(t, fds.KindForIndex(8), fds.KindFileHeader)
	test.ExpectEquality(t, fds.KindForIndex(9), fds.KindFileData)
}
