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

// Package fds models one side of a Famicom Disk System quick-disk as the
// drive head sees it: a byte-packed bit stream of inter-block gaps, gap
// terminators, block payloads and trailing checksums.
//
// The Side type owns the raw media bytes and the block index. Blocks on a
// disk side always appear in the same order: the disk info block, the file
// count block, then a header/data block pair for each file. The size of a
// file data block is defined by the preceding header block, which is why
// most geometry functions are methods on Side.
//
// The package also provides the block checksum function and a decoder for
// the disk info block used for diagnostics.
package fds
