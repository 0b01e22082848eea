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

package test

import "strings"

// Writer is an implementation of io.Writer that accumulates everything
// written to it for later comparison.
type Writer struct {
	b strings.Builder
}

// Write implements io.Writer.
func (tw *Writer) Write(p []byte) (n int, err error) {
	return tw.b.Write(p)
}

// Compare the accumulated output with the expected string.
func (tw *Writer) Compare(expected string) bool {
	return tw.b.String() == expected
}

// String returns the accumulated output.
func (tw *Writer) String() string {
	return tw.b.String()
}

// Clear the accumulated output.
func (tw *Writer) Clear() {
	tw.b.Reset()
}
