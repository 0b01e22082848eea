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

// Package prefs facilitates the storage of preference values to disk.
//
// Preference values are registered with a Disk instance through the Add()
// function. Each value is keyed by a name; the key and a string
// representation of the value appear as one line in the preferences file.
//
// The supported value types are Bool, String, Int, Float and Generic. The
// Generic type adapts any value that can be represented as a string.
//
// Save() commits every registered value to the file. Load() reads the file
// and updates every registered value that appears in it. Keys in the file
// that have not been registered are preserved across a Save().
package prefs
