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

// Package hardware is the parent of the packages that make up the emulated
// disk drive.
//
// The fds package models the media; the drive package is the drive
// mechanism and its state machine; the host package defines what the drive
// expects of the hardware around it; the preferences package holds the user
// facing settings.
package hardware
