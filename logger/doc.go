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

// Package logger is the central log for the whole application. Log entries
// are made with the Log() and Logf() functions and can be viewed at any time
// with the Write() and Tail() functions.
//
// Entries are tagged with the subsystem they originate from. The detail part
// of an entry should be kept short; additional entries are cheap.
//
// If a log entry needs to be seen as it is made, an echo writer can be
// attached with SetEcho().
package logger
