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

package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// the maximum number of entries the central logger will retain. once the
// limit is reached the oldest entry is dropped for each new entry.
const maxEntries = 256

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.detail)
}

type logger struct {
	crit    sync.Mutex
	entries []entry
	echo    io.Writer
}

// the central logger instance
var central = logger{
	entries: make([]entry, 0, maxEntries),
}

// Log adds a new entry to the central logger. The tag argument should be the
// name of the subsystem making the entry.
func Log(tag, detail string) {
	central.crit.Lock()
	defer central.crit.Unlock()

	// multi-line details become separate entries, each with the same tag
	for _, d := range strings.Split(detail, "\n") {
		if d == "" {
			continue
		}

		e := entry{tag: tag, detail: d}

		if len(central.entries) >= maxEntries {
			central.entries = central.entries[1:]
		}
		central.entries = append(central.entries, e)

		if central.echo != nil {
			central.echo.Write([]byte(e.String()))
			central.echo.Write([]byte("\n"))
		}
	}
}

// Logf adds a new formatted entry to the central logger.
func Logf(tag, format string, args ...interface{}) {
	Log(tag, fmt.Sprintf(format, args...))
}

// Clear all entries from the central logger.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()

	central.entries = central.entries[:0]
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	Tail(output, -1)
}

// Tail writes the last N entries to io.Writer. A negative value of n writes
// every entry.
func Tail(output io.Writer, n int) {
	if output == nil {
		return
	}

	central.crit.Lock()
	defer central.crit.Unlock()

	var t []entry
	if n < 0 || n > len(central.entries) {
		t = central.entries
	} else {
		t = central.entries[len(central.entries)-n:]
	}

	for _, e := range t {
		io.WriteString(output, e.String())
		io.WriteString(output, "\n")
	}
}

// SetEcho prints entries to io.Writer as they are made. A nil writer turns
// echoing off.
func SetEcho(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()

	central.echo = output
}
