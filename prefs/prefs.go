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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// WarningBoilerPlate is the first line in every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// the string that separates the key from the value on each line of the
// preferences file.
const keySep = " :: "

// Disk represents preference values that are to be stored, or have been
// loaded from, disk.
type Disk struct {
	path string

	// registered preference values in registration order
	keys    []string
	entries map[string]pref

	// lines loaded from the file whose keys have not been registered. these
	// are written back verbatim on Save()
	foreign []string
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// path argument is the location of the preferences file; the file does not
// need to exist.
func NewDisk(path string) (*Disk, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prefs: no path")
	}

	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add a preference value to the Disk, keyed by name. Keys must be unique and
// cannot contain the key separator sequence.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, keySep) {
		return fmt.Errorf("prefs: invalid key (%s)", key)
	}

	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already registered (%s)", key)
	}

	dsk.keys = append(dsk.keys, key)
	dsk.entries[key] = p

	return nil
}

// Save all registered preference values to disk.
func (dsk *Disk) Save() error {
	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	fmt.Fprintln(w, WarningBoilerPlate)

	for _, key := range dsk.keys {
		fmt.Fprintf(w, "%s%s%s\n", key, keySep, dsk.entries[key].String())
	}

	// preserve lines with keys we know nothing about
	for _, l := range dsk.foreign {
		fmt.Fprintln(w, l)
	}

	return nil
}

// Load registered preference values from disk. A missing preferences file is
// not an error; registered values are simply left untouched.
func (dsk *Disk) Load() error {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("prefs: %v", err)
	}
	defer f.Close()

	dsk.foreign = dsk.foreign[:0]

	s := bufio.NewScanner(f)
	for s.Scan() {
		l := s.Text()
		if l == "" || l == WarningBoilerPlate {
			continue
		}

		k, v, ok := strings.Cut(l, keySep)
		if !ok {
			return fmt.Errorf("prefs: malformed line in %s", dsk.path)
		}

		if p, reg := dsk.entries[k]; reg {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %v", err)
			}
		} else {
			dsk.foreign = append(dsk.foreign, l)
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("prefs: %v", err)
	}

	return nil
}
