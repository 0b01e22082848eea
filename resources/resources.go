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

// Package resources locates per-user files belonging to the application,
// such as the preferences file. The base directory can be overridden with
// the FDSKEY_CONFIG environment variable.
package resources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"
)

// the directory below the user's configuration directory where resources
// live.
const resourceDir = "fdskey"

// JoinPath returns the resolved path of a resource, creating intermediate
// directories as required.
func JoinPath(path ...string) (string, error) {
	base := env.Str("FDSKEY_CONFIG")
	if base == "" {
		cnf, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resources: %v", err)
		}
		base = filepath.Join(cnf, resourceDir)
	}

	p := filepath.Join(append([]string{base}, path...)...)

	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", fmt.Errorf("resources: %v", err)
	}

	return p, nil
}
