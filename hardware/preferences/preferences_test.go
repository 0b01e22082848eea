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

package preferences_test

import (
	"testing"

	"github.com/donly/fdskey/hardware/host"
	"github.com/donly/fdskey/hardware/preferences"
	"github.com/donly/fdskey/test"
)

func TestDefaults(t *testing.T) {
	t.Setenv("FDSKEY_CONFIG", t.TempDir())
	t.Setenv("FDSKEY_REWIND", "")
	t.Setenv("FDSKEY_SAVE", "")

	p, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, p.RewindSpeed(), host.RewindTurbo)
	test.ExpectEquality(t, p.SaveStrategy(), host.SaveInPlace)
}

func TestEnvironmentDefaults(t *testing.T) {
	t.Setenv("FDSKEY_CONFIG", t.TempDir())
	t.Setenv("FDSKEY_REWIND", "original")
	t.Setenv("FDSKEY_SAVE", "everdrive")

	p, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, p.RewindSpeed(), host.RewindOriginal)
	test.ExpectEquality(t, p.SaveStrategy(), host.SaveEverdrive)
}

func TestCommitAndReload(t *testing.T) {
	t.Setenv("FDSKEY_CONFIG", t.TempDir())
	t.Setenv("FDSKEY_REWIND", "")
	t.Setenv("FDSKEY_SAVE", "")

	p, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, p.Rewind.Set("original"))
	test.ExpectSuccess(t, p.Save.Set("backup"))
	test.ExpectSuccess(t, p.Commit())

	// a fresh instance sees the committed values, beating the defaults
	q, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, q.RewindSpeed(), host.RewindOriginal)
	test.ExpectEquality(t, q.SaveStrategy(), host.SaveRewriteBackup)
}

func TestUnrecognisedValues(t *testing.T) {
	t.Setenv("FDSKEY_CONFIG", t.TempDir())
	t.Setenv("FDSKEY_REWIND", "sideways")
	t.Setenv("FDSKEY_SAVE", "nowhere")

	p, err := preferences.NewPreferences()
	test.ExpectSuccess(t, err)

	// unknown values fall back to the defaults
	test.ExpectEquality(t, p.RewindSpeed(), host.RewindTurbo)
	test.ExpectEquality(t, p.SaveStrategy(), host.SaveInPlace)
}
