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

// Package preferences holds the user facing drive settings: the rewind
// speed and the save strategy.
//
// Values persist through the prefs package. Defaults can be supplied
// through the FDSKEY_REWIND and FDSKEY_SAVE environment variables, which is
// how headless deployments configure the drive without a preferences file.
package preferences

import (
	"github.com/donly/fdskey/hardware/host"
	"github.com/donly/fdskey/prefs"
	"github.com/donly/fdskey/resources"
	"github.com/xyproto/env/v2"
)

// Preferences implements the host.Settings interface.
type Preferences struct {
	dsk *prefs.Disk

	Rewind prefs.String
	Save   prefs.String
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := resources.JoinPath("fdskey.prefs")
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	if err := p.dsk.Add("drive.rewind", &p.Rewind); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("drive.save", &p.Save); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to the default values, or to the values
// named by the environment.
func (p *Preferences) SetDefaults() {
	p.Rewind.Set(env.Str("FDSKEY_REWIND", host.RewindTurbo.String()))
	p.Save.Set(env.Str("FDSKEY_SAVE", host.SaveInPlace.String()))
}

// Commit the current settings to the preferences file.
func (p *Preferences) Commit() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// RewindSpeed implements the host.Settings interface. Unrecognised values
// fall back to the turbo rewind.
func (p *Preferences) RewindSpeed() host.RewindSpeed {
	if p.Rewind.Get() == host.RewindOriginal.String() {
		return host.RewindOriginal
	}
	return host.RewindTurbo
}

// SaveStrategy implements the host.Settings interface. Unrecognised values
// fall back to saving in place.
func (p *Preferences) SaveStrategy() host.SaveStrategy {
	switch p.Save.Get() {
	case host.SaveRewriteBackup.String():
		return host.SaveRewriteBackup
	case host.SaveEverdrive.String():
		return host.SaveEverdrive
	}
	return host.SaveInPlace
}
