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

package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/ogier/pflag"

	"github.com/donly/fdskey/hardware/drive"
	"github.com/donly/fdskey/hardware/fds"
	"github.com/donly/fdskey/hardware/host"
	"github.com/donly/fdskey/hardware/host/sim"
	"github.com/donly/fdskey/hardware/preferences"
	"github.com/donly/fdskey/logger"
)

// settings used by the command line driver: the stored preferences with
// optional overrides from the command line.
type cliSettings struct {
	rewind host.RewindSpeed
	save   host.SaveStrategy
}

func (s cliSettings) RewindSpeed() host.RewindSpeed   { return s.rewind }
func (s cliSettings) SaveStrategy() host.SaveStrategy { return s.save }

func main() {
	os.Exit(run())
}

func run() int {
	side := flag.IntP("side", "s", 0, "disk side to operate on")
	root := flag.StringP("root", "r", ".", "directory standing in for the card root")
	rewind := flag.String("rewind", "", "rewind speed {original|turbo}")
	saveArg := flag.String("save", "", "save strategy {in place|backup|everdrive}")
	echo := flag.BoolP("log", "l", false, "echo log entries to stderr")
	flag.Parse()

	if *echo {
		logger.SetEcho(os.Stderr)
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: fdskey [flags] {inspect|validate|exercise} <image file>")
		flag.PrintDefaults()
		return 2
	}

	mode := strings.ToUpper(flag.Arg(0))
	image := flag.Arg(1)

	set := resolveSettings(*rewind, *saveArg)

	h := sim.NewHost()
	sto := host.NewDirStorage(*root)
	drv := drive.NewDrive(h.Bundle(sto, set))

	var err error
	switch mode {
	case "INSPECT":
		err = inspect(drv, image, *side)
	case "VALIDATE":
		err = validate(drv, sto, image)
	case "EXERCISE":
		err = exercise(drv, h, image, *side)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode (%s)\n", flag.Arg(0))
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "fdskey: %v\n", err)
		return 1
	}

	return 0
}

// resolveSettings merges stored preferences with command line overrides.
func resolveSettings(rewind string, save string) cliSettings {
	set := cliSettings{
		rewind: host.RewindTurbo,
		save:   host.SaveInPlace,
	}

	if prf, err := preferences.NewPreferences(); err == nil {
		set.rewind = prf.RewindSpeed()
		set.save = prf.SaveStrategy()
	} else {
		logger.Logf("fdskey", "preferences unavailable: %v", err)
	}

	if rewind == host.RewindOriginal.String() {
		set.rewind = host.RewindOriginal
	} else if rewind == host.RewindTurbo.String() {
		set.rewind = host.RewindTurbo
	}

	switch save {
	case host.SaveInPlace.String():
		set.save = host.SaveInPlace
	case host.SaveRewriteBackup.String():
		set.save = host.SaveRewriteBackup
	case host.SaveEverdrive.String():
		set.save = host.SaveEverdrive
	}

	return set
}

// inspect loads one side and prints the disk info and the block table.
func inspect(drv *drive.Drive, image string, side int) error {
	if err := drv.LoadSide(image, side, true); err != nil {
		return err
	}
	defer drv.Close(false)

	s := drv.Image()

	if inf, ok := s.Info(); ok {
		fmt.Println(inf)
	}

	fmt.Printf("%d blocks, %d of %d media bytes\n", s.BlockCount(), s.UsedSpace(), drv.MaxSize())

	for i := 0; i < s.BlockCount(); i++ {
		var kind string
		switch fds.KindForIndex(i) {
		case fds.KindDiskInfo:
			kind = "disk info"
		case fds.KindFileCount:
			kind = "file count"
		case fds.KindFileHeader:
			kind = "file header"
		case fds.KindFileData:
			kind = "file data"
		}
		fmt.Printf("%3d  %-11s  offset %6d  payload %5d  crc %04x\n",
			i, kind, s.BlockOffset(i), s.PayloadSize(i), s.StoredCrc(i))
	}

	return nil
}

// validate loads every side of the image in turn.
func validate(drv *drive.Drive, sto host.Storage, image string) error {
	size, err := sto.Stat(image)
	if err != nil {
		return err
	}

	sides, _, err := fds.SideCount(size)
	if err != nil {
		return err
	}

	for i := 0; i < sides; i++ {
		if err := drv.LoadSide(image, i, true); err != nil {
			return fmt.Errorf("side %d: %w", i, err)
		}
		fmt.Printf("side %d: ok (%d blocks)\n", i, drv.BlockCount())
		drv.Close(false)
	}

	return nil
}

// exercise runs a full read pass against the simulated host and reports
// what the console would have seen.
func exercise(drv *drive.Drive, h *sim.Host, image string, side int) error {
	if err := drv.LoadSide(image, side, true); err != nil {
		return err
	}
	defer drv.Close(false)

	h.SetScanMedia(true)
	drv.CheckPins()

	// wait out the ready dwell, whichever speed is configured
	h.Advance(4000)
	drv.CheckPins()

	if drv.State() != drive.Reading {
		return fmt.Errorf("drive did not reach the reading state (%v)", drv.State())
	}

	var slots, impulses int
	for drv.State() == drive.Reading {
		for _, v := range h.ConsumeRead(4096) {
			slots++
			if v != 0 {
				impulses++
			}
		}
	}

	fmt.Printf("full pass: %d phase slots, %d impulses, head rewound at byte %d\n",
		slots, impulses, drv.HeadPosition())

	h.SetScanMedia(false)
	drv.CheckPins()

	return nil
}
