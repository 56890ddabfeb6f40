// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package emit

import (
	"os"
	"path/filepath"

	cerrors "github.com/kraklabs/dsgl/internal/errors"
	"github.com/kraklabs/dsgl/pkg/ir"
)

// DeviceFileName is the suggested sibling file name for the device
// translation unit when none is given explicitly.
const DeviceFileName = "task.c"

// Emit lowers prog and graph (with its optional partition assignment) to
// the host and device C translation units and writes both to disk: the
// host unit to hostPath, the device unit to deviceDir/DeviceFileName
// (deviceDir defaults to hostPath's directory when empty).
func Emit(e EmitterContract, prog *ir.Program, graph *ir.Graph, assignment [][]*ir.NodeInstance, hostPath, deviceDir string) error {
	host := e.HostUnit(prog, graph, assignment)
	device := e.DeviceUnit(prog)

	if deviceDir == "" {
		deviceDir = filepath.Dir(hostPath)
	}
	devicePath := filepath.Join(deviceDir, DeviceFileName)

	if err := writeUnit(hostPath, host); err != nil {
		return err
	}
	if err := writeUnit(devicePath, device); err != nil {
		return err
	}
	return nil
}

func writeUnit(path string, u Unit) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cerrors.NewEmitError("cannot create output directory", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(u.Content), 0o644); err != nil {
		return cerrors.NewEmitError("cannot write output file", path, err)
	}
	return nil
}
