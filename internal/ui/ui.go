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

// Package ui provides the driver's terminal output: color-aware headers and
// labels, and progress bars for long-running compiler phases (currently
// only partitioning uses one).
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Color handles used throughout the driver. InitColors rebinds these based
// on --no-color, NO_COLOR, and whether stdout is a terminal.
var (
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Red    = color.New(color.FgRed)
	Dim    = color.New(color.Faint)
	Bold   = color.New(color.Bold)
)

// InitColors disables color output when noColor is set, NO_COLOR is set in
// the environment, or stdout is not a terminal (piped output, CI logs).
func InitColors(noColor bool) {
	disable := noColor || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd())
	color.NoColor = disable
}

// Header prints a bold section heading.
func Header(title string) {
	_, _ = Bold.Println(title)
}

// SubHeader prints a dim subsection heading.
func SubHeader(title string) {
	_, _ = Dim.Println(title)
}

// Label formats a field label for "Label: value" lines.
func Label(text string) string {
	return Bold.Sprint(text)
}

// CountText formats an integer count for display.
func CountText(n int) string {
	return fmt.Sprintf("%d", n)
}

// DimText renders s in the dim color, or plain when colors are disabled.
func DimText(s string) string {
	return Dim.Sprint(s)
}

// ProgressConfig controls whether progress bars render at all: disabled
// under --quiet, --json (to avoid corrupting machine-readable output), or
// when stderr is not a terminal.
type ProgressConfig struct {
	Enabled bool
}

// NewProgressConfig derives a ProgressConfig from the driver's global flags.
func NewProgressConfig(quiet, json bool) ProgressConfig {
	return ProgressConfig{
		Enabled: !quiet && !json && isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// NewProgressBar creates a progress bar over total units with the given
// description, or a no-op bar when progress reporting is disabled.
func NewProgressBar(cfg ProgressConfig, total int64, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return progressbar.DefaultBytesSilent(total, description)
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
