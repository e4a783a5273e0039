// Copyright © Rob Burke inchworks.com, 2026.

// This file is part of ShowInch.
//
// ShowInch is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ShowInch is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ShowInch.  If not, see <https://www.gnu.org/licenses/>.

package main

// Worker for background processing

import (
	"time"
)

// worker refreshes the cached projects on each tick, until done is closed.
func (s *SiteState) worker(
	chRefresh <-chan time.Time,
	done <-chan bool) {

	for {
		select {

		case <-chRefresh:
			// pick up changes to the projects file or database
			s.refresh()

		case <-done:
			return
		}
	}
}
