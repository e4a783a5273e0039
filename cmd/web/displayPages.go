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

// Processing related to site pages.
//
// These functions should not modify application state.

import (
	"inchworks.com/showinch/internal/cache"
	"inchworks.com/showinch/internal/seo"
)

// DisplayProjects returns the data for the projects page.
func (s *SiteState) DisplayProjects() *DataProjects {

	defer s.updatesNone()()

	pg := s.publicPages.Projects

	d := &DataProjects{
		Heading: pg.Heading,
		Intro:   pg.Intro,
		Cards:   pg.Cards,
	}
	s.dataSite(&d.DataCommon, pg.Meta)

	return d
}

// ProjectCards returns the cards for the projects page, in order.
func (s *SiteState) ProjectCards() []*cache.Card {

	defer s.updatesNone()()

	return s.publicPages.Projects.Cards
}

// dataSite adds the data common to all pages on the site. The cache must be locked.
func (s *SiteState) dataSite(d *DataCommon, meta *seo.Metadata) {

	if ds := s.app.cfg.Domains; len(ds) > 0 {
		d.Canonical = "https://" + ds[0]
	}
	d.Author = s.site.Author
	d.Menu = s.publicPages.MainMenu
	d.Meta = meta
	d.Notice = s.publicPages.Notice
	d.SiteTitle = s.site.Title
}
