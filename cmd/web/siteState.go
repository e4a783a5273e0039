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

// Processing related to site state

import (
	"io/fs"
	"sync"

	"inchworks.com/showinch/internal/cache"
	"inchworks.com/showinch/internal/data"
	"inchworks.com/showinch/internal/models"
	"inchworks.com/showinch/internal/seo"
)

// Heading and metadata title for the projects page.
const projectsTitle = "Projects"

// projectSource supplies the projects to be shown, in order.
type projectSource interface {
	All() []*models.Project
}

// fileSource reads projects from a data file on each request for them.
type fileSource struct {
	app  *Application
	fsys fs.FS
	name string
}

type SiteState struct {
	app    *Application
	muSite sync.RWMutex

	// cached state
	site        *models.Site
	source      projectSource
	publicPages *cache.PageCache
}

// All returns the projects in the data file, or none if it cannot be read.
func (src *fileSource) All() []*models.Project {

	ps, warn, err := data.Load(src.fsys, src.name)
	if err != nil {
		src.app.log(err)
		return nil
	}

	if len(warn) > 0 {
		src.app.infoLog.Print("Projects file " + src.name + ":")
		for _, w := range warn {
			src.app.infoLog.Print("\t" + w)
		}
	}
	return ps.All()
}

// Initialisation
func (s *SiteState) Init(a *Application) {
	s.app = a
}

// setupCache sets up the cached state. It returns warnings for the site menu.
func (s *SiteState) setupCache(site *models.Site, source projectSource) []string {

	a := s.app
	s.site = site
	s.source = source

	defer s.updatesCache()()

	pc := cache.NewPageCache()

	var warn []string
	for _, m := range a.cfg.Menu {
		warn = append(warn, pc.AddMenu(m)...)
	}
	pc.BuildMenus()

	s.publicPages = pc
	s.cacheProjects()

	return warn
}

// cacheProjects reads the projects and rebuilds the cached page. The cache must be locked.
func (s *SiteState) cacheProjects() {

	meta := seo.PageMetadata(s.site, seo.Options{Title: projectsTitle})

	s.publicPages.SetNotice(s.site.Notice)
	s.publicPages.SetProjects(projectsTitle, s.app.cfg.ProjectsIntro, meta, s.source.All())
}

// refresh updates the cache with the current projects.
func (s *SiteState) refresh() {

	defer s.updatesCache()()

	s.cacheProjects()
}

// Take mutex for changes to cached state only.
//
// Returns an anonymous function to be deferred. Call as: "defer updatesCache() ()".

func (s *SiteState) updatesCache() func() {

	s.muSite.Lock()

	return func() {
		s.muSite.Unlock()
	}
}

// Take mutex and start transaction for update to site and, possibly, cached state.
//
// Returns an anonymous function to be deferred. Call as: "defer updatesSite() ()".

func (s *SiteState) updatesSite() func() {

	// acquire exclusive locks
	s.muSite.Lock()

	// start transaction
	s.app.tx = s.app.db.MustBegin()

	return func() {

		// end transaction
		if err := s.app.tx.Commit(); err != nil {
			s.app.log(err)
		}
		s.app.tx = nil

		// release locks
		s.muSite.Unlock()
	}
}

// Take mutex for non-updating request

func (s *SiteState) updatesNone() func() {

	// acquire shared locks
	s.muSite.RLock()

	return func() {

		// release lock
		s.muSite.RUnlock()
	}
}
