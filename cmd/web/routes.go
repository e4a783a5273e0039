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

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
)

// For caching we're using three patterns.
//
// 0: Specify nothing, leaving it to the browser.
// Used for static files and project images, which may be replaced under the same names.
//
// 1: "no-cache" on pages that include user preferences and a CSRF token, always server-revalidated.
// "no-store" on form responses.
//
// 2: Configurable "max-age", default 1 hour, for public data with no user content (the projects feed).
// Changes to projects are seen after the next site refresh and the cache age.

// Register handlers for routes

func (app *Application) Routes() http.Handler {

	commonHs := alice.New(secureHeaders, app.noQuery, wwwRedirect)
	dynHs := alice.New(app.timeout, app.limitPage, app.session.LoadAndSave, app.noSurf, app.logRequest) // dynamic page handlers
	staticHs := alice.New(app.timeout, app.limitFile)

	publicCacheHs := dynHs.Append(app.public, app.ccCache)
	publicNoCacheHs := dynHs.Append(app.public, app.ccNoCache)
	noStoreHs := dynHs.Append(app.ccNoStore)

	// HttpRouter wrapped to allow middleware handlers
	router := httprouter.New()

	// panic handler
	router.PanicHandler = app.recoverPanic()

	// log rejected routes
	router.NotFound = app.routeNotFound()

	// public pages
	router.Handler("GET", "/", publicNoCacheHs.ThenFunc(app.home))
	router.Handler("GET", "/projects", publicNoCacheHs.ThenFunc(app.projects))
	router.Handler("GET", "/projects.json", publicCacheHs.ThenFunc(app.projectsJSON))

	// preferences
	router.Handler("POST", "/theme", noStoreHs.ThenFunc(app.setTheme))

	// these are just a courtesy, say no immediately instead of redirecting to "/path/" first
	router.Handler("GET", "/images", http.NotFoundHandler())
	router.Handler("GET", "/static", http.NotFoundHandler())

	// file systems that block directory listing
	fsStatic := noDirFileSystem{http.FS(app.staticFS)}
	fsImages := noDirFileSystem{http.Dir(ImagePath)}

	// serve static files and content
	router.Handler("GET", "/static/*filepath", staticHs.Then(http.StripPrefix("/static", app.fileServer(fsStatic, true))))
	router.Handler("GET", "/images/*filepath", staticHs.Then(http.StripPrefix("/images", app.fileServer(fsImages, false))))

	// files that must be in root
	router.Handler("GET", "/robots.txt", staticHs.Then(app.fileServer(fsStatic, true)))

	// return 'standard' middleware chain followed by router
	return commonHs.Then(router)
}
