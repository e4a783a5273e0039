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
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// home redirects to the projects page, which is the showcase for the site.
func (app *Application) home(w http.ResponseWriter, r *http.Request) {

	http.Redirect(w, r, "/projects", http.StatusSeeOther)
}

// projects displays the projects page.
func (app *Application) projects(w http.ResponseWriter, r *http.Request) {

	data := app.siteState.DisplayProjects()

	app.render(w, r, "projects.page.tmpl", data)
}

// projectsJSON returns the project cards, in page order.
func (app *Application) projectsJSON(w http.ResponseWriter, r *http.Request) {

	app.reply(w, app.siteState.ProjectCards())
}

// setTheme saves the user's choice of theme, and returns to the page they were on.
func (app *Application) setTheme(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		app.httpBadRequest(w, err)
		return
	}

	theme := r.PostForm.Get("theme")
	if !slices.Contains(themes, theme) {
		app.httpBadRequest(w, errors.New("unknown theme: "+theme))
		return
	}
	app.session.Put(r.Context(), "theme", theme)
	app.session.Put(r.Context(), "flash", "Theme set to "+theme+".")

	http.Redirect(w, r, localPath(r.PostForm.Get("from"), "/projects"), http.StatusSeeOther)
}

// localPath returns the path if it is on this site, and the default path otherwise.
// Browsers drop tabs and newlines from URLs, and read "\" as "/", so these are refused.
func localPath(from string, def string) string {

	if strings.ContainsFunc(from, unicode.IsControl) || strings.Contains(from, `\`) {
		return def
	}

	u, err := url.Parse(from)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return def
	}
	if !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return def
	}
	return from
}
