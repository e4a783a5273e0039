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
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/justinas/nosurf"

	"inchworks.com/showinch/internal/cache"
	"inchworks.com/showinch/internal/seo"
)

// Template data for all pages - implements TemplateData interface so we can add data without knowing
// which template we have

type TemplateData interface {
	addDefaultData(app *Application, r *http.Request, name string)
}

type DataCommon struct {
	Canonical string // canonical domain
	CSRFToken string
	Flash     string // flash message
	Theme     string // light, dark or system

	// site
	Author    string
	Menu      []*cache.MenuItem
	Meta      *seo.Metadata
	Notice    template.HTML
	SiteTitle string

	Page string
}

func (d *DataCommon) addDefaultData(app *Application, r *http.Request, page string) {

	d.CSRFToken = nosurf.Token(r)
	d.Flash = app.session.PopString(r.Context(), "flash")
	d.Theme = app.session.GetString(r.Context(), "theme")
	d.Page = page
}

// template data for display pages

type DataProjects struct {
	Heading string
	Intro   template.HTML
	Cards   []*cache.Card
	DataCommon
}

// Define functions callable from a template

var templateFuncs = template.FuncMap{
	"fullTitle": seo.FullTitle,
}

// Themes offered to the user, the first is the default.
var themes = []string{"system", "light", "dark"}

// newTemplateCache parses each page template with all layouts and partials.
// Pages are named "*.page.tmpl", and are cached by name.
func newTemplateCache(fsys fs.FS, funcs template.FuncMap) (map[string]*template.Template, error) {

	cache := map[string]*template.Template{}

	pages, err := fs.Glob(fsys, "*.page.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := path.Base(page)

		ts, err := template.New(name).Funcs(funcs).ParseFS(fsys, page)
		if err != nil {
			return nil, err
		}

		// add any layouts and partials
		for _, pattern := range []string{"*.layout.tmpl", "*.partial.tmpl"} {
			if ms, _ := fs.Glob(fsys, pattern); len(ms) > 0 {
				if ts, err = ts.ParseFS(fsys, pattern); err != nil {
					return nil, err
				}
			}
		}

		cache[name] = ts
	}

	if len(cache) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}

	return cache, nil
}
