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

// Static export of site pages.

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
)

// export writes the projects page, its JSON feed and the static files, as files in dir.
func (app *Application) export(dir string) error {

	// page data without a request, so there is no session or CSRF token
	data := app.siteState.DisplayProjects()
	data.Page = "projects"

	var page bytes.Buffer
	if err := app.execute(&page, "projects.page.tmpl", data); err != nil {
		return err
	}

	feed, err := json.Marshal(data.Cards)
	if err != nil {
		return err
	}

	if err := writeFile(filepath.Join(dir, "projects", "index.html"), page.Bytes()); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, "projects.json"), feed); err != nil {
		return err
	}

	return app.exportStatic(dir)
}

// exportStatic copies the static files under dir/static, with robots.txt also at the root.
func (app *Application) exportStatic(dir string) error {

	return fs.WalkDir(app.staticFS, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		b, err := fs.ReadFile(app.staticFS, name)
		if err != nil {
			return err
		}

		if name == "robots.txt" {
			if err := writeFile(filepath.Join(dir, name), b); err != nil {
				return err
			}
		}
		return writeFile(filepath.Join(dir, "static", filepath.FromSlash(name)), b)
	})
}

// writeFile writes a file, making its folder if needed.
func writeFile(name string, b []byte) error {

	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return err
	}
	return os.WriteFile(name, b, 0644)
}
