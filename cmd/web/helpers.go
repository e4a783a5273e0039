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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
)

// The following functions return status code and corresponding description HTTP client.
// They just make the code a bit easier to read.
// BadRequest and ServerError indicate faults with the software,
// on the client and server sides respectively, and so should be logged.

func (app *Application) httpBadRequest(w http.ResponseWriter, err error) {

	app.log(err)
	http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
}

func httpNotFound(w http.ResponseWriter) {

	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func (app *Application) httpServerError(w http.ResponseWriter, err error) {

	app.log(err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Log an error for debugging

func (app *Application) log(err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)
}

// render fetches a template from the cache and writes the result as an HTTP response.
func (app *Application) render(w http.ResponseWriter, r *http.Request, name string, td TemplateData) {

	if td == nil {
		td = &DataCommon{}
	}

	td.addDefaultData(app, r, strings.SplitN(name, ".", 2)[0])

	// write template via buffer, to catch any error instead of sending a part executed page
	buf := new(bytes.Buffer)
	if err := app.execute(buf, name, td); err != nil {
		app.httpServerError(w, err)
		return
	}

	// write the buffer (pass http.ResponseWriter to a func that takes an io.Writer)
	buf.WriteTo(w)
}

// execute writes a page from the template cache.
func (app *Application) execute(w io.Writer, name string, td interface{}) error {

	// Retrieve the appropriate template set from the cache based on the page name
	// (like `projects.page.tmpl`).
	ts, ok := app.templateCache[name]
	if !ok {
		return fmt.Errorf("the template %s does not exist", name)
	}

	return ts.Execute(w, td)
}

// Send JSON reply.
func (app *Application) reply(w http.ResponseWriter, v interface{}) {

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.log(err) // headers already sent
	}
}
