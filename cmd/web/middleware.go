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
	"math"
	"net/http"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/justinas/nosurf"
)

// HANDLERS.

// ccCache returns a handler that sets cache control for public content that changes occasionally.
func (app *Application) ccCache(next http.Handler) http.Handler {

	maxAge := "public, max-age=" + strconv.Itoa(int(app.cfg.MaxCacheAge.Seconds()))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", maxAge)
		next.ServeHTTP(w, r)
	})
}

// ccNoCache returns a handler for pages that may be stored but must be revalidated,
// because they include user preferences.
func (app *Application) ccNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

// ccNoStore returns a handler for responses that must not be cached.
func (app *Application) ccNoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// fileServer returns a handler that serves files.
// It wraps http.FileServer with a limit on the number of bad requests accepted.
func (app *Application) fileServer(root http.FileSystem, banBad bool) http.Handler {

	fs := http.FileServer(root)

	var ban int
	if banBad {
		ban = 1 // banned after 2 rejections
	} else {
		ban = math.MaxInt32 // never ban
	}

	// limit bad file requests to one per second, burst of 10
	// (probably probing to guess file names, but we should allow for a few missing images that are our fault).
	lim := app.lhs.New("N", time.Second, 10, ban, "F,P", nil)

	lim.SetReportHandler(func(r *http.Request, addr string, status string) {
		app.threatLog.Printf("%s - %s for bad file names", addr, status)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// use a response writer that saves status
		sw := &statusWriter{ResponseWriter: w}

		fs.ServeHTTP(sw, r)
		if sw.status == http.StatusNotFound {
			// log threat, limiter will ban the visitor if there are too many
			if ok, _ := lim.Allow(r); ok {
				app.threat("bad file", r)
			}
		}
	})
}

// limitFile returns a handler to limit file requests, per visitor.
func (app *Application) limitFile(next http.Handler) http.Handler {

	// no limit, but blocks all file requests after other bad requests
	lh := app.lhs.New("F", 0, 0, 20, "", next)

	lh.SetReportHandler(func(r *http.Request, addr string, status string) {
		app.threatLog.Printf("%s - %s file requests, too many after %s", addr, status, r.RequestURI)
	})

	return lh
}

// limitPage returns a handler to limit web page requests, per visitor.
func (app *Application) limitPage(next http.Handler) http.Handler {

	// 1 per second with burst of 5, banned after more than 20 rejects
	lh := app.lhs.New("P", time.Second, 5, 20, "", next)

	lh.SetReportHandler(func(r *http.Request, addr string, status string) {
		app.threatLog.Printf("%s - %s page requests, too many after %s", addr, status, r.RequestURI)
	})

	return lh
}

// logRequest records an HTTP request.
func (app *Application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())

		next.ServeHTTP(w, r)
	})
}

// noQuery returns a handler that blocks probes with random query parameters.
func (app *Application) noQuery(next http.Handler) http.Handler {

	// 1 per minute with burst of 5, banned after 2 rejections
	lim := app.lhs.New("Q", time.Minute, 5, 1, "F,P", nil)

	lim.SetReportHandler(func(r *http.Request, addr string, status string) {
		app.threatLog.Printf("%s - %s for bad queries, after %s", addr, status, r.RequestURI)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			for name := range r.URL.Query() {
				if !app.allowedQuery(name) {
					if ok, _ := lim.Allow(r); ok {
						app.threat("bad query", r)
					}
					http.Error(w, "Query parameters not accepted", http.StatusBadRequest)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// noSurf returns a handler that implements CSRF protection.
func (app *Application) noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   len(app.cfg.Domains) > 0, // not in test
	})

	// 1 per minute with burst of 3, banned after 3 rejections
	lim := app.lhs.New("C", time.Minute, 3, 2, "F,P", nil)

	lim.SetReportHandler(func(r *http.Request, addr string, status string) {
		app.threatLog.Printf("%s - %s for bad CSRF tokens, after %s", addr, status, r.RequestURI)
	})

	csrfHandler.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok, _ := lim.Allow(r); ok {
			app.threat("bad CSRF token", r)
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	}))

	return csrfHandler
}

// public returns a handler that sets headers for public web pages and resources.
func (app *Application) public(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// set canonical URL for search engines, if we accept more than one domain
		if len(app.cfg.Domains) > 1 {
			u := *r.URL
			u.Host = app.cfg.Domains[0] // first listed domain
			u.Scheme = "https"
			w.Header().Set("Link", `<`+u.String()+`>; rel="canonical"`)
		}

		next.ServeHTTP(w, r)
	})
}

// recoverPanic returns the panic handler for httprouter.
func (app *Application) recoverPanic() func(http.ResponseWriter, *http.Request, interface{}) {

	return func(w http.ResponseWriter, r *http.Request, err interface{}) {
		w.Header().Set("Connection", "close")
		app.httpServerError(w, fmt.Errorf("%s", err))
	}
}

// routeNotFound returns a handler that logs and rate limits HTTP requests to non-existent routes.
// Typically these are intrusion attempts.
func (app *Application) routeNotFound() http.Handler {

	// allow 1 every 10 minutes, burst of 3, banned after 2 rejections
	// (typically probing for vulnerable PHP files).
	lim := app.lhs.New("R", 10*time.Minute, 3, 1, "F,P", nil)

	lim.SetReportHandler(func(r *http.Request, addr string, status string) {
		app.threatLog.Printf("%s - %s for bad requests, after %s", addr, status, r.RequestURI)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		// ignore some common bad requests, so we don't ban unreasonably
		d, f := path.Split(r.URL.Path)
		if d == "/" && path.Ext(f) == ".png" {
			httpNotFound(w) // possibly a favicon for an ancient mobile device
			return
		}

		if ok, _ := lim.Allow(r); ok {
			app.threat("bad URL", r)
		}
		httpNotFound(w)
	})
}

// secureHeaders adds HTTP headers for security against XSS and Clickjacking.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Frame-Options", "deny")

		next.ServeHTTP(w, r)
	})
}

// timeout returns a handler that limits the time for a web request.
func (app *Application) timeout(next http.Handler) http.Handler {
	return http.TimeoutHandler(next, app.cfg.TimeoutWeb, "Request timed out")
}

// wwwRedirect redirects a request for the www sub-domain to the parent domain.
func wwwRedirect(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if host := strings.TrimPrefix(r.Host, "www."); host != r.Host {
			// Request host has www. prefix. Redirect to host with www. trimmed.
			u := *r.URL
			u.Host = host
			u.Scheme = "https"
			http.Redirect(w, r, u.String(), http.StatusMovedPermanently)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// HELPER FUNCTIONS.

// allowedQuery returns true if a URL query name is accepted.
func (app *Application) allowedQuery(name string) bool {
	return slices.Contains(app.cfg.AllowedQueries, name)
}

// A noDirFileSystem blocks browsing of directories.
// It avoids the need to install copies of index.html but allows index.html to be served if there is one.
// From https://www.alexedwards.net/blog/disable-http-fileserver-directory-listings.
type noDirFileSystem struct {
	http.FileSystem
}

func (nfs noDirFileSystem) Open(path string) (http.File, error) {
	fs := nfs.FileSystem

	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if s.IsDir() {
		index := filepath.Join(path, "index.html")
		if _, err := fs.Open(index); err != nil {
			closeErr := f.Close()
			if closeErr != nil {
				return nil, closeErr
			}

			return nil, err
		}
	}

	return f, nil
}

// A statusWriter is a ResponseWriter that saves the response status.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// threat records an attempted intrusion
func (app *Application) threat(event string, r *http.Request) {
	app.threatLog.Printf("%s - %s: %s %s %s", r.RemoteAddr, event, r.Proto, r.Method, r.URL.RequestURI())
}
