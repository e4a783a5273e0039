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

package limiter

// Rate limiter for HTTP requests, with bans for visitors that persist.
//
// Based on https://www.alexedwards.net/blog/how-to-rate-limit-http-requests.
// Interface model loosely from https://github.com/justinas/nosurf.

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Handlers holds the limiters and the visitors seen by all of them.
type Handlers struct {
	mu       sync.Mutex
	limits   map[string]*LimitHandler
	visitors map[string]*visitor // by limit name and address

	// parameters
	idle   time.Duration // forget visitors not seen for this long
	banned time.Duration // ban duration

	chDone chan struct{}
}

// LimitHandler limits the rate of requests, or of bad events, for each visitor.
type LimitHandler struct {
	hs *Handlers

	// handlers wrapped
	success http.Handler
	failure http.Handler
	report  func(r *http.Request, addr string, status string)

	// parameters
	name  string
	rate  rate.Limit // max. events per second
	burst int        // allowed burst
	ban   int        // rejects allowed before a ban
	also  []string   // other limits for which a banned visitor is also banned
}

// rate limiter for each visitor
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	rejects  int
	bannedAt time.Time // zero if not banned
}

// Start returns a set of limiters, with a background goroutine that forgets old visitors.
// Visitors are forgotten when idle, and bans are lifted after the ban duration.
func Start(idle time.Duration, banned time.Duration) *Handlers {

	hs := &Handlers{
		limits:   make(map[string]*LimitHandler),
		visitors: make(map[string]*visitor),
		idle:     idle,
		banned:   banned,
		chDone:   make(chan struct{}),
	}

	go hs.cleanup()
	return hs
}

// Stop ends the background goroutine.
func (hs *Handlers) Stop() {
	close(hs.chDone)
}

// New returns a limiter allowing one event per interval, with an initial burst.
// A visitor is banned after more than ban rejects, for this limit and the comma-separated list in also.
// An interval of zero sets no rate limit, so that the limiter only enforces bans.
// next may be nil if the limiter is used only through Allow.
func (hs *Handlers) New(name string, every time.Duration, burst int, ban int, also string, next http.Handler) *LimitHandler {

	lim := rate.Inf
	if every > 0 {
		lim = rate.Every(every)
	}

	var alsos []string
	if also != "" {
		alsos = strings.Split(also, ",")
	}

	lh := &LimitHandler{
		hs:      hs,
		name:    name,
		rate:    lim,
		burst:   burst,
		ban:     ban,
		also:    alsos,
		success: next,
		failure: http.HandlerFunc(defaultFailureHandler),
		report:  defaultReportHandler,
	}

	hs.mu.Lock()
	hs.limits[name] = lh
	hs.mu.Unlock()

	return lh
}

// Allow records an event for the visitor, and returns false if it exceeds the limit.
// Status is "rejected" on the first rejection and "banned" when the visitor is banned,
// and is reported to the report handler.
func (lh *LimitHandler) Allow(r *http.Request) (ok bool, status string) {

	addr := visitorAddr(r)
	ok, status = lh.allow(addr, time.Now())

	if status != "" {
		lh.report(r, addr, status)
	}
	return
}

// ServeHTTP calls the next handler if the visitor is within the limit, and the failure handler otherwise.
func (lh *LimitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	if ok, _ := lh.Allow(r); !ok {
		lh.failure.ServeHTTP(w, r)
		return
	}

	lh.success.ServeHTTP(w, r)
}

// SetFailureHandler sets the handler to call when the limit is exceeded.
func (lh *LimitHandler) SetFailureHandler(handler http.Handler) {
	lh.failure = handler
}

// SetReportHandler sets the function called for rejections and bans.
func (lh *LimitHandler) SetReportHandler(report func(r *http.Request, addr string, status string)) {
	lh.report = report
}

// allow checks the limit for a visitor at a time.
func (lh *LimitHandler) allow(addr string, now time.Time) (bool, string) {

	hs := lh.hs
	hs.mu.Lock()
	defer hs.mu.Unlock()

	v := hs.getVisitor(lh, addr, now)
	if !v.bannedAt.IsZero() {
		return false, "" // already reported
	}

	if v.limiter.AllowN(now, 1) {
		return true, ""
	}

	v.rejects++
	if v.rejects > lh.ban {
		v.bannedAt = now
		for _, name := range lh.also {
			if other, ok := hs.limits[name]; ok {
				hs.getVisitor(other, addr, now).bannedAt = now
			}
		}
		return false, "banned"
	}

	if v.rejects == 1 {
		return false, "rejected"
	}
	return false, ""
}

// cleanup forgets old visitors periodically, until stopped.
func (hs *Handlers) cleanup() {

	t := time.NewTicker(hs.idle)
	defer t.Stop()

	for {
		select {
		case now := <-t.C:
			hs.purge(now)

		case <-hs.chDone:
			return
		}
	}
}

// getVisitor returns the visitor for a limit, adding it if needed. The mutex must be held.
func (hs *Handlers) getVisitor(lh *LimitHandler, addr string, now time.Time) *visitor {

	id := lh.name + addr
	v, exists := hs.visitors[id]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(lh.rate, lh.burst)}
		hs.visitors[id] = v
	}
	v.lastSeen = now
	return v
}

// purge removes idle visitors and expired bans.
func (hs *Handlers) purge(now time.Time) {

	hs.mu.Lock()
	defer hs.mu.Unlock()

	for id, v := range hs.visitors {
		if v.bannedAt.IsZero() {
			if now.Sub(v.lastSeen) > hs.idle {
				delete(hs.visitors, id)
			}
		} else if now.Sub(v.bannedAt) > hs.banned {
			delete(hs.visitors, id)
		}
	}
}

// default handler for failures
func defaultFailureHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}

// default handler to report rejections
func defaultReportHandler(*http.Request, string, string) {}

// visitorAddr returns the visitor's IP address.
func visitorAddr(r *http.Request) string {

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
