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

package cache

// Cached content for site pages.

import (
	"html/template"
	"slices"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"

	"inchworks.com/showinch/internal/models"
	"inchworks.com/showinch/internal/seo"
)

type MenuItem struct {
	Name string
	Path string
	Sub  []*MenuItem
}

// Card is the content of one project card, with fields exactly as in the project record.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImgSrc      string `json:"imgSrc"`
	HRef        string `json:"href"`
}

// Listing is a page with a heading, an introduction and a list of cards.
type Listing struct {
	Meta    *seo.Metadata
	Heading string
	Intro   template.HTML
	Cards   []*Card
}

type item struct {
	name string // string case as specified
	path string
	sub  map[string]*item
}

type PageCache struct {
	MainMenu []*MenuItem // top menu sorted
	Notice   template.HTML
	Projects *Listing

	mainMenu map[string]*item // top menu indexed
}

// '.' and '/' separate menu names.
// '_' is a space (typically in a file name)
var normaliser = strings.NewReplacer("/", ".", "_", " ")

var mdRenderer = html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})

// HTML sanitizer, used for markdown output
var sanitizer = bluemonday.UGCPolicy()

// NewPageCache returns an empty page cache
func NewPageCache() *PageCache {
	return &PageCache{
		Projects: &Listing{},
		mainMenu: make(map[string]*item, 8),
	}
}

// AddMenu adds a menu item, specified as "name=path" or "parent.name=path".
// It returns a list of warnings.
func (pc *PageCache) AddMenu(entry string) []string {

	name, path, ok := strings.Cut(entry, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return []string{`Menu item "` + entry + `" has no path`}
	}

	es, warn := toMenu(name)
	if len(warn) > 0 {
		return warn
	}

	return addMenu(es, path, pc.mainMenu, warn)
}

// BuildMenus makes ordered lists of menu items.
func (pc *PageCache) BuildMenus() {
	pc.MainMenu = buildMenu(pc.mainMenu)
	pc.mainMenu = make(map[string]*item, 8)
}

// SetNotice sets the site notice, shown on every page.
func (pc *PageCache) SetNotice(md string) {
	pc.Notice = toHTML(md)
}

// SetProjects replaces the projects page with a heading, an introduction in markdown,
// the page metadata, and one card for each project in the order given.
func (pc *PageCache) SetProjects(heading string, intro string, meta *seo.Metadata, projects []*models.Project) {

	pc.Projects = &Listing{
		Meta:    meta,
		Heading: heading,
		Intro:   toHTML(intro),
		Cards:   ToCards(projects),
	}
}

// ToCards makes one card for each project, preserving order.
func ToCards(projects []*models.Project) []*Card {

	cards := make([]*Card, len(projects))
	for i, p := range projects {
		if p == nil {
			cards[i] = &Card{}
			continue
		}
		cards[i] = &Card{
			Title:       p.Title,
			Description: p.Description,
			ImgSrc:      p.ImgSrc,
			HRef:        p.HRef,
		}
	}
	return cards
}

// addMenu recursively adds menu names to menu maps.
func addMenu(names []string, path string, to map[string]*item, warn []string) []string {

	name := names[0]
	ncb := strings.ToLower(name) // for case-blind index
	m, exists := to[ncb]

	if len(names) == 1 {
		// add leaf
		if exists {
			if m.path != "" {
				warn = append(warn, `Menu item "`+name+`" redefined`)
			} else {
				warn = append(warn, `Menu dropdown "`+name+`" replaced`)
			}
		}
		to[ncb] = &item{name: name, path: path}

	} else {
		// parent item
		if exists {
			if m.path != "" {
				warn = append(warn, `Menu dropdown replaces "`+name+`"`)

				// change parent to dropdown
				m.path = ""
				m.sub = make(map[string]*item, 3)
			}
		} else {
			// add new parent
			m = &item{name: name, sub: make(map[string]*item, 3)}
			to[ncb] = m
		}
		// sub-menu
		warn = addMenu(names[1:], path, m.sub, warn)
	}
	return warn
}

// buildMenu recursively builds sorted menu lists from menu maps.
func buildMenu(from map[string]*item) (to []*MenuItem) {

	for _, it := range from {
		item := &MenuItem{Name: it.name, Path: it.path}
		to = append(to, item)

		// sub-menus
		if len(it.sub) > 0 {
			item.Sub = buildMenu(it.sub)
		}
	}

	// sort menu items
	slices.SortFunc(to, func(a, b *MenuItem) int {
		return strings.Compare(a.Name, b.Name)
	})
	return
}

// toHTML converts markdown to HTML and sanitises it.
func toHTML(md string) template.HTML {
	mdParser := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)

	doc := mdParser.Parse([]byte(md))

	unsafe := markdown.Render(doc, mdRenderer)
	html := sanitizer.SanitizeBytes(unsafe)
	return template.HTML(html)
}

// toMenu returns the normalised elements of a menu name.
func toMenu(name string) (es []string, warn []string) {

	// normalise menu item names
	name = normaliser.Replace(name)

	es = strings.Split(name, ".")

	for i, e := range es {

		// simplify whitespace
		e = strings.Join(strings.Fields(e), " ")
		if len(e) == 0 {
			warn = append(warn, `Blank element in "`+name+`"`)
			return
		}
		es[i] = e
	}
	if len(es) > 2 {
		warn = append(warn, `"`+name+`" has too many elements`)
	}

	return
}
