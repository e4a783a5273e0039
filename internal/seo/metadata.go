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

// Package seo makes the metadata for a page: the title and description for search engines,
// and the properties used when the page is shared on social media.
package seo

import (
	"inchworks.com/showinch/internal/models"
)

// Options are the page-specific values. Only Title is required.
type Options struct {
	Title       string
	Description string
	Image       string
}

// Metadata for a page.
type Metadata struct {
	Title       string
	Description string
	OpenGraph   OpenGraph
	Twitter     Twitter
}

type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Images      []string
	Locale      string
	Type        string
}

type Twitter struct {
	Title  string
	Card   string
	Images []string
}

// PageMetadata returns the metadata for a page on the site.
func PageMetadata(site *models.Site, opts Options) *Metadata {

	desc := opts.Description
	if desc == "" {
		desc = site.Description
	}

	image := opts.Image
	if image == "" {
		image = site.SocialBanner
	}
	var images []string
	if image != "" {
		images = []string{image}
	}

	full := FullTitle(opts.Title, site.Title)

	return &Metadata{
		Title:       opts.Title,
		Description: desc,
		OpenGraph: OpenGraph{
			Title:       full,
			Description: desc,
			URL:         "./",
			SiteName:    site.Title,
			Images:      images,
			Locale:      "en_US",
			Type:        "website",
		},
		Twitter: Twitter{
			Title:  full,
			Card:   "summary_large_image",
			Images: images,
		},
	}
}

// FullTitle returns a page title qualified by the site title.
func FullTitle(title string, siteTitle string) string {

	switch {
	case siteTitle == "":
		return title
	case title == "":
		return siteTitle
	default:
		return title + " | " + siteTitle
	}
}
