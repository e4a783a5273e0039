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

package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"inchworks.com/showinch/internal/models"
)

var site = &models.Site{
	Title:        "My Site",
	Description:  "Things I have made.",
	SocialBanner: "/static/images/social-banner.png",
}

func TestPageMetadata(t *testing.T) {
	md := PageMetadata(site, Options{Title: "Projects"})

	assert.Equal(t, "Projects", md.Title)
	assert.Equal(t, "Things I have made.", md.Description)

	og := md.OpenGraph
	assert.Equal(t, "Projects | My Site", og.Title)
	assert.Equal(t, "Things I have made.", og.Description)
	assert.Equal(t, "./", og.URL)
	assert.Equal(t, "My Site", og.SiteName)
	assert.Equal(t, []string{"/static/images/social-banner.png"}, og.Images)
	assert.Equal(t, "en_US", og.Locale)
	assert.Equal(t, "website", og.Type)

	assert.Equal(t, "Projects | My Site", md.Twitter.Title)
	assert.Equal(t, "summary_large_image", md.Twitter.Card)
	assert.Equal(t, og.Images, md.Twitter.Images)
}

func TestPageMetadataOptions(t *testing.T) {
	md := PageMetadata(site, Options{Title: "Projects", Description: "Mine.", Image: "/a.png"})

	assert.Equal(t, "Mine.", md.Description)
	assert.Equal(t, "Mine.", md.OpenGraph.Description)
	assert.Equal(t, []string{"/a.png"}, md.OpenGraph.Images)
	assert.Equal(t, []string{"/a.png"}, md.Twitter.Images)
}

func TestPageMetadataNoBanner(t *testing.T) {
	md := PageMetadata(&models.Site{Title: "S"}, Options{Title: "Projects"})

	assert.Nil(t, md.OpenGraph.Images)
	assert.Nil(t, md.Twitter.Images)
}

func TestFullTitle(t *testing.T) {
	tests := []struct {
		title, site, want string
	}{
		{"Projects", "My Site", "Projects | My Site"},
		{"Projects", "", "Projects"},
		{"", "My Site", "My Site"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FullTitle(tt.title, tt.site))
	}
}
