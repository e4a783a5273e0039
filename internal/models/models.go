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

package models

// Database models for ShowInch.

import (
	"errors"
	"time"
)

// Database field names are the same as structure names, with lower case first letter.

const (
	// field sizes
	MaxTitle  = 128
	MaxDetail = 512
	MaxHRef   = 256
)

var (
	ErrNoRecord = errors.New("models: no matching record found")
)

// Project is one showcased project.
// Only Title, Description, ImgSrc and HRef are shown on a card.
type Project struct {
	Id          int64     `yaml:"-"`
	ShowOrder   int       `db:"show_order" yaml:"-"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	ImgSrc      string    `db:"img_src" yaml:"imgSrc"`
	HRef        string    `db:"href" yaml:"href"`
	Revised     time.Time `yaml:"-"`
}

// Site holds the parameters common to all pages.
type Site struct {
	Id      int64
	Version int

	Title        string // site name, appended to page titles
	Description  string // default <meta> description
	Author       string
	SocialBanner string `db:"social_banner"` // default image for OpenGraph and Twitter cards
	Notice       string // markdown, appears on every page
}
