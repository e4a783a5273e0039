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

package data

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inchworks.com/showinch/internal/models"
)

const twoProjects = `
- title: A Search Engine
  description: What if you could look up any information in the world?
  imgSrc: /static/images/google.png
  href: https://www.google.com
- title: The Time Machine
  description: Imagine being able to travel back in time.
  imgSrc: /static/images/time-machine.jpg
  href: /blog/the-time-machine
`

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"projects.yml": &fstest.MapFile{Data: []byte(twoProjects)},
	}

	ps, warn, err := Load(fsys, "projects.yml")
	require.NoError(t, err)
	assert.Empty(t, warn)

	all := ps.All()
	require.Len(t, all, 2)
	assert.Equal(t, "A Search Engine", all[0].Title)
	assert.Equal(t, "What if you could look up any information in the world?", all[0].Description)
	assert.Equal(t, "/static/images/google.png", all[0].ImgSrc)
	assert.Equal(t, "https://www.google.com", all[0].HRef)
	assert.Equal(t, 1, all[0].ShowOrder)

	assert.Equal(t, "The Time Machine", all[1].Title)
	assert.Equal(t, 2, all[1].ShowOrder)
}

func TestLoadMissing(t *testing.T) {
	_, _, err := Load(fstest.MapFS{}, "projects.yml")
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	ps, warn, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, warn)
	assert.Empty(t, ps.All())
}

func TestParseMalformed(t *testing.T) {
	_, _, err := Parse([]byte("title: [unterminated"))
	assert.Error(t, err)
}

func TestParseWarnings(t *testing.T) {
	src := `
- title: Alpha
- title: ""
- title: Alpha
  description: again
`
	ps, warn, err := Parse([]byte(src))
	require.NoError(t, err)

	// sequence unchanged
	all := ps.All()
	require.Len(t, all, 3)
	assert.Equal(t, "again", all[2].Description)

	assert.Equal(t, []string{
		"Project 2 has no title",
		`Project 3 repeats title "Alpha" of project 1`,
	}, warn)
}

func TestNew(t *testing.T) {
	a := &models.Project{Title: "A"}
	b := &models.Project{Title: "B"}

	assert.Equal(t, []*models.Project{a, b}, New(a, b).All())

	var none *Projects
	assert.Nil(t, none.All())
}

func TestParseEmptyItem(t *testing.T) {
	ps, warn, err := Parse([]byte("- title: A\n-\n- title: B\n"))
	require.NoError(t, err)

	// kept as an untitled project, in sequence
	all := ps.All()
	require.Len(t, all, 3)
	require.NotNil(t, all[1])
	assert.Equal(t, "", all[1].Title)
	assert.Equal(t, 2, all[1].ShowOrder)
	assert.Equal(t, "B", all[2].Title)

	assert.Equal(t, []string{"Project 2 has no title"}, warn)
}

func TestParseNullList(t *testing.T) {
	ps, warn, err := Parse([]byte("~\n"))
	require.NoError(t, err)
	assert.Empty(t, warn)
	assert.Empty(t, ps.All())
}

func TestParseNotList(t *testing.T) {
	_, _, err := Parse([]byte("title: A\n"))
	assert.Error(t, err)
}

func TestParseTooLong(t *testing.T) {
	src := "- title: " + strings.Repeat("t", models.MaxTitle+1) + "\n" +
		"  description: " + strings.Repeat("d", models.MaxDetail) + "\n" +
		"  href: /" + strings.Repeat("h", models.MaxHRef) + "\n"

	ps, warn, err := Parse([]byte(src))
	require.NoError(t, err)

	// reported, not truncated
	require.Len(t, ps.All(), 1)
	assert.Len(t, ps.All()[0].Title, models.MaxTitle+1)
	assert.Equal(t, []string{
		"Project 1 title is longer than 128 characters",
		"Project 1 href is longer than 256 characters",
	}, warn)
}
