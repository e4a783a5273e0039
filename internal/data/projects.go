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

// Projects listed in a data file, in the order they are to be shown.

import (
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"inchworks.com/showinch/internal/models"
)

// Projects is a sequence of project records read from a YAML file.
type Projects struct {
	projects []*models.Project
}

// Load reads a YAML list of projects from fsys.
// It returns warnings for blank, repeated or over-long fields, but the sequence is kept exactly as written.
func Load(fsys fs.FS, name string) (ps *Projects, warn []string, err error) {

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, nil, fmt.Errorf("data: reading %s: %w", name, err)
	}

	return Parse(b)
}

// Parse decodes a YAML list of projects. An empty list item is an untitled project.
func Parse(b []byte) (ps *Projects, warn []string, err error) {

	var projects []*models.Project
	if err = yaml.Unmarshal(b, &projects); err != nil {
		return nil, nil, fmt.Errorf("data: parsing projects: %w", err)
	}

	// show order as listed
	seen := make(map[string]int, len(projects))
	for i, p := range projects {
		if p == nil {
			p = &models.Project{}
			projects[i] = p
		}
		p.ShowOrder = i + 1
		warn = append(warn, tooLong(i+1, p)...)

		t := strings.TrimSpace(p.Title)
		if t == "" {
			warn = append(warn, fmt.Sprintf("Project %d has no title", i+1))
			continue
		}
		if n, exists := seen[t]; exists {
			warn = append(warn, fmt.Sprintf(`Project %d repeats title "%s" of project %d`, i+1, t, n))
		} else {
			seen[t] = i + 1
		}
	}

	return &Projects{projects: projects}, warn, nil
}

// tooLong returns warnings for fields that would not fit in the database.
func tooLong(n int, p *models.Project) (warn []string) {

	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"title", p.Title, models.MaxTitle},
		{"description", p.Description, models.MaxDetail},
		{"imgSrc", p.ImgSrc, models.MaxHRef},
		{"href", p.HRef, models.MaxHRef},
	} {
		if utf8.RuneCountInString(f.value) > f.max {
			warn = append(warn, fmt.Sprintf("Project %d %s is longer than %d characters", n, f.name, f.max))
		}
	}
	return
}

// New returns a sequence of the specified projects.
func New(projects ...*models.Project) *Projects {
	return &Projects{projects: projects}
}

// All returns the projects in file order.
func (ps *Projects) All() []*models.Project {
	if ps == nil {
		return nil
	}
	return ps.projects
}
