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

package mysql

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"inchworks.com/showinch/internal/models"
)

const (
	projectDelete = `DELETE FROM project WHERE id = ?`

	projectInsert = `
		INSERT INTO project (site, show_order, title, description, img_src, href, revised)
		VALUES (:site, :show_order, :title, :description, :img_src, :href, :revised)`

	projectUpdate = `
		UPDATE project
		SET show_order=:show_order, title=:title, description=:description, img_src=:img_src, href=:href, revised=:revised
		WHERE id = :id
	`
)

const (
	projectSelect = `SELECT id, show_order, title, description, img_src, href, revised FROM project`

	// ID is included for a stable order when show_order values are equal
	projectOrder = ` ORDER BY show_order, id`

	projectCount      = `SELECT COUNT(*) FROM project WHERE site = ?`
	projectWhereId    = projectSelect + ` WHERE id = ?`
	projectsWhereSite = projectSelect + ` WHERE site = ?` + projectOrder
)

type ProjectStore struct {
	SiteId int64
	store
}

// projectRow adds the site ID needed for inserts.
type projectRow struct {
	Site int64
	*models.Project
}

func NewProjectStore(db *sqlx.DB, tx **sqlx.Tx, log *log.Logger) *ProjectStore {

	return &ProjectStore{
		store: store{
			DBX:       db,
			ptx:       tx,
			errorLog:  log,
			sqlDelete: projectDelete,
			sqlInsert: projectInsert,
			sqlUpdate: projectUpdate,
		},
	}
}

// All returns the site's projects, in showcase order.
func (st *ProjectStore) All() []*models.Project {

	var projects []*models.Project

	if err := st.DBX.Select(&projects, projectsWhereSite, st.SiteId); err != nil {
		st.logError(err)
		return nil
	}
	return projects
}

// Count returns the number of projects.
func (st *ProjectStore) Count() (int, error) {
	var n int

	return n, st.DBX.Get(&n, projectCount, st.SiteId)
}

// GetIf returns the project if it exists.
func (st *ProjectStore) GetIf(id int64) *models.Project {

	var p models.Project

	if err := st.DBX.Get(&p, projectWhereId, id); err != nil {
		if st.convertError(err) != models.ErrNoRecord {
			st.logError(err)
		}
		return nil
	}

	return &p
}

// Update inserts or updates a project, and sets its revision time.
func (st *ProjectStore) Update(p *models.Project) error {

	p.Revised = time.Now()
	return st.updateData(&p.Id, &projectRow{Site: st.SiteId, Project: p})
}
