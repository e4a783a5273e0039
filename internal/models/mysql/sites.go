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

	"github.com/jmoiron/sqlx"

	"inchworks.com/showinch/internal/models"
)

const (
	siteWhereId = `SELECT * FROM site WHERE id = ?`
)

type SiteStore struct {
	store
}

func NewSiteStore(db *sqlx.DB, tx **sqlx.Tx, log *log.Logger) *SiteStore {

	return &SiteStore{
		store: store{
			DBX:      db,
			ptx:      tx,
			errorLog: log,
		},
	}
}

// GetTx returns the site with specified ID, reading within the current transaction.
// It sees tables created earlier in the same transaction.
func (st *SiteStore) GetTx(id int64) (*models.Site, error) {

	s := &models.Site{}

	if err := (*st.ptx).Get(s, siteWhereId, id); err != nil {
		return nil, st.convertError(err)
	}
	return s, nil
}
