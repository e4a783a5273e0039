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

// Common operations on stores.
//
// In general, queries that return multiple records don't return an error, as the caller will
// handle an empty set successfully.

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/jmoiron/sqlx"

	"inchworks.com/showinch/internal/models"
)

type store struct {
	DBX       *sqlx.DB
	ptx       **sqlx.Tx
	errorLog  *log.Logger
	sqlDelete string
	sqlInsert string
	sqlUpdate string
}

// DeleteId removes a record by ID. A transaction must have been started.
func (st *store) DeleteId(id int64) error {

	tx := *st.ptx
	if tx == nil {
		panic("Transaction not begun")
	}

	if _, err := tx.Exec(st.sqlDelete, id); err != nil {
		return st.logError(err)
	}

	return nil
}

// convertError converts errors from the implementation to application errors.
func (st *store) convertError(err error) error {

	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNoRecord
	}
	return err
}

// logError converts and logs an error, with a trace from the caller.
func (st *store) logError(err error) error {

	err = st.convertError(err)

	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	st.errorLog.Output(2, trace)

	return err
}

// updateData inserts a data object if id is zero, and otherwise updates it.
func (st *store) updateData(id *int64, args interface{}) error {

	tx := *st.ptx
	if tx == nil {
		panic("Transaction not begun")
	}

	if *id == 0 {
		// insert
		result, err := tx.NamedExec(st.sqlInsert, args)
		if err != nil {
			return st.logError(err)
		}
		*id, _ = result.LastInsertId()
		return nil
	}

	// update
	if _, err := tx.NamedExec(st.sqlUpdate, args); err != nil {
		return st.logError(err)
	}
	return nil
}
