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
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inchworks.com/showinch/internal/models"
)

func TestConvertError(t *testing.T) {
	st := &store{errorLog: log.New(io.Discard, "", 0)}

	assert.Equal(t, models.ErrNoRecord, st.convertError(sql.ErrNoRows))
	assert.Equal(t, models.ErrNoRecord, st.convertError(fmt.Errorf("get site: %w", sql.ErrNoRows)))

	other := errors.New("connection refused")
	assert.Equal(t, other, st.convertError(other))
	assert.Equal(t, other, st.logError(other))
}

var projectColumns = []string{"id", "show_order", "title", "description", "img_src", "href", "revised"}

// mockDB returns a database connection with expectations set by the test.
func mockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "mysql"), mock
}

func TestProjectStoreAll(t *testing.T) {
	db, mock := mockDB(t)
	var tx *sqlx.Tx
	st := NewProjectStore(db, &tx, log.New(io.Discard, "", 0))
	st.SiteId = 3

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT (.+) FROM project WHERE site = \? ORDER BY show_order, id`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow(7, 1, "A", "d", "/a.png", "/a", now).
			AddRow(2, 2, "B", "", "", "", now))

	ps := st.All()
	require.Len(t, ps, 2)
	assert.Equal(t, &models.Project{Id: 7, ShowOrder: 1, Title: "A", Description: "d", ImgSrc: "/a.png", HRef: "/a", Revised: now}, ps[0])
	assert.Equal(t, "B", ps[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreAllFails(t *testing.T) {
	db, mock := mockDB(t)
	var tx *sqlx.Tx
	st := NewProjectStore(db, &tx, log.New(io.Discard, "", 0))

	mock.ExpectQuery(`SELECT (.+) FROM project`).WillReturnError(errors.New("connection lost"))

	assert.Empty(t, st.All())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreGetIf(t *testing.T) {
	db, mock := mockDB(t)
	var tx *sqlx.Tx
	st := NewProjectStore(db, &tx, log.New(io.Discard, "", 0))

	mock.ExpectQuery(`SELECT (.+) FROM project WHERE id = \?`).WithArgs(9).WillReturnError(sql.ErrNoRows)

	assert.Nil(t, st.GetIf(9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectStoreUpdate(t *testing.T) {
	db, mock := mockDB(t)
	var tx *sqlx.Tx
	st := NewProjectStore(db, &tx, log.New(io.Discard, "", 0))
	st.SiteId = 1

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO project`).
		WithArgs(1, 4, "A", "d", "/a.png", "/a", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(`UPDATE project`).
		WithArgs(4, "A2", "d", "/a.png", "/a", sqlmock.AnyArg(), 12).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx = db.MustBegin()
	p := &models.Project{ShowOrder: 4, Title: "A", Description: "d", ImgSrc: "/a.png", HRef: "/a"}
	require.NoError(t, st.Update(p))
	assert.Equal(t, int64(12), p.Id)
	assert.False(t, p.Revised.IsZero())

	p.Title = "A2"
	require.NoError(t, st.Update(p))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupNewDatabase(t *testing.T) {
	db, mock := mockDB(t)
	var tx *sqlx.Tx
	st := NewSiteStore(db, &tx, log.New(io.Discard, "", 0))

	siteColumns := []string{"id", "version", "title", "description", "author", "social_banner", "notice"}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM site WHERE id = \?`).WithArgs(1).
		WillReturnError(&mysql.MySQLError{Number: errNoTable, Message: "Table 'site' doesn't exist"})
	for range cmds {
		mock.ExpectExec(`.*`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectQuery(`SELECT \* FROM site WHERE id = \?`).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(siteColumns).
			AddRow(1, 1, "ShowInch", "A showcase of my projects.", "", "/images/social-banner.png", ""))
	mock.ExpectCommit()

	tx = db.MustBegin()
	s, err := Setup(st, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, "ShowInch", s.Title)
	assert.Equal(t, "/images/social-banner.png", s.SocialBanner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupFails(t *testing.T) {
	db, mock := mockDB(t)
	var tx *sqlx.Tx
	st := NewSiteStore(db, &tx, log.New(io.Discard, "", 0))

	// access denied, not a missing table
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM site`).WillReturnError(&mysql.MySQLError{Number: 1045, Message: "Access denied"})

	tx = db.MustBegin()
	_, err := Setup(st, 1)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestProjectStore needs an empty MySQL database, named by a DSN in the "test-db" environment variable,
// e.g. "server:<password>@tcp(localhost:3306)/test?parseTime=true".
func TestProjectStore(t *testing.T) {

	dsn := os.Getenv("test-db")
	if dsn == "" {
		t.Skip("no test database")
	}

	db, err := sqlx.Open("mysql", dsn)
	require.NoError(t, err)
	defer db.Close()

	errorLog := log.New(io.Discard, "", 0)
	var tx *sqlx.Tx
	stSite := NewSiteStore(db, &tx, errorLog)
	stProject := NewProjectStore(db, &tx, errorLog)

	tx = db.MustBegin()
	s, err := Setup(stSite, 1)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	stProject.SiteId = s.Id

	// example projects, in order
	ps := stProject.All()
	require.Len(t, ps, 2)
	assert.Equal(t, "A Search Engine", ps[0].Title)
	assert.Equal(t, "/images/time-machine.jpg", ps[1].ImgSrc)

	// add one at the front
	tx = db.MustBegin()
	p := &models.Project{ShowOrder: 0, Title: "First", Description: "d", ImgSrc: "/a.png", HRef: "/a"}
	require.NoError(t, stProject.Update(p))
	require.NoError(t, tx.Commit())
	assert.NotZero(t, p.Id)

	ps = stProject.All()
	require.Len(t, ps, 3)
	assert.Equal(t, "First", ps[0].Title)

	n, err := stProject.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// remove it again
	tx = db.MustBegin()
	require.NoError(t, stProject.DeleteId(p.Id))
	require.NoError(t, tx.Commit())
	assert.Nil(t, stProject.GetIf(p.Id))
	assert.Len(t, stProject.All(), 2)
}
