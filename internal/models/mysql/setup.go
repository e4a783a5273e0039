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

// Setup application database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"inchworks.com/showinch/internal/models"
)

// MySQL error numbers
const (
	errNoTable = 1146
)

var cmds = [...]string{

	"SET NAMES 'utf8mb4' COLLATE 'utf8mb4_unicode_ci';",

	"SET time_zone = '+00:00';",

	"SET foreign_key_checks = 0;",

	`CREATE TABLE site (
	id int(11) NOT NULL AUTO_INCREMENT,
	version smallint(6) NOT NULL,
	title varchar(60) NOT NULL,
	description varchar(512) NOT NULL,
	author varchar(60) NOT NULL,
	social_banner varchar(256) NOT NULL,
	notice varchar(4096) NOT NULL,
	PRIMARY KEY (id)) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci;`,

	`INSERT INTO site (id, version, title, description, author, social_banner, notice) VALUES
	(1, 1, 'ShowInch', 'A showcase of my projects.', '', '/images/social-banner.png', '');`,

	`CREATE TABLE project (
	id int(11) NOT NULL AUTO_INCREMENT,
	site int(11) NOT NULL,
	show_order int(11) NOT NULL,
	title varchar(128) NOT NULL,
	description varchar(512) NOT NULL,
	img_src varchar(256) NOT NULL,
	href varchar(256) NOT NULL,
	revised datetime NOT NULL,
	PRIMARY KEY (id),
	KEY IDX_PROJECT_SITE (site, show_order),
	CONSTRAINT FK_PROJECT_SITE FOREIGN KEY (site) REFERENCES site (id)) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci;`,

	`INSERT INTO project (site, show_order, title, description, img_src, href, revised) VALUES
	(1, 1, 'A Search Engine', 'What if you could look up any information in the world? Webpages, images, videos and more.', '/images/google.png', 'https://www.google.com', '2026-01-01 12:00:00'),
	(1, 2, 'The Time Machine', 'Imagine being able to travel back in time or to the future. Simply turn the knob to the desired date and press "Go".', '/images/time-machine.jpg', '/blog/the-time-machine', '2026-01-01 12:00:00');`,

	`CREATE TABLE sessions (
	token CHAR(43) PRIMARY KEY,
	data BLOB NOT NULL,
	expiry TIMESTAMP(6) NOT NULL);`,

	`CREATE INDEX sessions_expiry_idx ON sessions (expiry);`,
}

// Setup initialises a new database, if it has no tables, and returns the site record.
func Setup(stSite *SiteStore, siteId int64) (*models.Site, error) {

	// look for site record
	s, err := stSite.GetTx(siteId)
	if err == nil {
		return s, nil
	}

	var driverErr *mysql.MySQLError
	if !errors.As(err, &driverErr) || driverErr.Number != errNoTable {
		return nil, stSite.logError(err)
	}

	// no site table - make the database
	if err = setupTables(*stSite.ptx, cmds[:]); err != nil {
		return nil, stSite.logError(err)
	}

	if s, err = stSite.GetTx(siteId); err != nil {
		return nil, stSite.logError(err)
	}
	return s, nil
}

// setupTables executes database commands.
func setupTables(tx *sqlx.Tx, cmds []string) error {

	for _, cmd := range cmds {
		if _, err := tx.Exec(cmd); err != nil {
			return err
		}
	}
	return nil
}
