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

package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jmoiron/sqlx"

	"inchworks.com/showinch/internal/limiter"
	"inchworks.com/showinch/internal/models"
	"inchworks.com/showinch/internal/models/mysql"
	"inchworks.com/showinch/web"
)

// version and copyright
const (
	version = "1.0.0"
	notice  = `
	Copyright (C) Rob Burke inchworks.com, 2026.
	This website software comes with ABSOLUTELY NO WARRANTY.
	This is free software, and you are welcome to redistribute it under certain conditions.
`
)

// file locations on server
var (
	ImagePath = "images" // project images
	SitePath  = "site"   // site-specific resources
)

// database operational parameters
const (
	connMaxLifetime = 200 // (sec) lifetime of idle connections (MySQL wait_timeout is 600)
	siteId          = 1   // one site per database
)

// Site configuration
type Configuration struct {

	// domains served, the first is canonical
	Domains []string `yaml:"domains" env:"domains"`

	AddrHTTP string `yaml:"http-addr" env:"http" env-default:":8000" env-description:"HTTP address"`

	// database, no source for a data file instead
	DBSource   string `yaml:"db-source" env:"db-source" env-default:""`
	DBUser     string `yaml:"db-user" env:"db-user" env-default:"server"`
	DBPassword string `yaml:"db-password" env:"db-password" env-default:"<server-password>"`

	// data file in site folder, when there is no database
	DataFile string `yaml:"data-file" env:"data-file" env-default:"projects.yml"`

	// site parameters, when there is no database
	SiteTitle       string `yaml:"site-title" env:"site-title" env-default:"ShowInch"`
	SiteDescription string `yaml:"site-description" env:"site-description" env-default:"A showcase of my projects."`
	Author          string `yaml:"author" env:"author" env-default:""`
	SocialBanner    string `yaml:"social-banner" env:"social-banner" env-default:"/images/social-banner.png"`
	Notice          string `yaml:"notice" env:"notice" env-default:""` // markdown

	// projects page
	ProjectsIntro string `yaml:"projects-intro" env:"projects-intro" env-default:"Showcase your projects with a hero image (16 x 9)"` // markdown

	// navigation, as "name=path" or "dropdown.name=path"
	Menu []string `yaml:"menu" env:"menu" env-default:"Projects=/projects"`

	// operational settings
	AllowedQueries []string      `yaml:"allowed-queries" env-default:"fbclid"`                // URL query names allowed
	MaxCacheAge    time.Duration `yaml:"max-cache-age" env:"max-cache-age" env-default:"1h"` // browser cache control, maximum age. Units s, m or h.
	SiteRefresh    time.Duration `yaml:"site-refresh" env:"site-refresh" env-default:"1h"`   // refresh interval for cached projects. Units m or h.
	TimeoutWeb     time.Duration `yaml:"timeout-web" env-default:"20s"`                      // maximum time for web request, same for response (default). Units s or m.

	// write static pages to this folder and exit
	ExportPath string `yaml:"export-path" env:"export-path" env-default:""`
}

// Application struct supplies application-wide dependencies.
type Application struct {
	cfg *Configuration

	errorLog      *log.Logger
	infoLog       *log.Logger
	threatLog     *log.Logger
	session       *scs.SessionManager
	lhs           *limiter.Handlers
	templateCache map[string]*template.Template

	// database, optional
	db *sqlx.DB
	tx *sqlx.Tx

	ProjectStore *mysql.ProjectStore
	SiteStore    *mysql.SiteStore

	staticFS fs.FS

	// Since we support just one site at a time, we can cache state here.
	siteState SiteState
}

func main() {

	// logging
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	threatLog := log.New(os.Stdout, "THREAT\t", log.Ldate|log.Ltime)
	infoLog.Printf("ShowInch %s", version)
	infoLog.Print(notice)

	// redirect to test folders
	test := os.Getenv("test")
	if test != "" {
		ImagePath = filepath.Join(test, filepath.Base(ImagePath))
		SitePath = filepath.Join(test, filepath.Base(SitePath))
	}

	// site configuration
	cfg, err := readConfig(SitePath, infoLog)
	if err != nil {
		errorLog.Fatal(err)
	}

	// database, if configured
	var db *sqlx.DB
	if cfg.DBSource != "" {
		dsn := fmt.Sprintf("%s:%s@%s?parseTime=true", cfg.DBUser, cfg.DBPassword, cfg.DBSource)
		if db, err = openDB(dsn); err != nil {
			errorLog.Fatal(err)
		}
		infoLog.Print("Connected to database")

		// close DB on exit
		defer db.Close()
	}

	// initialise application
	app := initialise(cfg, errorLog, infoLog, threatLog, db)
	defer app.lhs.Stop()

	// static site
	if cfg.ExportPath != "" {
		if err := app.export(cfg.ExportPath); err != nil {
			errorLog.Fatal(err)
		}
		infoLog.Printf("Pages exported to %s", cfg.ExportPath)
		return
	}

	// ticker for refresh
	tr := time.NewTicker(app.cfg.SiteRefresh)
	defer tr.Stop()

	// closing this channel signals worker goroutines to return
	chDone := make(chan bool, 1)
	defer close(chDone)

	// start background worker
	go app.siteState.worker(tr.C, chDone)

	srv := &http.Server{
		Addr:         cfg.AddrHTTP,
		ErrorLog:     log.New(os.Stdout, "SERVER\t", log.Ldate|log.Ltime),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  cfg.TimeoutWeb,
		WriteTimeout: cfg.TimeoutWeb + time.Second, // after the handler timeout
	}

	infoLog.Printf("Starting server on %s", cfg.AddrHTTP)
	errorLog.Fatal(srv.ListenAndServe())
}

// Initialisation, common to live and test

func initialise(cfg *Configuration, errorLog *log.Logger, infoLog *log.Logger, threatLog *log.Logger, db *sqlx.DB) *Application {

	// application templates
	forApp, err := fs.Sub(web.Files, "template")
	if err != nil {
		errorLog.Fatal(err)
	}

	// initialise template cache
	templateCache, err := newTemplateCache(forApp, templateFuncs)
	if err != nil {
		errorLog.Fatal(err)
	}

	// embedded static files
	staticFS, err := fs.Sub(web.Files, "static")
	if err != nil {
		errorLog.Fatal(err)
	}

	// dependency injection
	app := &Application{
		cfg:           cfg,
		errorLog:      errorLog,
		infoLog:       infoLog,
		threatLog:     threatLog,
		templateCache: templateCache,
		db:            db,
		staticFS:      staticFS,
	}

	// initialise site state
	app.siteState.Init(app)

	// data stores or data file
	var site *models.Site
	var source projectSource
	if db != nil {
		site = app.initStores()
		source = app.ProjectStore

	} else {
		site = &models.Site{
			Title:        cfg.SiteTitle,
			Description:  cfg.SiteDescription,
			Author:       cfg.Author,
			SocialBanner: cfg.SocialBanner,
			Notice:       cfg.Notice,
		}
		source = &fileSource{app: app, fsys: os.DirFS(SitePath), name: cfg.DataFile}
	}

	// initialise session manager
	app.session = initSession(len(cfg.Domains) > 0, db)

	// rate limiters, forgetting idle visitors after 6 hours, with bans for a day
	app.lhs = limiter.Start(6*time.Hour, 24*time.Hour)

	// cached state
	warn := app.siteState.setupCache(site, source)
	if len(warn) > 0 {
		infoLog.Print("Conflicting menu items:")
		for _, w := range warn {
			infoLog.Print("\t" + w)
		}
	}

	return app
}

// readConfig reads the site configuration from its folder, or from the environment if there is no file.
func readConfig(sitePath string, infoLog *log.Logger) (*Configuration, error) {

	cfg := &Configuration{}
	if err := cleanenv.ReadConfig(filepath.Join(sitePath, "configuration.yml"), cfg); err != nil {

		// no file - go with just environment variables
		infoLog.Print(err.Error())
		cfg = &Configuration{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// initSession returns the session manager.
func initSession(live bool, db *sqlx.DB) *scs.SessionManager {

	sm := scs.New()

	sm.Cookie.Name = "session"
	sm.Lifetime = 30 * 24 * time.Hour // just a preference, no need to expire sooner

	// sessions stored in memory when we have no database
	if db != nil {
		sm.Store = mysqlstore.New(db.DB)
	}

	// secure cookie over HTTPS except in test
	if live {
		sm.Cookie.Secure = true
	}

	return sm
}

// initStores sets up the data stores, and the database if needed, and returns the site record.
func (app *Application) initStores() *models.Site {

	defer app.siteState.updatesSite()()

	// setup stores, with reference to a common transaction
	app.ProjectStore = mysql.NewProjectStore(app.db, &app.tx, app.errorLog)
	app.SiteStore = mysql.NewSiteStore(app.db, &app.tx, app.errorLog)

	// setup new database if needed, and get site record
	s, err := mysql.Setup(app.SiteStore, siteId)
	if err != nil {
		app.errorLog.Fatal(err)
	}
	app.ProjectStore.SiteId = s.Id

	return s
}

// Open database

func openDB(dsn string) (db *sqlx.DB, err error) {

	// Running under Docker, the DB container may not be ready yet - retry for 30s
	nRetries := 30

	for ; nRetries > 0; nRetries-- {
		db, err = sqlx.Open("mysql", dsn)
		if err == nil {
			break
		}
		time.Sleep(1000 * time.Millisecond)
	}

	// test a connection to DB
	for ; nRetries > 0; nRetries-- {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1000 * time.Millisecond)
	}

	if nRetries == 0 {
		return nil, err
	}

	// Close idle connections before MySQL drops them. Otherwise we get an error after idling.
	db.SetConnMaxLifetime(connMaxLifetime * time.Second)

	return db, nil
}
