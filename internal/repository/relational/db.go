// Package relational implements the repositories on top of gorm. Postgres is
// the production target; sqlite serves local runs and tests.
package relational

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/glebarez/sqlite"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alcyxob/run-trainer/internal/repository"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured SQL backend and migrates the schema.
func Open(driver, dsn string, log *logrus.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil && (strings.Contains(err.Error(), "does not exist") || strings.Contains(err.Error(), "3D000")) {
			log.Info("target database does not exist, creating it")
			if e := ensureDatabaseExists(dsn); e != nil {
				return nil, fmt.Errorf("create database: %w", e)
			}
			db, err = gorm.Open(postgres.Open(dsn), gormCfg)
		}
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the tables used by the repositories.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &planModel{}, &workoutModel{}, &runModel{})
}

// ensureDatabaseExists connects to the maintenance database and creates the
// target database when missing. The DSN must be in URL form.
func ensureDatabaseExists(dsn string) error {
	u, err := url.Parse(dsn)
	if err != nil {
		return err
	}
	dbname := strings.TrimSpace(strings.TrimPrefix(u.Path, "/"))
	if dbname == "" || dbname == "postgres" {
		return nil
	}
	u.Path = "/postgres"

	admin, err := sql.Open("pgx", u.String())
	if err != nil {
		return err
	}
	defer admin.Close()

	err = admin.QueryRow("SELECT 1 FROM pg_database WHERE datname = $1", dbname).Scan(new(int))
	if errors.Is(err, sql.ErrNoRows) {
		_, err = admin.Exec(`CREATE DATABASE "` + strings.ReplaceAll(dbname, `"`, `""`) + `"`)
	}
	return err
}

type pinger struct {
	db *gorm.DB
}

// NewPinger wraps the gorm handle for readiness checks.
func NewPinger(db *gorm.DB) repository.Pinger {
	return &pinger{db: db}
}

func (p *pinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translate maps gorm errors onto repository errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(strings.ToLower(err.Error()), "unique constraint"),
		strings.Contains(strings.ToLower(err.Error()), "duplicate key"):
		return repository.ErrDuplicate
	}
	return err
}
