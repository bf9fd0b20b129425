package mydb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	driverName  = "postgres"
	pingTimeout = 5 * time.Second
)

// Open connects to PostgreSQL and verifies the connection before returning it.
func Open(c context.Context, dsn string) (*sql.DB, func(), error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("database dsn not configured")
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(c, pingTimeout)
	defer cancel()
	err = db.PingContext(pingCtx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return db, func() {
		db.Close()
	}, nil
}
