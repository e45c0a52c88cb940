package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime is not needed: timestamps are persisted as RFC 3339 strings.
	// clientFoundRows=true -> UPDATE reports matched rows, not changed rows,
	// so a no-op update on an owned record is still distinguishable from "not found".
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&clientFoundRows=true",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema contains the idempotent DDL executed at startup.  The UNIQUE KEY on
// users.email makes the storage layer the single authority on duplicate
// emails: a concurrent signup race resolves as a 1062 duplicate-key error
// instead of two inserts slipping past an application-level pre-check.
// utf8mb4_bin collation keeps email matching byte-exact (no case folding).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                 CHAR(36)     NOT NULL,
		email              VARCHAR(255) NOT NULL,
		name               VARCHAR(255) NOT NULL,
		hashed_password    VARCHAR(100) NOT NULL,
		is_verified        TINYINT(1)   NOT NULL DEFAULT 0,
		verification_token VARCHAR(64)  NULL,
		created_at         VARCHAR(40)  NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
	`CREATE TABLE IF NOT EXISTS media_items (
		id         CHAR(36)     NOT NULL,
		user_id    CHAR(36)     NOT NULL,
		title      VARCHAR(512) NOT NULL,
		` + "`type`" + `     VARCHAR(64)  NOT NULL,
		status     VARCHAR(32)  NOT NULL DEFAULT 'plan',
		` + "`current`" + `  INT          NOT NULL DEFAULT 0,
		total      INT          NOT NULL DEFAULT 0,
		created_at VARCHAR(40)  NOT NULL,
		updated_at VARCHAR(40)  NOT NULL,
		PRIMARY KEY (id),
		KEY idx_media_items_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
