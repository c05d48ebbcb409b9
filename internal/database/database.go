package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	dsn := dataSourceName + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite single-writer
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS admins (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'admin',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS clients (
		id TEXT NOT NULL PRIMARY KEY,
		company_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		domain TEXT NOT NULL UNIQUE,
		site_status TEXT NOT NULL DEFAULT 'inactive',
		plan TEXT NOT NULL DEFAULT 'standard',
		created_at TEXT NOT NULL,
		last_update TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS resource_alerts (
		id TEXT NOT NULL PRIMARY KEY,
		client_id TEXT NOT NULL REFERENCES clients(id),
		type TEXT NOT NULL,
		severity TEXT NOT NULL,
		value REAL NOT NULL,
		threshold REAL NOT NULL,
		message TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		acknowledged INTEGER NOT NULL DEFAULT 0,
		metadata_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_resource_alerts_client_time
		ON resource_alerts(client_id, timestamp DESC, acknowledged);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
