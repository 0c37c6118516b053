package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		subject     TEXT NOT NULL,
		name        TEXT,
		email       TEXT,
		phone       TEXT,
		department  TEXT,
		role        TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_subject ON users(subject);`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id              TEXT PRIMARY KEY,
		license_plate   TEXT NOT NULL,
		owner_name      TEXT NOT NULL,
		owner_email     TEXT NOT NULL,
		owner_phone     TEXT NOT NULL,
		model           TEXT NOT NULL,
		color           TEXT NOT NULL,
		status          TEXT NOT NULL,
		registered_by   TEXT REFERENCES users(id),
		notes           TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_vehicles_license_plate ON vehicles(license_plate);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles(status);`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_owner_email ON vehicles(owner_email);`,
	`CREATE TABLE IF NOT EXISTS parking_sessions (
		id              TEXT PRIMARY KEY,
		vehicle_id      TEXT NOT NULL REFERENCES vehicles(id),
		license_plate   TEXT NOT NULL,
		entry_time      TIMESTAMPTZ NOT NULL,
		exit_time       TIMESTAMPTZ,
		status          TEXT NOT NULL,
		location        TEXT NOT NULL,
		staff_id        TEXT REFERENCES users(id),
		notes           TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_parking_sessions_license_plate ON parking_sessions(license_plate);`,
	`CREATE INDEX IF NOT EXISTS idx_parking_sessions_status ON parking_sessions(status);`,
	`CREATE TABLE IF NOT EXISTS violations (
		id              TEXT PRIMARY KEY,
		vehicle_id      TEXT REFERENCES vehicles(id),
		license_plate   TEXT NOT NULL,
		violation_type  TEXT NOT NULL,
		description     TEXT NOT NULL,
		location        TEXT NOT NULL,
		reported_by     TEXT REFERENCES users(id),
		resolved        BOOLEAN NOT NULL DEFAULT false,
		resolved_by     TEXT REFERENCES users(id),
		resolved_at     TIMESTAMPTZ,
		evidence        JSONB,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_violations_resolved ON violations(resolved);`,
	`CREATE INDEX IF NOT EXISTS idx_violations_license_plate ON violations(license_plate);`,
}

// RunMigrations applies the schema and, when adminEmail is set, promotes
// that user to admin so a fresh database has one privileged account.
func RunMigrations(db *gorm.DB, adminEmail string) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	if adminEmail != "" {
		if err := db.Exec(`UPDATE users SET role = 'admin' WHERE email = ?`, adminEmail).Error; err != nil {
			return fmt.Errorf("bootstrap admin failed: %w", err)
		}
	}
	return nil
}
