package database

import (
	"context"
	"database/sql"
	"time"
)

// migrations holds the schema statements executed at startup. Every
// statement is idempotent (CREATE TABLE IF NOT EXISTS) and the slice is
// ordered so foreign key targets exist before the tables referencing them.
//
// Deletion behavior lives in the schema: removing a room cascades to its
// damage reports and clears room_id on its assets.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_profiles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username VARCHAR(150) NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		email VARCHAR(254) NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		role VARCHAR(50) NOT NULL DEFAULT 'Pending',
		phone_number VARCHAR(15) NULL,
		reset_code VARCHAR(6) NULL,
		reset_code_expires DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_user_profiles_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		room_number VARCHAR(20) NOT NULL,
		hostel_name VARCHAR(100) NOT NULL,
		floor INT NULL,
		capacity INT NOT NULL DEFAULT 2,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_rooms_room_number (room_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS assets (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(200) NOT NULL,
		asset_type VARCHAR(50) NOT NULL,
		total_quantity INT NOT NULL DEFAULT 1,
		` + "`condition`" + ` VARCHAR(20) NOT NULL DEFAULT 'Good',
		room_id BIGINT UNSIGNED NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_assets_room (room_id),
		CONSTRAINT fk_assets_room FOREIGN KEY (room_id)
			REFERENCES rooms (id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS damage_reports (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		room_id BIGINT UNSIGNED NOT NULL,
		asset_type VARCHAR(50) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'Not Fixed',
		reported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_damage_reports_room (room_id),
		CONSTRAINT fk_damage_reports_room FOREIGN KEY (room_id)
			REFERENCES rooms (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema statements one by one. Each statement runs
// with its own timeout so a wedged DDL cannot hang startup forever.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := db.ExecContext(ctx, stmt)
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}
