package db

import "database/sql"

// EnsureSchema creates missing tables. The uniq_live_seat key on bookings is the
// arbiter for concurrent seat purchases: seat_key is 1 while a booking is live
// (active/used) and NULL once terminal, and NULLs never collide in a unique key,
// so cancelled or expired rows release the seat.
func EnsureSchema(dbc *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL DEFAULT '',
	full_name VARCHAR(255) NOT NULL DEFAULT '',
	phone VARCHAR(100) NOT NULL DEFAULT '',
	role VARCHAR(50) NOT NULL DEFAULT 'student',
	is_admin TINYINT(1) NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS routes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	origin VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	price BIGINT NOT NULL,
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_route (origin, destination)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS buses (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	route_id BIGINT NOT NULL,
	bus_number VARCHAR(100) NOT NULL,
	capacity INT NOT NULL DEFAULT 0,
	departure_time VARCHAR(8) NOT NULL,
	arrival_time VARCHAR(8) NOT NULL DEFAULT '',
	days_of_week VARCHAR(32) NOT NULL DEFAULT '',
	is_active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_route (route_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	bus_id BIGINT NOT NULL,
	seat_number INT NOT NULL,
	travel_date DATE NOT NULL,
	amount_paid BIGINT NOT NULL DEFAULT 0,
	payment_reference VARCHAR(100) NOT NULL DEFAULT '',
	payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
	booking_status VARCHAR(20) NOT NULL DEFAULT 'active',
	qr_code_data TEXT,
	expires_at DATETIME NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	seat_key TINYINT AS (IF(booking_status IN ('active','used'), 1, NULL)) STORED,
	UNIQUE KEY uniq_live_seat (bus_id, travel_date, seat_number, seat_key),
	UNIQUE KEY uniq_reference (payment_reference),
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS seat_holds (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	bus_id BIGINT NOT NULL,
	seat_number INT NOT NULL,
	travel_date DATE NOT NULL,
	amount BIGINT NOT NULL DEFAULT 0,
	reference VARCHAR(100) NOT NULL,
	expires_at DATETIME NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_hold_seat (bus_id, travel_date, seat_number),
	UNIQUE KEY uniq_hold_reference (reference)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS notifications (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	message TEXT NOT NULL,
	type VARCHAR(50) NOT NULL DEFAULT 'general',
	user_id BIGINT NULL,
	bus_id BIGINT NULL,
	sent_by BIGINT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS notification_reads (
	notification_id BIGINT NOT NULL,
	user_id BIGINT NOT NULL,
	read_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (notification_id, user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS feedback (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	category VARCHAR(100) NOT NULL DEFAULT 'general',
	message TEXT NOT NULL,
	rating INT NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range stmts {
		if _, err := dbc.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
