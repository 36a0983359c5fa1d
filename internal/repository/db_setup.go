package repository

import (
	"database/sql"
	"log"
)

func CreateTableIfNotExists(db *sql.DB) {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    last_name VARCHAR(255) NOT NULL,
    first_name VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    label VARCHAR(255) NOT NULL,
    status INT NOT NULL DEFAULT 0,
    assignee_id INT REFERENCES users (id)
);
`

	_, err := db.Exec(query)
	if err != nil {
		log.Fatalf("Error creating tables: %v", err)
	}
}

// SeedUsers inserts reference users when the table is empty. Users have no
// write endpoint, so a fresh database needs them seeded here.
func SeedUsers(db *sql.DB) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		log.Fatalf("Error counting users: %v", err)
	}
	if count > 0 {
		return
	}

	query := `INSERT INTO users (last_name, first_name) VALUES
    ('Martin', 'Sophie'),
    ('Dubois', 'Thomas'),
    ('Bernard', 'Julie')`
	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Error seeding users: %v", err)
	}
}

func DeleteAllTable(db *sql.DB) {
	query := `
    DROP TABLE IF EXISTS tasks;
    DROP TABLE IF EXISTS users;
    `

	_, err := db.Exec(query)
	if err != nil {
		log.Fatalf("Error deleting tables: %v", err)
	}
}
