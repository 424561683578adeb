package database

import (
	"context"
	"fmt"
)

// Table names are quoted because "user" is reserved in PostgreSQL.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS "user" (
	user_id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE CHECK (username <> ''),
	pw_hash TEXT NOT NULL,
	race TEXT NOT NULL,
	class TEXT NOT NULL,
	gender TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS quest (
	quest_id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL CHECK (title <> '')
);

CREATE TABLE IF NOT EXISTS post (
	post_id INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id INTEGER NOT NULL REFERENCES "user"(user_id),
	quest_id INTEGER NOT NULL REFERENCES quest(quest_id),
	text TEXT NOT NULL CHECK (text <> '')
);

CREATE INDEX IF NOT EXISTS idx_post_quest_id ON post(quest_id);
CREATE INDEX IF NOT EXISTS idx_post_author_id ON post(author_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS "user" (
	user_id SERIAL PRIMARY KEY,
	username VARCHAR(255) NOT NULL UNIQUE CHECK (username <> ''),
	pw_hash VARCHAR(255) NOT NULL,
	race VARCHAR(20) NOT NULL,
	class VARCHAR(20) NOT NULL,
	gender VARCHAR(20) NOT NULL
);

CREATE TABLE IF NOT EXISTS quest (
	quest_id SERIAL PRIMARY KEY,
	title TEXT NOT NULL CHECK (title <> '')
);

CREATE TABLE IF NOT EXISTS post (
	post_id SERIAL PRIMARY KEY,
	author_id INTEGER NOT NULL REFERENCES "user"(user_id),
	quest_id INTEGER NOT NULL REFERENCES quest(quest_id),
	text TEXT NOT NULL CHECK (text <> '')
);

CREATE INDEX IF NOT EXISTS idx_post_quest_id ON post(quest_id);
CREATE INDEX IF NOT EXISTS idx_post_author_id ON post(author_id);
`

// InitSchema creates database tables if they don't exist
func (db *DB) InitSchema(ctx context.Context) error {
	schema := sqliteSchema
	if db.driver == DriverPostgres {
		schema = postgresSchema
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("schema initialized")
	return nil
}
