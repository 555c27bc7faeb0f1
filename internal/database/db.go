package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the SQLite database at path and
// applies the pragmas the service depends on: foreign key enforcement for
// the cascade rules, WAL for concurrent readers during writes, and a busy
// timeout so interleaved statements wait instead of failing immediately.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	// pragmas go in the DSN so every pooled connection gets them, not
	// just the one an Exec happens to run on
	dsn := "file:" + path +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const schemaSQL = `
-- Visitors, keyed by opaque session token
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,                 -- uuid
  session_id TEXT NOT NULL UNIQUE,     -- opaque client-held token
  created_at INTEGER NOT NULL,         -- unix milliseconds
  updated_at INTEGER NOT NULL
);

-- Local mirror of catalog movie records
CREATE TABLE IF NOT EXISTS movies (
  id INTEGER PRIMARY KEY,              -- catalog-assigned id
  title TEXT NOT NULL,
  overview TEXT,
  poster_path TEXT,
  release_date TEXT,                   -- YYYY-MM-DD
  vote_average REAL,
  vote_count INTEGER,
  genres TEXT,                         -- JSON array of {id, name}
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

-- Reaction edges; absence of a row is the neutral state
CREATE TABLE IF NOT EXISTS likes (
  id TEXT PRIMARY KEY,                 -- uuid
  user_id TEXT NOT NULL,
  movie_id INTEGER NOT NULL,
  is_liked INTEGER NOT NULL DEFAULT 1, -- 1 like, 0 dislike
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL,
  FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
  FOREIGN KEY (movie_id) REFERENCES movies(id) ON DELETE CASCADE,
  UNIQUE(user_id, movie_id)
);

CREATE INDEX IF NOT EXISTS idx_likes_user_id ON likes(user_id);
CREATE INDEX IF NOT EXISTS idx_likes_movie_id ON likes(movie_id);
CREATE INDEX IF NOT EXISTS idx_likes_user_movie ON likes(user_id, movie_id);
CREATE INDEX IF NOT EXISTS idx_movies_title ON movies(title);
CREATE INDEX IF NOT EXISTS idx_users_session ON users(session_id);
`

// InitSchema creates the three tables and their indexes.  Every statement
// is idempotent so the function is safe to run on every startup.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
