package strikes

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the strike database and ensures all necessary tables exist.
// Transactions are opened immediate so that two concurrent applies for the
// same member serialize at the storage layer instead of losing an update;
// the busy timeout makes the second writer wait rather than fail.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath+"?_txlock=immediate&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	strikesSchema := `CREATE TABLE IF NOT EXISTS strikes (
	          user_id TEXT NOT NULL,
	          guild_id TEXT NOT NULL,
	          strike_count REAL NOT NULL DEFAULT 0,
	          UNIQUE(user_id, guild_id)
	      );`
	if _, err := db.Exec(strikesSchema); err != nil {
		return nil, fmt.Errorf("failed to create strikes table: %w", err)
	}

	historySchema := `CREATE TABLE IF NOT EXISTS strike_history (
	          id INTEGER PRIMARY KEY AUTOINCREMENT,
	          user_id TEXT NOT NULL,
	          guild_id TEXT NOT NULL,
	          reason TEXT NOT NULL,
	          delta REAL NOT NULL,
	          moderator TEXT NOT NULL,
	          timestamp INTEGER NOT NULL
	      );`
	if _, err := db.Exec(historySchema); err != nil {
		return nil, fmt.Errorf("failed to create strike_history table: %w", err)
	}

	indexSchema := `CREATE INDEX IF NOT EXISTS idx_strike_history_member
	          ON strike_history (guild_id, user_id);`
	if _, err := db.Exec(indexSchema); err != nil {
		return nil, fmt.Errorf("failed to create strike_history index: %w", err)
	}

	return db, nil
}
