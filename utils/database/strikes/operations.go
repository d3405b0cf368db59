package strikes

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"strike-bot/model"

	"github.com/jmoiron/sqlx"
)

// GetStrikeRecord retrieves the strike record for a user in a guild, with its
// full history in chronological order. A member without a record yields a
// zero-count record with empty history, not an error.
func GetStrikeRecord(db *sqlx.DB, userID, guildID string) (*model.StrikeRecord, error) {
	record := &model.StrikeRecord{UserID: userID, GuildID: guildID}

	err := db.Get(record, "SELECT user_id, guild_id, strike_count FROM strikes WHERE user_id = ? AND guild_id = ?", userID, guildID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get strike record for user %s in guild %s: %w", userID, guildID, err)
	}

	err = db.Select(&record.History,
		"SELECT id, user_id, guild_id, reason, delta, moderator, timestamp FROM strike_history WHERE user_id = ? AND guild_id = ? ORDER BY id ASC",
		userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get strike history for user %s in guild %s: %w", userID, guildID, err)
	}

	return record, nil
}

// ApplyStrikeDelta applies a signed delta to a member's strike count in a
// single transaction: read the current count, clamp the projection at zero,
// upsert the count and append a history entry recording the effective delta.
// Returns the new count.
func ApplyStrikeDelta(db *sqlx.DB, userID, guildID string, delta float64, reason, moderator string) (float64, error) {
	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin strike transaction: %w", err)
	}
	defer tx.Rollback()

	var current float64
	err = tx.Get(&current, "SELECT strike_count FROM strikes WHERE user_id = ? AND guild_id = ?", userID, guildID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to read strike count for user %s in guild %s: %w", userID, guildID, err)
	}

	projected := current + delta
	if projected < 0 {
		projected = 0
	}
	effective := projected - current

	_, err = tx.Exec(`INSERT INTO strikes (user_id, guild_id, strike_count) VALUES (?, ?, ?)
			  ON CONFLICT(user_id, guild_id) DO UPDATE SET strike_count = excluded.strike_count`,
		userID, guildID, projected)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert strike count for user %s in guild %s: %w", userID, guildID, err)
	}

	_, err = tx.Exec(`INSERT INTO strike_history (user_id, guild_id, reason, delta, moderator, timestamp)
			  VALUES (?, ?, ?, ?, ?, ?)`,
		userID, guildID, reason, effective, moderator, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to insert strike history for user %s in guild %s: %w", userID, guildID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit strike transaction: %w", err)
	}

	return projected, nil
}

// GetTopStrikeCounts retrieves the members with the highest strike counts in a
// guild, ordered descending.
func GetTopStrikeCounts(db *sqlx.DB, guildID string, limit int) ([]model.StrikeRecord, error) {
	var records []model.StrikeRecord
	query := "SELECT user_id, guild_id, strike_count FROM strikes WHERE guild_id = ? AND strike_count > 0 ORDER BY strike_count DESC LIMIT ?"
	if err := db.Select(&records, query, guildID, limit); err != nil {
		return nil, fmt.Errorf("failed to get top strike counts for guild %s: %w", guildID, err)
	}
	return records, nil
}

// GetModeratorActionStats retrieves the number of recorded strike actions per
// moderator label in a guild since the given time.
func GetModeratorActionStats(db *sqlx.DB, guildID string, since time.Time) (map[string]int, error) {
	rows, err := db.Query(`SELECT moderator, COUNT(*) as count FROM strike_history
			  WHERE guild_id = ? AND timestamp >= ? GROUP BY moderator ORDER BY count DESC`,
		guildID, since.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get moderator action stats for guild %s: %w", guildID, err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var moderator string
		var count int
		if err := rows.Scan(&moderator, &count); err != nil {
			return nil, fmt.Errorf("failed to scan moderator action stats row: %w", err)
		}
		stats[moderator] = count
	}
	return stats, rows.Err()
}
