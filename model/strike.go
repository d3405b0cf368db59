package model

// StrikeRecord tracks the disciplinary strikes of one member in one guild.
// The pair (user_id, guild_id) is unique; a missing row means zero strikes.
// Counts are fractional on purpose: half strikes are a valid sanction.
type StrikeRecord struct {
	UserID      string  `db:"user_id"`
	GuildID     string  `db:"guild_id"`
	StrikeCount float64 `db:"strike_count"`
	History     []StrikeHistoryEntry
}

// StrikeHistoryEntry is one append-only ledger line. Delta is the effective
// delta that was applied, which may be smaller in magnitude than the delta a
// moderator asked for when the count was clamped at zero.
type StrikeHistoryEntry struct {
	ID        int64   `db:"id"`
	UserID    string  `db:"user_id"`
	GuildID   string  `db:"guild_id"`
	Reason    string  `db:"reason"`
	Delta     float64 `db:"delta"`
	Moderator string  `db:"moderator"`
	Timestamp int64   `db:"timestamp"`
}

// GuildSettings holds the per-guild bot settings stored in the database.
type GuildSettings struct {
	GuildID      string `db:"guild_id"`
	LogChannelID string `db:"log_channel_id"`
}
