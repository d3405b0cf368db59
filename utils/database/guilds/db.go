package guilds

import (
	"database/sql"
	"errors"
	"fmt"

	"strike-bot/model"

	"github.com/jmoiron/sqlx"
)

// Init ensures the guild settings table exists. It shares the bot's main
// database handle.
func Init(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS guild_settings (
	          guild_id TEXT PRIMARY KEY,
	          log_channel_id TEXT NOT NULL DEFAULT ''
	      );`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create guild_settings table: %w", err)
	}
	return nil
}

// GetGuildSettings retrieves the settings for a guild. A guild without stored
// settings yields empty settings, not an error.
func GetGuildSettings(db *sqlx.DB, guildID string) (*model.GuildSettings, error) {
	settings := &model.GuildSettings{GuildID: guildID}
	err := db.Get(settings, "SELECT guild_id, log_channel_id FROM guild_settings WHERE guild_id = ?", guildID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings for guild %s: %w", guildID, err)
	}
	return settings, nil
}

// SetLogChannel stores the audit log channel for a guild.
func SetLogChannel(db *sqlx.DB, guildID, channelID string) error {
	_, err := db.Exec(`INSERT INTO guild_settings (guild_id, log_channel_id) VALUES (?, ?)
			  ON CONFLICT(guild_id) DO UPDATE SET log_channel_id = excluded.log_channel_id`,
		guildID, channelID)
	if err != nil {
		return fmt.Errorf("failed to set log channel for guild %s: %w", guildID, err)
	}
	return nil
}
