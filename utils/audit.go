package utils

import (
	"log"

	"strike-bot/utils/database/guilds"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// AuditLogger relays committed moderation actions to a guild's configured log
// channel. Delivery is fire-and-forget: a committed ledger mutation is never
// blocked or rolled back because the audit message could not be sent.
type AuditLogger struct {
	session           *discordgo.Session
	db                *sqlx.DB
	fallbackChannelID string
}

func NewAuditLogger(session *discordgo.Session, db *sqlx.DB, fallbackChannelID string) *AuditLogger {
	return &AuditLogger{
		session:           session,
		db:                db,
		fallbackChannelID: fallbackChannelID,
	}
}

// Record sends an audit entry for a guild. A guild with no configured log
// channel and no fallback is a silent no-op.
func (a *AuditLogger) Record(guildID, module, operation, summary string) {
	a.send(guildID, Info, module, operation, summary)
}

// RecordError sends an error-level audit entry, used when a confirmed
// mutation could not be recorded and needs manual review.
func (a *AuditLogger) RecordError(guildID, module, operation, summary string) {
	a.send(guildID, Error, module, operation, summary)
}

func (a *AuditLogger) send(guildID string, level LogLevel, module, operation, summary string) {
	go func() {
		channelID := a.fallbackChannelID
		settings, err := guilds.GetGuildSettings(a.db, guildID)
		if err != nil {
			log.Printf("Failed to load settings for guild %s: %v", guildID, err)
		} else if settings.LogChannelID != "" {
			channelID = settings.LogChannelID
		}
		if channelID == "" {
			return
		}
		if err := sendLog(a.session, channelID, level, module, operation, summary); err != nil {
			log.Printf("Failed to send audit log for guild %s: %v", guildID, err)
		}
	}()
}
