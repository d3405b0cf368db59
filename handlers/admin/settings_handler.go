package admin

import (
	"fmt"
	"log"
	"time"

	"strike-bot/bot"
	"strike-bot/utils"
	"strike-bot/utils/database/guilds"
	strikes_db "strike-bot/utils/database/strikes"

	"github.com/bwmarrin/discordgo"
)

// HandleStrikeAdminCommand handles the /strikeadmin subcommands.
func HandleStrikeAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		utils.SendErrorResponse(s, i, "A subcommand is required.")
		return
	}

	switch options[0].Name {
	case "set_log_channel":
		handleSetLogChannel(s, i, b, options[0].Options)
	case "stats":
		handleModeratorStats(s, i, b)
	default:
		utils.SendErrorResponse(s, i, "Unknown subcommand.")
	}
}

func handleSetLogChannel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(options) == 0 {
		utils.SendErrorResponse(s, i, "A channel is required.")
		return
	}
	channel := options[0].ChannelValue(s)
	if channel == nil {
		utils.SendErrorResponse(s, i, "A channel is required.")
		return
	}

	if err := guilds.SetLogChannel(b.GetDB(), i.GuildID, channel.ID); err != nil {
		log.Printf("Error setting log channel for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to save the log channel.")
		return
	}

	utils.SendSimpleResponse(s, i, fmt.Sprintf("✅ Moderation actions will be logged to <#%s>.", channel.ID))
}

func handleModeratorStats(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	since := time.Now().AddDate(0, 0, -30)
	stats, err := strikes_db.GetModeratorActionStats(b.GetDB(), i.GuildID, since)
	if err != nil {
		log.Printf("Error fetching moderator stats for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to load moderator stats.")
		return
	}

	if len(stats) == 0 {
		utils.SendSimpleResponse(s, i, "No strike actions were recorded in the last 30 days.")
		return
	}

	var value string
	for moderator, count := range stats {
		value += fmt.Sprintf("%s — %d actions\n", moderator, count)
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Strike actions, last 30 days",
		Description: value,
		Color:       0x3498db,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if _, err := utils.SendEmbedResponse(s, i, embed); err != nil {
		log.Printf("Error sending moderator stats embed: %v", err)
	}
}
