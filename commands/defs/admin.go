package defs

import "github.com/bwmarrin/discordgo"

var StrikeAdmin = &discordgo.ApplicationCommand{
	Name:        "strikeadmin",
	Description: "Manage strike bot settings",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set_log_channel",
			Description: "Set the channel moderation actions are logged to",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "The audit log channel",
					Required:    true,
					ChannelTypes: []discordgo.ChannelType{
						discordgo.ChannelTypeGuildText,
					},
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "stats",
			Description: "Show strike actions per moderator for the last 30 days",
		},
	},
}
