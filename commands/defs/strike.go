package defs

import "github.com/bwmarrin/discordgo"

var Strike = &discordgo.ApplicationCommand{
	Name:        "strike",
	Description: "Record a disciplinary strike against a member",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to strike",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the strike",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionNumber,
			Name:        "severity",
			Description: "Strike weight to apply",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Half strike", Value: 0.5},
				{Name: "Full strike", Value: 1.0},
				{Name: "Double strike", Value: 2.0},
			},
		},
	},
}

var Strikes = &discordgo.ApplicationCommand{
	Name:        "strikes",
	Description: "Show a member's strike record, or the guild's top counts",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The member to look up",
			Required:    false,
		},
	},
}

var BotInfo = &discordgo.ApplicationCommand{
	Name:        "botinfo",
	Description: "Show bot runtime and host information",
}
