package commands

import (
	"strike-bot/commands/defs"
	"strike-bot/model"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands builds the slash command set for one guild. The
// achievement choices come from the guild's configured achievement list.
func GenerateCommands(serverCfg *model.ServerConfig) []*discordgo.ApplicationCommand {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(serverCfg.Achievements))
	for _, a := range serverCfg.Achievements {
		name := a.Name
		if len(name) > 80 {
			name = name[:80]
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: a.Value,
		})
	}

	achievement := &discordgo.ApplicationCommand{
		Name:        "achievement",
		Description: "Grant an achievement that reduces a member's strikes (needs a second moderator)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The member receiving the achievement",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "achievement",
				Description: "The achievement to grant",
				Required:    true,
				Choices:     choices,
			},
		},
	}

	return []*discordgo.ApplicationCommand{
		defs.Strike,
		achievement,
		defs.Strikes,
		defs.StrikeAdmin,
		defs.BotInfo,
	}
}
