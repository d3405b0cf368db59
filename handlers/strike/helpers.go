package strike

import (
	"strike-bot/model"

	"github.com/bwmarrin/discordgo"
)

// optionMap indexes an interaction's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// resolveAchievement finds the configured achievement matching a command
// choice value.
func resolveAchievement(serverCfg *model.ServerConfig, value string) *model.Achievement {
	for idx := range serverCfg.Achievements {
		if serverCfg.Achievements[idx].Value == value {
			return &serverCfg.Achievements[idx]
		}
	}
	return nil
}

// targetUser extracts the mentioned user option, or nil when missing.
func targetUser(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) *discordgo.User {
	opt, ok := opts["user"]
	if !ok {
		return nil
	}
	return opt.UserValue(s)
}
