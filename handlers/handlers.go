package handlers

import (
	"log"

	"strike-bot/bot"
	"strike-bot/handlers/admin"
	"strike-bot/handlers/strike"
	"strike-bot/utils"
	"strike-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"strike": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireModerator(s, i, b) {
				return
			}
			strike.HandleStrikeCommand(s, i, b)
		},
		"achievement": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireModerator(s, i, b) {
				return
			}
			strike.HandleAchievementCommand(s, i, b)
		},
		"strikes": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			strike.HandleStrikesViewCommand(s, i, b)
		},
		"strikeadmin": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			if !requireAdmin(s, i, b) {
				return
			}
			admin.HandleStrikeAdminCommand(s, i, b)
		},
		"botinfo": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			SystemInfoHandler(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
		if b.GetConfig().LogChannelID != "" {
			if err := utils.LogInfo(s, b.GetConfig().LogChannelID, "System", "Startup", "Bot has started successfully."); err != nil {
				log.Printf("Failed to send startup log: %v", err)
			}
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type == discordgo.InteractionApplicationCommand {
			if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
				h(s, i)
			}
		}
	})
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		if r.UserID == s.State.User.ID {
			return
		}
		isBot := r.Member != nil && r.Member.User != nil && r.Member.User.Bot
		b.Workflows.Dispatch(r.MessageID, workflow.Reaction{
			ActorID: r.UserID,
			Emoji:   r.Emoji.Name,
			Bot:     isBot,
		})
	})
}

// requireModerator gates a command behind moderator capability. Commands
// invoked outside a guild are rejected.
func requireModerator(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) bool {
	if i.Member == nil {
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return false
	}
	serverCfg, ok := b.GetConfig().ServerConfigs[i.GuildID]
	if !ok {
		log.Printf("Could not find server config for guild: %s", i.GuildID)
		utils.SendErrorResponse(s, i, "This server is not configured.")
		return false
	}
	cfg := b.GetConfig()
	level := utils.CheckPermission(i.Member.Roles, i.Member.User.ID, serverCfg.AdminRoleIDs, serverCfg.ModeratorRoleIDs, cfg.DeveloperUserIDs, cfg.SuperAdminRoleIDs)
	if !utils.IsModerator(level) {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return false
	}
	return true
}

// requireAdmin gates a command behind admin capability.
func requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) bool {
	if i.Member == nil {
		utils.SendErrorResponse(s, i, "This command can only be used in a server.")
		return false
	}
	serverCfg, ok := b.GetConfig().ServerConfigs[i.GuildID]
	if !ok {
		log.Printf("Could not find server config for guild: %s", i.GuildID)
		utils.SendErrorResponse(s, i, "This server is not configured.")
		return false
	}
	cfg := b.GetConfig()
	level := utils.CheckPermission(i.Member.Roles, i.Member.User.ID, serverCfg.AdminRoleIDs, serverCfg.ModeratorRoleIDs, cfg.DeveloperUserIDs, cfg.SuperAdminRoleIDs)
	if !utils.IsAdmin(level) {
		utils.SendErrorResponse(s, i, "You do not have permission to use this command.")
		return false
	}
	return true
}
