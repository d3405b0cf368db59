package strike

import (
	"log"

	"strike-bot/model"
	"strike-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// sessionGate backs the confirmation workflow's authorization checks with a
// live member lookup, so a role change mid-confirmation is honored.
type sessionGate struct {
	session           *discordgo.Session
	guildID           string
	serverCfg         *model.ServerConfig
	developerUserIDs  []string
	superAdminRoleIDs []string
}

func newSessionGate(session *discordgo.Session, guildID string, serverCfg *model.ServerConfig, cfg *model.Config) *sessionGate {
	return &sessionGate{
		session:           session,
		guildID:           guildID,
		serverCfg:         serverCfg,
		developerUserIDs:  cfg.DeveloperUserIDs,
		superAdminRoleIDs: cfg.SuperAdminRoleIDs,
	}
}

func (g *sessionGate) check(actorID string) bool {
	member, err := g.session.GuildMember(g.guildID, actorID)
	if err != nil {
		log.Printf("Could not fetch member %s in guild %s: %v", actorID, g.guildID, err)
		return false
	}
	level := utils.CheckPermission(member.Roles, actorID, g.serverCfg.AdminRoleIDs, g.serverCfg.ModeratorRoleIDs, g.developerUserIDs, g.superAdminRoleIDs)
	return utils.IsModerator(level)
}

func (g *sessionGate) CanInitiate(actorID string) bool {
	return g.check(actorID)
}

func (g *sessionGate) CanConfirm(actorID string) bool {
	return g.check(actorID)
}
