package strike

import (
	"fmt"
	"log"

	"strike-bot/bot"
	"strike-bot/utils"
	strikes_db "strike-bot/utils/database/strikes"

	"github.com/bwmarrin/discordgo"
)

// HandleStrikeCommand records a strike against a member. Additions are
// applied directly; only reductions go through the confirmation workflow.
func HandleStrikeCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	target := targetUser(s, i, opts)
	if target == nil {
		utils.SendErrorResponse(s, i, "Usage: /strike user:@member reason:<text> — a member must be mentioned.")
		return
	}
	if target.Bot {
		utils.SendErrorResponse(s, i, "Bots cannot receive strikes.")
		return
	}

	reasonOpt, ok := opts["reason"]
	if !ok {
		utils.SendErrorResponse(s, i, "A reason is required.")
		return
	}
	reason := reasonOpt.StringValue()

	severity := 1.0
	if opt, ok := opts["severity"]; ok {
		severity = opt.FloatValue()
	}

	newCount, err := strikes_db.ApplyStrikeDelta(b.GetDB(), target.ID, i.GuildID, severity, reason, i.Member.User.ID)
	if err != nil {
		log.Printf("Error applying strike for user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to record the strike.")
		return
	}

	record, err := strikes_db.GetStrikeRecord(b.GetDB(), target.ID, i.GuildID)
	if err != nil {
		log.Printf("Error fetching strike record for user %s: %v", target.ID, err)
		utils.SendSimpleResponse(s, i, fmt.Sprintf("Strike recorded. %s now has %g strikes.", target.Username, newCount))
		return
	}

	if _, err := utils.SendEmbedResponse(s, i, buildStrikeRecordEmbed(record, target)); err != nil {
		log.Printf("Error sending strike embed: %v", err)
	}

	b.GetAudit().Record(i.GuildID, "Strike", "Add",
		fmt.Sprintf("<@%s> struck <@%s> (+%g, now %g): %s", i.Member.User.ID, target.ID, severity, newCount, reason))
}

// HandleStrikesViewCommand shows a member's record, or the guild's top
// strike counts when no member is given.
func HandleStrikesViewCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	target := targetUser(s, i, opts)

	if target == nil {
		records, err := strikes_db.GetTopStrikeCounts(b.GetDB(), i.GuildID, 10)
		if err != nil {
			log.Printf("Error fetching top strike counts for guild %s: %v", i.GuildID, err)
			utils.SendErrorResponse(s, i, "Failed to load strike counts.")
			return
		}
		if _, err := utils.SendEmbedResponse(s, i, buildTopStrikesEmbed(records)); err != nil {
			log.Printf("Error sending top strikes embed: %v", err)
		}
		return
	}

	record, err := strikes_db.GetStrikeRecord(b.GetDB(), target.ID, i.GuildID)
	if err != nil {
		log.Printf("Error fetching strike record for user %s: %v", target.ID, err)
		utils.SendErrorResponse(s, i, "Failed to load the strike record.")
		return
	}
	if _, err := utils.SendEmbedResponse(s, i, buildStrikeRecordEmbed(record, target)); err != nil {
		log.Printf("Error sending strike embed: %v", err)
	}
}
