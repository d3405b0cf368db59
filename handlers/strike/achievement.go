package strike

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"strike-bot/bot"
	"strike-bot/utils"
	strikes_db "strike-bot/utils/database/strikes"
	"strike-bot/workflow"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// dbLedger adapts the strikes database package to the workflow's Ledger.
type dbLedger struct {
	db *sqlx.DB
}

func (l dbLedger) Apply(userID, guildID string, delta float64, reason, moderator string) (float64, error) {
	return strikes_db.ApplyStrikeDelta(l.db, userID, guildID, delta, reason, moderator)
}

// HandleAchievementCommand proposes a strike reduction for a member and runs
// the reaction-gated confirmation. The ledger is only touched if a second
// qualifying moderator approves within the window.
func HandleAchievementCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	cfg := b.GetConfig()
	serverCfg, ok := cfg.ServerConfigs[i.GuildID]
	if !ok {
		utils.SendErrorResponse(s, i, "This server is not configured.")
		return
	}

	opts := optionMap(i)
	target := targetUser(s, i, opts)
	if target == nil {
		utils.SendErrorResponse(s, i, "Usage: /achievement user:@member achievement:<choice> — a member must be mentioned.")
		return
	}
	if target.Bot {
		utils.SendErrorResponse(s, i, "Bots do not have strike records.")
		return
	}

	achievementOpt, ok := opts["achievement"]
	if !ok {
		utils.SendErrorResponse(s, i, "An achievement must be selected.")
		return
	}
	achievement := resolveAchievement(&serverCfg, achievementOpt.StringValue())
	if achievement == nil {
		utils.SendErrorResponse(s, i, "Unknown achievement for this server.")
		return
	}

	gate := newSessionGate(s, i.GuildID, &serverCfg, cfg)
	if !gate.CanInitiate(i.Member.User.ID) {
		utils.SendErrorResponse(s, i, "You do not have permission to propose a strike reduction.")
		return
	}

	record, err := strikes_db.GetStrikeRecord(b.GetDB(), target.ID, i.GuildID)
	if err != nil {
		log.Printf("Error fetching strike record for user %s: %v", target.ID, err)
		utils.SendErrorResponse(s, i, "Failed to load the strike record.")
		return
	}

	reason := fmt.Sprintf("Achievement: %s", achievement.Name)
	intent, err := workflow.NewIntent(target.ID, i.GuildID, reason, -achievement.Reduction, i.Member.User.ID, record.StrikeCount)
	if err != nil {
		if errors.Is(err, workflow.ErrNothingToReduce) {
			utils.SendErrorResponse(s, i, fmt.Sprintf("%s has no strikes to reduce.", target.Username))
			return
		}
		log.Printf("Error creating reduction intent for user %s: %v", target.ID, err)
		utils.SendErrorResponse(s, i, "Failed to propose the reduction.")
		return
	}

	promptEmbed := buildConfirmationEmbed(intent, target, achievement.Name)
	msg, err := utils.SendEmbedResponse(s, i, promptEmbed)
	if err != nil {
		log.Printf("Error sending confirmation prompt: %v", err)
		return
	}

	for _, emoji := range []string{workflow.ApproveEmoji, workflow.CancelEmoji} {
		if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			log.Printf("Error seeding reaction %s on prompt %s: %v", emoji, msg.ID, err)
		}
	}

	confirmation := workflow.New(intent, gate, dbLedger{b.GetDB()}, workflow.Options{
		Timeout:                  time.Duration(serverCfg.ConfirmTimeoutSeconds) * time.Second,
		RequireDistinctConfirmer: serverCfg.RequireDistinctConfirmer,
		BotUserID:                s.State.User.ID,
	})

	reactions := b.Workflows.Register(msg.ID)
	go func() {
		result := confirmation.Run(context.Background(), reactions)
		b.Workflows.Unregister(msg.ID)
		finishConfirmation(s, b, msg, promptEmbed, intent, achievement.Name, result)
	}()
}

// finishConfirmation re-renders the prompt for the terminal state and audits
// a committed reduction. Audit delivery is after-the-fact; its failure never
// affects the ledger.
func finishConfirmation(s *discordgo.Session, b *bot.Bot, msg *discordgo.Message, promptEmbed *discordgo.MessageEmbed, intent *workflow.Intent, achievementName string, result workflow.Result) {
	embed := outcomeEmbed(promptEmbed, result)
	_, err := s.ChannelMessageEditEmbed(msg.ChannelID, msg.ID, embed)
	if err != nil {
		log.Printf("Error updating confirmation prompt %s: %v", msg.ID, err)
	}

	if result.Err != nil {
		log.Printf("Strike reduction %s confirmed but not recorded: %v", intent.ID, result.Err)
		b.GetAudit().RecordError(intent.GuildID, "Achievement", "Reduce",
			fmt.Sprintf("Reduction for <@%s> was confirmed by <@%s> but could not be recorded; the ledger needs manual review.",
				intent.SubjectUserID, result.ConfirmerID))
		return
	}
	if result.State != workflow.StateApproved {
		return
	}

	b.GetAudit().Record(intent.GuildID, "Achievement", "Reduce",
		fmt.Sprintf("<@%s> granted %q to <@%s> (%+g, now %g), confirmed by <@%s>",
			intent.InitiatorID, achievementName, intent.SubjectUserID, intent.Delta, result.NewCount, result.ConfirmerID))
}
