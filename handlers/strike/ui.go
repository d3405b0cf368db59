package strike

import (
	"fmt"
	"time"

	"strike-bot/model"
	"strike-bot/workflow"

	"github.com/bwmarrin/discordgo"
)

func formatCount(count float64) string {
	return fmt.Sprintf("%g", count)
}

// buildConfirmationEmbed renders the prompt for a pending strike reduction:
// current count, projected count and the signed delta, with instructions for
// a second moderator.
func buildConfirmationEmbed(intent *workflow.Intent, targetUser *discordgo.User, achievementName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Achievement pending confirmation",
		Description: fmt.Sprintf("A moderator must react with %s to confirm or %s to cancel.", workflow.ApproveEmoji, workflow.CancelEmoji),
		Color:       0xf1c40f, // Yellow while pending
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: targetUser.Mention()},
			{Name: "Achievement", Value: achievementName},
			{Name: "Strike change", Value: formatCount(intent.Delta), Inline: true},
			{Name: "Current strikes", Value: formatCount(intent.CurrentCount), Inline: true},
			{Name: "Projected strikes", Value: formatCount(intent.ProjectedCount), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Proposed by %s", intent.InitiatorID),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// outcomeEmbed re-renders the prompt for a terminal state. Every outcome is
// rendered, including expiry, so a stale prompt never looks actionable.
func outcomeEmbed(base *discordgo.MessageEmbed, result workflow.Result) *discordgo.MessageEmbed {
	embed := *base
	switch {
	case result.Err != nil:
		embed.Color = 0xe74c3c // Red
		embed.Description = "⚠️ Confirmed, but recording the change failed. The ledger may need manual review."
	case result.State == workflow.StateApproved:
		embed.Color = 0x2ecc71 // Green
		embed.Description = fmt.Sprintf("✅ Confirmed by <@%s>. New strike count: %s.", result.ConfirmerID, formatCount(result.NewCount))
	case result.State == workflow.StateCancelled:
		embed.Color = 0x95a5a6 // Grey
		embed.Description = fmt.Sprintf("❌ Cancelled by <@%s>. No strikes were changed.", result.ConfirmerID)
	case result.State == workflow.StateExpired:
		embed.Color = 0x95a5a6
		embed.Description = "⏲️ Confirmation timed out. No strikes were changed."
	}
	return &embed
}

// buildStrikeRecordEmbed renders a member's strike count and history.
func buildStrikeRecordEmbed(record *model.StrikeRecord, targetUser *discordgo.User) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Strike record for %s", targetUser.Username),
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: targetUser.AvatarURL(""),
		},
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member", Value: targetUser.Mention()},
			{Name: "Strikes", Value: formatCount(record.StrikeCount)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(record.History) > 0 {
		var historyValue string
		entries := record.History
		if len(entries) > 10 {
			entries = entries[len(entries)-10:]
		}
		for _, entry := range entries {
			historyValue += fmt.Sprintf("<t:%d:d> %+g — %s (by %s)\n", entry.Timestamp, entry.Delta, entry.Reason, entry.Moderator)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "History",
			Value: historyValue,
		})
	}

	return embed
}

// buildTopStrikesEmbed renders the guild's highest strike counts.
func buildTopStrikesEmbed(records []model.StrikeRecord) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     "Members with active strikes",
		Color:     0x3498db,
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if len(records) == 0 {
		embed.Description = "No member currently has strikes. 🎉"
		return embed
	}
	var value string
	for idx, record := range records {
		value += fmt.Sprintf("%d. <@%s> — %s\n", idx+1, record.UserID, formatCount(record.StrikeCount))
	}
	embed.Description = value
	return embed
}
