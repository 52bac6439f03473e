package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"edulibrary/internal/menu"
)

// isMember checks the user's membership in the required channel. The
// gate passes everyone when no channel is configured and otherwise
// fails closed: check failures count as "not a member".
func (b *Bot) isMember(userID int64) bool {
	if b.channelChatID == 0 && b.channelUsername == "" {
		return true
	}
	if b.checkMember == nil {
		return false
	}
	return b.checkMember(userID)
}

// queryChannelMember asks Telegram for the user's status in the
// required channel.
func (b *Bot) queryChannelMember(userID int64) bool {
	member, err := b.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID:             b.channelChatID,
			SuperGroupUsername: b.channelUsername,
			UserID:             userID,
		},
	})
	if err != nil {
		b.logger.Error("Membership check failed",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return false
	}

	switch member.Status {
	case "member", "administrator", "creator":
		return true
	}
	return false
}

// sendSubscriptionPrompt shows the join-the-channel message. When
// messageID is non-zero the existing menu message is edited in place;
// edit failures fall back to sending a fresh message.
func (b *Bot) sendSubscriptionPrompt(chatID int64, messageID int) {
	if b.api == nil {
		return // For testing
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	if b.inviteLink != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(joinChannelButtonText, b.inviteLink),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(checkSubscriptionText, menu.TokenCheckSubscription),
	))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(rows...)

	if messageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, subscriptionPromptText, keyboard)
		if _, err := b.api.Send(edit); err == nil {
			return
		}
	}

	msg := tgbotapi.NewMessage(chatID, subscriptionPromptText)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send subscription message", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
