package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"edulibrary/internal/menu"
	"edulibrary/internal/models"
)

// updateMenu renders the user's current menu and delivers it: edit the
// previous menu message in place when one exists, otherwise (or when the
// edit fails) delete the stale message and send a fresh one, remembering
// the new message ID.
func (b *Bot) updateMenu(ctx context.Context, chatID, userID int64) {
	session, err := b.db.GetSession(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to load session for render", zap.Error(err), zap.Int64("user_id", userID))
		return
	}
	if session == nil {
		session = &models.Session{Path: menu.Root}
	}

	p := menu.ParsePath(session.Path)
	files, err := b.db.GetFiles(ctx, p.Base())
	if err != nil {
		b.logger.Error("Failed to load catalog for render", zap.Error(err), zap.String("path", p.Base()))
	}

	view := menu.Render(p, b.isAdmin(userID), files, session.PendingDeletions)
	keyboard := toInlineKeyboard(view.Keyboard)

	if b.api == nil {
		return // For testing
	}

	if session.MessageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, session.MessageID, view.Text, keyboard)
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(edit); err == nil {
			return
		}
		// Stale or unchanged message: replace it with a fresh one.
		b.api.Request(tgbotapi.NewDeleteMessage(chatID, session.MessageID))
	}

	msg := tgbotapi.NewMessage(chatID, view.Text)
	msg.ReplyMarkup = keyboard
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := b.api.Send(msg)
	if err != nil {
		b.logger.Error("Failed to send menu message", zap.Error(err), zap.Int64("chat_id", chatID))
		return
	}

	session.MessageID = sent.MessageID
	if err := b.db.SaveSession(ctx, userID, *session); err != nil {
		b.logger.Error("Failed to save session after send", zap.Error(err), zap.Int64("user_id", userID))
	}
}

// toInlineKeyboard converts the renderer's neutral button grid to the
// Telegram markup type.
func toInlineKeyboard(grid [][]menu.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(grid))
	for _, row := range grid {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// send delivers a message-like config, logging failures instead of
// propagating them.
func (b *Bot) send(c tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}

// answerCallback answers a callback query, optionally with a notice.
func (b *Bot) answerCallback(id, text string, alert bool) {
	if b.api == nil {
		return // For testing
	}
	callback := tgbotapi.NewCallback(id, text)
	callback.ShowAlert = alert
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("Failed to answer callback query", zap.Error(err))
	}
}
