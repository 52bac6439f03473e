package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"edulibrary/internal/menu"
	"edulibrary/internal/models"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.send(tgbotapi.NewMessage(message.Chat.ID, errorText))
		}
	}()

	ctx := context.Background()

	if message.Document != nil {
		b.handleDocument(ctx, message)
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.handleStart(ctx, message)
		default:
			b.send(tgbotapi.NewMessage(message.Chat.ID, unknownCommandText))
		}
	}
}

// handleStart resets the user to the root menu, gated on membership.
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if !b.isMember(userID) {
		b.sendSubscriptionPrompt(chatID, 0)
		return
	}

	b.logger.Info("User started the bot", zap.Int64("user_id", userID))

	session := models.Session{Path: menu.Root}
	if err := b.db.SaveSession(ctx, userID, session); err != nil {
		b.logger.Error("Failed to save session", zap.Error(err), zap.Int64("user_id", userID))
	}
	b.updateMenu(ctx, chatID, userID)
}

// handleDocument stores an uploaded file when an admin is in bulk
// upload mode; everything else is ignored.
func (b *Bot) handleDocument(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	session, err := b.db.GetSession(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to load session", zap.Error(err), zap.Int64("user_id", userID))
		return
	}
	if session == nil {
		return
	}

	basePath, ok := menu.AcceptsUpload(*session, b.isAdmin(userID))
	if !ok {
		return
	}

	record := models.FileRecord{
		FileID:   message.Document.FileID,
		FileName: message.Document.FileName,
	}
	if err := b.db.AppendFile(ctx, basePath, record); err != nil {
		b.logger.Error("Failed to store uploaded file",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("path", basePath),
		)
		return
	}

	confirm := tgbotapi.NewMessage(message.Chat.ID, fileSavedText(record.FileName))
	confirm.DisableNotification = true
	b.send(confirm)

	b.logger.Info("Admin uploaded file",
		zap.Int64("user_id", userID),
		zap.String("file_name", record.FileName),
		zap.String("path", basePath),
	)
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	ctx := context.Background()
	userID := query.From.ID
	chatID := query.Message.Chat.ID
	data := query.Data

	isMember := b.isMember(userID)

	// The verification-retry token is the only action evaluated for an
	// unverified user.
	if data == menu.TokenCheckSubscription {
		if !isMember {
			b.answerCallback(query.ID, notSubscribedYetText, true)
			return
		}
		b.answerCallback(query.ID, subscriptionThanksText, false)
		session := models.Session{Path: menu.Root, MessageID: query.Message.MessageID}
		if err := b.db.SaveSession(ctx, userID, session); err != nil {
			b.logger.Error("Failed to save session", zap.Error(err), zap.Int64("user_id", userID))
		}
		b.updateMenu(ctx, chatID, userID)
		return
	}

	if !isMember {
		b.answerCallback(query.ID, "", false)
		b.sendSubscriptionPrompt(chatID, query.Message.MessageID)
		return
	}

	session, err := b.db.GetSession(ctx, userID)
	if err != nil {
		b.logger.Error("Failed to load session", zap.Error(err), zap.Int64("user_id", userID))
		session = nil
	}
	if session == nil {
		b.answerCallback(query.ID, "", false)
		b.send(tgbotapi.NewMessage(chatID, sessionLostText))
		return
	}

	basePath := menu.ParsePath(session.Path).Base()
	files, err := b.db.GetFiles(ctx, basePath)
	if err != nil {
		b.logger.Error("Failed to load catalog", zap.Error(err), zap.String("path", basePath))
	}

	result := menu.Transition(*session, data, b.isAdmin(userID), files)

	b.logger.Info("Button pressed",
		zap.Int64("user_id", userID),
		zap.String("data", data),
		zap.String("from_path", session.Path),
		zap.String("to_path", result.Session.Path),
	)

	answered := false
	for _, effect := range result.Effects {
		switch effect.Kind {
		case menu.EffectSendFile:
			doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(effect.FileID))
			b.send(doc)
		case menu.EffectDeleteFiles:
			if _, err := b.db.RemoveFiles(ctx, basePath, effect.Indices); err != nil {
				b.logger.Error("Failed to delete files",
					zap.Error(err),
					zap.String("path", basePath),
					zap.Ints("indices", effect.Indices),
				)
			}
		case menu.EffectToast:
			b.answerCallback(query.ID, effect.Text, effect.Alert)
			answered = true
		case menu.EffectMessage:
			b.send(tgbotapi.NewMessage(chatID, effect.Text))
		}
	}
	if !answered {
		b.answerCallback(query.ID, "", false)
	}

	if err := b.db.SaveSession(ctx, userID, result.Session); err != nil {
		b.logger.Error("Failed to save session", zap.Error(err), zap.Int64("user_id", userID))
	}

	if result.Rerender {
		b.updateMenu(ctx, chatID, userID)
	}
}
