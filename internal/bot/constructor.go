package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"edulibrary/internal/config"
	"edulibrary/internal/storage"
)

// NewBot creates a new Telegram bot
func NewBot(cfg *config.Config, db storage.Storage, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot created", zap.String("bot_username", api.Self.UserName))

	b := &Bot{
		api:        api,
		db:         db,
		admins:     make(map[int64]bool),
		logger:     logger,
		inviteLink: cfg.ChannelInviteLink,
	}
	for _, id := range cfg.AdminUserIDs {
		b.admins[id] = true
	}
	b.checkMember = b.queryChannelMember

	// The channel may be given as a numeric chat ID or an @username.
	if cfg.RequiredChannelID != "" {
		if strings.HasPrefix(cfg.RequiredChannelID, "@") {
			b.channelUsername = cfg.RequiredChannelID
		} else {
			chatID, err := strconv.ParseInt(cfg.RequiredChannelID, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid REQUIRED_CHANNEL_ID %q: %w", cfg.RequiredChannelID, err)
			}
			b.channelChatID = chatID
		}
	}

	return b, nil
}

// isAdmin reports whether userID is in the static admin allowlist.
func (b *Bot) isAdmin(userID int64) bool {
	return b.admins[userID]
}
