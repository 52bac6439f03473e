package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"edulibrary/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api    *tgbotapi.BotAPI
	db     storage.Storage
	admins map[int64]bool
	logger *zap.Logger

	// checkMember resolves channel membership for a user. The
	// constructor wires it to the Telegram chat-member lookup; tests
	// substitute their own.
	checkMember func(userID int64) bool

	// Force-subscription target. Exactly one of channelChatID /
	// channelUsername is set when the gate is enabled; both are zero
	// when it is disabled.
	channelChatID   int64
	channelUsername string
	inviteLink      string
}

// User-facing texts outside the menu renderer.
const (
	subscriptionPromptText = "عذراً، يجب عليك الاشتراك في القناة أولاً لاستخدام البوت. 🤖\n\nاضغط على الزر أدناه للاشتراك، ثم اضغط على \"تحقق من الاشتراك\"."
	subscriptionThanksText = "شكراً لانضمامك! مرحباً بك."
	notSubscribedYetText   = "لم تنضم إلى القناة بعد. يرجى الانضمام أولاً."
	joinChannelButtonText  = "📢 الانضمام إلى القناة"
	checkSubscriptionText  = "🔄 تحقق من الاشتراك"
	sessionLostText        = "حدث خطأ ما. يرجى الضغط على /start للبدء من جديد."
	unknownCommandText     = "أمر غير معروف. اضغط على /start للبدء."
	errorText              = "حدث خطأ أثناء معالجة طلبك. يرجى المحاولة مرة أخرى."
)

func fileSavedText(name string) string {
	return "✅ تم حفظ: " + name
}
