package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edulibrary/internal/models"
	"edulibrary/internal/storage/stubs"
)

// Note: We can't easily mock tgbotapi.BotAPI, so tests focus on
// dispatch and storage effects without actually talking to Telegram.

const (
	adminID  = int64(1)
	memberID = int64(2)
	chatID   = int64(456)
)

func newTestBot(db *stubs.MockDB) *Bot {
	return &Bot{
		api:    nil, // Not needed for internal logic tests
		db:     db,
		admins: map[int64]bool{adminID: true},
		logger: zap.NewNop(),
	}
}

func message(userID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	if text == "/start" {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	}
	return msg
}

func callback(userID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:   "query-id",
		From: &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{
			MessageID: 10,
			Chat:      &tgbotapi.Chat{ID: chatID},
		},
		Data: data,
	}
}

func TestBot_StartCreatesRootSession(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)

	bot.handleMessage(message(memberID, "/start"))

	session, err := db.GetSession(context.Background(), memberID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "initial", session.Path)
	assert.Nil(t, session.PendingDeletions)
}

func TestBot_CallbackNavigation(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)
	ctx := context.Background()

	require.NoError(t, db.SaveSession(ctx, memberID, models.Session{Path: "initial:chapter1"}))

	bot.handleCallbackQuery(callback(memberID, "grade7"))

	session, err := db.GetSession(ctx, memberID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "initial:chapter1:grade7", session.Path)
}

func TestBot_CallbackWithoutSession(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)

	bot.handleCallbackQuery(callback(memberID, "grade7"))

	// The user is told to restart; no session is created.
	session, err := db.GetSession(context.Background(), memberID)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestBot_CheckSubscriptionResetsToRoot(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newGatedBot(db, true)
	ctx := context.Background()

	require.NoError(t, db.SaveSession(ctx, memberID, models.Session{Path: "initial:chapter1:grade7"}))

	bot.handleCallbackQuery(callback(memberID, "check_subscription"))

	session, err := db.GetSession(ctx, memberID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "initial", session.Path)
	// The pressed message is reused for the in-place render.
	assert.Equal(t, 10, session.MessageID)
}

// newGatedBot configures a required channel with a fixed membership
// answer.
func newGatedBot(db *stubs.MockDB, member bool) *Bot {
	bot := newTestBot(db)
	bot.channelUsername = "@edulibrary_channel"
	bot.checkMember = func(int64) bool { return member }
	return bot
}

func TestBot_NonMemberIsBlocked(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newGatedBot(db, false)
	ctx := context.Background()

	saved := models.Session{Path: "initial:chapter1"}
	require.NoError(t, db.SaveSession(ctx, memberID, saved))

	bot.handleMessage(message(memberID, "/start"))
	bot.handleCallbackQuery(callback(memberID, "grade7"))
	bot.handleCallbackQuery(callback(memberID, "check_subscription"))

	// Nothing moves until the user actually joins.
	session, err := db.GetSession(ctx, memberID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, saved, *session)
}

func TestBot_MemberPassesGate(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newGatedBot(db, true)
	ctx := context.Background()

	require.NoError(t, db.SaveSession(ctx, memberID, models.Session{Path: "initial:chapter1"}))

	bot.handleCallbackQuery(callback(memberID, "grade7"))

	session, err := db.GetSession(ctx, memberID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "initial:chapter1:grade7", session.Path)
}

func TestBot_GateFailsClosedWithoutChecker(t *testing.T) {
	bot := newTestBot(stubs.NewMockDB())
	bot.channelUsername = "@edulibrary_channel"

	assert.False(t, bot.isMember(memberID))
}

func TestBot_DocumentUploadInBulkMode(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)
	ctx := context.Background()

	require.NoError(t, db.SaveSession(ctx, adminID, models.Session{
		Path: "initial:calculator_menu:awaiting_files_bulk",
	}))

	for _, name := range []string{"first.pdf", "second.pdf"} {
		msg := message(adminID, "")
		msg.Document = &tgbotapi.Document{FileID: "id-" + name, FileName: name}
		bot.handleMessage(msg)
	}

	files, err := db.GetFiles(ctx, "initial:calculator_menu")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "first.pdf", files[0].FileName)
	assert.Equal(t, "second.pdf", files[1].FileName)

	// The session stays in bulk mode for further uploads.
	session, err := db.GetSession(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, "initial:calculator_menu:awaiting_files_bulk", session.Path)
}

func TestBot_DocumentIgnoredOutsideBulkMode(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)
	ctx := context.Background()

	// Admin in a normal menu.
	require.NoError(t, db.SaveSession(ctx, adminID, models.Session{Path: "initial:calculator_menu"}))
	// Non-admin in bulk mode.
	require.NoError(t, db.SaveSession(ctx, memberID, models.Session{
		Path: "initial:calculator_menu:awaiting_files_bulk",
	}))

	for _, userID := range []int64{adminID, memberID} {
		msg := message(userID, "")
		msg.Document = &tgbotapi.Document{FileID: "id", FileName: "ignored.pdf"}
		bot.handleMessage(msg)
	}

	files, err := db.GetFiles(ctx, "initial:calculator_menu")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestBot_DeleteWorkflow(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)
	ctx := context.Background()

	path := "initial:calculator_menu"
	for _, name := range []string{"A", "B", "C", "D"} {
		require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: name, FileName: name}))
	}
	require.NoError(t, db.SaveSession(ctx, adminID, models.Session{Path: path}))

	bot.handleCallbackQuery(callback(adminID, "delete_file_prompt"))
	bot.handleCallbackQuery(callback(adminID, "MARK_DELETE::1"))
	bot.handleCallbackQuery(callback(adminID, "MARK_DELETE::3"))
	bot.handleCallbackQuery(callback(adminID, "CONFIRM_DELETE"))

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "A", files[0].FileName)
	assert.Equal(t, "C", files[1].FileName)

	session, err := db.GetSession(ctx, adminID)
	require.NoError(t, err)
	assert.Equal(t, path, session.Path)
	assert.Nil(t, session.PendingDeletions)
}

func TestBot_NonAdminVerbsDoNotMutate(t *testing.T) {
	db := stubs.NewMockDB()
	bot := newTestBot(db)
	ctx := context.Background()

	path := "initial:calculator_menu"
	require.NoError(t, db.AppendFile(ctx, path, models.FileRecord{FileID: "f", FileName: "keep.pdf"}))
	saved := models.Session{Path: path}
	require.NoError(t, db.SaveSession(ctx, memberID, saved))

	for _, data := range []string{"delete_file_prompt", "MARK_DELETE::0", "CONFIRM_DELETE", "add_file_prompt"} {
		bot.handleCallbackQuery(callback(memberID, data))
	}

	files, err := db.GetFiles(ctx, path)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	session, err := db.GetSession(ctx, memberID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, saved, *session)
}
