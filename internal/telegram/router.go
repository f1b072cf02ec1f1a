package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/avlasev/reminder-journal-bot/internal/journal"
	"github.com/avlasev/reminder-journal-bot/internal/scheduler"
)

// Router wires Telegram updates to command handlers.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	sched   *scheduler.Scheduler
	journal *journal.Service
	loc     *time.Location
}

// NewRouter creates a new Telegram router. loc is the bot's fixed display
// timezone for journal timestamps.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, sched *scheduler.Scheduler, jrnl *journal.Service, loc *time.Location) *Router {
	return &Router{bot: bot, log: log, sched: sched, journal: jrnl, loc: loc}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	cmd, args := splitCommand(text)
	switch cmd {
	case "/start", "/help":
		r.handleHelp(chatID)
	case "/remind":
		r.handleRemind(ctx, chatID, args)
	case "/cancel":
		r.handleCancel(ctx, chatID, args)
	case "/thought":
		r.handleThought(ctx, chatID, args)
	case "/today":
		r.handleToday(ctx, chatID)
	case "/thoughts":
		r.handleThoughts(ctx, chatID)
	case "/motivate":
		r.handleMotivate(chatID)
	default:
		// Non-command text is ignored; every flow here is a single message.
	}
}

// splitCommand separates the leading /command from its argument string.
// Bot-mention suffixes ("/remind@somebot") are stripped.
func splitCommand(text string) (cmd, args string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, args, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return cmd, strings.TrimSpace(args)
}

// sendText sends a plain text message to the given chat.
func (r *Router) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainMenuKeyboard()
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Error(err), zap.Int64("chat_id", chatID))
	}
}
