package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avlasev/reminder-journal-bot/internal/domain"
)

// Notifier pushes fired reminders to their destination chat.
// It satisfies scheduler.Sink and is deliberately separate from Router so
// the scheduler can be constructed before the command surface.
type Notifier struct {
	bot *tgbotapi.BotAPI
}

func NewNotifier(bot *tgbotapi.BotAPI) *Notifier {
	return &Notifier{bot: bot}
}

// Deliver sends the reminder text to the chat. Failures are wrapped as
// ErrDelivery; the scheduler treats them as logged-and-ignored.
func (n *Notifier) Deliver(chatID int64, text string) error {
	if _, err := n.bot.Send(tgbotapi.NewMessage(chatID, "⏰ Reminder: "+text)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDelivery, err)
	}
	return nil
}
