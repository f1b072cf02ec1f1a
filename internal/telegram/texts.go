package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	helpText = "👋 I am your personal reminder & thought journal bot.\n\n" +
		"Commands:\n" +
		"/remind <HH:MM> <message> → e.g. /remind 08:30 Wake up and conquer the day!\n" +
		"/cancel <id>              → Cancel a reminder by its number\n" +
		"/thought <your text>      → Record a thought/journal entry\n" +
		"/today                    → Show today's thoughts\n" +
		"/thoughts                 → Show all your thoughts\n" +
		"/motivate                 → Get a random motivational quote\n" +
		"/help                     → Show this message"

	remindUsage    = "Usage: /remind 08:30 Do something great (time is HH:MM, 24h)"
	cancelUsage    = "Usage: /cancel 3 (the number from your reminder confirmation)"
	thoughtUsage   = "Usage: /thought Today I feel grateful because..."
	genericErrText = "Something went wrong. Please try again later."
)

// mainMenuKeyboard builds a reply keyboard with the common commands.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/today"),
			tgbotapi.NewKeyboardButton("/thoughts"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/motivate"),
			tgbotapi.NewKeyboardButton("/help"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
