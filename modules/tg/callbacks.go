package tg

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp_unitech/modules/database"
	"rasp_unitech/modules/schedule"
)

// Обработка нажатия inline-кнопки
func (bot *Bot) HandleCallback(query *tgbotapi.CallbackQuery, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	chatID := query.Message.Chat.ID
	if _, err := bot.TG.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		bot.Debug.Printf("failed to answer callback %s: %s", query.ID, err)
	}

	// Листание дней редактирует то же сообщение
	if strings.HasPrefix(query.Data, DayPagePrefix) {
		page, err := ParseSuffix(query.Data, DayPagePrefix)
		if err != nil {
			return nilMsg, err
		}
		edit := tgbotapi.NewEditMessageTextAndMarkup(
			chatID,
			query.Message.MessageID,
			DayPromptTxt,
			DayKeyboard(page, now),
		)
		if _, err := bot.TG.Request(edit); err != nil {
			bot.Debug.Printf("failed to edit day selection message: %s", err)

			return bot.SendMsg(chatID, DayPromptTxt, DayKeyboard(page, now))
		}

		return nilMsg, nil
	}

	bot.deleteMsg(query.Message)

	if strings.HasPrefix(query.Data, DaySelectPrefix) {
		day, err := ParseSuffix(query.Data, DaySelectPrefix)
		if err != nil {
			return nilMsg, err
		}
		if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
			return nilMsg, err
		}

		return bot.ShowSchedule(chatID, user, schedule.Window{Kind: schedule.DayOfMonth, Day: day}, now)
	}

	switch query.Data {
	case MenuKey:
		if user.PosTag != database.Ready {
			if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
				return nilMsg, err
			}
		}

		return bot.SendMsg(chatID, MenuTxt, MenuKeyboard())
	case DayKey:
		return bot.AskDay(chatID, user, now)
	case ChangeKey:
		return bot.AskGroup(chatID, user, now)
	case FeedbackKey:
		return bot.AskFeedback(chatID, user, now)
	}

	if kind, ok := schedule.ParseWindow(query.Data); ok {
		return bot.ShowSchedule(chatID, user, schedule.Window{Kind: kind}, now)
	}
	bot.Debug.Printf("unknown callback data: %s", query.Data)

	return nilMsg, nil
}

// Удаление сообщения с нажатой кнопкой; старые сообщения удалить нельзя
func (bot *Bot) deleteMsg(msg *tgbotapi.Message) {
	del := tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID)
	if _, err := bot.TG.Request(del); err != nil {
		bot.Debug.Printf("failed to delete message %d in chat %d: %s", msg.MessageID, msg.Chat.ID, err)
	}
}
