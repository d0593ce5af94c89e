package tg

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mergestat/timediff"
	"golang.org/x/exp/slices"

	"rasp_unitech/modules/database"
)

func (bot *Bot) Stats(chatID int64) (tgbotapi.Message, error) {
	ids, err := database.ChatIDs(bot.DB)
	if err != nil {
		return nilMsg, err
	}
	txt := fmt.Sprintf(
		"Версия: %s\nЗапущен: %s\nЧатов: %d\nСообщений: %d\nНажатий кнопок: %d",
		BotVersion,
		timediff.TimeDiff(bot.Started),
		len(ids),
		bot.Messages,
		bot.Callbacks,
	)

	return bot.SendMsg(chatID, txt, nil)
}

// Рассылка сообщения во все известные чаты
func (bot *Bot) Scream(msg *tgbotapi.Message) (tgbotapi.Message, error) {
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		return bot.SendMsg(msg.Chat.ID, "Использование: /scream <текст>", nil)
	}
	ids, err := database.ChatIDs(bot.DB)
	if err != nil {
		return nilMsg, err
	}
	scream := tgbotapi.NewMessage(0, text)
	var sent []int64
	for _, id := range ids {
		if slices.Contains(sent, id) {
			continue
		}
		scream.ChatID = id
		if _, err := bot.TG.Send(scream); err != nil {
			if !strings.Contains(err.Error(), "blocked by user") {
				bot.Debug.Println(err)
			}

			continue
		}
		sent = append(sent, id)
	}

	return bot.SendMsg(msg.Chat.ID, fmt.Sprintf("Сообщения отправлены: %d из %d", len(sent), len(ids)), nil)
}
