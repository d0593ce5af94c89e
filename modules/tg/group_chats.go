package tg

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Текст сообщения, обращённого к боту
//
// В группах бот отвечает, только если сообщение начинается с его имени
// или является ответом на его сообщение; имя из текста убирается
func (bot *Bot) addressed(msg *tgbotapi.Message) (string, bool) {
	text := strings.TrimSpace(msg.Text)
	if !msg.Chat.IsGroup() && !msg.Chat.IsSuperGroup() {
		return text, true
	}
	if bot.Name != "" {
		for _, name := range []string{"@" + bot.Name, bot.Name} {
			if strings.HasPrefix(text, name) {
				return strings.TrimSpace(strings.TrimPrefix(text, name)), true
			}
		}
	}
	reply := msg.ReplyToMessage
	if reply != nil && reply.From != nil && reply.From.ID == bot.ID {
		return text, true
	}

	return text, false
}

func (bot *Bot) ChatActions(update tgbotapi.Update) (tgbotapi.Message, error) {
	action := update.MyChatMember

	if action.NewChatMember.Status == "member" &&
		action.OldChatMember.Status != "administrator" {
		msg := tgbotapi.NewMessage(
			action.Chat.ID,
			"Всем привет! Теперь вы можете посмотреть расписание прямо в чате :)\n"+
				"Используйте команды /today, /tomorrow, /week, /next_week, /day "+
				fmt.Sprintf("или напишите мне: @%s Расп. на сегодня\n", bot.Name)+
				"Сменить группу чата можно командой /change <название группы>",
		)
		msg.ReplyMarkup = MenuKeyboard()

		return bot.TG.Send(msg)
	}

	return nilMsg, nil
}
