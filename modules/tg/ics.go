package tg

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp_unitech/modules/database"
)

// Отправка исходного .ics файла для приложений календаря
func (bot *Bot) SendICS(chatID int64, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	body, err := bot.Service.Feed(context.Background(), user.StudentID)
	if err != nil {
		bot.Debug.Printf("chat %d: failed to fetch ics: %s", chatID, err)

		return bot.SendMsg(chatID, ErrorText(err, now), ScheduleKeyboard(""))
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("rasp_%d.ics", user.StudentID),
		Bytes: body,
	})
	doc.Caption = "Файл можно импортировать в приложение календаря"

	return bot.TG.Send(doc)
}
