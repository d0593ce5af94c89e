package tg

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp_unitech/modules/database"
	"rasp_unitech/modules/schedule"
)

var nilMsg = tgbotapi.Message{}

var textWindows = map[string]schedule.WindowKind{
	"Расп. на сегодня":               schedule.Today,
	"Расписание на сегодня":          schedule.Today,
	"Расп. на завтра":                schedule.Tomorrow,
	"Расписание на завтра":           schedule.Tomorrow,
	"Расп. на неделю":                schedule.CurrentWeek,
	"Расписание на неделю":           schedule.CurrentWeek,
	"Расп. на след. неделю":          schedule.NextWeek,
	"Расписание на следующую неделю": schedule.NextWeek,
}

var dayPrefixes = []string{"Расп. на день ", "Расписание на день "}

func (bot *Bot) HandleCommand(msg *tgbotapi.Message, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	if cmd == "cancel" {
		return bot.Cancel(msg.Chat.ID, user, now)
	}
	// Любая другая команда прерывает диалог
	if user.PosTag != database.Ready {
		if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
			return nilMsg, err
		}
	}

	if kind, ok := schedule.ParseWindow(cmd); ok && kind != schedule.DayOfMonth {
		return bot.ShowSchedule(msg.Chat.ID, user, schedule.Window{Kind: kind}, now)
	}
	switch cmd {
	case "start":
		return bot.SendMsg(msg.Chat.ID, StartTxt, MenuKeyboard())
	case "info":
		return bot.SendMsg(msg.Chat.ID, InfoTxt(), MenuKeyboard())
	case "day":
		if args == "" {
			return bot.AskDay(msg.Chat.ID, user, now)
		}
		day, err := strconv.Atoi(args)
		if err != nil {
			return bot.SendMsg(msg.Chat.ID, "Ошибка: номер дня должен быть числом (например, /day 17)", DayKeyboard(0, now))
		}

		return bot.ShowSchedule(msg.Chat.ID, user, schedule.Window{Kind: schedule.DayOfMonth, Day: day}, now)
	case "change":
		if args == "" {
			return bot.SendMsg(msg.Chat.ID, "Использование: /change <название группы> (например, /change ПИ-23)", nil)
		}

		return bot.ChangeGroup(msg, user, args, now)
	case "feedback":
		return bot.AskFeedback(msg.Chat.ID, user, now)
	case "ics":
		return bot.SendICS(msg.Chat.ID, user, now)
	case "stats", "scream":
		if msg.Chat.ID != bot.DevChat && (msg.From == nil || msg.From.ID != bot.DevChat) {
			return nilMsg, nil
		}
		if cmd == "stats" {
			return bot.Stats(msg.Chat.ID)
		}

		return bot.Scream(msg)
	}

	return bot.SendMsg(msg.Chat.ID, HintTxt, MenuKeyboard())
}

// Обработка текста и кнопок в обычном режиме
func (bot *Bot) HandleText(msg *tgbotapi.Message, user *database.ChatUser, text string, now time.Time) (tgbotapi.Message, error) {
	if kind, ok := textWindows[text]; ok {
		return bot.ShowSchedule(msg.Chat.ID, user, schedule.Window{Kind: kind}, now)
	}
	for _, prefix := range dayPrefixes {
		if !strings.HasPrefix(text, prefix) {
			continue
		}
		fields := strings.Fields(text)
		day, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			return bot.SendMsg(msg.Chat.ID, "Ошибка: номер дня должен быть числом (например, Расп. на день 17)", DayKeyboard(0, now))
		}

		return bot.ShowSchedule(msg.Chat.ID, user, schedule.Window{Kind: schedule.DayOfMonth, Day: day}, now)
	}
	bot.logf(msg.From, msg.Chat.ID, "received invalid text: %s", text)

	return bot.SendMsg(msg.Chat.ID, HintTxt, MenuKeyboard())
}

// Загрузка и отправка расписания на период
func (bot *Bot) ShowSchedule(chatID int64, user *database.ChatUser, w schedule.Window, now time.Time) (tgbotapi.Message, error) {
	text, err := bot.Service.GetSchedule(context.Background(), user.StudentID, w, now)
	if err != nil {
		bot.Debug.Printf("chat %d: failed to fetch %s schedule: %s", chatID, w.Kind, err)
		markup := ScheduleKeyboard("")
		if w.Kind == schedule.DayOfMonth {
			markup = DayKeyboard(0, now)
		}

		return bot.SendMsg(chatID, ErrorText(err, now), markup)
	}
	bot.Debug.Printf("chat %d: sent %s schedule", chatID, w.Kind)

	return bot.SendMsg(chatID, Title(w)+text, ScheduleKeyboard(w.Kind.String()))
}

func (bot *Bot) AskDay(chatID int64, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	if err := database.SetPosition(bot.DB, user, database.DaySelection, now); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(chatID, DayPromptTxt, DayKeyboard(0, now))
}

// Номер дня, введённый текстом
func (bot *Bot) ReceiveDay(msg *tgbotapi.Message, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	text, _ := bot.addressed(msg)
	day, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return bot.SendMsg(msg.Chat.ID, "Ошибка: номер дня должен быть числом (например, 17).", DayKeyboard(0, now))
	}
	if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
		return nilMsg, err
	}

	return bot.ShowSchedule(msg.Chat.ID, user, schedule.Window{Kind: schedule.DayOfMonth, Day: day}, now)
}

func (bot *Bot) AskGroup(chatID int64, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	if err := database.SetPosition(bot.DB, user, database.ChangeWaiting, now); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(chatID, ChangePromptTxt, nil)
}

// Название группы, введённое после кнопки смены группы
func (bot *Bot) ReceiveGroup(msg *tgbotapi.Message, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	text, _ := bot.addressed(msg)
	if text == "" {
		return bot.SendMsg(msg.Chat.ID, ChangePromptTxt, nil)
	}
	if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
		return nilMsg, err
	}

	return bot.ChangeGroup(msg, user, text, now)
}

// Смена группы чата по названию
func (bot *Bot) ChangeGroup(msg *tgbotapi.Message, user *database.ChatUser, groupName string, now time.Time) (tgbotapi.Message, error) {
	studentID, err := bot.Groups.FindStudent(context.Background(), groupName)
	if err != nil {
		bot.logf(msg.From, msg.Chat.ID, "failed to find group or student for group %s: %s", groupName, err)

		return bot.SendMsg(msg.Chat.ID, GroupErrorText(err, groupName), MenuKeyboard())
	}
	if err := database.SetGroup(bot.DB, user.ChatID, studentID, groupName); err != nil {
		return nilMsg, err
	}
	user.StudentID = studentID
	user.GroupName = groupName
	bot.logf(msg.From, msg.Chat.ID, "changed group to %s (student ID: %d)", groupName, studentID)

	return bot.SendMsg(
		msg.Chat.ID,
		fmt.Sprintf("Группа изменена на %s (ID студента: %d)", groupName, studentID),
		MenuKeyboard(),
	)
}

func (bot *Bot) AskFeedback(chatID int64, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	if err := database.SetPosition(bot.DB, user, database.FeedbackWaiting, now); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(chatID, FeedbackPromptTxt, nil)
}

// Сохранение отзыва и пересылка разработчику
func (bot *Bot) ReceiveFeedback(msg *tgbotapi.Message, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return bot.SendMsg(msg.Chat.ID, "Пожалуйста, отправьте текстовое сообщение (не стикеры, фото и т.д.).", nil)
	}
	fb := database.Feedback{
		ChatID:  msg.Chat.ID,
		Text:    text,
		Created: now,
	}
	if msg.From != nil {
		fb.UserID = msg.From.ID
		fb.UserName = msg.From.UserName
	}
	if err := database.SaveFeedback(bot.DB, &fb); err != nil {
		return nilMsg, err
	}
	if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
		return nilMsg, err
	}
	bot.logf(msg.From, msg.Chat.ID, "received feedback: %s", text)

	if bot.DevChat != 0 {
		fwd := fmt.Sprintf("Отзыв от @%s (ID: %d, чат %d):\n%s", fb.UserName, fb.UserID, fb.ChatID, text)
		if _, err := bot.SendMsg(bot.DevChat, fwd, nil); err != nil {
			bot.Debug.Printf("failed to forward feedback %s: %s", fb.ID, err)
		}
	}

	return bot.SendMsg(msg.Chat.ID, "Спасибо за ваш отзыв! Он отправлен разработчику.", MenuKeyboard())
}

// Выход из диалога
func (bot *Bot) Cancel(chatID int64, user *database.ChatUser, now time.Time) (tgbotapi.Message, error) {
	text := "Действие отменено."
	if user.PosTag == database.FeedbackWaiting {
		text = "Отправка отзыва отменена."
	}
	if err := database.SetPosition(bot.DB, user, database.Ready, now); err != nil {
		return nilMsg, err
	}

	return bot.SendMsg(chatID, text, MenuKeyboard())
}
