package tg

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp_unitech/modules/api"
	"rasp_unitech/modules/database"
	"rasp_unitech/modules/schedule"
	"rasp_unitech/modules/unitech"
)

const devChat = -4956911463

var TestUser = tgbotapi.User{
	ID:        12345,
	FirstName: "Grzegorz",
	UserName:  "brzbrz",
}

// Среда, 17 сентября 2025
var testNow = time.Date(2025, 9, 17, 12, 0, 0, 0, schedule.MSK)

const testICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Unitech//RU\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:1\r\n" +
	"DTSTART:20250917T060000Z\r\n" +
	"DTEND:20250917T073000Z\r\n" +
	"SUMMARY:Лек Математический анализ\r\n" +
	"LOCATION:А-101\r\n" +
	"DESCRIPTION:Иванов И.И.\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

type fakeTG struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeTG) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		return tgbotapi.Message{Text: m.Text, Chat: &tgbotapi.Chat{ID: m.ChatID}}, nil
	}

	return tgbotapi.Message{}, nil
}

func (f *fakeTG) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)

	return &tgbotapi.APIResponse{Ok: true}, nil
}

// Последнее отправленное сообщение
func (f *fakeTG) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("nothing sent")
	}
	m, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("last sent is %T", f.sent[len(f.sent)-1])
	}

	return m
}

type fakeFeed map[int64]error

func (f fakeFeed) FetchICS(_ context.Context, studentID int64) ([]byte, error) {
	if err, ok := f[studentID]; ok {
		return nil, err
	}

	return []byte(testICS), nil
}

type fakeGroups struct{}

func (fakeGroups) FindStudent(_ context.Context, name string) (int64, error) {
	if strings.EqualFold(name, "ИБ-22") {
		return 555, nil
	}

	return 0, fmt.Errorf("%w: %s", unitech.ErrGroupNotFound, name)
}

func InitTestBot(t *testing.T) (*Bot, *fakeTG) {
	t.Helper()
	db, err := database.Connect(database.DB{
		Driver: "sqlite3",
		Schema: filepath.Join(t.TempDir(), "bot.db"),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	debug := log.New(io.Discard, "", log.LstdFlags)
	feed := fakeFeed{
		555: &unitech.FetchError{Kind: unitech.Unavailable, Status: 504, URL: "test"},
	}
	sender := &fakeTG{}
	bot := &Bot{
		TG:      sender,
		DB:      db,
		Service: api.NewService(feed, debug),
		Groups:  fakeGroups{},
		Debug:   debug,
		Name:    "rasp_unitech_bot",
		ID:      1,
		DevChat: devChat,
		Started: testNow.Add(-time.Hour),
	}

	return bot, sender
}

func private(chatID int64) *tgbotapi.Chat {
	return &tgbotapi.Chat{ID: chatID, Type: "private"}
}

func textUpdate(chat *tgbotapi.Chat, text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &TestUser,
		Chat:      chat,
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		length := len(text)
		if i := strings.Index(text, " "); i > 0 {
			length = i
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	}

	return tgbotapi.Update{Message: msg}
}

func callbackUpdate(chat *tgbotapi.Chat, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &TestUser,
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 10, Chat: chat},
	}}
}

func handle(t *testing.T, bot *Bot, update tgbotapi.Update) tgbotapi.Message {
	t.Helper()
	msg, err := bot.HandleUpdate(update, testNow)
	if err != nil {
		t.Fatal(err)
	}

	return msg
}

func TestCommands(t *testing.T) {
	bot, sender := InitTestBot(t)
	chat := private(100)

	msg := handle(t, bot, textUpdate(chat, "/start"))
	if msg.Text != StartTxt {
		t.Errorf("/start = %q", msg.Text)
	}
	msg = handle(t, bot, textUpdate(chat, "/info"))
	if !strings.Contains(msg.Text, "Текущая версия: "+BotVersion) {
		t.Errorf("/info = %q", msg.Text)
	}

	msg = handle(t, bot, textUpdate(chat, "/today"))
	if !strings.HasPrefix(msg.Text, "Расписание на сегодня:\n") ||
		!strings.Contains(msg.Text, "📚 Математический анализ (Лекция)") {
		t.Errorf("/today = %q", msg.Text)
	}
	markup := sender.last(t).ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if *b.CallbackData == "today" {
				t.Error("schedule keyboard contains current window")
			}
		}
	}

	msg = handle(t, bot, textUpdate(chat, "/tomorrow"))
	want := "Расписание на завтра:\n18 сентября (четверг) занятий нет 0_о"
	if msg.Text != want {
		t.Errorf("/tomorrow = %q, want %q", msg.Text, want)
	}

	msg = handle(t, bot, textUpdate(chat, "/day 32"))
	want = "Ошибка: день 32 недопустим. Укажите день от 1 до 30 (в сентября 30 дней)."
	if msg.Text != want {
		t.Errorf("/day 32 = %q, want %q", msg.Text, want)
	}
	msg = handle(t, bot, textUpdate(chat, "/day abc"))
	if !strings.HasPrefix(msg.Text, "Ошибка: номер дня должен быть числом") {
		t.Errorf("/day abc = %q", msg.Text)
	}

	// Чужая команда в группе
	msg = handle(t, bot, textUpdate(&tgbotapi.Chat{ID: -1, Type: "group"}, "/today@other_bot"))
	if msg.Text != "" {
		t.Errorf("command for another bot answered: %q", msg.Text)
	}
}

func TestTextButtons(t *testing.T) {
	bot, _ := InitTestBot(t)

	msg := handle(t, bot, textUpdate(private(1), "Расписание на неделю"))
	if !strings.HasPrefix(msg.Text, "Расписание на неделю:\n<----------!---------->") {
		t.Errorf("week = %q", msg.Text)
	}
	msg = handle(t, bot, textUpdate(private(1), "Расп. на день 17"))
	if !strings.HasPrefix(msg.Text, "Расписание на 17 число:\n 🕘 1 пара: 09:00-10:30") {
		t.Errorf("day 17 = %q", msg.Text)
	}
	msg = handle(t, bot, textUpdate(private(1), "привет"))
	if msg.Text != HintTxt {
		t.Errorf("unknown text = %q", msg.Text)
	}

	group := &tgbotapi.Chat{ID: -2, Type: "supergroup"}
	msg = handle(t, bot, textUpdate(group, "Расп. на сегодня"))
	if msg.Text != "" {
		t.Errorf("group text without mention answered: %q", msg.Text)
	}
	msg = handle(t, bot, textUpdate(group, "@rasp_unitech_bot Расп. на сегодня"))
	if !strings.HasPrefix(msg.Text, "Расписание на сегодня:\n") {
		t.Errorf("group text with mention = %q", msg.Text)
	}
	reply := textUpdate(group, "Расп. на завтра")
	reply.Message.ReplyToMessage = &tgbotapi.Message{From: &tgbotapi.User{ID: bot.ID}}
	msg = handle(t, bot, reply)
	if !strings.HasPrefix(msg.Text, "Расписание на завтра:\n") {
		t.Errorf("reply to bot = %q", msg.Text)
	}
}

func TestFeedback(t *testing.T) {
	bot, sender := InitTestBot(t)
	chat := private(7)

	handle(t, bot, callbackUpdate(chat, FeedbackKey))
	if sender.last(t).Text != FeedbackPromptTxt {
		t.Errorf("prompt = %q", sender.last(t).Text)
	}
	user, _ := database.GetChatUser(bot.DB, 7)
	if user.PosTag != database.FeedbackWaiting {
		t.Fatalf("position = %s", user.PosTag)
	}

	msg := handle(t, bot, textUpdate(chat, "Добавьте экзамены"))
	if msg.Text != "Спасибо за ваш отзыв! Он отправлен разработчику." {
		t.Errorf("thanks = %q", msg.Text)
	}
	forwarded := false
	for _, c := range sender.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == devChat {
			forwarded = strings.Contains(m.Text, "Добавьте экзамены")
		}
	}
	if !forwarded {
		t.Error("feedback not forwarded to developer chat")
	}
	var stored []database.Feedback
	if err := bot.DB.Find(&stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].UserName != TestUser.UserName {
		t.Errorf("stored = %+v", stored)
	}

	// Отмена
	handle(t, bot, textUpdate(chat, "/feedback"))
	msg = handle(t, bot, textUpdate(chat, "/cancel"))
	if msg.Text != "Отправка отзыва отменена." {
		t.Errorf("cancel = %q", msg.Text)
	}
}

func TestChangeGroup(t *testing.T) {
	bot, _ := InitTestBot(t)
	chat := private(9)

	msg := handle(t, bot, textUpdate(chat, "/change"))
	if !strings.HasPrefix(msg.Text, "Использование: /change") {
		t.Errorf("usage = %q", msg.Text)
	}
	msg = handle(t, bot, textUpdate(chat, "/change ПИ-99"))
	if !strings.HasPrefix(msg.Text, "Не удалось найти группу 'ПИ-99'") {
		t.Errorf("not found = %q", msg.Text)
	}

	handle(t, bot, callbackUpdate(chat, ChangeKey))
	msg = handle(t, bot, textUpdate(chat, "иб-22"))
	if msg.Text != "Группа изменена на иб-22 (ID студента: 555)" {
		t.Errorf("changed = %q", msg.Text)
	}
	user, _ := database.GetChatUser(bot.DB, 9)
	if user.StudentID != 555 || user.PosTag != database.Ready {
		t.Errorf("user = %+v", user)
	}

	// Сервер расписания группы отвечает ошибкой
	msg = handle(t, bot, callbackUpdate(chat, "today"))
	want := "Сервер Unitech временно недоступен (ошибка 504). Пожалуйста, попробуйте снова через несколько минут."
	if msg.Text != want {
		t.Errorf("unavailable = %q", msg.Text)
	}
}

func TestDaySelection(t *testing.T) {
	bot, sender := InitTestBot(t)
	chat := private(11)

	handle(t, bot, callbackUpdate(chat, DayKey))
	if sender.last(t).Text != DayPromptTxt {
		t.Errorf("prompt = %q", sender.last(t).Text)
	}

	sent := len(sender.sent)
	handle(t, bot, callbackUpdate(chat, DayPagePrefix+"1"))
	if len(sender.sent) != sent {
		t.Error("page switch sent a new message")
	}
	edit, ok := sender.requests[len(sender.requests)-1].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("last request is %T", sender.requests[len(sender.requests)-1])
	}
	if got := edit.ReplyMarkup.InlineKeyboard[0][0].Text; got != "11" {
		t.Errorf("first day on page 1 = %s", got)
	}

	msg := handle(t, bot, textUpdate(chat, "семнадцатое"))
	if !strings.HasPrefix(msg.Text, "Ошибка: номер дня должен быть числом") {
		t.Errorf("bad day = %q", msg.Text)
	}
	msg = handle(t, bot, callbackUpdate(chat, DaySelectPrefix+"17"))
	if !strings.HasPrefix(msg.Text, "Расписание на 17 число:\n") {
		t.Errorf("day 17 = %q", msg.Text)
	}
	user, _ := database.GetChatUser(bot.DB, 11)
	if user.PosTag != database.Ready {
		t.Errorf("position = %s", user.PosTag)
	}

	msg = handle(t, bot, callbackUpdate(chat, MenuKey))
	if msg.Text != MenuTxt {
		t.Errorf("menu = %q", msg.Text)
	}
}

func TestDayKeyboard(t *testing.T) {
	// Сентябрь, 30 дней
	first := DayKeyboard(0, testNow).InlineKeyboard
	if len(first) != 4 {
		t.Fatalf("page 0 rows = %d", len(first))
	}
	if nav := first[2]; len(nav) != 1 || nav[0].Text != "Вперед ➡️" {
		t.Errorf("page 0 nav = %+v", nav)
	}
	last := DayKeyboard(2, testNow).InlineKeyboard
	if last[0][0].Text != "21" || last[1][4].Text != "30" {
		t.Errorf("page 2 = %+v", last[:2])
	}
	if nav := last[2]; len(nav) != 1 || nav[0].Text != "⬅️ Назад" {
		t.Errorf("page 2 nav = %+v", nav)
	}

	// Октябрь, 31 день: последний день на отдельной странице
	october := DayKeyboard(3, time.Date(2025, 10, 1, 0, 0, 0, 0, schedule.MSK)).InlineKeyboard
	if len(october[0]) != 1 || october[0][0].Text != "31" {
		t.Errorf("october page 3 = %+v", october[0])
	}
}

func TestScheduleKeyboard(t *testing.T) {
	rows := ScheduleKeyboard("week").InlineKeyboard
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if menu := rows[len(rows)-1][0]; *menu.CallbackData != MenuKey {
		t.Errorf("last row = %+v", menu)
	}
}

func TestErrorText(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&unitech.FetchError{Kind: unitech.Timeout, URL: "x"}, timeoutErrTxt},
		{&unitech.FetchError{Kind: unitech.Empty, URL: "x"}, emptyErrTxt},
		{fmt.Errorf("wrapped: %w", &unitech.FetchError{Kind: unitech.Unavailable, URL: "x"}),
			"Сервер Unitech временно недоступен. Пожалуйста, попробуйте снова через несколько минут."},
		{fmt.Errorf("boom"), genericErrTxt},
	}
	for _, c := range cases {
		if got := ErrorText(c.err, testNow); got != c.want {
			t.Errorf("ErrorText(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestSendICS(t *testing.T) {
	bot, sender := InitTestBot(t)
	handle(t, bot, textUpdate(private(3), "/ics"))
	doc, ok := sender.sent[len(sender.sent)-1].(tgbotapi.DocumentConfig)
	if !ok {
		t.Fatalf("last sent is %T", sender.sent[len(sender.sent)-1])
	}
	file, ok := doc.File.(tgbotapi.FileBytes)
	if !ok || file.Name != "rasp_90893.ics" || string(file.Bytes) != testICS {
		t.Errorf("document = %+v", doc.File)
	}
}

func TestStats(t *testing.T) {
	bot, _ := InitTestBot(t)
	handle(t, bot, textUpdate(private(devChat), "/start"))
	msg := handle(t, bot, textUpdate(private(devChat), "/stats"))
	if !strings.Contains(msg.Text, "Чатов: 1") {
		t.Errorf("stats = %q", msg.Text)
	}

	// Не разработчик
	msg = handle(t, bot, textUpdate(private(5), "/scream всем привет"))
	if msg.Text != "" {
		t.Errorf("scream from user answered: %q", msg.Text)
	}
	msg = handle(t, bot, textUpdate(private(devChat), "/scream всем привет"))
	if msg.Text != "Сообщения отправлены: 2 из 2" {
		t.Errorf("scream = %q", msg.Text)
	}
}
