package tg

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"xorm.io/xorm"

	"rasp_unitech/modules/api"
	"rasp_unitech/modules/config"
	"rasp_unitech/modules/database"
	"rasp_unitech/modules/logs"
	"rasp_unitech/modules/unitech"
)

const (
	BotVersion  = "1.42"
	LastUpdated = "25.09.2025"
)

// Отправка сообщений и запросов в Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Поиск студента группы для загрузки расписания
type StudentFinder interface {
	FindStudent(ctx context.Context, groupName string) (int64, error)
}

type Bot struct {
	TG        Sender
	DB        *xorm.Engine
	Service   *api.Service
	Groups    StudentFinder
	Debug     *log.Logger
	Updates   tgbotapi.UpdatesChannel
	Name      string
	ID        int64
	DevChat   int64
	Started   time.Time
	Messages  int64
	Callbacks int64
}

// Полная инициализация бота со стороны Telegram и БД
func InitBot(files logs.LogFiles, cfg config.Config) (*Bot, error) {
	bot := Bot{
		DevChat: cfg.DevChat,
		Started: time.Now(),
		Debug:   files.Debug(),
	}
	engine, err := database.Connect(cfg.DB, files.DBLogFile)
	if err != nil {
		return nil, err
	}
	bot.DB = engine

	client := unitech.NewClient(cfg.UnitechURL, cfg.FetchTimeout, bot.Debug)
	bot.Service = api.NewService(client, bot.Debug)
	bot.Groups = client

	tgAPI, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger := log.New(files.TgLogFile, "", log.LstdFlags)
	if err := tgbotapi.SetLogger(logger); err != nil {
		return nil, err
	}
	bot.TG = tgAPI
	bot.Name = tgAPI.Self.UserName
	bot.ID = tgAPI.Self.ID

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	bot.Updates = tgAPI.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", bot.Name)

	return &bot, nil
}

func (bot *Bot) SendMsg(chatID int64, text string, markup interface{}) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	return bot.TG.Send(msg)
}

// Запись в лог от имени пользователя
func (bot *Bot) logf(from *tgbotapi.User, chatID int64, format string, v ...interface{}) {
	var id int64
	username := "unknown"
	if from != nil {
		id = from.ID
		if from.UserName != "" {
			username = from.UserName
		}
	}
	bot.Debug.Printf("User %d (%s) in chat %d: "+format, append([]interface{}{id, username, chatID}, v...)...)
}

func (bot *Bot) HandleUpdate(update tgbotapi.Update, now ...time.Time) (tgbotapi.Message, error) {
	if len(now) == 0 {
		now = append(now, time.Now())
	}
	if update.MyChatMember != nil {
		return bot.ChatActions(update)
	}
	if update.Message != nil {
		msg := update.Message
		user, err := database.GetChatUser(bot.DB, msg.Chat.ID)
		if err != nil {
			return nilMsg, err
		}
		bot.Messages++
		if msg.IsCommand() {
			if !bot.commandForMe(msg) {
				return nilMsg, nil
			}
			bot.logf(msg.From, msg.Chat.ID, "command /%s %s", msg.Command(), msg.CommandArguments())

			return bot.HandleCommand(msg, user, now[0])
		}

		switch user.PosTag {
		case database.FeedbackWaiting:
			return bot.ReceiveFeedback(msg, user, now[0])
		case database.DaySelection:
			return bot.ReceiveDay(msg, user, now[0])
		case database.ChangeWaiting:
			return bot.ReceiveGroup(msg, user, now[0])
		default:
			text, ok := bot.addressed(msg)
			if !ok {
				return nilMsg, nil
			}
			bot.logf(msg.From, msg.Chat.ID, "processed text: %s", text)

			return bot.HandleText(msg, user, text, now[0])
		}
	}
	if update.CallbackQuery != nil {
		query := update.CallbackQuery
		bot.Callbacks++
		if query.Message == nil {
			_, err := bot.TG.Request(tgbotapi.NewCallback(query.ID, ""))

			return nilMsg, err
		}
		user, err := database.GetChatUser(bot.DB, query.Message.Chat.ID)
		if err != nil {
			return nilMsg, err
		}
		bot.logf(query.From, query.Message.Chat.ID, "callback %s", query.Data)

		return bot.HandleCallback(query, user, now[0])
	}

	return nilMsg, nil
}

// Команда без упоминания или с упоминанием именно этого бота
func (bot *Bot) commandForMe(msg *tgbotapi.Message) bool {
	cmd := msg.CommandWithAt()
	at := strings.Index(cmd, "@")
	if at < 0 {
		return true
	}

	return strings.EqualFold(cmd[at+1:], bot.Name)
}
