package tg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"rasp_unitech/modules/schedule"
)

const (
	MenuKey     = "menu"
	DayKey      = "day"
	ChangeKey   = "change"
	FeedbackKey = "feedback"

	DayPagePrefix   = "day_page_"
	DaySelectPrefix = "day_select_"

	DaysPerPage = 10
	DaysPerRow  = 5
)

// Кнопка окна расписания: подпись и данные
type windowButton struct {
	Text string
	Data string
}

var scheduleButtons = []windowButton{
	{"Расп. на сегодня", "today"},
	{"Расп. на завтра", "tomorrow"},
	{"Расп. на неделю", "week"},
	{"Расп. на след. неделю", "next_week"},
	{"Расп. на день", DayKey},
}

// Главное меню
func MenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(scheduleButtons[0].Text, scheduleButtons[0].Data),
			tgbotapi.NewInlineKeyboardButtonData(scheduleButtons[1].Text, scheduleButtons[1].Data),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(scheduleButtons[2].Text, scheduleButtons[2].Data),
			tgbotapi.NewInlineKeyboardButtonData(scheduleButtons[3].Text, scheduleButtons[3].Data),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(scheduleButtons[4].Text, scheduleButtons[4].Data),
			tgbotapi.NewInlineKeyboardButtonData("Смена группы", ChangeKey),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Обратная связь", FeedbackKey),
		),
	)
}

// Клавиатура под расписанием: все окна, кроме exclude, по две кнопки в ряд
func ScheduleKeyboard(exclude string) tgbotapi.InlineKeyboardMarkup {
	var markup [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, b := range scheduleButtons {
		if b.Data == exclude {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		if len(row) == 2 {
			markup = append(markup, row)
			row = nil
		}
	}
	if len(row) != 0 {
		markup = append(markup, row)
	}
	markup = append(markup, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Вернуться в меню", MenuKey),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: markup}
}

// Выбор дня текущего месяца, по 10 дней на страницу
func DayKeyboard(page int, now time.Time) tgbotapi.InlineKeyboardMarkup {
	today := now.In(schedule.MSK)
	maxDays := schedule.DaysInMonth(today.Year(), today.Month())
	pages := (maxDays + DaysPerPage - 1) / DaysPerPage
	if page < 0 {
		page = 0
	} else if page >= pages {
		page = pages - 1
	}
	first := page*DaysPerPage + 1
	last := first + DaysPerPage - 1
	if last > maxDays {
		last = maxDays
	}

	var markup [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for day := first; day <= last; day++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			strconv.Itoa(day),
			fmt.Sprintf("%s%d", DaySelectPrefix, day),
		))
		if len(row) == DaysPerRow {
			markup = append(markup, row)
			row = nil
		}
	}
	if len(row) != 0 {
		markup = append(markup, row)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			"⬅️ Назад", fmt.Sprintf("%s%d", DayPagePrefix, page-1),
		))
	}
	if last < maxDays {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			"Вперед ➡️", fmt.Sprintf("%s%d", DayPagePrefix, page+1),
		))
	}
	if len(nav) != 0 {
		markup = append(markup, nav)
	}
	markup = append(markup, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Вернуться в меню", MenuKey),
	))

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: markup}
}

// Число из данных кнопки вида <prefix><n>
func ParseSuffix(data, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(data, prefix))
}
