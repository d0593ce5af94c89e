package tg

import (
	"errors"
	"fmt"
	"time"

	"rasp_unitech/modules/api"
	"rasp_unitech/modules/schedule"
	"rasp_unitech/modules/unitech"
)

const StartTxt = "Привет! 👋 Я бот, который поможет тебе узнать расписание занятий " +
	"Технологического Университета им. А.А. Леонова с портала Unitech!\n" +
	"По умолчанию показываю расписание для группы ПИ-23. Хочешь другую? " +
	"Используй /change <название группы> (например, /change ПИ-23).\n" +
	"Выбирай опции через кнопки или команды: /today, /tomorrow, /week, /next_week, /day, /info, /feedback."

const HintTxt = "Пожалуйста, используйте кнопки или команды /today, /tomorrow, /week, /next_week, /day, /info, /feedback."

const (
	DayPromptTxt      = "Выберите день текущего месяца:"
	ChangePromptTxt   = "Введите название группы (например, ПИ-23):"
	FeedbackPromptTxt = "Пожалуйста, отправьте ваше сообщение для обратной связи."
	MenuTxt           = "Возвращаемся в главное меню."
)

func InfoTxt() string {
	return "Этот бот предоставляет расписание занятий на основе данных с портала Unitech.\n" +
		"Расписание доступно для всех групп, используйте /change <название группы> для смены.\n" +
		fmt.Sprintf("Дата создания: 01.09.2025. Текущая версия: %s от %s\n", BotVersion, LastUpdated) +
		"\nИспользуйте команды:\n" +
		"/today - расписание на сегодня\n" +
		"/tomorrow - расписание на завтра\n" +
		"/week - расписание на неделю\n" +
		"/next_week - расписание на следующую неделю\n" +
		"/day <номер_дня> - расписание на указанный день текущего месяца\n" +
		"/change - смена группы\n" +
		"/feedback - отправить обратную связь разработчику"
}

var titles = map[schedule.WindowKind]string{
	schedule.Today:       "Расписание на сегодня:\n",
	schedule.Tomorrow:    "Расписание на завтра:\n",
	schedule.CurrentWeek: "Расписание на неделю:\n",
	schedule.NextWeek:    "Расписание на следующую неделю:\n",
}

// Заголовок сообщения с расписанием
func Title(w schedule.Window) string {
	if w.Kind == schedule.DayOfMonth {
		return fmt.Sprintf("Расписание на %d число:\n", w.Day)
	}

	return titles[w.Kind]
}

const (
	genericErrTxt = "Произошла ошибка при загрузке расписания. Пожалуйста, попробуйте еще раз."
	timeoutErrTxt = "Не удалось подключиться к серверу Unitech из-за таймаута. " +
		"Проверьте интернет-соединение и попробуйте снова."
	emptyErrTxt = "Сервер Unitech вернул пустое расписание. Пожалуйста, попробуйте еще раз позже."
	parseErrTxt = "Не удалось разобрать расписание, полученное с сервера Unitech. Пожалуйста, попробуйте еще раз позже."
)

// Сообщение пользователю об ошибке получения расписания
func ErrorText(err error, now time.Time) string {
	switch api.KindOf(err) {
	case api.KindUnavailable:
		return unavailableText(err)
	case api.KindTimeout:
		return timeoutErrTxt
	case api.KindEmpty:
		return emptyErrTxt
	case api.KindParse:
		return parseErrTxt
	case api.KindInvalidDay:
		var dayErr *schedule.InvalidDayError
		errors.As(err, &dayErr)
		month := schedule.Month[now.In(schedule.MSK).Month()-1]

		return fmt.Sprintf(
			"Ошибка: день %d недопустим. Укажите день от 1 до %d (в %s %d дней).",
			dayErr.Day, dayErr.MaxDay, month, dayErr.MaxDay,
		)
	}

	return genericErrTxt
}

func unavailableText(err error) string {
	var fetchErr *unitech.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Status != 0 {
		return fmt.Sprintf(
			"Сервер Unitech временно недоступен (ошибка %d). Пожалуйста, попробуйте снова через несколько минут.",
			fetchErr.Status,
		)
	}

	return "Сервер Unitech временно недоступен. Пожалуйста, попробуйте снова через несколько минут."
}

// Сообщение об ошибке поиска группы
func GroupErrorText(err error, groupName string) string {
	if errors.Is(err, unitech.ErrGroupNotFound) || errors.Is(err, unitech.ErrNoStudents) {
		return fmt.Sprintf(
			"Не удалось найти группу '%s' или студентов в ней. Проверьте название и попробуйте снова.",
			groupName,
		)
	}
	switch api.KindOf(err) {
	case api.KindUnavailable:
		return unavailableText(err)
	case api.KindTimeout:
		return timeoutErrTxt
	}

	return "Произошла ошибка при поиске группы. Пожалуйста, попробуйте еще раз."
}
