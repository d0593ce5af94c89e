package api

import (
	"errors"

	"rasp_unitech/modules/ical"
	"rasp_unitech/modules/schedule"
	"rasp_unitech/modules/unitech"
)

// Категория ошибки для вывода пользователю
type Kind int

const (
	KindUnknown Kind = iota
	// Сервер ответил ошибкой (5xx, 504) или недоступен
	KindUnavailable
	// Истекло время ожидания ответа
	KindTimeout
	// Пустой ответ сервера
	KindEmpty
	// Не удалось разобрать .ics
	KindParse
	// Неверный номер дня месяца
	KindInvalidDay
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindUnavailable: "unavailable",
	KindTimeout:     "timeout",
	KindEmpty:       "empty",
	KindParse:       "parse",
	KindInvalidDay:  "invalid_day",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Определение категории ошибки по её типу
func KindOf(err error) Kind {
	var dayErr *schedule.InvalidDayError
	if errors.As(err, &dayErr) {
		return KindInvalidDay
	}
	var parseErr *ical.ParseError
	if errors.As(err, &parseErr) {
		return KindParse
	}
	var fetchErr *unitech.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case unitech.Timeout:
			return KindTimeout
		case unitech.Empty:
			return KindEmpty
		default:
			return KindUnavailable
		}
	}

	return KindUnknown
}
