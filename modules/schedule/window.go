package schedule

import (
	"fmt"
	"time"

	"github.com/icza/gox/timex"
)

// Московское время, без перехода на летнее
var MSK = time.FixedZone("MSK", 3*60*60)

// Вид запрошенного периода
type WindowKind int

const (
	Today WindowKind = iota
	Tomorrow
	CurrentWeek
	NextWeek
	DayOfMonth
)

var windowNames = map[string]WindowKind{
	"today":     Today,
	"tomorrow":  Tomorrow,
	"week":      CurrentWeek,
	"next_week": NextWeek,
	"day":       DayOfMonth,
}

func (k WindowKind) String() string {
	for name, kind := range windowNames {
		if kind == k {
			return name
		}
	}

	return fmt.Sprintf("window(%d)", int(k))
}

// Распознать период по названию (today, tomorrow, week, next_week, day)
func ParseWindow(name string) (WindowKind, bool) {
	kind, ok := windowNames[name]

	return kind, ok
}

// Запрошенный период; Day используется только для DayOfMonth
type Window struct {
	Kind WindowKind
	Day  int
}

// Диапазон дат включительно, даты указываются полночью по МСК
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Период из одного дня
func (r DateRange) IsSingleDay() bool {
	return r.Start.Equal(r.End)
}

// Недопустимый номер дня месяца
type InvalidDayError struct {
	Day    int
	MaxDay int
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day %d: must be within 1..%d", e.Day, e.MaxDay)
}

// Дата (полночь по МСК) момента t
func Date(t time.Time) time.Time {
	t = t.In(MSK)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, MSK)
}

// Номер дня недели, начиная с понедельника = 0
func Weekday(t time.Time) int {
	return (int(t.In(MSK).Weekday()) + 6) % 7
}

// Количество дней в месяце
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, MSK).Day()
}

// Понедельник недели, в которую входит день
func WeekMonday(day time.Time) time.Time {
	year, week := day.In(MSK).ISOWeek()
	monday := timex.WeekStart(year, week)

	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, MSK)
}

// Вычисление дат периода относительно now
func Resolve(w Window, now time.Time) (DateRange, error) {
	today := Date(now)
	switch w.Kind {
	case Today:
		return DateRange{Start: today, End: today}, nil
	case Tomorrow:
		day := today.AddDate(0, 0, 1)

		return DateRange{Start: day, End: day}, nil
	case CurrentWeek:
		monday := WeekMonday(today)

		return DateRange{Start: monday, End: monday.AddDate(0, 0, 6)}, nil
	case NextWeek:
		offset := (7 - Weekday(today)) % 7
		if offset == 0 {
			offset = 7
		}
		monday := today.AddDate(0, 0, offset)

		return DateRange{Start: monday, End: monday.AddDate(0, 0, 6)}, nil
	case DayOfMonth:
		maxDay := DaysInMonth(today.Year(), today.Month())
		if w.Day < 1 || w.Day > maxDay {
			return DateRange{}, &InvalidDayError{Day: w.Day, MaxDay: maxDay}
		}
		day := time.Date(today.Year(), today.Month(), w.Day, 0, 0, 0, 0, MSK)

		return DateRange{Start: day, End: day}, nil
	}

	return DateRange{}, fmt.Errorf("unknown window kind: %d", int(w.Kind))
}
