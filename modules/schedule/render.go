package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"rasp_unitech/modules/ical"
)

const (
	NoLessonsFmt = "%s занятий нет 0_о"
	NoWeek       = "Расписания на неделю нет."
	DaySeparator = "<----------!---------->"
)

// Время пары по расписанию звонков
type Slot struct {
	Begin string
	End   string
}

// Расписание звонков: пара определяется только по времени начала
var Slots = []Slot{
	{"09:00", "10:30"},
	{"10:40", "12:10"},
	{"12:30", "14:00"},
	{"14:10", "15:40"},
	{"15:50", "17:20"},
	{"17:25", "18:55"},
	{"19:10", "20:30"},
}

var weekend = []time.Weekday{time.Saturday, time.Sunday}

// Номер пары по времени начала; 0, если время не совпадает ни с одной парой
func SlotNumber(begin time.Time) int {
	str := begin.In(MSK).Format("15:04")
	for i, slot := range Slots {
		if slot.Begin == str {
			return i + 1
		}
	}

	return 0
}

// Занятие в текстовом виде
func EventToStr(ev ical.Event) string {
	class := Classify(ev.Title)
	var prefix string
	if n := SlotNumber(ev.Start); n != 0 {
		prefix = fmt.Sprintf("%d пара: ", n)
	}

	return fmt.Sprintf(
		" 🕘 %s%s-%s\n%s %s\nАудитория: %s\n%s\n",
		prefix,
		ev.Start.In(MSK).Format("15:04"),
		ev.End.In(MSK).Format("15:04"),
		class.Icon,
		class.Title,
		ev.Location,
		ev.Notes,
	)
}

// Занятия, начинающиеся в указанный день, по порядку начала
func DayEvents(events []ical.Event, date time.Time) []ical.Event {
	date = Date(date)
	var day []ical.Event
	for _, ev := range events {
		if Date(ev.Start).Equal(date) {
			day = append(day, ev)
		}
	}
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].Start.Before(day[j].Start)
	})

	return day
}

func eventsToStr(events []ical.Event) string {
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, EventToStr(ev))
	}

	return strings.Join(lines, "\n")
}

// Расписание на один день
func RenderDay(events []ical.Event, date time.Time) string {
	day := DayEvents(events, date)
	if len(day) == 0 {
		return fmt.Sprintf(NoLessonsFmt, FormatDate(date))
	}

	return eventsToStr(day)
}

// Расписание на диапазон дат включительно
//
// Пустые суббота и воскресенье пропускаются, для пустых будних дней
// выводится "занятий нет"
func RenderRange(events []ical.Event, start, end time.Time) string {
	start, end = Date(start), Date(end)
	var inRange []ical.Event
	for _, ev := range events {
		d := Date(ev.Start)
		if !d.Before(start) && !d.After(end) {
			inRange = append(inRange, ev)
		}
	}
	if len(inRange) == 0 {
		return NoWeek
	}

	var parts []string
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayEvents := DayEvents(inRange, day)
		if len(dayEvents) == 0 && slices.Contains(weekend, day.Weekday()) {
			continue
		}
		date := FormatDate(day)
		parts = append(parts, fmt.Sprintf("%s\n📅 %s", DaySeparator, date))
		if len(dayEvents) != 0 {
			parts = append(parts, eventsToStr(dayEvents))
		} else {
			parts = append(parts, fmt.Sprintf(NoLessonsFmt, date))
		}
	}

	return strings.Join(parts, "\n")
}

// Расписание на период
func Render(events []ical.Event, r DateRange) string {
	if r.IsSingleDay() {
		return RenderDay(events, r.Start)
	}

	return RenderRange(events, r.Start, r.End)
}
