package schedule

import (
	"fmt"
	"time"
)

var Month = []string{
	"января",
	"февраля",
	"марта",
	"апреля",
	"мая",
	"июня",
	"июля",
	"августа",
	"сентября",
	"октября",
	"ноября",
	"декабря",
}

// Названия месяцев в именительном падеже
var MonthNominative = []string{
	"январь",
	"февраль",
	"март",
	"апрель",
	"май",
	"июнь",
	"июль",
	"август",
	"сентябрь",
	"октябрь",
	"ноябрь",
	"декабрь",
}

var weekdays = []string{
	"воскресенье",
	"понедельник",
	"вторник",
	"среда",
	"четверг",
	"пятница",
	"суббота",
}

// Дата в формате "17 сентября (среда)"
func FormatDate(date time.Time) string {
	date = date.In(MSK)

	return fmt.Sprintf(
		"%d %s (%s)",
		date.Day(),
		Month[date.Month()-1],
		weekdays[date.Weekday()],
	)
}
