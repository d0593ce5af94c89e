package schedule

import (
	"strings"
)

// Тип занятия
type Category int

const (
	Test Category = iota
	PhysicalEducation
	Lecture
	Practice
	Lab
	Other
)

var Icons = map[Category]string{
	Test:              "✏️",
	PhysicalEducation: "💪",
	Lecture:           "📚",
	Practice:          "💻",
	Lab:               "❗",
	Other:             "🔔",
}

var Labels = map[Category]string{
	Test:              "Зачет",
	PhysicalEducation: "Физкультура",
	Lecture:           "Лекция",
	Practice:          "Практика",
	Lab:               "Лабораторная",
	Other:             "Прочее",
}

const peCourse = "элективные курсы по физической культуре"

func (c Category) Icon() string {
	return Icons[c]
}

func (c Category) String() string {
	return Labels[c]
}

// Результат классификации названия занятия
type Classification struct {
	Category Category
	Icon     string
	// Название без метки типа и с подписью типа в скобках
	Title string
}

// Определение типа занятия по его названию
//
// Порядок проверок важен: зачёт, физкультура, лекция, практика, лабораторная.
// Название без слов классифицируется как "Прочее"
func Classify(title string) Classification {
	fields := strings.Fields(title)
	lower := strings.ToLower(title)
	var first string
	if len(fields) > 0 {
		first = strings.ToLower(fields[0])
	}

	var category Category
	switch {
	case strings.Contains(first, "зач"):
		category = Test
	case strings.Contains(lower, "физ") || strings.Contains(lower, peCourse):
		category = PhysicalEducation
	case strings.Contains(first, "лек"):
		category = Lecture
	case strings.Contains(first, "пр"):
		category = Practice
	case strings.Contains(first, "лаб"):
		category = Lab
	default:
		category = Other
	}

	display := title
	if category != Other && len(fields) > 1 {
		display = strings.Join(fields[1:], " ")
	}

	return Classification{
		Category: category,
		Icon:     category.Icon(),
		Title:    display + " (" + category.String() + ")",
	}
}
