package database

import "time"

// Студент, расписание которого показывается по умолчанию (ПИ-23)
var DefaultStudentID int64 = 90893

// Положение чата в диалоге
type Position = string

const (
	Ready           Position = "ready"
	FeedbackWaiting Position = "feedback"
	DaySelection    Position = "day"
	ChangeWaiting   Position = "change"
)

// Настройки чата: выбранная группа и положение в диалоге
type ChatUser struct {
	ChatID    int64 `xorm:"pk"`
	StudentID int64
	GroupName string
	PosTag    Position
	PosTime   time.Time
}

// Сообщение обратной связи
type Feedback struct {
	ID       string `xorm:"pk"`
	ChatID   int64
	UserID   int64
	UserName string
	Text     string `xorm:"text"`
	Created  time.Time
}
