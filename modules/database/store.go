package database

import (
	"time"

	"github.com/google/uuid"
	"xorm.io/builder"
	"xorm.io/xorm"
)

// Получение настроек чата и создание новых при необходимости
func GetChatUser(db *xorm.Engine, chatID int64) (*ChatUser, error) {
	var user ChatUser
	has, err := db.ID(chatID).Get(&user)
	if err != nil {
		return nil, err
	}
	if has {
		return &user, nil
	}

	user = ChatUser{
		ChatID:    chatID,
		StudentID: DefaultStudentID,
		PosTag:    Ready,
		PosTime:   time.Now(),
	}
	if _, err := db.InsertOne(&user); err != nil {
		// Чат мог быть создан параллельным запросом
		var existing ChatUser
		if has, getErr := db.ID(chatID).Get(&existing); getErr == nil && has {
			return &existing, nil
		}

		return nil, err
	}

	return &user, nil
}

// Смена группы чата; при гонке побеждает последняя запись
func SetGroup(db *xorm.Engine, chatID int64, studentID int64, groupName string) error {
	if _, err := GetChatUser(db, chatID); err != nil {
		return err
	}
	_, err := db.ID(chatID).
		Cols("StudentID", "GroupName").
		Update(&ChatUser{StudentID: studentID, GroupName: groupName})

	return err
}

// Перевод чата в новое положение диалога
func SetPosition(db *xorm.Engine, user *ChatUser, pos Position, now time.Time) error {
	user.PosTag = pos
	user.PosTime = now
	_, err := db.ID(user.ChatID).Cols("PosTag", "PosTime").Update(user)

	return err
}

// Сброс диалогов, брошенных до before
//
// Возвращает количество сброшенных чатов
func ResetStale(db *xorm.Engine, before time.Time) (int, error) {
	var users []ChatUser
	if err := db.Where(builder.Neq{"PosTag": Ready}).Find(&users); err != nil {
		return 0, err
	}
	count := 0
	for i := range users {
		if !users[i].PosTime.Before(before) {
			continue
		}
		if err := SetPosition(db, &users[i], Ready, time.Now()); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// ID всех известных чатов
func ChatIDs(db *xorm.Engine) ([]int64, error) {
	var users []ChatUser
	if err := db.Cols("ChatID").Find(&users); err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ChatID)
	}

	return ids, nil
}

// Сохранение обратной связи
func SaveFeedback(db *xorm.Engine, fb *Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	if fb.Created.IsZero() {
		fb.Created = time.Now()
	}
	_, err := db.InsertOne(fb)

	return err
}
