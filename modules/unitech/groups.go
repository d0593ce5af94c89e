package unitech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNoStudents    = errors.New("no students in group")
	ErrBadJSON       = errors.New("malformed json")
)

// Поиск ID группы по её названию (без учёта регистра)
func (c *Client) FindGroup(ctx context.Context, name string) (int64, error) {
	url := c.BaseURL + "/api/groups"
	body, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("%w: %s", ErrBadJSON, url)
	}

	name = strings.TrimSpace(name)
	var groupID int64
	gjson.GetBytes(body, "data.groups").ForEach(func(_, group gjson.Result) bool {
		if strings.EqualFold(group.Get("groupName").String(), name) {
			groupID = group.Get("groupID").Int()

			return false
		}

		return true
	})
	if groupID == 0 {
		return 0, fmt.Errorf("%w: %s", ErrGroupNotFound, name)
	}

	return groupID, nil
}

// ID первого студента группы
func (c *Client) FirstStudent(ctx context.Context, groupID int64) (int64, error) {
	url := fmt.Sprintf("%s/api/students?groupID=%d", c.BaseURL, groupID)
	body, err := c.get(ctx, url)
	if err != nil {
		return 0, err
	}
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("%w: %s", ErrBadJSON, url)
	}

	student := gjson.GetBytes(body, "data.listStudents.0.studentID")
	if !student.Exists() || student.Int() == 0 {
		return 0, fmt.Errorf("%w: %d", ErrNoStudents, groupID)
	}

	return student.Int(), nil
}

// Студент, по которому загружается расписание группы
func (c *Client) FindStudent(ctx context.Context, groupName string) (int64, error) {
	groupID, err := c.FindGroup(ctx, groupName)
	if err != nil {
		return 0, err
	}

	return c.FirstStudent(ctx, groupID)
}
