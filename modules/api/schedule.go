package api

import (
	"context"
	"log"
	"time"

	"rasp_unitech/modules/ical"
	"rasp_unitech/modules/schedule"
)

// Источник .ics с расписанием студента
type FeedFetcher interface {
	FetchICS(ctx context.Context, studentID int64) ([]byte, error)
}

// Получение расписания: загрузка, разбор, выбор периода и вывод
type Service struct {
	feed  FeedFetcher
	debug *log.Logger
}

func NewService(feed FeedFetcher, debug *log.Logger) *Service {
	return &Service{feed: feed, debug: debug}
}

// Расписание студента на период в текстовом виде
//
// Категорию ошибки можно получить через KindOf
func (s *Service) GetSchedule(
	ctx context.Context,
	studentID int64,
	window schedule.Window,
	now time.Time,
) (
	string,
	error,
) {
	requestsTotal.WithLabelValues(window.Kind.String()).Inc()
	dates, err := schedule.Resolve(window, now)
	if err != nil {
		return "", s.fail(err)
	}
	events, err := s.Events(ctx, studentID)
	if err != nil {
		return "", err
	}

	return schedule.Render(events, dates), nil
}

// Занятия студента из .ics
func (s *Service) Events(ctx context.Context, studentID int64) ([]ical.Event, error) {
	body, err := s.Feed(ctx, studentID)
	if err != nil {
		return nil, err
	}
	events, err := ical.Parse(body, s.debug)
	if err != nil {
		return nil, s.fail(err)
	}

	return events, nil
}

// Исходный .ics студента
func (s *Service) Feed(ctx context.Context, studentID int64) ([]byte, error) {
	begin := time.Now()
	body, err := s.feed.FetchICS(ctx, studentID)
	fetchSeconds.Observe(time.Since(begin).Seconds())
	if err != nil {
		return nil, s.fail(err)
	}

	return body, nil
}

func (s *Service) fail(err error) error {
	kind := KindOf(err)
	errorsTotal.WithLabelValues(kind.String()).Inc()
	if s.debug != nil {
		s.debug.Printf("schedule error [%s]: %s", kind, err)
	}

	return err
}
