package ical

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Значения по умолчанию для отсутствующих полей занятия
const (
	NoSummary     = "No summary"
	NoLocation    = "No location"
	NoDescription = "No description"
)

// Занятие из календаря Unitech
type Event struct {
	Start    time.Time
	End      time.Time
	Title    string
	Location string
	Notes    string
}

// Ошибка разбора календаря целиком
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse ICS file: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Разбор .ics в список занятий
//
// Занятия без начала или конца пропускаются, порядок совпадает с порядком в файле.
// Сообщения о пропущенных занятиях пишутся в debug (может быть nil)
func Parse(body []byte, debug *log.Logger) ([]Event, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ParseError{Err: errors.New("empty calendar")}
	}
	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	var events []Event
	for i, ve := range cal.Events() {
		ev, err := parseEvent(ve)
		if err != nil {
			if debug != nil {
				debug.Printf("skip vevent #%d: %s", i, err)
			}

			continue
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseEvent(ve *ics.VEvent) (Event, error) {
	ev := Event{
		Title:    propOr(ve, ics.ComponentPropertySummary, NoSummary),
		Location: propOr(ve, ics.ComponentPropertyLocation, NoLocation),
		Notes:    propOr(ve, ics.ComponentPropertyDescription, NoDescription),
	}
	if ve.GetProperty(ics.ComponentPropertyDtStart) == nil {
		return ev, errors.New("missing DTSTART")
	}
	if ve.GetProperty(ics.ComponentPropertyDtEnd) == nil {
		return ev, errors.New("missing DTEND")
	}

	var err error
	if ev.Start, err = ve.GetStartAt(); err != nil {
		return ev, fmt.Errorf("DTSTART: %w", err)
	}
	if ev.End, err = ve.GetEndAt(); err != nil {
		return ev, fmt.Errorf("DTEND: %w", err)
	}

	return ev, nil
}

// Значение свойства или заглушка, если свойства нет
func propOr(ve *ics.VEvent, prop ics.ComponentProperty, def string) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return def
	}

	return p.Value
}
