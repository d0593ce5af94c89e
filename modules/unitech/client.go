package unitech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"
)

// Адрес портала по умолчанию
const DefaultURL = "https://es.unitech-mo.ru"

// Вид ошибки загрузки
type FetchKind int

const (
	// Сервер ответил ошибкой или недоступен
	Unavailable FetchKind = iota
	// Истекло время ожидания ответа
	Timeout
	// Пустой ответ
	Empty
)

func (k FetchKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case Empty:
		return "empty"
	}

	return "unavailable"
}

// Ошибка обращения к порталу Unitech
type FetchError struct {
	Kind FetchKind
	// HTTP-статус ответа, 0 если ответа не было
	Status int
	URL    string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("unitech %s: response %d: %s", e.Kind, e.Status, e.URL)
	}

	return fmt.Sprintf("unitech %s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Клиент API портала Unitech
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Debug   *log.Logger
}

// Клиент с ограничением времени на запрос
func NewClient(baseURL string, timeout time.Duration, debug *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Debug:   debug,
	}
}

// Адрес .ics с расписанием студента
func (c *Client) FeedURL(studentID int64) string {
	return fmt.Sprintf("%s/api/Rasp?idStudent=%d&iCal=true", c.BaseURL, studentID)
}

// Загрузка .ics с расписанием студента
//
// Повторов нет: при ошибке возвращается *FetchError
func (c *Client) FetchICS(ctx context.Context, studentID int64) ([]byte, error) {
	body, err := c.get(ctx, c.FeedURL(studentID))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &FetchError{Kind: Empty, URL: c.FeedURL(studentID), Err: errors.New("empty response from server")}
	}

	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logf("failed to download %s: %s", url, err)

		return nil, transportError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logf("failed to download %s: %s", url, resp.Status)

		return nil, &FetchError{Kind: Unavailable, Status: resp.StatusCode, URL: url, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logf("failed to read %s: %s", url, err)

		return nil, transportError(url, err)
	}

	return body, nil
}

func transportError(url string, err error) *FetchError {
	kind := Unavailable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = Timeout
	}

	return &FetchError{Kind: kind, URL: url, Err: err}
}

func (c *Client) logf(format string, v ...interface{}) {
	if c.Debug != nil {
		c.Debug.Printf(format, v...)
	}
}
