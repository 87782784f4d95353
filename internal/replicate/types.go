package replicate

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingToken - клиент создан без токена.
	ErrMissingToken = errors.New("replicate api token is empty")
	// ErrPredictionFailed - предсказание завершилось со статусом failed.
	ErrPredictionFailed = errors.New("prediction failed")
	// ErrPredictionCanceled - предсказание было отменено.
	ErrPredictionCanceled = errors.New("prediction canceled")
	// ErrUnexpectedOutput - output не является списком строк.
	ErrUnexpectedOutput = errors.New("unexpected prediction output")
)

// Status - статус предсказания Replicate.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
	StatusAborted    Status = "aborted"
)

// Terminated сообщает, что предсказание больше не изменится.
func (s Status) Terminated() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled, StatusAborted:
		return true
	}
	return false
}

// PredictionRequest - тело POST /predictions.
type PredictionRequest struct {
	Version string `json:"version"`
	Input   any    `json:"input"`
}

// Prediction - подмножество ресурса prediction, которое нам нужно.
type Prediction struct {
	ID      string          `json:"id"`
	Version string          `json:"version"`
	Status  Status          `json:"status"`
	Input   json.RawMessage `json:"input,omitempty"`
	Output  json.RawMessage `json:"output,omitempty"`
	Error   any             `json:"error,omitempty"`
	Logs    string          `json:"logs,omitempty"`
	URLs    PredictionURLs  `json:"urls"`
}

// PredictionURLs - ссылки, которые API возвращает вместе с предсказанием.
type PredictionURLs struct {
	Get    string `json:"get"`
	Cancel string `json:"cancel"`
}

// OutputURLs декодирует output как список URL.
// Одиночная строка превращается в список из одного элемента, null - в пустой список.
func (p *Prediction) OutputURLs() ([]string, error) {
	if len(p.Output) == 0 || string(p.Output) == "null" {
		return []string{}, nil
	}
	var urls []string
	if err := json.Unmarshal(p.Output, &urls); err == nil {
		return urls, nil
	}
	var single string
	if err := json.Unmarshal(p.Output, &single); err == nil {
		return []string{single}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnexpectedOutput, string(p.Output))
}

// ErrorMessage возвращает текст ошибки предсказания, если она есть.
func (p *Prediction) ErrorMessage() string {
	switch e := p.Error.(type) {
	case nil:
		return ""
	case string:
		return e
	default:
		b, _ := json.Marshal(e)
		return string(b)
	}
}

// APIError - ответ API с кодом не 2xx.
type APIError struct {
	StatusCode int    `json:"-"`
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Title
	}
	if msg == "" {
		return fmt.Sprintf("replicate api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("replicate api returned status %d: %s", e.StatusCode, msg)
}
