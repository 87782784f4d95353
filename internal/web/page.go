package web

import "ai-playground/internal/models"

// ResultState - состояние блока результата на главной странице.
type ResultState string

const (
	StateIdle  ResultState = "idle"
	StateDone  ResultState = "done"
	StateEmpty ResultState = "empty" // Генерация прошла, но изображений нет
)

// PageData - данные для шаблонов index.html и error.html.
type PageData struct {
	Title           string
	Description     string
	MaxPromptLength int
	State           ResultState
	Result          *models.GenerationResult
	ImageURL        string
	Boundary        *BoundaryView
}

// BoundaryKind - один из трех видов ошибок, которые умеет показывать страница ошибки.
type BoundaryKind string

const (
	BoundaryRoute   BoundaryKind = "route"
	BoundaryRuntime BoundaryKind = "runtime"
	BoundaryUnknown BoundaryKind = "unknown"
)

// BoundaryView - то, что показывает страница ошибки.
// Root == true - корневая страница с заголовком "Oops!" и ссылкой на главную.
type BoundaryView struct {
	Kind       BoundaryKind
	Root       bool
	Status     int
	StatusText string
	Data       string
	Message    string
	Stack      string
}

func (b BoundaryView) IsRoute() bool   { return b.Kind == BoundaryRoute }
func (b BoundaryView) IsRuntime() bool { return b.Kind == BoundaryRuntime }
