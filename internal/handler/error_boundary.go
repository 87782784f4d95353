package handler

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"ai-playground/internal/web"
)

const pageScopeKey = "error_boundary_page_scope"

// RouteError - HTTP ошибка маршрутизации (статус + текст статуса).
type RouteError struct {
	Status     int
	StatusText string
	Data       string
}

// NewRouteError создает RouteError со стандартным текстом статуса.
func NewRouteError(status int, data string) *RouteError {
	return &RouteError{Status: status, StatusText: http.StatusText(status), Data: data}
}

func (e *RouteError) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.StatusText, e.Data)
	}
	return fmt.Sprintf("%d %s", e.Status, e.StatusText)
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// ClassifyError раскладывает то, что было выброшено, по трем видам:
// RouteError, обычная ошибка (сообщение + стек) и все остальное.
func ClassifyError(v any) web.BoundaryView {
	err, ok := v.(error)
	if !ok || err == nil {
		return web.BoundaryView{Kind: web.BoundaryUnknown}
	}

	var routeErr *RouteError
	if errors.As(err, &routeErr) {
		return web.BoundaryView{
			Kind:       web.BoundaryRoute,
			Status:     routeErr.Status,
			StatusText: routeErr.StatusText,
			Data:       routeErr.Data,
		}
	}

	view := web.BoundaryView{Kind: web.BoundaryRuntime, Message: err.Error()}
	var tracer stackTracer
	if errors.As(err, &tracer) {
		view.Stack = strings.TrimLeft(fmt.Sprintf("%+v", tracer.StackTrace()), "\n")
	}
	return view
}

// classify учитывает настройку вывода стектрейса.
func (h *Handler) classify(v any) web.BoundaryView {
	view := ClassifyError(v)
	if !h.showStack {
		view.Stack = ""
	}
	return view
}

// pageBoundary помечает маршрут: его ошибки показываются страничной версией ErrorBoundary.
func (h *Handler) pageBoundary(c *gin.Context) {
	c.Set(pageScopeKey, true)
	c.Next()
}

// ErrorBoundary перехватывает панику, ошибки из c.Errors и ответы со статусом >= 400
// без тела, и вместо них отдает HTML страницу ошибки.
func (h *Handler) ErrorBoundary(c *gin.Context) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
			panic(rec)
		}

		stack := string(debug.Stack())
		view := h.classify(rec)
		if view.Kind == web.BoundaryRuntime && h.showStack {
			view.Stack = stack
		}

		panicErr, ok := rec.(error)
		if !ok {
			panicErr = fmt.Errorf("panic: %v", rec)
		}
		_ = c.Error(panicErr)
		h.logger.Error("Recovered from panic",
			zap.Any("panic", rec),
			zap.String("path", c.Request.URL.Path),
			zap.String("stack", stack),
		)

		if c.Writer.Written() {
			c.Abort()
			return
		}
		h.renderBoundary(c, http.StatusInternalServerError, view)
	}()

	c.Next()

	if c.Writer.Written() {
		return
	}

	status := c.Writer.Status()
	if len(c.Errors) > 0 {
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		h.renderBoundary(c, status, h.classify(c.Errors.Last().Err))
		return
	}

	if status >= http.StatusBadRequest {
		h.renderBoundary(c, status, h.classify(NewRouteError(status, "")))
	}
}

func (h *Handler) renderBoundary(c *gin.Context, status int, view web.BoundaryView) {
	view.Root = !c.GetBool(pageScopeKey)

	h.logger.Debug("Rendering error boundary",
		zap.String("kind", string(view.Kind)),
		zap.Bool("root", view.Root),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
	)

	page := h.indexPage(web.StateIdle)
	page.Boundary = &view
	c.HTML(status, "error.html", page)
	c.Abort()
}
