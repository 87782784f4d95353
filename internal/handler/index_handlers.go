package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ai-playground/internal/web"
)

const (
	fetchHeader      = "X-Requested-With"
	fetchHeaderValue = "fetch"
)

var errNoResult = errors.New("image generation returned no result")

// actionErrorResponse - тело ответа для fetch-клиента при ошибке генерации.
type actionErrorResponse struct {
	Error actionError `json:"error"`
}

type actionError struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// isFetchRequest - запрос от fetch-клиента страницы: ему отдаем JSON вместо HTML.
func isFetchRequest(c *gin.Context) bool {
	if c.GetHeader(fetchHeader) == fetchHeaderValue {
		return true
	}
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func (h *Handler) showIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.indexPage(web.StateIdle))
}

// handleGenerate - action формы: один вызов генерации на одну отправку.
// Длина промпта на сервере не ограничивается.
func (h *Handler) handleGenerate(c *gin.Context) {
	prompt := c.PostForm("prompt")
	wantsJSON := isFetchRequest(c)

	log := h.logger.With(
		zap.String("handler", "handleGenerate"),
		zap.Int("promptLen", len(prompt)),
		zap.Bool("json", wantsJSON),
	)
	log.Info("Received image generation request")

	outcome := h.imageService.Generate(c.Request.Context(), prompt)

	if outcome.Failed() {
		err := outcome.Err
		if err == nil {
			err = errNoResult
		}
		log.Warn("Image generation failed", zap.Error(err))
		_ = c.Error(err)

		if wantsJSON {
			view := h.classify(err)
			c.JSON(http.StatusBadGateway, actionErrorResponse{
				Error: actionError{Message: view.Message, Stack: view.Stack},
			})
			return
		}
		// Страницу ошибки отрисует ErrorBoundary
		c.Status(http.StatusBadGateway)
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, outcome.Result)
		return
	}

	page := h.indexPage(web.StateEmpty)
	page.Result = outcome.Result
	if url, ok := outcome.Result.First(); ok {
		page.State = web.StateDone
		page.ImageURL = url
	}
	c.HTML(http.StatusOK, "index.html", page)
}
