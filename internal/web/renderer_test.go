package web_test

import (
	"io"
	"io/fs"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai-playground/internal/models"
	"ai-playground/internal/web"
)

func render(t *testing.T, r *web.TemplateRenderer, name string, data any) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestTemplateRenderer_LoadsPages(t *testing.T) {
	r, err := web.NewTemplateRenderer(zap.NewNop(), nil)
	require.NoError(t, err)

	assert.True(t, r.Has("index.html"))
	assert.True(t, r.Has("error.html"))
	assert.False(t, r.Has(web.LayoutTemplate))
}

func TestTemplateRenderer_IndexIdle(t *testing.T) {
	r, err := web.NewTemplateRenderer(zap.NewNop(), nil)
	require.NoError(t, err)

	body := render(t, r, "index.html", web.PageData{
		Title:           "AI App",
		Description:     "Testing AI API features",
		MaxPromptLength: 350,
		State:           web.StateIdle,
	})

	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, `<title>AI App</title>`)
	assert.Contains(t, body, `<meta name="description" content="Testing AI API features" />`)
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/app.css" />`)
	assert.Contains(t, body, `maxlength="350"`)
	assert.Contains(t, body, `rows="7"`)
	assert.NotContains(t, body, "___Result___")
}

func TestTemplateRenderer_IndexDoneEscapesPrompt(t *testing.T) {
	r, err := web.NewTemplateRenderer(zap.NewNop(), nil)
	require.NoError(t, err)

	result := &models.GenerationResult{Prompt: `<script>alert(1)</script>`, Output: []string{"http://x/img.png"}}
	body := render(t, r, "index.html", web.PageData{
		Title:    "AI App",
		State:    web.StateDone,
		Result:   result,
		ImageURL: "http://x/img.png",
	})

	assert.Contains(t, body, `src="http://x/img.png"`)
	assert.NotContains(t, body, `<script>alert(1)</script>`)
}

func TestTemplateRenderer_ErrorPages(t *testing.T) {
	r, err := web.NewTemplateRenderer(zap.NewNop(), nil)
	require.NoError(t, err)

	root := render(t, r, "error.html", web.PageData{Boundary: &web.BoundaryView{
		Kind: web.BoundaryRoute, Root: true, Status: 404, StatusText: "Not Found",
	}})
	assert.Contains(t, root, "<title>Oops!</title>")
	assert.Contains(t, root, "404 - Not Found")
	assert.Contains(t, root, `href="/"`)
	assert.Contains(t, root, "go home")

	runtime := render(t, r, "error.html", web.PageData{Title: "AI App", Boundary: &web.BoundaryView{
		Kind: web.BoundaryRuntime, Message: "kaboom", Stack: "main.go:1",
	}})
	assert.Contains(t, runtime, "<h1>Error</h1>")
	assert.Contains(t, runtime, "<p>kaboom</p>")
	assert.Contains(t, runtime, "the stack trace is:")
	assert.Contains(t, runtime, "<pre>main.go:1</pre>")

	unknown := render(t, r, "error.html", web.PageData{Boundary: &web.BoundaryView{Kind: web.BoundaryUnknown}})
	assert.Contains(t, unknown, "<h1>Unknown Error</h1>")
}

func TestTemplateRenderer_MissingTemplate(t *testing.T) {
	r, err := web.NewTemplateRenderer(zap.NewNop(), nil)
	require.NoError(t, err)

	body := render(t, r, "nope.html", nil)
	assert.Equal(t, "template nope.html not found", body)
}

func TestStaticFS(t *testing.T) {
	for _, name := range []string{"/app.css", "/app.js"} {
		f, err := web.StaticFS().Open(name)
		require.NoError(t, err, name)
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
		_ = f.Close()
	}

	_, err := web.StaticFS().Open("/missing.css")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

// app.js находит элементы страницы по этим атрибутам.
func TestTemplateRenderer_IndexHasScriptHooks(t *testing.T) {
	r, err := web.NewTemplateRenderer(zap.NewNop(), nil)
	require.NoError(t, err)

	body := render(t, r, "index.html", web.PageData{MaxPromptLength: 350, State: web.StateIdle})

	assert.Contains(t, body, `data-generate-form`)
	assert.Contains(t, body, `<pre data-loading hidden>generating image...</pre>`)
	assert.Contains(t, body, `<div data-result>`)
	assert.Contains(t, body, `<script src="/static/app.js" defer></script>`)
}

func TestStaticFS_ScriptUsesPageHooks(t *testing.T) {
	f, err := web.StaticFS().Open("/app.js")
	require.NoError(t, err)
	defer f.Close()

	script, err := io.ReadAll(f)
	require.NoError(t, err)

	for _, hook := range []string{"[data-generate-form]", "[data-loading]", "[data-result]", "'X-Requested-With': 'fetch'"} {
		assert.Contains(t, string(script), hook)
	}
}
