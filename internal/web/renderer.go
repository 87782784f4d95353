package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// LayoutTemplate - корневой шаблон, в который встраивается каждая страница.
const LayoutTemplate = "layout.html"

// StaticFS отдает встроенные css/js для router.StaticFS.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// embed гарантирует наличие каталога, сюда попасть нельзя
		panic(fmt.Sprintf("static assets are missing: %v", err))
	}
	return http.FS(sub)
}

// TemplateRenderer реализует gin render.HTMLRender поверх html/template.
// Каждая страница парсится в свою копию layout, чтобы блоки "title" и "content"
// не конфликтовали между страницами.
type TemplateRenderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewTemplateRenderer парсит layout и все страницы из встроенной файловой системы.
func NewTemplateRenderer(logger *zap.Logger, funcMap template.FuncMap) (*TemplateRenderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("TemplateRenderer")

	layout, err := template.New(LayoutTemplate).Funcs(funcMap).ParseFS(templateFS, "templates/"+LayoutTemplate)
	if err != nil {
		log.Error("Failed to parse layout template", zap.Error(err))
		return nil, fmt.Errorf("failed to parse layout template: %w", err)
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	r := &TemplateRenderer{
		templates: make(map[string]*template.Template, len(pages)),
		logger:    log,
	}
	for _, page := range pages {
		name := path.Base(page)
		if name == LayoutTemplate {
			continue
		}
		tmpl, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if _, err := tmpl.ParseFS(templateFS, page); err != nil {
			log.Error("Failed to parse page template", zap.String("template", name), zap.Error(err))
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}

	log.Info("Templates loaded", zap.Int("pages", len(r.templates)))
	return r, nil
}

// Has сообщает, есть ли страница с таким именем.
func (r *TemplateRenderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Instance реализует render.HTMLRender.
func (r *TemplateRenderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		r.logger.Error("Template not found", zap.String("templateName", name))
		return render.String{Format: "template %s not found", Data: []any{name}}
	}
	return render.HTML{
		Template: tmpl,
		Name:     LayoutTemplate,
		Data:     data,
	}
}
