package httpsvc

import (
	"embed"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplateFuncs — функции, доступные в шаблонах.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": Money,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}

// Money форматирует сумму в минимальных единицах как "12.34".
func Money(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// LoadTemplates загружает шаблоны из dir; пустой dir — встроенные шаблоны.
func LoadTemplates(dir string) (*template.Template, error) {
	base := template.New("").Funcs(TemplateFuncs())
	if dir == "" {
		tmpl, err := base.ParseFS(embeddedTemplates, "templates/*.html")
		if err != nil {
			return nil, fmt.Errorf("parse embedded templates: %w", err)
		}
		return tmpl, nil
	}

	tmpl, err := base.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates from %s: %w", dir, err)
	}
	return tmpl, nil
}
