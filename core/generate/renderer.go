package generate

import (
	"fmt"
	"strings"
	"text/template"
)

// Renderer turns a template and a data context into text. Malformed
// templates fail at parse time, missing data at execution time; both are
// reported as errors, never panics.
type Renderer interface {
	Render(name, templateText string, data any) (string, error)
}

type textRenderer struct {
	funcs template.FuncMap
}

// NewRenderer creates the default text/template backed renderer.
func NewRenderer() Renderer {
	return &textRenderer{
		funcs: template.FuncMap{
			"lower": strings.ToLower,
			"upper": strings.ToUpper,
			"snake": toSnake,
		},
	}
}

func (r *textRenderer) Render(name, templateText string, data any) (string, error) {
	tpl, err := template.New(name).Funcs(r.funcs).Option("missingkey=error").Parse(templateText)
	if err != nil {
		return "", fmt.Errorf("template %s has a syntax error: %w", name, err)
	}

	var out strings.Builder
	if err := tpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return out.String(), nil
}

// toSnake lowercases and converts camel-case boundaries and spaces to
// underscores, for generated file and identifier names.
func toSnake(s string) string {
	var out strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] >= 'a' && s[i-1] <= 'z' {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
			continue
		}
		if r == ' ' || r == '-' {
			out.WriteByte('_')
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
