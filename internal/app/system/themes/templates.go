// internal/app/system/themes/templates.go
package themes

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// builtinVersions lists the compiled-in themes. The version participates in
// render cache keys, so bump it whenever a template's output changes.
var builtinVersions = map[string]string{
	ThemeStorefront: "1.2.0",
	ThemeWanderer:   "1.0.3",
	ThemeBistro:     "1.1.1",
	ThemeAtrium:     "2.0.0",
}

// templateFuncs are shared by every built-in theme. jsonld marks stored
// structured data as safe so it renders as a JSON object, not an escaped
// string literal.
var templateFuncs = template.FuncMap{
	"jsonld": func(s string) template.JS { return template.JS(s) },
}

func parseThemeTemplate(name string) (*template.Template, error) {
	path := fmt.Sprintf("templates/%s.gohtml", name)
	tmpl, err := template.New(name + ".gohtml").Funcs(templateFuncs).ParseFS(templateFS, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tmpl, nil
}
