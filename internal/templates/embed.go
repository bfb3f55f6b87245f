// Package templates provides the license page template and its rendering.
//
// Templates use text/template: license texts are substituted verbatim, the
// way the page has always been built. Templates that need escaping can pipe
// values through the built-in html function.
package templates

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed license.html.tmpl
var defaultPage string

// DefaultName is the name of the embedded template.
const DefaultName = "license.html.tmpl"

// Default returns the source of the embedded license page template.
func Default() string {
	return defaultPage
}

// Parse parses a template with the license helpers installed. Referencing a
// key that is missing from the data is an execution error.
func Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(FuncMap()).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tmpl, nil
}

// Load parses the template at path, or the embedded template when path is empty.
func Load(path string) (*template.Template, error) {
	if path == "" {
		return Parse(DefaultName, defaultPage)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	return Parse(filepath.Base(path), string(content))
}

// Render executes tmpl against data and returns the output.
// Nothing is returned on failure, so callers never see partial output.
func Render(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
