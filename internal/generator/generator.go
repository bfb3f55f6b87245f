// Package generator builds the license page: it reads the license manifest,
// attaches each license's text, renders the page template and writes the
// result, removing the previous output first.
package generator

import (
	"context"

	"github.com/frakbot/licensegen/internal/config"
	"github.com/frakbot/licensegen/internal/manifest"
	"github.com/frakbot/licensegen/internal/output"
	"github.com/frakbot/licensegen/internal/templates"
)

// outputPerm is the file mode of the generated page.
const outputPerm = 0o644

// Generator renders the license page described by its configuration.
// Constructing a Generator has no side effects; all work happens in Run,
// Clean, Render and Licenses.
type Generator struct {
	cfg config.Generator
}

// New creates a Generator for cfg.
func New(cfg config.Generator) *Generator {
	return &Generator{cfg: cfg}
}

// Config returns the generator's configuration.
func (g *Generator) Config() config.Generator {
	return g.cfg
}

// Result describes a successful render.
type Result struct {
	// OutputPath is the file that was written.
	OutputPath string

	// Removed reports whether a previous output file was deleted first.
	Removed bool

	// Licenses are the rendered entries in manifest order, with text attached.
	Licenses []*manifest.Entry

	// Size is the number of bytes written.
	Size int
}

// CleanResult describes the outcome of the clean step.
type CleanResult struct {
	// Path is the output file that was targeted.
	Path string

	// Removed reports whether a file existed and was deleted.
	Removed bool
}

// Run executes the full task: clean, then render.
//
// Step sequence:
//  1. CLEAN:  remove the previous output, if any
//  2. LOAD:   parse the manifest
//  3. ENRICH: read <textDir>/<short>.txt for every entry
//  4. RENDER: execute the template with the "licenses" binding
//  5. WRITE:  write the page atomically
//
// The first failure aborts the run. Because clean runs first, a failed run
// leaves no output file behind.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	cleaned, err := g.Clean(ctx)
	if err != nil {
		return nil, err
	}

	result, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}
	result.Removed = cleaned.Removed
	return result, nil
}

// Clean removes the output file. A missing file is not an error.
func (g *Generator) Clean(ctx context.Context) (*CleanResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	removed, err := removeFile(g.cfg.OutputPath)
	if err != nil {
		return nil, &OutputWriteError{Path: g.cfg.OutputPath, Op: "remove", Err: err}
	}

	output.Debug("clean", "path", g.cfg.OutputPath, "removed", removed)
	return &CleanResult{Path: g.cfg.OutputPath, Removed: removed}, nil
}

// Render runs the load, enrich, render and write steps without cleaning.
// The output file is replaced only if every step succeeds.
func (g *Generator) Render(ctx context.Context) (*Result, error) {
	m, err := g.Licenses(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := g.render(m)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(g.cfg.OutputPath, page, outputPerm); err != nil {
		return nil, &OutputWriteError{Path: g.cfg.OutputPath, Op: "write", Err: err}
	}

	output.Debug("page written", "path", g.cfg.OutputPath, "bytes", len(page))
	return &Result{
		OutputPath: g.cfg.OutputPath,
		Licenses:   m.Entries,
		Size:       len(page),
	}, nil
}

// Licenses loads the manifest and attaches every license text, without
// touching the output file.
func (g *Generator) Licenses(ctx context.Context) (*manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := manifest.Load(g.cfg.ManifestPath)
	if err != nil {
		return nil, &ManifestLoadError{Path: g.cfg.ManifestPath, Err: err}
	}
	output.Debug("manifest loaded", "path", g.cfg.ManifestPath, "licenses", m.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.enrich(m); err != nil {
		return nil, err
	}
	return m, nil
}

// enrich reads each entry's text file into the entry.
func (g *Generator) enrich(m *manifest.Manifest) error {
	for _, e := range m.Entries {
		path := e.TextFile(g.cfg.TextDir)
		text, err := manifest.ReadText(path)
		if err != nil {
			return &LicenseTextMissingError{Short: e.Short, Path: path, Err: err}
		}
		e.Text = text
		output.Debug("license text loaded", "short", e.Short, "bytes", len(text))
	}
	return nil
}

// render executes the template against the enriched manifest.
func (g *Generator) render(m *manifest.Manifest) ([]byte, error) {
	name := g.cfg.TemplatePath
	if name == "" {
		name = templates.DefaultName
	}

	tmpl, err := templates.Load(g.cfg.TemplatePath)
	if err != nil {
		return nil, &TemplateRenderError{Template: name, Err: err}
	}

	page, err := templates.Render(tmpl, PageData(m))
	if err != nil {
		return nil, &TemplateRenderError{Template: name, Err: err}
	}
	return page, nil
}

// PageData returns the template data for m: a single "licenses" binding
// listing every entry's fields plus its text.
func PageData(m *manifest.Manifest) map[string]any {
	return map[string]any{
		"licenses": m.Bindings(),
	}
}
