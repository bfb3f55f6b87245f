package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frakbot/licensegen/internal/config"
	oerrors "github.com/frakbot/licensegen/internal/errors"
	"github.com/frakbot/licensegen/internal/manifest"
	"github.com/frakbot/licensegen/internal/templates"
	"github.com/frakbot/licensegen/internal/testutil"
)

// fixture is a project whose generator configuration tests may adjust.
type fixture struct {
	*testutil.Project
	cfg config.Generator
}

func newFixture(t *testing.T, manifestJSON string, texts map[string]string) *fixture {
	t.Helper()
	p := testutil.NewProject(t, manifestJSON, texts)
	return &fixture{Project: p, cfg: p.Config()}
}

const mitManifest = `[{"short":"MIT","name":"MIT License"}]`

func TestRun_MITScenario(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "Permission is hereby granted..."})

	result, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	html := f.ReadOutput(t)
	assert.Contains(t, html, "Permission is hereby granted...")
	assert.Contains(t, html, "MIT License")
	assert.Equal(t, f.cfg.OutputPath, result.OutputPath)
	assert.False(t, result.Removed)
	assert.Equal(t, len(html), result.Size)
	require.Len(t, result.Licenses, 1)
	assert.Equal(t, "Permission is hereby granted...", result.Licenses[0].Text)
}

func TestRun_ContainsEveryTextAndShortVerbatim(t *testing.T) {
	texts := map[string]string{
		"MIT":        "Permission is hereby granted, free of charge...\n\nTHE SOFTWARE IS PROVIDED \"AS IS\"",
		"Apache-2.0": "Licensed under the Apache License, Version 2.0 <http://www.apache.org/licenses/LICENSE-2.0>",
		"BSD-3":      "Redistribution and use in source & binary forms\r\nare permitted",
	}
	manifestJSON := `[
		{"short":"MIT","name":"MIT License"},
		{"short":"Apache-2.0","name":"Apache License 2.0","url":"https://www.apache.org/licenses/LICENSE-2.0"},
		{"short":"BSD-3"}
	]`
	f := newFixture(t, manifestJSON, texts)

	_, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	html := f.ReadOutput(t)
	for short, text := range texts {
		assert.Contains(t, html, short)
		assert.Contains(t, html, text)
	}
}

func TestRun_Idempotent(t *testing.T) {
	f := newFixture(t, `{"b":{"short":"B"},"a":{"short":"A"}}`, map[string]string{"A": "alpha", "B": "beta"})
	gen := New(f.cfg)

	_, err := gen.Run(context.Background())
	require.NoError(t, err)
	first := f.ReadOutput(t)

	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	second := f.ReadOutput(t)

	assert.Equal(t, first, second, "outputs must be byte-identical")
	assert.True(t, result.Removed, "second run cleans the first run's output")
}

func TestRun_ReplacesStaleOutput(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "fresh text"})
	f.WriteOutput(t, "<html>STALE CONTENT FROM AN OLDER RUN, MUCH LONGER THAN THE NEW PAGE ...</html>"+string(make([]byte, 4096)))

	result, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)

	html := f.ReadOutput(t)
	assert.True(t, result.Removed)
	assert.NotContains(t, html, "STALE CONTENT")
	assert.Contains(t, html, "fresh text")
	assert.Equal(t, result.Size, len(html))
}

func TestRun_MissingTextFile(t *testing.T) {
	f := newFixture(t, `[{"short":"MIT"},{"short":"GPL"}]`, map[string]string{"MIT": "mit text"})

	_, err := New(f.cfg).Run(context.Background())
	require.Error(t, err)

	var missing *LicenseTextMissingError
	require.True(t, errors.As(err, &missing), "got %T: %v", err, err)
	assert.Equal(t, "GPL", missing.Short)
	assert.Equal(t, filepath.Join(f.cfg.TextDir, "GPL.txt"), missing.Path)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.Equal(t, StepEnrich, missing.Step())

	assert.NoFileExists(t, f.cfg.OutputPath)
}

func TestRun_MissingTextFileRemovesStaleOutput(t *testing.T) {
	f := newFixture(t, `[{"short":"GPL"}]`, nil)
	f.WriteOutput(t, "old page")

	_, err := New(f.cfg).Run(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, f.cfg.OutputPath, "stale output is removed and not recreated")
}

func TestRun_MalformedManifestAbortsBeforeReadingTexts(t *testing.T) {
	f := newFixture(t, `[{"short":"MIT",]`, nil)
	// A directory where a text file is expected would fail enrichment if it were attempted.
	require.NoError(t, os.MkdirAll(filepath.Join(f.cfg.TextDir, "MIT.txt"), 0o755))

	_, err := New(f.cfg).Run(context.Background())
	require.Error(t, err)

	var loadErr *ManifestLoadError
	require.True(t, errors.As(err, &loadErr), "got %T: %v", err, err)
	assert.Equal(t, StepLoad, loadErr.Step())
	assert.ErrorIs(t, err, oerrors.ErrValidation)

	var missing *LicenseTextMissingError
	assert.False(t, errors.As(err, &missing))
	assert.NoFileExists(t, f.cfg.OutputPath)
}

func TestRun_MissingManifest(t *testing.T) {
	f := newFixture(t, mitManifest, nil)
	require.NoError(t, os.Remove(f.cfg.ManifestPath))

	_, err := New(f.cfg).Run(context.Background())

	var loadErr *ManifestLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestRun_EntryWithoutShortIsFatal(t *testing.T) {
	f := newFixture(t, `[{"name":"Unnamed"}]`, nil)

	_, err := New(f.cfg).Run(context.Background())

	var loadErr *ManifestLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), `field "short" missing`)
}

func TestRun_TemplateSyntaxError(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	f.cfg.TemplatePath = filepath.Join(f.Dir, "license.html")
	require.NoError(t, os.WriteFile(f.cfg.TemplatePath, []byte(`{{range .licenses}}`), 0o644))

	_, err := New(f.cfg).Run(context.Background())

	var renderErr *TemplateRenderError
	require.True(t, errors.As(err, &renderErr), "got %T: %v", err, err)
	assert.Equal(t, f.cfg.TemplatePath, renderErr.Template)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.NoFileExists(t, f.cfg.OutputPath)
}

func TestRun_TemplateBindingMismatch(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	f.cfg.TemplatePath = filepath.Join(f.Dir, "license.html")
	require.NoError(t, os.WriteFile(f.cfg.TemplatePath, []byte(`{{range .licenses}}{{.copyright}}{{end}}`), 0o644))
	f.WriteOutput(t, "old page")

	_, err := New(f.cfg).Run(context.Background())

	var renderErr *TemplateRenderError
	require.True(t, errors.As(err, &renderErr), "got %T: %v", err, err)
	assert.Equal(t, StepRender, renderErr.Step())
	assert.NoFileExists(t, f.cfg.OutputPath)
}

func TestRun_MissingTemplateFile(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	f.cfg.TemplatePath = filepath.Join(f.Dir, "nope.html")

	_, err := New(f.cfg).Run(context.Background())

	var renderErr *TemplateRenderError
	require.True(t, errors.As(err, &renderErr))
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestRun_CustomTemplate(t *testing.T) {
	f := newFixture(t, `[{"short":"MIT","name":"MIT License","year":2014}]`, map[string]string{"MIT": "text"})
	f.cfg.TemplatePath = filepath.Join(f.Dir, "license.html")
	src := `{{range .licenses}}<li id="{{anchor .short}}">{{.name}} ({{.year}}): {{.text}}</li>{{end}}`
	require.NoError(t, os.WriteFile(f.cfg.TemplatePath, []byte(src), 0o644))

	_, err := New(f.cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `<li id="mit">MIT License (2014): text</li>`, f.ReadOutput(t))
}

func TestRun_OutputPathIsDirectory(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	require.NoError(t, os.MkdirAll(f.cfg.OutputPath, 0o755))

	_, err := New(f.cfg).Run(context.Background())

	var writeErr *OutputWriteError
	require.True(t, errors.As(err, &writeErr), "got %T: %v", err, err)
	assert.Equal(t, "remove", writeErr.Op)
	assert.Equal(t, StepClean, writeErr.Step())
	assert.ErrorIs(t, err, oerrors.ErrWrite)
	assert.ErrorIs(t, err, ErrOutputIsDirectory)
}

func TestRun_UnwritableOutput(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	// A regular file where the output directory should be.
	blocker := filepath.Join(f.Dir, "www")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	_, err := New(f.cfg).Run(context.Background())

	var writeErr *OutputWriteError
	require.True(t, errors.As(err, &writeErr), "got %T: %v", err, err)
	assert.Equal(t, f.cfg.OutputPath, writeErr.Path)
	assert.ErrorIs(t, err, oerrors.ErrWrite)
	assert.NotErrorIs(t, err, ErrOutputIsDirectory)
	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
}

func TestRun_InvalidConfig(t *testing.T) {
	_, err := New(config.Generator{}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)

	var stepErr StepError
	assert.False(t, errors.As(err, &stepErr), "no step ran")
}

func TestRun_CanceledContext(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	f.WriteOutput(t, "old page")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(f.cfg).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	var stepErr StepError
	assert.False(t, errors.As(err, &stepErr))
	assert.FileExists(t, f.cfg.OutputPath, "nothing runs after cancellation")
}

func TestClean(t *testing.T) {
	t.Run("absent output is not an error", func(t *testing.T) {
		f := newFixture(t, mitManifest, nil)

		result, err := New(f.cfg).Clean(context.Background())
		require.NoError(t, err)
		assert.False(t, result.Removed)
		assert.Equal(t, f.cfg.OutputPath, result.Path)
	})

	t.Run("removes existing output", func(t *testing.T) {
		f := newFixture(t, mitManifest, nil)
		f.WriteOutput(t, "old page")

		result, err := New(f.cfg).Clean(context.Background())
		require.NoError(t, err)
		assert.True(t, result.Removed)
		assert.NoFileExists(t, f.cfg.OutputPath)
	})
}

func TestRender_DoesNotCleanOnFailure(t *testing.T) {
	f := newFixture(t, `[{"short":"GPL"}]`, nil)
	f.WriteOutput(t, "old page")

	_, err := New(f.cfg).Render(context.Background())
	require.Error(t, err)
	assert.Equal(t, "old page", f.ReadOutput(t), "render alone never touches the output on failure")
}

func TestLicenses(t *testing.T) {
	f := newFixture(t, `[{"short":"MIT"},{"short":"ISC"}]`, map[string]string{"MIT": "m", "ISC": "i"})

	m, err := New(f.cfg).Licenses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MIT", "ISC"}, m.Shorts())
	assert.Equal(t, "i", m.Entries[1].Text)
	assert.NoFileExists(t, f.cfg.OutputPath)
}

func TestPageData(t *testing.T) {
	f := newFixture(t, mitManifest, map[string]string{"MIT": "text"})
	m, err := New(f.cfg).Licenses(context.Background())
	require.NoError(t, err)

	data := PageData(m)
	licenses, ok := data["licenses"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, licenses, 1)
	assert.Equal(t, "MIT License", licenses[0]["name"])
	assert.Equal(t, "text", licenses[0]["text"])
}

func TestConfig(t *testing.T) {
	cfg := config.Generator{ManifestPath: "m", TextDir: "t", OutputPath: "o"}
	assert.Equal(t, cfg, New(cfg).Config())
}

func TestRun_SampleFixture(t *testing.T) {
	p := testutil.CopyFixture(t, "sample")

	result, err := New(p.Config()).Run(context.Background())
	require.NoError(t, err)

	html := p.ReadOutput(t)
	for _, e := range result.Licenses {
		assert.Contains(t, html, e.Short)
		assert.Contains(t, html, e.Text)
		assert.Contains(t, html, `id="`+templates.Anchor(e.Short)+`"`)
	}
	assert.Equal(t, []string{"Apache-2.0", "MIT", "BSD-3-Clause"}, shorts(result))
	assert.Contains(t, html, "https://www.apache.org/licenses/LICENSE-2.0")

	// Every identifier listed in the fixture manifest is printed as written.
	m, err := manifest.Load(p.ManifestPath)
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())
	for _, short := range m.Shorts() {
		assert.Contains(t, html, "<code>"+short+"</code>")
	}
}

func shorts(r *Result) []string {
	out := make([]string, len(r.Licenses))
	for i, e := range r.Licenses {
		out[i] = e.Short
	}
	return out
}
