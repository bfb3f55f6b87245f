package cmd

import (
	"errors"
	"fmt"

	oerrors "github.com/frakbot/licensegen/internal/errors"
	"github.com/frakbot/licensegen/internal/generator"
	"github.com/frakbot/licensegen/internal/output"
)

// reportError logs err under the task prefix together with a hint, and
// returns an ExitError carrying the mapped exit code. The returned error is
// marked as printed so main does not print it again.
func reportError(task string, err error) error {
	if err == nil {
		return nil
	}

	log := output.TaskLogger(task)

	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		// DetailError renders its own multi-line layout.
		log.Error(detail.Type)
		output.Details(detail.Error())
	} else {
		log.Error(err.Error())
		if hint := hintFor(err); hint != "" {
			log.Info(hint)
		}
	}

	return &oerrors.ExitError{Code: oerrors.ExitCodeFromError(err), Err: err, Printed: true}
}

// hintFor returns actionable guidance for generator failures.
func hintFor(err error) string {
	var (
		loadErr    *generator.ManifestLoadError
		textErr    *generator.LicenseTextMissingError
		renderErr  *generator.TemplateRenderError
		writeErr   *generator.OutputWriteError
		permission = errors.Is(err, oerrors.ErrPermission)
	)

	switch {
	case errors.As(err, &textErr):
		return fmt.Sprintf("add %s or remove %q from the manifest", textErr.Path, textErr.Short)
	case errors.As(err, &loadErr) && errors.Is(err, oerrors.ErrNotFound):
		return "run licensegen in the directory holding licenses.json, or pass --manifest"
	case errors.As(err, &loadErr):
		return "the manifest must be a JSON array or object of entries, each with a string \"short\" field"
	case errors.As(err, &renderErr) && errors.Is(err, oerrors.ErrNotFound):
		return "check --template, or leave it empty to use the built-in template"
	case errors.As(err, &renderErr):
		return "templates receive a single \"licenses\" list; every field they use must exist on each entry"
	case errors.As(err, &writeErr) && permission:
		return fmt.Sprintf("check write permissions for %s", writeErr.Path)
	case errors.As(err, &writeErr) && errors.Is(err, generator.ErrOutputIsDirectory):
		return "check that --output names a file, not a directory"
	case errors.As(err, &writeErr):
		return fmt.Sprintf("check that every parent of %s is a writable directory", writeErr.Path)
	default:
		return ""
	}
}
