package generator

import (
	"errors"
	"fmt"
	"io/fs"

	oerrors "github.com/frakbot/licensegen/internal/errors"
)

// Step names a stage of a generator run.
type Step string

const (
	StepClean  Step = "clean"
	StepLoad   Step = "load"
	StepEnrich Step = "enrich"
	StepRender Step = "render"
	StepWrite  Step = "write"
)

// StepError is implemented by the errors of a failed step. An invalid
// configuration and a cancelled context are returned as is.
type StepError interface {
	error

	// Step returns the stage that failed.
	Step() Step
}

// ManifestLoadError indicates the manifest is missing, unreadable or malformed.
type ManifestLoadError struct {
	// Path is the manifest file.
	Path string

	// Err is the underlying read or parse error.
	Err error
}

func (e *ManifestLoadError) Error() string {
	return fmt.Sprintf("loading manifest %s: %v", e.Path, e.Err)
}

// Step returns StepLoad.
func (e *ManifestLoadError) Step() Step {
	return StepLoad
}

// Unwrap returns the sentinel classifying the failure and the underlying error.
func (e *ManifestLoadError) Unwrap() []error {
	return []error{classify(e.Err, oerrors.ErrValidation), e.Err}
}

// LicenseTextMissingError indicates a manifest entry whose <short>.txt file
// does not exist or cannot be read.
type LicenseTextMissingError struct {
	// Short is the entry's identifier.
	Short string

	// Path is the text file that was looked up.
	Path string

	// Err is the underlying read error.
	Err error
}

func (e *LicenseTextMissingError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("license %q: text file %s not found", e.Short, e.Path)
	}
	return fmt.Sprintf("license %q: reading text file %s: %v", e.Short, e.Path, e.Err)
}

// Step returns StepEnrich.
func (e *LicenseTextMissingError) Step() Step {
	return StepEnrich
}

// Unwrap returns the sentinel classifying the failure and the underlying error.
func (e *LicenseTextMissingError) Unwrap() []error {
	return []error{classify(e.Err, oerrors.ErrNotFound), e.Err}
}

// TemplateRenderError indicates the template could not be read, parsed or executed.
type TemplateRenderError struct {
	// Template is the template path, or the embedded template's name.
	Template string

	// Err is the underlying error.
	Err error
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("rendering template %s: %v", e.Template, e.Err)
}

// Step returns StepRender.
func (e *TemplateRenderError) Step() Step {
	return StepRender
}

// Unwrap returns the sentinel classifying the failure and the underlying error.
func (e *TemplateRenderError) Unwrap() []error {
	return []error{classify(e.Err, oerrors.ErrValidation), e.Err}
}

// OutputWriteError indicates the output file could not be removed or written.
type OutputWriteError struct {
	// Path is the output file.
	Path string

	// Op is "remove" for the clean step and "write" for the final write.
	Op string

	// Err is the underlying filesystem error.
	Err error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("%s output %s: %v", e.Op, e.Path, e.Err)
}

// Step returns StepClean for removals and StepWrite otherwise.
func (e *OutputWriteError) Step() Step {
	if e.Op == "remove" {
		return StepClean
	}
	return StepWrite
}

// Unwrap returns the sentinel classifying the failure and the underlying error.
func (e *OutputWriteError) Unwrap() []error {
	if errors.Is(e.Err, fs.ErrPermission) {
		return []error{oerrors.ErrPermission, e.Err}
	}
	return []error{oerrors.ErrWrite, e.Err}
}

// classify maps filesystem errors to sentinels, falling back to def.
func classify(err, def error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return oerrors.ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return oerrors.ErrPermission
	default:
		return def
	}
}
