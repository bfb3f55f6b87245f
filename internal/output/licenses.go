package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"sigs.k8s.io/yaml"
)

// LicenseInfo provides what the list output needs from a manifest entry.
// It lets this package render entries without importing the manifest package.
type LicenseInfo interface {
	GetShort() string
	GetName() string
	GetText() string
	Binding() map[string]any
}

// ListOptions controls license list output.
type ListOptions struct {
	// Format is the output format.
	Format Format

	// Writer is the output destination.
	Writer io.Writer
}

// WriteLicenses writes licenses in manifest order in the requested format.
// Table output summarises the text by size; yaml and json include it verbatim.
func WriteLicenses(licenses []LicenseInfo, opts ListOptions) error {
	switch opts.Format {
	case FormatTable:
		return writeLicenseTable(licenses, opts.Writer)
	case FormatJSON:
		return writeLicenseJSON(licenses, opts.Writer)
	case FormatYAML:
		return writeLicenseYAML(licenses, opts.Writer)
	default:
		return fmt.Errorf("unsupported list format %q", opts.Format)
	}
}

func writeLicenseTable(licenses []LicenseInfo, w io.Writer) error {
	tbl := NewTable("SHORT", "NAME", "TEXT")
	for _, l := range licenses {
		tbl.Row(l.GetShort(), l.GetName(), formatSize(len(l.GetText())))
	}
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

func writeLicenseJSON(licenses []LicenseInfo, w io.Writer) error {
	data, err := json.MarshalIndent(bindings(licenses), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling licenses to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeLicenseYAML(licenses []LicenseInfo, w io.Writer) error {
	data, err := yaml.Marshal(bindings(licenses))
	if err != nil {
		return fmt.Errorf("marshaling licenses to YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func bindings(licenses []LicenseInfo) []map[string]any {
	out := make([]map[string]any, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, l.Binding())
	}
	return out
}

func formatSize(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return strconv.Itoa(n) + " bytes"
}
