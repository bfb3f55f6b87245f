package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// TextExt is the extension of license text files.
const TextExt = ".txt"

// Well-known descriptor fields.
const (
	FieldShort = "short"
	FieldName  = "name"
	FieldText  = "text"
)

// Entry is one license descriptor from the manifest.
type Entry struct {
	// Key is the descriptor's key when the manifest is a JSON object; empty for arrays.
	Key string

	// Short identifies the license and names its text file.
	Short string

	// Fields holds every field of the descriptor as decoded, including "short".
	// Numbers are kept as json.Number.
	Fields map[string]any

	// Text is the full license text, set by the generator before rendering.
	Text string
}

// Get returns a descriptor field, or nil if the descriptor has no such field.
func (e *Entry) Get(field string) any {
	if field == FieldText {
		return e.Text
	}
	return e.Fields[field]
}

// GetShort returns the license identifier.
func (e *Entry) GetShort() string {
	return e.Short
}

// GetName returns the "name" field, falling back to the identifier.
func (e *Entry) GetName() string {
	if name, ok := e.Fields[FieldName].(string); ok && name != "" {
		return name
	}
	return e.Short
}

// GetText returns the license text.
func (e *Entry) GetText() string {
	return e.Text
}

// TextFile returns the path of the entry's text file inside dir.
func (e *Entry) TextFile(dir string) string {
	return filepath.Join(dir, e.Short+TextExt)
}

// Binding returns the template view of the entry: every descriptor field
// plus "text". The returned map is a copy.
func (e *Entry) Binding() map[string]any {
	out := make(map[string]any, len(e.Fields)+1)
	for k, v := range e.Fields {
		out[k] = v
	}
	out[FieldText] = e.Text
	return out
}

// Manifest is the ordered list of license entries loaded from one file.
type Manifest struct {
	// Path is the file the manifest was loaded from, if any.
	Path string

	// Entries are the descriptors in document order.
	Entries []*Entry
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	return len(m.Entries)
}

// Shorts returns the identifiers of all entries in order.
func (m *Manifest) Shorts() []string {
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Short
	}
	return out
}

// Bindings returns the template view of all entries in order.
func (m *Manifest) Bindings() []map[string]any {
	out := make([]map[string]any, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Binding()
	}
	return out
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse parses manifest JSON. A leading UTF-8 byte order mark is ignored.
func Parse(data []byte) (*Manifest, error) {
	data, err := decodeUTF8(data)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, syntaxError(err)
	}

	m := &Manifest{}
	switch tok {
	case json.Delim('['):
		for i := 0; dec.More(); i++ {
			entry, err := decodeEntry(dec, i, "")
			if err != nil {
				return nil, err
			}
			m.Entries = append(m.Entries, entry)
		}
	case json.Delim('{'):
		// A repeated key replaces the earlier entry at its original position.
		seen := make(map[string]int)
		for i := 0; dec.More(); i++ {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, syntaxError(err)
			}
			key, _ := keyTok.(string)
			entry, err := decodeEntry(dec, i, key)
			if err != nil {
				return nil, err
			}
			if pos, ok := seen[key]; ok {
				m.Entries[pos] = entry
				continue
			}
			seen[key] = len(m.Entries)
			m.Entries = append(m.Entries, entry)
		}
	default:
		return nil, &SyntaxError{Msg: fmt.Sprintf("top-level value must be an array or an object, got %v", describeToken(tok))}
	}

	// closing delimiter
	if _, err := dec.Token(); err != nil {
		return nil, syntaxError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &SyntaxError{Msg: "unexpected data after top-level value"}
	}

	return m, nil
}

func decodeEntry(dec *json.Decoder, index int, key string) (*Entry, error) {
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &EntryError{Index: index, Key: key, Reason: "descriptor must be an object"}
		}
		return nil, syntaxError(err)
	}
	if fields == nil {
		return nil, &EntryError{Index: index, Key: key, Reason: "descriptor must be an object"}
	}

	short, err := validateShort(fields[FieldShort])
	if err != nil {
		return nil, &EntryError{Index: index, Key: key, Field: FieldShort, Reason: err.Error()}
	}

	return &Entry{Key: key, Short: short, Fields: fields}, nil
}

// validateShort checks that v is usable as a file name inside the text directory.
func validateShort(v any) (string, error) {
	if v == nil {
		return "", errors.New("missing")
	}
	short, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("must be a string, got %T", v)
	}
	switch {
	case short == "":
		return "", errors.New("must not be empty")
	case short == "." || short == "..":
		return "", fmt.Errorf("%q is not a valid file name", short)
	case strings.ContainsAny(short, "/\\\x00"):
		return "", fmt.Errorf("%q must not contain path separators", short)
	}
	return short, nil
}

// ReadText reads a license text file as UTF-8. A leading byte order mark is
// dropped; the rest of the content is returned verbatim.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := decodeUTF8(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	return string(text), nil
}

// decodeUTF8 strips a leading BOM and replaces invalid UTF-8 sequences with U+FFFD.
func decodeUTF8(data []byte) ([]byte, error) {
	return unicode.UTF8BOM.NewDecoder().Bytes(data)
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	default:
		return fmt.Sprintf("%v", v)
	}
}
