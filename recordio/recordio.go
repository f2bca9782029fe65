// Package recordio reads and writes plain records (mappings and sequences
// of mappings) as JSON or YAML files.
//
// Generic reads keep JSON integers exact: a number without a fraction or
// exponent that fits an int64 decodes to int64, any other number to
// float64. YAML mapping keys that are not strings are turned into their
// string form so every generic record can be written back as JSON.
//
// Filesystem errors are returned as they come from the os package, so
// callers can test them with errors.Is(err, fs.ErrNotExist) and friends.
package recordio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported record file format")

// Format identifies a record encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "%q", path)
	}
}

// ReadJSON decodes a JSON file into generic records.
func ReadJSON(path string) (any, error) {
	var v any
	if err := readJSONInto(path, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// EncodeJSON writes data to w as a single JSON value followed by a newline,
// indented by four spaces when prettify is set. HTML characters are
// written as is.
func EncodeJSON(w io.Writer, data any, prettify bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if prettify {
		enc.SetIndent("", "    ")
	}
	return enc.Encode(data)
}

// WriteJSON encodes data as JSON, indented by four spaces when prettify is set.
func WriteJSON(data any, path string, prettify bool) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, data, prettify); err != nil {
		return errors.Wrapf(err, "encoding JSON for %q", path)
	}

	return os.WriteFile(path, bytes.TrimSuffix(buf.Bytes(), []byte("\n")), 0o644)
}

// ReadYAML decodes a YAML file into generic records.
func ReadYAML(path string) (any, error) {
	var v any
	if err := readYAMLInto(path, &v); err != nil {
		return nil, err
	}
	return normalize(v), nil
}

// WriteYAML encodes data as YAML.
func WriteYAML(data any, path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.Wrapf(err, "encoding YAML for %q", path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "encoding YAML for %q", path)
	}

	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Read decodes a JSON or YAML file, chosen by extension, into generic records.
func Read(path string) (any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	if format == FormatYAML {
		return ReadYAML(path)
	}
	return ReadJSON(path)
}

// ReadInto decodes a JSON or YAML file, chosen by extension, into v.
// JSON numbers landing in an interface value are json.Number.
func ReadInto(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if format == FormatYAML {
		return readYAMLInto(path, v)
	}
	return readJSONInto(path, v)
}

// Write encodes data as JSON or YAML, chosen by extension. prettify only
// applies to JSON; YAML is always indented.
func Write(data any, path string, prettify bool) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if format == FormatYAML {
		return WriteYAML(data, path)
	}
	return WriteJSON(data, path, prettify)
}

func readJSONInto(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(err, "decoding JSON from %q", path)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.Errorf("decoding JSON from %q: unexpected data after top-level value", path)
	}
	return nil
}

func readYAMLInto(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		return errors.Wrapf(err, "decoding YAML from %q", path)
	}
	return nil
}

// normalize rewrites decoded generic values in place of their decoder
// specific forms: json.Number becomes int64 or float64, and mappings with
// non-string keys become map[string]any.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	default:
		return v
	}
}
