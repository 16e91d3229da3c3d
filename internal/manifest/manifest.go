// Package manifest reads and writes the version field of JSON project
// manifests like package.json and composer.json.
//
// All fields of a manifest are kept as raw JSON in their original order,
// changing the version rewrites only the version value. The document is
// re-indented with 2 spaces when it is marshaled.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/simplesurance/verbump/internal/orderedmap"
)

// VersionKey is the name of the manifest field containing the version.
const VersionKey = "version"

const indent = "  "

// Manifest is a parsed JSON manifest.
type Manifest struct {
	fields          *orderedmap.Map[string, json.RawMessage]
	trailingNewline bool
}

// Parse parses a manifest. The document must be a JSON object.
func Parse(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing json failed: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("document is not a json object, starts with: %v", tok)
	}

	fields := orderedmap.New[string, json.RawMessage]()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing json failed: %w", err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing json failed, expected object key, got: %v", tok)
		}

		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return nil, fmt.Errorf("parsing value of field %q failed: %w", key, err)
		}

		fields.Set(key, val)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing json failed: %w", err)
	}

	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("parsing json failed: %w", err)
		}

		return nil, fmt.Errorf("unexpected data after json object: %v", tok)
	}

	return &Manifest{
		fields:          fields,
		trailingNewline: bytes.HasSuffix(data, []byte("\n")),
	}, nil
}

// Version returns the value of the version field.
func (m *Manifest) Version() (string, error) {
	raw, exists := m.fields.Get(VersionKey)
	if !exists {
		return "", fmt.Errorf("manifest has no %q field", VersionKey)
	}

	var version string
	if err := json.Unmarshal(raw, &version); err != nil {
		return "", fmt.Errorf("%q field is not a string: %s", VersionKey, string(raw))
	}

	return version, nil
}

// SetVersion sets the value of the version field.
// If the field does not exist, it is appended.
func (m *Manifest) SetVersion(version string) error {
	raw, err := encodeString(version)
	if err != nil {
		return err
	}

	m.fields.Set(VersionKey, raw)

	return nil
}

// Marshal returns the JSON representation of the manifest, indented with 2
// spaces. The result ends with a newline if the parsed document did.
func (m *Manifest) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	var err error

	compact.WriteByte('{')

	m.fields.Foreach(func(key string, val json.RawMessage) bool {
		var encKey []byte

		encKey, err = encodeString(key)
		if err != nil {
			return false
		}

		if compact.Len() > 1 {
			compact.WriteByte(',')
		}

		compact.Write(encKey)
		compact.WriteByte(':')
		compact.Write(val)

		return true
	})
	if err != nil {
		return nil, err
	}

	compact.WriteByte('}')

	var result bytes.Buffer
	if err := json.Indent(&result, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("indenting json failed: %w", err)
	}

	// json.Indent never adds a trailing newline, it is only written when
	// the source file ended with one to keep the file's convention
	if m.trailingNewline {
		result.WriteByte('\n')
	}

	return result.Bytes(), nil
}

// encodeString returns s as JSON string, in contrast to json.Marshal it does
// not escape HTML characters.
func encodeString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
