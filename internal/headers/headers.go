package headers

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/text/encoding/unicode"
)

const crlf = "\r\n"

// Field is a single "Name: value" header line. Name keeps the case it was
// received or set with.
type Field struct {
	Name  string
	Value string
}

func (f Field) String() string {
	return f.Name + ": " + f.Value
}

// Headers is an ordered list of header fields. Lookups ignore case, order
// is kept as received.
type Headers []Field

func NewHeaders() Headers {
	return Headers{}
}

// Parse consumes one header line from data. It returns done when data starts
// with the blank line that ends the header block, and n == 0 with no error
// when data holds no complete line yet. Invalid UTF-8 in the line is replaced.
func (h *Headers) Parse(data []byte) (n int, done bool, err error) {
	idx := bytes.Index(data, []byte(crlf))
	if idx == -1 {
		return 0, false, nil
	}
	if idx == 0 {
		return len(crlf), true, nil
	}

	f, err := ParseLine(Decode(data[:idx]))
	if err != nil {
		return 0, false, err
	}
	h.Add(f.Name, f.Value)

	return idx + len(crlf), false, nil
}

// ParseLine splits a raw header line into a Field.
func ParseLine(line string) (Field, error) {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return Field{}, fmt.Errorf("malformed header line (no colon): %q", line)
	}
	if len(name) == 0 || strings.ContainsAny(name, " \t") {
		return Field{}, fmt.Errorf("malformed field-name: %q", line)
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return Field{}, fmt.Errorf("invalid character in field-name: %q", line)
	}

	return Field{Name: name, Value: strings.TrimSpace(value)}, nil
}

// Add appends a field, keeping any existing fields with the same name.
func (h *Headers) Add(key, value string) {
	*h = append(*h, Field{Name: key, Value: value})
}

// Set replaces every field named key with a single one, in the position of
// the first existing match.
func (h *Headers) Set(key, value string) {
	for i, f := range *h {
		if strings.EqualFold(f.Name, key) {
			(*h)[i].Value = value
			h.delFrom(i+1, key)
			return
		}
	}
	h.Add(key, value)
}

func (h Headers) Get(key string) (value string) {
	value, _ = h.Lookup(key)
	return value
}

// Lookup returns the value of the first field named key.
func (h Headers) Lookup(key string) (string, bool) {
	for _, f := range h {
		if strings.EqualFold(f.Name, key) {
			return f.Value, true
		}
	}
	return "", false
}

func (h *Headers) delFrom(start int, key string) {
	kept := (*h)[:start]
	for _, f := range (*h)[start:] {
		if !strings.EqualFold(f.Name, key) {
			kept = append(kept, f)
		}
	}
	*h = kept
}

// Decode turns raw head bytes into text, replacing invalid UTF-8 with U+FFFD.
func Decode(b []byte) string {
	s, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(s)
}

// Lines returns the fields as raw "Name: value" lines.
func (h Headers) Lines() []string {
	lines := make([]string, 0, len(h))
	for _, f := range h {
		lines = append(lines, f.String())
	}
	return lines
}
