package filesrvapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMalformed marks a 2xx response whose body lacks a field the caller needs.
var ErrMalformed = errors.New("malformed response")

// Listing is the success payload of POST /files.
type Listing struct {
	Path     string
	Contents []json.RawMessage
}

// ErrorMessage extracts the server-reported reason from an error body. The
// file server replies with {"error": "..."}; plain-text bodies are returned
// trimmed, and an empty body falls back to the status text.
func ErrorMessage(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 {
		var envelope struct {
			Error *string `json:"error"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Error != nil {
			return *envelope.Error
		}
		if trimmed[0] != '{' {
			return strings.TrimSpace(string(trimmed))
		}
	}
	return http.StatusText(status)
}

// DecodeListing parses a directory listing. Both a string "path" and an array
// "contents" must be present.
func DecodeListing(body []byte) (*Listing, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	var out Listing
	if err := requireField(fields, "path", &out.Path); err != nil {
		return nil, err
	}
	if err := requireField(fields, "contents", &out.Contents); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeContents returns only the "contents" array; the echoed "path" is not
// required.
func DecodeContents(body []byte) ([]json.RawMessage, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	var contents []json.RawMessage
	if err := requireField(fields, "contents", &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// DecodeContent returns the string "content" field of a read response.
func DecodeContent(body []byte) (string, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return "", err
	}
	var content string
	if err := requireField(fields, "content", &content); err != nil {
		return "", err
	}
	return content, nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformed)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformed)
	}
	return fields, nil
}

func requireField(fields map[string]json.RawMessage, name string, out any) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing field %q", ErrMalformed, name)
	}
	// null would otherwise decode silently into a zero value.
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: field %q is null", ErrMalformed, name)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrMalformed, name, err)
	}
	return nil
}
