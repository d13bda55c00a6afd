package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects one of the four textual encodings of a document. They are
// mutually lossless transforms of the canonical compact form.
type Format uint8

const (
	// FormatCompact is the canonical single-line JSON encoding.
	FormatCompact Format = iota
	// FormatPretty is indented JSON for human inspection.
	FormatPretty
	// FormatEscaped is the compact form with every quote escaped, for
	// embedding inside another quoted string.
	FormatEscaped
	// FormatBase64 is standard base64 of the compact form.
	FormatBase64
)

func (f Format) String() string {
	switch f {
	case FormatCompact:
		return "compact"
	case FormatPretty:
		return "pretty"
	case FormatEscaped:
		return "escaped"
	case FormatBase64:
		return "base64"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name to its Format value.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "compact":
		return FormatCompact, nil
	case "pretty":
		return FormatPretty, nil
	case "escaped":
		return FormatEscaped, nil
	case "base64":
		return FormatBase64, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Encode renders a document in the requested format.
func Encode(doc *Document, format Format) (string, error) {
	var raw []byte
	var err error
	switch format {
	case FormatPretty:
		raw, err = json.MarshalIndent(doc, "", "  ")
	default:
		raw, err = json.Marshal(doc)
	}
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	switch format {
	case FormatCompact, FormatPretty:
		return string(raw), nil
	case FormatEscaped:
		return strings.ReplaceAll(string(raw), `"`, `\"`), nil
	case FormatBase64:
		return base64.StdEncoding.EncodeToString(raw), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
}

// Decode parses any of the four encodings, sniffing which one it was
// handed: JSON object text (compact or pretty), quote-escaped JSON, or
// base64 of the compact form.
func Decode(data string) (*Document, error) {
	text := strings.TrimSpace(data)
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrBadEncoding)
	}

	switch {
	case strings.HasPrefix(text, `{\"`):
		text = strings.ReplaceAll(text, `\"`, `"`)
	case strings.HasPrefix(text, "{"):
		// Plain JSON, compact or pretty.
	default:
		raw, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: neither json nor base64", ErrBadEncoding)
		}
		text = string(raw)
	}

	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &doc, nil
}
