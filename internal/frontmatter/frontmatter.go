// Package frontmatter splits content files into a YAML metadata header and a
// Markdown body, and decodes the header into typed document metadata.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Delimiter is the frontmatter fence line (without newline).
const Delimiter = "---"

// ErrMissingOpeningDelimiter indicates the document does not start with a
// frontmatter fence. Every content document must carry a metadata header.
var ErrMissingOpeningDelimiter = errors.New("document does not start with a frontmatter delimiter")

// ErrMissingClosingDelimiter indicates the document started with a frontmatter
// fence but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter opening delimiter found but closing delimiter is missing")

// Split separates the YAML frontmatter (`---` fenced) from the Markdown body.
//
// Unlike permissive readers, Split requires the header: a document without an
// opening fence is an error, matching fail-fast build semantics.
func Split(content []byte) (header []byte, body []byte, err error) {
	nl := detectNewline(content)

	open := []byte(Delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, nil, ErrMissingOpeningDelimiter
	}

	rest := content[len(open):]

	// Empty header: fence immediately closed.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], nil
	}

	closeSeq := []byte(nl + Delimiter + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing fence at EOF without trailing newline is still valid.
		tail := []byte(nl + Delimiter)
		if bytes.HasSuffix(rest, tail) {
			return rest[:len(rest)-len(tail)+len(nl)], []byte{}, nil
		}
		return nil, nil, ErrMissingClosingDelimiter
	}

	header = rest[:idx+len(nl)]
	body = rest[idx+len(closeSeq):]
	return header, body, nil
}

// Join reassembles a document from a raw header and body using `---` fences.
func Join(header []byte, body []byte) []byte {
	fence := []byte(Delimiter + "\n")
	out := make([]byte, 0, 2*len(fence)+len(header)+len(body))
	out = append(out, fence...)
	out = append(out, header...)
	if len(header) > 0 && header[len(header)-1] != '\n' {
		out = append(out, '\n')
	}
	out = append(out, fence...)
	out = append(out, body...)
	return out
}

// ParseYAML parses a raw header (without fences) into a generic map.
func ParseYAML(header []byte) (map[string]any, error) {
	if len(header) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
