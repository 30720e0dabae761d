package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasic(t *testing.T) {
	content := []byte("---\ntitle: Hello\ndate: 2024-01-01\n---\n\n# Body\n")

	header, body, err := Split(content)
	require.NoError(t, err)
	assert.Equal(t, "title: Hello\ndate: 2024-01-01\n", string(header))
	assert.Equal(t, "\n# Body\n", string(body))
}

func TestSplitEmptyHeader(t *testing.T) {
	content := []byte("---\n---\nbody\n")

	header, body, err := Split(content)
	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, "body\n", string(body))
}

func TestSplitCRLF(t *testing.T) {
	content := []byte("---\r\ntitle: Hello\r\ndate: 2024-01-01\r\n---\r\nbody\r\n")

	header, body, err := Split(content)
	require.NoError(t, err)
	assert.Equal(t, "title: Hello\r\ndate: 2024-01-01\r\n", string(header))
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitClosingFenceAtEOF(t *testing.T) {
	content := []byte("---\ntitle: Hello\n---")

	header, body, err := Split(content)
	require.NoError(t, err)
	assert.Equal(t, "title: Hello\n", string(header))
	assert.Empty(t, body)
}

func TestSplitMissingOpeningDelimiter(t *testing.T) {
	_, _, err := Split([]byte("# Just markdown\n"))
	assert.ErrorIs(t, err, ErrMissingOpeningDelimiter)
}

func TestSplitMissingClosingDelimiter(t *testing.T) {
	_, _, err := Split([]byte("---\ntitle: Hello\nno closing fence\n"))
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestJoinRoundTrip(t *testing.T) {
	header := []byte("title: Hello\ndate: 2024-01-01\n")
	body := []byte("\nSome body text.\n")

	joined := Join(header, body)
	gotHeader, gotBody, err := Split(joined)
	require.NoError(t, err)
	assert.Equal(t, string(header), string(gotHeader))
	assert.Equal(t, string(body), string(gotBody))
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML([]byte("title: Hello\ntags:\n  - go\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", fields["title"])

	fields, err = ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = ParseYAML([]byte(":\n:bad"))
	assert.Error(t, err)
}
