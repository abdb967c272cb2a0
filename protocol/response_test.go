package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nczempin/rawcurl/errors"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		header string
		body   string
	}{
		{name: "typical", header: "HTTP/1.1 200 OK\r\nContent-Length: 5", body: "hello"},
		{name: "empty body", header: "HTTP/1.1 204 No Content", body: ""},
		{name: "empty header", header: "", body: "body"},
		{name: "body with single CRLFs", header: "HTTP/1.1 200 OK", body: "line1\r\nline2\r\n"},
		{name: "binary body", header: "HTTP/1.1 200 OK", body: "\x00\x01\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []byte(tt.header + "\r\n\r\n" + tt.body)

			split, err := Split(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.header, string(split.Header))
			assert.Equal(t, tt.body, string(split.Body))
		})
	}
}

func TestSplit_FirstDelimiterWins(t *testing.T) {
	split, err := Split([]byte("H\r\n\r\nB1\r\n\r\nB2"))
	require.NoError(t, err)
	assert.Equal(t, "H", string(split.Header))
	assert.Equal(t, "B1\r\n\r\nB2", string(split.Body))
}

func TestSplit_ViewsAliasRaw(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\n\r\nbody")

	split, err := Split(raw)
	require.NoError(t, err)

	raw[len(raw)-1] = 'Y'
	assert.Equal(t, "bodY", string(split.Body))

	// Appending to the header view must not clobber the body
	_ = append(split.Header, 'X')
	assert.Equal(t, "bodY", string(split.Body))
}

func TestSplit_MissingDelimiter(t *testing.T) {
	inputs := []string{
		"",
		"HTTP/1.1 200 OK",
		"HTTP/1.1 200 OK\r\nContent-Length: 5\r\n",
		"HTTP/1.1 200 OK\n\nbody",
		"HTTP/1.1 200 OK\r\n\r",
	}

	for _, in := range inputs {
		split, err := Split([]byte(in))
		require.Error(t, err, "%q", in)
		assert.True(t, errors.IsMalformedResponse(err), "%q", in)
		assert.Nil(t, split.Header)
		assert.Nil(t, split.Body)

		httpErr, ok := err.(*errors.HttpError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorProtocol, httpErr.Type)
		assert.Equal(t, errors.ProtocolErrorMalformedResponse, httpErr.ProtocolErr)
	}
}
