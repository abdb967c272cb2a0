package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_Get(t *testing.T) {
	req := string(Frame("GET", "example.com", "80", "", ProtocolLabel, nil, ""))

	assert.True(t, strings.HasPrefix(req, "GET / HTTP/1.1\r\n"), req)
	assert.Contains(t, req, "Host: example.com\r\n")
	assert.NotContains(t, req, "Content-Length")
	assert.NotContains(t, req, "Content-Type")

	want := "GET / HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Accept: */*\r\n" +
		"Connection: close\r\n" +
		"User-Agent: rawcurl/1.0\r\n" +
		"\r\n"
	assert.Equal(t, want, req)
}

func TestFrame_PathAndPortHandling(t *testing.T) {
	req := string(Frame("GET", "example.com", "8080", "a/b?c=d", ProtocolLabel, nil, ""))

	assert.True(t, strings.HasPrefix(req, "GET /a/b?c=d HTTP/1.1\r\n"), req)
	assert.Contains(t, req, "Host: example.com\r\n")
	assert.NotContains(t, req, "8080")
}

func TestFrame_GetIgnoresHeadersAndBody(t *testing.T) {
	req := string(Frame("GET", "example.com", "80", "", ProtocolLabel, []string{"X-Test: 1\r\n"}, "ignored"))

	assert.NotContains(t, req, "X-Test")
	assert.NotContains(t, req, "ignored")
	assert.True(t, strings.HasSuffix(req, "\r\n\r\n"))
}

func TestFrame_PostDefaultContentType(t *testing.T) {
	req := string(Frame("POST", "example.com", "80", "items", ProtocolLabel, nil, "{}"))

	// The body block ends with its own blank line and the unconditional
	// terminator follows it.
	want := "POST /items HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Accept: */*\r\n" +
		"Connection: close\r\n" +
		"User-Agent: rawcurl/1.0\r\n" +
		"Content-Type: application/json\r\n" +
		"Content-Length: 2 \r\n\r\n" +
		"{}" +
		"\r\n" +
		"\r\n"
	assert.Equal(t, want, req)
}

func TestFrame_PutWithCallerHeaders(t *testing.T) {
	headers := []string{"Content-Type: text/plain\r\n", "X-Trace: abc\r\n"}
	req := string(Frame("PUT", "example.com", "80", "doc", ProtocolLabel, headers, "hello"))

	assert.Contains(t, req, "Content-Type: text/plain\r\nX-Trace: abc\r\nContent-Length: 5 \r\n\r\nhello\r\n\r\n")
	assert.NotContains(t, req, "application/json")
}

func TestFrame_HeadersWrittenVerbatim(t *testing.T) {
	// No separator is inserted between caller lines
	req := string(Frame("POST", "h", "80", "", ProtocolLabel, []string{"A: 1", "B: 2\r\n"}, ""))

	assert.Contains(t, req, "A: 1B: 2\r\nContent-Length: 0 \r\n\r\n")
}

func TestFrame_ContentLengthCountsBytes(t *testing.T) {
	body := "héllo wörld ✓"
	require.NotEqual(t, len([]rune(body)), len(body))

	req := string(Frame("POST", "example.com", "80", "", ProtocolLabel, nil, body))

	assert.Contains(t, req, "Content-Length: 17 \r\n\r\n"+body)
}

func TestFrame_MethodMatchIsCaseSensitive(t *testing.T) {
	req := string(Frame("post", "example.com", "80", "", ProtocolLabel, nil, "{}"))

	assert.True(t, strings.HasPrefix(req, "post / HTTP/1.1\r\n"))
	assert.NotContains(t, req, "Content-Length")
	assert.NotContains(t, req, "{}")
}

func TestFrame_OtherMethodsHaveNoBody(t *testing.T) {
	for _, method := range []string{"DELETE", "PATCH", "HEAD", "OPTIONS"} {
		req := string(Frame(method, "example.com", "80", "", ProtocolLabel, nil, "data"))
		assert.NotContains(t, req, "Content-Length", method)
		assert.True(t, strings.HasPrefix(req, method+" / HTTP/1.1\r\n"), method)
	}
}

func TestFrame_ProtocolLabelIsVerbatim(t *testing.T) {
	req := string(Frame("GET", "example.com", "80", "", "HTTP/1.0", nil, ""))
	assert.True(t, strings.HasPrefix(req, "GET / HTTP/1.0\r\n"))
}

func TestFrame_HeaderBlockParsesAsFirstBlankLine(t *testing.T) {
	req := Frame("POST", "example.com", "80", "", ProtocolLabel, nil, `{"a":1}`)

	split, err := Split(req)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(split.Header), "Content-Length: 7 "))
	assert.Equal(t, "{\"a\":1}\r\n\r\n", string(split.Body))
}

func TestAppendRequest_ReusesBuffer(t *testing.T) {
	buf := make([]byte, 0, 1024)
	first := AppendRequest(buf, "GET", "a.example", "80", "", ProtocolLabel, nil, "")
	second := AppendRequest(first[:0], "GET", "b.example", "80", "", ProtocolLabel, nil, "")

	assert.Equal(t, string(Frame("GET", "b.example", "80", "", ProtocolLabel, nil, "")), string(second))
	assert.Equal(t, cap(buf), cap(second))
}
