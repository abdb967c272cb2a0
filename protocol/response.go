package protocol

import (
	"bytes"

	"github.com/nczempin/rawcurl/errors"
)

var headerSeparator = []byte("\r\n\r\n")

// Split divides raw at the first CRLFCRLF. The returned slices alias raw.
// A response without the delimiter fails with ProtocolErrorMalformedResponse.
func Split(raw []byte) (SplitResponse, error) {
	pos := bytes.Index(raw, headerSeparator)
	if pos < 0 {
		return SplitResponse{}, errors.NewProtocolError(
			errors.ProtocolErrorMalformedResponse,
			"no header/body delimiter in response",
		)
	}

	return SplitResponse{
		Header: raw[:pos:pos],
		Body:   raw[pos+len(headerSeparator):],
	}, nil
}
