package protocol

import "strconv"

const crlf = "\r\n"

// Frame builds a complete HTTP/1.1 request.
func Frame(method, host, port, path, protocolLabel string, headers []string, body string) []byte {
	return AppendRequest(nil, method, host, port, path, protocolLabel, headers, body)
}

// AppendRequest appends the framed request to dst and returns the extended buffer.
//
// Only PUT and POST carry caller headers and a body. When no headers are
// given for them, a JSON Content-Type is injected. Host carries the bare
// host; port only selects the connection. Bodied requests end with the body
// block's own blank line followed by the unconditional terminator.
func AppendRequest(dst []byte, method, host, port, path, protocolLabel string, headers []string, body string) []byte {
	dst = append(dst, method...)
	dst = append(dst, " /"...)
	dst = append(dst, path...)
	dst = append(dst, ' ')
	dst = append(dst, protocolLabel...)
	dst = append(dst, crlf...)

	dst = append(dst, "Host: "...)
	dst = append(dst, host...)
	dst = append(dst, crlf...)
	dst = append(dst, "Accept: */*"+crlf...)
	dst = append(dst, "Connection: close"+crlf...)
	dst = append(dst, "User-Agent: "+UserAgent+crlf...)

	if hasBody(method) {
		if len(headers) > 0 {
			for _, header := range headers {
				dst = append(dst, header...)
			}
		} else {
			dst = append(dst, "Content-Type: "+DefaultContentType+crlf...)
		}
		dst = append(dst, "Content-Length: "...)
		dst = strconv.AppendInt(dst, int64(len(body)), 10)
		dst = append(dst, " "+crlf+crlf...)
		dst = append(dst, body...)
		dst = append(dst, crlf...)
	}

	dst = append(dst, crlf...)
	return dst
}

// hasBody is case-sensitive: "post" is framed like GET.
func hasBody(method string) bool {
	return method == "PUT" || method == "POST"
}
