package protocol

import (
	"github.com/nczempin/rawcurl/errors"
	"github.com/nczempin/rawcurl/transport"
)

// DefaultReadChunkSize is the size of each transport read.
const DefaultReadChunkSize = 2048

// Http1Protocol implements HTTP/1.1 request/response framing over a transport
type Http1Protocol struct {
	transport       transport.Transport
	request         []byte
	buffer          []byte
	readChunkSize   int
	maxResponseSize int
}

// Option configures an Http1Protocol.
type Option func(*Http1Protocol)

// WithReadChunkSize sets how many bytes are requested per transport read.
func WithReadChunkSize(n int) Option {
	return func(p *Http1Protocol) {
		if n > 0 {
			p.readChunkSize = n
		}
	}
}

// WithMaxResponseSize caps how many response bytes are kept; 0 means no cap.
func WithMaxResponseSize(n int) Option {
	return func(p *Http1Protocol) {
		if n >= 0 {
			p.maxResponseSize = n
		}
	}
}

// NewHttp1Protocol creates a new HTTP/1.1 protocol handler
func NewHttp1Protocol(t transport.Transport, opts ...Option) *Http1Protocol {
	p := &Http1Protocol{
		transport:     t,
		request:       make([]byte, 0, 512),
		buffer:        make([]byte, 0, 1024),
		readChunkSize: DefaultReadChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Connect establishes a connection to the specified host and port
func (p *Http1Protocol) Connect(host string, port string) error {
	return p.transport.Connect(host, port)
}

// Disconnect closes the connection
func (p *Http1Protocol) Disconnect() error {
	return p.transport.Close()
}

// buildRequest frames the request into the reusable request buffer
func (p *Http1Protocol) buildRequest(u URLComponents, params RequestParameters) {
	params = params.WithDefaults()
	p.request = AppendRequest(p.request[:0], params.Method, u.Host, u.Port, u.Path, ProtocolLabel, params.Headers, params.Body)
}

// writeRequest writes the whole request buffer, retrying short writes
func (p *Http1Protocol) writeRequest() error {
	written := 0
	for written < len(p.request) {
		n, err := p.transport.Write(p.request[written:])
		if err != nil {
			return err
		}
		written += n
	}
	return nil
}

// readFullResponse reads until the peer closes the connection. It reports
// whether bytes past the configured size limit were dropped.
func (p *Http1Protocol) readFullResponse() (bool, error) {
	p.buffer = p.buffer[:0]

	readBuf := make([]byte, p.readChunkSize)

	for {
		n, err := p.transport.Read(readBuf)
		if n > 0 {
			p.buffer = append(p.buffer, readBuf[:n]...)
		}

		// A response that exactly fills the limit is complete; only a byte
		// beyond it means something was cut.
		if p.maxResponseSize > 0 && len(p.buffer) > p.maxResponseSize {
			p.buffer = p.buffer[:p.maxResponseSize]
			return true, nil
		}

		if err != nil {
			if errors.IsTransport(err, errors.TransportErrorConnectionClosed) {
				// Connection: close, so the peer closing is the end of the response
				break
			}
			return false, err
		}
	}

	return false, nil
}

// PerformRequestUnsafe performs a request and returns slices into the
// protocol's buffers. They are only valid until the next request.
func (p *Http1Protocol) PerformRequestUnsafe(u URLComponents, params RequestParameters) (*Exchange, error) {
	p.buildRequest(u, params)

	if err := p.writeRequest(); err != nil {
		return nil, err
	}

	truncated, err := p.readFullResponse()
	if err != nil {
		return nil, err
	}

	split, err := Split(p.buffer)
	if err != nil {
		if truncated {
			return nil, errors.NewProtocolError(
				errors.ProtocolErrorResponseTooLarge,
				"response headers exceed the configured size limit",
			)
		}
		return nil, err
	}

	return &Exchange{
		Request:   p.request,
		Raw:       p.buffer,
		Response:  split,
		Truncated: truncated,
	}, nil
}

// PerformRequestSafe performs a request and returns a copied exchange
func (p *Http1Protocol) PerformRequestSafe(u URLComponents, params RequestParameters) (*Exchange, error) {
	unsafeExchange, err := p.PerformRequestUnsafe(u, params)
	if err != nil {
		return nil, err
	}

	request := make([]byte, len(unsafeExchange.Request))
	copy(request, unsafeExchange.Request)

	raw := make([]byte, len(unsafeExchange.Raw))
	copy(raw, unsafeExchange.Raw)

	// Re-split the copy so the views alias the copied buffer
	split, err := Split(raw)
	if err != nil {
		return nil, err
	}

	return &Exchange{
		Request:   request,
		Raw:       raw,
		Response:  split,
		Truncated: unsafeExchange.Truncated,
	}, nil
}
