package client

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/net/http/httpguts"

	"github.com/nczempin/rawcurl/errors"
	"github.com/nczempin/rawcurl/logging"
	"github.com/nczempin/rawcurl/protocol"
	"github.com/nczempin/rawcurl/transport"
)

// HttpClient provides a high-level HTTP client API
type HttpClient struct {
	protocol   *protocol.Http1Protocol
	logger     *logging.Logger
	unixSocket string
}

// Option configures an HttpClient.
type Option func(*HttpClient)

// WithLogger sets the logger used for connection diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(c *HttpClient) {
		c.logger = l
	}
}

// WithUnixSocket routes every connection to the given socket path instead of
// the URL's host. The Host header still names the URL's host.
func WithUnixSocket(path string) Option {
	return func(c *HttpClient) {
		c.unixSocket = path
	}
}

// NewHttpClient creates a new HTTP client with the given protocol
func NewHttpClient(proto *protocol.Http1Protocol, opts ...Option) *HttpClient {
	c := &HttpClient{protocol: proto}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}
	c.logger = c.logger.WithComponent("client")
	return c
}

// NewHttpClientWithTransport wires a protocol handler over t.
func NewHttpClientWithTransport(t transport.Transport, protoOpts []protocol.Option, opts ...Option) *HttpClient {
	return NewHttpClient(protocol.NewHttp1Protocol(t, protoOpts...), opts...)
}

// Execute performs one request against rawURL and returns a copied exchange.
// The connection is opened and closed within the call.
func (c *HttpClient) Execute(rawURL string, params protocol.RequestParameters) (*protocol.Exchange, error) {
	u := protocol.Decompose(rawURL)
	if err := u.Validate(); err != nil {
		return nil, pkgerrors.Wrapf(err, "decompose %q", rawURL)
	}

	params = params.WithDefaults()
	if err := validateParameters(params); err != nil {
		return nil, err
	}

	host, port := u.Host, u.Port
	if c.unixSocket != "" {
		host, port = c.unixSocket, ""
	}

	c.logger.Debug("connecting", "host", host, "port", port, "scheme", u.Scheme)
	if err := c.protocol.Connect(host, port); err != nil {
		return nil, pkgerrors.Wrapf(err, "connect %s", u.String())
	}
	defer func() {
		if err := c.protocol.Disconnect(); err != nil {
			c.logger.Warn("disconnect failed", "error", err)
		}
	}()

	exchange, err := c.protocol.PerformRequestSafe(u, params)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "%s %s", params.Method, u.String())
	}

	c.logger.Debug("response received",
		"request_bytes", len(exchange.Request),
		"response_bytes", len(exchange.Raw),
		"body_bytes", len(exchange.Response.Body),
		"truncated", exchange.Truncated,
	)
	if exchange.Truncated {
		c.logger.Warn("response truncated at configured size limit", "bytes", len(exchange.Raw))
	}

	return exchange, nil
}

// validateParameters rejects methods that would corrupt the request line
func validateParameters(params protocol.RequestParameters) error {
	// A method is an HTTP token, the same grammar as a field name
	if !httpguts.ValidHeaderFieldName(params.Method) {
		return errors.NewInvalidArgumentError(fmt.Sprintf("invalid method %q", params.Method))
	}
	return nil
}
