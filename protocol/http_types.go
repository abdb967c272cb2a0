package protocol

import "github.com/nczempin/rawcurl/errors"

const (
	// DefaultPort is used when the URL carries no ":port".
	DefaultPort = "80"
	// DefaultMethod is used when no method flag was given.
	DefaultMethod = "GET"
	// ProtocolLabel is the version written on every request line, whatever the scheme.
	ProtocolLabel = "HTTP/1.1"
	// DefaultContentType is injected for bodied requests without caller headers.
	DefaultContentType = "application/json"
	// UserAgent identifies the client on every request.
	UserAgent = "rawcurl/1.0"
)

// URLComponents is a URL split into the pieces needed to reach and address a host.
type URLComponents struct {
	Scheme string
	Host   string
	Port   string
	Path   string // without the leading slash
}

// String rebuilds scheme://host:port/path. Decompose(u.String()) == u.
func (u URLComponents) String() string {
	s := u.Host + ":" + u.Port + "/" + u.Path
	if u.Scheme != "" {
		s = u.Scheme + schemeDelimiter + s
	}
	return s
}

// Validate rejects components that cannot be connected to.
func (u URLComponents) Validate() error {
	if u.Host == "" {
		return errors.NewProtocolError(errors.ProtocolErrorInvalidUrl, "URL has an empty host")
	}
	return nil
}

// RequestParameters holds the caller-chosen parts of a request.
type RequestParameters struct {
	Method  string
	Headers []string // complete "Name: Value\r\n" lines, written verbatim
	Body    string
}

// WithDefaults returns a copy with an empty Method replaced by DefaultMethod.
func (p RequestParameters) WithDefaults() RequestParameters {
	if p.Method == "" {
		p.Method = DefaultMethod
	}
	return p
}

// SplitResponse is a raw response divided at the first blank line.
// Header and Body alias the raw buffer they were split from.
type SplitResponse struct {
	Header []byte
	Body   []byte
}

// Exchange is one request/response round trip.
type Exchange struct {
	Request   []byte
	Raw       []byte
	Response  SplitResponse
	Truncated bool // the read stopped at the configured size limit
}
