package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorNone ErrorType = iota
	ErrorTransport
	ErrorProtocol
	ErrorArgument
	ErrorInvalidArgument
)

// TransportError represents transport-layer specific errors
type TransportError int

const (
	TransportErrorNone TransportError = iota
	TransportErrorSocketCreateFailure
	TransportErrorSocketConnectFailure
	TransportErrorSocketReadFailure
	TransportErrorSocketWriteFailure
	TransportErrorConnectionClosed
	TransportErrorDnsFailure
	TransportErrorSocketCloseFailure
	TransportErrorIoUringInit
	TransportErrorIoUringSubmit
	TransportErrorUnsupported
)

func (e TransportError) String() string {
	switch e {
	case TransportErrorNone:
		return "no transport error"
	case TransportErrorSocketCreateFailure:
		return "socket creation failed"
	case TransportErrorSocketConnectFailure:
		return "socket connection failed"
	case TransportErrorSocketReadFailure:
		return "socket read failed"
	case TransportErrorSocketWriteFailure:
		return "socket write failed"
	case TransportErrorConnectionClosed:
		return "connection closed"
	case TransportErrorDnsFailure:
		return "DNS lookup failed"
	case TransportErrorSocketCloseFailure:
		return "socket close failed"
	case TransportErrorIoUringInit:
		return "io_uring initialization failed"
	case TransportErrorIoUringSubmit:
		return "io_uring submission failed"
	case TransportErrorUnsupported:
		return "transport not supported on this platform"
	default:
		return fmt.Sprintf("unknown transport error: %d", int(e))
	}
}

// ProtocolError represents protocol-layer specific errors
type ProtocolError int

const (
	ProtocolErrorNone ProtocolError = iota
	ProtocolErrorMalformedResponse
	ProtocolErrorInvalidUrl
	ProtocolErrorResponseTooLarge
)

func (e ProtocolError) String() string {
	switch e {
	case ProtocolErrorNone:
		return "no protocol error"
	case ProtocolErrorMalformedResponse:
		return "malformed response"
	case ProtocolErrorInvalidUrl:
		return "invalid URL"
	case ProtocolErrorResponseTooLarge:
		return "response too large"
	default:
		return fmt.Sprintf("unknown protocol error: %d", int(e))
	}
}

// ArgumentError represents command-line argument errors
type ArgumentError int

const (
	ArgumentErrorNone ArgumentError = iota
	ArgumentErrorMissingValue
	ArgumentErrorUnknownFlag
	ArgumentErrorMissingUrl
)

func (e ArgumentError) String() string {
	switch e {
	case ArgumentErrorNone:
		return "no argument error"
	case ArgumentErrorMissingValue:
		return "missing argument value"
	case ArgumentErrorUnknownFlag:
		return "unknown flag"
	case ArgumentErrorMissingUrl:
		return "missing URL"
	default:
		return fmt.Sprintf("unknown argument error: %d", int(e))
	}
}

// HttpError is the main error type for the HTTP client
type HttpError struct {
	Type          ErrorType
	TransportErr  TransportError
	ProtocolErr   ProtocolError
	ArgumentErr   ArgumentError
	Message       string
	UnderlyingErr error
}

// Error implements the error interface
func (e *HttpError) Error() string {
	if e == nil {
		return "no error"
	}

	var typeStr string
	switch e.Type {
	case ErrorTransport:
		typeStr = fmt.Sprintf("Transport error (%s)", e.TransportErr)
	case ErrorProtocol:
		typeStr = fmt.Sprintf("Protocol error (%s)", e.ProtocolErr)
	case ErrorArgument:
		typeStr = fmt.Sprintf("Argument error (%s)", e.ArgumentErr)
	case ErrorInvalidArgument:
		typeStr = "Invalid argument"
	default:
		typeStr = "Unknown error"
	}

	if e.Message != "" {
		typeStr = fmt.Sprintf("%s: %s", typeStr, e.Message)
	}

	if e.UnderlyingErr != nil {
		return fmt.Sprintf("%s (caused by: %v)", typeStr, e.UnderlyingErr)
	}

	return typeStr
}

// Unwrap returns the underlying error for error chain support
func (e *HttpError) Unwrap() error {
	return e.UnderlyingErr
}

// NewTransportError creates a new transport error
func NewTransportError(err TransportError, message string, underlying error) *HttpError {
	return &HttpError{
		Type:          ErrorTransport,
		TransportErr:  err,
		Message:       message,
		UnderlyingErr: underlying,
	}
}

// NewProtocolError creates a new protocol error
func NewProtocolError(err ProtocolError, message string) *HttpError {
	return &HttpError{
		Type:        ErrorProtocol,
		ProtocolErr: err,
		Message:     message,
	}
}

// NewArgumentError creates a new command-line argument error
func NewArgumentError(err ArgumentError, message string) *HttpError {
	return &HttpError{
		Type:        ErrorArgument,
		ArgumentErr: err,
		Message:     message,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(message string) *HttpError {
	return &HttpError{
		Type:    ErrorInvalidArgument,
		Message: message,
	}
}

// AsHttpError finds the first *HttpError in err's chain.
func AsHttpError(err error) (*HttpError, bool) {
	var httpErr *HttpError
	if stderrors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsTransport reports whether err carries the given transport error code.
func IsTransport(err error, code TransportError) bool {
	httpErr, ok := AsHttpError(err)
	return ok && httpErr.Type == ErrorTransport && httpErr.TransportErr == code
}

// IsProtocol reports whether err carries the given protocol error code.
func IsProtocol(err error, code ProtocolError) bool {
	httpErr, ok := AsHttpError(err)
	return ok && httpErr.Type == ErrorProtocol && httpErr.ProtocolErr == code
}

// IsArgument reports whether err carries the given argument error code.
func IsArgument(err error, code ArgumentError) bool {
	httpErr, ok := AsHttpError(err)
	return ok && httpErr.Type == ErrorArgument && httpErr.ArgumentErr == code
}

// IsMalformedResponse reports whether the response lacked a header/body delimiter.
func IsMalformedResponse(err error) bool {
	return IsProtocol(err, ProtocolErrorMalformedResponse)
}
