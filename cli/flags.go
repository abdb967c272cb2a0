// Package cli turns command-line tokens into request options.
package cli

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/nczempin/rawcurl/errors"
	"github.com/nczempin/rawcurl/protocol"
)

// Flag is one recognised command-line item. The variants are Header,
// Method, Data, URL, Verbose and Help.
type Flag interface {
	isFlag()
}

type (
	// Header is a raw header line from -H/--header.
	Header string
	// Method is the request method from -X/--request.
	Method string
	// Data is the request body from -d/--data.
	Data string
	// URL is a token that parsed as an absolute URL.
	URL string
	// Verbose is -v/--verbose.
	Verbose struct{}
	// Help is -h/--help.
	Help struct{}
)

func (Header) isFlag() {}
func (Method) isFlag() {}
func (Data) isFlag() {}
func (URL) isFlag() {}
func (Verbose) isFlag() {}
func (Help) isFlag() {}

var (
	headerFlags  = []string{"-H", "--header"}
	methodFlags  = []string{"-X", "--request"}
	dataFlags    = []string{"-d", "--data"}
	helpFlags    = []string{"-h", "--help"}
	verboseFlags = []string{"-v", "--verbose"}
)

// Parsed is the outcome of tokenizing the argument list.
type Parsed struct {
	Flags []Flag
	// Unknown holds one ArgumentErrorUnknownFlag per unrecognised token.
	Unknown []error
}

// Tokenize classifies args (without the program name). URL detection runs
// before flag matching. A value flag without a following token fails with
// ArgumentErrorMissingValue; unrecognised tokens are collected, not fatal.
func Tokenize(args []string) (Parsed, error) {
	var parsed Parsed

	for i := 0; i < len(args); i++ {
		token := args[i]

		switch {
		case IsURL(token):
			parsed.Flags = append(parsed.Flags, URL(token))
		case matches(token, headerFlags), matches(token, methodFlags), matches(token, dataFlags):
			if i+1 >= len(args) {
				return parsed, errors.NewArgumentError(
					errors.ArgumentErrorMissingValue,
					fmt.Sprintf("the value for %s was not provided", flagNames(token)),
				)
			}
			i++
			parsed.Flags = append(parsed.Flags, valueFlag(token, args[i]))
		case matches(token, helpFlags):
			parsed.Flags = append(parsed.Flags, Help{})
		case matches(token, verboseFlags):
			parsed.Flags = append(parsed.Flags, Verbose{})
		default:
			parsed.Unknown = append(parsed.Unknown, errors.NewArgumentError(
				errors.ArgumentErrorUnknownFlag,
				fmt.Sprintf("unknown flag passed %s", token),
			))
		}
	}

	return parsed, nil
}

func valueFlag(token, value string) Flag {
	switch {
	case matches(token, headerFlags):
		return Header(value)
	case matches(token, methodFlags):
		return Method(value)
	default:
		return Data(value)
	}
}

func flagNames(token string) string {
	for _, names := range [][]string{headerFlags, methodFlags, dataFlags} {
		if matches(token, names) {
			return strings.Join(names, "/")
		}
	}
	return token
}

func matches(token string, names []string) bool {
	for _, name := range names {
		if token == name {
			return true
		}
	}
	return false
}

// IsURL reports whether token parses as an absolute URL.
func IsURL(token string) bool {
	u, err := url.Parse(token)
	return err == nil && u.Scheme != ""
}

// Options is the resolved request and presentation settings.
type Options struct {
	URL     string
	Params  protocol.RequestParameters
	Verbose bool
	Help    bool
}

// Resolve folds flags into Options. The first URL, method and body win;
// every header is kept in order with a CRLF appended when missing. Without a
// URL, and unless help was asked for, it fails with ArgumentErrorMissingUrl.
func Resolve(flags []Flag) (Options, error) {
	var opts Options
	var haveURL, haveMethod, haveData bool

	for _, flag := range flags {
		switch f := flag.(type) {
		case URL:
			if !haveURL {
				opts.URL, haveURL = string(f), true
			}
		case Header:
			opts.Params.Headers = append(opts.Params.Headers, terminate(string(f)))
		case Method:
			if !haveMethod {
				opts.Params.Method, haveMethod = string(f), true
			}
		case Data:
			if !haveData {
				opts.Params.Body, haveData = string(f), true
			}
		case Verbose:
			opts.Verbose = true
		case Help:
			opts.Help = true
		default:
			panic(fmt.Sprintf("cli: unhandled flag %T", flag))
		}
	}

	opts.Params = opts.Params.WithDefaults()

	if !haveURL && !opts.Help {
		return opts, errors.NewArgumentError(errors.ArgumentErrorMissingUrl, "no appropriate URL value provided")
	}
	return opts, nil
}

func terminate(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line
	}
	return strings.TrimSuffix(line, "\n") + "\r\n"
}

// ValidateHeaderLine checks that line is a single "Name: Value" field.
func ValidateHeaderLine(line string) error {
	field := strings.TrimSuffix(line, "\r\n")
	name, value, found := strings.Cut(field, ":")
	if !found {
		return fmt.Errorf("header %q has no colon", field)
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("header %q has an invalid name", field)
	}
	if !httpguts.ValidHeaderFieldValue(strings.TrimSpace(value)) {
		return fmt.Errorf("header %q has an invalid value", field)
	}
	return nil
}

// Usage writes the help text.
func Usage(w io.Writer, prog string) {
	fmt.Fprintf(w, `Usage: %s [options] <url>

Options:
  -X, --request <method>   request method (default %s)
  -H, --header <line>      raw header line, repeatable; sent for PUT and POST
  -d, --data <body>        request body; sent for PUT and POST
  -v, --verbose            echo request (>) and response header (<) lines
  -h, --help               show this help

Configuration is read from $RAWCURL_CONFIG or ~/.config/rawcurl/config.yaml.
`, prog, protocol.DefaultMethod)
}
