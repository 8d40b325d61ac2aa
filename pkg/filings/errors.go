package filings

import "github.com/cockroachdb/errors"

// Errors returned by the package, use errors.Is to check
var (
	// ErrInvalidArgument is returned for blank or malformed input, before any I/O
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrResolutionFailed is returned when the mapping service has no identifier for the ticker
	ErrResolutionFailed = errors.New("resolution failed")
	// ErrUpstreamUnavailable is returned on transport or parsing failure of a remote service
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

func invalidArgument(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidArgument)
}

func upstreamUnavailable(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrUpstreamUnavailable)
}
