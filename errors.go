package stockaid

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by Call when the decoder rejected the response
// body (empty or malformed payload). It is a normal outcome, not a bug:
// nothing is cached and the caller decides what to do next.
var ErrNoData = errors.New("stockaid: no data")

// ConfigError reports a registration mistake, such as registering an API
// under an unknown provider.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "stockaid: " + e.Reason
}

// NotFoundError reports a Call against a provider or API name that was
// never registered.
type NotFoundError struct {
	Kind string // "provider" or "api"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stockaid: %s %q not registered", e.Kind, e.Name)
}

// MissingArgumentError reports a declared url/data/cache-field parameter
// that was absent from the Call arguments.
type MissingArgumentError struct {
	Param string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("stockaid: required argument %q is missing", e.Param)
}

// MissingKeyError reports a key-map entry whose secret is absent from the
// key chain (or empty). Detected at call time, not at registration.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("stockaid: required key %q is missing", e.Key)
}

// TransportError wraps a network-layer failure. The call made exactly one
// attempt; retrying is the caller's decision.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "stockaid: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
