package piano

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocol covers bytes outside the fixed protocol tables.
	ErrProtocol = errors.New("protocol error")
	// ErrUnmappedControlKey is returned for control messages on a key with no
	// pedal or ambience meaning.
	ErrUnmappedControlKey = errors.New("unmapped control key")
)

// DecodeError reports a message that could not be turned into an Event.
type DecodeError struct {
	Raw []byte
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode % x: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
