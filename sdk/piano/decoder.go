package piano

import "fmt"

// MessageSize is the length of every keyboard message.
const MessageSize = 3

// Decode maps a triple onto an Event. A key outside the keyboard or an alpha
// above MaxAlpha is an ErrProtocol.
//
// Key messages always decode. Control messages decode only for the pedal and
// ambience keys; ControlEnd and Other only carry the ambience dial.
func Decode(status StatusCode, key KeyCode, alpha Alpha) (Event, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("%w: key code %d outside [%d, %d]", ErrProtocol, uint8(key), MinKeyCode, MaxKeyCode)
	}
	if alpha > MaxAlpha {
		return nil, fmt.Errorf("%w: data byte %d above %d", ErrProtocol, uint8(alpha), MaxAlpha)
	}
	switch status {
	case KeyPressStatus:
		return KeyPress{Key: key, Velocity: PercentOf(alpha)}, nil
	case KeyReleaseStatus:
		return KeyRelease{Key: key}, nil
	case ControlBeginStatus:
		switch key {
		case RightPedalKey:
			return RightPedal{Position: PercentOf(alpha)}, nil
		case MiddlePedalKey:
			return MiddlePedal{Engaged: alpha == MaxAlpha}, nil
		case LeftPedalKey:
			return LeftPedal{Position: PercentOf(alpha)}, nil
		case AmbienceKey:
			return SetAmbience{Level: PercentOf(alpha)}, nil
		}
	case ControlEndStatus, OtherStatus:
		if key == AmbienceKey {
			return SetAmbience{Level: PercentOf(alpha)}, nil
		}
	default:
		return nil, fmt.Errorf("%w: unrecognized status %d", ErrProtocol, uint8(status))
	}
	return nil, fmt.Errorf("%w: %s on key %s (%d)", ErrUnmappedControlKey, status, key, key.Ordinal())
}

// DecodeMessage validates a raw message and decodes it. Bytes past the third
// are ignored. Every error is a *DecodeError.
func DecodeMessage(raw []byte) (Event, error) {
	ev, err := decodeMessage(raw)
	if err != nil {
		return nil, &DecodeError{Raw: append([]byte(nil), raw...), Err: err}
	}
	return ev, nil
}

func decodeMessage(raw []byte) (Event, error) {
	if len(raw) < MessageSize {
		return nil, fmt.Errorf("%w: incomplete message of %d bytes", ErrProtocol, len(raw))
	}

	status, err := ParseStatusCode(raw[0])
	if err != nil {
		return nil, err
	}
	key, err := ParseKeyCode(raw[1])
	if err != nil {
		return nil, err
	}
	alpha, err := ParseAlpha(raw[2])
	if err != nil {
		return nil, err
	}
	return Decode(status, key, alpha)
}

// DecodeResult decodes raw into a Result that owns a copy of the bytes.
func DecodeResult(raw []byte) Result {
	ev, err := DecodeMessage(raw)
	return Result{Event: ev, Err: err, Raw: append([]byte(nil), raw...)}
}
