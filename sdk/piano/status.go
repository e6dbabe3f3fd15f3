package piano

import "fmt"

// StatusCode is the first byte of a message and selects its class.
type StatusCode uint8

const (
	KeyPressStatus     StatusCode = 144
	KeyReleaseStatus   StatusCode = 128
	ControlBeginStatus StatusCode = 176
	ControlEndStatus   StatusCode = 178
	OtherStatus        StatusCode = 181
)

// ParseStatusCode validates a raw status byte. Only the five classes the
// keyboard emits are recognized.
func ParseStatusCode(b byte) (StatusCode, error) {
	switch s := StatusCode(b); s {
	case KeyPressStatus, KeyReleaseStatus, ControlBeginStatus, ControlEndStatus, OtherStatus:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized status byte %d", ErrProtocol, b)
	}
}

func (s StatusCode) String() string {
	switch s {
	case KeyPressStatus:
		return "KeyPress"
	case KeyReleaseStatus:
		return "KeyRelease"
	case ControlBeginStatus:
		return "ControlBegin"
	case ControlEndStatus:
		return "ControlEnd"
	case OtherStatus:
		return "Other"
	default:
		return fmt.Sprintf("StatusCode(%d)", uint8(s))
	}
}

// Alpha is the data byte of a message: velocity for key events, the control
// value otherwise.
type Alpha uint8

// MaxAlpha is the largest value a data byte can carry.
const MaxAlpha Alpha = 127

// ParseAlpha validates a raw data byte.
func ParseAlpha(b byte) (Alpha, error) {
	if Alpha(b) > MaxAlpha {
		return 0, fmt.Errorf("%w: data byte %d above %d", ErrProtocol, b, MaxAlpha)
	}
	return Alpha(b), nil
}

// Percent is a normalized intensity in [0, 1].
type Percent float64

// PercentOf maps an alpha linearly onto [0, 1]. Values above MaxAlpha
// saturate at 1.
func PercentOf(a Alpha) Percent {
	if a > MaxAlpha {
		a = MaxAlpha
	}
	return Percent(float64(a) / float64(MaxAlpha))
}
