package piano

import (
	"errors"
	"testing"
)

func TestParseKeyCodeRoundTrip(t *testing.T) {
	for k := 15; k <= 113; k++ {
		key, err := ParseKeyCode(byte(k))
		if err != nil {
			t.Fatalf("ParseKeyCode(%d): %v", k, err)
		}
		if key.Ordinal() != k {
			t.Errorf("ParseKeyCode(%d).Ordinal() = %d", k, key.Ordinal())
		}
		if key.Name() == "" {
			t.Errorf("key %d has no name", k)
		}
	}
}

func TestParseKeyCodeOutOfRange(t *testing.T) {
	for _, k := range []int{0, 1, 14, 114, 127, 200, 255} {
		if _, err := ParseKeyCode(byte(k)); !errors.Is(err, ErrProtocol) {
			t.Errorf("ParseKeyCode(%d) error = %v, want ErrProtocol", k, err)
		}
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		key   KeyCode
		name  string
		label string
	}{
		{15, "D#", "Eb0"},
		{18, "F#", "Gb0"},
		{21, "A", "A1"},
		{22, "A#", "Bb1"},
		{24, "C", "C1"},
		{60, "C", "C4"},
		{64, "E", "E4"},
		{66, "F#", "Gb4"},
		{91, "G", "G6"},
		{113, "F", "F8"},
	}
	for _, tt := range tests {
		if got := tt.key.Name(); got != tt.name {
			t.Errorf("KeyCode(%d).Name() = %q, want %q", tt.key, got, tt.name)
		}
		if got := tt.key.String(); got != tt.label {
			t.Errorf("KeyCode(%d).String() = %q, want %q", tt.key, got, tt.label)
		}
	}
}

func TestKeyNamesRepeatEveryOctave(t *testing.T) {
	for k := MinKeyCode; k+12 <= MaxKeyCode; k++ {
		if k.Name() != (k + 12).Name() {
			t.Errorf("KeyCode(%d) = %q but KeyCode(%d) = %q", k, k.Name(), k+12, (k + 12).Name())
		}
	}
}

func TestControlKeys(t *testing.T) {
	if RightPedalKey != 64 || MiddlePedalKey != 66 || LeftPedalKey != 67 || AmbienceKey != 91 {
		t.Fatalf("control keys = %d %d %d %d, want 64 66 67 91",
			RightPedalKey, MiddlePedalKey, LeftPedalKey, AmbienceKey)
	}
}

func TestParseStatusCode(t *testing.T) {
	for _, b := range []byte{144, 128, 176, 178, 181} {
		s, err := ParseStatusCode(b)
		if err != nil {
			t.Fatalf("ParseStatusCode(%d): %v", b, err)
		}
		if byte(s) != b {
			t.Errorf("ParseStatusCode(%d) = %d", b, s)
		}
	}
	for _, b := range []byte{0, 129, 145, 177, 179, 180, 224, 255} {
		if _, err := ParseStatusCode(b); !errors.Is(err, ErrProtocol) {
			t.Errorf("ParseStatusCode(%d) error = %v, want ErrProtocol", b, err)
		}
	}
}

func TestPercentOf(t *testing.T) {
	if got := PercentOf(0); got != 0.0 {
		t.Errorf("PercentOf(0) = %v, want 0", got)
	}
	if got := PercentOf(127); got != 1.0 {
		t.Errorf("PercentOf(127) = %v, want 1", got)
	}
	prev := PercentOf(0)
	for a := Alpha(1); a <= MaxAlpha; a++ {
		p := PercentOf(a)
		if p < prev {
			t.Fatalf("PercentOf(%d) = %v < PercentOf(%d) = %v", a, p, a-1, prev)
		}
		prev = p
	}
}

func TestParseAlpha(t *testing.T) {
	if a, err := ParseAlpha(127); err != nil || a != 127 {
		t.Errorf("ParseAlpha(127) = %d, %v", a, err)
	}
	if _, err := ParseAlpha(128); !errors.Is(err, ErrProtocol) {
		t.Errorf("ParseAlpha(128) error = %v, want ErrProtocol", err)
	}
}
