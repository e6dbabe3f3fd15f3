package piano

import (
	"errors"
	"testing"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

func TestDecodeKeyPress(t *testing.T) {
	for k := MinKeyCode; k <= MaxKeyCode; k++ {
		for _, a := range []Alpha{0, 1, 64, 126, 127} {
			ev, err := Decode(KeyPressStatus, k, a)
			if err != nil {
				t.Fatalf("Decode(KeyPress, %d, %d): %v", k, a, err)
			}
			want := KeyPress{Key: k, Velocity: PercentOf(a)}
			if ev != want {
				t.Fatalf("Decode(KeyPress, %d, %d) = %#v, want %#v", k, a, ev, want)
			}
		}
	}
}

func TestDecodeKeyReleaseIgnoresAlpha(t *testing.T) {
	for _, a := range []Alpha{0, 40, 127} {
		ev, err := Decode(KeyReleaseStatus, C4, a)
		if err != nil {
			t.Fatalf("Decode(KeyRelease, C4, %d): %v", a, err)
		}
		if ev != (KeyRelease{Key: C4}) {
			t.Errorf("got %#v, want KeyRelease{C4}", ev)
		}
		if got := ev.ClientEvent().Intensity; got != 0.0 {
			t.Errorf("release intensity = %v, want 0", got)
		}
	}
}

func TestDecodeControlBegin(t *testing.T) {
	tests := []struct {
		key   KeyCode
		alpha Alpha
		want  Event
	}{
		{RightPedalKey, 100, RightPedal{Position: PercentOf(100)}},
		{MiddlePedalKey, 127, MiddlePedal{Engaged: true}},
		{MiddlePedalKey, 126, MiddlePedal{Engaged: false}},
		{MiddlePedalKey, 0, MiddlePedal{Engaged: false}},
		{LeftPedalKey, 30, LeftPedal{Position: PercentOf(30)}},
		{AmbienceKey, 90, SetAmbience{Level: PercentOf(90)}},
	}
	for _, tt := range tests {
		ev, err := Decode(ControlBeginStatus, tt.key, tt.alpha)
		if err != nil {
			t.Fatalf("Decode(ControlBegin, %d, %d): %v", tt.key, tt.alpha, err)
		}
		if ev != tt.want {
			t.Errorf("Decode(ControlBegin, %d, %d) = %#v, want %#v", tt.key, tt.alpha, ev, tt.want)
		}
	}
}

func TestDecodeUnmappedControlKey(t *testing.T) {
	for _, status := range []StatusCode{ControlBeginStatus, ControlEndStatus, OtherStatus} {
		for _, key := range []KeyCode{MinKeyCode, C4, 65, MaxKeyCode} {
			ev, err := Decode(status, key, 10)
			if !errors.Is(err, ErrUnmappedControlKey) {
				t.Errorf("Decode(%s, %d) error = %v, want ErrUnmappedControlKey", status, key, err)
			}
			if ev != nil {
				t.Errorf("Decode(%s, %d) returned event %#v alongside error", status, key, ev)
			}
		}
	}
	// Pedal keys only mean something under ControlBegin.
	for _, key := range []KeyCode{RightPedalKey, MiddlePedalKey, LeftPedalKey} {
		if _, err := Decode(ControlEndStatus, key, 10); !errors.Is(err, ErrUnmappedControlKey) {
			t.Errorf("Decode(ControlEnd, %d) error = %v, want ErrUnmappedControlKey", key, err)
		}
	}
}

func TestDecodeRejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name   string
		status StatusCode
		key    KeyCode
		alpha  Alpha
	}{
		{"key press above keyboard", KeyPressStatus, KeyCode(200), 10},
		{"key press below keyboard", KeyPressStatus, MinKeyCode - 1, 10},
		{"key release above keyboard", KeyReleaseStatus, MaxKeyCode + 1, 0},
		{"key press alpha too high", KeyPressStatus, C4, 255},
		{"key press alpha just above max", KeyPressStatus, C4, MaxAlpha + 1},
		{"right pedal alpha too high", ControlBeginStatus, RightPedalKey, 254},
		{"ambience alpha too high", OtherStatus, AmbienceKey, 200},
		{"both out of range", KeyPressStatus, KeyCode(200), 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode(tt.status, tt.key, tt.alpha)
			if !errors.Is(err, ErrProtocol) {
				t.Fatalf("Decode(%d, %d, %d) error = %v, want ErrProtocol", tt.status, tt.key, tt.alpha, err)
			}
			if ev != nil {
				t.Errorf("Decode(%d, %d, %d) = %#v, want nil event", tt.status, tt.key, tt.alpha, ev)
			}
		})
	}
}

func TestPercentOfSaturates(t *testing.T) {
	for _, a := range []Alpha{MaxAlpha + 1, 200, 255} {
		if got := PercentOf(a); got != 1.0 {
			t.Errorf("PercentOf(%d) = %v, want 1", a, got)
		}
	}
}

func TestDecodeAmbienceUnderEndAndOther(t *testing.T) {
	for _, status := range []StatusCode{ControlEndStatus, OtherStatus} {
		ev, err := Decode(status, AmbienceKey, 127)
		if err != nil {
			t.Fatalf("Decode(%s, ambience): %v", status, err)
		}
		if ev != (SetAmbience{Level: 1}) {
			t.Errorf("Decode(%s, ambience) = %#v, want SetAmbience{1}", status, ev)
		}
	}
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    Event
		wantErr error
	}{
		{"key press", []byte{144, 60, 127}, KeyPress{Key: C4, Velocity: 1}, nil},
		{"key release", []byte{128, 60, 64}, KeyRelease{Key: C4}, nil},
		{"right pedal", []byte{176, 64, 0}, RightPedal{Position: 0}, nil},
		{"ambience other", []byte{181, 91, 127}, SetAmbience{Level: 1}, nil},
		{"trailing bytes ignored", []byte{144, 60, 127, 9}, KeyPress{Key: C4, Velocity: 1}, nil},
		{"short", []byte{144, 60}, nil, ErrProtocol},
		{"empty", nil, nil, ErrProtocol},
		{"bad status", []byte{0x90 | 1, 60, 10}, nil, ErrProtocol},
		{"key too low", []byte{144, 14, 10}, nil, ErrProtocol},
		{"key too high", []byte{144, 114, 10}, nil, ErrProtocol},
		{"alpha too high", []byte{144, 60, 200}, nil, ErrProtocol},
		{"unmapped control", []byte{176, 60, 10}, nil, ErrUnmappedControlKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeMessage(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				var de *DecodeError
				if !errors.As(err, &de) {
					t.Fatalf("error %T is not a *DecodeError", err)
				}
				if string(de.Raw) != string(tt.raw) {
					t.Errorf("DecodeError.Raw = %v, want %v", de.Raw, tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeMessage: %v", err)
			}
			if ev != tt.want {
				t.Errorf("got %#v, want %#v", ev, tt.want)
			}
		})
	}
}

func TestDecodeResultOwnsBytes(t *testing.T) {
	raw := []byte{144, 60, 100}
	res := DecodeResult(raw)
	raw[1] = 61
	if res.Raw[1] != 60 {
		t.Errorf("Result.Raw aliases the driver buffer")
	}
	if res.Err != nil || res.Event == nil {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestClientEvent(t *testing.T) {
	tests := []struct {
		ev   Event
		want contracts.ClientEvent
	}{
		{KeyPress{Key: 63, Velocity: 1}, contracts.ClientEvent{EventType: contracts.KeyPressEvent, KeyName: "D#", KeyID: 63, Intensity: 1}},
		{KeyRelease{Key: 64}, contracts.ClientEvent{EventType: contracts.KeyReleaseEvent, KeyName: "E", KeyID: 64, Intensity: 0}},
		{RightPedal{Position: 0.5}, contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: 0.5}},
		{MiddlePedal{Engaged: true}, contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: 1}},
		{MiddlePedal{Engaged: false}, contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: 0}},
		{LeftPedal{Position: 0.25}, contracts.ClientEvent{EventType: contracts.PedalEvent, Intensity: 0.25}},
		{SetAmbience{Level: 0.75}, contracts.ClientEvent{EventType: contracts.AmbienceEvent, Intensity: 0.75}},
	}
	for _, tt := range tests {
		if got := tt.ev.ClientEvent(); got != tt.want {
			t.Errorf("%#v.ClientEvent() = %+v, want %+v", tt.ev, got, tt.want)
		}
	}
}
