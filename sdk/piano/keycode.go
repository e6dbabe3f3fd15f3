package piano

import "fmt"

// KeyCode identifies a physical key by its wire code. Valid codes are 15..113.
type KeyCode uint8

// Key codes, labelled the way the keyboard's chart labels them: the octave
// number advances at A.
const (
	Eb0 KeyCode = iota + 15
	E0
	F0
	Gb0
	G0
	Ab0
	A1
	Bb1
	B1
	C1
	Db1
	D1
	Eb1
	E1
	F1
	Gb1
	G1
	Ab1
	A2
	Bb2
	B2
	C2
	Db2
	D2
	Eb2
	E2
	F2
	Gb2
	G2
	Ab2
	A3
	Bb3
	B3
	C3
	Db3
	D3
	Eb3
	E3
	F3
	Gb3
	G3
	Ab3
	A4
	Bb4
	B4
	C4
	Db4
	D4
	Eb4
	E4
	F4
	Gb4
	G4
	Ab4
	A5
	Bb5
	B5
	C5
	Db5
	D5
	Eb5
	E5
	F5
	Gb5
	G5
	Ab5
	A6
	Bb6
	B6
	C6
	Db6
	D6
	Eb6
	E6
	F6
	Gb6
	G6
	Ab6
	A7
	Bb7
	B7
	C7
	Db7
	D7
	Eb7
	E7
	F7
	Gb7
	G7
	Ab7
	A8
	Bb8
	B8
	C8
	Db8
	D8
	Eb8
	E8
	F8
)

// Bounds of the keyboard's key code range, inclusive.
const (
	MinKeyCode KeyCode = Eb0
	MaxKeyCode KeyCode = F8
)

// Keys that report pedals and the ambience dial under control messages.
const (
	RightPedalKey  KeyCode = E4
	MiddlePedalKey KeyCode = Gb4
	LeftPedalKey   KeyCode = G4
	AmbienceKey    KeyCode = G6
)

type keyEntry struct {
	name  string
	label string
}

var keyTable = [MaxKeyCode - MinKeyCode + 1]keyEntry{
	{"D#", "Eb0"}, // 15
	{"E", "E0"},   // 16
	{"F", "F0"},   // 17
	{"F#", "Gb0"}, // 18
	{"G", "G0"},   // 19
	{"G#", "Ab0"}, // 20
	{"A", "A1"},   // 21
	{"A#", "Bb1"}, // 22
	{"B", "B1"},   // 23
	{"C", "C1"},   // 24
	{"C#", "Db1"}, // 25
	{"D", "D1"},   // 26
	{"D#", "Eb1"}, // 27
	{"E", "E1"},   // 28
	{"F", "F1"},   // 29
	{"F#", "Gb1"}, // 30
	{"G", "G1"},   // 31
	{"G#", "Ab1"}, // 32
	{"A", "A2"},   // 33
	{"A#", "Bb2"}, // 34
	{"B", "B2"},   // 35
	{"C", "C2"},   // 36
	{"C#", "Db2"}, // 37
	{"D", "D2"},   // 38
	{"D#", "Eb2"}, // 39
	{"E", "E2"},   // 40
	{"F", "F2"},   // 41
	{"F#", "Gb2"}, // 42
	{"G", "G2"},   // 43
	{"G#", "Ab2"}, // 44
	{"A", "A3"},   // 45
	{"A#", "Bb3"}, // 46
	{"B", "B3"},   // 47
	{"C", "C3"},   // 48
	{"C#", "Db3"}, // 49
	{"D", "D3"},   // 50
	{"D#", "Eb3"}, // 51
	{"E", "E3"},   // 52
	{"F", "F3"},   // 53
	{"F#", "Gb3"}, // 54
	{"G", "G3"},   // 55
	{"G#", "Ab3"}, // 56
	{"A", "A4"},   // 57
	{"A#", "Bb4"}, // 58
	{"B", "B4"},   // 59
	{"C", "C4"},   // 60
	{"C#", "Db4"}, // 61
	{"D", "D4"},   // 62
	{"D#", "Eb4"}, // 63
	{"E", "E4"},   // 64
	{"F", "F4"},   // 65
	{"F#", "Gb4"}, // 66
	{"G", "G4"},   // 67
	{"G#", "Ab4"}, // 68
	{"A", "A5"},   // 69
	{"A#", "Bb5"}, // 70
	{"B", "B5"},   // 71
	{"C", "C5"},   // 72
	{"C#", "Db5"}, // 73
	{"D", "D5"},   // 74
	{"D#", "Eb5"}, // 75
	{"E", "E5"},   // 76
	{"F", "F5"},   // 77
	{"F#", "Gb5"}, // 78
	{"G", "G5"},   // 79
	{"G#", "Ab5"}, // 80
	{"A", "A6"},   // 81
	{"A#", "Bb6"}, // 82
	{"B", "B6"},   // 83
	{"C", "C6"},   // 84
	{"C#", "Db6"}, // 85
	{"D", "D6"},   // 86
	{"D#", "Eb6"}, // 87
	{"E", "E6"},   // 88
	{"F", "F6"},   // 89
	{"F#", "Gb6"}, // 90
	{"G", "G6"},   // 91
	{"G#", "Ab6"}, // 92
	{"A", "A7"},   // 93
	{"A#", "Bb7"}, // 94
	{"B", "B7"},   // 95
	{"C", "C7"},   // 96
	{"C#", "Db7"}, // 97
	{"D", "D7"},   // 98
	{"D#", "Eb7"}, // 99
	{"E", "E7"},   // 100
	{"F", "F7"},   // 101
	{"F#", "Gb7"}, // 102
	{"G", "G7"},   // 103
	{"G#", "Ab7"}, // 104
	{"A", "A8"},   // 105
	{"A#", "Bb8"}, // 106
	{"B", "B8"},   // 107
	{"C", "C8"},   // 108
	{"C#", "Db8"}, // 109
	{"D", "D8"},   // 110
	{"D#", "Eb8"}, // 111
	{"E", "E8"},   // 112
	{"F", "F8"},   // 113
}

// ParseKeyCode validates a raw key byte.
func ParseKeyCode(b byte) (KeyCode, error) {
	if b < byte(MinKeyCode) || b > byte(MaxKeyCode) {
		return 0, fmt.Errorf("%w: key code %d outside [%d,%d]", ErrProtocol, b, MinKeyCode, MaxKeyCode)
	}
	return KeyCode(b), nil
}

// Valid reports whether k is inside the supported range.
func (k KeyCode) Valid() bool {
	return k >= MinKeyCode && k <= MaxKeyCode
}

// Name returns the note letter without octave. Flats are spelled as the
// sharp of the pitch below, so Eb renders as "D#".
func (k KeyCode) Name() string {
	if !k.Valid() {
		return ""
	}
	return keyTable[k-MinKeyCode].name
}

// Ordinal returns the wire code.
func (k KeyCode) Ordinal() int {
	return int(k)
}

// String returns the octave label, such as "E4".
func (k KeyCode) String() string {
	if !k.Valid() {
		return fmt.Sprintf("KeyCode(%d)", uint8(k))
	}
	return keyTable[k-MinKeyCode].label
}
