package mididarwin

import (
	"bytes"
	"testing"
)

func TestSplitPacket(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		want      [][]byte
		wantShort bool
	}{
		{name: "empty", data: nil, want: nil},
		{name: "single message", data: []byte{144, 60, 100}, want: [][]byte{{144, 60, 100}}},
		{
			name: "back to back",
			data: []byte{144, 60, 100, 128, 60, 0},
			want: [][]byte{{144, 60, 100}, {128, 60, 0}},
		},
		{name: "fragment only", data: []byte{144, 60}, want: [][]byte{{144, 60}}, wantShort: true},
		{
			name:      "trailing fragment",
			data:      []byte{144, 60, 100, 176, 64, 127, 128},
			want:      [][]byte{{144, 60, 100}, {176, 64, 127}, {128}},
			wantShort: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]byte
			short := splitPacket(tt.data, func(msg []byte) {
				got = append(got, append([]byte(nil), msg...))
			})
			if short != tt.wantShort {
				t.Errorf("got short %v, want %v", short, tt.wantShort)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d messages, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !bytes.Equal(got[i], tt.want[i]) {
					t.Errorf("message %d = % x, want % x", i, got[i], tt.want[i])
				}
			}
		})
	}
}
