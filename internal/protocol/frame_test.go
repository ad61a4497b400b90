package protocol

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{
			name: "set port 3",
			cmd:  SetPortCommand(2), // user-facing port 3 is wire byte 0x02
			want: []byte{0xAA, 0xBB, 0x03, 0x01, 0x02, 0xEE},
		},
		{
			name: "set port 1",
			cmd:  SetPortCommand(0),
			want: []byte{0xAA, 0xBB, 0x03, 0x01, 0x00, 0xEE},
		},
		{
			name: "get port",
			cmd:  GetPortCommand(),
			want: []byte{0xAA, 0xBB, 0x03, 0x10, 0x00, 0xEE},
		},
		{
			name: "buzzer on",
			cmd:  BuzzerCommand(true),
			want: []byte{0xAA, 0xBB, 0x03, 0x02, 0x01, 0xEE},
		},
		{
			name: "buzzer off",
			cmd:  BuzzerCommand(false),
			want: []byte{0xAA, 0xBB, 0x03, 0x02, 0x00, 0xEE},
		},
		{
			name: "lcd timeout 30s",
			cmd:  LCDTimeoutCommand(LCDTimeout30s),
			want: []byte{0xAA, 0xBB, 0x03, 0x03, 0x1E, 0xEE},
		},
		{
			name: "lcd timeout off",
			cmd:  LCDTimeoutCommand(LCDTimeoutOff),
			want: []byte{0xAA, 0xBB, 0x03, 0x03, 0x00, 0xEE},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cmd.Encode()
			if !bytes.Equal(got, tt.want) {
				t.Errorf("Encode() = % 02X, want % 02X", got, tt.want)
			}
			if len(got) != FrameLength {
				t.Errorf("frame length = %d, want %d", len(got), FrameLength)
			}
		})
	}
}

func TestResultByte(t *testing.T) {
	tests := []struct {
		name   string
		reply  []byte
		want   byte
		wantOK bool
	}{
		{
			name:   "five byte reply",
			reply:  []byte{0xAA, 0xBB, 0x03, 0x10, 0x02},
			want:   0x02,
			wantOK: true,
		},
		{
			name:   "longer reply ignores trailing bytes",
			reply:  []byte{0xAA, 0xBB, 0x03, 0x10, 0x07, 0xEE, 0x00},
			want:   0x07,
			wantOK: true,
		},
		{
			name:   "sentinel reply",
			reply:  []byte{0xAA, 0xBB, 0x03, 0x10, 0xFF},
			want:   0xFF,
			wantOK: true,
		},
		{
			name:   "short reply",
			reply:  []byte{0xAA, 0xBB, 0x03, 0x10},
			wantOK: false,
		},
		{
			name:   "empty reply",
			reply:  nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResultByte(tt.reply)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("result byte = 0x%02X, want 0x%02X", got, tt.want)
			}
		})
	}
}

func TestLCDOperandForSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    byte
		wantOK  bool
	}{
		{0, LCDTimeoutOff, true},
		{10, LCDTimeout10s, true},
		{30, LCDTimeout30s, true},
		{5, 0, false},
		{60, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := LCDOperandForSeconds(tt.seconds)
		if ok != tt.wantOK {
			t.Errorf("LCDOperandForSeconds(%d) ok = %v, want %v", tt.seconds, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("LCDOperandForSeconds(%d) = 0x%02X, want 0x%02X", tt.seconds, got, tt.want)
		}
	}
}

func TestOpcodeString(t *testing.T) {
	if got := OpcodeString(OpcodeGetPort); got != "get-port" {
		t.Errorf("OpcodeString(0x10) = %q, want %q", got, "get-port")
	}
	if got := OpcodeString(0x42); !strings.Contains(got, "0x42") {
		t.Errorf("OpcodeString(0x42) = %q, want hex in unknown name", got)
	}
}

func TestCommandString(t *testing.T) {
	s := SetPortCommand(2).String()
	if !strings.Contains(s, "set-port") {
		t.Errorf("String() = %q, want opcode name", s)
	}
	if !strings.Contains(s, "aabb030102ee") {
		t.Errorf("String() = %q, want encoded frame hex", s)
	}
}
