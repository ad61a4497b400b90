package protocol

import (
	"encoding/hex"
	"fmt"
)

// Command frame layout
const (
	// Preamble0 and Preamble1 open every command frame
	Preamble0 = 0xAA
	Preamble1 = 0xBB

	// Marker is the fixed length/type byte following the preamble
	Marker = 0x03

	// Terminator closes every command frame
	Terminator = 0xEE

	// FrameLength is the fixed size of a command frame in bytes
	FrameLength = 6

	// ReplyLength is the number of reply bytes the client consumes
	ReplyLength = 5

	// ReplyOffset is the index of the result byte within the reply stream
	ReplyOffset = 4

	// Sentinel signals "no usable response". The device can in theory
	// return a literal 0xFF; the client cannot tell the two apart.
	Sentinel = 0xFF
)

// Operation opcodes
const (
	OpcodeSetPort    = 0x01
	OpcodeBuzzer     = 0x02
	OpcodeLCDTimeout = 0x03
	OpcodeGetPort    = 0x10
)

// LCD timeout operands
const (
	LCDTimeoutOff = 0x00 // display always on
	LCDTimeout10s = 0x0A
	LCDTimeout30s = 0x1E
)

// Command is a single operation payload: opcode plus one operand byte.
// Commands are immutable values; Encode builds a fresh frame each call.
type Command struct {
	Opcode  byte
	Operand byte
}

// SetPortCommand builds a switch-port command. wirePort is zero-based
// (user-facing port 1 is wire byte 0x00).
func SetPortCommand(wirePort byte) Command {
	return Command{Opcode: OpcodeSetPort, Operand: wirePort}
}

// GetPortCommand builds a query for the active port. The operand is
// ignored by the device and conventionally zero.
func GetPortCommand() Command {
	return Command{Opcode: OpcodeGetPort, Operand: 0x00}
}

// BuzzerCommand builds a buzzer mute/unmute command.
func BuzzerCommand(on bool) Command {
	operand := byte(0x00)
	if on {
		operand = 0x01
	}
	return Command{Opcode: OpcodeBuzzer, Operand: operand}
}

// LCDTimeoutCommand builds an LCD timeout command with a raw operand.
// Use LCDOperandForSeconds to map user-facing seconds to an operand.
func LCDTimeoutCommand(operand byte) Command {
	return Command{Opcode: OpcodeLCDTimeout, Operand: operand}
}

// LCDOperandForSeconds maps a user-facing timeout in seconds to its wire
// operand. Only 0, 10 and 30 are valid.
func LCDOperandForSeconds(seconds int) (byte, bool) {
	switch seconds {
	case 0:
		return LCDTimeoutOff, true
	case 10:
		return LCDTimeout10s, true
	case 30:
		return LCDTimeout30s, true
	default:
		return 0, false
	}
}

// Encode builds the 6-byte command frame:
//
//	AA BB 03 <opcode> <operand> EE
func (c Command) Encode() []byte {
	return []byte{Preamble0, Preamble1, Marker, c.Opcode, c.Operand, Terminator}
}

// ResultByte extracts the result byte from a reply stream. The device's
// reply is variable length; the protocol defines the byte at ReplyOffset
// as the result and everything past it as noise. The second return is
// false when the reply is too short to contain a result byte.
func ResultByte(reply []byte) (byte, bool) {
	if len(reply) < ReplyLength {
		return 0, false
	}
	return reply[ReplyOffset], true
}

// OpcodeString returns a human-readable opcode name
func OpcodeString(opcode byte) string {
	switch opcode {
	case OpcodeSetPort:
		return "set-port"
	case OpcodeBuzzer:
		return "buzzer"
	case OpcodeLCDTimeout:
		return "lcd-timeout"
	case OpcodeGetPort:
		return "get-port"
	default:
		return fmt.Sprintf("unknown(0x%02X)", opcode)
	}
}

// String returns a debug representation of the command
func (c Command) String() string {
	return fmt.Sprintf("Command{%s operand=0x%02X frame=%s}",
		OpcodeString(c.Opcode), c.Operand, hex.EncodeToString(c.Encode()))
}
