// Package protocol implements the KVM switch binary command protocol.
//
// The switch accepts fixed-length 6-byte command frames over raw TCP and
// answers with a short byte stream of which only one byte carries meaning.
//
// # Frame Format
//
// Every command frame has this structure:
//   - Preamble: 0xAA 0xBB
//   - Length/type marker: 0x03
//   - Opcode: 1 byte
//   - Operand: 1 byte
//   - Terminator: 0xEE
//
// # Opcodes
//
// Four operations are documented for the device:
//   - 0x01: switch the active port (operand = zero-based target port)
//   - 0x02: buzzer mute/unmute (operand 0x00/0x01)
//   - 0x03: LCD timeout (operand 0x00, 0x0A or 0x1E)
//   - 0x10: query the active port (operand ignored)
//
// # Replies
//
// The device replies with a variable-length byte stream. The client reads
// five bytes and takes the byte at offset 4 as the result; anything past it
// is ignored. For the get-port query the result byte is the zero-based
// active port. For all other commands the reply content is unreliable and
// discarded.
//
// The value 0xFF doubles as a failure sentinel: the device emits it when a
// command could not be processed, and the client folds transport failures
// (refused connection, timeout, short read) into the same value. A genuine
// 0xFF reply is therefore indistinguishable from a dropped one; callers
// treat both as "no usable response".
//
// # Usage Example
//
//	cmd := protocol.SetPortCommand(2) // user-facing port 3
//	frame := cmd.Encode()             // AA BB 03 01 02 EE
//
//	// ... write frame, read reply ...
//
//	result, ok := protocol.ResultByte(reply)
//	if !ok || result == protocol.Sentinel {
//	    // no usable response
//	}
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package protocol
