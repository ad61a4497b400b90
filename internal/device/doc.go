// Package device implements the client side of the KVM switch protocol.
//
// The client issues one command per short-lived TCP connection: dial,
// write a 6-byte frame, read a 5-byte reply, close. The switch needs
// recovery time between commands, so every exchange is followed by an
// unconditional delay (CommandDelay, one second by default) - on success,
// on failure, and on the last attempt of a retry loop alike.
//
// The switch's replies are unreliable. Dropped and garbled replies show
// up as the protocol sentinel 0xFF, which the device also uses as its own
// failure byte; the client folds transport failures (refused connection,
// timeout, short read) into the same sentinel and the two cases are not
// distinguishable by callers. The get-port query is retried up to
// MaxAttempts times against the sentinel; set-port, buzzer and LCD
// commands are fire-and-forget - sent once with the reply discarded,
// since its content means nothing.
//
// Errors follow a small taxonomy (DeviceError): validation errors are
// raised before any network I/O, communication errors when the get-port
// retry budget is exhausted. Transport-level failures never surface as
// distinct error kinds; they only feed diagnostics.
package device
