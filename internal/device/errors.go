package device

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
)

// Error types for device operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeValidation indicates invalid input detected before any network I/O
	ErrTypeValidation ErrorType = iota
	// ErrTypeCommunication indicates the retry budget was exhausted without a usable reply
	ErrTypeCommunication
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork
	// ErrTypeTimeout indicates the device did not answer in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the device refused the connection
	ErrTypeConnectionRefused
	// ErrTypeUnknown indicates an unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeCommunication:
		return "Communication Error"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error from a device operation
type DeviceError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	Err        error     // Underlying error (if any)
	DeviceAddr string    // Device address (for context)
	Attempts   int       // Attempts made before giving up (communication errors)
	Retryable  bool      // Whether repeating the operation could help
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error. Validation errors occur
// before any network I/O and are never retryable.
func NewValidationError(message string) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeValidation,
		Message:   message,
		Retryable: false,
	}
}

// NewCommunicationError creates an error for an exhausted retry budget.
// cause is the last transport error observed, if any - a genuine sentinel
// reply from the device leaves it nil, and the two cases are deliberately
// reported the same way.
func NewCommunicationError(message, addr string, attempts int, cause error) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeCommunication,
		Message:    fmt.Sprintf("%s (after %d attempts)", message, attempts),
		Err:        cause,
		DeviceAddr: addr,
		Attempts:   attempts,
		Retryable:  true,
	}
}

// ClassifyNetworkError analyzes a transport error and returns a more
// specific DeviceError. Used for diagnostics only: the client folds all
// transport failures into the protocol sentinel regardless.
func ClassifyNetworkError(err error, addr string) *DeviceError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &DeviceError{
			Type:       ErrTypeTimeout,
			Message:    "device did not respond in time",
			Err:        err,
			DeviceAddr: addr,
			Retryable:  true,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:       ErrTypeConnectionRefused,
				Message:    "device refused connection",
				Err:        err,
				DeviceAddr: addr,
				Retryable:  true,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) || errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DeviceError{
				Type:       ErrTypeNetwork,
				Message:    "device unreachable",
				Err:        err,
				DeviceAddr: addr,
				Retryable:  true,
			}
		}
	}

	return &DeviceError{
		Type:       ErrTypeNetwork,
		Message:    "network error occurred",
		Err:        err,
		DeviceAddr: addr,
		Retryable:  true,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeValidation
	}
	return false
}

// IsCommunicationError checks if an error is a communication error
func IsCommunicationError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Type == ErrTypeCommunication
	}
	return false
}

// IsRetryable checks if repeating the operation could help
func IsRetryable(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Retryable
	}
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch devErr.Type {
	case ErrTypeCommunication:
		hint := []string{
			"The switch did not give a usable reply.",
			"Troubleshooting:",
			"  • Check that the switch is powered on",
			"  • Verify the device address (default is " + DefaultHost + ")",
			"  • The switch drops replies under load - wait a moment and retry",
		}
		if devErr.Err != nil {
			if classified := ClassifyNetworkError(devErr.Err, devErr.DeviceAddr); classified != nil {
				switch classified.Type {
				case ErrTypeConnectionRefused:
					hint = append(hint, "  • The switch refused the connection - it may be rebooting")
				case ErrTypeTimeout:
					hint = append(hint, "  • The last attempt timed out - check network latency to the switch")
				}
			}
		}
		return strings.Join(hint, "\n")

	case ErrTypeValidation:
		return "The command arguments are invalid. Check the error message for the valid range."

	case ErrTypeTimeout:
		return strings.Join([]string{
			"The switch did not respond in time.",
			"Troubleshooting:",
			"  • Check that the switch is powered on",
			"  • Verify you are on the same network as the switch",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The switch refused the connection.",
			"Troubleshooting:",
			"  • Verify the TCP port (default is 5000)",
			"  • The switch may be rebooting - wait and retry",
		}, "\n")

	default:
		return "An error occurred. Please check the error message for details."
	}
}
