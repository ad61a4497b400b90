// Package logging provides structured logging for kvmctl.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. Logging is silent by default so that
// normal command output stays clean; set the KVMCTL_LOG_LEVEL environment
// variable ("debug", "info", "warn", "error") to enable it. Log output
// goes to stderr, never stdout.
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Debug("dial failed",
//	    zap.String("addr", "192.168.1.10:5000"),
//	    zap.Error(err),
//	)
//
// # Frame Logging
//
// LogFrame records command and reply frames as hex at debug level:
//
//	logging.LogFrame("send", frame)
//	logging.LogFrame("recv", reply)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
