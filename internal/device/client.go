package device

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/kvmctl/internal/logging"
	"github.com/muurk/kvmctl/internal/protocol"
)

const (
	// DefaultHost is the factory IP address of the switch
	DefaultHost = "192.168.1.10"

	// DefaultPort is the TCP port the switch listens on
	DefaultPort = 5000

	// DefaultPorts is the number of selectable ports on the common 8-port model
	DefaultPorts = 8

	// DefaultDialTimeout bounds the TCP connection attempt
	DefaultDialTimeout = 2 * time.Second

	// DefaultIOTimeout bounds the frame write and reply read
	DefaultIOTimeout = 2 * time.Second

	// DefaultCommandDelay is the pause after every command exchange. The
	// switch needs recovery time between commands; the delay applies on
	// success and failure alike.
	DefaultCommandDelay = 1 * time.Second

	// DefaultMaxAttempts is the number of tries for the get-port query
	DefaultMaxAttempts = 3
)

// Config holds the device endpoint and port count. It is constructed once
// at startup and passed into the client; nothing here is mutated afterward.
type Config struct {
	// Host is the device IP address or hostname
	Host string

	// Port is the device TCP port
	Port int

	// Ports is the number of selectable ports on the switch
	Ports int
}

// DefaultConfig returns the factory device settings
func DefaultConfig() Config {
	return Config{
		Host:  DefaultHost,
		Port:  DefaultPort,
		Ports: DefaultPorts,
	}
}

// Addr returns the host:port dial address
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DialFunc opens a connection to the device. Swappable for tests.
type DialFunc func(network, addr string, timeout time.Duration) (net.Conn, error)

// Client exchanges command frames with a KVM switch. One short-lived TCP
// connection is opened per command; there is no connection reuse and no
// pipelining. Client is not safe for concurrent use - the device cannot
// handle overlapping commands anyway.
type Client struct {
	// DialTimeout bounds the TCP connection attempt
	DialTimeout time.Duration

	// IOTimeout bounds the frame write and reply read on an open connection
	IOTimeout time.Duration

	// CommandDelay is the unconditional pause after every exchange
	CommandDelay time.Duration

	// MaxAttempts is the retry budget for the get-port query
	MaxAttempts int

	// Dial opens the device connection (net.DialTimeout unless overridden)
	Dial DialFunc

	cfg    Config
	logger *zap.Logger

	// sleep is swappable so tests can count delays instead of waiting
	sleep func(time.Duration)
}

// NewClient creates a client for the device described by cfg. Zero or
// negative cfg fields fall back to the factory defaults.
func NewClient(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Ports <= 0 {
		cfg.Ports = DefaultPorts
	}

	return &Client{
		DialTimeout:  DefaultDialTimeout,
		IOTimeout:    DefaultIOTimeout,
		CommandDelay: DefaultCommandDelay,
		MaxAttempts:  DefaultMaxAttempts,
		Dial:         net.DialTimeout,
		cfg:          cfg,
		logger:       logging.GetLogger(),
		sleep:        time.Sleep,
	}
}

// Ports returns the configured number of selectable ports
func (c *Client) Ports() int {
	return c.cfg.Ports
}

// Addr returns the device dial address
func (c *Client) Addr() string {
	return c.cfg.Addr()
}

// replyOutcome is the internal result of one command exchange. The
// protocol cannot distinguish a transport failure from a genuine 0xFF
// reply, so both fold to the sentinel at the package boundary; keeping
// them apart internally lets tests probe which one occurred.
type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeTransport
	outcomeSentinel
)

type replyOutcome struct {
	kind  outcomeKind
	value byte
	err   error // underlying transport error, when kind is outcomeTransport
}

// fold collapses the outcome to the wire-level result byte
func (o replyOutcome) fold() byte {
	if o.kind == outcomeOK {
		return o.value
	}
	return protocol.Sentinel
}

// exchange performs one command round-trip: dial, write the 6-byte frame,
// read the reply, close. The CommandDelay sleep runs after every exchange,
// including failed ones and the final attempt of a retry loop.
func (c *Client) exchange(cmd protocol.Command) replyOutcome {
	defer c.sleep(c.CommandDelay)

	addr := c.cfg.Addr()
	frame := cmd.Encode()

	logging.LogFrame("send", frame)

	conn, err := c.Dial("tcp", addr, c.DialTimeout)
	if err != nil {
		c.logger.Debug("dial failed",
			zap.String("addr", addr),
			zap.String("command", protocol.OpcodeString(cmd.Opcode)),
			zap.Error(err),
		)
		return replyOutcome{kind: outcomeTransport, err: err}
	}
	defer func() { _ = conn.Close() }()

	if err := conn.SetDeadline(time.Now().Add(c.IOTimeout)); err != nil {
		return replyOutcome{kind: outcomeTransport, err: err}
	}

	if _, err := conn.Write(frame); err != nil {
		c.logger.Debug("frame write failed", zap.String("addr", addr), zap.Error(err))
		return replyOutcome{kind: outcomeTransport, err: err}
	}

	reply := make([]byte, protocol.ReplyLength)
	if _, err := io.ReadFull(conn, reply); err != nil {
		// Short reply or timeout: no usable result byte
		c.logger.Debug("reply read failed", zap.String("addr", addr), zap.Error(err))
		return replyOutcome{kind: outcomeTransport, err: err}
	}

	logging.LogFrame("recv", reply)

	result, ok := protocol.ResultByte(reply)
	if !ok || result == protocol.Sentinel {
		return replyOutcome{kind: outcomeSentinel, value: protocol.Sentinel}
	}
	return replyOutcome{kind: outcomeOK, value: result}
}

// send performs one exchange and folds the outcome to the result byte,
// with the sentinel standing in for every kind of failure.
func (c *Client) send(cmd protocol.Command) byte {
	return c.exchange(cmd).fold()
}

// CurrentPort queries the active port. The query is retried up to
// MaxAttempts times while the device answers with the sentinel, stopping
// on the first usable reply. The returned port is 1-indexed (wire byte
// plus one). No upper-bound check is applied: if the switch reports a
// port outside 1..Ports it is passed through verbatim.
func (c *Client) CurrentPort() (int, error) {
	var lastErr error

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		outcome := c.exchange(protocol.GetPortCommand())
		if outcome.kind == outcomeOK {
			port := int(outcome.value) + 1
			c.logger.Debug("active port read",
				zap.Int("port", port),
				zap.Int("attempt", attempt),
			)
			return port, nil
		}

		if outcome.err != nil {
			lastErr = outcome.err
		}
		c.logger.Debug("get-port attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.MaxAttempts),
		)
	}

	return 0, NewCommunicationError("unable to retrieve current port", c.cfg.Addr(), c.MaxAttempts, lastErr)
}

// SwitchResult describes the observed effect of a SwitchPort call
type SwitchResult struct {
	// Previous is the active port before the switch
	Previous int

	// Current is the active port observed after the switch. It can
	// legitimately differ from the requested target when the switch did
	// not apply the change; the caller reports it verbatim.
	Current int

	// AlreadyActive is true when the target was active before the call
	// and no switch command was sent
	AlreadyActive bool
}

// SwitchPort changes the active port to target (1-indexed).
//
// The target is validated against the configured port count before any
// network traffic. When the target is already active no command is sent.
// Otherwise the switch command goes out exactly once - its reply is
// unreliable and discarded - and the active port is re-read to observe
// the actual result.
func (c *Client) SwitchPort(target int) (*SwitchResult, error) {
	if target < 1 || target > c.cfg.Ports {
		return nil, NewValidationError(fmt.Sprintf("port must be between 1 and %d, got %d", c.cfg.Ports, target))
	}

	current, err := c.CurrentPort()
	if err != nil {
		return nil, err
	}

	if current == target {
		return &SwitchResult{Previous: current, Current: current, AlreadyActive: true}, nil
	}

	// Single shot, no retry: the reply to a set-port command carries no
	// trustworthy information, so the confirmation read below is the only
	// signal that matters.
	c.send(protocol.SetPortCommand(byte(target - 1)))

	observed, err := c.CurrentPort()
	if err != nil {
		return nil, err
	}

	return &SwitchResult{Previous: current, Current: observed}, nil
}

// SetBuzzerMode sets the buzzer state from a numeric mode: 0 mutes,
// 1 unmutes. Any other value is a validation error and no command is sent.
func (c *Client) SetBuzzerMode(mode int) error {
	if mode != 0 && mode != 1 {
		return NewValidationError(fmt.Sprintf("buzzer mode must be 0 (mute) or 1 (unmute), got %d", mode))
	}
	return c.SetBuzzer(mode == 1)
}

// SetBuzzer enables or disables the audible buzzer. The command is sent
// exactly once and its reply is discarded.
func (c *Client) SetBuzzer(on bool) error {
	c.send(protocol.BuzzerCommand(on))
	return nil
}

// SetLCDTimeout sets the on-device display timeout in seconds. Valid
// values are 0 (always on), 10 and 30; anything else is a validation
// error and no command is sent. The command goes out exactly once and its
// reply is discarded.
func (c *Client) SetLCDTimeout(seconds int) error {
	operand, ok := protocol.LCDOperandForSeconds(seconds)
	if !ok {
		return NewValidationError(fmt.Sprintf("LCD timeout must be 0, 10 or 30 seconds, got %d", seconds))
	}
	c.send(protocol.LCDTimeoutCommand(operand))
	return nil
}
