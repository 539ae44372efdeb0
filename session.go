// Package stm32boot drives the native serial bootloader embedded in STM32
// microcontrollers (ST AN3155, AN4872) through an external probe that
// exposes a UART, a reset line and two boot-mode straps (probe.Probe).
package stm32boot

import (
	"time"

	"github.com/durufle/stm32boot/catalog"
	"github.com/durufle/stm32boot/probe"
	"github.com/sirupsen/logrus"
)

// State is a node of the bootloader lifecycle state machine (spec §4.5).
type State int

const (
	// StateCold: the target has not been reset into system-memory boot.
	StateCold State = iota
	// StateSynchronizing: enter_system_boot has been issued; waiting for
	// the first ACK/NACK to the SYNCHRONIZE byte.
	StateSynchronizing
	// StateLive: the bootloader is synchronized and accepting commands.
	StateLive
	// StateGone: a successful GO command has jumped out of the bootloader;
	// it is no longer responsive.
	StateGone
)

func (s State) String() string {
	switch s {
	case StateCold:
		return "cold"
	case StateSynchronizing:
		return "synchronizing"
	case StateLive:
		return "live"
	case StateGone:
		return "gone"
	default:
		return "unknown"
	}
}

const (
	// DefaultDataTransferSize is the protocol's read/write chunk window.
	DefaultDataTransferSize = 256
	// DefaultFlashPageSize is used until a device record overrides it.
	DefaultFlashPageSize = 1024
	// DefaultReceiveTimeout is the link's baseline receive deadline.
	DefaultReceiveTimeout = time.Second
	// extendedOperationTimeout is applied while a mass/extended erase or
	// a readout-unprotect-triggered mass erase is in flight.
	extendedOperationTimeout = 30 * time.Second
	// synchronizeAttempts bounds the SYNCHRONIZE retry loop (spec §4.5).
	synchronizeAttempts = 2
)

// Session owns the probe and every piece of mutable protocol state: the
// current receive timeout, the capability set returned by GET, the active
// device record, and the bootloader lifecycle state. It is single-threaded
// and non-reentrant (spec §5); concurrent calls from multiple goroutines are
// not supported.
type Session struct {
	link probe.Probe
	log  *logrus.Entry

	catalog *catalog.Catalog
	device  *catalog.Record

	state         State
	commands      []Command
	extendedErase bool

	dataTransferSize int
	flashPageSize    uint32

	currentTimeout time.Duration
	verbosity      int
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithCatalog supplies a device catalog consulted after GET_ID to resolve
// flash geometry and special-register addresses. Without one, every device
// is "unknown" and UID/flash-size/bootloader-ID queries resolve to their
// AddressUnknown sentinels.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) { s.catalog = c }
}

// WithLogger overrides the default logrus logger.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Session) { s.log = log }
}

// WithVerbosity records the informational trace level (spec §4.6) on the
// session. No log call reads it, so it changes neither which messages are
// logged nor control flow.
func WithVerbosity(v int) Option {
	return func(s *Session) { s.verbosity = v }
}

// New binds a session to a probe. The session starts in the Cold state.
func New(link probe.Probe, opts ...Option) *Session {
	s := &Session{
		link:             link,
		state:            StateCold,
		dataTransferSize: DefaultDataTransferSize,
		flashPageSize:    DefaultFlashPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logrus.StandardLogger().WithField("component", "stm32boot")
	}
	s.setTimeout(DefaultReceiveTimeout)
	return s
}

// setTimeout changes the link's receive timeout and records it so
// withTimeout can restore the exact previous value rather than a fixed
// default.
func (s *Session) setTimeout(d time.Duration) {
	s.currentTimeout = d
	s.link.SetTimeout(d)
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// ExtendedEraseSupported reports whether the live device's GET reply
// advertised EXTENDED_ERASE.
func (s *Session) ExtendedEraseSupported() bool { return s.extendedErase }

// Commands returns the command set advertised by the last GET reply, or nil
// if GET has not been issued yet.
func (s *Session) Commands() []Command { return s.commands }

// Device returns the catalog record installed after GET_ID, or nil if the
// device is unknown or GET_ID has not been issued yet.
func (s *Session) Device() *catalog.Record { return s.device }

// DataTransferSize returns the effective read/write chunk size.
func (s *Session) DataTransferSize() int { return s.dataTransferSize }

// FlashPageSize returns the effective flash erase page size.
func (s *Session) FlashPageSize() uint32 { return s.flashPageSize }

func (s *Session) requireLive(op string) error {
	if s.state != StateLive {
		return newError(KindCommand, op+": bootloader is not live (state="+s.state.String()+")", nil)
	}
	return nil
}

// withTimeout temporarily raises the link's receive timeout for the
// duration of fn, restoring the previous value on every exit path
// (success or error), per spec §5/§7.
func (s *Session) withTimeout(d time.Duration, fn func() error) error {
	prev := s.currentTimeout
	s.setTimeout(d)
	defer s.setTimeout(prev)
	return fn()
}
