// Package probe defines the capability interface the bootloader engine
// consumes to reach a target device. Concrete transports (serialprobe.New,
// or a test Loopback) implement it; the codec, the protocol engine and the
// session never see a concrete transport type.
package probe

import (
	"errors"
	"time"
)

// ErrTimeout is returned by Recv when the configured timeout elapses before
// the requested number of bytes arrives.
var ErrTimeout = errors.New("probe: receive timeout")

// Probe is the set of operations the bootloader driver needs from an
// instrumentation board: a UART peripheral plus the GPIO lines that sequence
// target power and select the boot mode. See spec §6.1.
type Probe interface {
	// Send transmits every byte in data, in order, blocking until the
	// peripheral accepts them.
	Send(data []byte) error

	// Recv returns exactly n bytes, or ErrTimeout once the current
	// deadline (set by SetTimeout) elapses.
	Recv(n int) ([]byte, error)

	// Flush discards any buffered, unread receive data.
	Flush() error

	// SetTimeout changes the deadline used by subsequent Recv calls.
	// Saving and restoring a prior value is the caller's responsibility.
	SetTimeout(d time.Duration)

	// SetPower drives the target's power rail. false = off, true = on.
	SetPower(on bool) error

	// SetBoot sets the boot0/boot1 strap lines.
	SetBoot(boot0, boot1 bool) error

	// SetReset drives the target reset line. false = asserted (held in
	// reset), true = released.
	SetReset(released bool) error
}
