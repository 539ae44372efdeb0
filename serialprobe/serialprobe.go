// Package serialprobe implements stm32boot/probe.Probe on top of a real
// Linux tty device, via github.com/daedaluz/goserial, and sysfs-backed GPIO
// lines.
package serialprobe

import (
	"time"

	serial "github.com/daedaluz/goserial"
	"github.com/durufle/stm32boot/probe"
)

const defaultBaud = 115200

// Option configures a SerialProbe at construction time.
type Option func(*config)

type config struct {
	baud           uint32
	boot0Line      int
	boot1Line      int
	resetLine      int
	powerLine      int
	gpioLinesWired bool
}

// WithBaud overrides the default 115200 baud rate.
func WithBaud(baud uint32) Option {
	return func(c *config) { c.baud = baud }
}

// WithGPIOLines wires the boot0, boot1, nrst and power sysfs GPIO lines used
// to sequence the target. Without this option SetPower/SetBoot/SetReset are
// no-ops, which is adequate for bench setups where those signals are tied
// externally.
func WithGPIOLines(boot0, boot1, reset, power int) Option {
	return func(c *config) {
		c.boot0Line = boot0
		c.boot1Line = boot1
		c.resetLine = reset
		c.powerLine = power
		c.gpioLinesWired = true
	}
}

// SerialProbe is a probe.Probe backed by a real goserial.Port and GPIO
// lines.
type SerialProbe struct {
	port    *serial.Port
	timeout time.Duration

	boot0 *sysfsGPIO
	boot1 *sysfsGPIO
	reset *sysfsGPIO
	power *sysfsGPIO
}

// New opens path (e.g. "/dev/ttyUSB0") and configures it for the ST
// bootloader's 8E1 framing (spec §6.2) at 115200 baud unless overridden.
func New(path string, opts ...Option) (*SerialProbe, error) {
	cfg := config{baud: defaultBaud}
	for _, opt := range opts {
		opt(&cfg)
	}
	port, err := serial.Open(path, nil)
	if err != nil {
		return nil, err
	}
	if err := configurePort(port, cfg.baud); err != nil {
		port.Close()
		return nil, err
	}
	sp := &SerialProbe{port: port, timeout: time.Second}
	if cfg.gpioLinesWired {
		if sp.boot0, err = newSysfsGPIO(cfg.boot0Line); err != nil {
			port.Close()
			return nil, err
		}
		if sp.boot1, err = newSysfsGPIO(cfg.boot1Line); err != nil {
			port.Close()
			return nil, err
		}
		if sp.reset, err = newSysfsGPIO(cfg.resetLine); err != nil {
			port.Close()
			return nil, err
		}
		if sp.power, err = newSysfsGPIO(cfg.powerLine); err != nil {
			port.Close()
			return nil, err
		}
	}
	return sp, nil
}

// configurePort puts port into raw mode at 8E1 framing (even parity, one
// stop bit, as AN3155/AN4872 require) and the given custom baud rate, using
// goserial's Termios2 helpers directly.
func configurePort(port *serial.Port, baud uint32) error {
	attrs, err := port.GetAttr2()
	if err != nil {
		return err
	}
	attrs.MakeRaw()
	attrs.Cflag |= serial.PARENB
	attrs.SetCustomSpeed(baud)
	return port.SetAttr2(serial.TCSANOW, attrs)
}

// Close releases the underlying tty file descriptor.
func (s *SerialProbe) Close() error {
	return s.port.Close()
}

func (s *SerialProbe) Send(data []byte) error {
	_, err := s.port.Write(data)
	return err
}

func (s *SerialProbe) Recv(n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for len(out) < n {
		buf := make([]byte, n-len(out))
		read, err := s.port.ReadTimeout(buf, s.timeout)
		if err != nil {
			return nil, probe.ErrTimeout
		}
		if read == 0 {
			return nil, probe.ErrTimeout
		}
		out = append(out, buf[:read]...)
	}
	return out, nil
}

func (s *SerialProbe) Flush() error {
	return s.port.Flush(serial.TCIFLUSH)
}

func (s *SerialProbe) SetTimeout(d time.Duration) {
	s.timeout = d
}

func (s *SerialProbe) SetPower(on bool) error {
	if s.power == nil {
		return nil
	}
	return s.power.Set(on)
}

func (s *SerialProbe) SetBoot(boot0, boot1 bool) error {
	if s.boot0 == nil {
		return nil
	}
	if err := s.boot0.Set(boot0); err != nil {
		return err
	}
	return s.boot1.Set(boot1)
}

func (s *SerialProbe) SetReset(released bool) error {
	if s.reset == nil {
		return nil
	}
	return s.reset.Set(released)
}

var _ probe.Probe = (*SerialProbe)(nil)
