package stm32boot

import "fmt"

// Kind discriminates the error taxonomy of spec §7. It is not meant to be
// compared directly by callers; use errors.Is against the Err* sentinels
// below, which this package's errors match by Kind through Error.Is.
type Kind int

const (
	// KindTimeout: the receive deadline elapsed before enough bytes arrived.
	KindTimeout Kind = iota
	// KindNack: the target replied NACK to a command or payload.
	KindNack
	// KindProtocolViolation: a reply byte was neither ACK nor NACK.
	KindProtocolViolation
	// KindDataLength: caller asked for a chunk larger than the data transfer size.
	KindDataLength
	// KindPageIndex: too many pages, or an unaligned page range, were supplied.
	KindPageIndex
	// KindUnsupported: the live device does not offer the requested capability.
	KindUnsupported
	// KindCommand: a command failed for a reason not covered by the above.
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNack:
		return "nack"
	case KindProtocolViolation:
		return "protocol violation"
	case KindDataLength:
		return "data length"
	case KindPageIndex:
		return "page index"
	case KindUnsupported:
		return "unsupported"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Error is the single error type this package returns. It carries a Kind
// for errors.Is-style matching against the Err* sentinels, an optional
// contextual message, and an optional wrapped cause.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.msg != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s (%s)", e.Kind, e.msg, e.err)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.msg)
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.err)
	}
	return e.Kind.String()
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is one of the Err* sentinels matching e's Kind,
// so callers can write errors.Is(err, stm32boot.ErrNack).
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return sentinel.Kind == e.Kind && sentinel.msg == "" && sentinel.err == nil
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, err: cause}
}

// Sentinel values for errors.Is comparisons, one per Kind.
var (
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrNack              = &Error{Kind: KindNack}
	ErrProtocolViolation = &Error{Kind: KindProtocolViolation}
	ErrDataLength        = &Error{Kind: KindDataLength}
	ErrPageIndex         = &Error{Kind: KindPageIndex}
	ErrUnsupported       = &Error{Kind: KindUnsupported}
	ErrCommand           = &Error{Kind: KindCommand}
)
