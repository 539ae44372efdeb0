package stm32boot

// ErasePages erases the given 0-based flash pages using the classical ERASE
// command. Pass nil to trigger a global mass erase via the AN3155
// [0xFF, 0x00] escape (spec §9 Open Questions: we adopt the AN3155 two-byte
// form). len(pages) must not exceed 255.
func (s *Session) ErasePages(pages []int) error {
	if err := s.requireLive("ERASE"); err != nil {
		return err
	}
	if len(pages) > 255 {
		return newError(KindPageIndex, "can not erase more than 255 pages at once", nil)
	}
	if err := s.sendCommand(CmdErase); err != nil {
		return err
	}
	if len(pages) == 0 {
		return s.sendSegment([]byte{0xFF, 0x00})
	}
	return s.sendSegment(encodePagesClassical(pages))
}

// ExtendedErasePages erases the given 0-based flash pages using the
// EXTENDED_ERASE command (AN4872). Pass nil to trigger a global mass erase.
// len(pages) must not exceed 65535. The terminal ACK is awaited with a
// 30-second timeout because erase can take seconds; the link's previous
// timeout is restored unconditionally.
func (s *Session) ExtendedErasePages(pages []int) error {
	if err := s.requireLive("EXTENDED_ERASE"); err != nil {
		return err
	}
	if !s.extendedErase {
		return newError(KindUnsupported, "EXTENDED_ERASE not offered by this device", nil)
	}
	if len(pages) > 65535 {
		return newError(KindPageIndex, "can not erase more than 65535 pages at once", nil)
	}
	if err := s.sendCommand(CmdExtendedErase); err != nil {
		return err
	}
	if len(pages) == 0 {
		return s.extendedEraseSpecialPayload([]byte{0xFF, 0xFF, 0x00})
	}
	return s.extendedEraseSpecialPayload(encodePagesExtended(pages))
}

// ExtendedEraseMode selects one of the mutually exclusive EXTENDED_ERASE
// special payloads (mass erase, or a single-bank erase).
type ExtendedEraseMode int

const (
	ExtendedEraseMass ExtendedEraseMode = iota
	ExtendedEraseBank1
	ExtendedEraseBank2
)

// ExtendedEraseSpecial issues one of the EXTENDED_ERASE special payloads
// (mass erase or a single bank erase) rather than an explicit page list.
func (s *Session) ExtendedEraseSpecial(mode ExtendedEraseMode) error {
	if err := s.requireLive("EXTENDED_ERASE"); err != nil {
		return err
	}
	if !s.extendedErase {
		return newError(KindUnsupported, "EXTENDED_ERASE not offered by this device", nil)
	}
	if err := s.sendCommand(CmdExtendedErase); err != nil {
		return err
	}
	var payload []byte
	switch mode {
	case ExtendedEraseMass:
		payload = []byte{0xFF, 0xFF, 0x00}
	case ExtendedEraseBank1:
		payload = []byte{0xFF, 0xFE, 0x01}
	case ExtendedEraseBank2:
		payload = []byte{0xFF, 0xFD, 0x02}
	default:
		return newError(KindCommand, "unknown extended erase mode", nil)
	}
	return s.extendedEraseSpecialPayload(payload)
}

// extendedEraseSpecialPayload writes payload and awaits the terminal ACK
// under the extended 30-second timeout.
func (s *Session) extendedEraseSpecialPayload(payload []byte) error {
	if err := s.link.Send(payload); err != nil {
		return err
	}
	s.log.Info("extended erase in progress")
	return s.withTimeout(extendedOperationTimeout, s.recvAck)
}
