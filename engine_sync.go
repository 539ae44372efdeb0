package stm32boot

// synchronize performs the SYNCHRONIZE handshake used only from
// ResetFromSystemMemory: send the single byte 0x7F and wait for one reply
// byte. Either ACK or NACK means the bootloader is live (a NACK just means
// it was already synchronized earlier in this power cycle). On a failed
// attempt (timeout, or an unrecognized byte) the engine retries once more,
// prefixing the next attempt with a leading 0x00 to help the target's
// auto-baud detector align. After synchronizeAttempts failures, it gives up
// with a command error.
func (s *Session) synchronize() error {
	for attempt := 0; attempt < synchronizeAttempts; attempt++ {
		if attempt > 0 {
			s.log.Debug("synchronize retry")
			if err := s.link.Send([]byte{0x00, byte(CmdSynchronize)}); err != nil {
				return err
			}
		} else {
			if err := s.link.Send([]byte{byte(CmdSynchronize)}); err != nil {
				return err
			}
		}
		b, err := s.link.Recv(1)
		if err != nil {
			continue
		}
		if Reply(b[0]) == ReplyACK || Reply(b[0]) == ReplyNACK {
			s.log.Debug("bootloader synchronized")
			return nil
		}
	}
	return newError(KindCommand, "Bad reply from bootloader", nil)
}
