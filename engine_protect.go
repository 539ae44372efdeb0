package stm32boot

// WriteProtect enables write protection on the given flash pages.
func (s *Session) WriteProtect(pages []int) error {
	if err := s.requireLive("WRITE_PROTECT"); err != nil {
		return err
	}
	if err := s.sendCommand(CmdWriteProtect); err != nil {
		return err
	}
	return s.sendSegment(encodePagesClassical(pages))
}

// WriteUnprotect disables write protection of the flash memory. The device
// replies with an ACK to the opcode and then a second terminal ACK once the
// unprotect completes.
func (s *Session) WriteUnprotect() error {
	if err := s.requireLive("WRITE_UNPROTECT"); err != nil {
		return err
	}
	if err := s.sendCommand(CmdWriteUnprotect); err != nil {
		return err
	}
	return s.recvAck()
}

// ReadoutProtect enables readout protection of the flash memory. This is a
// bare opcode envelope with no payload and no follow-up ACK.
func (s *Session) ReadoutProtect() error {
	if err := s.requireLive("READOUT_PROTECT"); err != nil {
		return err
	}
	return s.sendCommand(CmdReadoutProtect)
}

// ReadoutUnprotect executes READOUT_UNPROTECT. If the device is locked it
// performs a mass erase, which can take seconds, so the terminal ACK is
// awaited under the extended 30-second timeout (restored unconditionally
// afterward). A successful unprotect triggers the target's automatic
// reset, so the engine immediately re-synchronizes via
// ResetFromSystemMemory, transitioning the session through
// Synchronizing back to Live.
func (s *Session) ReadoutUnprotect() error {
	if err := s.requireLive("READOUT_UNPROTECT"); err != nil {
		return err
	}
	if err := s.sendCommand(CmdReadoutUnprotect); err != nil {
		return err
	}
	s.log.Info("readout unprotect -- mass erase in progress")
	if err := s.withTimeout(extendedOperationTimeout, s.recvAck); err != nil {
		return err
	}
	s.log.Debug("readout unprotect complete, re-synchronizing after automatic reset")
	return s.ResetFromSystemMemory()
}
