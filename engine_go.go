package stm32boot

// Go executes the GO command, jumping to address. After a successful GO the
// bootloader is no longer responsive, so the session transitions to
// StateGone.
func (s *Session) Go(address uint32) error {
	if err := s.requireLive("GO"); err != nil {
		return err
	}
	if err := s.sendCommand(CmdGo); err != nil {
		return err
	}
	if err := s.sendSegment(encodeAddress(address)); err != nil {
		return err
	}
	s.state = StateGone
	return nil
}
