package stm32boot

import "time"

// DefaultStartupDelay is how long enter_system_boot waits after releasing
// reset for the ST system ROM to initialize its auto-baud detector
// (spec §4.2).
const DefaultStartupDelay = 2700 * time.Millisecond

const strapSettleDelay = 100 * time.Millisecond

// enterSystemBoot power-cycles the target with boot0=1, boot1=0 so the next
// reset boots the ST system-memory bootloader, then waits startup seconds
// for the ROM's auto-baud detector to be ready.
func (s *Session) enterSystemBoot(startup time.Duration) error {
	if err := s.link.SetPower(false); err != nil {
		return err
	}
	if err := s.link.SetBoot(true, false); err != nil {
		return err
	}
	if err := s.link.SetReset(false); err != nil {
		return err
	}
	time.Sleep(strapSettleDelay)
	if err := s.link.SetPower(true); err != nil {
		return err
	}
	time.Sleep(strapSettleDelay)
	if err := s.link.SetReset(true); err != nil {
		return err
	}
	time.Sleep(startup)
	return nil
}

// enterUserBoot power-cycles the target with boot0=0, boot1=0 so the next
// reset boots user flash.
func (s *Session) enterUserBoot() error {
	if err := s.link.SetPower(false); err != nil {
		return err
	}
	if err := s.link.SetBoot(false, false); err != nil {
		return err
	}
	if err := s.link.SetReset(false); err != nil {
		return err
	}
	time.Sleep(strapSettleDelay)
	if err := s.link.SetPower(true); err != nil {
		return err
	}
	time.Sleep(strapSettleDelay)
	if err := s.link.SetReset(true); err != nil {
		return err
	}
	time.Sleep(strapSettleDelay)
	return nil
}

// ResetFromSystemMemory power-cycles and resets the target into
// system-memory boot mode, performs the SYNCHRONIZE handshake, and issues
// GET_ID to resolve the device's catalog record. On success the session
// transitions to StateLive.
func (s *Session) ResetFromSystemMemory(startup ...time.Duration) error {
	delay := DefaultStartupDelay
	if len(startup) > 0 {
		delay = startup[0]
	}
	s.state = StateSynchronizing
	if err := s.enterSystemBoot(delay); err != nil {
		s.state = StateCold
		return err
	}
	if err := s.synchronize(); err != nil {
		s.state = StateCold
		return err
	}
	s.state = StateLive
	if _, err := s.GetID(); err != nil {
		s.log.WithError(err).Warn("GET_ID failed after synchronize")
	}
	return nil
}

// ResetFromFlash power-cycles and resets the target to boot from user
// flash, returning the session to StateCold.
func (s *Session) ResetFromFlash(startup ...time.Duration) error {
	if err := s.enterUserBoot(); err != nil {
		return err
	}
	if len(startup) > 0 {
		time.Sleep(startup[0])
	}
	s.state = StateCold
	s.device = nil
	s.extendedErase = false
	return nil
}
