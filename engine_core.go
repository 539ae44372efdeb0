package stm32boot

// sendCommand transmits the opcode envelope for cmd and awaits the ACK that
// precedes any payload, per spec §4.5 step (i).
func (s *Session) sendCommand(cmd Command) error {
	s.log.WithField("command", cmd).Debug("sending command")
	if err := s.link.Send(envelope(cmd)); err != nil {
		return err
	}
	return s.recvAck()
}

// sendSegment writes one payload segment (an address envelope, a length
// pair, a data envelope, ...) and awaits the ACK the ST spec requires after
// it, per spec §4.5 step (ii).
func (s *Session) sendSegment(data []byte) error {
	if err := s.link.Send(data); err != nil {
		return err
	}
	return s.recvAck()
}

// recvAck reads a single reply byte and classifies it as ACK/NACK/protocol
// violation.
func (s *Session) recvAck() error {
	b, err := s.link.Recv(1)
	if err != nil {
		return err
	}
	return decodeAck(b[0])
}
