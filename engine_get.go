package stm32boot

import "github.com/durufle/stm32boot/catalog"

// Get executes the GET command, which returns the bootloader protocol
// version and the set of commands it supports. It records whether
// EXTENDED_ERASE is among them and returns the raw command byte sequence
// (the protocol version is the first byte).
func (s *Session) Get() ([]byte, error) {
	if err := s.requireLive("GET"); err != nil {
		return nil, err
	}
	if err := s.sendCommand(CmdGet); err != nil {
		return nil, err
	}
	header, err := s.link.Recv(1)
	if err != nil {
		return nil, err
	}
	length := int(header[0])
	data, err := s.link.Recv(length + 1)
	if err != nil {
		return nil, err
	}
	s.extendedErase = false
	s.commands = s.commands[:0]
	for _, b := range data[1:] {
		cmd := Command(b)
		s.commands = append(s.commands, cmd)
		if cmd == CmdExtendedErase {
			s.extendedErase = true
		}
	}
	if err := s.recvAck(); err != nil {
		return nil, err
	}
	s.log.WithField("extended_erase", s.extendedErase).Debug("GET complete")
	return data, nil
}

// GetID executes GET_ID and, if the resulting device ID matches a catalog
// record, installs that record (flash page size, UID/flash-size/
// bootloader-ID addresses) into the session.
func (s *Session) GetID() (uint32, error) {
	if err := s.requireLive("GET_ID"); err != nil {
		return 0, err
	}
	if err := s.sendCommand(CmdGetID); err != nil {
		return 0, err
	}
	header, err := s.link.Recv(1)
	if err != nil {
		return 0, err
	}
	length := int(header[0])
	data, err := s.link.Recv(length + 1)
	if err != nil {
		return 0, err
	}
	if err := s.recvAck(); err != nil {
		return 0, err
	}
	var id uint32
	for _, b := range data {
		id = id*0x100 + uint32(b)
	}
	s.log.WithField("device_id", id).Debug("GET_ID complete")
	if s.catalog != nil {
		if rec, ok := s.catalog.Get(id); ok {
			s.installDevice(rec)
		}
	}
	return id, nil
}

// installDevice applies a catalog record's flash geometry to the session
// and makes the record available via Session.Device.
func (s *Session) installDevice(rec *catalog.Record) {
	s.device = rec
	if ps := rec.PageSize(); ps > 0 {
		s.flashPageSize = ps
	}
}

// GetVersion executes GET_VERSION and returns the protocol version byte.
func (s *Session) GetVersion() (byte, error) {
	if err := s.requireLive("GET_VERSION"); err != nil {
		return 0, err
	}
	if err := s.sendCommand(CmdGetVersion); err != nil {
		return 0, err
	}
	data, err := s.link.Recv(3)
	if err != nil {
		return 0, err
	}
	if err := s.recvAck(); err != nil {
		return 0, err
	}
	s.log.WithFields(map[string]interface{}{
		"version": data[0], "option1": data[1], "option2": data[2],
	}).Debug("GET_VERSION complete")
	return data[0], nil
}
