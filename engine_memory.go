package stm32boot

// ReadMemory reads up to DataTransferSize bytes from address in a single
// READ_MEMORY command (spec §4.5). For longer reads use ReadMemoryData.
func (s *Session) ReadMemory(address uint32, length int) ([]byte, error) {
	if err := s.requireLive("READ_MEMORY"); err != nil {
		return nil, err
	}
	if length > s.dataTransferSize {
		return nil, newError(KindDataLength, "can not read more than 256 bytes at once", nil)
	}
	if err := s.sendCommand(CmdReadMemory); err != nil {
		return nil, err
	}
	if err := s.sendSegment(encodeAddress(address)); err != nil {
		return nil, err
	}
	if err := s.sendSegment(encodeLengthByte(length)); err != nil {
		return nil, err
	}
	return s.link.Recv(length)
}

// ReadMemoryData reads length bytes starting at address, splitting the
// range into ceil(length/DataTransferSize) single-chunk READ_MEMORY calls
// issued in increasing address order (spec §4.5, testable property 5).
func (s *Session) ReadMemoryData(address uint32, length int) ([]byte, error) {
	out := make([]byte, 0, length)
	for length > 0 {
		chunk := length
		if chunk > s.dataTransferSize {
			chunk = s.dataTransferSize
		}
		data, err := s.ReadMemory(address, chunk)
		if err != nil {
			return nil, err
		}
		out = append(out, data...)
		address += uint32(chunk)
		length -= chunk
	}
	return out, nil
}

// WriteMemory writes up to DataTransferSize bytes to address in a single
// WRITE_MEMORY command. Zero-length writes are a no-op. Data is padded with
// 0xFF to a 4-byte multiple before the length byte and checksum are
// computed (spec §4.3, testable properties 2-3).
func (s *Session) WriteMemory(address uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := s.requireLive("WRITE_MEMORY"); err != nil {
		return err
	}
	if len(data) > s.dataTransferSize {
		return newError(KindDataLength, "can not write more than 256 bytes at once", nil)
	}
	if err := s.sendCommand(CmdWriteMemory); err != nil {
		return err
	}
	if err := s.sendSegment(encodeAddress(address)); err != nil {
		return err
	}
	return s.sendSegment(encodeData(data))
}

// WriteMemoryData writes data starting at address, chunked identically to
// ReadMemoryData.
func (s *Session) WriteMemoryData(address uint32, data []byte) error {
	offset := 0
	for offset < len(data) {
		chunk := len(data) - offset
		if chunk > s.dataTransferSize {
			chunk = s.dataTransferSize
		}
		if err := s.WriteMemory(address, data[offset:offset+chunk]); err != nil {
			return err
		}
		address += uint32(chunk)
		offset += chunk
	}
	return nil
}
