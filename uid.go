package stm32boot

import "strings"

// uidSwap groups the 12 raw UID bytes into the documented [2,2,4,4] byte
// order before hex-encoding (spec §4.5).
var uidSwap = [][]int{{1, 0}, {3, 2}, {7, 6, 5, 4}, {11, 10, 9, 8}}

// GetUID reads the device's 96-bit unique ID via a single 12-byte
// READ_MEMORY. The second return value is false if the active device's
// catalog record carries no UID address (the "AddressUnknown" sentinel of
// spec §6.4), in which case no read is issued.
func (s *Session) GetUID() (uid []byte, known bool, err error) {
	addr, ok := s.uidAddress()
	if !ok {
		return nil, false, nil
	}
	data, err := s.ReadMemory(addr, 12)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

func (s *Session) uidAddress() (uint32, bool) {
	if s.device == nil {
		return 0, false
	}
	return s.device.UIDAddress()
}

// FormatUID renders a 12-byte UID the documented way: grouped [2,2,4,4]
// with the swap pattern [[1,0],[3,2],[7,6,5,4],[11,10,9,8]], hex-encoded and
// hyphen-joined.
func FormatUID(uid []byte) string {
	groups := make([]string, 0, len(uidSwap))
	for _, part := range uidSwap {
		var sb strings.Builder
		for _, idx := range part {
			sb.WriteString(byteHex(uid[idx])[2:])
		}
		groups = append(groups, strings.ToUpper(sb.String()))
	}
	return strings.Join(groups, "-")
}

// GetFlashSize reads the device's 16-bit flash-size register via a single
// 2-byte READ_MEMORY and returns its little-endian value as read, without
// scaling it to bytes. The second return value is false if the active device's
// catalog record carries no flash-size register address (spec §6.4's
// "Unsupported"), in which case no read is issued.
func (s *Session) GetFlashSize() (size uint16, known bool, err error) {
	if s.device == nil {
		return 0, false, nil
	}
	addr, ok := s.device.FlashSizeAddress()
	if !ok {
		return 0, false, nil
	}
	data, err := s.ReadMemory(addr, 2)
	if err != nil {
		return 0, true, err
	}
	return uint16(data[0]) | uint16(data[1])<<8, true, nil
}

// GetBootloaderID reads the device's 1-byte bootloader ID via a single
// READ_MEMORY. The second return value is false if the active device's
// catalog record carries no bootloader-ID address.
func (s *Session) GetBootloaderID() (id byte, known bool, err error) {
	if s.device == nil {
		return 0, false, nil
	}
	addr, ok := s.device.BootloaderIDAddress()
	if !ok {
		return 0, false, nil
	}
	data, err := s.ReadMemory(addr, 1)
	if err != nil {
		return 0, true, err
	}
	return data[0], true, nil
}
