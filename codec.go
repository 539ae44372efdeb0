package stm32boot

import "encoding/binary"

// envelope returns the two bytes every command except SYNCHRONIZE begins
// with: the opcode followed by its one's complement.
func envelope(cmd Command) []byte {
	return []byte{byte(cmd), byte(cmd) ^ 0xFF}
}

// encodeAddress returns addr as four big-endian bytes followed by their
// XOR checksum, per spec §4.3.
func encodeAddress(addr uint32) []byte {
	buf := make([]byte, 5)
	binary.BigEndian.PutUint32(buf, addr)
	buf[4] = xorAll(buf[:4])
	return buf
}

// encodeLengthByte returns the single-byte [n-1, (n-1) xor 0xFF] pair used
// to announce a read length, per spec §4.5 READ_MEMORY.
func encodeLengthByte(n int) []byte {
	nb := byte(n-1) & 0xFF
	return []byte{nb, nb ^ 0xFF}
}

// encodePagesClassical returns the classical ERASE page-list payload:
// [count-1, page…, xor]. Callers must ensure len(pages) <= 255.
func encodePagesClassical(pages []int) []byte {
	count := byte(len(pages)-1) & 0xFF
	out := make([]byte, 0, 2+len(pages))
	out = append(out, count)
	for _, p := range pages {
		out = append(out, byte(p))
	}
	out = append(out, xorAll(out))
	return out
}

// encodePagesExtended returns the EXTENDED_ERASE page-list payload:
// [count-1_u16_be, page_u16_be…, xor]. Callers must ensure
// len(pages) <= 65535.
func encodePagesExtended(pages []int) []byte {
	out := make([]byte, 2+2*len(pages))
	binary.BigEndian.PutUint16(out[0:2], uint16(len(pages)-1))
	for i, p := range pages {
		binary.BigEndian.PutUint16(out[2+2*i:4+2*i], uint16(p))
	}
	return append(out, xorAll(out))
}

// encodeData pads data with 0xFF to a multiple of 4 bytes, then returns
// [len-1, padded data…, xor], per spec §4.3/§4.5 WRITE_MEMORY.
func encodeData(data []byte) []byte {
	padded := append([]byte(nil), data...)
	if rem := len(padded) % 4; rem != 0 {
		for i := 0; i < 4-rem; i++ {
			padded = append(padded, 0xFF)
		}
	}
	lenByte := byte(len(padded)-1) & 0xFF
	out := make([]byte, 0, 2+len(padded))
	out = append(out, lenByte)
	out = append(out, padded...)
	out = append(out, xorAll(out))
	return out
}

func xorAll(b []byte) byte {
	var x byte
	for _, v := range b {
		x ^= v
	}
	return x
}

// decodeAck interprets a single reply byte, returning nil on ACK, ErrNack
// on NACK, and ErrProtocolViolation for anything else.
func decodeAck(b byte) error {
	switch Reply(b) {
	case ReplyACK:
		return nil
	case ReplyNACK:
		return newError(KindNack, "", nil)
	default:
		return newError(KindProtocolViolation, byteHex(b), nil)
	}
}

func byteHex(b byte) string {
	const hexdigits = "0123456789abcdef"
	return "0x" + string(hexdigits[b>>4]) + string(hexdigits[b&0xF])
}
