package stm32boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeIsOpcodeAndItsComplement(t *testing.T) {
	for _, cmd := range []Command{
		CmdGet, CmdGetVersion, CmdGetID, CmdReadMemory, CmdGo, CmdWriteMemory,
		CmdErase, CmdExtendedErase, CmdWriteProtect, CmdWriteUnprotect,
		CmdReadoutProtect, CmdReadoutUnprotect,
	} {
		env := envelope(cmd)
		require.Len(t, env, 2)
		assert.Equal(t, byte(cmd), env[0])
		assert.Equal(t, byte(cmd)^0xFF, env[1])
	}
}

func TestEncodeAddressChecksum(t *testing.T) {
	buf := encodeAddress(0x08000000)
	require.Len(t, buf, 5)
	assert.Equal(t, []byte{0x08, 0x00, 0x00, 0x00, 0x08}, buf)
	assert.Equal(t, xorAll(buf[:4]), buf[4])
}

func TestEncodeDataPadsToMultipleOf4WithFF(t *testing.T) {
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	buf := encodeData(data)
	// already a multiple of 4: len byte, 4 data bytes, checksum.
	require.Len(t, buf, 6)
	assert.Equal(t, byte(3), buf[0])
	assert.Equal(t, data, buf[1:5])
	assert.Equal(t, xorAll(buf[:5]), buf[5])

	odd := []byte{0x01, 0x02, 0x03}
	buf2 := encodeData(odd)
	require.Len(t, buf2, 1+4+1)
	padded := buf2[1:5]
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0xFF}, padded)
	assert.Equal(t, 0, len(padded)%4)
	assert.Equal(t, xorAll(buf2[:5]), buf2[5])
}

func TestEncodePagesClassicalChecksum(t *testing.T) {
	pages := []int{0, 1, 2}
	buf := encodePagesClassical(pages)
	require.Len(t, buf, 1+3+1)
	assert.Equal(t, byte(2), buf[0])
	assert.Equal(t, xorAll(buf[:len(buf)-1]), buf[len(buf)-1])
}

func TestEncodePagesExtendedChecksum(t *testing.T) {
	pages := []int{0, 1, 0x1234}
	buf := encodePagesExtended(pages)
	require.Len(t, buf, 2+2*3+1)
	assert.Equal(t, xorAll(buf[:len(buf)-1]), buf[len(buf)-1])
}

func TestDecodeAck(t *testing.T) {
	assert.NoError(t, decodeAck(byte(ReplyACK)))

	err := decodeAck(byte(ReplyNACK))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNack)

	err = decodeAck(0x42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocolViolation)
}
