package stm32boot

import (
	"testing"

	"github.com/durufle/stm32boot/catalog"
	"github.com/durufle/stm32boot/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUIDGroupsAndSwapsBytes(t *testing.T) {
	uid := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B}
	got := FormatUID(uid)
	assert.Equal(t, "0100-0302-07060504-0B0A0908", got)
}

func TestGetUIDUnknownWithoutDevice(t *testing.T) {
	s := newTestSession()
	s.state = StateLive
	uid, known, err := s.GetUID()
	require.NoError(t, err)
	assert.False(t, known)
	assert.Nil(t, uid)
}

func TestGetUIDUnknownWithDeviceButNoUIDAddress(t *testing.T) {
	l := probe.NewLoopback()
	s := New(l)
	s.state = StateLive
	s.device = &catalog.Record{DeviceID: 0x410}

	// a record with no UID address reports "known=false" without a read.
	uid, known, err := s.GetUID()
	require.NoError(t, err)
	assert.False(t, known)
	assert.Nil(t, uid)
}
