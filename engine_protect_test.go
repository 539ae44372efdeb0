package stm32boot

import (
	"testing"

	"github.com/durufle/stm32boot/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUnprotectAwaitsTwoAcks(t *testing.T) {
	l := probe.NewLoopback()
	l.QueueBytes([]byte{byte(ReplyACK)})
	l.QueueBytes([]byte{byte(ReplyACK)})
	s := New(l)
	s.state = StateLive

	require.NoError(t, s.WriteUnprotect())
	// both queued ACKs were consumed.
	_, err := l.Recv(1)
	assert.ErrorIs(t, err, probe.ErrTimeout)

	sent := l.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, envelope(CmdWriteUnprotect), sent[0])
}

func TestReadoutProtectIsBareOpcodeNoFollowup(t *testing.T) {
	l := probe.NewLoopback()
	l.QueueBytes([]byte{byte(ReplyACK)})
	s := New(l)
	s.state = StateLive

	require.NoError(t, s.ReadoutProtect())
	sent := l.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, envelope(CmdReadoutProtect), sent[0])
}

// ReadoutUnprotect triggers an automatic mass erase and reset; the engine
// re-synchronizes afterward, transitioning Live -> Synchronizing -> Live.
func TestReadoutUnprotectAutoResynchronizes(t *testing.T) {
	l := probe.NewLoopback()
	l.QueueBytes([]byte{byte(ReplyACK)}) // opcode ack
	l.QueueBytes([]byte{byte(ReplyACK)}) // terminal ack after mass erase
	l.QueueBytes([]byte{byte(ReplyACK)}) // SYNCHRONIZE ack after auto reset
	l.QueueTimeout()                     // GET_ID starved, logged and ignored

	s := New(l)
	s.state = StateLive

	require.NoError(t, s.ReadoutUnprotect())
	assert.Equal(t, StateLive, s.State())
}
