package stm32boot

import (
	"testing"

	"github.com/durufle/stm32boot/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return New(probe.NewLoopback())
}

func TestPagesFromRangeAlignment(t *testing.T) {
	s := newTestSession()
	s.flashPageSize = 1024

	pages, err := s.PagesFromRange(0x08000000, 0x08000000+4*1024)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, pages)

	_, err = s.PagesFromRange(0x08000001, 0x08000400)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageIndex)

	_, err = s.PagesFromRange(0x08000000, 0x08000401)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPageIndex)
}
